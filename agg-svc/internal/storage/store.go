package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	LookupAllTimeKey     = "insights:lookups:alltime"
	LookupDailyKeyPrefix = "insights:lookups:daily:"

	dailyRetention = 7 * 24 * time.Hour
)

func DailyKey(at time.Time) string {
	return LookupDailyKeyPrefix + at.UTC().Format("2006-01-02")
}

// Store keeps per-word lookup counters in Redis sorted sets.
type Store struct {
	rdb redis.Cmdable
}

func NewStore(rdb redis.Cmdable) *Store {
	return &Store{rdb: rdb}
}

func (s *Store) IncrementLookup(ctx context.Context, word string, at time.Time) error {
	dailyKey := DailyKey(at)

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZIncrBy(ctx, dailyKey, 1, word)
		pipe.Expire(ctx, dailyKey, dailyRetention)
		pipe.ZIncrBy(ctx, LookupAllTimeKey, 1, word)
		return nil
	})
	return err
}
