package storage

import (
	"context"
	"errors"
	"time"

	"employee-insights/insights-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	PeriodToday = "today"
	PeriodAll   = "all"

	lookupAllTimeKey     = "insights:lookups:alltime"
	lookupDailyKeyPrefix = "insights:lookups:daily:"
)

// RedisTrending reads the lookup counters maintained by agg-svc.
type RedisTrending struct {
	Client redis.Cmdable
	Now    func() time.Time
}

func NewRedisTrending(client redis.Cmdable) *RedisTrending {
	return &RedisTrending{Client: client, Now: time.Now}
}

func (t *RedisTrending) KeyFor(period string) string {
	if period == PeriodToday {
		return lookupDailyKeyPrefix + t.Now().UTC().Format("2006-01-02")
	}
	return lookupAllTimeKey
}

func (t *RedisTrending) TopLookups(ctx context.Context, period string, limit int) ([]domain.LookupCount, error) {
	result, err := t.Client.ZRevRangeWithScores(ctx, t.KeyFor(period), 0, int64(limit-1)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	lookups := make([]domain.LookupCount, 0, len(result))
	for _, member := range result {
		word, ok := member.Member.(string)
		if !ok {
			continue
		}
		lookups = append(lookups, domain.LookupCount{Word: word, Count: int64(member.Score)})
	}
	return lookups, nil
}
