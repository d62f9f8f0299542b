package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"employee-insights/agg-svc/internal/domain"

	"github.com/sirupsen/logrus"
)

// DefaultRetryDelay is the pause after a failed read before polling again.
const DefaultRetryDelay = 500 * time.Millisecond

type Consumer struct {
	Reader     MessageReader
	Store      StoreInterface
	Log        logrus.FieldLogger
	Now        func() time.Time
	RetryDelay time.Duration
}

func NewConsumer(reader MessageReader, store StoreInterface, log logrus.FieldLogger) *Consumer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Consumer{
		Reader:     reader,
		Store:      store,
		Log:        log,
		Now:        time.Now,
		RetryDelay: DefaultRetryDelay,
	}
}

// Start reads lookup events until ctx is cancelled. Messages that cannot be
// decoded are logged and skipped; a failed read waits RetryDelay first.
func (c *Consumer) Start(ctx context.Context) {
	c.Log.Info("Starting lookup aggregation consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				c.Log.Info("Lookup aggregation consumer stopped")
				return
			}
			c.Log.WithError(err).Error("Error reading message")
			select {
			case <-ctx.Done():
				c.Log.Info("Lookup aggregation consumer stopped")
				return
			case <-time.After(c.RetryDelay):
			}
			continue
		}

		var event domain.LookupEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			c.Log.WithError(err).WithField("offset", message.Offset).Warn("Error unmarshaling message")
			continue
		}

		c.ProcessLookup(ctx, event)
	}
}

func (c *Consumer) ProcessLookup(ctx context.Context, event domain.LookupEvent) {
	if event.Type != domain.LookupEventType || event.Word == "" {
		return
	}

	at := event.Timestamp
	if at.IsZero() {
		at = c.Now()
	}

	if err := c.Store.IncrementLookup(ctx, event.Word, at); err != nil {
		c.Log.WithError(err).WithField("word", event.Word).Error("Error updating lookup counters")
		return
	}

	c.Log.WithField("word", event.Word).Debug("Processed lookup")
}
