package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"employee-insights/insights-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	Writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

// PublishLookup keys messages by word so every lookup of a word lands on the
// same partition.
func (p *KafkaPublisher) PublishLookup(ctx context.Context, event domain.LookupEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal lookup event: %w", err)
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Word),
		Value: payload,
		Time:  event.Timestamp,
	})
}
