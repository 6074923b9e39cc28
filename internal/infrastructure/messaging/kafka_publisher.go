package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/naomili-code/scamalyst/internal/domain/port"
	"github.com/naomili-code/scamalyst/pkg/events"
	pkgkafka "github.com/naomili-code/scamalyst/pkg/kafka"
)

// Header names set on every published message.
const (
	HeaderEventType     = "event_type"
	HeaderEventID       = "event_id"
	HeaderAggregateType = "aggregate_type"
)

var _ port.EventPublisher = (*KafkaPublisher)(nil)

// MessagePublisher is the subset of *pkgkafka.Producer the publisher needs.
type MessagePublisher interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// KafkaPublisher sends domain events to one topic as JSON envelopes keyed
// by analysis id, so every event of an analysis shares a partition.
type KafkaPublisher struct {
	producer MessagePublisher
	topic    string
	logger   *slog.Logger
}

func NewKafkaPublisher(producer MessagePublisher, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, logger: logger}
}

// Publish sends the events as a single batch. Nothing is sent if any event
// fails to encode.
func (p *KafkaPublisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	if len(domainEvents) == 0 {
		return nil
	}
	batch := make([]pkgkafka.Message, len(domainEvents))
	for i, evt := range domainEvents {
		msg, err := envelopeMessage(evt)
		if err != nil {
			return err
		}
		batch[i] = msg
	}

	if err := p.producer.Publish(ctx, p.topic, batch...); err != nil {
		return fmt.Errorf("publish %d event(s) to %s: %w", len(batch), p.topic, err)
	}
	p.logger.DebugContext(ctx, "events published", "topic", p.topic, "count", len(batch))
	return nil
}

func envelopeMessage(evt events.DomainEvent) (pkgkafka.Message, error) {
	value, err := json.Marshal(events.NewEnvelope(evt))
	if err != nil {
		return pkgkafka.Message{}, fmt.Errorf("encode %s envelope: %w", evt.EventType(), err)
	}
	return pkgkafka.Message{
		Key:   []byte(evt.AggregateID().String()),
		Value: value,
		Headers: map[string]string{
			HeaderEventType:     evt.EventType(),
			HeaderEventID:       evt.EventID().String(),
			HeaderAggregateType: evt.AggregateType(),
		},
	}, nil
}
