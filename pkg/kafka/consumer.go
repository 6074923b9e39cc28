package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"
)

// Handler processes one consumed message. A non-nil error is logged and the
// message is skipped; committing a later offset moves past it.
type Handler func(ctx context.Context, msg Message) error

// Consumer reads one topic as a member of a consumer group.
type Consumer struct {
	reader  *kafkago.Reader
	handler Handler
	logger  *slog.Logger
}

// NewConsumer joins cfg.ConsumerGroup on topic. An offset is committed after
// its handler succeeds; failed messages are logged and skipped, not retried.
func NewConsumer(cfg Config, topic string, handler Handler, logger *slog.Logger) (*Consumer, error) {
	switch {
	case !cfg.Enabled():
		return nil, ErrNoBrokers
	case cfg.ConsumerGroup == "":
		return nil, errors.New("kafka: consumer group is required")
	case handler == nil:
		return nil, errors.New("kafka: handler is required")
	}
	dialer, err := cfg.dialer()
	if err != nil {
		return nil, fmt.Errorf("kafka: %w", err)
	}

	return &Consumer{
		reader: kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:  cfg.Brokers,
			GroupID:  cfg.ConsumerGroup,
			Topic:    topic,
			Dialer:   dialer,
			MinBytes: 1,
			MaxBytes: 10 << 20,
		}),
		handler: handler,
		logger:  logger.With("topic", topic, "group", cfg.ConsumerGroup),
	}, nil
}

// Start blocks consuming messages until ctx ends, which is not an error.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("consumer started")
	defer c.logger.Info("consumer stopped")

	for {
		km, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("kafka: fetch: %w", err)
		}
		c.process(ctx, km)
	}
}

func (c *Consumer) process(ctx context.Context, km kafkago.Message) {
	log := c.logger.With("partition", km.Partition, "offset", km.Offset)
	if err := c.handler(ctx, fromKafka(km)); err != nil {
		log.Error("handler failed", "error", err)
		return
	}
	if err := c.reader.CommitMessages(ctx, km); err != nil && ctx.Err() == nil {
		log.Error("commit failed", "error", err)
	}
}

// Close leaves the group and releases the reader.
func (c *Consumer) Close() error {
	if err := c.reader.Close(); err != nil {
		return fmt.Errorf("kafka: close reader: %w", err)
	}
	return nil
}
