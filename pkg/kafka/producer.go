package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Producer publishes to any number of topics over one shared transport.
// Writers are created lazily, one per topic, and live until Close.
type Producer struct {
	brokers   []string
	transport *kafkago.Transport
	timeout   time.Duration

	mu      sync.Mutex
	writers map[string]*kafkago.Writer
}

// NewProducer validates cfg and prepares the transport. No connection is
// made until the first Publish.
func NewProducer(cfg Config) (*Producer, error) {
	if !cfg.Enabled() {
		return nil, ErrNoBrokers
	}
	transport, err := cfg.transport()
	if err != nil {
		return nil, fmt.Errorf("kafka: %w", err)
	}
	return &Producer{
		brokers:   cfg.Brokers,
		transport: transport,
		timeout:   cfg.WriteTimeout,
		writers:   map[string]*kafkago.Writer{},
	}, nil
}

// Publish writes messages to topic in one batch and waits for all in-sync
// replicas to acknowledge. Messages with the same key land on the same
// partition.
func (p *Producer) Publish(ctx context.Context, topic string, messages ...Message) error {
	if len(messages) == 0 {
		return nil
	}
	batch := make([]kafkago.Message, len(messages))
	for i, m := range messages {
		batch[i] = m.toKafka()
	}
	if err := p.writer(topic).WriteMessages(ctx, batch...); err != nil {
		return fmt.Errorf("kafka: publish %d message(s) to %s: %w", len(batch), topic, err)
	}
	return nil
}

// Close flushes and closes every writer. The producer may be reused after
// Close; new writers are created on demand.
func (p *Producer) Close() error {
	p.mu.Lock()
	writers := p.writers
	p.writers = map[string]*kafkago.Writer{}
	p.mu.Unlock()

	var errs []error
	for topic, w := range writers {
		if err := w.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s writer: %w", topic, err))
		}
	}
	return errors.Join(errs...)
}

func (p *Producer) writer(topic string) *kafkago.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	w, ok := p.writers[topic]
	if !ok {
		w = &kafkago.Writer{
			Addr:                   kafkago.TCP(p.brokers...),
			Topic:                  topic,
			Transport:              p.transport,
			Balancer:               &kafkago.Hash{},
			RequiredAcks:           kafkago.RequireAll,
			BatchTimeout:           10 * time.Millisecond,
			WriteTimeout:           p.timeout,
			AllowAutoTopicCreation: true,
		}
		p.writers[topic] = w
	}
	return w
}
