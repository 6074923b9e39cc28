//go:build integration

package kafka

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/naomili-code/scamalyst/pkg/testutil"
)

func TestProduceConsumeRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	kc := testutil.NewKafkaContainer(ctx, t)

	cfg := Config{Brokers: kc.Brokers, ClientID: "scamalyst-it", ConsumerGroup: "scamalyst-it"}
	topic := "scamalyst.analysis.it"

	producer, err := NewProducer(cfg)
	if err != nil {
		t.Fatalf("NewProducer: %v", err)
	}
	defer producer.Close()

	if err := producer.Publish(ctx, topic, Message{
		Key:     []byte(testutil.TestAnalysisID1.String()),
		Value:   []byte(`{"type":"analysis.completed"}`),
		Headers: map[string]string{"event_type": "analysis.completed"},
	}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	got := make(chan Message, 1)
	consumer, err := NewConsumer(cfg, topic, func(_ context.Context, msg Message) error {
		got <- msg
		return nil
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("NewConsumer: %v", err)
	}
	defer consumer.Close()

	consumeCtx, stop := context.WithCancel(ctx)
	defer stop()
	go func() { _ = consumer.Start(consumeCtx) }()

	select {
	case msg := <-got:
		if string(msg.Key) != testutil.TestAnalysisID1.String() {
			t.Errorf("Key = %q", msg.Key)
		}
		if msg.Headers["event_type"] != "analysis.completed" {
			t.Errorf("Headers = %v", msg.Headers)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for message")
	}
}
