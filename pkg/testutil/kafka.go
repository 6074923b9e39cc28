package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go/modules/kafka"
)

const kafkaImage = "confluentinc/confluent-local:7.6.1"

// KafkaContainer is a throwaway single-node broker.
type KafkaContainer struct {
	Container *kafka.KafkaContainer
	Brokers   []string
}

// NewKafkaContainer starts a broker for integration tests and registers its
// termination with t.Cleanup. Under -short the test is skipped.
func NewKafkaContainer(ctx context.Context, t *testing.T) *KafkaContainer {
	t.Helper()
	if testing.Short() {
		t.Skip("kafka container skipped in -short mode")
	}

	c, err := kafka.Run(ctx, kafkaImage, kafka.WithClusterID("scamalyst-test"))
	if err != nil {
		t.Fatalf("start kafka: %v", err)
	}
	kc := &KafkaContainer{Container: c}
	t.Cleanup(func() { kc.Cleanup(t) })

	if kc.Brokers, err = c.Brokers(ctx); err != nil {
		t.Fatalf("kafka brokers: %v", err)
	}
	return kc
}

// Cleanup terminates the container. It is safe to call more than once.
func (kc *KafkaContainer) Cleanup(t *testing.T) {
	t.Helper()
	if kc.Container == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := kc.Container.Terminate(ctx); err != nil {
		t.Logf("terminate kafka: %v", err)
	}
	kc.Container = nil
}
