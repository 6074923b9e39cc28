package usecase_test

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/naomili-code/scamalyst/internal/domain/port"
	"github.com/naomili-code/scamalyst/pkg/events"
)

// --- Mock implementations ---

type mockEventPublisher struct {
	mu              sync.Mutex
	publishedEvents []events.DomainEvent
	publishFunc     func(ctx context.Context, evts ...events.DomainEvent) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

func (m *mockEventPublisher) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.publishedEvents))
	for _, e := range m.publishedEvents {
		out = append(out, e.EventType())
	}
	return out
}

type mockInferenceClient struct {
	mu        sync.Mutex
	calls     []string
	inferFunc func(ctx context.Context, model string, inputs json.RawMessage) (port.InferenceResponse, error)
}

func (m *mockInferenceClient) Infer(ctx context.Context, model string, inputs json.RawMessage) (port.InferenceResponse, error) {
	m.mu.Lock()
	m.calls = append(m.calls, model)
	m.mu.Unlock()
	if m.inferFunc != nil {
		return m.inferFunc(ctx, model, inputs)
	}
	return port.InferenceResponse{StatusCode: 200, Body: json.RawMessage(`{"labels":["spam"],"scores":[0.9]}`)}, nil
}
