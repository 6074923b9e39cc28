package port

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/naomili-code/scamalyst/pkg/events"
)

// ErrMissingAPIKey is returned by an inference client that has no credential.
var ErrMissingAPIKey = errors.New("missing API key")

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	// Publish sends one or more domain events to the messaging infrastructure.
	Publish(ctx context.Context, events ...events.DomainEvent) error
}

// InferenceResponse is the opaque payload returned by a hosted model.
type InferenceResponse struct {
	Body       json.RawMessage
	StatusCode int
}

// InferenceClient defines the port to a remote text-classification model.
// Scoring never depends on it; it only enriches or relays.
type InferenceClient interface {
	// Infer posts inputs to the named model and returns its raw response.
	// A non-2xx upstream answer is returned as a response, not an error.
	Infer(ctx context.Context, model string, inputs json.RawMessage) (InferenceResponse, error)
}

// UpstreamError wraps a non-2xx inference answer for callers that need an error.
type UpstreamError struct {
	Body       json.RawMessage
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("inference upstream returned status %d", e.StatusCode)
}
