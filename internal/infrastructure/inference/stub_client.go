package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/naomili-code/scamalyst/internal/domain/port"
)

// Compile-time interface check
var _ port.InferenceClient = (*StubClient)(nil)

// StubClient answers every request with a fixed zero-shot classification.
// It is used in development and tests where no key is available.
type StubClient struct{}

func NewStubClient() *StubClient {
	return &StubClient{}
}

// Infer echoes the inputs back with neutral labels.
func (s *StubClient) Infer(_ context.Context, model string, inputs json.RawMessage) (port.InferenceResponse, error) {
	if model == "" {
		return port.InferenceResponse{}, fmt.Errorf("model is required")
	}

	body, err := json.Marshal(map[string]any{
		"sequence": inputs,
		"labels":   []string{"scam", "legitimate"},
		"scores":   []float64{0.5, 0.5},
	})
	if err != nil {
		return port.InferenceResponse{}, fmt.Errorf("failed to encode stub response: %w", err)
	}
	return port.InferenceResponse{Body: body, StatusCode: http.StatusOK}, nil
}
