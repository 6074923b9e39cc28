package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/naomili-code/scamalyst/internal/domain/port"
)

// ErrMissingAPIKey is returned when no Hugging Face key is configured.
var ErrMissingAPIKey = port.ErrMissingAPIKey

// MaxResponseBytes caps how much of an upstream response is read.
const MaxResponseBytes = 4 << 20

// Compile-time interface check.
var _ port.InferenceClient = (*HuggingFaceClient)(nil)

// HuggingFaceClient implements port.InferenceClient against the Hugging Face
// hosted inference API.
type HuggingFaceClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewHuggingFaceClient creates a new client. A zero timeout uses 120s.
func NewHuggingFaceClient(apiKey, baseURL string, timeout time.Duration) *HuggingFaceClient {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &HuggingFaceClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type inferenceRequest struct {
	Inputs json.RawMessage `json:"inputs"`
}

// Infer posts {"inputs": inputs} to the model endpoint. Any HTTP answer,
// including non-2xx, is returned as a response.
func (c *HuggingFaceClient) Infer(ctx context.Context, model string, inputs json.RawMessage) (port.InferenceResponse, error) {
	if c.apiKey == "" {
		return port.InferenceResponse{}, ErrMissingAPIKey
	}

	payload, err := json.Marshal(inferenceRequest{Inputs: inputs})
	if err != nil {
		return port.InferenceResponse{}, fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := c.baseURL + "/" + modelPath(model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return port.InferenceResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return port.InferenceResponse{}, fmt.Errorf("inference API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes+1))
	if err != nil {
		return port.InferenceResponse{}, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > MaxResponseBytes {
		return port.InferenceResponse{}, fmt.Errorf("inference response exceeds %d bytes", MaxResponseBytes)
	}

	if !json.Valid(body) {
		body, _ = json.Marshal(map[string]string{"error": strings.TrimSpace(string(body))})
	}

	return port.InferenceResponse{Body: body, StatusCode: resp.StatusCode}, nil
}

// modelPath escapes each segment of an "owner/name" model id.
func modelPath(model string) string {
	parts := strings.Split(model, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
