package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/naomili-code/scamalyst/internal/application/dto"
	"github.com/naomili-code/scamalyst/internal/domain/port"
	"github.com/naomili-code/scamalyst/pkg/observability"
)

// ErrMissingModelOrInputs is returned when a relay request lacks a model or inputs.
var ErrMissingModelOrInputs = errors.New("missing model or inputs")

// RelayInference is the use case for forwarding a caller's request to a hosted model.
type RelayInference struct {
	client  port.InferenceClient
	metrics *observability.AnalysisMetrics
	logger  *slog.Logger
}

// NewRelayInference creates a new RelayInference use case.
func NewRelayInference(client port.InferenceClient, metrics *observability.AnalysisMetrics, logger *slog.Logger) *RelayInference {
	if logger == nil {
		logger = slog.Default()
	}
	return &RelayInference{client: client, metrics: metrics, logger: logger}
}

// Execute validates the request and returns the upstream answer unchanged,
// including non-2xx answers.
func (uc *RelayInference) Execute(ctx context.Context, req dto.InferRequest) (dto.InferResponse, error) {
	ctx, span := tracer.Start(ctx, "RelayInference")
	defer span.End()

	if req.Model == "" || isFalsy(req.Inputs) {
		return dto.InferResponse{}, ErrMissingModelOrInputs
	}

	resp, err := uc.client.Infer(ctx, req.Model, req.Inputs)
	if err != nil {
		outcome := "error"
		if errors.Is(err, port.ErrMissingAPIKey) {
			outcome = "unconfigured"
		}
		uc.metrics.RecordInference(ctx, req.Model, outcome)
		uc.logger.ErrorContext(ctx, "inference relay failed", "model", req.Model, "error", err)
		return dto.InferResponse{}, fmt.Errorf("inference relay: %w", err)
	}

	outcome := "ok"
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		outcome = "upstream_error"
		uc.logger.WarnContext(ctx, "inference upstream error", "model", req.Model, "status", resp.StatusCode)
	}
	uc.metrics.RecordInference(ctx, req.Model, outcome)

	return dto.InferResponse{Body: resp.Body, StatusCode: resp.StatusCode}, nil
}

// isFalsy reports whether a JSON value is absent or one of null, false, 0 or "".
func isFalsy(raw []byte) bool {
	v := bytes.TrimSpace(raw)
	switch string(v) {
	case "", "null", "false", "0", `""`:
		return true
	}
	return false
}
