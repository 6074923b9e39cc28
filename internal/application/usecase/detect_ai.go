package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/naomili-code/scamalyst/internal/application/dto"
	"github.com/naomili-code/scamalyst/internal/domain/model"
	"github.com/naomili-code/scamalyst/internal/domain/port"
	"github.com/naomili-code/scamalyst/internal/domain/service"
	"github.com/naomili-code/scamalyst/internal/domain/valueobject"
	"github.com/naomili-code/scamalyst/pkg/observability"
)

// DetectAI is the use case for estimating whether text was machine written.
type DetectAI struct {
	recorder
	detector *service.AIDetector
}

// NewDetectAI creates a new DetectAI use case.
func NewDetectAI(
	detector *service.AIDetector,
	publisher port.EventPublisher,
	metrics *observability.AnalysisMetrics,
	logger *slog.Logger,
) *DetectAI {
	return &DetectAI{
		recorder: newRecorder(publisher, metrics, logger),
		detector: detector,
	}
}

// Execute runs the AI-text detector and publishes the analysis events.
func (uc *DetectAI) Execute(ctx context.Context, req dto.AnalyzeTextRequest) (dto.AIAnalysisResponse, error) {
	ctx, span := tracer.Start(ctx, "DetectAI")
	defer span.End()

	analysis, err := model.NewAnalysis(valueobject.AnalysisKindAI, len(req.Text))
	if err != nil {
		return dto.AIAnalysisResponse{}, fmt.Errorf("failed to create analysis: %w", err)
	}

	result := uc.detector.Detect(req.Text)
	if err := analysis.CompleteAI(result); err != nil {
		return dto.AIAnalysisResponse{}, fmt.Errorf("failed to complete analysis: %w", err)
	}
	span.SetAttributes(
		attribute.String("analysis.id", analysis.ID().String()),
		attribute.String("analysis.verdict", result.Verdict),
		attribute.Float64("analysis.score", result.Score),
	)

	uc.finish(ctx, analysis)

	return dto.FromAIAnalysis(analysis), nil
}
