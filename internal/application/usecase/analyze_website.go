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

// AnalyzeWebsite is the use case for scoring a URL or a page's markup.
type AnalyzeWebsite struct {
	recorder
	scorer *service.WebsiteScorer
}

// NewAnalyzeWebsite creates a new AnalyzeWebsite use case.
func NewAnalyzeWebsite(
	scorer *service.WebsiteScorer,
	publisher port.EventPublisher,
	metrics *observability.AnalysisMetrics,
	logger *slog.Logger,
) *AnalyzeWebsite {
	return &AnalyzeWebsite{
		recorder: newRecorder(publisher, metrics, logger),
		scorer:   scorer,
	}
}

// Execute runs the website detector and publishes the analysis events.
func (uc *AnalyzeWebsite) Execute(ctx context.Context, req dto.AnalyzeWebsiteRequest) (dto.WebsiteAnalysisResponse, error) {
	ctx, span := tracer.Start(ctx, "AnalyzeWebsite")
	defer span.End()

	analysis, err := model.NewAnalysis(valueobject.AnalysisKindWebsite, len(req.Input))
	if err != nil {
		return dto.WebsiteAnalysisResponse{}, fmt.Errorf("failed to create analysis: %w", err)
	}

	result := uc.scorer.Analyze(req.Input)
	if err := analysis.CompleteWebsite(result); err != nil {
		return dto.WebsiteAnalysisResponse{}, fmt.Errorf("failed to complete analysis: %w", err)
	}
	span.SetAttributes(
		attribute.String("analysis.id", analysis.ID().String()),
		attribute.String("analysis.mode", string(result.Mode)),
		attribute.String("analysis.verdict", result.Verdict()),
		attribute.Float64("analysis.score", result.Score),
	)

	uc.finish(ctx, analysis)

	return dto.FromWebsiteResult(analysis, result), nil
}
