package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/naomili-code/scamalyst/internal/application/dto"
	"github.com/naomili-code/scamalyst/internal/domain/model"
	"github.com/naomili-code/scamalyst/internal/domain/port"
	"github.com/naomili-code/scamalyst/internal/domain/service"
	"github.com/naomili-code/scamalyst/internal/domain/valueobject"
	"github.com/naomili-code/scamalyst/pkg/observability"
)

// DefaultEnrichTimeout bounds one enrichment call.
const DefaultEnrichTimeout = 120 * time.Second

// AnalyzeMessage is the use case for scoring a message and classifying its scam archetype.
type AnalyzeMessage struct {
	recorder
	scorer     *service.MessageScorer
	classifier *service.ScamTypeClassifier

	inference     port.InferenceClient
	enrichModel   string
	enrichTimeout time.Duration
	pending       sync.WaitGroup
}

// NewAnalyzeMessage creates a new AnalyzeMessage use case.
func NewAnalyzeMessage(
	scorer *service.MessageScorer,
	classifier *service.ScamTypeClassifier,
	publisher port.EventPublisher,
	metrics *observability.AnalysisMetrics,
	logger *slog.Logger,
) *AnalyzeMessage {
	return &AnalyzeMessage{
		recorder:   newRecorder(publisher, metrics, logger),
		scorer:     scorer,
		classifier: classifier,
	}
}

// WithEnrichment sends every non-empty message to model in the background
// and publishes the answer as an AnalysisEnriched event. A zero timeout
// uses DefaultEnrichTimeout.
func (uc *AnalyzeMessage) WithEnrichment(client port.InferenceClient, model string, timeout time.Duration) *AnalyzeMessage {
	if timeout <= 0 {
		timeout = DefaultEnrichTimeout
	}
	uc.inference = client
	uc.enrichModel = model
	uc.enrichTimeout = timeout
	return uc
}

// Execute scores the message, classifies it, and publishes the analysis events.
func (uc *AnalyzeMessage) Execute(ctx context.Context, req dto.AnalyzeTextRequest) (dto.MessageAnalysisResponse, error) {
	ctx, span := tracer.Start(ctx, "AnalyzeMessage")
	defer span.End()

	analysis, err := model.NewAnalysis(valueobject.AnalysisKindMessage, len(req.Text))
	if err != nil {
		return dto.MessageAnalysisResponse{}, fmt.Errorf("failed to create analysis: %w", err)
	}

	result := uc.scorer.Analyze(req.Text)
	classification := uc.classifier.Classify(req.Text, result.Reasons, result.Score)

	if err := analysis.CompleteMessage(result, classification); err != nil {
		return dto.MessageAnalysisResponse{}, fmt.Errorf("failed to complete analysis: %w", err)
	}
	span.SetAttributes(
		attribute.String("analysis.id", analysis.ID().String()),
		attribute.String("analysis.verdict", result.Verdict),
		attribute.String("analysis.scam_type", classification.Type.String()),
		attribute.Float64("analysis.score", result.Score),
	)

	uc.finish(ctx, analysis)

	resp := dto.FromMessageAnalysis(
		analysis,
		classification,
		service.SafetyActions(classification, result.Score),
		service.Highlights(req.Text, classification, result.Score),
	)

	if uc.inference != nil && uc.enrichModel != "" && strings.TrimSpace(req.Text) != "" {
		uc.pending.Add(1)
		go uc.enrich(context.WithoutCancel(ctx), analysis, req.Text)
	}

	return resp, nil
}

// Wait blocks until in-flight enrichments finish.
func (uc *AnalyzeMessage) Wait() {
	uc.pending.Wait()
}

func (uc *AnalyzeMessage) enrich(ctx context.Context, analysis *model.Analysis, text string) {
	defer uc.pending.Done()

	ctx, cancel := context.WithTimeout(ctx, uc.enrichTimeout)
	defer cancel()

	inputs, err := json.Marshal(text)
	if err != nil {
		return
	}

	resp, err := uc.inference.Infer(ctx, uc.enrichModel, inputs)
	if err != nil {
		uc.metrics.RecordInference(ctx, uc.enrichModel, "error")
		uc.logger.WarnContext(ctx, "enrichment failed",
			"analysis_id", analysis.ID(),
			"model", uc.enrichModel,
			"error", err,
		)
		return
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		uc.metrics.RecordInference(ctx, uc.enrichModel, "upstream_error")
		uc.logger.WarnContext(ctx, "enrichment upstream error",
			"analysis_id", analysis.ID(),
			"model", uc.enrichModel,
			"status", resp.StatusCode,
		)
		return
	}
	uc.metrics.RecordInference(ctx, uc.enrichModel, "ok")

	if err := analysis.Enrich(uc.enrichModel, resp.Body); err != nil {
		uc.logger.WarnContext(ctx, "enrichment rejected", "analysis_id", analysis.ID(), "error", err)
		return
	}
	uc.publish(ctx, analysis)
}
