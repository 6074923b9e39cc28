package usecase

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"

	"github.com/naomili-code/scamalyst/internal/domain/model"
	"github.com/naomili-code/scamalyst/internal/domain/port"
	"github.com/naomili-code/scamalyst/pkg/observability"
)

var tracer = otel.Tracer("github.com/naomili-code/scamalyst/internal/application/usecase")

// recorder publishes the events of a finished analysis and counts it.
// Publish failures never fail the analysis.
type recorder struct {
	publisher port.EventPublisher
	metrics   *observability.AnalysisMetrics
	logger    *slog.Logger
}

func newRecorder(publisher port.EventPublisher, metrics *observability.AnalysisMetrics, logger *slog.Logger) recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return recorder{publisher: publisher, metrics: metrics, logger: logger}
}

func (r recorder) finish(ctx context.Context, a *model.Analysis) {
	r.metrics.RecordAnalysis(ctx, a.Kind().String(), a.Verdict(), a.Score(), a.HighRisk())
	r.publish(ctx, a)
}

func (r recorder) publish(ctx context.Context, a *model.Analysis) {
	evts := a.ClearEvents()
	if len(evts) == 0 || r.publisher == nil {
		return
	}
	if err := r.publisher.Publish(ctx, evts...); err != nil {
		r.logger.ErrorContext(ctx, "failed to publish analysis events",
			"analysis_id", a.ID(),
			"kind", a.Kind().String(),
			"events", len(evts),
			"error", err,
		)
	}
}
