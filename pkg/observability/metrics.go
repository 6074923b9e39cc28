package observability

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	ServiceName string
}

// InitMetrics initializes the Prometheus metrics exporter on a private
// registry. Returns the MeterProvider and an HTTP handler for /metrics.
func InitMetrics(_ MetricsConfig) (*sdkmetric.MeterProvider, http.Handler, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return provider, handler, nil
}

// AnalysisMetrics holds the instruments recorded by the analysis use cases.
// A nil *AnalysisMetrics records nothing.
type AnalysisMetrics struct {
	analyses  metric.Int64Counter
	highRisk  metric.Int64Counter
	scores    metric.Float64Histogram
	inference metric.Int64Counter
}

// NewAnalysisMetrics registers the analysis instruments on meter.
func NewAnalysisMetrics(meter metric.Meter) (*AnalysisMetrics, error) {
	analyses, err := meter.Int64Counter("scamalyst.analyses",
		metric.WithDescription("Completed analyses by kind and verdict"))
	if err != nil {
		return nil, fmt.Errorf("create analyses counter: %w", err)
	}

	highRisk, err := meter.Int64Counter("scamalyst.analyses.high_risk",
		metric.WithDescription("Analyses that landed in the top risk band"))
	if err != nil {
		return nil, fmt.Errorf("create high risk counter: %w", err)
	}

	scores, err := meter.Float64Histogram("scamalyst.analysis.score",
		metric.WithDescription("Reported analysis scores"),
		metric.WithExplicitBucketBoundaries(0, 0.35, 0.6, 1, 2, 3, 4, 6, 7, 8, 10))
	if err != nil {
		return nil, fmt.Errorf("create score histogram: %w", err)
	}

	inference, err := meter.Int64Counter("scamalyst.inference.requests",
		metric.WithDescription("Inference calls by model and outcome"))
	if err != nil {
		return nil, fmt.Errorf("create inference counter: %w", err)
	}

	return &AnalysisMetrics{
		analyses:  analyses,
		highRisk:  highRisk,
		scores:    scores,
		inference: inference,
	}, nil
}

// RecordAnalysis counts one completed analysis.
func (m *AnalysisMetrics) RecordAnalysis(ctx context.Context, kind, verdict string, score float64, highRisk bool) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("verdict", verdict),
	)
	m.analyses.Add(ctx, 1, attrs)
	m.scores.Record(ctx, score, metric.WithAttributes(attribute.String("kind", kind)))
	if highRisk {
		m.highRisk.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
	}
}

// RecordInference counts one inference call. outcome is "ok", "upstream_error",
// "unconfigured" or "error".
func (m *AnalysisMetrics) RecordInference(ctx context.Context, model, outcome string) {
	if m == nil {
		return
	}
	m.inference.Add(ctx, 1, metric.WithAttributes(
		attribute.String("model", model),
		attribute.String("outcome", outcome),
	))
}
