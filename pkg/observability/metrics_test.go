package observability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestInitMetricsServesAnalysisCounters(t *testing.T) {
	provider, handler, err := InitMetrics(MetricsConfig{ServiceName: "scamalyst-test"})
	if err != nil {
		t.Fatalf("InitMetrics: %v", err)
	}
	defer func() { _ = provider.Shutdown(context.Background()) }()

	m, err := NewAnalysisMetrics(provider.Meter("test"))
	if err != nil {
		t.Fatalf("NewAnalysisMetrics: %v", err)
	}

	ctx := context.Background()
	m.RecordAnalysis(ctx, "message", "Likely Scam", 8, true)
	m.RecordInference(ctx, "facebook/bart-large-mnli", "ok")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{"scamalyst_analyses", "scamalyst_analysis_score", "scamalyst_inference_requests"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestInitMetricsTwice(t *testing.T) {
	for i := 0; i < 2; i++ {
		if _, _, err := InitMetrics(MetricsConfig{}); err != nil {
			t.Fatalf("InitMetrics call %d: %v", i, err)
		}
	}
}

func TestNilAnalysisMetricsIsNoop(t *testing.T) {
	var m *AnalysisMetrics
	m.RecordAnalysis(context.Background(), "ai", "Likely Human", 0, false)
	m.RecordInference(context.Background(), "m", "error")
}

func TestInitTracerWithoutEndpoint(t *testing.T) {
	provider, err := InitTracer(context.Background(), TracingConfig{ServiceName: "scamalyst-test", SampleRatio: 1})
	if err != nil {
		t.Fatalf("InitTracer: %v", err)
	}
	_, span := provider.Tracer("test").Start(context.Background(), "span")
	if !span.SpanContext().IsValid() {
		t.Error("expected a sampled span")
	}
	span.End()
	_ = provider.Shutdown(context.Background())
}
