package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naomili-code/scamalyst/internal/application/usecase"
	"github.com/naomili-code/scamalyst/internal/domain/port"
	"github.com/naomili-code/scamalyst/internal/domain/rules"
	"github.com/naomili-code/scamalyst/internal/domain/service"
	"github.com/naomili-code/scamalyst/internal/infrastructure/inference"
	"github.com/naomili-code/scamalyst/internal/infrastructure/messaging"
	"github.com/naomili-code/scamalyst/internal/presentation/rest"
	"github.com/naomili-code/scamalyst/pkg/auth"
	"github.com/naomili-code/scamalyst/pkg/testutil"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type routerOpts struct {
	client    port.InferenceClient
	jwt       *auth.JWTService
	rateLimit int
	maxBody   int64
	checks    map[string]rest.ReadinessCheck
}

func newRouter(t *testing.T, opts routerOpts) http.Handler {
	t.Helper()
	if opts.client == nil {
		opts.client = inference.NewStubClient()
	}
	if opts.rateLimit == 0 {
		opts.rateLimit = 100
	}
	if opts.maxBody == 0 {
		opts.maxBody = 50 * 1024
	}

	publisher := messaging.NewLogPublisher(discard)
	analysis := rest.NewAnalysisHandler(
		usecase.NewAnalyzeMessage(service.NewMessageScorer(), service.NewScamTypeClassifier(), publisher, nil, discard),
		usecase.NewDetectAI(service.NewAIDetector(), publisher, nil, discard),
		usecase.NewAnalyzeWebsite(service.NewWebsiteScorer(), publisher, nil, discard),
		usecase.NewRelayInference(opts.client, nil, discard),
		discard,
	)
	health := rest.NewHealthHandler(discard, opts.checks)

	return rest.NewRouter(rest.RouterConfig{
		Logger:      discard,
		JWT:         opts.jwt,
		Metrics:     http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte("# metrics")) }),
		RateLimit:   opts.rateLimit,
		RateWindow:  time.Minute,
		MaxBodySize: opts.maxBody,
	}, analysis, health)
}

func do(h http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeMessageEndpoint(t *testing.T) {
	h := newRouter(t, routerOpts{})

	rec := do(h, http.MethodPost, "/api/v1/analyze/message", `{"text":"`+rules.ExampleMessage+`"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := testutil.DecodeJSON(t, rec.Body.Bytes())
	assert.Equal(t, 8.0, body["score"])
	assert.Equal(t, "Likely Scam", body["verdict"])
	assert.Equal(t, 80.0, body["meter_percent"])
	assert.Equal(t, "phishing", body["scam_type"].(map[string]any)["type"])
	assert.NotEmpty(t, body["safety_actions"])
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestAnalyzeAIEndpoint(t *testing.T) {
	h := newRouter(t, routerOpts{})

	rec := do(h, http.MethodPost, "/api/v1/analyze/ai", `{"text":""}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := testutil.DecodeJSON(t, rec.Body.Bytes())
	assert.Equal(t, "No text", body["verdict"])
	assert.Equal(t, []any{"No text provided"}, body["reasons"])
}

func TestAnalyzeWebsiteEndpoint(t *testing.T) {
	h := newRouter(t, routerOpts{})

	rec := do(h, http.MethodPost, "/api/v1/analyze/website", `{"input":"http://gooogle.com"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := testutil.DecodeJSON(t, rec.Body.Bytes())
	assert.Equal(t, 5.0, body["score"])
	assert.Equal(t, "Medium Risk", body["verdict"])
	assert.Equal(t, "url", body["mode"])
	assert.Len(t, body["red_flags"], 2)
}

func TestAnalyzeEndpoints_BadRequests(t *testing.T) {
	h := newRouter(t, routerOpts{maxBody: 64})

	rec := do(h, http.MethodPost, "/api/v1/analyze/message", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(h, http.MethodPost, "/api/v1/analyze/message", ``)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(h, http.MethodPost, "/api/v1/analyze/message", `{"text":"`+strings.Repeat("a", 100)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = do(h, http.MethodGet, "/api/v1/analyze/message", ``)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestInferEndpoint_MissingModelOrInputs(t *testing.T) {
	h := newRouter(t, routerOpts{})

	for _, body := range []string{`{}`, `{"model":"m"}`, `{"inputs":"x"}`, `{"model":"m","inputs":""}`} {
		rec := do(h, http.MethodPost, "/api/infer", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.JSONEq(t, `{"error":"Missing model or inputs"}`, rec.Body.String())
	}
}

func TestInferEndpoint_MissingKey(t *testing.T) {
	h := newRouter(t, routerOpts{client: inference.NewHuggingFaceClient("", "http://127.0.0.1:1", time.Second)})

	rec := do(h, http.MethodPost, "/api/infer", `{"model":"facebook/bart-large-mnli","inputs":"hello"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Server not configured with HF_KEY"}`, rec.Body.String())
}

func TestInferEndpoint_PassesUpstreamThrough(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/facebook/bart-large-mnli", r.URL.Path)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"Model facebook/bart-large-mnli is currently loading"}`))
	}))
	defer upstream.Close()

	h := newRouter(t, routerOpts{client: inference.NewHuggingFaceClient("key", upstream.URL, time.Second)})

	rec := do(h, http.MethodPost, "/api/infer", `{"model":"facebook/bart-large-mnli","inputs":"hello"}`)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"Model facebook/bart-large-mnli is currently loading"}`, rec.Body.String())
}

type failingClient struct{}

func (failingClient) Infer(context.Context, string, json.RawMessage) (port.InferenceResponse, error) {
	return port.InferenceResponse{}, errors.New("connect: connection refused")
}

func TestInferEndpoint_TransportError(t *testing.T) {
	h := newRouter(t, routerOpts{client: failingClient{}})

	rec := do(h, http.MethodPost, "/api/infer", `{"model":"m","inputs":["a"]}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := testutil.DecodeJSON(t, rec.Body.Bytes())
	assert.Contains(t, body["error"], "connection refused")
}

func TestRateLimit(t *testing.T) {
	h := newRouter(t, routerOpts{rateLimit: 2})

	for i := 0; i < 2; i++ {
		rec := do(h, http.MethodGet, "/api/v1/examples", ``)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := do(h, http.MethodGet, "/api/v1/examples", ``)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestAuthEnabled(t *testing.T) {
	svc, err := auth.NewJWTService(auth.JWTConfig{Secret: "test-secret", Issuer: "scamalyst"})
	require.NoError(t, err)
	h := newRouter(t, routerOpts{jwt: svc})

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/healthz", ``).Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/api/v1/examples", ``).Code)
	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodPost, "/api/v1/analyze/ai", `{"text":"x"}`).Code)

	analyst, err := svc.GenerateToken("extension", []string{auth.RoleAnalyst})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK,
		do(h, http.MethodPost, "/api/v1/analyze/ai", `{"text":"x"}`, "Authorization", "Bearer "+analyst).Code)
	assert.Equal(t, http.StatusForbidden,
		do(h, http.MethodPost, "/api/infer", `{"model":"m","inputs":"x"}`, "Authorization", "Bearer "+analyst).Code)
}

func TestHealthEndpoints(t *testing.T) {
	h := newRouter(t, routerOpts{checks: map[string]rest.ReadinessCheck{
		"kafka": func(context.Context) error { return errors.New("no brokers reachable") },
	}})

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/healthz", ``).Code)

	rec := do(h, http.MethodGet, "/readyz", ``)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "no brokers reachable")

	rec = do(h, http.MethodGet, "/metrics", ``)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "# metrics")
}

func TestExamplesEndpoint(t *testing.T) {
	h := newRouter(t, routerOpts{})

	rec := do(h, http.MethodGet, "/api/v1/examples", ``)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, rules.ExampleMessage, testutil.DecodeJSON(t, rec.Body.Bytes())["message"])
}
