package rest

import (
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/naomili-code/scamalyst/internal/presentation/middleware"
	"github.com/naomili-code/scamalyst/pkg/auth"
)

// RouterConfig collects the HTTP edge settings.
type RouterConfig struct {
	Metrics     http.Handler
	JWT         *auth.JWTService
	Logger      *slog.Logger
	CORSOrigins []string
	RateLimit   int
	RateWindow  time.Duration
	MaxBodySize int64
}

// publicPaths never require a bearer token.
var publicPaths = []string{"/healthz", "/readyz", "/metrics", "/api/v1/examples"}

// NewRouter mounts the analysis and health routes behind the middleware stack.
func NewRouter(cfg RouterConfig, analysis *AnalysisHandler, health *HealthHandler) http.Handler {
	mux := http.NewServeMux()
	health.RegisterRoutes(mux)
	analysis.RegisterRoutes(mux)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}

	stack := []func(http.Handler) http.Handler{
		middleware.Recover(cfg.Logger),
		middleware.Logging(cfg.Logger),
		middleware.SecurityHeaders,
		middleware.CORS(cfg.CORSOrigins),
		middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)),
		middleware.BodyLimit(cfg.MaxBodySize),
	}
	if cfg.JWT != nil {
		stack = append(stack, middleware.Auth(cfg.JWT, publicPaths))
	}

	return otelhttp.NewHandler(middleware.Chain(mux, stack...), "scamalyst.http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
