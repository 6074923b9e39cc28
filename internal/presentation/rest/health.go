package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const (
	serviceName      = "scamalyst"
	readinessTimeout = 2 * time.Second
)

// ReadinessCheck reports whether a dependency is usable.
type ReadinessCheck func(ctx context.Context) error

// HealthHandler serves /healthz (process up) and /readyz (dependencies up).
type HealthHandler struct {
	checks map[string]ReadinessCheck
	logger *slog.Logger
}

func NewHealthHandler(logger *slog.Logger, checks map[string]ReadinessCheck) *HealthHandler {
	return &HealthHandler{checks: checks, logger: logger}
}

func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, healthBody{Status: "ok", Service: serviceName})
	})
	mux.HandleFunc("GET /readyz", h.readiness)
}

type healthBody struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Failed  map[string]string `json:"failed,omitempty"`
}

// readiness runs every check in parallel under one deadline.
func (h *HealthHandler) readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		failed = map[string]string{}
	)
	for name, check := range h.checks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := check(ctx); err != nil {
				h.logger.WarnContext(ctx, "readiness check failed", "check", name, "error", err)
				mu.Lock()
				failed[name] = err.Error()
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(failed) > 0 {
		writeJSON(w, http.StatusServiceUnavailable, healthBody{Status: "not ready", Service: serviceName, Failed: failed})
		return
	}
	writeJSON(w, http.StatusOK, healthBody{Status: "ready", Service: serviceName})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
