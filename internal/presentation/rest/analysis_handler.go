package rest

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/naomili-code/scamalyst/internal/application/dto"
	"github.com/naomili-code/scamalyst/internal/application/usecase"
	"github.com/naomili-code/scamalyst/internal/domain/port"
	"github.com/naomili-code/scamalyst/internal/domain/rules"
	"github.com/naomili-code/scamalyst/internal/presentation/middleware"
	"github.com/naomili-code/scamalyst/pkg/auth"
)

// Relay error messages are part of the public contract.
const (
	msgMissingModelOrInputs = "Missing model or inputs"
	msgMissingAPIKey        = "Server not configured with HF_KEY"
)

// AnalysisHandler exposes the analyzers and the inference relay over HTTP.
type AnalysisHandler struct {
	analyzeMessage *usecase.AnalyzeMessage
	detectAI       *usecase.DetectAI
	analyzeWebsite *usecase.AnalyzeWebsite
	relay          *usecase.RelayInference
	logger         *slog.Logger
}

// NewAnalysisHandler creates the analysis HTTP handler.
func NewAnalysisHandler(
	analyzeMessage *usecase.AnalyzeMessage,
	detectAI *usecase.DetectAI,
	analyzeWebsite *usecase.AnalyzeWebsite,
	relay *usecase.RelayInference,
	logger *slog.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		analyzeMessage: analyzeMessage,
		detectAI:       detectAI,
		analyzeWebsite: analyzeWebsite,
		relay:          relay,
		logger:         logger,
	}
}

// RegisterRoutes attaches the analysis routes to the given mux.
func (h *AnalysisHandler) RegisterRoutes(mux *http.ServeMux) {
	analyst := middleware.RequireRole(auth.RoleAnalyst)
	mux.Handle("POST /api/v1/analyze/message", analyst(http.HandlerFunc(h.message)))
	mux.Handle("POST /api/v1/analyze/ai", analyst(http.HandlerFunc(h.ai)))
	mux.Handle("POST /api/v1/analyze/website", analyst(http.HandlerFunc(h.website)))
	mux.Handle("POST /api/infer", middleware.RequireRole(auth.RoleInference)(http.HandlerFunc(h.infer)))
	mux.HandleFunc("GET /api/v1/examples", h.examples)
}

func (h *AnalysisHandler) message(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeTextRequest
	if !readJSON(w, r, &req) {
		return
	}
	resp, err := h.analyzeMessage.Execute(r.Context(), req)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AnalysisHandler) ai(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeTextRequest
	if !readJSON(w, r, &req) {
		return
	}
	resp, err := h.detectAI.Execute(r.Context(), req)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AnalysisHandler) website(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeWebsiteRequest
	if !readJSON(w, r, &req) {
		return
	}
	resp, err := h.analyzeWebsite.Execute(r.Context(), req)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AnalysisHandler) infer(w http.ResponseWriter, r *http.Request) {
	var req dto.InferRequest
	if !readJSON(w, r, &req) {
		return
	}

	resp, err := h.relay.Execute(r.Context(), req)
	switch {
	case errors.Is(err, usecase.ErrMissingModelOrInputs):
		writeError(w, http.StatusBadRequest, msgMissingModelOrInputs)
		return
	case errors.Is(err, port.ErrMissingAPIKey):
		writeError(w, http.StatusInternalServerError, msgMissingAPIKey)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(resp.Body)
}

func (h *AnalysisHandler) examples(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, dto.ExamplesResponse{Message: rules.ExampleMessage})
}

func (h *AnalysisHandler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "analysis failed", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// readJSON decodes the request body into v, writing a 4xx on failure.
func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "request entity too large")
		case errors.Is(err, io.EOF):
			writeError(w, http.StatusBadRequest, "request body is required")
		default:
			writeError(w, http.StatusBadRequest, "invalid JSON body")
		}
		return false
	}
	return true
}
