package grpc

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/naomili-code/scamalyst/internal/application/dto"
	"github.com/naomili-code/scamalyst/internal/application/usecase"
)

// Compile-time assertion that AnalyzerHandler implements AnalyzerServiceServer.
var _ AnalyzerServiceServer = (*AnalyzerHandler)(nil)

// AnalyzerHandler implements the gRPC AnalyzerServiceServer interface.
type AnalyzerHandler struct {
	UnimplementedAnalyzerServiceServer
	analyzeMessage *usecase.AnalyzeMessage
	detectAI       *usecase.DetectAI
	analyzeWebsite *usecase.AnalyzeWebsite
	logger         *slog.Logger
}

// NewAnalyzerHandler creates a new gRPC handler.
func NewAnalyzerHandler(
	analyzeMessage *usecase.AnalyzeMessage,
	detectAI *usecase.DetectAI,
	analyzeWebsite *usecase.AnalyzeWebsite,
	logger *slog.Logger,
) *AnalyzerHandler {
	return &AnalyzerHandler{
		analyzeMessage: analyzeMessage,
		detectAI:       detectAI,
		analyzeWebsite: analyzeWebsite,
		logger:         logger,
	}
}

// AnalyzeTextRequest is the request for AnalyzeMessage and DetectAI.
type AnalyzeTextRequest struct {
	Text string `json:"text"`
}

// AnalyzeWebsiteRequest carries a URL or raw page markup.
type AnalyzeWebsiteRequest struct {
	Input string `json:"input"`
}

// ScamTypeMsg is the predicted scam archetype.
type ScamTypeMsg struct {
	Type   string `json:"type"`
	Label  string `json:"label"`
	Detail string `json:"detail"`
}

// MessageAnalysis is the AnalyzeMessage response.
type MessageAnalysis struct {
	ID            string       `json:"id"`
	Score         float64      `json:"score"`
	MeterPercent  int32        `json:"meter_percent"`
	Verdict       string       `json:"verdict"`
	Reasons       []string     `json:"reasons"`
	ScamType      *ScamTypeMsg `json:"scam_type"`
	SafetyActions []string     `json:"safety_actions,omitempty"`
	Highlights    []string     `json:"highlights,omitempty"`
	AnalyzedAt    string       `json:"analyzed_at"`
}

// AIAnalysis is the DetectAI response.
type AIAnalysis struct {
	ID         string   `json:"id"`
	Score      float64  `json:"score"`
	Verdict    string   `json:"verdict"`
	Reasons    []string `json:"reasons"`
	AnalyzedAt string   `json:"analyzed_at"`
}

// RedFlagMsg is one website finding.
type RedFlagMsg struct {
	Category string  `json:"category"`
	Message  string  `json:"message"`
	Weight   float64 `json:"weight"`
}

// WebsiteAnalysis is the AnalyzeWebsite response.
type WebsiteAnalysis struct {
	ID         string        `json:"id"`
	Score      float64       `json:"score"`
	Verdict    string        `json:"verdict"`
	Mode       string        `json:"mode"`
	RedFlags   []*RedFlagMsg `json:"red_flags"`
	AnalyzedAt string        `json:"analyzed_at"`
}

// AnalyzeMessage scores a message for scam signals.
func (h *AnalyzerHandler) AnalyzeMessage(ctx context.Context, req *AnalyzeTextRequest) (*MessageAnalysis, error) {
	resp, err := h.analyzeMessage.Execute(ctx, dto.AnalyzeTextRequest{Text: req.GetText()})
	if err != nil {
		return nil, h.internal(ctx, "AnalyzeMessage", err)
	}
	return &MessageAnalysis{
		ID:           resp.ID.String(),
		Score:        resp.Score,
		MeterPercent: int32(resp.MeterPercent), //nolint:gosec // bounded to [0,100]
		Verdict:      resp.Verdict,
		Reasons:      resp.Reasons,
		ScamType: &ScamTypeMsg{
			Type:   resp.ScamType.Type,
			Label:  resp.ScamType.Label,
			Detail: resp.ScamType.Detail,
		},
		SafetyActions: resp.SafetyActions,
		Highlights:    resp.Highlights,
		AnalyzedAt:    resp.AnalyzedAt.Format(time.RFC3339Nano),
	}, nil
}

// DetectAI estimates whether text was machine-written.
func (h *AnalyzerHandler) DetectAI(ctx context.Context, req *AnalyzeTextRequest) (*AIAnalysis, error) {
	resp, err := h.detectAI.Execute(ctx, dto.AnalyzeTextRequest{Text: req.GetText()})
	if err != nil {
		return nil, h.internal(ctx, "DetectAI", err)
	}
	return &AIAnalysis{
		ID:         resp.ID.String(),
		Score:      resp.Score,
		Verdict:    resp.Verdict,
		Reasons:    resp.Reasons,
		AnalyzedAt: resp.AnalyzedAt.Format(time.RFC3339Nano),
	}, nil
}

// AnalyzeWebsite scores a URL or page markup.
func (h *AnalyzerHandler) AnalyzeWebsite(ctx context.Context, req *AnalyzeWebsiteRequest) (*WebsiteAnalysis, error) {
	resp, err := h.analyzeWebsite.Execute(ctx, dto.AnalyzeWebsiteRequest{Input: req.GetInput()})
	if err != nil {
		return nil, h.internal(ctx, "AnalyzeWebsite", err)
	}
	flags := make([]*RedFlagMsg, 0, len(resp.RedFlags))
	for _, f := range resp.RedFlags {
		flags = append(flags, &RedFlagMsg{Category: f.Category, Message: f.Message, Weight: f.Weight})
	}
	return &WebsiteAnalysis{
		ID:         resp.ID.String(),
		Score:      resp.Score,
		Verdict:    resp.Verdict,
		Mode:       resp.Mode,
		RedFlags:   flags,
		AnalyzedAt: resp.AnalyzedAt.Format(time.RFC3339Nano),
	}, nil
}

func (h *AnalyzerHandler) internal(ctx context.Context, method string, err error) error {
	h.logger.ErrorContext(ctx, "analysis failed", "method", method, "error", err)
	return status.Error(codes.Internal, "analysis failed")
}

// GetText returns the text, tolerating a nil request.
func (r *AnalyzeTextRequest) GetText() string {
	if r == nil {
		return ""
	}
	return r.Text
}

// GetInput returns the input, tolerating a nil request.
func (r *AnalyzeWebsiteRequest) GetInput() string {
	if r == nil {
		return ""
	}
	return r.Input
}
