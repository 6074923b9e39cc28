package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/naomili-code/scamalyst/internal/domain/model"
)

// AnalyzeTextRequest is the input DTO for the message and AI-text use cases.
type AnalyzeTextRequest struct {
	Text string `json:"text"`
}

// AnalyzeWebsiteRequest is the input DTO for the website use case. Input is
// either a URL or raw page markup.
type AnalyzeWebsiteRequest struct {
	Input string `json:"input"`
}

// ScamTypeResponse describes the dominant scam archetype.
type ScamTypeResponse struct {
	Type   string `json:"type"`
	Label  string `json:"label"`
	Detail string `json:"detail"`
}

// MessageAnalysisResponse is the output DTO of AnalyzeMessage.
type MessageAnalysisResponse struct {
	AnalyzedAt    time.Time        `json:"analyzed_at"`
	ScamType      ScamTypeResponse `json:"scam_type"`
	Verdict       string           `json:"verdict"`
	Reasons       []string         `json:"reasons"`
	SafetyActions []string         `json:"safety_actions,omitempty"`
	Highlights    []string         `json:"highlights,omitempty"`
	Score         float64          `json:"score"`
	MeterPercent  int              `json:"meter_percent"`
	ID            uuid.UUID        `json:"id"`
}

// AIAnalysisResponse is the output DTO of DetectAI.
type AIAnalysisResponse struct {
	AnalyzedAt time.Time `json:"analyzed_at"`
	Verdict    string    `json:"verdict"`
	Reasons    []string  `json:"reasons"`
	Score      float64   `json:"score"`
	ID         uuid.UUID `json:"id"`
}

// RedFlagResponse is one triggered website check.
type RedFlagResponse struct {
	Category string  `json:"category"`
	Message  string  `json:"message"`
	Weight   float64 `json:"weight"`
}

// WebsiteAnalysisResponse is the output DTO of AnalyzeWebsite.
type WebsiteAnalysisResponse struct {
	AnalyzedAt time.Time         `json:"analyzed_at"`
	Verdict    string            `json:"verdict"`
	Mode       string            `json:"mode"`
	RedFlags   []RedFlagResponse `json:"red_flags"`
	Score      float64           `json:"score"`
	ID         uuid.UUID         `json:"id"`
}

// InferRequest is the input DTO of the inference relay.
type InferRequest struct {
	Model  string          `json:"model"`
	Inputs json.RawMessage `json:"inputs"`
}

// InferResponse carries the upstream answer verbatim.
type InferResponse struct {
	Body       json.RawMessage
	StatusCode int
}

// ExamplesResponse lists canned inputs for each analyzer.
type ExamplesResponse struct {
	Message string `json:"message"`
}

// FromMessageAnalysis maps a completed message analysis to the response DTO.
func FromMessageAnalysis(a *model.Analysis, c model.ScamTypeClassification, actions, highlights []string) MessageAnalysisResponse {
	result := model.ScoreResult{Score: a.Score(), Verdict: a.Verdict(), Reasons: a.Reasons()}
	return MessageAnalysisResponse{
		ID:           a.ID(),
		Score:        a.Score(),
		Verdict:      a.Verdict(),
		Reasons:      nonNil(a.Reasons()),
		MeterPercent: result.MeterPercent(),
		ScamType: ScamTypeResponse{
			Type:   c.Type.String(),
			Label:  c.Label(),
			Detail: c.Detail(),
		},
		SafetyActions: actions,
		Highlights:    highlights,
		AnalyzedAt:    a.CompletedAt(),
	}
}

// FromAIAnalysis maps a completed AI-text analysis to the response DTO.
func FromAIAnalysis(a *model.Analysis) AIAnalysisResponse {
	return AIAnalysisResponse{
		ID:         a.ID(),
		Score:      a.Score(),
		Verdict:    a.Verdict(),
		Reasons:    nonNil(a.Reasons()),
		AnalyzedAt: a.CompletedAt(),
	}
}

// FromWebsiteResult maps a website result and its analysis to the response DTO.
func FromWebsiteResult(a *model.Analysis, r model.WebsiteResult) WebsiteAnalysisResponse {
	flags := make([]RedFlagResponse, 0, len(r.RedFlags))
	for _, f := range r.RedFlags {
		flags = append(flags, RedFlagResponse{
			Category: f.Category.String(),
			Message:  f.Message,
			Weight:   f.Weight,
		})
	}
	return WebsiteAnalysisResponse{
		ID:         a.ID(),
		Score:      r.Score,
		Verdict:    r.Verdict(),
		Mode:       string(r.Mode),
		RedFlags:   flags,
		AnalyzedAt: a.CompletedAt(),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
