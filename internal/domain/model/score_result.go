package model

import (
	"math"

	"github.com/naomili-code/scamalyst/internal/domain/valueobject"
)

// ScoreResult is the outcome of the message and AI-text detectors.
// Reasons follow rule evaluation order.
type ScoreResult struct {
	Verdict string   `json:"verdict"`
	Reasons []string `json:"reasons"`
	Score   float64  `json:"score"`
}

// MeterPercent maps a 0-10 score onto a 0-100 gauge.
func (r ScoreResult) MeterPercent() int {
	return int(math.Min(100, math.Round(r.Score/10*100)))
}

// RedFlag is one triggered website check.
type RedFlag struct {
	Category valueobject.Category
	Message  string
	Weight   float64
}

// WebsiteResult is the outcome of the website detector.
type WebsiteResult struct {
	Band     valueobject.RiskBand
	Mode     valueobject.InputMode
	RedFlags []RedFlag
	Score    float64
}

// Verdict returns the band label.
func (r WebsiteResult) Verdict() string {
	return r.Band.String()
}

// Reasons flattens the red flags into display strings.
func (r WebsiteResult) Reasons() []string {
	out := make([]string, 0, len(r.RedFlags))
	for _, f := range r.RedFlags {
		out = append(out, f.Category.String()+": "+f.Message)
	}
	return out
}

// ScamTypeClassification is the dominant archetype of a message.
type ScamTypeClassification struct {
	Type valueobject.ScamType
}

func (c ScamTypeClassification) Label() string  { return c.Type.Label() }
func (c ScamTypeClassification) Detail() string { return c.Type.Detail() }

// NeutralClassification is returned when no archetype stands out.
func NeutralClassification() ScamTypeClassification {
	return ScamTypeClassification{Type: valueobject.ScamTypeNeutral}
}
