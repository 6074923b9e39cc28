package service

import (
	"strings"

	"github.com/naomili-code/scamalyst/internal/domain/model"
	"github.com/naomili-code/scamalyst/internal/domain/rules"
	"github.com/naomili-code/scamalyst/internal/domain/valueobject"
)

// ScamTypeClassifier names the dominant scam archetype of a scored message.
type ScamTypeClassifier struct{}

// NewScamTypeClassifier creates a new ScamTypeClassifier instance.
func NewScamTypeClassifier() *ScamTypeClassifier {
	return &ScamTypeClassifier{}
}

// Classify counts archetype signals in text, adds the impersonation bonus
// when a detector reason already points at a spoofed sender, and returns the
// strictly highest archetype. Messages scoring below rules.MinGuidanceScore,
// or with no signal at all, are neutral.
func (c *ScamTypeClassifier) Classify(text string, reasons []string, scamScore float64) model.ScamTypeClassification {
	scores := c.Scores(text, reasons)

	best := valueobject.ScamType{}
	bestScore := 0
	for _, a := range rules.Archetypes {
		if s := scores[a.Type]; s > bestScore {
			best, bestScore = a.Type, s
		}
	}

	if scamScore < rules.MinGuidanceScore || bestScore <= 0 || best.IsZero() {
		return model.NeutralClassification()
	}
	return model.ScamTypeClassification{Type: best}
}

// Scores returns the per-archetype signal counts.
func (c *ScamTypeClassifier) Scores(text string, reasons []string) map[valueobject.ScamType]int {
	lower := strings.ToLower(text)
	scores := make(map[valueobject.ScamType]int, len(rules.Archetypes))

	for _, a := range rules.Archetypes {
		n := 0
		for _, sig := range a.Signals {
			if sig.MatchString(lower) {
				n++
			}
		}
		scores[a.Type] = n
	}

	for _, r := range reasons {
		if rules.ImpersonationReasonPattern.MatchString(r) {
			scores[valueobject.ScamTypeImpersonation] += rules.ImpersonationReasonBonus
			break
		}
	}

	return scores
}
