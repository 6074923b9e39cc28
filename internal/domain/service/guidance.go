package service

import (
	"strings"

	"github.com/naomili-code/scamalyst/internal/domain/model"
	"github.com/naomili-code/scamalyst/internal/domain/rules"
)

// MaxHighlights caps the phrases returned by Highlights.
const MaxHighlights = 10

// ShowGuidance reports whether archetype-specific guidance applies. This
// predicate, not the classification alone, gates SafetyActions and Highlights.
func ShowGuidance(c model.ScamTypeClassification, scamScore float64) bool {
	return !c.Type.IsZero() && !c.Type.IsNeutral() && scamScore >= rules.MinGuidanceScore
}

// SafetyActions returns the suggested next steps for the archetype, or nil
// when guidance is not shown.
func SafetyActions(c model.ScamTypeClassification, scamScore float64) []string {
	if !ShowGuidance(c, scamScore) {
		return nil
	}
	for _, a := range rules.Archetypes {
		if a.Type.Equal(c.Type) {
			out := make([]string, len(a.Actions))
			copy(out, a.Actions)
			return out
		}
	}
	return nil
}

// Highlights returns the suspicious phrases found in text: urgency and
// sensitive-data wording first, then the archetype's own signals. Phrases are
// lower-cased, deduplicated and capped at MaxHighlights.
func Highlights(text string, c model.ScamTypeClassification, scamScore float64) []string {
	if !ShowGuidance(c, scamScore) {
		return nil
	}

	lower := strings.ToLower(text)
	seen := make(map[string]struct{})
	out := make([]string, 0, MaxHighlights)

	push := func(p string) bool {
		p = strings.TrimSpace(p)
		if p == "" {
			return true
		}
		if _, ok := seen[p]; ok {
			return true
		}
		seen[p] = struct{}{}
		out = append(out, p)
		return len(out) < MaxHighlights
	}

	for _, p := range rules.UrgencyPhrases.Find(lower) {
		if !push(p) {
			return out
		}
	}
	for _, p := range rules.SensitivePhrases.Find(lower) {
		if !push(p) {
			return out
		}
	}
	for _, a := range rules.Archetypes {
		if !a.Type.Equal(c.Type) {
			continue
		}
		for _, sig := range a.Signals {
			if m := sig.FindString(lower); m != "" && !push(m) {
				return out
			}
		}
	}

	return out
}
