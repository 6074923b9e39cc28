package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	LikelyAIThreshold   = decimal.RequireFromString("0.6")
	PossiblyAIThreshold = decimal.RequireFromString("0.35")
)

// AIVerdict labels an AI-likelihood score in [0,1].
type AIVerdict struct {
	value string
}

var (
	AIVerdictNoText     = AIVerdict{value: "No text"}
	AIVerdictHuman      = AIVerdict{value: "Likely Human"}
	AIVerdictPossiblyAI = AIVerdict{value: "Possibly AI-Generated"}
	AIVerdictLikelyAI   = AIVerdict{value: "Likely AI-Generated"}
)

// AIVerdictFromString reconstructs an AIVerdict from its label.
func AIVerdictFromString(s string) (AIVerdict, error) {
	switch s {
	case "No text":
		return AIVerdictNoText, nil
	case "Likely Human":
		return AIVerdictHuman, nil
	case "Possibly AI-Generated":
		return AIVerdictPossiblyAI, nil
	case "Likely AI-Generated":
		return AIVerdictLikelyAI, nil
	default:
		return AIVerdict{}, fmt.Errorf("invalid AI verdict: %s", s)
	}
}

// AIVerdictFromScore derives the verdict for a clamped AI-likelihood score.
func AIVerdictFromScore(score decimal.Decimal) AIVerdict {
	switch {
	case score.GreaterThanOrEqual(LikelyAIThreshold):
		return AIVerdictLikelyAI
	case score.GreaterThanOrEqual(PossiblyAIThreshold):
		return AIVerdictPossiblyAI
	default:
		return AIVerdictHuman
	}
}

func (v AIVerdict) String() string { return v.value }

func (v AIVerdict) IsZero() bool { return v.value == "" }

func (v AIVerdict) Equal(other AIVerdict) bool { return v.value == other.value }
