package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Message verdict thresholds, applied to the unclamped rule sum.
var (
	ScamThreshold       = decimal.NewFromInt(7)
	SuspiciousThreshold = decimal.NewFromInt(3)
)

// Verdict is an immutable value object labelling a message scam score.
type Verdict struct {
	value string
}

var (
	VerdictNoText     = Verdict{value: "No text"}
	VerdictLikelySafe = Verdict{value: "Likely Safe"}
	VerdictSuspicious = Verdict{value: "Suspicious"}
	VerdictLikelyScam = Verdict{value: "Likely Scam"}
)

// VerdictFromString reconstructs a Verdict from its label.
func VerdictFromString(s string) (Verdict, error) {
	switch s {
	case "No text":
		return VerdictNoText, nil
	case "Likely Safe":
		return VerdictLikelySafe, nil
	case "Suspicious":
		return VerdictSuspicious, nil
	case "Likely Scam":
		return VerdictLikelyScam, nil
	default:
		return Verdict{}, fmt.Errorf("invalid verdict: %s", s)
	}
}

// VerdictFromScore derives the verdict for an accumulated message score.
func VerdictFromScore(score decimal.Decimal) Verdict {
	switch {
	case score.GreaterThanOrEqual(ScamThreshold):
		return VerdictLikelyScam
	case score.GreaterThanOrEqual(SuspiciousThreshold):
		return VerdictSuspicious
	default:
		return VerdictLikelySafe
	}
}

// String returns the display label.
func (v Verdict) String() string {
	return v.value
}

// IsZero returns true if the Verdict has not been set.
func (v Verdict) IsZero() bool {
	return v.value == ""
}

// Equal checks equality with another Verdict.
func (v Verdict) Equal(other Verdict) bool {
	return v.value == other.value
}
