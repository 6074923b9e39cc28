package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RiskBand is the website risk classification derived from a 0-10 score.
type RiskBand struct {
	value string
}

var (
	RiskBandLegitimate = RiskBand{value: "Legitimate"}
	RiskBandLow        = RiskBand{value: "Low Risk"}
	RiskBandMedium     = RiskBand{value: "Medium Risk"}
	RiskBandHigh       = RiskBand{value: "High Risk"}
	RiskBandVeryHigh   = RiskBand{value: "Very High Risk"}
)

// RiskBandFromString reconstructs a RiskBand from its label.
func RiskBandFromString(s string) (RiskBand, error) {
	switch s {
	case "Legitimate":
		return RiskBandLegitimate, nil
	case "Low Risk":
		return RiskBandLow, nil
	case "Medium Risk":
		return RiskBandMedium, nil
	case "High Risk":
		return RiskBandHigh, nil
	case "Very High Risk":
		return RiskBandVeryHigh, nil
	default:
		return RiskBand{}, fmt.Errorf("invalid risk band: %s", s)
	}
}

// RiskBandFromScore derives the band for a clamped website score (0-10).
func RiskBandFromScore(score decimal.Decimal) RiskBand {
	switch {
	case score.GreaterThanOrEqual(decimal.NewFromInt(8)):
		return RiskBandVeryHigh
	case score.GreaterThanOrEqual(decimal.NewFromInt(6)):
		return RiskBandHigh
	case score.GreaterThanOrEqual(decimal.NewFromInt(4)):
		return RiskBandMedium
	case score.GreaterThanOrEqual(decimal.NewFromInt(2)):
		return RiskBandLow
	default:
		return RiskBandLegitimate
	}
}

// String returns the display label.
func (b RiskBand) String() string {
	return b.value
}

// IsHighRisk reports whether the band is High Risk or above.
func (b RiskBand) IsHighRisk() bool {
	return b == RiskBandHigh || b == RiskBandVeryHigh
}

// IsZero returns true if the RiskBand has not been set.
func (b RiskBand) IsZero() bool {
	return b.value == ""
}

// Equal checks equality with another RiskBand.
func (b RiskBand) Equal(other RiskBand) bool {
	return b.value == other.value
}
