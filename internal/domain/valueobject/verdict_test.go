package valueobject_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naomili-code/scamalyst/internal/domain/valueobject"
)

func TestVerdictFromScore(t *testing.T) {
	tests := []struct {
		name     string
		score    string
		expected valueobject.Verdict
	}{
		{"zero is safe", "0", valueobject.VerdictLikelySafe},
		{"just below suspicious", "2.99", valueobject.VerdictLikelySafe},
		{"suspicious boundary", "3", valueobject.VerdictSuspicious},
		{"just below scam", "6", valueobject.VerdictSuspicious},
		{"scam boundary", "7", valueobject.VerdictLikelyScam},
		{"far above ceiling", "42", valueobject.VerdictLikelyScam},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := valueobject.VerdictFromScore(decimal.RequireFromString(tt.score))
			assert.True(t, tt.expected.Equal(got), "got %s", got)
		})
	}
}

func TestVerdictFromString(t *testing.T) {
	v, err := valueobject.VerdictFromString("Likely Scam")
	require.NoError(t, err)
	assert.Equal(t, valueobject.VerdictLikelyScam, v)

	_, err = valueobject.VerdictFromString("Scammy")
	require.Error(t, err)
	assert.True(t, valueobject.Verdict{}.IsZero())
}

func TestAIVerdictFromScore(t *testing.T) {
	tests := []struct {
		score    string
		expected valueobject.AIVerdict
	}{
		{"0", valueobject.AIVerdictHuman},
		{"0.34", valueobject.AIVerdictHuman},
		{"0.35", valueobject.AIVerdictPossiblyAI},
		{"0.59", valueobject.AIVerdictPossiblyAI},
		{"0.6", valueobject.AIVerdictLikelyAI},
		{"1", valueobject.AIVerdictLikelyAI},
	}

	for _, tt := range tests {
		t.Run(tt.score, func(t *testing.T) {
			got := valueobject.AIVerdictFromScore(decimal.RequireFromString(tt.score))
			assert.Equal(t, tt.expected.String(), got.String())
		})
	}
}

func TestRiskBandFromScore(t *testing.T) {
	tests := []struct {
		score    string
		expected valueobject.RiskBand
	}{
		{"0", valueobject.RiskBandLegitimate},
		{"1.5", valueobject.RiskBandLegitimate},
		{"2", valueobject.RiskBandLow},
		{"4", valueobject.RiskBandMedium},
		{"5.5", valueobject.RiskBandMedium},
		{"6", valueobject.RiskBandHigh},
		{"8", valueobject.RiskBandVeryHigh},
		{"10", valueobject.RiskBandVeryHigh},
	}

	for _, tt := range tests {
		t.Run(tt.score, func(t *testing.T) {
			got := valueobject.RiskBandFromScore(decimal.RequireFromString(tt.score))
			assert.True(t, tt.expected.Equal(got), "got %s", got)
		})
	}

	assert.True(t, valueobject.RiskBandHigh.IsHighRisk())
	assert.True(t, valueobject.RiskBandVeryHigh.IsHighRisk())
	assert.False(t, valueobject.RiskBandMedium.IsHighRisk())
}

func TestCategoryFromString(t *testing.T) {
	for _, c := range valueobject.Categories() {
		got, err := valueobject.CategoryFromString(c.String())
		require.NoError(t, err)
		assert.True(t, c.Equal(got))
	}

	_, err := valueobject.CategoryFromString("Vibes")
	require.Error(t, err)
}

func TestScamType(t *testing.T) {
	st, err := valueobject.ScamTypeFromString("attachment")
	require.NoError(t, err)
	assert.Equal(t, "Malicious Attachment", st.Label())
	assert.NotEmpty(t, st.Detail())
	assert.False(t, st.IsNeutral())
	assert.True(t, valueobject.ScamTypeNeutral.IsNeutral())

	_, err = valueobject.ScamTypeFromString("romance")
	require.Error(t, err)
}
