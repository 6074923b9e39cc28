package valueobject

import "fmt"

// AnalysisKind identifies which detector produced an analysis.
type AnalysisKind struct {
	value string
}

var (
	AnalysisKindMessage = AnalysisKind{value: "message"}
	AnalysisKindAI      = AnalysisKind{value: "ai"}
	AnalysisKindWebsite = AnalysisKind{value: "website"}
)

// AnalysisKindFromString reconstructs an AnalysisKind.
func AnalysisKindFromString(s string) (AnalysisKind, error) {
	switch s {
	case "message":
		return AnalysisKindMessage, nil
	case "ai":
		return AnalysisKindAI, nil
	case "website":
		return AnalysisKindWebsite, nil
	default:
		return AnalysisKind{}, fmt.Errorf("invalid analysis kind: %s", s)
	}
}

func (k AnalysisKind) String() string { return k.value }

func (k AnalysisKind) IsZero() bool { return k.value == "" }

// InputMode records which website path analysed the input.
type InputMode string

const (
	InputModeURL    InputMode = "url"
	InputModeMarkup InputMode = "markup"
)
