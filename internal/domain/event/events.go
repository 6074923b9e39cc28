package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/naomili-code/scamalyst/pkg/events"
)

const (
	// EventTypeAnalysisCompleted is emitted for every scored input.
	EventTypeAnalysisCompleted = "scamalyst.analysis.completed"

	// EventTypeHighRiskDetected is emitted when an input lands in the top band.
	EventTypeHighRiskDetected = "scamalyst.analysis.high_risk"

	// EventTypeAnalysisEnriched is emitted when a model call returns for an analysis.
	EventTypeAnalysisEnriched = "scamalyst.analysis.enriched"

	AggregateTypeAnalysis = "Analysis"
)

// AnalysisCompleted carries the verdict of a single analysis. The raw
// input text is never included.
type AnalysisCompleted struct {
	events.BaseEvent `json:"-"`
	AnalysisID       uuid.UUID `json:"analysis_id"`
	Kind             string    `json:"kind"`
	Verdict          string    `json:"verdict"`
	ScamType         string    `json:"scam_type,omitempty"`
	Reasons          []string  `json:"reasons"`
	Score            float64   `json:"score"`
	InputLength      int       `json:"input_length"`
	CompletedAt      time.Time `json:"completed_at"`
}

// NewAnalysisCompleted builds the event and its JSON payload.
func NewAnalysisCompleted(
	analysisID uuid.UUID,
	kind, verdict, scamType string,
	score float64,
	reasons []string,
	inputLength int,
	completedAt time.Time,
) AnalysisCompleted {
	e := AnalysisCompleted{
		AnalysisID:  analysisID,
		Kind:        kind,
		Verdict:     verdict,
		ScamType:    scamType,
		Reasons:     reasons,
		Score:       score,
		InputLength: inputLength,
		CompletedAt: completedAt,
	}
	e.BaseEvent = events.NewBaseEvent(EventTypeAnalysisCompleted, analysisID, AggregateTypeAnalysis, mustJSON(e))
	return e
}

// HighRiskDetected is raised alongside AnalysisCompleted for top-band results.
type HighRiskDetected struct {
	events.BaseEvent `json:"-"`
	AnalysisID       uuid.UUID `json:"analysis_id"`
	Kind             string    `json:"kind"`
	Verdict          string    `json:"verdict"`
	Score            float64   `json:"score"`
	DetectedAt       time.Time `json:"detected_at"`
}

// NewHighRiskDetected builds the event and its JSON payload.
func NewHighRiskDetected(analysisID uuid.UUID, kind, verdict string, score float64, detectedAt time.Time) HighRiskDetected {
	e := HighRiskDetected{
		AnalysisID: analysisID,
		Kind:       kind,
		Verdict:    verdict,
		Score:      score,
		DetectedAt: detectedAt,
	}
	e.BaseEvent = events.NewBaseEvent(EventTypeHighRiskDetected, analysisID, AggregateTypeAnalysis, mustJSON(e))
	return e
}

// AnalysisEnriched carries the raw model output obtained after the fact.
type AnalysisEnriched struct {
	events.BaseEvent `json:"-"`
	AnalysisID       uuid.UUID       `json:"analysis_id"`
	Model            string          `json:"model"`
	Output           json.RawMessage `json:"output"`
	EnrichedAt       time.Time       `json:"enriched_at"`
}

// NewAnalysisEnriched builds the event and its JSON payload.
func NewAnalysisEnriched(analysisID uuid.UUID, model string, output json.RawMessage, enrichedAt time.Time) AnalysisEnriched {
	if !json.Valid(output) {
		output, _ = json.Marshal(string(output))
	}
	e := AnalysisEnriched{
		AnalysisID: analysisID,
		Model:      model,
		Output:     output,
		EnrichedAt: enrichedAt,
	}
	e.BaseEvent = events.NewBaseEvent(EventTypeAnalysisEnriched, analysisID, AggregateTypeAnalysis, mustJSON(e))
	return e
}

// mustJSON marshals event bodies built only from JSON-safe fields.
func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
