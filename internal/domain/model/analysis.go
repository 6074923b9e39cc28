package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/naomili-code/scamalyst/internal/domain/event"
	"github.com/naomili-code/scamalyst/internal/domain/valueobject"
	"github.com/naomili-code/scamalyst/pkg/events"
)

// Analysis is the aggregate root for one scoring request. It lives only for
// the duration of the request; nothing is persisted.
type Analysis struct {
	events.EventCollector

	createdAt   time.Time
	completedAt time.Time
	kind        valueobject.AnalysisKind
	scamType    valueobject.ScamType
	verdict     string
	reasons     []string
	score       float64
	inputLength int
	highRisk    bool
	id          uuid.UUID
}

// NewAnalysis opens an analysis of the given kind over an input of inputLength bytes.
func NewAnalysis(kind valueobject.AnalysisKind, inputLength int) (*Analysis, error) {
	if kind.IsZero() {
		return nil, fmt.Errorf("analysis kind is required")
	}
	if inputLength < 0 {
		return nil, fmt.Errorf("input length must not be negative")
	}

	return &Analysis{
		id:          uuid.New(),
		kind:        kind,
		inputLength: inputLength,
		reasons:     make([]string, 0),
		createdAt:   time.Now().UTC(),
	}, nil
}

// CompleteMessage records a message score and its archetype.
func (a *Analysis) CompleteMessage(result ScoreResult, classification ScamTypeClassification) error {
	if a.kind != valueobject.AnalysisKindMessage {
		return fmt.Errorf("cannot record a message result on a %s analysis", a.kind)
	}
	a.scamType = classification.Type
	highRisk := result.Verdict == valueobject.VerdictLikelyScam.String()
	return a.complete(result.Score, result.Verdict, result.Reasons, highRisk)
}

// CompleteAI records an AI-likelihood score.
func (a *Analysis) CompleteAI(result ScoreResult) error {
	if a.kind != valueobject.AnalysisKindAI {
		return fmt.Errorf("cannot record an AI result on a %s analysis", a.kind)
	}
	highRisk := result.Verdict == valueobject.AIVerdictLikelyAI.String()
	return a.complete(result.Score, result.Verdict, result.Reasons, highRisk)
}

// CompleteWebsite records a website score.
func (a *Analysis) CompleteWebsite(result WebsiteResult) error {
	if a.kind != valueobject.AnalysisKindWebsite {
		return fmt.Errorf("cannot record a website result on a %s analysis", a.kind)
	}
	return a.complete(result.Score, result.Verdict(), result.Reasons(), result.Band.IsHighRisk())
}

func (a *Analysis) complete(score float64, verdict string, reasons []string, highRisk bool) error {
	if !a.completedAt.IsZero() {
		return fmt.Errorf("analysis %s already completed", a.id)
	}
	if score < 0 {
		return fmt.Errorf("score must not be negative, got %v", score)
	}

	a.score = score
	a.verdict = verdict
	a.reasons = reasons
	a.highRisk = highRisk
	a.completedAt = time.Now().UTC()

	var scamType string
	if !a.scamType.IsZero() {
		scamType = a.scamType.String()
	}

	a.Record(event.NewAnalysisCompleted(
		a.id, a.kind.String(), a.verdict, scamType,
		a.score, a.reasons, a.inputLength, a.completedAt,
	))

	if a.highRisk {
		a.Record(event.NewHighRiskDetected(a.id, a.kind.String(), a.verdict, a.score, a.completedAt))
	}

	return nil
}

// Enrich records model output returned after the analysis completed.
func (a *Analysis) Enrich(model string, output json.RawMessage) error {
	if a.completedAt.IsZero() {
		return fmt.Errorf("analysis %s is not completed", a.id)
	}
	if model == "" {
		return fmt.Errorf("model is required")
	}
	a.Record(event.NewAnalysisEnriched(a.id, model, output, time.Now().UTC()))
	return nil
}

// --- Accessors ---

func (a *Analysis) ID() uuid.UUID                  { return a.id }
func (a *Analysis) Kind() valueobject.AnalysisKind { return a.kind }
func (a *Analysis) Score() float64                 { return a.score }
func (a *Analysis) Verdict() string                { return a.verdict }
func (a *Analysis) Reasons() []string              { return a.reasons }
func (a *Analysis) ScamType() valueobject.ScamType { return a.scamType }
func (a *Analysis) InputLength() int               { return a.inputLength }
func (a *Analysis) HighRisk() bool                 { return a.highRisk }
func (a *Analysis) CreatedAt() time.Time           { return a.createdAt }
func (a *Analysis) CompletedAt() time.Time         { return a.completedAt }
func (a *Analysis) IsCompleted() bool              { return !a.completedAt.IsZero() }
