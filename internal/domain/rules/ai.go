package rules

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// AI-text feature increments. Each fires at most once.
var (
	AIWeightLongWords       = decimal.RequireFromString("0.15")
	AIWeightUniformSentence = decimal.RequireFromString("0.10")
	AIWeightStopWords       = decimal.RequireFromString("0.10")
	AIWeightNoContractions  = decimal.RequireFromString("0.12")
	AIWeightSelfReference   = decimal.RequireFromString("0.25")
	AIWeightLowPunctuation  = decimal.RequireFromString("0.08")
	AIWeightFlatTone        = decimal.RequireFromString("0.08")
	AIWeightRepetition      = decimal.RequireFromString("0.10")
	AIWeightCommaHeavy      = decimal.RequireFromString("0.07")
)

// AI-text feature thresholds.
const (
	AIMeanWordLength        = 5.5
	AISentenceStdDev        = 3.0
	AIMinSentences          = 3
	AIStopWordRatio         = 0.35
	AIContractionMinWords   = 20
	AIPunctuationDensity    = 0.04
	AIFlatToneMinWords      = 30
	AIRepeatedTrigramRatio  = 0.05
	AICommaSemicolonDensity = 0.10
)

// AIPhrases are stock phrasings of assistant-style text.
var AIPhrases = NewPhraseSet(
	"as an ai",
	"as a language model",
	"i do not have personal opinions",
	"i don't have personal opinions",
	"it is important to note",
	"it's important to note",
	"in conclusion",
	"i cannot browse the internet",
	"my knowledge cutoff",
	"i hope this helps",
	"delve into",
	"per my programming",
)

// StopWords is the 22-word function-word list used for the stop-word ratio.
var StopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"of": {}, "to": {}, "in": {}, "on": {}, "for": {}, "with": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "it": {}, "that": {},
	"this": {}, "as": {}, "by": {}, "be": {},
}

var (
	WordPattern          = regexp.MustCompile(`[\p{L}\p{N}'’]+`)
	SentenceSplitPattern = regexp.MustCompile(`[.!?]+`)
	ContractionPattern   = regexp.MustCompile(`(?i)\b\w+['’](?:s|t|re|ve|ll|d|m)\b`)
)
