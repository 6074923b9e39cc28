package service

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/naomili-code/scamalyst/internal/domain/model"
	"github.com/naomili-code/scamalyst/internal/domain/rules"
	"github.com/naomili-code/scamalyst/internal/domain/valueobject"
)

// AIDetector estimates how likely a passage is machine-generated from
// surface style features. Each feature adds a fixed increment at most once.
type AIDetector struct{}

// NewAIDetector creates a new AIDetector instance.
func NewAIDetector() *AIDetector {
	return &AIDetector{}
}

// textStats holds the lexical statistics the features are computed from.
type textStats struct {
	words          []string
	sentenceCounts []int
	runes          int
	punctuation    int
	commas         int
}

func collectStats(text string) textStats {
	st := textStats{runes: utf8.RuneCountInString(text)}

	for _, w := range rules.WordPattern.FindAllString(text, -1) {
		st.words = append(st.words, strings.ToLower(w))
	}

	for _, sentence := range rules.SentenceSplitPattern.Split(text, -1) {
		if strings.TrimSpace(sentence) == "" {
			continue
		}
		st.sentenceCounts = append(st.sentenceCounts, len(rules.WordPattern.FindAllString(sentence, -1)))
	}

	for _, r := range text {
		if unicode.IsPunct(r) {
			st.punctuation++
		}
		if r == ',' || r == ';' {
			st.commas++
		}
	}

	return st
}

// Detect scores text in [0,1]. Reasons are never empty.
func (d *AIDetector) Detect(text string) model.ScoreResult {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.ScoreResult{
			Score:   0,
			Verdict: valueobject.AIVerdictNoText.String(),
			Reasons: []string{"No text provided"},
		}
	}

	st := collectStats(text)
	lower := strings.ToLower(text)
	wordCount := len(st.words)
	t := newTally()

	// Feature: long average word length.
	if wordCount > 0 {
		total := 0
		for _, w := range st.words {
			total += utf8.RuneCountInString(w)
		}
		mean := float64(total) / float64(wordCount)
		if mean > rules.AIMeanWordLength {
			t.add(rules.AIWeightLongWords, fmt.Sprintf("Long average word length (%.1f characters)", mean))
		}
	}

	// Feature: uniform sentence lengths.
	if len(st.sentenceCounts) > rules.AIMinSentences {
		if sd := stdDev(st.sentenceCounts); sd < rules.AISentenceStdDev {
			t.add(rules.AIWeightUniformSentence, fmt.Sprintf("Very uniform sentence lengths (std dev %.1f words)", sd))
		}
	}

	// Feature: function-word heavy prose.
	if wordCount > 0 {
		stop := 0
		for _, w := range st.words {
			if _, ok := rules.StopWords[w]; ok {
				stop++
			}
		}
		ratio := float64(stop) / float64(wordCount)
		if ratio > rules.AIStopWordRatio {
			t.add(rules.AIWeightStopWords, fmt.Sprintf("High share of common function words (%.0f%%)", ratio*100))
		}
	}

	// Feature: no contractions in a long passage.
	if wordCount > rules.AIContractionMinWords && !rules.ContractionPattern.MatchString(text) {
		t.add(rules.AIWeightNoContractions, "No contractions in a long passage")
	}

	// Feature: stock assistant phrasing.
	if hits := rules.AIPhrases.Find(lower); len(hits) > 0 {
		t.add(rules.AIWeightSelfReference, fmt.Sprintf("Uses stock AI phrasing: %q", hits[0]))
	}

	// Feature: sparse punctuation.
	if st.runes > 0 && float64(st.punctuation)/float64(st.runes) < rules.AIPunctuationDensity {
		t.add(rules.AIWeightLowPunctuation, "Sparse punctuation for the amount of text")
	}

	// Feature: flat tone.
	if wordCount > rules.AIFlatToneMinWords && !strings.ContainsAny(text, "!?") {
		t.add(rules.AIWeightFlatTone, "Flat tone with no exclamations or questions")
	}

	// Feature: repeated three-word sequences.
	if wordCount > 0 {
		if repeated := repeatedTrigrams(st.words); float64(repeated)/float64(wordCount) > rules.AIRepeatedTrigramRatio {
			t.add(rules.AIWeightRepetition, "Repeats the same three-word phrases")
		}
	}

	// Feature: comma and semicolon heavy.
	if wordCount > 0 && float64(st.commas)/float64(wordCount) > rules.AICommaSemicolonDensity {
		t.add(rules.AIWeightCommaHeavy, "Heavy use of commas and semicolons")
	}

	score := decimal.Min(t.score, decimal.NewFromInt(1))
	reasons := t.reasons
	if len(reasons) == 0 {
		reasons = []string{"No AI indicators detected"}
	}

	return model.ScoreResult{
		Score:   score.InexactFloat64(),
		Verdict: valueobject.AIVerdictFromScore(score).String(),
		Reasons: reasons,
	}
}

// stdDev is the population standard deviation.
func stdDev(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += float64(v)
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := float64(v) - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

// repeatedTrigrams counts trigram occurrences beyond the first of each.
func repeatedTrigrams(words []string) int {
	if len(words) < 3 {
		return 0
	}
	seen := make(map[string]int, len(words))
	repeated := 0
	for i := 0; i+2 < len(words); i++ {
		key := words[i] + " " + words[i+1] + " " + words[i+2]
		if seen[key] > 0 {
			repeated++
		}
		seen[key]++
	}
	return repeated
}
