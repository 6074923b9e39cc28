// Package rules holds the lexical rule library shared by the detectors:
// keyword lists, patterns, weights and the thresholds that turn a sum of
// weights into a verdict.
package rules

import (
	"sort"
	"sync"

	"github.com/cloudflare/ahocorasick"
)

// PhraseSet is an ordered keyword list matched by substring in one pass.
// Callers pass already lower-cased text.
type PhraseSet struct {
	phrases []string

	// ahocorasick.Matcher keeps per-call state, so Match is serialised.
	mu      sync.Mutex
	matcher *ahocorasick.Matcher
}

// NewPhraseSet builds a matcher over phrases. The order given here is the
// order Find reports hits in.
func NewPhraseSet(phrases ...string) *PhraseSet {
	return &PhraseSet{
		phrases: phrases,
		matcher: ahocorasick.NewStringMatcher(phrases),
	}
}

// Find returns every phrase occurring in lower, in list order.
func (s *PhraseSet) Find(lower string) []string {
	if lower == "" || len(s.phrases) == 0 {
		return nil
	}

	s.mu.Lock()
	hits := s.matcher.Match([]byte(lower))
	s.mu.Unlock()

	if len(hits) == 0 {
		return nil
	}
	sort.Ints(hits)

	found := make([]string, 0, len(hits))
	for _, i := range hits {
		found = append(found, s.phrases[i])
	}
	return found
}

// Any reports whether at least one phrase occurs in lower.
func (s *PhraseSet) Any(lower string) bool {
	return len(s.Find(lower)) > 0
}

// Phrases returns a copy of the underlying list.
func (s *PhraseSet) Phrases() []string {
	out := make([]string, len(s.phrases))
	copy(out, s.phrases)
	return out
}

// Len returns the number of phrases in the set.
func (s *PhraseSet) Len() int {
	return len(s.phrases)
}
