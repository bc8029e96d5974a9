// Package fuzzy scores textual similarity between a free-text query and task
// fields. It blends a character-level sequence-alignment ratio with the
// partial, token-sort and token-set ratios from the fuzzywuzzy family; the
// combined score is the maximum across methods, so any one algorithm finding
// a strong match counts as a match.
package fuzzy

import (
	"strings"

	fuzz "github.com/paul-mannino/go-fuzzywuzzy"
	"github.com/pmezard/go-difflib/difflib"
)

// Matcher computes similarity scores in [0,1]. The token-based methods are
// negotiated once at construction and recorded as an immutable flag; callers
// see the same API either way.
type Matcher struct {
	tokenMethods bool
}

// NewMatcher creates a Matcher. tokenMethods disables the partial/token-sort/
// token-set ratios when false, leaving only the sequence-alignment ratio.
func NewMatcher(tokenMethods bool) *Matcher {
	return &Matcher{tokenMethods: tokenMethods}
}

// TokenMethodsEnabled reports whether the token-based ratios are in use.
func (m *Matcher) TokenMethodsEnabled() bool {
	return m.tokenMethods
}

// Normalize lowercases, trims, and collapses internal whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Similarity returns the combined similarity of query and candidate in [0,1].
// Both inputs are normalized first. Empty input scores 0, an exact normalized
// match scores 1.
func (m *Matcher) Similarity(query, candidate string) float64 {
	q := Normalize(query)
	c := Normalize(candidate)
	if q == "" || c == "" {
		return 0.0
	}
	if q == c {
		return 1.0
	}

	score := SequenceRatio(q, c)
	if m.tokenMethods {
		score = max(score, float64(fuzz.PartialRatio(q, c))/100.0)
		score = max(score, float64(fuzz.TokenSortRatio(q, c))/100.0)
		score = max(score, float64(fuzz.TokenSetRatio(q, c))/100.0)
	}
	return score
}

// TokenRatio returns the best of the partial, token-sort and token-set
// ratios in [0,1], or 0 when token methods are disabled. Inputs are
// normalized first.
func (m *Matcher) TokenRatio(query, candidate string) float64 {
	if !m.tokenMethods {
		return 0.0
	}
	q := Normalize(query)
	c := Normalize(candidate)
	if q == "" || c == "" {
		return 0.0
	}
	score := float64(fuzz.PartialRatio(q, c)) / 100.0
	score = max(score, float64(fuzz.TokenSortRatio(q, c))/100.0)
	score = max(score, float64(fuzz.TokenSetRatio(q, c))/100.0)
	return score
}

// SequenceRatio is the character-level sequence-alignment ratio. Inputs are
// assumed already normalized.
func SequenceRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}
	sm := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return sm.Ratio()
}
