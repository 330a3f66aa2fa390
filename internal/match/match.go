// Package match finds the closest catalog entry to a free-text label.
package match

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultCutoff is the minimum similarity accepted for component and
// issue type labels.
const DefaultCutoff = 0.7

// Ratio returns the similarity of a and b in [0, 1] as 2*M/T, where M is
// the number of characters in matching blocks and T the combined length.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(chars(a), chars(b)).Ratio()
}

// Best returns the candidate most similar to query whose score is at least
// cutoff. Ties keep the earliest candidate, so callers must pass the
// catalog in a stable order. An empty query never matches.
func Best(query string, candidates []string, cutoff float64) (string, bool) {
	if query == "" || len(candidates) == 0 {
		return "", false
	}

	// The query side is fixed so its index is built once.
	m := difflib.NewMatcher(nil, chars(query))

	best, bestScore := "", -1.0
	for _, c := range candidates {
		m.SetSeq1(chars(c))
		if score := m.Ratio(); score > bestScore {
			best, bestScore = c, score
		}
	}

	if bestScore < cutoff {
		return "", false
	}
	return best, true
}

// chars splits s into one element per rune.
func chars(s string) []string {
	return strings.Split(s, "")
}
