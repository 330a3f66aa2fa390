// Package resolve maps free-text labels typed in a chat command onto the
// canonical entries of the tracker catalogs (components, issue types,
// sprints).
package resolve

import (
	"sort"
	"strings"
)

// Outcome is the result of resolving one label. A non-empty Diagnostic
// means the label could not be resolved unambiguously: Value then holds the
// configured fallback and the caller must stop and show Diagnostic to the
// user verbatim.
type Outcome[T any] struct {
	Value      T
	Diagnostic string
}

// Resolved returns a successful outcome.
func Resolved[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v}
}

// NeedsInput returns an outcome that asks the user to be more specific.
func NeedsInput[T any](fallback T, diagnostic string) Outcome[T] {
	return Outcome[T]{Value: fallback, Diagnostic: diagnostic}
}

// OK reports whether the label resolved without a diagnostic.
func (o Outcome[T]) OK() bool {
	return o.Diagnostic == ""
}

// bulletList renders names one per line with a bullet prefix.
func bulletList(names []string) string {
	lines := make([]string, len(names))
	for i, n := range names {
		lines[i] = "• " + n
	}
	return strings.Join(lines, "\n")
}

// sortedCopy returns names sorted without touching the original order,
// which match tie-breaking depends on.
func sortedCopy(names []string) []string {
	out := append([]string(nil), names...)
	sort.Strings(out)
	return out
}
