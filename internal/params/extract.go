// Package params turns the free text after a /task command into a
// resolved issue creation request.
package params

import (
	"regexp"
	"strings"
)

// Keyword names one recognized command parameter.
type Keyword string

const (
	KeywordType        Keyword = "type"
	KeywordComponent   Keyword = "component"
	KeywordSprint      Keyword = "sprint"
	KeywordDescription Keyword = "description"
	KeywordLink        Keyword = "link"
	KeywordProject     Keyword = "project"
)

// keywordPattern matches every parameter marker. "description" precedes
// "desc" so the longer alias wins at the same position.
var keywordPattern = regexp.MustCompile(`(?i)\b(description|desc|component|project|sprint|type|link):`)

// Extracted is the result of one scan over the command text.
type Extracted struct {
	// Summary is the text before the first marker, trimmed.
	Summary string

	// Values holds one value per keyword. When a keyword repeats, the last
	// occurrence with a value wins.
	Values map[Keyword]string

	// Repeated lists keywords that carried a value more than once, in the
	// order they were first repeated.
	Repeated []Keyword
}

// Value returns the value for k, if any.
func (e Extracted) Value(k Keyword) (string, bool) {
	v, ok := e.Values[k]
	return v, ok
}

// Extract scans text once for parameter markers. Each value runs from the
// end of its marker to the next marker or the end of text. Description
// values keep their line breaks; other values are collapsed to single
// spaces. Markers with an empty value are ignored.
func Extract(text string) Extracted {
	out := Extracted{Values: make(map[Keyword]string)}

	locs := keywordPattern.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		out.Summary = strings.TrimSpace(text)
		return out
	}

	out.Summary = strings.TrimSpace(text[:locs[0][0]])

	seen := make(map[Keyword]bool)
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}

		kw := canonical(text[loc[2]:loc[3]])
		value := text[loc[1]:end]
		if kw == KeywordDescription {
			value = strings.TrimSpace(value)
		} else {
			value = collapseSpaces(value)
		}
		if value == "" {
			continue
		}

		if seen[kw] && !contains(out.Repeated, kw) {
			out.Repeated = append(out.Repeated, kw)
		}
		seen[kw] = true
		out.Values[kw] = value
	}

	return out
}

func canonical(marker string) Keyword {
	m := strings.ToLower(marker)
	if m == "desc" {
		return KeywordDescription
	}
	return Keyword(m)
}

// collapseSpaces trims s and folds every whitespace run, newlines
// included, to a single space.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func contains(list []Keyword, k Keyword) bool {
	for _, x := range list {
		if x == k {
			return true
		}
	}
	return false
}
