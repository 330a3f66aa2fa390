// Package crossref recognizes Jira issue references in free text.
package crossref

import (
	"regexp"
	"strings"
)

// jiraKeyPattern matches Jira issue keys (e.g., PROJ-123, ABC-1).
var jiraKeyPattern = regexp.MustCompile(`([A-Z][A-Z0-9]+-\d+)`)

// ExtractJiraKeys extracts all Jira issue key matches from text.
// Returns a deduplicated list preserving the order of first occurrence.
func ExtractJiraKeys(text string) []string {
	matches := jiraKeyPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var result []string
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		result = append(result, m)
	}
	return result
}

// IsJiraKey reports whether s is exactly one issue key.
func IsJiraKey(s string) bool {
	loc := jiraKeyPattern.FindStringIndex(s)
	return loc != nil && loc[0] == 0 && loc[1] == len(s)
}

// IssueKey turns a user-typed issue reference into a full key. A bare
// number is prefixed with projectKey; otherwise the first key found in ref
// (a key, a lower-case key or a browse URL) is returned. ok is false when
// ref does not name an issue.
func IssueKey(ref, projectKey string) (key string, ok bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", false
	}
	if isDigits(ref) {
		return projectKey + "-" + ref, true
	}
	if keys := ExtractJiraKeys(ref); len(keys) > 0 {
		return keys[0], true
	}
	if keys := ExtractJiraKeys(strings.ToUpper(ref)); len(keys) > 0 {
		return keys[0], true
	}
	return "", false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
