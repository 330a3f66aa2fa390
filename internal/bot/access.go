package bot

import (
	"strconv"
	"strings"
)

// Access is the allowlist of users who may create and change issues.
type Access struct {
	entries []string
	byName  map[string]bool
	byID    map[string]bool
}

// NewAccess builds an allowlist from usernames (with or without "@") and
// numeric user ids. An empty list allows everyone.
func NewAccess(allowed []string) *Access {
	a := &Access{byName: map[string]bool{}, byID: map[string]bool{}}
	for _, e := range allowed {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		a.entries = append(a.entries, e)
		if _, err := strconv.ParseInt(e, 10, 64); err == nil {
			a.byID[e] = true
			continue
		}
		a.byName[strings.ToLower(strings.TrimPrefix(e, "@"))] = true
	}
	return a
}

// Restricted reports whether the allowlist is non-empty.
func (a *Access) Restricted() bool {
	return len(a.entries) > 0
}

// Allowed reports whether u may use restricted commands.
func (a *Access) Allowed(u User) bool {
	if !a.Restricted() {
		return true
	}
	if u.Username != "" && a.byName[strings.ToLower(u.Username)] {
		return true
	}
	return u.ID != 0 && a.byID[strconv.FormatInt(u.ID, 10)]
}

// Entries returns the configured entries in their original form.
func (a *Access) Entries() []string {
	return append([]string(nil), a.entries...)
}
