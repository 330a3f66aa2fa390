package resolve

import (
	"fmt"
	"strings"

	"github.com/nhle/taskbot/internal/match"
)

// IssueTypes resolves issue type labels against a small static catalog,
// ignoring case.
type IssueTypes struct {
	types    []string
	lowered  []string
	fallback string
}

// NewIssueTypes creates a resolver over types. fallback is returned with
// every diagnostic.
func NewIssueTypes(types []string, fallback string) *IssueTypes {
	lowered := make([]string, len(types))
	for i, t := range types {
		lowered[i] = strings.ToLower(t)
	}
	return &IssueTypes{types: types, lowered: lowered, fallback: fallback}
}

// Types returns the catalog in its configured order.
func (r *IssueTypes) Types() []string {
	return append([]string(nil), r.types...)
}

// Default returns the fallback type.
func (r *IssueTypes) Default() string {
	return r.fallback
}

// Resolve maps label to the canonical spelling of the closest issue type.
func (r *IssueTypes) Resolve(label string) Outcome[string] {
	found, ok := match.Best(strings.ToLower(label), r.lowered, match.DefaultCutoff)
	if ok {
		for i, l := range r.lowered {
			if l == found {
				return Resolved(r.types[i])
			}
		}
	}

	msg := fmt.Sprintf(
		"❌ No close match found for issue type '%s'\n\n📋 Available issue types:\n%s",
		label, bulletList(r.types),
	)
	return NeedsInput(r.fallback, msg)
}
