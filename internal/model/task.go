package model

// Issue type names of the default catalog.
const (
	IssueTypeStory = "Story"
	IssueTypeBug   = "Bug"
)

// TaskRequest is the fully resolved input for creating one tracker issue.
// It is built once per chat command and not mutated after submission starts.
type TaskRequest struct {
	// Summary is the single-line issue title.
	Summary string `json:"summary"`

	// Description is the issue body. It may span multiple lines.
	Description string `json:"description,omitempty"`

	// Component is the canonical component name.
	Component string `json:"component"`

	// IssueType is the canonical issue type name (e.g. Story, Bug).
	IssueType string `json:"issue_type"`

	// SprintID is the target sprint, or nil for the backlog.
	SprintID *int `json:"sprint_id,omitempty"`

	// LinkTarget is the key of an existing issue to link to.
	LinkTarget string `json:"link_target,omitempty"`

	// ProjectKey is the upper-cased project key the issue is created in.
	ProjectKey string `json:"project_key"`

	// Labels are attached to the issue verbatim.
	Labels []string `json:"labels,omitempty"`
}

// Attachment is a file uploaded to an issue after creation.
type Attachment struct {
	Filename string
	Data     []byte
}

// Issue is the subset of tracker issue fields the bot reads back.
type Issue struct {
	Key     string `json:"key"`
	Summary string `json:"summary"`
	Status  string `json:"status"`
}
