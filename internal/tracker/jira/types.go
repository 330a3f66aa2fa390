package jira

// Component is an entry of GET /rest/api/2/project/{key}/components.
type Component struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BoardPage is the response from GET /rest/agile/1.0/board.
type BoardPage struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	IsLast     bool    `json:"isLast"`
	Values     []Board `json:"values"`
}

// Board is an agile board.
type Board struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// SprintPage is the response from GET /rest/agile/1.0/board/{id}/sprint.
type SprintPage struct {
	StartAt    int      `json:"startAt"`
	MaxResults int      `json:"maxResults"`
	IsLast     bool     `json:"isLast"`
	Values     []Sprint `json:"values"`
}

// Sprint is an agile sprint.
type Sprint struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	State string `json:"state"`
}

// CreateIssueRequest is the body of POST /rest/api/2/issue.
type CreateIssueRequest struct {
	Fields CreateFields `json:"fields"`
}

// CreateFields are the fields set on a new issue.
type CreateFields struct {
	Project     KeyRef    `json:"project"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	IssueType   NameRef   `json:"issuetype"`
	Components  []NameRef `json:"components,omitempty"`
	Labels      []string  `json:"labels,omitempty"`
}

// KeyRef references an entity by key.
type KeyRef struct {
	Key string `json:"key"`
}

// NameRef references an entity by name.
type NameRef struct {
	Name string `json:"name"`
}

// CreatedIssue is the response from POST /rest/api/2/issue.
type CreatedIssue struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

// IssueLinkRequest is the body of POST /rest/api/2/issueLink.
type IssueLinkRequest struct {
	Type         NameRef `json:"type"`
	InwardIssue  KeyRef  `json:"inwardIssue"`
	OutwardIssue KeyRef  `json:"outwardIssue"`
}

// SprintIssuesRequest is the body of POST /rest/agile/1.0/sprint/{id}/issue.
type SprintIssuesRequest struct {
	Issues []string `json:"issues"`
}

// Issue represents a single Jira issue from the REST API.
type Issue struct {
	ID     string      `json:"id"`
	Key    string      `json:"key"`
	Fields IssueFields `json:"fields"`
}

// IssueFields is the subset of issue fields requested by GetIssue.
type IssueFields struct {
	Summary string `json:"summary"`
	Status  Status `json:"status"`
}

// Status represents the status of a Jira issue.
type Status struct {
	Name           string         `json:"name"`
	ID             string         `json:"id"`
	StatusCategory StatusCategory `json:"statusCategory"`
}

// StatusCategory is the broad category a status belongs to.
type StatusCategory struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// ErrorResponse is the standard Jira error response format.
type ErrorResponse struct {
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
}
