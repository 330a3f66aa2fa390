package model

import "time"

// Status category names.
const (
	StatusCategoryToDo       = "To Do"
	StatusCategoryInProgress = "In Progress"
	StatusCategoryDone       = "Done"
)

// IssueStatus is one row of the status dictionary.
type IssueStatus struct {
	ID       int    `json:"status_id" db:"status_id"`
	Name     string `json:"status_name" db:"status_name"`
	Category string `json:"status_category" db:"status_category"`
}

// IssueDetail is the locally cached snapshot of a linked issue.
type IssueDetail struct {
	JiraKey   string    `json:"jira_key" db:"jira_key"`
	StatusID  int       `json:"status_id" db:"status_id"`
	Summary   string    `json:"summary" db:"summary"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
