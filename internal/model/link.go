package model

import "time"

// Link associates an external message reference with a tracker issue key.
type Link struct {
	ID         string    `json:"id" db:"id"`
	MessageRef string    `json:"message_ref" db:"message_ref"`
	JiraKey    string    `json:"jira_key" db:"jira_key"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
