// Package tracker defines the issue-tracker operations the bot relies on.
package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/nhle/taskbot/internal/model"
)

// AuthError indicates that the tracker rejected the configured credentials.
// Clients return it when a 401 response is received.
type AuthError struct {
	Tracker string
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error (%s): %s", e.Tracker, e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// Tracker is the contract an issue tracker integration must implement.
type Tracker interface {
	// ProjectComponents returns the component names of a project in
	// tracker order.
	ProjectComponents(ctx context.Context, projectKey string) ([]string, error)

	// BoardID returns the id of the first agile board of a project.
	BoardID(ctx context.Context, projectKey string) (int, error)

	// Sprints returns every sprint of the board in the given state.
	Sprints(ctx context.Context, boardID int, state model.SprintState) ([]model.Sprint, error)

	// CreateIssue creates an issue and returns its key.
	CreateIssue(ctx context.Context, req *model.TaskRequest) (string, error)

	AddIssuesToSprint(ctx context.Context, sprintID int, keys ...string) error
	AddAttachment(ctx context.Context, key string, att model.Attachment) error
	AddComment(ctx context.Context, key, body string) error

	// LinkIssues links inward to outward with the named link type.
	LinkIssues(ctx context.Context, linkType, inward, outward string) error

	GetIssue(ctx context.Context, key string) (*model.Issue, error)

	// IssueURL returns the browse URL of key.
	IssueURL(key string) string
}
