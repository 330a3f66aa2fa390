package store

import (
	"context"
	"errors"

	"github.com/nhle/taskbot/internal/model"
)

var (
	// ErrDuplicateLink is returned when a message is already linked to the issue.
	ErrDuplicateLink = errors.New("link already exists")

	// ErrLinkNotFound is returned when deleting a link that does not exist.
	ErrLinkNotFound = errors.New("link not found")

	// ErrInvalidMessageRef is returned when a message reference is not a UUID.
	ErrInvalidMessageRef = errors.New("message reference must be a UUID")
)

// LinkStore persists the links between chat messages and tracker issues.
type LinkStore interface {
	InsertLink(ctx context.Context, messageRef, jiraKey string) (*model.Link, error)
	DeleteLink(ctx context.Context, messageRef, jiraKey string) error
	KeysByMessageRef(ctx context.Context, messageRef string) ([]string, error)
	ListLinks(ctx context.Context, limit int) ([]model.Link, error)
	DistinctKeys(ctx context.Context) ([]string, error)
}

// DetailStore persists the last known status and summary of linked issues.
type DetailStore interface {
	// StatusID returns the id of a status name, registering unknown names.
	StatusID(ctx context.Context, name string) (int, error)
	Statuses(ctx context.Context) ([]model.IssueStatus, error)
	UpsertDetail(ctx context.Context, d model.IssueDetail) error
	GetDetail(ctx context.Context, jiraKey string) (*model.IssueDetail, error)
}

// Store is the full persistence interface.
type Store interface {
	LinkStore
	DetailStore
	Close() error
}
