// Package task turns a resolved TaskRequest into a tracker issue.
package task

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nhle/taskbot/internal/logger"
	"github.com/nhle/taskbot/internal/model"
)

// DefaultLinkType is used when no link type is configured.
const DefaultLinkType = "Relates"

// IssueWriter is the subset of tracker.Tracker the submitter needs.
type IssueWriter interface {
	CreateIssue(ctx context.Context, req *model.TaskRequest) (string, error)
	AddIssuesToSprint(ctx context.Context, sprintID int, keys ...string) error
	AddAttachment(ctx context.Context, key string, att model.Attachment) error
	LinkIssues(ctx context.Context, linkType, inward, outward string) error
	IssueURL(key string) string
}

// Submission is the outcome of a successful Submit. Warnings describe the
// follow-up steps that failed after the issue was created.
type Submission struct {
	Key      string
	URL      string
	Warnings []string
}

// Submitter creates issues and applies sprint, link and attachments.
type Submitter struct {
	tracker  IssueWriter
	linkType string
}

// NewSubmitter creates a Submitter. An empty linkType uses DefaultLinkType.
func NewSubmitter(tracker IssueWriter, linkType string) *Submitter {
	if linkType == "" {
		linkType = DefaultLinkType
	}
	return &Submitter{tracker: tracker, linkType: linkType}
}

// Submit creates the issue for req. Only a creation failure is returned as
// an error.
func (s *Submitter) Submit(ctx context.Context, req *model.TaskRequest, attachments []model.Attachment) (*Submission, error) {
	key, err := s.tracker.CreateIssue(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("creating issue: %w", err)
	}

	sub := &Submission{Key: key, URL: s.tracker.IssueURL(key)}
	ctx = withIssueKey(ctx, key)

	if req.SprintID != nil {
		if err := s.tracker.AddIssuesToSprint(ctx, *req.SprintID, key); err != nil {
			slog.WarnContext(ctx, "adding issue to sprint failed", "sprint", *req.SprintID, "error", err)
			sub.Warnings = append(sub.Warnings, "⚠️ Could not add the task to the sprint, it stays in the backlog.")
		}
	}

	if req.LinkTarget != "" {
		if err := s.tracker.LinkIssues(ctx, s.linkType, key, req.LinkTarget); err != nil {
			slog.WarnContext(ctx, "linking issue failed", "target", req.LinkTarget, "error", err)
			sub.Warnings = append(sub.Warnings, fmt.Sprintf("⚠️ Could not link the task to %s.", req.LinkTarget))
		}
	}

	for _, att := range attachments {
		if err := s.tracker.AddAttachment(ctx, key, att); err != nil {
			slog.WarnContext(ctx, "attachment upload failed", "file", att.Filename, "error", err)
			sub.Warnings = append(sub.Warnings, fmt.Sprintf("⚠️ Could not attach %s.", att.Filename))
		}
	}

	slog.InfoContext(ctx, "task submitted", "url", sub.URL, "warnings", len(sub.Warnings))
	return sub, nil
}

// Describe fills in the description of req before submission: an empty
// description gets a line naming the author, and quoted text from a
// replied-to message is appended as a quote block.
func Describe(req *model.TaskRequest, author, quoted string) {
	if strings.TrimSpace(req.Description) == "" {
		req.Description = "Created via Telegram bot by user " + author
	}
	quoted = strings.TrimSpace(quoted)
	if quoted != "" {
		req.Description += "\n\n{quote}\n" + quoted + "\n{quote}"
	}
}

func withIssueKey(ctx context.Context, key string) context.Context {
	return logger.WithFields(ctx, logger.Fields{IssueKey: key})
}
