package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nhle/taskbot/internal/model"
)

var (
	doneMarkers       = []string{"done", "closed", "resolved", "complete", "cancel"}
	inProgressMarkers = []string{"progress", "review", "test", "block", "hold"}
)

// CategorizeStatus guesses the category of a status name the dictionary
// does not know yet.
func CategorizeStatus(name string) string {
	lower := strings.ToLower(name)
	for _, m := range doneMarkers {
		if strings.Contains(lower, m) {
			return model.StatusCategoryDone
		}
	}
	for _, m := range inProgressMarkers {
		if strings.Contains(lower, m) {
			return model.StatusCategoryInProgress
		}
	}
	return model.StatusCategoryToDo
}

// StatusID returns the id of name, adding it with the next free id when
// it is not in the dictionary.
func (s *SQLStore) StatusID(ctx context.Context, name string) (int, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var id int
	err = tx.GetContext(ctx, &id,
		s.rebind("SELECT status_id FROM jira_statuses WHERE status_name = ?"), name)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("looking up status %q: %w", name, err)
	}

	if err := tx.GetContext(ctx, &id,
		"SELECT COALESCE(MAX(status_id), 0) + 1 FROM jira_statuses"); err != nil {
		return 0, fmt.Errorf("allocating status id: %w", err)
	}
	_, err = tx.ExecContext(ctx, s.rebind(`
		INSERT INTO jira_statuses (status_id, status_name, status_category)
		VALUES (?, ?, ?)`), id, name, CategorizeStatus(name))
	if err != nil {
		return 0, fmt.Errorf("adding status %q: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing status %q: %w", name, err)
	}
	return id, nil
}

// Statuses returns the status dictionary ordered by id.
func (s *SQLStore) Statuses(ctx context.Context) ([]model.IssueStatus, error) {
	var out []model.IssueStatus
	if err := s.db.SelectContext(ctx, &out,
		"SELECT status_id, status_name, status_category FROM jira_statuses ORDER BY status_id"); err != nil {
		return nil, fmt.Errorf("querying statuses: %w", err)
	}
	return out, nil
}

// UpsertDetail stores d. An existing row keeps its original created_at.
func (s *SQLStore) UpsertDetail(ctx context.Context, d model.IssueDetail) error {
	now := time.Now().UTC()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = now
	}

	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO jira_issue_details (jira_key, status_id, summary, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (jira_key) DO UPDATE SET
			status_id = excluded.status_id,
			summary = excluded.summary,
			updated_at = excluded.updated_at`),
		d.JiraKey, d.StatusID, d.Summary, d.CreatedAt.UTC(), d.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("upserting details of %s: %w", d.JiraKey, err)
	}
	return nil
}

// GetDetail returns the stored details of jiraKey, or nil when absent.
func (s *SQLStore) GetDetail(ctx context.Context, jiraKey string) (*model.IssueDetail, error) {
	var d model.IssueDetail
	err := s.db.GetContext(ctx, &d, s.rebind(`
		SELECT jira_key, status_id, summary, created_at, updated_at
		FROM jira_issue_details WHERE jira_key = ?`), jiraKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting details of %s: %w", jiraKey, err)
	}
	return &d, nil
}
