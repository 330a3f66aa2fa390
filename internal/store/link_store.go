package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/taskbot/internal/model"
)

// NormalizeMessageRef validates ref as a UUID and returns its canonical
// lower-case form.
func NormalizeMessageRef(ref string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidMessageRef, ref)
	}
	return id.String(), nil
}

// InsertLink links a message reference to an issue key.
func (s *SQLStore) InsertLink(ctx context.Context, messageRef, jiraKey string) (*model.Link, error) {
	ref, err := NormalizeMessageRef(messageRef)
	if err != nil {
		return nil, err
	}

	link := &model.Link{
		ID:         uuid.New().String(),
		MessageRef: ref,
		JiraKey:    strings.ToUpper(strings.TrimSpace(jiraKey)),
		CreatedAt:  time.Now().UTC(),
	}

	result, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO jira_issues (id, message_ref, jira_key, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (message_ref, jira_key) DO NOTHING`),
		link.ID, link.MessageRef, link.JiraKey, link.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating link: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, fmt.Errorf("%w: %s -> %s", ErrDuplicateLink, link.MessageRef, link.JiraKey)
	}
	return link, nil
}

// DeleteLink removes the link between messageRef and jiraKey.
func (s *SQLStore) DeleteLink(ctx context.Context, messageRef, jiraKey string) error {
	ref, err := NormalizeMessageRef(messageRef)
	if err != nil {
		return err
	}
	key := strings.ToUpper(strings.TrimSpace(jiraKey))

	result, err := s.db.ExecContext(ctx,
		s.rebind("DELETE FROM jira_issues WHERE message_ref = ? AND jira_key = ?"), ref, key)
	if err != nil {
		return fmt.Errorf("deleting link %s -> %s: %w", ref, key, err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("%w: %s -> %s", ErrLinkNotFound, ref, key)
	}
	return nil
}

// KeysByMessageRef returns the issue keys linked to messageRef, oldest first.
func (s *SQLStore) KeysByMessageRef(ctx context.Context, messageRef string) ([]string, error) {
	ref, err := NormalizeMessageRef(messageRef)
	if err != nil {
		return nil, err
	}

	var keys []string
	err = s.db.SelectContext(ctx, &keys, s.rebind(`
		SELECT jira_key FROM jira_issues
		WHERE message_ref = ?
		ORDER BY created_at, jira_key`), ref)
	if err != nil {
		return nil, fmt.Errorf("querying links for %s: %w", ref, err)
	}
	return keys, nil
}

// ListLinks returns the most recent links, newest first. A non-positive
// limit returns all of them.
func (s *SQLStore) ListLinks(ctx context.Context, limit int) ([]model.Link, error) {
	query := "SELECT id, message_ref, jira_key, created_at FROM jira_issues ORDER BY created_at DESC, jira_key"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	var links []model.Link
	if err := s.db.SelectContext(ctx, &links, query); err != nil {
		return nil, fmt.Errorf("listing links: %w", err)
	}
	return links, nil
}

// DistinctKeys returns every linked issue key once, sorted.
func (s *SQLStore) DistinctKeys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := s.db.SelectContext(ctx, &keys,
		"SELECT DISTINCT jira_key FROM jira_issues ORDER BY jira_key"); err != nil {
		return nil, fmt.Errorf("querying linked keys: %w", err)
	}
	return keys, nil
}
