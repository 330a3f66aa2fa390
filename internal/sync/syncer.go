// Package sync keeps the local issue-details table in step with the tracker.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	gosync "sync"
	"time"

	"github.com/nhle/taskbot/internal/model"
	"github.com/nhle/taskbot/internal/store"
	"github.com/nhle/taskbot/internal/tracker"
)

// fetchTimeout is the maximum time allowed for one issue fetch.
const fetchTimeout = 30 * time.Second

// IssueReader fetches the current state of an issue.
type IssueReader interface {
	GetIssue(ctx context.Context, key string) (*model.Issue, error)
}

// Repository is the subset of store.Store the syncer writes to.
type Repository interface {
	DistinctKeys(ctx context.Context) ([]string, error)
	StatusID(ctx context.Context, name string) (int, error)
	UpsertDetail(ctx context.Context, d model.IssueDetail) error
}

var _ Repository = (store.Store)(nil)

// Result summarizes one run.
type Result struct {
	Total   int
	Updated int
	Failed  int
}

// Syncer refreshes the details of every linked issue, once or on a ticker.
type Syncer struct {
	issues   IssueReader
	repo     Repository
	interval time.Duration

	mu      gosync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	last    Result
	lastAt  time.Time
}

// New creates a Syncer. A non-positive interval defaults to one hour.
func New(issues IssueReader, repo Repository, interval time.Duration) *Syncer {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Syncer{issues: issues, repo: repo, interval: interval}
}

// RunOnce refreshes every linked issue. Per-issue failures are counted and
// logged; an authentication failure aborts the run.
func (s *Syncer) RunOnce(ctx context.Context) (Result, error) {
	keys, err := s.repo.DistinctKeys(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("listing linked issues: %w", err)
	}

	res := Result{Total: len(keys)}
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := s.syncIssue(ctx, key); err != nil {
			if tracker.IsAuthError(err) {
				return res, err
			}
			res.Failed++
			slog.WarnContext(ctx, "issue details sync failed", "issue_key", key, "error", err)
			continue
		}
		res.Updated++
	}

	s.mu.Lock()
	s.last, s.lastAt = res, time.Now()
	s.mu.Unlock()

	slog.InfoContext(ctx, "issue details synced",
		"total", res.Total, "updated", res.Updated, "failed", res.Failed)
	return res, nil
}

func (s *Syncer) syncIssue(ctx context.Context, key string) error {
	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	issue, err := s.issues.GetIssue(fetchCtx, key)
	if err != nil {
		return err
	}
	statusID, err := s.repo.StatusID(ctx, issue.Status)
	if err != nil {
		return err
	}
	return s.repo.UpsertDetail(ctx, model.IssueDetail{
		JiraKey:  key,
		StatusID: statusID,
		Summary:  issue.Summary,
	})
}

// Start runs RunOnce immediately and then on every tick until Stop or ctx
// cancellation. Calling Start on a running Syncer is a no-op.
func (s *Syncer) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	stopCh, doneCh := s.stopCh, s.doneCh
	s.mu.Unlock()

	go func() {
		defer close(doneCh)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.tick(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-stopCh:
				return
			case <-ticker.C:
				s.tick(ctx)
			}
		}
	}()
}

func (s *Syncer) tick(ctx context.Context) {
	if _, err := s.RunOnce(ctx); err != nil && ctx.Err() == nil {
		slog.ErrorContext(ctx, "issue details sync aborted", "error", err)
	}
}

// Stop halts the loop and waits for an in-flight run to finish.
func (s *Syncer) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	close(s.stopCh)
	s.running = false
	doneCh := s.doneCh
	s.mu.Unlock()

	<-doneCh
}

// Last returns the result of the latest completed run and when it ended.
func (s *Syncer) Last() (Result, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.lastAt
}
