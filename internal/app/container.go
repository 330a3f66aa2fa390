// Package app wires configuration into the running components.
package app

import (
	"fmt"
	"time"

	"github.com/nhle/taskbot/internal/bot"
	"github.com/nhle/taskbot/internal/model"
	"github.com/nhle/taskbot/internal/params"
	"github.com/nhle/taskbot/internal/resolve"
	"github.com/nhle/taskbot/internal/store"
	appsync "github.com/nhle/taskbot/internal/sync"
	"github.com/nhle/taskbot/internal/task"
	"github.com/nhle/taskbot/internal/tracker"
	"github.com/nhle/taskbot/internal/tracker/jira"
)

// Container holds the long-lived components built from one AppConfig.
type Container struct {
	Config     *model.AppConfig
	Tracker    tracker.Tracker
	Components *resolve.Components
	IssueTypes *resolve.IssueTypes
	Sprints    *resolve.Sprints
	Parser     *params.Parser
	Submitter  *task.Submitter

	store *store.SQLStore
}

// New builds the tracker-facing components. The store is opened lazily by
// Store.
func New(cfg *model.AppConfig) *Container {
	return NewWithTracker(cfg, jira.NewAdapter(cfg.Jira.URL, cfg.Jira.Token))
}

// NewWithTracker is New over an existing tracker.
func NewWithTracker(cfg *model.AppConfig, t tracker.Tracker) *Container {
	j := cfg.Jira
	issueTypes := resolve.NewIssueTypes(j.IssueTypes, j.DefaultIssueType)
	components := resolve.NewComponents(t, nil, resolve.ComponentOptions{
		DefaultProject:   j.ProjectKey,
		DefaultComponent: j.DefaultComponent,
		DeprecatedPrefix: j.DeprecatedPrefix,
		Fallback:         j.FallbackComponents,
	})
	sprints := resolve.NewSprints(t, j.ProjectKey, nil)

	return &Container{
		Config:     cfg,
		Tracker:    t,
		Components: components,
		IssueTypes: issueTypes,
		Sprints:    sprints,
		Parser: params.New(issueTypes, components, sprints, params.Options{
			DefaultProject:   j.ProjectKey,
			DefaultComponent: j.DefaultComponent,
			Labels:           j.Labels,
		}),
		Submitter: task.NewSubmitter(t, j.LinkType),
	}
}

// Store opens the configured database on first use.
func (c *Container) Store() (*store.SQLStore, error) {
	if c.store != nil {
		return c.store, nil
	}
	s, err := store.Open(c.Config.Store.Driver, c.Config.Store.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", c.Config.Store.Driver, err)
	}
	c.store = s
	return s, nil
}

// Handler builds the chat command handler replying through sender.
func (c *Container) Handler(sender bot.Sender) (*bot.Handler, error) {
	s, err := c.Store()
	if err != nil {
		return nil, err
	}
	return bot.NewHandler(bot.Deps{
		Sender:    sender,
		Parser:    c.Parser,
		Submitter: c.Submitter,
		Commenter: c.Tracker,
		Links:     s,
		Access:    bot.NewAccess(c.Config.Access.AllowedUsers),
	}, c.Config.Jira.ProjectKey), nil
}

// Syncer builds the issue-details syncer with the configured interval.
func (c *Container) Syncer() (*appsync.Syncer, error) {
	s, err := c.Store()
	if err != nil {
		return nil, err
	}
	interval := time.Duration(c.Config.Sync.IntervalSec) * time.Second
	return appsync.New(c.Tracker, s, interval), nil
}

// Close releases the store if it was opened.
func (c *Container) Close() error {
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}
