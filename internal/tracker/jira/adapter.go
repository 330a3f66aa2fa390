package jira

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/nhle/taskbot/internal/model"
	"github.com/nhle/taskbot/internal/tracker"
)

// ErrNoBoard is returned by BoardID when a project has no agile board.
var ErrNoBoard = errors.New("no board found for project")

// sprintPageSize is the page size requested from the agile sprint listing.
const sprintPageSize = 50

// Adapter implements tracker.Tracker for Jira Server/DC.
type Adapter struct {
	client *Client
}

var _ tracker.Tracker = (*Adapter)(nil)

// NewAdapter creates a Jira tracker adapter.
func NewAdapter(baseURL, token string, opts ...Option) *Adapter {
	return &Adapter{client: NewClient(baseURL, token, opts...)}
}

// ValidateConnection verifies credentials by calling GET /rest/api/2/myself
// and returns the user's display name.
func (a *Adapter) ValidateConnection(ctx context.Context) (string, error) {
	var me struct {
		DisplayName string `json:"displayName"`
	}
	if err := a.client.Get(ctx, "/rest/api/2/myself", &me); err != nil {
		return "", fmt.Errorf("validating Jira connection: %w", err)
	}
	return me.DisplayName, nil
}

// ProjectComponents lists the component names of projectKey.
func (a *Adapter) ProjectComponents(ctx context.Context, projectKey string) ([]string, error) {
	var comps []Component
	path := fmt.Sprintf("/rest/api/2/project/%s/components", url.PathEscape(projectKey))
	if err := a.client.Get(ctx, path, &comps); err != nil {
		return nil, fmt.Errorf("fetching components of %s: %w", projectKey, err)
	}

	names := make([]string, 0, len(comps))
	for _, c := range comps {
		names = append(names, c.Name)
	}
	return names, nil
}

// BoardID returns the first board of projectKey.
func (a *Adapter) BoardID(ctx context.Context, projectKey string) (int, error) {
	var page BoardPage
	path := "/rest/agile/1.0/board?projectKeyOrId=" + url.QueryEscape(projectKey)
	if err := a.client.Get(ctx, path, &page); err != nil {
		return 0, fmt.Errorf("fetching boards of %s: %w", projectKey, err)
	}
	if len(page.Values) == 0 {
		return 0, fmt.Errorf("%w %s", ErrNoBoard, projectKey)
	}
	return page.Values[0].ID, nil
}

// Sprints pages through the sprints of boardID in the given state.
func (a *Adapter) Sprints(ctx context.Context, boardID int, state model.SprintState) ([]model.Sprint, error) {
	var out []model.Sprint
	startAt := 0
	for {
		path := fmt.Sprintf("/rest/agile/1.0/board/%d/sprint?state=%s&startAt=%d&maxResults=%d",
			boardID, url.QueryEscape(string(state)), startAt, sprintPageSize)

		var page SprintPage
		if err := a.client.Get(ctx, path, &page); err != nil {
			return nil, fmt.Errorf("fetching %s sprints of board %d: %w", state, boardID, err)
		}
		for _, s := range page.Values {
			out = append(out, model.Sprint{ID: s.ID, Name: s.Name, State: model.SprintState(s.State)})
		}
		if page.IsLast || len(page.Values) == 0 {
			return out, nil
		}
		startAt += len(page.Values)
	}
}

// CreateIssue creates the issue described by req and returns its key.
func (a *Adapter) CreateIssue(ctx context.Context, req *model.TaskRequest) (string, error) {
	fields := CreateFields{
		Project:     KeyRef{Key: req.ProjectKey},
		Summary:     req.Summary,
		Description: req.Description,
		IssueType:   NameRef{Name: req.IssueType},
		Labels:      req.Labels,
	}
	if req.Component != "" {
		fields.Components = []NameRef{{Name: req.Component}}
	}

	var created CreatedIssue
	if err := a.client.Post(ctx, "/rest/api/2/issue", CreateIssueRequest{Fields: fields}, &created); err != nil {
		return "", fmt.Errorf("creating issue in %s: %w", req.ProjectKey, err)
	}
	slog.InfoContext(ctx, "jira issue created", "issue_key", created.Key, "project", req.ProjectKey)
	return created.Key, nil
}

// AddIssuesToSprint moves keys into sprintID.
func (a *Adapter) AddIssuesToSprint(ctx context.Context, sprintID int, keys ...string) error {
	path := fmt.Sprintf("/rest/agile/1.0/sprint/%d/issue", sprintID)
	// Returns 204 No Content on success.
	if err := a.client.Post(ctx, path, SprintIssuesRequest{Issues: keys}, nil); err != nil {
		return fmt.Errorf("adding %v to sprint %d: %w", keys, sprintID, err)
	}
	return nil
}

// AddAttachment uploads att to key.
func (a *Adapter) AddAttachment(ctx context.Context, key string, att model.Attachment) error {
	path := fmt.Sprintf("/rest/api/2/issue/%s/attachments", url.PathEscape(key))
	if err := a.client.PostFile(ctx, path, att.Filename, att.Data, nil); err != nil {
		return fmt.Errorf("attaching %s to %s: %w", att.Filename, key, err)
	}
	return nil
}

// AddComment posts a new comment to key.
func (a *Adapter) AddComment(ctx context.Context, key, body string) error {
	path := fmt.Sprintf("/rest/api/2/issue/%s/comment", url.PathEscape(key))
	if err := a.client.Post(ctx, path, map[string]string{"body": body}, nil); err != nil {
		return fmt.Errorf("commenting on %s: %w", key, err)
	}
	return nil
}

// LinkIssues links inward to outward with linkType.
func (a *Adapter) LinkIssues(ctx context.Context, linkType, inward, outward string) error {
	body := IssueLinkRequest{
		Type:         NameRef{Name: linkType},
		InwardIssue:  KeyRef{Key: inward},
		OutwardIssue: KeyRef{Key: outward},
	}
	if err := a.client.Post(ctx, "/rest/api/2/issueLink", body, nil); err != nil {
		return fmt.Errorf("linking %s to %s: %w", inward, outward, err)
	}
	return nil
}

// GetIssue fetches the summary and status of key.
func (a *Adapter) GetIssue(ctx context.Context, key string) (*model.Issue, error) {
	var issue Issue
	path := fmt.Sprintf("/rest/api/2/issue/%s?fields=summary,status", url.PathEscape(key))
	if err := a.client.Get(ctx, path, &issue); err != nil {
		return nil, fmt.Errorf("fetching issue %s: %w", key, err)
	}
	return &model.Issue{
		Key:     issue.Key,
		Summary: issue.Fields.Summary,
		Status:  issue.Fields.Status.Name,
	}, nil
}

// IssueURL returns the browse URL of key.
func (a *Adapter) IssueURL(key string) string {
	return a.client.BaseURL() + "/browse/" + key
}
