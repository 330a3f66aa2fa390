package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/taskbot/internal/model"
)

func newTestAdapter(t *testing.T, h http.HandlerFunc) *Adapter {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewAdapter(srv.URL, "t")
}

func TestAdapter_ProjectComponents(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/2/project/AAI/components", r.URL.Path)
		_, _ = io.WriteString(w, `[{"id":"1","name":"org"},{"id":"2","name":"devops"}]`)
	})

	names, err := a.ProjectComponents(context.Background(), "AAI")
	require.NoError(t, err)
	assert.Equal(t, []string{"org", "devops"}, names)
}

func TestAdapter_BoardID(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/agile/1.0/board", r.URL.Path)
		if r.URL.Query().Get("projectKeyOrId") == "EMPTY" {
			_, _ = io.WriteString(w, `{"isLast":true,"values":[]}`)
			return
		}
		_, _ = io.WriteString(w, `{"isLast":true,"values":[{"id":42,"name":"AAI board"},{"id":43}]}`)
	})

	id, err := a.BoardID(context.Background(), "AAI")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	_, err = a.BoardID(context.Background(), "EMPTY")
	assert.ErrorIs(t, err, ErrNoBoard)
}

func TestAdapter_SprintsPages(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/agile/1.0/board/42/sprint", r.URL.Path)
		assert.Equal(t, "future", r.URL.Query().Get("state"))
		switch r.URL.Query().Get("startAt") {
		case "0":
			_, _ = io.WriteString(w, `{"isLast":false,"values":[{"id":1,"name":"S1","state":"future"},{"id":2,"name":"S2","state":"future"}]}`)
		case "2":
			_, _ = io.WriteString(w, `{"isLast":true,"values":[{"id":3,"name":"S3","state":"future"}]}`)
		default:
			t.Errorf("unexpected startAt %q", r.URL.Query().Get("startAt"))
		}
	})

	sprints, err := a.Sprints(context.Background(), 42, model.SprintFuture)
	require.NoError(t, err)
	require.Len(t, sprints, 3)
	assert.Equal(t, model.Sprint{ID: 3, Name: "S3", State: model.SprintFuture}, sprints[2])
}

func TestAdapter_CreateIssue(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/api/2/issue", r.URL.Path)

		var body CreateIssueRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "AAI", body.Fields.Project.Key)
		assert.Equal(t, "Fix login", body.Fields.Summary)
		assert.Equal(t, "Bug", body.Fields.IssueType.Name)
		assert.Equal(t, []NameRef{{Name: "devops"}}, body.Fields.Components)
		assert.Equal(t, []string{"bot"}, body.Fields.Labels)

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"10001","key":"AAI-101"}`)
	})

	key, err := a.CreateIssue(context.Background(), &model.TaskRequest{
		Summary:    "Fix login",
		Component:  "devops",
		IssueType:  "Bug",
		ProjectKey: "AAI",
		Labels:     []string{"bot"},
	})
	require.NoError(t, err)
	assert.Equal(t, "AAI-101", key)
}

func TestAdapter_Writes(t *testing.T) {
	seen := map[string]string{}
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		seen[r.URL.Path] = string(body)
		w.WriteHeader(http.StatusNoContent)
	})
	ctx := context.Background()

	require.NoError(t, a.AddIssuesToSprint(ctx, 7, "AAI-1"))
	require.NoError(t, a.AddComment(ctx, "AAI-1", "hello"))
	require.NoError(t, a.LinkIssues(ctx, "Relates", "AAI-1", "AAI-2"))

	assert.JSONEq(t, `{"issues":["AAI-1"]}`, seen["/rest/agile/1.0/sprint/7/issue"])
	assert.JSONEq(t, `{"body":"hello"}`, seen["/rest/api/2/issue/AAI-1/comment"])
	assert.JSONEq(t,
		`{"type":{"name":"Relates"},"inwardIssue":{"key":"AAI-1"},"outwardIssue":{"key":"AAI-2"}}`,
		seen["/rest/api/2/issueLink"])
}

func TestAdapter_AddAttachment(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/2/issue/AAI-1/attachments", r.URL.Path)
		_, hdr, err := r.FormFile("file")
		if assert.NoError(t, err) {
			assert.Equal(t, "shot.png", hdr.Filename)
		}
		_, _ = io.WriteString(w, `[{"id":"1"}]`)
	})

	err := a.AddAttachment(context.Background(), "AAI-1", model.Attachment{Filename: "shot.png", Data: []byte{1, 2}})
	require.NoError(t, err)
}

func TestAdapter_GetIssue(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "summary,status", r.URL.Query().Get("fields"))
		_, _ = fmt.Fprint(w, `{"key":"AAI-5","fields":{"summary":"Do it","status":{"name":"In Review","id":"3"}}}`)
	})

	issue, err := a.GetIssue(context.Background(), "AAI-5")
	require.NoError(t, err)
	assert.Equal(t, &model.Issue{Key: "AAI-5", Summary: "Do it", Status: "In Review"}, issue)
	assert.Equal(t, a.client.BaseURL()+"/browse/AAI-5", a.IssueURL("AAI-5"))
}
