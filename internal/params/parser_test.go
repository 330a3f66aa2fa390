package params

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/taskbot/internal/model"
	"github.com/nhle/taskbot/internal/resolve"
)

// stubTracker serves both component and sprint catalogs.
type stubTracker struct {
	components      map[string][]string
	sprints         []model.Sprint
	componentCalls  int
	sprintCalls     int
	requestedBoards []string
}

func (s *stubTracker) ProjectComponents(_ context.Context, projectKey string) ([]string, error) {
	s.componentCalls++
	return s.components[projectKey], nil
}

func (s *stubTracker) BoardID(_ context.Context, projectKey string) (int, error) {
	s.requestedBoards = append(s.requestedBoards, projectKey)
	return 1, nil
}

func (s *stubTracker) Sprints(_ context.Context, _ int, state model.SprintState) ([]model.Sprint, error) {
	s.sprintCalls++
	var out []model.Sprint
	for _, sp := range s.sprints {
		if sp.State == state {
			out = append(out, sp)
		}
	}
	return out, nil
}

func newTestParser(tr *stubTracker) *Parser {
	return New(
		resolve.NewIssueTypes([]string{"Story", "Bug"}, "Story"),
		resolve.NewComponents(tr, nil, resolve.ComponentOptions{
			DefaultProject:   "AAI",
			DefaultComponent: "org",
			DeprecatedPrefix: "DEPRECATED",
		}),
		resolve.NewSprints(tr, "AAI", nil),
		Options{DefaultProject: "aai", DefaultComponent: "org", Labels: []string{"telegram"}},
	)
}

func defaultTracker() *stubTracker {
	return &stubTracker{
		components: map[string][]string{
			"AAI": {"org", "devops", "avia-parametry"},
			"OPS": {"infra", "monitoring"},
		},
		sprints: []model.Sprint{
			{ID: 31, Name: "2025Q4-S3_агент", State: model.SprintActive},
			{ID: 32, Name: "2025Q4-S4_платформа", State: model.SprintFuture},
		},
	}
}

func TestParse_Defaults(t *testing.T) {
	p := newTestParser(defaultTracker())

	res := p.Parse(context.Background(), "  Fix login bug  ")

	require.False(t, res.ShouldStop(), res.Diagnostic)
	assert.Equal(t, &model.TaskRequest{
		Summary:    "Fix login bug",
		Component:  "org",
		IssueType:  "Story",
		ProjectKey: "AAI",
		Labels:     []string{"telegram"},
	}, res.Request)
}

func TestParse_FullCommand(t *testing.T) {
	tr := defaultTracker()
	p := newTestParser(tr)

	res := p.Parse(context.Background(),
		"Add new feature component: авиа-параметры type: bug sprint: s3 agent link: 1020 desc: Steps:\n1. open\n2. click")

	require.False(t, res.ShouldStop(), res.Diagnostic)
	req := res.Request
	assert.Equal(t, "Add new feature", req.Summary)
	assert.Equal(t, "avia-parametry", req.Component)
	assert.Equal(t, "Bug", req.IssueType)
	require.NotNil(t, req.SprintID)
	assert.Equal(t, 31, *req.SprintID)
	assert.Equal(t, "AAI-1020", req.LinkTarget)
	assert.Equal(t, "Steps:\n1. open\n2. click", req.Description)
}

func TestParse_ProjectScopesComponentAndLink(t *testing.T) {
	tr := defaultTracker()
	p := newTestParser(tr)

	res := p.Parse(context.Background(), "Scale workers project: ops component: infra link: 7")

	require.False(t, res.ShouldStop(), res.Diagnostic)
	assert.Equal(t, "OPS", res.Request.ProjectKey)
	assert.Equal(t, "infra", res.Request.Component)
	assert.Equal(t, "OPS-7", res.Request.LinkTarget)
}

func TestParse_TypeDiagnosticShortCircuits(t *testing.T) {
	tr := defaultTracker()
	p := newTestParser(tr)

	res := p.Parse(context.Background(), "Do it type: epic component: nothing-like-this sprint: nowhere")

	assert.True(t, res.ShouldStop())
	assert.Nil(t, res.Request)
	assert.Contains(t, res.Diagnostic, "issue type 'epic'")
	assert.Zero(t, tr.componentCalls)
	assert.Zero(t, tr.sprintCalls)
}

func TestParse_ComponentDiagnosticStopsBeforeSprint(t *testing.T) {
	tr := defaultTracker()
	p := newTestParser(tr)

	res := p.Parse(context.Background(), "Do it component: маркетинг sprint: s3")

	assert.True(t, res.ShouldStop())
	assert.Contains(t, res.Diagnostic, "component 'маркетинг'")
	assert.Zero(t, tr.sprintCalls)
}

func TestParse_SprintDiagnostic(t *testing.T) {
	tr := defaultTracker()
	tr.sprints = append(tr.sprints, model.Sprint{ID: 33, Name: "Hotfix", State: model.SprintActive})
	p := newTestParser(tr)

	res := p.Parse(context.Background(), "Do it sprint: active")

	assert.True(t, res.ShouldStop())
	assert.Contains(t, res.Diagnostic, "Multiple active sprints")
}

func TestParse_DescriptionBecomesSummary(t *testing.T) {
	p := newTestParser(defaultTracker())

	res := p.Parse(context.Background(), "desc: Implement user\nauthentication system")

	require.False(t, res.ShouldStop(), res.Diagnostic)
	assert.Equal(t, "Implement user authentication system", res.Request.Summary)
	assert.Empty(t, res.Request.Description)
}

func TestParse_EmptySummary(t *testing.T) {
	p := newTestParser(defaultTracker())

	res := p.Parse(context.Background(), "component: devops")

	assert.True(t, res.ShouldStop())
	assert.Contains(t, res.Diagnostic, "summary")
}

func TestParse_RepeatedComponentLastWins(t *testing.T) {
	p := newTestParser(defaultTracker())

	res := p.Parse(context.Background(), "Fix deploy component: org component: devops")

	require.False(t, res.ShouldStop(), res.Diagnostic)
	assert.Equal(t, "devops", res.Request.Component)
	assert.Equal(t, "Fix deploy", res.Request.Summary)
}

func TestParse_LabelsAreCopied(t *testing.T) {
	p := newTestParser(defaultTracker())

	first := p.Parse(context.Background(), "One")
	first.Request.Labels[0] = "mutated"
	second := p.Parse(context.Background(), "Two")

	assert.Equal(t, []string{"telegram"}, second.Request.Labels)
}

func TestNormalizeSummary(t *testing.T) {
	assert.Equal(t, "a b c", NormalizeSummary(" a\n b\t\tc "))

	long := strings.Repeat("я", 300)
	got := NormalizeSummary(long)
	assert.Equal(t, MaxSummaryLength, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.True(t, strings.HasPrefix(long, strings.TrimSuffix(got, "...")))

	exact := strings.Repeat("x", MaxSummaryLength)
	assert.Equal(t, exact, NormalizeSummary(exact))
}

func TestParse_TruncatesLongSummary(t *testing.T) {
	p := newTestParser(defaultTracker())
	long := strings.Repeat("word ", 80)

	res := p.Parse(context.Background(), long+"type: Bug")

	require.False(t, res.ShouldStop(), res.Diagnostic)
	assert.Equal(t, MaxSummaryLength, utf8.RuneCountInString(res.Request.Summary))
	assert.True(t, strings.HasSuffix(res.Request.Summary, "..."))
	assert.True(t, strings.HasPrefix(long, strings.TrimSuffix(res.Request.Summary, "...")))
}
