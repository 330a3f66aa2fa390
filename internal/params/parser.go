package params

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nhle/taskbot/internal/crossref"
	"github.com/nhle/taskbot/internal/model"
	"github.com/nhle/taskbot/internal/resolve"
)

// MaxSummaryLength is the tracker's limit on issue summaries, in characters.
const MaxSummaryLength = 255

const ellipsis = "..."

// Result is either a request ready for submission or a diagnostic that
// must be shown to the user verbatim, with nothing submitted.
type Result struct {
	Request    *model.TaskRequest
	Diagnostic string
}

// ShouldStop reports whether the command must be aborted.
func (r Result) ShouldStop() bool {
	return r.Diagnostic != ""
}

func stop(diagnostic string) Result {
	return Result{Diagnostic: diagnostic}
}

// Options configures a Parser.
type Options struct {
	DefaultProject   string
	DefaultComponent string
	Labels           []string
}

// Parser resolves command text into a TaskRequest.
type Parser struct {
	issueTypes *resolve.IssueTypes
	components *resolve.Components
	sprints    *resolve.Sprints
	opts       Options
}

// New creates a Parser over the given resolvers.
func New(
	issueTypes *resolve.IssueTypes,
	components *resolve.Components,
	sprints *resolve.Sprints,
	opts Options,
) *Parser {
	opts.DefaultProject = strings.ToUpper(opts.DefaultProject)
	return &Parser{
		issueTypes: issueTypes,
		components: components,
		sprints:    sprints,
		opts:       opts,
	}
}

// Parse extracts the parameters of text and resolves them in a fixed
// order: project, type, component, sprint, link. The first diagnostic
// stops resolution of everything after it.
func (p *Parser) Parse(ctx context.Context, text string) Result {
	ex := Extract(text)
	if len(ex.Repeated) > 0 {
		slog.InfoContext(ctx, "repeated parameters, last occurrence wins", "keywords", ex.Repeated)
	}

	req := &model.TaskRequest{
		Summary:    ex.Summary,
		Component:  p.opts.DefaultComponent,
		IssueType:  p.issueTypes.Default(),
		ProjectKey: p.opts.DefaultProject,
		Labels:     append([]string(nil), p.opts.Labels...),
	}
	req.Description, _ = ex.Value(KeywordDescription)

	if v, ok := ex.Value(KeywordProject); ok {
		req.ProjectKey = strings.ToUpper(v)
	}

	if v, ok := ex.Value(KeywordType); ok {
		out := p.issueTypes.Resolve(v)
		if !out.OK() {
			return stop(out.Diagnostic)
		}
		req.IssueType = out.Value
	}

	if v, ok := ex.Value(KeywordComponent); ok {
		out := p.components.Resolve(ctx, v, req.ProjectKey)
		if !out.OK() {
			return stop(out.Diagnostic)
		}
		req.Component = out.Value
	}

	if v, ok := ex.Value(KeywordSprint); ok {
		out := p.sprints.Resolve(ctx, req.ProjectKey, v)
		if !out.OK() {
			return stop(out.Diagnostic)
		}
		id := out.Value
		req.SprintID = &id
	}

	if v, ok := ex.Value(KeywordLink); ok {
		if key, found := crossref.IssueKey(v, req.ProjectKey); found {
			req.LinkTarget = key
		} else {
			req.LinkTarget = v
		}
	}

	if req.Summary == "" && req.Description != "" {
		req.Summary, req.Description = req.Description, ""
	}
	req.Summary = NormalizeSummary(req.Summary)
	if req.Summary == "" {
		return stop("❌ Please provide a task summary before the parameters.\n\n" +
			"📝 Example: /task Fix login bug component: devops type: Bug")
	}

	slog.InfoContext(ctx, "task parameters resolved",
		"project", req.ProjectKey, "type", req.IssueType, "component", req.Component,
		"sprint", req.SprintID != nil, "link", req.LinkTarget)
	return Result{Request: req}
}

// NormalizeSummary folds whitespace and line breaks to single spaces and
// cuts the result to MaxSummaryLength characters, ending in an ellipsis
// when cut.
func NormalizeSummary(s string) string {
	s = collapseSpaces(s)
	runes := []rune(s)
	if len(runes) <= MaxSummaryLength {
		return s
	}
	return string(runes[:MaxSummaryLength-len(ellipsis)]) + ellipsis
}
