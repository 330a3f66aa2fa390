package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/nhle/taskbot/internal/match"
	"github.com/nhle/taskbot/internal/model"
	"github.com/nhle/taskbot/internal/translit"
)

// Sprint matching thresholds.
const (
	// SprintThreshold is the minimum composite score a sprint must reach.
	SprintThreshold = 0.4

	// SprintAmbiguityBand groups sprints scoring this close to the best one.
	SprintAmbiguityBand = 0.1

	// sprintListLimit caps the "available sprints" listing.
	sprintListLimit = 10
)

// activeSynonyms select the board's single active sprint.
var activeSynonyms = map[string]bool{
	"active":   true,
	"aktive":   true,
	"aktivnyj": true,
	"активный": true,
	"current":  true,
	"текущий":  true,
}

// SprintSource lists the sprints of a project's board.
type SprintSource interface {
	BoardID(ctx context.Context, projectKey string) (int, error)
	Sprints(ctx context.Context, boardID int, state model.SprintState) ([]model.Sprint, error)
}

// Sprints resolves sprint queries against the active and future sprints of
// a project's first board.
type Sprints struct {
	src            SprintSource
	translit       translit.Func
	defaultProject string
}

// NewSprints creates a sprint resolver. A nil fn uses translit.ToLatin.
func NewSprints(src SprintSource, defaultProject string, fn translit.Func) *Sprints {
	if fn == nil {
		fn = translit.ToLatin
	}
	return &Sprints{src: src, translit: translit.Safe(fn), defaultProject: defaultProject}
}

type scoredSprint struct {
	sprint model.Sprint
	score  float64
}

// Resolve returns the id of the sprint query names in projectKey. The
// value is zero whenever a diagnostic is set.
func (r *Sprints) Resolve(ctx context.Context, projectKey, query string) Outcome[int] {
	if projectKey == "" {
		projectKey = r.defaultProject
	}
	query = strings.TrimSpace(query)

	sprints := r.openSprints(ctx, projectKey)

	if activeSynonyms[strings.ToLower(query)] {
		return resolveActive(ctx, sprints)
	}

	if len(sprints) == 0 {
		return NeedsInput(0, "❌ No sprints found in the project.")
	}

	scored := make([]scoredSprint, len(sprints))
	for i, s := range sprints {
		scored[i] = scoredSprint{sprint: s, score: r.Similarity(s.Name, query)}
		slog.DebugContext(ctx, "sprint similarity", "sprint", s.Name, "score", scored[i].score)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	var candidates []scoredSprint
	for _, s := range scored {
		if s.score >= SprintThreshold {
			candidates = append(candidates, s)
		}
	}

	if len(candidates) == 0 {
		limit := min(len(sprints), sprintListLimit)
		names := make([]string, 0, limit)
		for _, s := range sprints[:limit] {
			names = append(names, s.Name)
		}
		return NeedsInput(0, fmt.Sprintf(
			"❌ No sprint found matching '%s'. Available sprints:\n%s",
			query, bulletList(names),
		))
	}

	best := candidates[0]
	var ties []string
	for _, s := range candidates {
		if s.score >= best.score-SprintAmbiguityBand {
			ties = append(ties, s.sprint.Name)
		}
	}
	if len(ties) > 1 {
		return NeedsInput(0, fmt.Sprintf(
			"❌ Multiple sprints found matching '%s'. Please be more specific:\n%s",
			query, bulletList(ties),
		))
	}

	slog.InfoContext(ctx, "sprint resolved",
		"query", query, "sprint", best.sprint.Name, "id", best.sprint.ID, "score", best.score)
	return Resolved(best.sprint.ID)
}

func resolveActive(ctx context.Context, sprints []model.Sprint) Outcome[int] {
	var active []model.Sprint
	for _, s := range sprints {
		if s.State == model.SprintActive {
			active = append(active, s)
		}
	}

	switch len(active) {
	case 0:
		return NeedsInput(0, "❌ No active sprint found. Please specify a sprint name "+
			"or leave sprint: parameter empty to add to backlog.")
	case 1:
		slog.InfoContext(ctx, "active sprint selected", "sprint", active[0].Name, "id", active[0].ID)
		return Resolved(active[0].ID)
	default:
		names := make([]string, len(active))
		for i, s := range active {
			names[i] = s.Name
		}
		return NeedsInput(0, "❌ Multiple active sprints found. Please specify which one:\n"+
			bulletList(names))
	}
}

// Similarity scores how well query names sprintName: the maximum of the
// direct ratio, the ratio of both transliterated forms, and the share of
// query words contained in the sprint name (checked in both scripts).
func (r *Sprints) Similarity(sprintName, query string) float64 {
	name := strings.ToLower(sprintName)
	q := strings.ToLower(query)
	nameLatin := r.translit(name)
	qLatin := r.translit(q)

	score := max(match.Ratio(name, q), match.Ratio(nameLatin, qLatin))

	words := strings.Fields(q)
	if len(words) == 0 {
		return score
	}
	containment := max(containedShare(words, name), containedShare(strings.Fields(qLatin), nameLatin))
	return max(score, containment)
}

// containedShare returns the fraction of words found as substrings of s.
func containedShare(words []string, s string) float64 {
	if len(words) == 0 {
		return 0
	}
	hits := 0
	for _, w := range words {
		if strings.Contains(s, w) {
			hits++
		}
	}
	return float64(hits) / float64(len(words))
}

// openSprints fetches active then future sprints of the project's first
// board. Failures degrade to an empty or partial list.
func (r *Sprints) openSprints(ctx context.Context, projectKey string) []model.Sprint {
	boardID, err := r.src.BoardID(ctx, projectKey)
	if err != nil {
		slog.WarnContext(ctx, "no board for project", "project", projectKey, "error", err)
		return nil
	}

	var all []model.Sprint
	for _, state := range []model.SprintState{model.SprintActive, model.SprintFuture} {
		sprints, err := r.src.Sprints(ctx, boardID, state)
		if err != nil {
			slog.WarnContext(ctx, "failed to fetch sprints",
				"board", boardID, "state", state, "error", err)
			continue
		}
		all = append(all, sprints...)
	}
	return all
}
