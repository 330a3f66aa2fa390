package resolve

import (
	"context"
	"errors"
	"sync"

	"github.com/nhle/taskbot/internal/model"
)

// fakeComponents is a test double for ComponentSource.
type fakeComponents struct {
	mu       sync.Mutex
	projects map[string][]string
	err      error
	calls    int
}

func (f *fakeComponents) ProjectComponents(_ context.Context, projectKey string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	names, ok := f.projects[projectKey]
	if !ok {
		return nil, errors.New("project not found")
	}
	return names, nil
}

// fakeSprints is a test double for SprintSource.
type fakeSprints struct {
	sprints  []model.Sprint
	boardErr error
}

func (f *fakeSprints) BoardID(_ context.Context, _ string) (int, error) {
	if f.boardErr != nil {
		return 0, f.boardErr
	}
	return 7, nil
}

func (f *fakeSprints) Sprints(_ context.Context, _ int, state model.SprintState) ([]model.Sprint, error) {
	var out []model.Sprint
	for _, s := range f.sprints {
		if s.State == state {
			out = append(out, s)
		}
	}
	return out, nil
}
