package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/nhle/taskbot/internal/match"
	"github.com/nhle/taskbot/internal/translit"
)

// ComponentSource lists the component names of a tracker project.
type ComponentSource interface {
	ProjectComponents(ctx context.Context, projectKey string) ([]string, error)
}

// ComponentCache keeps one filtered component catalog per project key for
// the life of the process. Concurrent fills for the same key are harmless:
// both writers store the same catalog.
type ComponentCache struct {
	mu      sync.RWMutex
	entries map[string][]string
}

// NewComponentCache returns an empty cache.
func NewComponentCache() *ComponentCache {
	return &ComponentCache{entries: make(map[string][]string)}
}

// Get returns the cached catalog for projectKey.
func (c *ComponentCache) Get(projectKey string) ([]string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names, ok := c.entries[projectKey]
	return names, ok
}

// Put replaces the catalog for projectKey.
func (c *ComponentCache) Put(projectKey string, names []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[projectKey] = names
}

// Invalidate drops the catalog for projectKey so the next lookup refetches.
func (c *ComponentCache) Invalidate(projectKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, projectKey)
}

// InvalidateAll empties the cache.
func (c *ComponentCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]string)
}

// ComponentOptions configures a Components resolver.
type ComponentOptions struct {
	DefaultProject   string
	DefaultComponent string
	DeprecatedPrefix string

	// Fallback is served when the remote catalog cannot be fetched.
	Fallback []string

	// Translit defaults to translit.ToLatin.
	Translit translit.Func
}

// Components resolves component labels against a project's catalog.
type Components struct {
	src   ComponentSource
	cache *ComponentCache
	opts  ComponentOptions
}

// NewComponents creates a component resolver. A nil cache gets a fresh one.
func NewComponents(src ComponentSource, cache *ComponentCache, opts ComponentOptions) *Components {
	if cache == nil {
		cache = NewComponentCache()
	}
	if opts.Translit == nil {
		opts.Translit = translit.ToLatin
	}
	opts.Translit = translit.Safe(opts.Translit)
	return &Components{src: src, cache: cache, opts: opts}
}

// Cache exposes the resolver's catalog cache.
func (r *Components) Cache() *ComponentCache {
	return r.cache
}

// Catalog returns the resolvable component names for projectKey, in the
// order the tracker returned them.
func (r *Components) Catalog(ctx context.Context, projectKey string) []string {
	if projectKey == "" {
		projectKey = r.opts.DefaultProject
	}
	if names, ok := r.cache.Get(projectKey); ok {
		return names
	}

	remote, err := r.src.ProjectComponents(ctx, projectKey)
	if err != nil {
		slog.WarnContext(ctx, "component catalog unavailable, using built-in list",
			"project", projectKey, "error", err)
		return r.opts.Fallback
	}

	names := make([]string, 0, len(remote))
	for _, n := range remote {
		if r.isDeprecated(n) {
			continue
		}
		names = append(names, n)
	}
	if len(names) == 0 {
		slog.WarnContext(ctx, "project has no usable components, using built-in list",
			"project", projectKey)
		return r.opts.Fallback
	}

	r.cache.Put(projectKey, names)
	slog.InfoContext(ctx, "component catalog loaded", "project", projectKey, "count", len(names))
	return names
}

// Resolve maps label to a canonical component of projectKey (the default
// project when empty). Cyrillic labels are transliterated before matching.
func (r *Components) Resolve(ctx context.Context, label, projectKey string) Outcome[string] {
	if projectKey == "" {
		projectKey = r.opts.DefaultProject
	}
	catalog := r.Catalog(ctx, projectKey)

	latin := r.opts.Translit(label)
	if found, ok := match.Best(latin, catalog, match.DefaultCutoff); ok {
		slog.InfoContext(ctx, "component resolved", "label", label, "latin", latin, "component", found)
		return Resolved(found)
	}

	slog.InfoContext(ctx, "no component match", "label", label, "latin", latin, "project", projectKey)
	msg := fmt.Sprintf(
		"❌ No close match found for component '%s' in project %s\n\n📋 Available components:\n%s",
		label, projectKey, bulletList(sortedCopy(catalog)),
	)
	return NeedsInput(r.opts.DefaultComponent, msg)
}

func (r *Components) isDeprecated(name string) bool {
	if r.opts.DeprecatedPrefix == "" {
		return false
	}
	return strings.HasPrefix(strings.ToUpper(name), strings.ToUpper(r.opts.DeprecatedPrefix))
}
