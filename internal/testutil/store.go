// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nhle/taskbot/internal/store"
)

// NewTestStore opens a migrated in-memory store that is closed with the test.
func NewTestStore(t *testing.T) *store.SQLStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err, "opening test store")
	t.Cleanup(func() {
		require.NoError(t, s.Close(), "closing test store")
	})
	return s
}

// SeedLinks opens a test store and links messageRef to every key.
func SeedLinks(t *testing.T, messageRef string, keys ...string) *store.SQLStore {
	t.Helper()

	s := NewTestStore(t)
	for _, key := range keys {
		_, err := s.InsertLink(context.Background(), messageRef, key)
		require.NoError(t, err, "seeding link %s", key)
	}
	return s
}
