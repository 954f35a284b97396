package history

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStoreTests runs the standard store test suite against any Store implementation.
// Use this to verify that a Store implementation correctly implements the interface.
func RunStoreTests(t *testing.T, newStore func() (Store, func())) {
	t.Run("Add", func(t *testing.T) {
		runAddTests(t, newStore)
	})
	t.Run("Get", func(t *testing.T) {
		runGetTests(t, newStore)
	})
	t.Run("List", func(t *testing.T) {
		runListTests(t, newStore)
	})
	t.Run("Count", func(t *testing.T) {
		runCountTests(t, newStore)
	})
	t.Run("Delete", func(t *testing.T) {
		runDeleteTests(t, newStore)
	})
	t.Run("Prune", func(t *testing.T) {
		runPruneTests(t, newStore)
	})
	t.Run("Clear", func(t *testing.T) {
		runClearTests(t, newStore)
	})
	t.Run("Close", func(t *testing.T) {
		runCloseTests(t, newStore)
	})
}

func selection(identifier, command string, at time.Time) Entry {
	label := identifier
	if i := strings.LastIndex(identifier, "/"); i >= 0 {
		label = identifier[i+1:]
	}
	return Entry{
		Timestamp:  at,
		Identifier: identifier,
		Label:      label,
		Command:    command,
		Copied:     true,
	}
}

func runAddTests(t *testing.T, newStore func() (Store, func())) {
	t.Run("adds entry and returns ID", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		id, err := store.Add(context.Background(), selection("/q", "exit", time.Now()))

		require.NoError(t, err)
		assert.NotEmpty(t, id)
	})

	t.Run("adds entry with all fields", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		entry := Entry{
			Timestamp:  time.Now(),
			Identifier: "/git/branch/delete",
			Label:      "delete",
			Command:    "git branch -D",
			Copied:     false,
			ConfigFile: "/home/user/.config/ccol/ccol.json",
		}

		id, err := store.Add(context.Background(), entry)
		require.NoError(t, err)

		retrieved, err := store.Get(context.Background(), id)
		require.NoError(t, err)

		assert.Equal(t, entry.Identifier, retrieved.Identifier)
		assert.Equal(t, entry.Label, retrieved.Label)
		assert.Equal(t, entry.Command, retrieved.Command)
		assert.False(t, retrieved.Copied)
		assert.Equal(t, entry.ConfigFile, retrieved.ConfigFile)
		assert.True(t, entry.Timestamp.Equal(retrieved.Timestamp))
	})

	t.Run("keeps a caller supplied ID", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		entry := selection("/q", "exit", time.Now())
		entry.ID = "fixed-id"

		id, err := store.Add(context.Background(), entry)
		require.NoError(t, err)
		assert.Equal(t, "fixed-id", id)
	})

	t.Run("fills a missing timestamp", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		id, err := store.Add(context.Background(), selection("/q", "exit", time.Time{}))
		require.NoError(t, err)

		retrieved, err := store.Get(context.Background(), id)
		require.NoError(t, err)
		assert.False(t, retrieved.Timestamp.IsZero())
	})

	t.Run("generates unique IDs", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		ids := make(map[string]bool)
		for i := 0; i < 10; i++ {
			id, err := store.Add(context.Background(), selection("/q", "exit", time.Now()))
			require.NoError(t, err)
			assert.False(t, ids[id], "Duplicate ID generated")
			ids[id] = true
		}
	})
}

func runGetTests(t *testing.T, newStore func() (Store, func())) {
	t.Run("retrieves existing entry", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		entry := selection("/git/status", "git status", time.Now())
		id, err := store.Add(context.Background(), entry)
		require.NoError(t, err)

		retrieved, err := store.Get(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, id, retrieved.ID)
		assert.Equal(t, "/git/status", retrieved.Identifier)
		assert.Equal(t, "status", retrieved.Label)
		assert.Equal(t, "git status", retrieved.Command)
		assert.True(t, retrieved.Copied)
	})

	t.Run("returns error for non-existent entry", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		_, err := store.Get(context.Background(), "non-existent-id")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("returns error for empty ID", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		_, err := store.Get(context.Background(), "")

		assert.ErrorIs(t, err, ErrInvalidID)
	})
}

func runListTests(t *testing.T, newStore func() (Store, func())) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	seed := func(t *testing.T, store Store) {
		t.Helper()
		entries := []Entry{
			selection("/git/status", "git status", base),
			selection("/git/branch/delete", "git branch -D", base.Add(time.Minute)),
			selection("/q", "exit", base.Add(2*time.Minute)),
			selection("/git/status", "git status", base.Add(3*time.Minute)),
		}
		entries[2].Copied = false
		for _, e := range entries {
			_, err := store.Add(context.Background(), e)
			require.NoError(t, err)
		}
	}

	t.Run("lists newest first", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()
		seed(t, store)

		entries, err := store.List(context.Background(), QueryOptions{})

		require.NoError(t, err)
		require.Len(t, entries, 4)
		assert.Equal(t, "/git/status", entries[0].Identifier)
		assert.Equal(t, "/q", entries[1].Identifier)
		assert.Equal(t, "/git/status", entries[3].Identifier)
	})

	t.Run("sorts ascending on request", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()
		seed(t, store)

		entries, err := store.List(context.Background(), QueryOptions{SortOrder: "asc"})

		require.NoError(t, err)
		require.Len(t, entries, 4)
		assert.Equal(t, "/git/status", entries[0].Identifier)
		assert.Equal(t, "/git/branch/delete", entries[1].Identifier)
	})

	t.Run("filters by identifier", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()
		seed(t, store)

		entries, err := store.List(context.Background(), QueryOptions{Identifier: "/git/status"})

		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("searches identifier, label and command", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()
		seed(t, store)

		entries, err := store.List(context.Background(), QueryOptions{Search: "branch"})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "git branch -D", entries[0].Command)

		entries, err = store.List(context.Background(), QueryOptions{Search: "exit"})
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("filters by time", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()
		seed(t, store)

		entries, err := store.List(context.Background(), QueryOptions{After: base.Add(90 * time.Second)})

		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("filters copied entries", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()
		seed(t, store)

		entries, err := store.List(context.Background(), QueryOptions{CopiedOnly: true})

		require.NoError(t, err)
		assert.Len(t, entries, 3)
		for _, e := range entries {
			assert.True(t, e.Copied)
		}
	})

	t.Run("paginates", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()
		seed(t, store)

		page, err := store.List(context.Background(), QueryOptions{Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "/q", page[0].Identifier)
		assert.Equal(t, "/git/branch/delete", page[1].Identifier)

		rest, err := store.List(context.Background(), QueryOptions{Offset: 3})
		require.NoError(t, err)
		assert.Len(t, rest, 1)
	})

	t.Run("empty store lists nothing", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		entries, err := store.List(context.Background(), QueryOptions{})

		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func runCountTests(t *testing.T, newStore func() (Store, func())) {
	t.Run("counts matching entries", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		for _, id := range []string{"/q", "/q", "/git/status"} {
			_, err := store.Add(context.Background(), selection(id, "cmd", time.Now()))
			require.NoError(t, err)
		}

		total, err := store.Count(context.Background(), QueryOptions{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)

		quits, err := store.Count(context.Background(), QueryOptions{Identifier: "/q", Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(2), quits, "limit does not apply to counts")
	})
}

func runDeleteTests(t *testing.T, newStore func() (Store, func())) {
	t.Run("deletes existing entry", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		id, err := store.Add(context.Background(), selection("/q", "exit", time.Now()))
		require.NoError(t, err)

		err = store.Delete(context.Background(), id)
		require.NoError(t, err)

		_, err = store.Get(context.Background(), id)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("returns error for non-existent entry", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		err := store.Delete(context.Background(), "non-existent-id")

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("returns error for empty ID", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		err := store.Delete(context.Background(), "")

		assert.ErrorIs(t, err, ErrInvalidID)
	})
}

func runPruneTests(t *testing.T, newStore func() (Store, func())) {
	t.Run("prunes entries older than duration", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		now := time.Now()
		_, err := store.Add(context.Background(), selection("/old", "old", now.Add(-48*time.Hour)))
		require.NoError(t, err)
		_, err = store.Add(context.Background(), selection("/new", "new", now))
		require.NoError(t, err)

		result, err := store.Prune(context.Background(), PruneOptions{OlderThan: 24 * time.Hour})
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.DeletedCount)

		entries, err := store.List(context.Background(), QueryOptions{})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "/new", entries[0].Identifier)
	})

	t.Run("keeps only the last N entries", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		base := time.Now().Add(-time.Hour)
		for i := 0; i < 5; i++ {
			_, err := store.Add(context.Background(), selection("/q", "exit", base.Add(time.Duration(i)*time.Minute)))
			require.NoError(t, err)
		}

		result, err := store.Prune(context.Background(), PruneOptions{KeepLast: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), result.DeletedCount)

		count, err := store.Count(context.Background(), QueryOptions{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("no options deletes nothing", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		_, err := store.Add(context.Background(), selection("/q", "exit", time.Now()))
		require.NoError(t, err)

		result, err := store.Prune(context.Background(), PruneOptions{})
		require.NoError(t, err)
		assert.Zero(t, result.DeletedCount)
	})
}

func runClearTests(t *testing.T, newStore func() (Store, func())) {
	t.Run("removes all entries", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		for i := 0; i < 3; i++ {
			_, err := store.Add(context.Background(), selection("/q", "exit", time.Now()))
			require.NoError(t, err)
		}

		require.NoError(t, store.Clear(context.Background()))

		count, err := store.Count(context.Background(), QueryOptions{})
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func runCloseTests(t *testing.T, newStore func() (Store, func())) {
	t.Run("operations fail after close", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		require.NoError(t, store.Close())
		assert.NoError(t, store.Close(), "closing twice is harmless")

		_, err := store.Add(context.Background(), selection("/q", "exit", time.Now()))
		assert.ErrorIs(t, err, ErrStoreClosed)

		_, err = store.List(context.Background(), QueryOptions{})
		assert.ErrorIs(t, err, ErrStoreClosed)

		err = store.Clear(context.Background())
		assert.ErrorIs(t, err, ErrStoreClosed)
	})
}
