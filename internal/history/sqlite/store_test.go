package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/artpar/ccol/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSQLiteStore runs the standard store test suite against SQLite.
func TestSQLiteStore(t *testing.T) {
	history.RunStoreTests(t, func() (history.Store, func()) {
		store, err := NewInMemory()
		if err != nil {
			t.Fatalf("Failed to create in-memory store: %v", err)
		}
		return store, func() {
			store.Close()
		}
	})
}

// Additional SQLite-specific tests

func TestSQLiteStore_Persistence(t *testing.T) {
	t.Run("data persists to disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ccol.db")

		store, err := New(path)
		require.NoError(t, err)

		id, err := store.Add(context.Background(), history.Entry{
			Timestamp:  time.Now(),
			Identifier: "/git/status",
			Label:      "status",
			Command:    "git status",
			Copied:     true,
		})
		require.NoError(t, err)
		require.NoError(t, store.Close())

		reopened, err := New(path)
		require.NoError(t, err)
		defer reopened.Close()

		retrieved, err := reopened.Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "git status", retrieved.Command)
	})

	t.Run("creates the parent directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "dir", "ccol.db")

		store, err := New(path)
		require.NoError(t, err)
		defer store.Close()

		_, err = store.Add(context.Background(), history.Entry{Identifier: "/q", Label: "q", Command: "exit"})
		require.NoError(t, err)
		assert.FileExists(t, path)
	})

	t.Run("rejects an unusable path", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

		_, err := New(filepath.Join(blocker, "ccol.db"))
		assert.Error(t, err)
	})
}

func TestSQLiteStore_Concurrent(t *testing.T) {
	t.Run("handles concurrent writes", func(t *testing.T) {
		store, err := NewInMemory()
		require.NoError(t, err)
		defer store.Close()

		ctx := context.Background()
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 10; j++ {
					_, err := store.Add(ctx, history.Entry{
						Identifier: "/q",
						Label:      "q",
						Command:    "exit",
					})
					assert.NoError(t, err)
				}
			}()
		}
		wg.Wait()

		count, err := store.Count(ctx, history.QueryOptions{})
		require.NoError(t, err)
		assert.Equal(t, int64(100), count)
	})
}

func TestSQLiteStore_Ordering(t *testing.T) {
	t.Run("sub-second timestamps keep order", func(t *testing.T) {
		store, err := NewInMemory()
		require.NoError(t, err)
		defer store.Close()

		base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
		for i, id := range []string{"/a", "/b", "/c"} {
			_, err := store.Add(context.Background(), history.Entry{
				Timestamp:  base.Add(time.Duration(i) * time.Millisecond),
				Identifier: id,
				Label:      id[1:],
				Command:    "echo " + id[1:],
			})
			require.NoError(t, err)
		}

		entries, err := store.List(context.Background(), history.QueryOptions{})
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, []string{"/c", "/b", "/a"}, []string{
			entries[0].Identifier, entries[1].Identifier, entries[2].Identifier,
		})
	})

	t.Run("equal timestamps fall back to insertion order", func(t *testing.T) {
		store, err := NewInMemory()
		require.NoError(t, err)
		defer store.Close()

		at := time.Now()
		for _, id := range []string{"/first", "/second"} {
			_, err := store.Add(context.Background(), history.Entry{
				Timestamp:  at,
				Identifier: id,
				Label:      id[1:],
				Command:    "true",
			})
			require.NoError(t, err)
		}

		entries, err := store.List(context.Background(), history.QueryOptions{Limit: 1})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "/second", entries[0].Identifier)
	})
}

func TestBuildListQuery(t *testing.T) {
	tests := []struct {
		name     string
		opts     history.QueryOptions
		count    bool
		contains []string
		args     int
	}{
		{
			name:     "defaults",
			opts:     history.QueryOptions{},
			contains: []string{"ORDER BY created_at DESC"},
		},
		{
			name:     "count ignores paging",
			opts:     history.QueryOptions{Limit: 5, Offset: 2},
			count:    true,
			contains: []string{"COUNT(*)"},
		},
		{
			name:     "search binds three patterns",
			opts:     history.QueryOptions{Search: "git"},
			contains: []string{"LIKE"},
			args:     3,
		},
		{
			name:     "offset without limit",
			opts:     history.QueryOptions{Offset: 4},
			contains: []string{"LIMIT -1", "OFFSET ?"},
			args:     1,
		},
		{
			name:     "ascending",
			opts:     history.QueryOptions{SortOrder: "ASC"},
			contains: []string{"ORDER BY created_at ASC"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildListQuery(tt.opts, tt.count)
			for _, want := range tt.contains {
				assert.Contains(t, query, want)
			}
			if tt.count {
				assert.NotContains(t, query, "LIMIT")
			}
			assert.Len(t, args, tt.args)
		})
	}
}
