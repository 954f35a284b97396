package history

import (
	"time"

	"github.com/artpar/ccol/internal/core"
)

// Entry is one committed selection.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	Identifier string `json:"identifier"`
	Label      string `json:"label"`
	Command    string `json:"command"`

	// Copied is false when the clipboard rejected the command.
	Copied     bool   `json:"copied"`
	ConfigFile string `json:"config_file,omitempty"`
}

// NewEntry builds an entry for a resolved selection.
func NewEntry(sel core.Selection, copied bool, configFile string) Entry {
	return Entry{
		Timestamp:  time.Now(),
		Identifier: sel.ID,
		Label:      sel.Label,
		Command:    sel.Command,
		Copied:     copied,
		ConfigFile: configFile,
	}
}

// QueryOptions specifies filters and pagination for history queries.
type QueryOptions struct {
	Identifier string    // Exact identifier match
	Search     string    // Substring match on identifier, label or command
	After      time.Time // Only entries after this time
	CopiedOnly bool      // Only entries that reached the clipboard

	Limit  int // Maximum number of results (0 = no limit)
	Offset int // Number of results to skip

	SortOrder string // "asc" or "desc" (default: desc)
}

// PruneOptions specifies criteria for pruning old history entries.
type PruneOptions struct {
	OlderThan time.Duration // Delete entries older than this duration
	KeepLast  int           // Keep only the last N entries
}

// PruneResult contains the result of a prune operation.
type PruneResult struct {
	DeletedCount int64 `json:"deleted_count"`
}
