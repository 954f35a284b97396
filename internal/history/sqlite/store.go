package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/artpar/ccol/internal/history"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store implements history.Store using SQLite.
type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	closed bool
}

// New creates a new SQLite-based history store, creating the parent
// directory when missing.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return newStore(db)
}

// NewInMemory creates a new in-memory SQLite store (useful for testing).
func NewInMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	// Every pooled connection would otherwise get its own empty database.
	db.SetMaxOpenConns(1)
	return newStore(db)
}

func newStore(db *sql.DB) (*Store, error) {
	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return store, nil
}

// initialize creates the necessary tables and indexes.
func (s *Store) initialize() error {
	schema := `
		CREATE TABLE IF NOT EXISTS selections (
			id TEXT PRIMARY KEY,
			created_at INTEGER NOT NULL,
			identifier TEXT NOT NULL,
			label TEXT NOT NULL,
			command TEXT NOT NULL,
			copied INTEGER NOT NULL DEFAULT 0,
			config_file TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_selections_created ON selections(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_selections_identifier ON selections(identifier);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Add adds a new history entry and returns its ID.
func (s *Store) Add(ctx context.Context, entry history.Entry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", history.ErrStoreClosed
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO selections (id, created_at, identifier, label, command, copied, config_file)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		entry.ID, entry.Timestamp.UnixNano(), entry.Identifier, entry.Label,
		entry.Command, entry.Copied, entry.ConfigFile,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert history entry: %w", err)
	}

	return entry.ID, nil
}

// Get retrieves a single history entry by ID.
func (s *Store) Get(ctx context.Context, id string) (history.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return history.Entry{}, history.ErrStoreClosed
	}

	if id == "" {
		return history.Entry{}, history.ErrInvalidID
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, identifier, label, command, copied, config_file
		FROM selections WHERE id = ?
	`, id)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return history.Entry{}, history.ErrNotFound
	}
	if err != nil {
		return history.Entry{}, fmt.Errorf("failed to get history entry: %w", err)
	}

	return entry, nil
}

// List retrieves history entries matching the query options.
func (s *Store) List(ctx context.Context, opts history.QueryOptions) ([]history.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, history.ErrStoreClosed
	}

	query, args := buildListQuery(opts, false)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list history entries: %w", err)
	}
	defer rows.Close()

	var entries []history.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Count returns the number of entries matching the query options.
func (s *Store) Count(ctx context.Context, opts history.QueryOptions) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, history.ErrStoreClosed
	}

	query, args := buildListQuery(opts, true)
	var count int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count history entries: %w", err)
	}
	return count, nil
}

// Delete removes a history entry by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return history.ErrStoreClosed
	}

	if id == "" {
		return history.ErrInvalidID
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM selections WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return history.ErrNotFound
	}

	return nil
}

// Prune removes old entries based on the prune options.
func (s *Store) Prune(ctx context.Context, opts history.PruneOptions) (history.PruneResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return history.PruneResult{}, history.ErrStoreClosed
	}

	var result history.PruneResult

	if opts.OlderThan > 0 {
		cutoff := time.Now().Add(-opts.OlderThan).UnixNano()
		res, err := s.db.ExecContext(ctx, "DELETE FROM selections WHERE created_at < ?", cutoff)
		if err != nil {
			return result, fmt.Errorf("failed to prune by age: %w", err)
		}
		n, _ := res.RowsAffected()
		result.DeletedCount += n
	}

	if opts.KeepLast > 0 {
		res, err := s.db.ExecContext(ctx, `
			DELETE FROM selections WHERE id NOT IN (
				SELECT id FROM selections ORDER BY created_at DESC, rowid DESC LIMIT ?
			)
		`, opts.KeepLast)
		if err != nil {
			return result, fmt.Errorf("failed to prune by count: %w", err)
		}
		n, _ := res.RowsAffected()
		result.DeletedCount += n
	}

	return result, nil
}

// Clear removes all history entries.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return history.ErrStoreClosed
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM selections"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	return nil
}

// Close closes the store and releases resources.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}

func buildListQuery(opts history.QueryOptions, countOnly bool) (string, []interface{}) {
	var query string
	if countOnly {
		query = "SELECT COUNT(*) FROM selections WHERE 1=1"
	} else {
		query = `
			SELECT id, created_at, identifier, label, command, copied, config_file
			FROM selections WHERE 1=1
		`
	}

	var args []interface{}

	if opts.Identifier != "" {
		query += " AND identifier = ?"
		args = append(args, opts.Identifier)
	}

	if opts.Search != "" {
		query += " AND (identifier LIKE ? OR label LIKE ? OR command LIKE ?)"
		pattern := "%" + opts.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}

	if !opts.After.IsZero() {
		query += " AND created_at > ?"
		args = append(args, opts.After.UnixNano())
	}

	if opts.CopiedOnly {
		query += " AND copied = 1"
	}

	if !countOnly {
		order := "DESC"
		if strings.EqualFold(opts.SortOrder, "asc") {
			order = "ASC"
		}
		query += fmt.Sprintf(" ORDER BY created_at %s, rowid %s", order, order)

		if opts.Limit > 0 {
			query += " LIMIT ?"
			args = append(args, opts.Limit)
		} else if opts.Offset > 0 {
			query += " LIMIT -1"
		}

		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	}

	return query, args
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (history.Entry, error) {
	var (
		entry      history.Entry
		createdAt  int64
		configFile sql.NullString
	)

	err := row.Scan(
		&entry.ID, &createdAt, &entry.Identifier, &entry.Label,
		&entry.Command, &entry.Copied, &configFile,
	)
	if err != nil {
		return entry, err
	}

	entry.Timestamp = time.Unix(0, createdAt)
	entry.ConfigFile = configFile.String
	return entry, nil
}
