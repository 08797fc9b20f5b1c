/*
Package sqlite provides the SQLite-backed persistence collaborator.

PURPOSE:
  Implements roster.Persister over a single key-value blob table. The
  console's system of record is the in-memory store; this package only
  mirrors the two collections as independently keyed JSON arrays
  ("collaborators" and "records") and hands them back on startup.

STORAGE LAYOUT:
  blobs(key TEXT PRIMARY KEY, value TEXT, updated_at TEXT)
  Every save re-serializes the whole collection under its key; there is no
  incremental or delta persistence.

ERROR CONTRACT:
  LoadCollaborators/LoadRecords return ErrBlobNotFound when the key is
  absent and a decode error when the stored JSON is unusable. The roster
  store treats either as "fall back to the seed dataset".

WAL MODE:
  The database is opened with WAL journaling. Use ":memory:" for tests.

SEE ALSO:
  - roster/store.go: the subscriber side of this boundary
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/cortsfranco/CicedoHR/roster"
)

const (
	keyCollaborators = "collaborators"
	keyRecords       = "records"
)

// ErrBlobNotFound is returned when a collection has never been persisted.
var ErrBlobNotFound = errors.New("blob not found")

// Store implements roster.Persister using SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// New opens (and if needed creates) the blob database at the given path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS blobs (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ROSTER.PERSISTER IMPLEMENTATION
// =============================================================================

func (s *Store) LoadCollaborators(ctx context.Context) ([]roster.Collaborator, error) {
	var collaborators []roster.Collaborator
	if err := s.load(ctx, keyCollaborators, &collaborators); err != nil {
		return nil, err
	}
	return collaborators, nil
}

func (s *Store) LoadRecords(ctx context.Context) ([]roster.HRRecord, error) {
	var records []roster.HRRecord
	if err := s.load(ctx, keyRecords, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Store) SaveCollaborators(ctx context.Context, collaborators []roster.Collaborator) error {
	return s.save(ctx, keyCollaborators, collaborators)
}

func (s *Store) SaveRecords(ctx context.Context, records []roster.HRRecord) error {
	return s.save(ctx, keyRecords, records)
}

// =============================================================================
// BLOB ACCESS
// =============================================================================

func (s *Store) load(ctx context.Context, key string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM blobs WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %s", ErrBlobNotFound, key)
	}
	if err != nil {
		return fmt.Errorf("failed to read blob %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(value), out); err != nil {
		return fmt.Errorf("blob %s holds unparsable JSON: %w", key, err)
	}
	return nil
}

func (s *Store) save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize blob %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write blob %s: %w", key, err)
	}
	return nil
}
