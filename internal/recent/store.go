// Package recent persists each control's most recently selected option ids
// across sessions. Histories are keyed by the control's logical name: two
// controls sharing a name share (and clobber) one history. That keying is the
// documented contract, not an accident - callers that want isolation use
// distinct names.
package recent

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver, WAL-friendly

	apperrors "hybridsel/internal/errors"
)

// MaxEntries bounds the history per control name, newest first.
const MaxEntries = 5

// Store is a SQLite-backed recent-selection history.
type Store struct {
	db *sql.DB
}

// Open creates (if needed) and opens the history database at path. The parent
// directory is created on demand.
func Open(path string) (*Store, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, apperrors.New(apperrors.CodeConfigurationError, "recent store requires a database path", nil)
	}
	//nolint:gosec // G301: User data directory needs standard permissions
	if err := os.MkdirAll(filepath.Dir(trimmed), 0755); err != nil {
		return nil, apperrors.New(apperrors.CodeStorageUnavailable, "create recent store directory", err)
	}

	db, err := sql.Open("sqlite", dsn(trimmed))
	if err != nil {
		return nil, apperrors.New(apperrors.CodeStorageUnavailable, "open recent store", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	const schema = `
CREATE TABLE IF NOT EXISTS recent_selections (
    name       TEXT PRIMARY KEY,
    ids        TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, apperrors.New(apperrors.CodeStorageUnavailable, "initialize recent store schema", err)
	}
	return &Store{db: db}, nil
}

func dsn(path string) string {
	return fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=3000", filepath.ToSlash(path))
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load returns the stored ids for a control name, newest first. A missing row
// is an empty history, not an error.
func (s *Store) Load(name string) ([]string, error) {
	if s == nil || s.db == nil || name == "" {
		return nil, nil
	}
	var raw string
	err := s.db.QueryRow(`SELECT ids FROM recent_selections WHERE name = ?`, name).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.New(apperrors.CodeStorageUnavailable, "load recent selections", err)
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		// A corrupt row degrades to an empty history.
		return nil, nil
	}
	return ids, nil
}

// Record pushes id to the front of the history for name, dropping duplicates
// and trimming to MaxEntries. It returns the updated history.
func (s *Store) Record(name, id string) ([]string, error) {
	if s == nil || s.db == nil || name == "" || id == "" {
		return nil, nil
	}
	current, err := s.Load(name)
	if err != nil {
		return nil, err
	}

	updated := Push(current, id)
	raw, err := json.Marshal(updated)
	if err != nil {
		return current, apperrors.New(apperrors.CodeStorageUnavailable, "encode recent selections", err)
	}
	_, err = s.db.Exec(`
INSERT INTO recent_selections (name, ids, updated_at) VALUES (?, ?, ?)
ON CONFLICT(name) DO UPDATE SET ids = excluded.ids, updated_at = excluded.updated_at`,
		name, string(raw), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return current, apperrors.New(apperrors.CodeStorageUnavailable, "save recent selections", err)
	}
	return updated, nil
}

// Clear removes the history for a control name.
func (s *Store) Clear(name string) error {
	if s == nil || s.db == nil || name == "" {
		return nil
	}
	_, err := s.db.Exec(`DELETE FROM recent_selections WHERE name = ?`, name)
	if err != nil {
		return apperrors.New(apperrors.CodeStorageUnavailable, "clear recent selections", err)
	}
	return nil
}

// Push returns ids with id moved (or inserted) at the front, deduplicated and
// capped at MaxEntries. Pure helper shared with in-memory fallbacks.
func Push(ids []string, id string) []string {
	updated := make([]string, 0, MaxEntries)
	updated = append(updated, id)
	for _, existing := range ids {
		if existing == id {
			continue
		}
		updated = append(updated, existing)
		if len(updated) == MaxEntries {
			break
		}
	}
	return updated
}
