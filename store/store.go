// Package store persists serialized spectrum lookups in a local SQLite
// archive, keyed by generated ids. The payload format is opaque here; the
// lookup package owns the serialization contract.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when no archived lookup matches the given id.
var ErrNotFound = errors.New("store: no archived lookup with that id")

// Record describes one archived lookup.
type Record struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Archive is a SQLite-backed store of serialized lookups.
type Archive struct {
	db   *sql.DB
	path string
	log  zerolog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS lookups (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	payload    BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_lookups_name ON lookups(name);
`

// Open creates or opens an archive at the given path.
func Open(path string, log zerolog.Logger) (*Archive, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve archive path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	db, err := sql.Open("sqlite", absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize archive schema: %w", err)
	}

	return &Archive{
		db:   db,
		path: absPath,
		log:  log.With().Str("component", "lookup_archive").Logger(),
	}, nil
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Save stores a serialized lookup under a fresh id and returns it.
func (a *Archive) Save(name string, payload []byte) (string, error) {
	if len(payload) == 0 {
		return "", fmt.Errorf("refusing to archive an empty payload")
	}
	id := uuid.NewString()
	_, err := a.db.Exec(
		`INSERT INTO lookups (id, name, created_at, payload) VALUES (?, ?, ?, ?)`,
		id, name, time.Now().Unix(), payload,
	)
	if err != nil {
		return "", fmt.Errorf("failed to archive lookup %q: %w", name, err)
	}

	a.log.Debug().
		Str("id", id).
		Str("name", name).
		Int("bytes", len(payload)).
		Msg("Archived lookup")
	return id, nil
}

// Load returns the serialized payload stored under id.
func (a *Archive) Load(id string) ([]byte, error) {
	var payload []byte
	err := a.db.QueryRow(`SELECT payload FROM lookups WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load lookup %s: %w", id, err)
	}
	return payload, nil
}

// List returns all archived lookups, newest first.
func (a *Archive) List() ([]Record, error) {
	rows, err := a.db.Query(`SELECT id, name, created_at FROM lookups ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list lookups: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var created int64
		if err := rows.Scan(&r.ID, &r.Name, &created); err != nil {
			return nil, fmt.Errorf("failed to scan lookup record: %w", err)
		}
		r.CreatedAt = time.Unix(created, 0)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lookup records: %w", err)
	}
	return records, nil
}

// Delete removes an archived lookup.
func (a *Archive) Delete(id string) error {
	res, err := a.db.Exec(`DELETE FROM lookups WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lookup %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
