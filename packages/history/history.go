// Package history persists past randspec runs so a failing shuffle can be
// reproduced later by seed.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

const schema = `CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	seed        INTEGER NOT NULL,
	total       INTEGER NOT NULL,
	failed      INTEGER NOT NULL,
	started_at  TIMESTAMP NOT NULL,
	duration_ms INTEGER NOT NULL
)`

// Entry is one recorded run.
type Entry struct {
	ID        string
	Seed      int64
	Total     int
	Failed    int
	StartedAt time.Time
	Duration  time.Duration
}

// Store is a sqlite-backed run log.
type Store struct {
	db *sql.DB
}

// Open opens (and initializes when needed) the store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to history database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores one run. A missing ID is filled with a fresh uuid.
func (s *Store) Record(e *Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (id, seed, total, failed, started_at, duration_ms) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Seed, e.Total, e.Failed, e.StartedAt.UTC(), e.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// Recent returns up to n runs, newest first.
func (s *Store) Recent(n int) ([]*Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, seed, total, failed, started_at, duration_ms FROM runs ORDER BY started_at DESC, id LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		var durationMs int64
		if err := rows.Scan(&e.ID, &e.Seed, &e.Total, &e.Failed, &e.StartedAt, &durationMs); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.Duration = time.Duration(durationMs) * time.Millisecond
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// LastFailedSeed returns the seed of the most recent failed run, when one
// exists.
func (s *Store) LastFailedSeed() (int64, bool, error) {
	var seed int64
	err := s.db.QueryRow(
		`SELECT seed FROM runs WHERE failed > 0 ORDER BY started_at DESC LIMIT 1`).Scan(&seed)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("querying last failed seed: %w", err)
	}
	return seed, true, nil
}
