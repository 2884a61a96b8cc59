// Package history persists a summary row for every completed batch
// operation in a local sqlite database, so past fleet runs can be inspected
// later from the same machine.
package history

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one recorded batch operation.
type Run struct {
	ID        int64
	Action    string
	Projects  int
	Failures  int
	Duration  time.Duration
	StartedAt time.Time
}

// Store is the sqlite-backed run log. It implements fleet.Recorder.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	action      TEXT NOT NULL,
	projects    INTEGER NOT NULL,
	failures    INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	started_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`

// Open opens or creates the database at path and ensures the schema.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	// modernc sqlite misbehaves with concurrent writers on one handle.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// RecordRun inserts one run row. Persistence failures are logged and
// swallowed; history must never fail the operation it describes.
func (s *Store) RecordRun(action string, projectCount, failureCount int, duration time.Duration) {
	started := time.Now().Add(-duration).UTC()
	_, err := s.db.Exec(
		`INSERT INTO runs (action, projects, failures, duration_ms, started_at)
		 VALUES (?, ?, ?, ?, ?)`,
		action, projectCount, failureCount, duration.Milliseconds(),
		started.Format(time.RFC3339Nano),
	)
	if err != nil && s.logger != nil {
		s.logger.Debug("history insert failed", "action", action, "error", err)
	}
}

// Recent returns the newest runs first, at most limit rows.
func (s *Store) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, action, projects, failures, duration_ms, started_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r          Run
			durationMS int64
			startedAt  string
		)
		if err := rows.Scan(&r.ID, &r.Action, &r.Projects, &r.Failures, &durationMS, &startedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		if ts, perr := time.Parse(time.RFC3339Nano, startedAt); perr == nil {
			r.StartedAt = ts
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
