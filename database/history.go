// Package database persists run history to a local SQLite database.
package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// RunRecord is one completed update run.
type RunRecord struct {
	ID        string
	StartedAt time.Time
	DryRun    bool
	Succeeded int
	Failed    int
	Errors    []string
}

// HistoryStore appends and reads run records.
type HistoryStore struct {
	db *sql.DB
}

// OpenHistory opens (and if needed initializes) the history database at path.
func OpenHistory(path string) (*HistoryStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db %s: %w", path, err)
	}
	const schema = `CREATE TABLE IF NOT EXISTS run_history (
		id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		dry_run INTEGER NOT NULL,
		succeeded INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		errors TEXT NOT NULL DEFAULT ''
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &HistoryStore{db: db}, nil
}

// Close releases the database handle.
func (h *HistoryStore) Close() error {
	return h.db.Close()
}

// RecordRun appends one run record.
func (h *HistoryStore) RecordRun(rec RunRecord) error {
	dryRun := 0
	if rec.DryRun {
		dryRun = 1
	}
	_, err := h.db.Exec(
		`INSERT INTO run_history (id, started_at, dry_run, succeeded, failed, errors) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.StartedAt.UTC().Format(time.RFC3339), dryRun, rec.Succeeded, rec.Failed,
		strings.Join(rec.Errors, "\n"),
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", rec.ID, err)
	}
	return nil
}

// RecentRuns returns up to limit records, newest first.
func (h *HistoryStore) RecentRuns(limit int) ([]RunRecord, error) {
	rows, err := h.db.Query(
		`SELECT id, started_at, dry_run, succeeded, failed, errors
		 FROM run_history ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query run history: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var startedAt, errText string
		var dryRun int
		if err := rows.Scan(&rec.ID, &startedAt, &dryRun, &rec.Succeeded, &rec.Failed, &errText); err != nil {
			return nil, fmt.Errorf("scan run history: %w", err)
		}
		rec.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		rec.DryRun = dryRun != 0
		if errText != "" {
			rec.Errors = strings.Split(errText, "\n")
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
