package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const dbFileName = "history.db"

// DatabasePath returns the history database path inside the
// configuration directory.
func DatabasePath(dir string) string {
	return filepath.Join(dir, dbFileName)
}

// Entry is one recorded execution of a stored command.
type Entry struct {
	ID       string
	Command  string
	Keywords string
	RanAt    time.Time
}

// Open opens the history database, creating it and applying pending
// migrations as needed.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	d, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := Migrate(d); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return d, nil
}

// Record inserts one execution row. keywords holds the search terms
// that led to the command, space-separated.
func Record(d *sql.DB, command, keywords string) error {
	_, err := d.Exec(
		`INSERT INTO executions (id, command, keywords, ran_at) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), command, keywords, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to record execution: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func Recent(d *sql.DB, limit int) ([]Entry, error) {
	rows, err := d.Query(
		`SELECT id, command, keywords, ran_at FROM executions ORDER BY ran_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query executions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ranAt string
		if err := rows.Scan(&e.ID, &e.Command, &e.Keywords, &ranAt); err != nil {
			return nil, fmt.Errorf("failed to scan execution row: %w", err)
		}
		t, err := time.Parse(time.RFC3339, ranAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse ran_at %q: %w", ranAt, err)
		}
		e.RanAt = t
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
