// Package store persists which Slack event deliveries were already handled.
// Slack re-delivers events it believes undelivered, so without this guard a
// slow booking can be performed twice for the same message.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS processed_events (
	channel      TEXT NOT NULL,
	ts           TEXT NOT NULL,
	processed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (channel, ts)
);`

// Dedup is a SQLite-backed record of processed (channel, ts) pairs.
type Dedup struct {
	db *sql.DB
}

func Open(dbPath string) (*Dedup, error) {
	// WAL mode for better concurrency, busy timeout to wait instead of failing
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Dedup{db: db}, nil
}

// MarkProcessed records the delivery and reports whether it is the first
// time this (channel, ts) pair was seen.
func (d *Dedup) MarkProcessed(channel, ts string) (bool, error) {
	res, err := d.db.Exec(
		`INSERT OR IGNORE INTO processed_events (channel, ts) VALUES (?, ?)`,
		channel, ts,
	)
	if err != nil {
		return false, fmt.Errorf("failed to record event: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

func (d *Dedup) Close() error {
	return d.db.Close()
}
