// Package sqlite is the default store, backed by database/sql over the pure
// Go driver. Timestamps live in TEXT columns in the legacy layouts handled
// by platform/timefmt.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite" // alternative: github.com/mattn/go-sqlite3
)

var ErrNotFound = errors.New("not found")

const schema = `
CREATE TABLE IF NOT EXISTS vehicles (
	plate TEXT PRIMARY KEY,
	model TEXT NOT NULL DEFAULT '',
	year INTEGER NOT NULL DEFAULT 0,
	color TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	registered_at TEXT NOT NULL,
	last_maintenance_at TEXT,
	last_maintenance_type TEXT
);

CREATE TABLE IF NOT EXISTS maintenance_events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	plate TEXT NOT NULL REFERENCES vehicles (plate),
	occurred_at TEXT NOT NULL,
	type TEXT NOT NULL,
	technician TEXT NOT NULL DEFAULT 'system',
	notes TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_events_plate ON maintenance_events (plate);
`

// Open opens (creating if needed) the database at path and applies the
// schema. SQLite serializes writers, which is all the concurrency control
// this store needs.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
