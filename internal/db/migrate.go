package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// migrations are idempotent DDL statements executed in order.
// scan_events is append-only: rows are inserted by toggles and removed only
// in IN/OUT pairs by session correction; nothing ever updates them.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS work_orders (
		id           TEXT PRIMARY KEY,
		order_no     TEXT NOT NULL UNIQUE,
		line_id      TEXT NOT NULL DEFAULT '',
		product_id   TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL DEFAULT 'active'
		             CHECK(status IN ('active','paused','completed','cancelled')),
		qty_planned  INTEGER NOT NULL DEFAULT 0,
		break_start  TEXT NOT NULL DEFAULT '',
		break_end    TEXT NOT NULL DEFAULT '',
		timezone     TEXT NOT NULL DEFAULT '',
		roster_count INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`ALTER TABLE work_orders ADD COLUMN timezone TEXT NOT NULL DEFAULT ''`,

	`CREATE TABLE IF NOT EXISTS scan_events (
		id            TEXT PRIMARY KEY,
		work_order_id TEXT NOT NULL REFERENCES work_orders(id) ON DELETE CASCADE,
		line_id       TEXT NOT NULL DEFAULT '',
		product_id    TEXT NOT NULL DEFAULT '',
		serial        TEXT NOT NULL,
		kind          TEXT NOT NULL CHECK(kind IN ('IN','OUT')),
		employee_id   TEXT,
		occurred_at   TEXT NOT NULL,
		created_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_scan_events_order_time
		ON scan_events(work_order_id, occurred_at)`,

	`CREATE INDEX IF NOT EXISTS idx_scan_events_order_serial
		ON scan_events(work_order_id, serial)`,

	`CREATE TABLE IF NOT EXISTS pause_windows (
		id            TEXT PRIMARY KEY,
		work_order_id TEXT NOT NULL REFERENCES work_orders(id) ON DELETE CASCADE,
		reason        TEXT NOT NULL DEFAULT '',
		start_at      TEXT NOT NULL,
		end_at        TEXT,
		created_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_pause_windows_order
		ON pause_windows(work_order_id)`,

	`CREATE TABLE IF NOT EXISTS employees (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		badge      TEXT NOT NULL DEFAULT '',
		active     INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	)`,
}
