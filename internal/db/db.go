package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// dsnPragmas is applied per connection via the DSN. Pragmas set with a bare
// Exec on the pool only reach the one connection that ran them; any other
// pooled connection would run with busy_timeout=0 and foreign keys off.
// WAL lets stations read while one writes; busy_timeout queues writers for
// up to 5s before surfacing SQLITE_BUSY.
const dsnPragmas = "_pragma=journal_mode(WAL)" +
	"&_pragma=foreign_keys(1)" +
	"&_pragma=busy_timeout(5000)"

// OpenDB opens a SQLite database at the given path.
// If path is ":memory:", uses an in-memory database.
// Runs migrations automatically.
func OpenDB(path string) (*sql.DB, error) {
	dsn := "file:" + path + "?" + dsnPragmas
	if path == ":memory:" {
		dsn = "file::memory:?" + dsnPragmas
	} else {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if path == ":memory:" {
		// Each in-memory connection is its own database; cap the pool at
		// one so the whole process sees the same data.
		db.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}
