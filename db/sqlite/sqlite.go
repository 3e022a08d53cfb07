// db/sqlite/sqlite.go
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Connect opens a SQLite database with sensible defaults for services:
// WAL journal mode, foreign keys on, a 5 second busy timeout, and a single
// connection to avoid lock contention. It performs a Ping before returning.
//
// The caller is responsible for calling db.Close() when done.
//
// Path can be:
//   - A file path: "./data.db", "/var/lib/lumen/state.db"
//   - ":memory:" for an in-memory database (data lost on close)
//   - "file::memory:?cache=shared" for a shared in-memory database
func Connect(path string, timeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	// SQLite performs best with limited connections due to file locking.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set journal_mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA synchronous=NORMAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set synchronous: %w", err)
	}

	return db, nil
}

// InMemory opens a shared in-memory SQLite database. Data is lost when all
// connections close.
//
// The caller is responsible for calling db.Close() when done.
func InMemory(timeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file::memory:?cache=shared")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// HealthCheck returns a health check function compatible with the health package.
func HealthCheck(db *sql.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return db.PingContext(ctx)
	}
}
