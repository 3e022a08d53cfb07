// theme/store_sql.go
package theme

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"
)

// SQL dialects supported by SQLStore. The dialect only controls
// placeholder syntax; the schema and queries are otherwise portable.
const (
	DialectSQLite   = "sqlite"
	DialectMySQL    = "mysql"
	DialectPostgres = "postgres"
)

// SQLStore persists the selection in a small name/value table through
// database/sql, so the sqlite, mysql and postgres drivers all work.
type SQLStore struct {
	db      *sql.DB
	dialect string
	timeout time.Duration
}

// NewSQLStore creates a store over db. The dialect must be one of
// DialectSQLite, DialectMySQL or DialectPostgres.
func NewSQLStore(db *sql.DB, dialect string) *SQLStore {
	return &SQLStore{
		db:      db,
		dialect: dialect,
		timeout: defaultStoreTimeout,
	}
}

// EnsureSchema creates the state table when it does not exist. Call it
// once at startup before the first Load or Save.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS theme_state (name VARCHAR(64) PRIMARY KEY, value VARCHAR(255) NOT NULL)`)
	return err
}

// LoadActive reads the stored directory key. A missing row means no
// selection has been saved yet.
func (s *SQLStore) LoadActive() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	query := `SELECT value FROM theme_state WHERE name = ` + s.placeholder(1)

	var value string
	err := s.db.QueryRowContext(ctx, query, stateDocID).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// SaveActive replaces the stored directory key. Delete-then-insert
// inside a transaction keeps the statement portable across dialects.
func (s *SQLStore) SaveActive(dir string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	del := `DELETE FROM theme_state WHERE name = ` + s.placeholder(1)
	if _, err := tx.ExecContext(ctx, del, stateDocID); err != nil {
		tx.Rollback()
		return err
	}

	ins := `INSERT INTO theme_state (name, value) VALUES (` + s.placeholder(1) + `, ` + s.placeholder(2) + `)`
	if _, err := tx.ExecContext(ctx, ins, stateDocID, dir); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// Ping verifies the database connection.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// placeholder returns the n-th bind placeholder for the dialect.
func (s *SQLStore) placeholder(n int) string {
	if s.dialect == DialectPostgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}
