// db/mysql/mysql.go
package mysql

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Connect opens a MySQL connection pool using the given DSN and timeout.
// It performs a Ping to ensure the connection is usable before returning.
//
// The returned *sql.DB is a pool of connections, not a single connection.
// It is safe for concurrent use and should be reused throughout the application.
//
// The caller is responsible for calling db.Close() when done.
//
// DSN format:
//
//	user:password@tcp(host:port)/dbname
//	user:password@tcp(host:port)/dbname?parseTime=true
func Connect(dsn string, timeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

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
