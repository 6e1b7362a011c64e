// ABOUTME: PostgreSQL connection and lifecycle management
// ABOUTME: Uses lib/pq against a Supabase-hosted database
package postgres

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	conn *sql.DB
}

// Open connects to the database at the given URL
func Open(databaseURL string) (*DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	conn, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(30 * time.Minute)

	// Test connection
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Conn returns the underlying connection pool
func (d *DB) Conn() *sql.DB {
	return d.conn
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.conn.Close()
}
