// Package storage is the SQLite store behind the coaching CLI. It returns
// plain model slices; all aggregation happens in the caller.
package storage

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned when a looked-up id does not exist.
var ErrNotFound = errors.New("not found")

// DB wraps a sql.DB for the coaching store.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database at the given path and applies the schema.
func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// A single connection keeps ":memory:" databases intact across calls.
	conn.SetMaxOpenConns(1)
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// New wraps an existing connection without applying the schema.
func New(conn *sql.DB) *DB {
	return &DB{conn: conn}
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
