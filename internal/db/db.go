// Package db provides PostgreSQL access for the knowledge-graph collections.
// Every write is an idempotent upsert keyed on a natural key, a composite id
// pair, or a deterministic artifact id.
package db

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the knowledge-graph tables if they do not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// NormalizeNaturalKey trims whitespace from a name/title before it is used
// as an upsert filter, so " Go " and "Go" address the same record.
func NormalizeNaturalKey(key string) string {
	return strings.TrimSpace(key)
}

func (db *DB) count(ctx context.Context, table string) (int, error) {
	var n int
	if err := db.pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}

func (db *DB) maxID(ctx context.Context, table string) (int, error) {
	var max int
	if err := db.pool.QueryRow(ctx, "SELECT COALESCE(MAX(id), 0) FROM "+table).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to query max id of %s: %w", table, err)
	}
	return max, nil
}
