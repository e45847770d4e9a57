// Package catalog materializes the schema registry into a queryable
// SQLite database: one row per manifest entry plus a flattened row per
// record field. The manifest's table_name keys both tables.
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Client manages the connection to the catalog database.
type Client struct {
	db *sql.DB
}

// Open opens (or creates) the catalog database at path.
func Open(ctx context.Context, path string) (*Client, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{db: db}, nil
}

// Close closes the database connection.
func (c *Client) Close() error {
	return c.db.Close()
}

// DB returns the underlying database connection.
func (c *Client) DB() *sql.DB {
	return c.db
}

const createTables = `
CREATE TABLE IF NOT EXISTS schema_entries (
	table_name    TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	group_name    TEXT NOT NULL,
	namespace     TEXT,
	file          TEXT NOT NULL,
	version       TEXT,
	compatibility TEXT,
	description   TEXT
);
CREATE TABLE IF NOT EXISTS schema_fields (
	table_name  TEXT NOT NULL,
	field_name  TEXT NOT NULL,
	field_type  TEXT NOT NULL,
	nullable    INTEGER NOT NULL,
	has_default INTEGER NOT NULL,
	PRIMARY KEY (table_name, field_name)
);
`

func (c *Client) ensureTables(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, createTables)
	return err
}
