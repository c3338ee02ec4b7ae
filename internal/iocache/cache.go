// Package iocache provides a local sqlite-backed cache of raw table
// exports. One upstream call takes minutes; re-runs of a pipeline against
// unchanged years should not pay that price twice.
package iocache

import (
	"database/sql"
	"errors"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // pure Go SQLite driver (no CGo)
)

// Cache stores raw datencsv payloads keyed by (source, table, year).
type Cache struct {
	db *sql.DB
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS raw_responses (
	source     TEXT NOT NULL,
	table_id   TEXT NOT NULL,
	year       INTEGER NOT NULL,
	body       TEXT NOT NULL,
	fetched_at TEXT NOT NULL,
	PRIMARY KEY (source, table_id, year)
)`

// Open opens (and if needed creates) the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, OpenError(path, err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, OpenError(path, err)
	}

	return &Cache{db: db}, nil
}

// Close releases the cache database.
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Get returns the cached payload for one (source, table, year), with
// found=false on a miss.
func (c *Cache) Get(
	source, tableID string, year int,
) (body string, found bool, err error) {
	row := c.db.QueryRow(
		`SELECT body FROM raw_responses
		 WHERE source = ? AND table_id = ? AND year = ?`,
		source, tableID, year)

	err = row.Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, QueryError(tableID, year, err)
	}
	return body, true, nil
}

// Put stores one payload, replacing any previous entry for the key.
func (c *Cache) Put(source, tableID string, year int, body string) error {
	_, err := c.db.Exec(
		`INSERT INTO raw_responses (source, table_id, year, body, fetched_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (source, table_id, year)
		 DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at`,
		source, tableID, year, body,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return QueryError(tableID, year, err)
	}

	slog.Debug("Cached raw export",
		"source", source, "table", tableID, "year", year,
		"bytes", len(body))
	return nil
}
