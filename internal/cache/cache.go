// Package cache is the on-device snapshot store backing offline-first
// operation. Each collection is a single JSON blob under a fixed key;
// writes are last-writer-wins per key.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Snapshot keys. One blob per collection, plus the quest set and its
// generation date (quests are local-only, never synced).
const (
	KeyPlan        = "plan"
	KeyProgress    = "progress"
	KeyHistory     = "history"
	KeyBodyMetrics = "body_metrics"
	KeyQuests      = "daily_quests"
	KeyQuestsDate  = "quests_date"
)

// Cache stores JSON snapshots in a local SQLite database.
type Cache struct {
	db *sql.DB
}

// Open opens (or creates) the cache database at dir/cache.db.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "cache.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating snapshots table: %w", err)
	}

	return &Cache{db: db}, nil
}

// Put serializes v and stores it under key, replacing any prior snapshot.
func (c *Cache) Put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling %s snapshot: %w", key, err)
	}
	_, err = c.db.Exec(
		`INSERT OR REPLACE INTO snapshots (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		key, string(data),
	)
	if err != nil {
		return fmt.Errorf("storing %s snapshot: %w", key, err)
	}
	return nil
}

// Get loads the snapshot under key into v. Returns false when no snapshot
// exists or the stored JSON is corrupt. A bad snapshot is treated as
// absent so startup never fails on cache contents.
func (c *Cache) Get(key string, v any) (bool, error) {
	var raw string
	err := c.db.QueryRow(`SELECT value FROM snapshots WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("loading %s snapshot: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, nil
	}
	return true, nil
}

// PutString stores a raw string value under key.
func (c *Cache) PutString(key, value string) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO snapshots (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storing %s: %w", key, err)
	}
	return nil
}

// GetString loads a raw string value. Missing keys return "".
func (c *Cache) GetString(key string) (string, error) {
	var raw string
	err := c.db.QueryRow(`SELECT value FROM snapshots WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("loading %s: %w", key, err)
	}
	return raw, nil
}

// Delete removes a snapshot.
func (c *Cache) Delete(key string) error {
	_, err := c.db.Exec(`DELETE FROM snapshots WHERE key = ?`, key)
	return err
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}
