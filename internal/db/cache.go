package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const cacheSchema = `
	CREATE TABLE IF NOT EXISTS narrations (
		key TEXT PRIMARY KEY,
		provider TEXT NOT NULL,
		voice TEXT NOT NULL,
		format TEXT NOT NULL,
		sampleRate INTEGER NOT NULL,
		audio BLOB NOT NULL,
		createdAt REAL NOT NULL
	);
`

// DefaultCachePath returns the default narration cache location.
func DefaultCachePath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".holodeck", "narration.sqlite")
}

// Cache stores synthesized narration audio keyed by request fingerprint.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (creating if needed) the narration cache with WAL.
func OpenCache(path string) (*Cache, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	// One writer keeps :memory: databases on a single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached narration for key, or nil when absent.
func (c *Cache) Get(key string) (*Narration, error) {
	row := c.db.QueryRow(`
		SELECT key, provider, voice, format, sampleRate, audio, createdAt
		FROM narrations
		WHERE key = ?
	`, key)

	var n Narration
	var createdAt float64
	if err := row.Scan(&n.Key, &n.Provider, &n.Voice, &n.Format, &n.SampleRate, &n.Audio, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan narration: %w", err)
	}
	n.CreatedAt = timeFromUnix(createdAt)
	return &n, nil
}

// Put inserts or replaces a narration.
func (c *Cache) Put(n Narration) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	_, err := c.db.Exec(`
		INSERT OR REPLACE INTO narrations (key, provider, voice, format, sampleRate, audio, createdAt)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, n.Key, n.Provider, n.Voice, n.Format, n.SampleRate, n.Audio, unixFromTime(n.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert narration: %w", err)
	}
	return nil
}

// Count returns the number of cached narrations.
func (c *Cache) Count() (int, error) {
	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM narrations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count narrations: %w", err)
	}
	return n, nil
}
