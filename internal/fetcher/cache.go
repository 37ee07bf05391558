package fetcher

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Cache persists successfully resolved snippets by locator, so re-runs skip
// the network for content that was already fetched. Failures are never
// cached; a miss this run may succeed the next.
type Cache struct {
	db *sql.DB
}

// OpenCache creates or opens a SQLite snippet cache at the given path.
func OpenCache(path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging cache: %w", err)
	}

	c := &Cache{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating cache: %w", err)
	}
	return c, nil
}

// OpenMemoryCache creates an in-memory cache (useful for testing).
func OpenMemoryCache() (*Cache, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory cache: %w", err)
	}
	c := &Cache{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating cache: %w", err)
	}
	return c, nil
}

func (c *Cache) migrate() error {
	_, err := c.db.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS snippets (
    locator TEXT PRIMARY KEY,
    code TEXT NOT NULL,
    fetched_at DATETIME NOT NULL DEFAULT (datetime('now'))
);
`

// Get returns the cached snippet for a locator, if present.
func (c *Cache) Get(locator string) (string, bool, error) {
	var code string
	err := c.db.QueryRow(`SELECT code FROM snippets WHERE locator = ?`, locator).Scan(&code)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache lookup: %w", err)
	}
	return code, true, nil
}

// Put stores a resolved snippet, replacing any previous content for the
// locator.
func (c *Cache) Put(locator, code string) error {
	_, err := c.db.Exec(
		`INSERT INTO snippets (locator, code) VALUES (?, ?)
		 ON CONFLICT(locator) DO UPDATE SET code = excluded.code, fetched_at = datetime('now')`,
		locator, code)
	if err != nil {
		return fmt.Errorf("cache store: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}
