// Package depcache persists the commit-to-files index used by the
// dependency analysis. Listing the files of every commit means one
// `git diff-tree` per commit; on large repositories that dominates
// runtime, so known commits are cached in a per-repository SQLite
// database. Commit shas are immutable, so entries never expire.
package depcache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Cache is a durable sha -> file list map.
type Cache struct {
	db *sql.DB
}

// Open creates or opens the cache database at dir/deps-cache.db.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("depcache: create dir: %w", err)
	}
	db, err := openDB("sqlite", filepath.Join(dir, "deps-cache.db"))
	if err != nil {
		return nil, fmt.Errorf("depcache: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("depcache: pragma %q: %w", p, err)
		}
	}

	c := &Cache{db: db}
	if err := c.migrate(); err != nil {
		return nil, fmt.Errorf("depcache: migration: %w", err)
	}
	return c, nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) migrate() error {
	// commits records every sha we have seen, so an empty-file commit
	// (merge, empty tree) is distinguishable from a cache miss.
	schema := `
		CREATE TABLE IF NOT EXISTS commits (
			sha TEXT PRIMARY KEY
		);
		CREATE TABLE IF NOT EXISTS commit_files (
			sha  TEXT NOT NULL REFERENCES commits(sha) ON DELETE CASCADE,
			path TEXT NOT NULL,
			PRIMARY KEY (sha, path)
		) WITHOUT ROWID;
	`
	_, err := c.db.Exec(schema)
	return err
}

// Files returns the cached file list for sha. ok is false on a miss.
func (c *Cache) Files(sha string) (files []string, ok bool, err error) {
	var seen int
	err = c.db.QueryRow(`SELECT COUNT(*) FROM commits WHERE sha = ?`, sha).Scan(&seen)
	if err != nil {
		return nil, false, fmt.Errorf("depcache: lookup %s: %w", sha, err)
	}
	if seen == 0 {
		return nil, false, nil
	}
	rows, err := c.db.Query(`SELECT path FROM commit_files WHERE sha = ?`, sha)
	if err != nil {
		return nil, false, fmt.Errorf("depcache: read files %s: %w", sha, err)
	}
	defer rows.Close()
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, false, fmt.Errorf("depcache: scan: %w", err)
		}
		files = append(files, p)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("depcache: iterate: %w", err)
	}
	return files, true, nil
}

// Put stores the file list for sha, replacing any previous entry.
func (c *Cache) Put(sha string, files []string) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("depcache: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT OR REPLACE INTO commits (sha) VALUES (?)`, sha); err != nil {
		return fmt.Errorf("depcache: insert commit: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM commit_files WHERE sha = ?`, sha); err != nil {
		return fmt.Errorf("depcache: clear files: %w", err)
	}
	for _, f := range files {
		if _, err := tx.Exec(`INSERT INTO commit_files (sha, path) VALUES (?, ?)`, sha, f); err != nil {
			return fmt.Errorf("depcache: insert file: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("depcache: commit: %w", err)
	}
	return nil
}

// Len reports the number of cached commits.
func (c *Cache) Len() (int, error) {
	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM commits`).Scan(&n); err != nil {
		return 0, fmt.Errorf("depcache: count: %w", err)
	}
	return n, nil
}
