package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Cache stores resolved profiles in sqlite so repeated lookups skip
// the network. Entries older than the ttl are treated as absent; a
// ttl of zero or below keeps entries forever.
type Cache struct {
	db  *sql.DB
	ttl time.Duration

	now func() time.Time
}

// OpenCache opens or creates the cache database at path.
func OpenCache(path string, ttl time.Duration) (*Cache, error) {
	if path == "" {
		return nil, fmt.Errorf("empty cache path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Cache{db: db, ttl: ttl, now: time.Now}, nil
}

func initPragmas(db *sql.DB) error {
	// WAL keeps concurrent readers cheap for a lookup-heavy table.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("pragma %q: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS profiles (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL COLLATE NOCASE,
	properties TEXT NOT NULL,
	fetched_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_profiles_name ON profiles(name);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Put stores or replaces a profile.
func (c *Cache) Put(ctx context.Context, p Profile) error {
	props, err := json.Marshal(p.Properties)
	if err != nil {
		return err
	}
	_, err = c.db.ExecContext(ctx, `
INSERT INTO profiles (id, name, properties, fetched_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	name = excluded.name,
	properties = excluded.properties,
	fetched_at = excluded.fetched_at;`,
		p.ID.String(), p.Name, string(props), c.now().Unix())
	return err
}

// Get returns the cached profile for an id, if fresh.
func (c *Cache) Get(ctx context.Context, id uuid.UUID) (Profile, bool, error) {
	row := c.db.QueryRowContext(ctx, `
SELECT id, name, properties, fetched_at FROM profiles WHERE id = ?;`, id.String())
	return c.scan(row)
}

// GetByName returns the cached profile for a username, if fresh. The
// match is case-insensitive, like the API.
func (c *Cache) GetByName(ctx context.Context, name string) (Profile, bool, error) {
	row := c.db.QueryRowContext(ctx, `
SELECT id, name, properties, fetched_at FROM profiles WHERE name = ?;`, name)
	return c.scan(row)
}

func (c *Cache) scan(row *sql.Row) (Profile, bool, error) {
	var (
		rawID, name, props string
		fetchedAt          int64
	)
	if err := row.Scan(&rawID, &name, &props, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, false, nil
		}
		return Profile{}, false, err
	}
	if c.ttl > 0 && c.now().Sub(time.Unix(fetchedAt, 0)) > c.ttl {
		return Profile{}, false, nil
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return Profile{}, false, fmt.Errorf("corrupt cache row: %w", err)
	}
	p := Profile{ID: id, Name: name}
	if err := json.Unmarshal([]byte(props), &p.Properties); err != nil {
		return Profile{}, false, fmt.Errorf("corrupt cache row: %w", err)
	}
	return p, true, nil
}

// Close releases the database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}
