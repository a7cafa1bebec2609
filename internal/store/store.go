// Package store provides a SQLite-backed catalog of named rule sets.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // register sqlite driver

	"github.com/xonecas/hitext/internal/rules"
)

// ErrNotFound is returned when no rule set has the requested name.
var ErrNotFound = errors.New("rule set not found")

const schema = `
CREATE TABLE IF NOT EXISTS rule_sets (
	name     TEXT PRIMARY KEY,
	specs    TEXT NOT NULL,
	updated  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_rule_sets_updated ON rule_sets(updated);
`

// Entry summarises one stored rule set.
type Entry struct {
	Name    string
	Rules   int
	Updated time.Time
}

// Catalog stores rule sets as JSON-encoded rules.Spec lists keyed by name.
type Catalog struct {
	mu sync.Mutex
	db *sql.DB
}

// Open creates or opens a catalog database at the given path.
func Open(dbPath string) (*Catalog, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Catalog{db: db}, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	if c == nil {
		return nil
	}
	return c.db.Close()
}

// Save stores specs under name, replacing any previous set. Every spec must
// compile.
func (c *Catalog) Save(ctx context.Context, name string, specs []rules.Spec) error {
	name = normalizeName(name)
	if name == "" {
		return errors.New("rule set name is required")
	}
	if _, err := rules.CompileSpecs(specs); err != nil {
		return fmt.Errorf("rule set %q: %w", name, err)
	}
	data, err := json.Marshal(specs)
	if err != nil {
		return fmt.Errorf("encode rule set %q: %w", name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_, err = c.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO rule_sets (name, specs, updated) VALUES (?, ?, ?)",
		name, string(data), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("save rule set %q: %w", name, err)
	}
	log.Debug().Str("name", name).Int("rules", len(specs)).Msg("rule set saved")
	return nil
}

// Load returns the specs stored under name.
func (c *Catalog) Load(ctx context.Context, name string) ([]rules.Spec, error) {
	name = normalizeName(name)

	c.mu.Lock()
	defer c.mu.Unlock()

	var data string
	err := c.db.QueryRowContext(ctx, "SELECT specs FROM rule_sets WHERE name = ?", name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("load rule set %q: %w", name, err)
	}

	var specs []rules.Spec
	if err := json.Unmarshal([]byte(data), &specs); err != nil {
		return nil, fmt.Errorf("decode rule set %q: %w", name, err)
	}
	log.Debug().Str("name", name).Int("rules", len(specs)).Msg("rule set loaded")
	return specs, nil
}

// Rules loads and compiles the rule set stored under name.
func (c *Catalog) Rules(ctx context.Context, name string) ([]rules.Rule, error) {
	specs, err := c.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return rules.CompileSpecs(specs)
}

// List returns every stored rule set, most recently updated first.
func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, err := c.db.QueryContext(ctx, "SELECT name, specs, updated FROM rule_sets ORDER BY updated DESC, name")
	if err != nil {
		return nil, fmt.Errorf("list rule sets: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			data    string
			updated int64
		)
		if err := rows.Scan(&e.Name, &data, &updated); err != nil {
			return nil, fmt.Errorf("scan rule set: %w", err)
		}
		var specs []rules.Spec
		if err := json.Unmarshal([]byte(data), &specs); err != nil {
			log.Warn().Err(err).Str("name", e.Name).Msg("corrupt rule set")
		}
		e.Rules = len(specs)
		e.Updated = time.Unix(updated, 0)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Delete removes the rule set stored under name.
func (c *Catalog) Delete(ctx context.Context, name string) error {
	name = normalizeName(name)

	c.mu.Lock()
	defer c.mu.Unlock()

	res, err := c.db.ExecContext(ctx, "DELETE FROM rule_sets WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("delete rule set %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	log.Debug().Str("name", name).Msg("rule set deleted")
	return nil
}

// normalizeName trims surrounding whitespace from a rule set name.
func normalizeName(name string) string {
	return strings.TrimSpace(name)
}
