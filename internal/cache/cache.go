// Package cache provides a durable render cache. Rendered output is keyed
// by target name and a structural fingerprint of the expression, so
// re-rendering a large model against an unchanged profile skips the
// backends entirely. SQLite with WAL mode keeps reads concurrent with the
// single writer.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/cardiosim/exprgen/internal/expr"
)

//go:embed schema.sql
var schemaSQL string

// Cache is a durable store of rendered expressions.
type Cache struct {
	db *sql.DB
}

// Open creates or opens a cache database at the given path. Use ":memory:"
// for an ephemeral cache. The database is configured with WAL mode, NORMAL
// synchronous writes, a 5-second busy timeout and foreign key enforcement;
// the schema is applied idempotently.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect cache: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent renders.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}

// BeginRun opens a render run and returns its token. Tokens are UUIDv7, so
// they sort by creation time.
func (c *Cache) BeginRun(ctx context.Context, profile string) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("begin run: %w", err)
	}
	token := id.String()
	_, err = c.db.ExecContext(ctx,
		`INSERT INTO runs (token, profile) VALUES (?, ?)`, token, profile)
	if err != nil {
		return "", fmt.Errorf("begin run: %w", err)
	}
	return token, nil
}

// Key fingerprints an expression for cache lookup. The fingerprint is a
// digest of the canonical prefix form, so structurally identical trees
// collide and value-equivalent but distinct trees (Log10 versus Log base
// ten) do not.
func Key(e expr.Expression) string {
	sum := sha256.Sum256([]byte(expr.Sprint(e)))
	return hex.EncodeToString(sum[:])
}

// Put stores rendered output under the given run. A second render of the
// same target and expression replaces the previous row and adopts the new
// run's token.
func (c *Cache) Put(ctx context.Context, runToken, target string, e expr.Expression, output string) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO renders (run_token, target, expr_key, output)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (target, expr_key) DO UPDATE SET
			output = excluded.output,
			run_token = excluded.run_token
	`, runToken, target, Key(e), output)
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

// Get returns cached output for a target and expression, and whether it was
// present.
func (c *Cache) Get(ctx context.Context, target string, e expr.Expression) (string, bool, error) {
	var output string
	err := c.db.QueryRowContext(ctx,
		`SELECT output FROM renders WHERE target = ? AND expr_key = ?`,
		target, Key(e)).Scan(&output)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get: %w", err)
	}
	return output, true, nil
}

// RunSize returns the number of renders currently attributed to a run.
func (c *Cache) RunSize(ctx context.Context, runToken string) (int, error) {
	var n int
	err := c.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM renders WHERE run_token = ?`, runToken).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("run size: %w", err)
	}
	return n, nil
}

// PurgeRun removes a run and every render still attributed to it.
func (c *Cache) PurgeRun(ctx context.Context, runToken string) error {
	_, err := c.db.ExecContext(ctx,
		`DELETE FROM runs WHERE token = ?`, runToken)
	if err != nil {
		return fmt.Errorf("purge run: %w", err)
	}
	return nil
}
