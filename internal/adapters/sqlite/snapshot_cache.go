// internal/adapters/sqlite/snapshot_cache.go
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ammerola/retifica-be/internal/core/domain"
	"github.com/ammerola/retifica-be/internal/core/ports"
)

//go:embed schema.sql
var schemaSQL string

// SnapshotCache is the SQLite implementation of ports.LocalCache. Both
// collections live in the snapshots table under the shared snapshot keys.
type SnapshotCache struct {
	db     *sql.DB
	logger *slog.Logger
}

// Statically assert that *SnapshotCache implements the LocalCache interface.
var _ ports.LocalCache = (*SnapshotCache)(nil)

// Open creates or opens the cache database at path and applies the schema.
func Open(path string, logger *slog.Logger) (*SnapshotCache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return New(db, logger), nil
}

// New wraps an already configured database handle.
func New(db *sql.DB, logger *slog.Logger) *SnapshotCache {
	return &SnapshotCache{
		db:     db,
		logger: logger.With(slog.String("adapter", "sqlite_cache")),
	}
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// ReadBatches returns the cached batches.
func (c *SnapshotCache) ReadBatches(ctx context.Context) ([]domain.Batch, error) {
	return readSnapshot[domain.Batch](ctx, c, ports.BatchesKey)
}

// ReadEngines returns the cached engines.
func (c *SnapshotCache) ReadEngines(ctx context.Context) ([]domain.Engine, error) {
	return readSnapshot[domain.Engine](ctx, c, ports.EnginesKey)
}

// readSnapshot decodes key into a fresh slice. A value that does not decode
// completely reads as empty.
func readSnapshot[T any](ctx context.Context, c *SnapshotCache, key string) ([]T, error) {
	var value string
	err := c.db.QueryRowContext(ctx, `SELECT value FROM snapshots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return []T{}, nil
	}
	if err != nil {
		return []T{}, &domain.CacheReadError{Key: key, Err: err}
	}

	var records []T
	if err := json.Unmarshal([]byte(value), &records); err != nil {
		c.logger.WarnContext(ctx, "ignoring malformed snapshot",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return []T{}, nil
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// WriteSnapshot replaces both keys in a single transaction.
func (c *SnapshotCache) WriteSnapshot(ctx context.Context, batches []domain.Batch, engines []domain.Engine) error {
	if batches == nil {
		batches = []domain.Batch{}
	}
	if engines == nil {
		engines = []domain.Engine{}
	}

	batchesJSON, err := json.Marshal(batches)
	if err != nil {
		return fmt.Errorf("failed to marshal batches: %w", err)
	}
	enginesJSON, err := json.Marshal(engines)
	if err != nil {
		return fmt.Errorf("failed to marshal engines: %w", err)
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	const upsert = `INSERT INTO snapshots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.ExecContext(ctx, upsert, ports.BatchesKey, string(batchesJSON), now); err != nil {
		return fmt.Errorf("failed to write %s: %w", ports.BatchesKey, err)
	}
	if _, err := tx.ExecContext(ctx, upsert, ports.EnginesKey, string(enginesJSON), now); err != nil {
		return fmt.Errorf("failed to write %s: %w", ports.EnginesKey, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	c.logger.DebugContext(ctx, "snapshot written",
		slog.Int("batches", len(batches)),
		slog.Int("engines", len(engines)))
	return nil
}

// Close closes the database connection.
func (c *SnapshotCache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}
