// internal/adapters/redis_adapter/snapshot_cache.go
package redis_a

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/ammerola/retifica-be/internal/core/domain"
	"github.com/ammerola/retifica-be/internal/core/ports"
)

// SnapshotCache keeps the local snapshot in two Redis keys without expiry.
type SnapshotCache struct {
	client    redis.UniversalClient
	namespace string
	logger    *slog.Logger
}

// Statically assert that *SnapshotCache implements the LocalCache interface.
var _ ports.LocalCache = (*SnapshotCache)(nil)

// NewSnapshotCache creates a snapshot cache. namespace is prepended to the
// snapshot keys so several shops can share one Redis database.
func NewSnapshotCache(client redis.UniversalClient, namespace string, logger *slog.Logger) *SnapshotCache {
	return &SnapshotCache{
		client:    client,
		namespace: namespace,
		logger:    logger.With(slog.String("adapter", "redis_cache")),
	}
}

func (c *SnapshotCache) key(name string) string {
	if c.namespace == "" {
		return name
	}
	return c.namespace + ":" + name
}

// ReadBatches returns the cached batches.
func (c *SnapshotCache) ReadBatches(ctx context.Context) ([]domain.Batch, error) {
	return readSnapshot[domain.Batch](ctx, c, c.key(ports.BatchesKey))
}

// ReadEngines returns the cached engines.
func (c *SnapshotCache) ReadEngines(ctx context.Context) ([]domain.Engine, error) {
	return readSnapshot[domain.Engine](ctx, c, c.key(ports.EnginesKey))
}

// readSnapshot decodes key into a fresh slice; partial decodes are discarded.
func readSnapshot[T any](ctx context.Context, c *SnapshotCache, key string) ([]T, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []T{}, nil
	}
	if err != nil {
		return []T{}, &domain.CacheReadError{Key: key, Err: err}
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
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

// WriteSnapshot writes both keys in one MULTI/EXEC transaction.
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

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, c.key(ports.BatchesKey), batchesJSON, 0)
		pipe.Set(ctx, c.key(ports.EnginesKey), enginesJSON, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	c.logger.DebugContext(ctx, "snapshot written",
		slog.Int("batches", len(batches)),
		slog.Int("engines", len(engines)))
	return nil
}

// Close is a no-op; the client is owned by the caller.
func (c *SnapshotCache) Close() error {
	return nil
}
