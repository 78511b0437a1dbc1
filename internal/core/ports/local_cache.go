// internal/core/ports/local_cache.go
package ports

import (
	"context"

	"github.com/ammerola/retifica-be/internal/core/domain"
)

// Snapshot keys shared by every local cache implementation.
const (
	BatchesKey = "retifica-lotes"
	EnginesKey = "retifica-motores"
)

// LocalCache is the durable key-value snapshot of the full collections.
// Missing keys read as empty collections and malformed values fail open to
// empty; only I/O failures are returned, as *domain.CacheReadError.
type LocalCache interface {
	ReadBatches(ctx context.Context) ([]domain.Batch, error)
	ReadEngines(ctx context.Context) ([]domain.Engine, error)
	// WriteSnapshot replaces both collections before returning.
	WriteSnapshot(ctx context.Context, batches []domain.Batch, engines []domain.Engine) error
	Close() error
}
