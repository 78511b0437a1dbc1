// internal/core/ports/remote_store.go
package ports

import (
	"context"

	"github.com/ammerola/retifica-be/internal/core/domain"
)

// RemoteStore is the optional network-backed record service. Every failing
// call returns a *domain.RemoteError.
type RemoteStore interface {
	// Probe never fails; unreachable or misconfigured remotes report ProbeUnavailable.
	Probe(ctx context.Context) domain.ProbeStatus
	Environment() domain.EnvironmentInfo

	InsertBatch(ctx context.Context, batch domain.Batch) (domain.Batch, error)
	InsertEngine(ctx context.Context, engine domain.Engine) (domain.Engine, error)
	UpdateBatch(ctx context.Context, batch domain.Batch) error
	UpdateEngine(ctx context.Context, engine domain.Engine) error
	// DeleteBatch also removes the batch's engines.
	DeleteBatch(ctx context.Context, id string) error
	DeleteEngine(ctx context.Context, id string) error
	ListBatches(ctx context.Context) ([]domain.Batch, error)
	ListEngines(ctx context.Context) ([]domain.Engine, error)
}
