// internal/core/ports/store.go
package ports

import (
	"context"

	"github.com/ammerola/retifica-be/internal/core/domain"
)

// Store is the application port of the synchronizing store. Mutations only
// return validation errors (or domain.ErrSetupRequired); persistence failures
// are absorbed by switching to offline mode.
type Store interface {
	Initialize(ctx context.Context) error

	AddBatch(ctx context.Context, name, closureDate string) (domain.Batch, error)
	UpdateBatch(ctx context.Context, id string, patch domain.BatchPatch) (domain.Batch, bool, error)
	DeleteBatch(ctx context.Context, id string) (bool, error)

	AddEngine(ctx context.Context, input domain.NewEngine) (domain.Engine, error)
	UpdateEngine(ctx context.Context, id string, patch domain.EnginePatch) (domain.Engine, bool, error)
	DeleteEngine(ctx context.Context, id string) (bool, error)

	Batches() []domain.Batch
	Batch(id string) (domain.Batch, bool)
	Engines() []domain.Engine
	Engine(id string) (domain.Engine, bool)
	EnginesByBatch(batchID string) []domain.Engine

	Metrics() domain.Metrics
	BatchSummaries() []domain.BatchSummary
	Catalog() *domain.Catalog

	// Subscribe registers fn to run once after every state-changing mutation.
	Subscribe(fn func()) (unsubscribe func())
	Mode() domain.Mode
	Status() domain.StoreStatus
}
