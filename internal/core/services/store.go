// internal/core/services/store.go
package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ammerola/retifica-be/internal/core/domain"
	"github.com/ammerola/retifica-be/internal/core/metrics"
	"github.com/ammerola/retifica-be/internal/core/ports"
)

// SyncStore holds the batch and engine collections for the process and
// routes every mutation to the remote service while online, or to the local
// snapshot cache while offline. A failed remote call demotes the store to
// offline for the rest of its life; there is no automatic resync.
type SyncStore struct {
	remote      ports.RemoteStore
	local       ports.LocalCache
	catalog     *domain.Catalog
	logger      *slog.Logger
	now         func() time.Time
	newID       func() string
	localDriver string

	mu            sync.RWMutex
	mode          domain.Mode
	batches       []domain.Batch
	engines       []domain.Engine
	lastRemoteErr string
	lastChange    time.Time

	subMu   sync.Mutex
	subs    map[uint64]func()
	nextSub uint64
}

// Statically assert that *SyncStore implements the Store interface.
var _ ports.Store = (*SyncStore)(nil)

// StoreOption customizes a SyncStore.
type StoreOption func(*SyncStore)

// WithCatalog replaces the built-in service catalog.
func WithCatalog(c *domain.Catalog) StoreOption {
	return func(s *SyncStore) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) StoreOption {
	return func(s *SyncStore) { s.now = now }
}

// WithIDGenerator overrides the offline id generator.
func WithIDGenerator(fn func() string) StoreOption {
	return func(s *SyncStore) { s.newID = fn }
}

// WithLocalDriver records the local cache driver name for status reporting.
func WithLocalDriver(name string) StoreOption {
	return func(s *SyncStore) { s.localDriver = name }
}

// NewSyncStore creates a store. remote may be nil when no remote is configured.
func NewSyncStore(remote ports.RemoteStore, local ports.LocalCache, logger *slog.Logger, opts ...StoreOption) *SyncStore {
	s := &SyncStore{
		remote:  remote,
		local:   local,
		catalog: domain.DefaultCatalog(),
		logger:  logger.With(slog.String("service", "store")),
		now:     time.Now,
		newID:   newTimeOrderedID,
		mode:    domain.ModeUninitialized,
		subs:    make(map[uint64]func()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newTimeOrderedID returns a UUIDv7, which is time based and still valid for
// the remote uuid columns.
func newTimeOrderedID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Initialize picks the mode and loads the collections.
func (s *SyncStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.remote == nil {
		s.logger.InfoContext(ctx, "remote not configured, starting offline")
		s.enterOffline(ctx)
		return nil
	}

	status := s.remote.Probe(ctx)
	switch status {
	case domain.ProbeOK:
		batches, engines, err := s.loadRemote(ctx)
		if err != nil {
			s.lastRemoteErr = err.Error()
			s.logger.WarnContext(ctx, "failed to load remote data, starting offline",
				slog.String("error", err.Error()))
			s.enterOffline(ctx)
			return nil
		}
		s.batches = batches
		s.engines = dropOrphans(ctx, s.logger, batches, engines)
		s.mode = domain.ModeOnline
		s.logger.InfoContext(ctx, "store initialized online",
			slog.Int("batches", len(s.batches)),
			slog.Int("engines", len(s.engines)))
		return nil

	case domain.ProbeSchemaMissing:
		s.batches, s.engines = nil, nil
		s.mode = domain.ModeSetupRequired
		s.logger.ErrorContext(ctx, "remote database is missing its tables, setup required")
		return domain.ErrSetupRequired

	default:
		s.logger.WarnContext(ctx, "remote unreachable, starting offline",
			slog.String("probe", status.String()))
		s.enterOffline(ctx)
		return nil
	}
}

func (s *SyncStore) loadRemote(ctx context.Context) ([]domain.Batch, []domain.Engine, error) {
	var (
		batches []domain.Batch
		engines []domain.Engine
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		batches, err = s.remote.ListBatches(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		engines, err = s.remote.ListEngines(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return batches, engines, nil
}

// enterOffline must be called with mu held.
func (s *SyncStore) enterOffline(ctx context.Context) {
	s.mode = domain.ModeOffline

	batches, err := s.local.ReadBatches(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to read cached batches, starting empty",
			slog.String("error", err.Error()))
		batches = nil
	}
	engines, err := s.local.ReadEngines(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to read cached engines, starting empty",
			slog.String("error", err.Error()))
		engines = nil
	}

	s.batches = batches
	s.engines = dropOrphans(ctx, s.logger, batches, engines)
	s.logger.InfoContext(ctx, "store initialized offline",
		slog.Int("batches", len(s.batches)),
		slog.Int("engines", len(s.engines)))
}

func dropOrphans(ctx context.Context, logger *slog.Logger, batches []domain.Batch, engines []domain.Engine) []domain.Engine {
	known := make(map[string]struct{}, len(batches))
	for _, b := range batches {
		known[b.ID] = struct{}{}
	}
	kept := engines[:0:0]
	for _, e := range engines {
		if _, ok := known[e.BatchID]; !ok {
			logger.WarnContext(ctx, "dropping engine without batch",
				slog.String("engine_id", e.ID),
				slog.String("batch_id", e.BatchID))
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

// AddBatch creates a batch.
func (s *SyncStore) AddBatch(ctx context.Context, name, closureDate string) (domain.Batch, error) {
	batch, err := domain.NewBatch(name, closureDate)
	if err != nil {
		return domain.Batch{}, err
	}

	s.mu.Lock()
	if err := s.writable(); err != nil {
		s.mu.Unlock()
		return domain.Batch{}, err
	}

	batch.CreatedAt = s.now()
	if s.mode == domain.ModeOnline {
		inserted, err := s.remote.InsertBatch(context.WithoutCancel(ctx), batch)
		if err != nil {
			s.demote(ctx, "insert batch", err)
		} else {
			batch = inserted
		}
	}
	if batch.ID == "" {
		batch.ID = s.newID()
	}

	s.batches = append(s.batches, batch)
	s.commit(ctx)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "batch added",
		slog.String("batch_id", batch.ID),
		slog.String("name", batch.Name))
	s.notify()
	return batch, nil
}

// AddEngine creates an engine in an existing batch.
func (s *SyncStore) AddEngine(ctx context.Context, input domain.NewEngine) (domain.Engine, error) {
	engine, err := input.ToDomain(s.catalog)
	if err != nil {
		return domain.Engine{}, err
	}

	s.mu.Lock()
	if err := s.writable(); err != nil {
		s.mu.Unlock()
		return domain.Engine{}, err
	}
	if s.batchIndex(engine.BatchID) < 0 {
		s.mu.Unlock()
		return domain.Engine{}, unknownBatch()
	}

	now := s.now()
	engine.CreatedAt = now
	engine.EntryDate = domain.DateOf(now)
	if s.mode == domain.ModeOnline {
		inserted, err := s.remote.InsertEngine(context.WithoutCancel(ctx), engine)
		if err != nil {
			s.demote(ctx, "insert engine", err)
		} else {
			engine = inserted
		}
	}
	if engine.ID == "" {
		engine.ID = s.newID()
	}

	s.engines = append(s.engines, engine)
	s.commit(ctx)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "engine added",
		slog.String("engine_id", engine.ID),
		slog.String("batch_id", engine.BatchID),
		slog.Int("services", len(engine.Services)))
	s.notify()
	return engine.Clone(), nil
}

// UpdateBatch merges patch into the batch with id. Unknown ids are a no-op
// reported through the boolean.
func (s *SyncStore) UpdateBatch(ctx context.Context, id string, patch domain.BatchPatch) (domain.Batch, bool, error) {
	s.mu.Lock()
	if err := s.writable(); err != nil {
		s.mu.Unlock()
		return domain.Batch{}, false, err
	}

	idx := s.batchIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return domain.Batch{}, false, nil
	}

	updated, err := patch.Apply(s.batches[idx])
	if err != nil {
		s.mu.Unlock()
		return domain.Batch{}, true, err
	}

	if s.mode == domain.ModeOnline {
		if err := s.remote.UpdateBatch(context.WithoutCancel(ctx), updated); err != nil {
			s.demote(ctx, "update batch", err)
		}
	}

	s.batches[idx] = updated
	s.commit(ctx)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "batch updated", slog.String("batch_id", id))
	s.notify()
	return updated, true, nil
}

// UpdateEngine merges patch into the engine with id. Unknown ids are a no-op
// reported through the boolean.
func (s *SyncStore) UpdateEngine(ctx context.Context, id string, patch domain.EnginePatch) (domain.Engine, bool, error) {
	s.mu.Lock()
	if err := s.writable(); err != nil {
		s.mu.Unlock()
		return domain.Engine{}, false, err
	}

	idx := s.engineIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return domain.Engine{}, false, nil
	}

	updated, err := patch.Apply(s.engines[idx], s.catalog)
	if err != nil {
		s.mu.Unlock()
		return domain.Engine{}, true, err
	}
	if s.batchIndex(updated.BatchID) < 0 {
		s.mu.Unlock()
		return domain.Engine{}, true, unknownBatch()
	}

	if s.mode == domain.ModeOnline {
		if err := s.remote.UpdateEngine(context.WithoutCancel(ctx), updated); err != nil {
			s.demote(ctx, "update engine", err)
		}
	}

	s.engines[idx] = updated
	s.commit(ctx)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "engine updated", slog.String("engine_id", id))
	s.notify()
	return updated.Clone(), true, nil
}

// DeleteBatch removes the batch and every engine that belongs to it.
func (s *SyncStore) DeleteBatch(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	if err := s.writable(); err != nil {
		s.mu.Unlock()
		return false, err
	}

	idx := s.batchIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return false, nil
	}

	if s.mode == domain.ModeOnline {
		if err := s.remote.DeleteBatch(context.WithoutCancel(ctx), id); err != nil {
			s.demote(ctx, "delete batch", err)
		}
	}

	s.batches = append(s.batches[:idx:idx], s.batches[idx+1:]...)
	kept := make([]domain.Engine, 0, len(s.engines))
	removed := 0
	for _, e := range s.engines {
		if e.BatchID == id {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.engines = kept
	s.commit(ctx)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "batch deleted",
		slog.String("batch_id", id),
		slog.Int("engines_removed", removed))
	s.notify()
	return true, nil
}

// DeleteEngine removes one engine.
func (s *SyncStore) DeleteEngine(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	if err := s.writable(); err != nil {
		s.mu.Unlock()
		return false, err
	}

	idx := s.engineIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return false, nil
	}

	if s.mode == domain.ModeOnline {
		if err := s.remote.DeleteEngine(context.WithoutCancel(ctx), id); err != nil {
			s.demote(ctx, "delete engine", err)
		}
	}

	s.engines = append(s.engines[:idx:idx], s.engines[idx+1:]...)
	s.commit(ctx)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "engine deleted", slog.String("engine_id", id))
	s.notify()
	return true, nil
}

// Batches returns a copy of the batch collection in insertion order.
func (s *SyncStore) Batches() []domain.Batch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Batch{}, s.batches...)
}

// Batch looks up one batch.
func (s *SyncStore) Batch(id string) (domain.Batch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.batchIndex(id); idx >= 0 {
		return s.batches[idx], true
	}
	return domain.Batch{}, false
}

// Engines returns a deep copy of the engine collection in insertion order.
func (s *SyncStore) Engines() []domain.Engine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEngines(s.engines, "")
}

// Engine looks up one engine.
func (s *SyncStore) Engine(id string) (domain.Engine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.engineIndex(id); idx >= 0 {
		return s.engines[idx].Clone(), true
	}
	return domain.Engine{}, false
}

// EnginesByBatch returns the engines of one batch.
func (s *SyncStore) EnginesByBatch(batchID string) []domain.Engine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEngines(s.engines, batchID)
}

// Metrics recomputes the global aggregates from the current collections.
func (s *SyncStore) Metrics() domain.Metrics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return metrics.Global(s.batches, s.engines)
}

// BatchSummaries recomputes every batch's aggregates.
func (s *SyncStore) BatchSummaries() []domain.BatchSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return metrics.Summaries(s.batches, s.engines)
}

// Catalog returns the accepted service types.
func (s *SyncStore) Catalog() *domain.Catalog {
	return s.catalog
}

// Subscribe registers fn; the returned function removes it and may be called
// any number of times.
func (s *SyncStore) Subscribe(fn func()) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
		})
	}
}

// Mode returns the current persistence mode.
func (s *SyncStore) Mode() domain.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Status reports the mode and environment for status endpoints.
func (s *SyncStore) Status() domain.StoreStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	env := domain.EnvironmentInfo{}
	if s.remote != nil {
		env = s.remote.Environment()
	}
	env.LocalDriver = s.localDriver

	return domain.StoreStatus{
		Mode:            s.mode,
		Online:          s.mode == domain.ModeOnline,
		Batches:         len(s.batches),
		Engines:         len(s.engines),
		LastRemoteError: s.lastRemoteErr,
		LastChange:      s.lastChange,
		Environment:     env,
	}
}

func (s *SyncStore) writable() error {
	switch s.mode {
	case domain.ModeSetupRequired:
		return domain.ErrSetupRequired
	case domain.ModeUninitialized:
		return domain.ErrNotInitialized
	}
	return nil
}

// demote must be called with mu held.
func (s *SyncStore) demote(ctx context.Context, op string, err error) {
	s.mode = domain.ModeOffline
	s.lastRemoteErr = err.Error()
	s.logger.WarnContext(ctx, "remote operation failed, switching to offline mode",
		slog.String("operation", op),
		slog.String("error", err.Error()))
}

// commit must be called with mu held. Offline, it rewrites the full snapshot.
// Writes outlive the caller's context so an abandoned request still persists.
func (s *SyncStore) commit(ctx context.Context) {
	s.lastChange = s.now()
	if s.mode != domain.ModeOffline {
		return
	}
	if err := s.local.WriteSnapshot(context.WithoutCancel(ctx), s.batches, s.engines); err != nil {
		s.logger.ErrorContext(ctx, "failed to write local snapshot",
			slog.String("error", err.Error()))
	}
}

func (s *SyncStore) notify() {
	s.subMu.Lock()
	callbacks := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		callbacks = append(callbacks, fn)
	}
	s.subMu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

func (s *SyncStore) batchIndex(id string) int {
	for i := range s.batches {
		if s.batches[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *SyncStore) engineIndex(id string) int {
	for i := range s.engines {
		if s.engines[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneEngines(engines []domain.Engine, batchID string) []domain.Engine {
	out := make([]domain.Engine, 0, len(engines))
	for _, e := range engines {
		if batchID != "" && e.BatchID != batchID {
			continue
		}
		out = append(out, e.Clone())
	}
	return out
}

func unknownBatch() error {
	return &domain.ValidationError{Field: "batchId", Message: "does not reference an existing batch"}
}
