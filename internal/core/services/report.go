// internal/core/services/report.go
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/ammerola/retifica-be/internal/core/domain"
	"github.com/ammerola/retifica-be/internal/core/metrics"
	"github.com/ammerola/retifica-be/internal/core/ports"
)

// AllBatches selects every batch in BatchReport.
const AllBatches = "todos"

// EngineReport is a filtered engine listing with its statistics.
type EngineReport struct {
	Filter     domain.EngineFilter `json:"-"`
	Engines    []domain.Engine     `json:"engines"`
	Statistics domain.Statistics   `json:"statistics"`
}

// BatchReportEntry is one batch section of a report.
type BatchReportEntry struct {
	Summary    domain.BatchSummary `json:"summary"`
	Engines    []domain.Engine     `json:"engines"`
	Statistics domain.Statistics   `json:"statistics"`
}

// BatchReport groups engines by batch with per-batch and overall figures.
type BatchReport struct {
	GeneratedAt time.Time          `json:"generatedAt"`
	Batches     []BatchReportEntry `json:"batches"`
	Totals      domain.Metrics     `json:"totals"`
}

// ReportService builds read-only views over the store.
type ReportService struct {
	store  ports.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewReportService creates a new report service
func NewReportService(store ports.Store, logger *slog.Logger) *ReportService {
	return &ReportService{
		store:  store,
		logger: logger.With(slog.String("service", "report")),
		now:    time.Now,
	}
}

// FilterEngines applies filter to the current engines.
func (r *ReportService) FilterEngines(ctx context.Context, filter domain.EngineFilter) EngineReport {
	engines := filter.Apply(r.store.Engines())

	r.logger.DebugContext(ctx, "filtered engines",
		slog.Int("matched", len(engines)),
		slog.Bool("filtered", !filter.IsEmpty()))

	return EngineReport{
		Filter:     filter,
		Engines:    engines,
		Statistics: metrics.Statistics(engines),
	}
}

// BatchReport builds a report for one batch, or for all batches when
// batchID is empty or AllBatches.
func (r *ReportService) BatchReport(ctx context.Context, batchID string) (*BatchReport, error) {
	batches := r.store.Batches()
	engines := r.store.Engines()

	if batchID != "" && batchID != AllBatches {
		batch, ok := r.store.Batch(batchID)
		if !ok {
			return nil, domain.ErrNotFound
		}
		batches = []domain.Batch{batch}
	}

	report := &BatchReport{
		GeneratedAt: r.now(),
		Batches:     make([]BatchReportEntry, 0, len(batches)),
	}

	var included []domain.Engine
	for _, b := range batches {
		own := domain.EngineFilter{BatchID: b.ID}.Apply(engines)
		included = append(included, own...)
		report.Batches = append(report.Batches, BatchReportEntry{
			Summary:    metrics.ForBatch(b, own),
			Engines:    own,
			Statistics: metrics.Statistics(own),
		})
	}
	report.Totals = metrics.Global(batches, included)

	r.logger.InfoContext(ctx, "batch report generated",
		slog.String("batch_id", batchID),
		slog.Int("batches", len(report.Batches)),
		slog.Int("engines", len(included)))

	return report, nil
}

// Backup returns the full JSON backup of the store.
func (r *ReportService) Backup() domain.Backup {
	return domain.NewBackup(r.store.Batches(), r.store.Engines())
}
