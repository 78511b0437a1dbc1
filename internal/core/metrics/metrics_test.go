package metrics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/retifica-be/internal/core/domain"
	"github.com/ammerola/retifica-be/internal/core/metrics"
)

func engine(id, batchID string, amounts ...int64) domain.Engine {
	e := domain.Engine{ID: id, BatchID: batchID, VehicleModel: "Gol", EngineNumber: id, Operator: "Ana"}
	for _, a := range amounts {
		e.Services = append(e.Services, domain.NewService(domain.ServiceLabor, decimal.NewFromInt(a), ""))
	}
	return e
}

func TestForBatch(t *testing.T) {
	batch := domain.Batch{ID: "a", Name: "Lote A"}

	tests := []struct {
		name      string
		engines   []domain.Engine
		wantCount int
		wantTotal int64
		wantAvg   int64
	}{
		{name: "no_engines", engines: nil, wantCount: 0, wantTotal: 0, wantAvg: 0},
		{name: "single_engine", engines: []domain.Engine{engine("1", "a", 100)}, wantCount: 1, wantTotal: 100, wantAvg: 100},
		{
			name:      "ignores_other_batches",
			engines:   []domain.Engine{engine("1", "a", 100, 50), engine("2", "b", 999), engine("3", "a", 50)},
			wantCount: 2,
			wantTotal: 200,
			wantAvg:   100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := metrics.ForBatch(batch, tt.engines)
			assert.Equal(t, tt.wantCount, s.EngineCount)
			assert.True(t, decimal.NewFromInt(tt.wantTotal).Equal(s.TotalCost), "total %s", s.TotalCost)
			assert.True(t, decimal.NewFromInt(tt.wantAvg).Equal(s.AverageCost), "avg %s", s.AverageCost)
			assert.Equal(t, batch.ID, s.ID)
		})
	}
}

func TestSummaries_MatchForBatch(t *testing.T) {
	batches := []domain.Batch{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	engines := []domain.Engine{engine("1", "a", 10), engine("2", "b", 20, 5), engine("3", "a", 7), engine("4", "zz", 1)}

	summaries := metrics.Summaries(batches, engines)
	require.Len(t, summaries, 3)
	for i, b := range batches {
		want := metrics.ForBatch(b, engines)
		assert.Equal(t, want.EngineCount, summaries[i].EngineCount)
		assert.True(t, want.TotalCost.Equal(summaries[i].TotalCost))
		assert.True(t, want.AverageCost.Equal(summaries[i].AverageCost))
	}
}

func TestGlobal(t *testing.T) {
	now := time.Now()
	batches := []domain.Batch{
		{ID: "a", Name: "Lote A", ClosureDate: domain.MustParseDate("2025-01-01"), CreatedAt: now},
		{ID: "b", Name: "Lote B", ClosureDate: domain.MustParseDate("2025-03-01"), CreatedAt: now},
	}
	engines := []domain.Engine{engine("1", "a", 100), engine("2", "b", 200, 100)}

	m := metrics.Global(batches, engines)
	assert.Equal(t, 2, m.TotalBatches)
	assert.Equal(t, 2, m.TotalEngines)
	assert.True(t, decimal.NewFromInt(400).Equal(m.TotalCost))
	assert.True(t, decimal.NewFromInt(200).Equal(m.AveragePerEngine))
	assert.True(t, decimal.NewFromInt(200).Equal(m.AveragePerBatch))
	assert.Equal(t, "Lote B", m.ActiveBatch)

	again := metrics.Global(batches, engines)
	assert.Equal(t, m, again, "metrics are idempotent without mutations")
}

func TestGlobal_Empty(t *testing.T) {
	m := metrics.Global(nil, nil)
	assert.Zero(t, m.TotalBatches)
	assert.True(t, m.TotalCost.IsZero())
	assert.True(t, m.AveragePerEngine.IsZero())
	assert.True(t, m.AveragePerBatch.IsZero())
	assert.Equal(t, metrics.NoActiveBatch, m.ActiveBatch)
}

func TestActiveBatch_TieBreaksOnCreation(t *testing.T) {
	date := domain.MustParseDate("2025-05-05")
	older := domain.Batch{Name: "old", ClosureDate: date, CreatedAt: time.Unix(100, 0)}
	newer := domain.Batch{Name: "new", ClosureDate: date, CreatedAt: time.Unix(200, 0)}

	assert.Equal(t, "new", metrics.ActiveBatch([]domain.Batch{older, newer}))
	assert.Equal(t, "new", metrics.ActiveBatch([]domain.Batch{newer, older}))
}

func TestStatistics(t *testing.T) {
	engines := []domain.Engine{
		engine("1", "a", 100),
		engine("2", "a", 300),
		{
			ID: "3",
			Services: []domain.Service{
				domain.NewService(domain.ServiceAdditionalParts, decimal.NewFromInt(20), "Junta"),
				domain.NewService(domain.ServiceLabor, decimal.NewFromInt(180), ""),
			},
		},
	}

	stats := metrics.Statistics(engines)
	assert.Equal(t, 3, stats.Count)
	assert.True(t, decimal.NewFromInt(600).Equal(stats.Total))
	assert.True(t, decimal.NewFromInt(200).Equal(stats.Average))
	assert.True(t, decimal.NewFromInt(100).Equal(stats.Min))
	assert.True(t, decimal.NewFromInt(300).Equal(stats.Max))

	require.Len(t, stats.ByServiceType, 2)
	assert.Equal(t, domain.ServiceLabor, stats.ByServiceType[0].Type)
	assert.Equal(t, 3, stats.ByServiceType[0].Count)
	assert.True(t, decimal.NewFromInt(580).Equal(stats.ByServiceType[0].Total))
	assert.Equal(t, domain.ServiceAdditionalParts, stats.ByServiceType[1].Type)
}

func TestStatistics_Empty(t *testing.T) {
	stats := metrics.Statistics(nil)
	assert.Zero(t, stats.Count)
	assert.True(t, stats.Average.IsZero())
	assert.Empty(t, stats.ByServiceType)
}
