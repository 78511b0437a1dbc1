// test/benchmarks/metrics_bench_test.go
package benchmarks

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ammerola/retifica-be/internal/adapters/sqlite"
	"github.com/ammerola/retifica-be/internal/core/domain"
	"github.com/ammerola/retifica-be/internal/core/metrics"
	"github.com/ammerola/retifica-be/internal/core/services"
	"github.com/ammerola/retifica-be/internal/export"
	"github.com/ammerola/retifica-be/test/helpers"
)

// dataset builds batchCount batches holding perBatch engines each.
func dataset(batchCount, perBatch int) ([]domain.Batch, []domain.Engine) {
	batches := make([]domain.Batch, 0, batchCount)
	engines := make([]domain.Engine, 0, batchCount*perBatch)

	for i := 0; i < batchCount; i++ {
		closure := time.Date(2024, time.Month(i%12)+2, 0, 0, 0, 0, 0, time.UTC)
		batch := helpers.CreateTestBatch(func(b *domain.Batch) {
			b.Name = fmt.Sprintf("Lote %03d", i+1)
			b.ClosureDate = domain.DateOf(closure)
		})
		batches = append(batches, batch)
		engines = append(engines, helpers.CreateTestEngines(batch.ID, perBatch)...)
	}
	return batches, engines
}

func BenchmarkMetrics(b *testing.B) {
	batches, engines := dataset(24, 50)

	b.Run("Global", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = metrics.Global(batches, engines)
		}
	})

	b.Run("Summaries", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = metrics.Summaries(batches, engines)
		}
	})

	b.Run("Statistics", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = metrics.Statistics(engines)
		}
	})
}

func BenchmarkEngineFilter(b *testing.B) {
	batches, engines := dataset(24, 50)
	minTotal := decimal.NewFromInt(300)

	filters := map[string]domain.EngineFilter{
		"Empty":    {},
		"Batch":    {BatchID: batches[3].ID},
		"Model":    {VehicleModel: "palio"},
		"Total":    {MinTotal: &minTotal},
		"Combined": {VehicleModel: "gol", ServiceType: domain.ServiceLabor, MinTotal: &minTotal},
	}

	for name, f := range filters {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = f.Apply(engines)
			}
		})
	}
}

func BenchmarkExport(b *testing.B) {
	batches, engines := dataset(12, 40)
	data := export.Dataset{Batches: batches, Engines: engines}

	for _, format := range []export.Format{export.FormatCSV, export.FormatXLSX, export.FormatJSON} {
		b.Run(string(format), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if err := export.Render(io.Discard, format, export.KindEngines, data); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkStoreAddEngine(b *testing.B) {
	cache, err := sqlite.Open(filepath.Join(b.TempDir(), "bench.db"), helpers.TestLogger())
	if err != nil {
		b.Fatal(err)
	}
	defer cache.Close()

	store := services.NewSyncStore(nil, cache, helpers.TestLogger())
	ctx := context.Background()
	if err := store.Initialize(ctx); err != nil {
		b.Fatal(err)
	}
	batch, err := store.AddBatch(ctx, "Lote Benchmark", "2025-01-31")
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := store.AddEngine(ctx, domain.NewEngine{
			VehicleModel: "Gol 1.6",
			EngineNumber: fmt.Sprintf("BN-%06d", i),
			Operator:     "Ana",
			BatchID:      batch.ID,
			Services:     []domain.ServiceInput{{Type: string(domain.ServiceLabor), Amount: "150,00"}},
		})
		if err != nil {
			b.Fatal(err)
		}
	}
}
