// internal/core/metrics/metrics.go
package metrics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ammerola/retifica-be/internal/core/domain"
)

// NoActiveBatch is reported when there are no batches.
const NoActiveBatch = ""

// TotalCost sums every service amount of every engine.
func TotalCost(engines []domain.Engine) decimal.Decimal {
	total := decimal.Zero
	for _, e := range engines {
		total = total.Add(e.Total())
	}
	return total
}

// Average divides total by count, returning zero for an empty set.
func Average(total decimal.Decimal, count int) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count)))
}

// ForBatch computes the derived aggregates of one batch.
func ForBatch(batch domain.Batch, engines []domain.Engine) domain.BatchSummary {
	summary := domain.BatchSummary{Batch: batch, TotalCost: decimal.Zero}
	for _, e := range engines {
		if e.BatchID != batch.ID {
			continue
		}
		summary.EngineCount++
		summary.TotalCost = summary.TotalCost.Add(e.Total())
	}
	summary.AverageCost = Average(summary.TotalCost, summary.EngineCount)
	return summary
}

// Summaries computes ForBatch for every batch in a single pass over engines.
func Summaries(batches []domain.Batch, engines []domain.Engine) []domain.BatchSummary {
	type acc struct {
		count int
		total decimal.Decimal
	}
	byBatch := make(map[string]*acc, len(batches))
	for _, b := range batches {
		byBatch[b.ID] = &acc{total: decimal.Zero}
	}
	for _, e := range engines {
		if a, ok := byBatch[e.BatchID]; ok {
			a.count++
			a.total = a.total.Add(e.Total())
		}
	}

	out := make([]domain.BatchSummary, 0, len(batches))
	for _, b := range batches {
		a := byBatch[b.ID]
		out = append(out, domain.BatchSummary{
			Batch:       b,
			EngineCount: a.count,
			TotalCost:   a.total,
			AverageCost: Average(a.total, a.count),
		})
	}
	return out
}

// Global computes the store-wide aggregates.
func Global(batches []domain.Batch, engines []domain.Engine) domain.Metrics {
	total := TotalCost(engines)
	return domain.Metrics{
		TotalBatches:     len(batches),
		TotalEngines:     len(engines),
		TotalCost:        total,
		AveragePerEngine: Average(total, len(engines)),
		AveragePerBatch:  Average(total, len(batches)),
		ActiveBatch:      ActiveBatch(batches),
	}
}

// ActiveBatch names the most recently closed batch; ties go to the newest record.
func ActiveBatch(batches []domain.Batch) string {
	if len(batches) == 0 {
		return NoActiveBatch
	}
	latest := batches[0]
	for _, b := range batches[1:] {
		switch c := b.ClosureDate.Compare(latest.ClosureDate); {
		case c > 0:
			latest = b
		case c == 0 && b.CreatedAt.After(latest.CreatedAt):
			latest = b
		}
	}
	return latest.Name
}

// Statistics describes an arbitrary set of engines, typically a filtered one.
func Statistics(engines []domain.Engine) domain.Statistics {
	stats := domain.Statistics{
		Count:         len(engines),
		Total:         decimal.Zero,
		Min:           decimal.Zero,
		Max:           decimal.Zero,
		ByServiceType: []domain.ServiceTypeTotal{},
	}

	byType := make(map[domain.ServiceType]*domain.ServiceTypeTotal)
	for i, e := range engines {
		t := e.Total()
		stats.Total = stats.Total.Add(t)
		if i == 0 || t.LessThan(stats.Min) {
			stats.Min = t
		}
		if i == 0 || t.GreaterThan(stats.Max) {
			stats.Max = t
		}

		for _, s := range e.Services {
			agg, ok := byType[s.Type]
			if !ok {
				agg = &domain.ServiceTypeTotal{Type: s.Type, Total: decimal.Zero}
				byType[s.Type] = agg
			}
			agg.Count++
			agg.Total = agg.Total.Add(s.Amount)
		}
	}
	stats.Average = Average(stats.Total, stats.Count)

	for _, agg := range byType {
		stats.ByServiceType = append(stats.ByServiceType, *agg)
	}
	sort.Slice(stats.ByServiceType, func(i, j int) bool {
		a, b := stats.ByServiceType[i], stats.ByServiceType[j]
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}
		return a.Type < b.Type
	})
	return stats
}
