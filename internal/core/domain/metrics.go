// internal/core/domain/metrics.go
package domain

import "github.com/shopspring/decimal"

// BatchSummary is a batch plus its derived aggregates. It is never stored.
type BatchSummary struct {
	Batch
	EngineCount int             `json:"engineCount"`
	TotalCost   decimal.Decimal `json:"totalCost"`
	AverageCost decimal.Decimal `json:"averageCost"`
}

// Metrics are the global aggregates over the whole store.
type Metrics struct {
	TotalBatches     int             `json:"totalBatches"`
	TotalEngines     int             `json:"totalEngines"`
	TotalCost        decimal.Decimal `json:"totalCost"`
	AveragePerEngine decimal.Decimal `json:"averagePerEngine"`
	AveragePerBatch  decimal.Decimal `json:"averagePerBatch"`
	ActiveBatch      string          `json:"activeBatch"`
}

// ServiceTypeTotal aggregates the line items of one service type.
type ServiceTypeTotal struct {
	Type  ServiceType     `json:"type"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// Statistics describe an arbitrary (usually filtered) set of engines.
type Statistics struct {
	Count         int                `json:"count"`
	Total         decimal.Decimal    `json:"total"`
	Average       decimal.Decimal    `json:"average"`
	Min           decimal.Decimal    `json:"min"`
	Max           decimal.Decimal    `json:"max"`
	ByServiceType []ServiceTypeTotal `json:"byServiceType"`
}
