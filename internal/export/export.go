// internal/export/export.go

// Package export renders store snapshots as CSV, XLSX and JSON backup files.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ammerola/retifica-be/internal/core/domain"
	"github.com/ammerola/retifica-be/internal/core/metrics"
)

// Content types of the generated files
const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeJSON = "application/json"
)

// Kind selects the CSV report.
type Kind string

// Kind constants
const (
	KindEngines Kind = "engines"
	KindBatches Kind = "batches"
	KindSummary Kind = "summary"
)

// Format is the output file format of an export job.
type Format string

// Format constants
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// ParseKind validates a CSV report name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindEngines, KindBatches, KindSummary:
		return k, nil
	}
	return "", fmt.Errorf("unknown export kind %q", s)
}

// ParseFormat validates an export file format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return ContentTypeCSV
	case FormatXLSX:
		return ContentTypeXLSX
	default:
		return ContentTypeJSON
	}
}

// Dataset is the snapshot an export is rendered from.
type Dataset struct {
	Batches []domain.Batch  `json:"batches"`
	Engines []domain.Engine `json:"engines"`
}

// Summaries computes the per-batch aggregates of the dataset.
func (d Dataset) Summaries() []domain.BatchSummary {
	return metrics.Summaries(d.Batches, d.Engines)
}

// Metrics computes the global aggregates of the dataset.
func (d Dataset) Metrics() domain.Metrics {
	return metrics.Global(d.Batches, d.Engines)
}

func (d Dataset) batchNames() map[string]string {
	names := make(map[string]string, len(d.Batches))
	for _, b := range d.Batches {
		names[b.ID] = b.Name
	}
	return names
}

// Filename returns prefix_YYYYMMDD_HHMMSS.ext for at.
func Filename(prefix, ext string, at time.Time) string {
	return fmt.Sprintf("%s_%s.%s", prefix, at.Format("20060102_150405"), strings.TrimPrefix(ext, "."))
}

// FilePrefix is the file name prefix of a report; kind only matters for CSV.
func FilePrefix(format Format, kind Kind) string {
	switch format {
	case FormatCSV:
		return "relatorio-" + string(kind)
	case FormatXLSX:
		return "relatorio-retifica"
	}
	return "backup-retifica"
}

// FormatMoney renders d with two decimals, a comma separator and no grouping.
func FormatMoney(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}

func serviceList(services []domain.Service) string {
	parts := make([]string, 0, len(services))
	for _, s := range services {
		parts = append(parts, fmt.Sprintf("%s (%s)", s.Label(), FormatMoney(s.Amount)))
	}
	return strings.Join(parts, "; ")
}
