// internal/core/domain/filter.go
package domain

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// EngineFilter narrows an engine listing. Zero-valued fields do not filter.
type EngineFilter struct {
	BatchID      string
	VehicleModel string
	EngineNumber string
	ServiceType  ServiceType
	MinTotal     *decimal.Decimal
	MaxTotal     *decimal.Decimal
	From         *Date
	To           *Date
}

// IsEmpty reports whether the filter matches everything.
func (f EngineFilter) IsEmpty() bool {
	return f.BatchID == "" && f.VehicleModel == "" && f.EngineNumber == "" &&
		f.ServiceType == "" && f.MinTotal == nil && f.MaxTotal == nil &&
		f.From == nil && f.To == nil
}

// Match reports whether e satisfies every set criterion. Text criteria are
// case- and accent-insensitive substring matches.
func (f EngineFilter) Match(e Engine) bool {
	if f.BatchID != "" && e.BatchID != f.BatchID {
		return false
	}
	if f.VehicleModel != "" && !containsFolded(e.VehicleModel, f.VehicleModel) {
		return false
	}
	if f.EngineNumber != "" && !containsFolded(e.EngineNumber, f.EngineNumber) {
		return false
	}
	if f.ServiceType != "" && !hasService(e, f.ServiceType) {
		return false
	}

	if f.MinTotal != nil || f.MaxTotal != nil {
		total := e.Total()
		if f.MinTotal != nil && total.LessThan(*f.MinTotal) {
			return false
		}
		if f.MaxTotal != nil && total.GreaterThan(*f.MaxTotal) {
			return false
		}
	}

	if f.From != nil && e.EntryDate.Before(*f.From) {
		return false
	}
	if f.To != nil && e.EntryDate.After(*f.To) {
		return false
	}
	return true
}

// Apply returns the engines matching f, preserving order.
func (f EngineFilter) Apply(engines []Engine) []Engine {
	out := make([]Engine, 0, len(engines))
	for _, e := range engines {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

func hasService(e Engine, t ServiceType) bool {
	for _, s := range e.Services {
		if s.Type == t {
			return true
		}
	}
	return false
}

func containsFolded(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}

// Fold normalizes s for comparisons: accents removed, case folded, trimmed.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return strings.TrimSpace(cases.Fold().String(stripped))
}
