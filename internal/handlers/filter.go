// internal/handlers/filter.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ammerola/retifica-be/internal/core/domain"
)

// parseEngineFilter reads the engine filter query parameters:
// batch_id, model, engine_number, service_type, min_total, max_total, from, to.
func parseEngineFilter(r *http.Request) (domain.EngineFilter, error) {
	q := r.URL.Query()

	filter := domain.EngineFilter{
		BatchID:      strings.TrimSpace(q.Get("batch_id")),
		VehicleModel: strings.TrimSpace(q.Get("model")),
		EngineNumber: strings.TrimSpace(q.Get("engine_number")),
		ServiceType:  domain.ServiceType(strings.TrimSpace(q.Get("service_type"))),
	}

	var err error
	if filter.MinTotal, err = amountParam(q.Get("min_total"), "min_total"); err != nil {
		return filter, err
	}
	if filter.MaxTotal, err = amountParam(q.Get("max_total"), "max_total"); err != nil {
		return filter, err
	}
	if filter.From, err = dateParam(q.Get("from"), "from"); err != nil {
		return filter, err
	}
	if filter.To, err = dateParam(q.Get("to"), "to"); err != nil {
		return filter, err
	}
	return filter, nil
}

func amountParam(v, field string) (*decimal.Decimal, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.Replace(v, ",", ".", 1))
	if err != nil {
		return nil, &domain.ValidationError{Field: field, Message: "must be a number"}
	}
	return &d, nil
}

func dateParam(v, field string) (*domain.Date, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(v)
	if err != nil {
		return nil, &domain.ValidationError{Field: field, Message: "must be a date (YYYY-MM-DD or DD/MM/YYYY)"}
	}
	return &d, nil
}
