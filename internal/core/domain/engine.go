// internal/core/domain/engine.go
package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Engine is a single serviced engine (a "motor") belonging to a batch.
type Engine struct {
	ID           string    `json:"id"`
	BatchID      string    `json:"batchId"`
	VehicleModel string    `json:"vehicleModel"`
	EngineNumber string    `json:"engineNumber"`
	Operator     string    `json:"operator"`
	Notes        string    `json:"notes,omitempty"`
	EntryDate    Date      `json:"entryDate"`
	Services     []Service `json:"services"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Total returns the sum of all service amounts.
func (e Engine) Total() decimal.Decimal {
	total := decimal.Zero
	for _, s := range e.Services {
		total = total.Add(s.Amount)
	}
	return total
}

// Validate checks the required engine fields.
func (e *Engine) Validate() error {
	e.VehicleModel = strings.TrimSpace(e.VehicleModel)
	e.EngineNumber = strings.TrimSpace(e.EngineNumber)
	e.Operator = strings.TrimSpace(e.Operator)
	e.BatchID = strings.TrimSpace(e.BatchID)

	switch {
	case e.VehicleModel == "":
		return requiredField("vehicleModel")
	case e.EngineNumber == "":
		return requiredField("engineNumber")
	case e.Operator == "":
		return requiredField("operator")
	case e.BatchID == "":
		return requiredField("batchId")
	case len(e.Services) == 0:
		return &ValidationError{Field: "services", Message: "must contain at least one service"}
	}

	for _, s := range e.Services {
		if s.Amount.IsNegative() {
			return &ValidationError{Field: "services", Message: "amounts cannot be negative"}
		}
	}
	return nil
}

// NewEngine is the user input for creating an engine.
type NewEngine struct {
	VehicleModel string         `json:"vehicleModel"`
	EngineNumber string         `json:"engineNumber"`
	Operator     string         `json:"operator"`
	Notes        string         `json:"notes,omitempty"`
	BatchID      string         `json:"batchId"`
	Services     []ServiceInput `json:"services"`
}

// ToDomain validates the input and builds an engine entered today.
func (n NewEngine) ToDomain(catalog *Catalog) (Engine, error) {
	e := Engine{
		VehicleModel: n.VehicleModel,
		EngineNumber: n.EngineNumber,
		Operator:     n.Operator,
		Notes:        strings.TrimSpace(n.Notes),
		BatchID:      n.BatchID,
		EntryDate:    Today(),
	}

	// required scalar fields are reported before service errors
	probe := e
	probe.Services = []Service{{}}
	if err := probe.Validate(); err != nil {
		return Engine{}, err
	}

	services, err := ToServices(n.Services, catalog)
	if err != nil {
		return Engine{}, err
	}
	e.Services = services

	if err := e.Validate(); err != nil {
		return Engine{}, err
	}
	return e, nil
}

// EnginePatch holds the fields of an update; nil fields are left unchanged.
type EnginePatch struct {
	VehicleModel *string         `json:"vehicleModel,omitempty"`
	EngineNumber *string         `json:"engineNumber,omitempty"`
	Operator     *string         `json:"operator,omitempty"`
	Notes        *string         `json:"notes,omitempty"`
	BatchID      *string         `json:"batchId,omitempty"`
	Services     *[]ServiceInput `json:"services,omitempty"`
}

// Apply merges the patch into a copy of e and validates the result.
func (p EnginePatch) Apply(e Engine, catalog *Catalog) (Engine, error) {
	if p.VehicleModel != nil {
		e.VehicleModel = *p.VehicleModel
	}
	if p.EngineNumber != nil {
		e.EngineNumber = *p.EngineNumber
	}
	if p.Operator != nil {
		e.Operator = *p.Operator
	}
	if p.Notes != nil {
		e.Notes = strings.TrimSpace(*p.Notes)
	}
	if p.BatchID != nil {
		e.BatchID = *p.BatchID
	}
	if p.Services != nil {
		services, err := ToServices(*p.Services, catalog)
		if err != nil {
			return Engine{}, err
		}
		e.Services = services
	} else {
		e.Services = append([]Service(nil), e.Services...)
	}

	if err := e.Validate(); err != nil {
		return Engine{}, err
	}
	return e, nil
}

// Clone returns a deep copy of e.
func (e Engine) Clone() Engine {
	out := e
	if e.Services != nil {
		out.Services = make([]Service, len(e.Services))
		for i, s := range e.Services {
			out.Services[i] = s
			if s.Part != nil {
				part := *s.Part
				out.Services[i].Part = &part
			}
		}
	}
	return out
}
