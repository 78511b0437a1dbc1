// internal/core/domain/batch.go
package domain

import (
	"strings"
	"time"
)

// Batch is a closed grouping of engines processed together (a "lote").
type Batch struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ClosureDate Date      `json:"closureDate"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate checks the required batch fields.
func (b *Batch) Validate() error {
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		return requiredField("name")
	}
	if b.ClosureDate.IsZero() {
		return requiredField("closureDate")
	}
	return nil
}

// NewBatch builds a batch from raw user input. ID and CreatedAt are left for the caller.
func NewBatch(name, date string) (Batch, error) {
	b := Batch{Name: name}
	if strings.TrimSpace(date) == "" {
		if strings.TrimSpace(name) == "" {
			return Batch{}, requiredField("name")
		}
		return Batch{}, requiredField("closureDate")
	}

	d, err := ParseDate(date)
	if err != nil {
		return Batch{}, &ValidationError{Field: "closureDate", Message: "must be YYYY-MM-DD or DD/MM/YYYY"}
	}
	b.ClosureDate = d

	if err := b.Validate(); err != nil {
		return Batch{}, err
	}
	return b, nil
}

// BatchPatch holds the fields of an update; nil fields are left unchanged.
type BatchPatch struct {
	Name        *string `json:"name,omitempty"`
	ClosureDate *string `json:"closureDate,omitempty"`
}

// Apply merges the patch into a copy of b and validates the result.
func (p BatchPatch) Apply(b Batch) (Batch, error) {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.ClosureDate != nil {
		d, err := ParseDate(*p.ClosureDate)
		if err != nil {
			if strings.TrimSpace(*p.ClosureDate) == "" {
				return Batch{}, requiredField("closureDate")
			}
			return Batch{}, &ValidationError{Field: "closureDate", Message: "must be YYYY-MM-DD or DD/MM/YYYY"}
		}
		b.ClosureDate = d
	}
	if err := b.Validate(); err != nil {
		return Batch{}, err
	}
	return b, nil
}
