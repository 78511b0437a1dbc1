// internal/core/domain/service.go
package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ServiceType is one entry of the shop's fixed service catalog.
type ServiceType string

// Service type constants
const (
	ServiceSimpleRevision        ServiceType = "Revisão simples"
	ServiceCrankshaftReplacement ServiceType = "Troca de virabrequim"
	ServiceCrankshaftGrinding    ServiceType = "Retifica de virabrequim"
	ServiceHeadGasketReplacement ServiceType = "Troca junta de cabeçote"
	ServiceHeadResurfacing       ServiceType = "Retifica de cabeçote"
	ServiceRingsReplacement      ServiceType = "Troca de anéis"
	ServicePistonReplacement     ServiceType = "Troca de pistão"
	ServiceLabor                 ServiceType = "Serviços mão de obra"
	ServiceEngineDisassembly     ServiceType = "Desmontagem do motor"
	ServiceMainBearingsReplace   ServiceType = "Troca de bronzina de mancal"
	ServiceRodBearingsReplace    ServiceType = "Troca de bronzina de biela"
	ServiceConnectingRodReplace  ServiceType = "Troca de biela"
	ServiceMainCapReplacement    ServiceType = "Troca de mancal"
	ServiceAdditionalParts       ServiceType = "Peças adicionais"
)

// DefaultServiceTypes is the built-in catalog in display order.
var DefaultServiceTypes = []ServiceType{
	ServiceSimpleRevision,
	ServiceCrankshaftReplacement,
	ServiceCrankshaftGrinding,
	ServiceHeadGasketReplacement,
	ServiceHeadResurfacing,
	ServiceRingsReplacement,
	ServicePistonReplacement,
	ServiceLabor,
	ServiceEngineDisassembly,
	ServiceMainBearingsReplace,
	ServiceRodBearingsReplace,
	ServiceConnectingRodReplace,
	ServiceMainCapReplacement,
	ServiceAdditionalParts,
}

// Catalog is an ordered, immutable set of accepted service types.
type Catalog struct {
	types []ServiceType
	index map[ServiceType]struct{}
}

// NewCatalog builds a catalog, dropping blanks and duplicates. The
// additional-parts type is always present.
func NewCatalog(types []ServiceType) *Catalog {
	c := &Catalog{index: make(map[ServiceType]struct{}, len(types)+1)}
	for _, t := range types {
		t = ServiceType(strings.TrimSpace(string(t)))
		if t == "" {
			continue
		}
		if _, ok := c.index[t]; ok {
			continue
		}
		c.index[t] = struct{}{}
		c.types = append(c.types, t)
	}
	if _, ok := c.index[ServiceAdditionalParts]; !ok {
		c.index[ServiceAdditionalParts] = struct{}{}
		c.types = append(c.types, ServiceAdditionalParts)
	}
	return c
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	return NewCatalog(DefaultServiceTypes)
}

// Contains reports whether t is part of the catalog.
func (c *Catalog) Contains(t ServiceType) bool {
	_, ok := c.index[t]
	return ok
}

// Types returns a copy of the catalog entries.
func (c *Catalog) Types() []ServiceType {
	out := make([]ServiceType, len(c.types))
	copy(out, c.types)
	return out
}

// AdditionalPart carries the part name of a ServiceAdditionalParts line item.
type AdditionalPart struct {
	Name string
}

// Service is a billable line item on an engine. Part is set only for
// ServiceAdditionalParts.
type Service struct {
	Type   ServiceType
	Amount decimal.Decimal
	Part   *AdditionalPart
}

// NewService builds a line item, attaching the part only when the type carries one.
func NewService(t ServiceType, amount decimal.Decimal, partName string) Service {
	s := Service{Type: t, Amount: amount}
	if t == ServiceAdditionalParts && strings.TrimSpace(partName) != "" {
		s.Part = &AdditionalPart{Name: strings.TrimSpace(partName)}
	}
	return s
}

// PartName returns the additional part name, or "".
func (s Service) PartName() string {
	if s.Part == nil {
		return ""
	}
	return s.Part.Name
}

// Label renders the line item for listings, e.g. "Peças adicionais: Bomba de óleo".
func (s Service) Label() string {
	if name := s.PartName(); name != "" {
		return fmt.Sprintf("%s: %s", s.Type, name)
	}
	return string(s.Type)
}

type serviceJSON struct {
	Type     ServiceType     `json:"type"`
	Amount   decimal.Decimal `json:"amount"`
	PartName string          `json:"partName,omitempty"`
}

func (s Service) MarshalJSON() ([]byte, error) {
	return json.Marshal(serviceJSON{Type: s.Type, Amount: s.Amount, PartName: s.PartName()})
}

func (s *Service) UnmarshalJSON(data []byte) error {
	var raw serviceJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = NewService(raw.Type, raw.Amount, raw.PartName)
	return nil
}

// ServiceInput is a line item as entered by the user: the amount is free text.
type ServiceInput struct {
	Type     string `json:"type"`
	Amount   string `json:"amount"`
	PartName string `json:"partName,omitempty"`
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)`)

// ParseAmount reads a monetary amount leniently. When both ',' and '.' appear
// the last one is the decimal separator and the other groups thousands; a lone
// comma is decimal. Trailing garbage is ignored and anything non-numeric or
// negative yields zero.
func ParseAmount(text string) decimal.Decimal {
	text = strings.TrimSpace(text)
	comma, dot := strings.LastIndex(text, ","), strings.LastIndex(text, ".")
	switch {
	case comma >= 0 && dot > comma:
		text = strings.ReplaceAll(text, ",", "")
	case comma >= 0:
		text = strings.ReplaceAll(text, ".", "")
		text = strings.ReplaceAll(text, ",", ".")
	}

	match := leadingNumber.FindString(text)
	if match == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(strings.TrimSuffix(match, "."))
	if err != nil || amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// ToServices converts raw inputs into line items, validating types against catalog.
func ToServices(inputs []ServiceInput, catalog *Catalog) ([]Service, error) {
	if len(inputs) == 0 {
		return nil, &ValidationError{Field: "services", Message: "must contain at least one service"}
	}

	services := make([]Service, 0, len(inputs))
	for i, in := range inputs {
		t := ServiceType(strings.TrimSpace(in.Type))
		if t == "" {
			return nil, requiredField(fmt.Sprintf("services[%d].type", i))
		}
		if catalog != nil && !catalog.Contains(t) {
			return nil, &ValidationError{
				Field:   fmt.Sprintf("services[%d].type", i),
				Message: fmt.Sprintf("%q is not a known service type", t),
			}
		}
		services = append(services, NewService(t, ParseAmount(in.Amount), in.PartName))
	}
	return services, nil
}
