// internal/pkg/catalog/catalog.go
package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ammerola/retifica-be/internal/core/domain"
)

// ErrEmptyCatalog is returned when a catalog file lists no service types.
var ErrEmptyCatalog = errors.New("catalog lists no service types")

// File is the YAML layout of a catalog file:
//
//	service_types:
//	  - Revisão simples
//	  - Troca de virabrequim
type File struct {
	ServiceTypes []string `yaml:"service_types"`
}

// Load reads the catalog at path. An empty path yields the built-in catalog.
func Load(path string) (*domain.Catalog, error) {
	if path == "" {
		return domain.DefaultCatalog(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML catalog. "Peças adicionais" is always included.
func Parse(r io.Reader) (*domain.Catalog, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCatalog
		}
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	if len(file.ServiceTypes) == 0 {
		return nil, ErrEmptyCatalog
	}

	types := make([]domain.ServiceType, 0, len(file.ServiceTypes))
	for _, t := range file.ServiceTypes {
		types = append(types, domain.ServiceType(t))
	}

	return domain.NewCatalog(types), nil
}
