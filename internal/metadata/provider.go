// Package metadata loads the entity and relationship metadata the diagram
// renders. Metadata is read-only from the visualizer's point of view; it
// either ships with the binary (sample schema) or comes from an exported
// schema document.
package metadata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/models"
)

// Provider supplies entity metadata for the diagram.
type Provider interface {
	Metadata(ctx context.Context) ([]models.Entity, []models.EntityRelationship, error)
}

// schemaDocument is the on-disk schema export format. YAML and JSON are both
// accepted; yaml.v3 parses JSON input as-is.
type schemaDocument struct {
	Entities      []models.Entity             `yaml:"entities" json:"entities"`
	Relationships []models.EntityRelationship `yaml:"relationships" json:"relationships"`
}

// FileProvider reads a schema export from disk. The file is re-read on every
// call so a replaced export is picked up without a restart.
type FileProvider struct {
	path string
}

var _ Provider = (*FileProvider)(nil)

// NewFileProvider creates a provider backed by a schema export file.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

// Metadata loads and validates the schema document.
func (p *FileProvider) Metadata(ctx context.Context) ([]models.Entity, []models.EntityRelationship, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading schema file: %w", err)
	}

	var doc schemaDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parsing schema file %s: %w", filepath.Base(p.path), err)
	}

	if err := validateSchema(doc); err != nil {
		return nil, nil, fmt.Errorf("invalid schema file %s: %w", filepath.Base(p.path), err)
	}

	fmt.Printf("[Metadata] Loaded %d entities and %d relationships from %s\n",
		len(doc.Entities), len(doc.Relationships), p.path)
	return doc.Entities, doc.Relationships, nil
}

// validateSchema rejects documents that would render a broken diagram:
// entities need logical names, relationship endpoints must reference
// declared entities.
func validateSchema(doc schemaDocument) error {
	names := make(map[string]struct{}, len(doc.Entities))
	for i, ent := range doc.Entities {
		name := strings.TrimSpace(ent.LogicalName)
		if name == "" {
			return fmt.Errorf("entity %d has no logical name", i)
		}
		if _, dup := names[name]; dup {
			return fmt.Errorf("duplicate entity %q", name)
		}
		names[name] = struct{}{}
	}

	for _, rel := range doc.Relationships {
		if _, ok := names[rel.From]; !ok {
			return fmt.Errorf("relationship %q references unknown entity %q", rel.SchemaName, rel.From)
		}
		if _, ok := names[rel.To]; !ok {
			return fmt.Errorf("relationship %q references unknown entity %q", rel.SchemaName, rel.To)
		}
	}

	return nil
}
