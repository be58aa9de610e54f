package metadata

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSampleProvider(t *testing.T) {
	entities, relationships, err := NewSampleProvider().Metadata(context.Background())
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	if len(entities) == 0 || len(relationships) == 0 {
		t.Fatal("sample schema is empty")
	}

	// The sample schema must be internally consistent: that is exactly
	// what FileProvider enforces on external files.
	if err := validateSchema(schemaDocument{Entities: entities, Relationships: relationships}); err != nil {
		t.Errorf("sample schema fails its own validation: %v", err)
	}

	for _, ent := range entities {
		if _, ok := ent.Attribute(ent.PrimaryIDAttribute); !ok {
			t.Errorf("entity %q: primary id attribute %q not declared", ent.LogicalName, ent.PrimaryIDAttribute)
		}
	}
}

func TestFileProvider_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	doc := `
entities:
  - logicalName: account
    displayName: Account
    primaryIdAttribute: accountid
    attributes:
      - logicalName: accountid
        attributeType: Uniqueidentifier
        isPrimaryId: true
  - logicalName: contact
    displayName: Contact
    primaryIdAttribute: contactid
    attributes:
      - logicalName: contactid
        attributeType: Uniqueidentifier
        isPrimaryId: true
relationships:
  - schemaName: contact_customer_accounts
    from: contact
    to: account
    cardinality: "N:1"
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	entities, relationships, err := NewFileProvider(path).Metadata(context.Background())
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	if len(entities) != 2 || len(relationships) != 1 {
		t.Fatalf("entities = %d, relationships = %d", len(entities), len(relationships))
	}
	if entities[0].LogicalName != "account" {
		t.Errorf("first entity = %q", entities[0].LogicalName)
	}
}

func TestFileProvider_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")
	doc := `{"entities": [{"logicalName": "account", "primaryIdAttribute": "accountid", "attributes": []}], "relationships": []}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	entities, _, err := NewFileProvider(path).Metadata(context.Background())
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	if len(entities) != 1 {
		t.Fatalf("entities = %d", len(entities))
	}
}

func TestFileProvider_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "unparseable",
			doc:     "entities: [",
			wantErr: "parsing schema file",
		},
		{
			name:    "nameless entity",
			doc:     "entities:\n  - displayName: Mystery\n",
			wantErr: "no logical name",
		},
		{
			name:    "duplicate entity",
			doc:     "entities:\n  - logicalName: account\n  - logicalName: account\n",
			wantErr: "duplicate entity",
		},
		{
			name:    "dangling relationship",
			doc:     "entities:\n  - logicalName: account\nrelationships:\n  - schemaName: r\n    from: account\n    to: ghost\n",
			wantErr: "unknown entity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "schema.yaml")
			if err := os.WriteFile(path, []byte(tt.doc), 0644); err != nil {
				t.Fatal(err)
			}
			_, _, err := NewFileProvider(path).Metadata(context.Background())
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestFileProvider_MissingFile(t *testing.T) {
	_, _, err := NewFileProvider(filepath.Join(t.TempDir(), "absent.yaml")).Metadata(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
}
