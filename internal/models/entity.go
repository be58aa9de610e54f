package models

// Cardinality tags a relationship edge.
type Cardinality string

const (
	CardinalityManyToOne  Cardinality = "N:1"
	CardinalityOneToMany  Cardinality = "1:N"
	CardinalityManyToMany Cardinality = "N:N"
)

// Attribute is a single field of an entity. The yaml tags cover schema
// export files, which may be YAML or JSON.
type Attribute struct {
	LogicalName   string `json:"logicalName" yaml:"logicalName"`
	DisplayName   string `json:"displayName,omitempty" yaml:"displayName"`
	AttributeType string `json:"attributeType" yaml:"attributeType"` // display type, e.g. "String", "Lookup", "DateTime"
	IsPrimaryID   bool   `json:"isPrimaryId,omitempty" yaml:"isPrimaryId"`
	LookupTarget  string `json:"lookupTarget,omitempty" yaml:"lookupTarget"` // target entity logical name for lookups
}

// Entity is a table-like metadata object consumed from the CRM platform.
// Entities are immutable inputs for the duration of a session.
type Entity struct {
	LogicalName        string      `json:"logicalName" yaml:"logicalName"`
	DisplayName        string      `json:"displayName" yaml:"displayName"`
	PrimaryIDAttribute string      `json:"primaryIdAttribute" yaml:"primaryIdAttribute"`
	IsCustom           bool        `json:"isCustom,omitempty" yaml:"isCustom"`
	Attributes         []Attribute `json:"attributes" yaml:"attributes"`
}

// Attribute returns the attribute with the given logical name, if present.
func (e *Entity) Attribute(name string) (Attribute, bool) {
	for _, a := range e.Attributes {
		if a.LogicalName == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// EntityRelationship is a directed metadata edge between two entities.
type EntityRelationship struct {
	SchemaName           string      `json:"schemaName" yaml:"schemaName"`
	From                 string      `json:"from" yaml:"from"` // referencing entity logical name
	To                   string      `json:"to" yaml:"to"`     // referenced entity logical name
	Cardinality          Cardinality `json:"cardinality" yaml:"cardinality"`
	ReferencingAttribute string      `json:"referencingAttribute,omitempty" yaml:"referencingAttribute"`
	ReferencedAttribute  string      `json:"referencedAttribute,omitempty" yaml:"referencedAttribute"`
}
