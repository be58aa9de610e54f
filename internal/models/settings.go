package models

// Documented defaults for ColorLineSettings. A settings record loaded from an
// older snapshot may be missing any of these fields; Normalize fills them in.
const (
	DefaultCustomTableColor   = "#f6d7b0"
	DefaultStandardTableColor = "#d0e8f2"
	DefaultLookupTableColor   = "#e2d5f1"

	DefaultEdgeStyle    = "orthogonal" // "straight" | "orthogonal" | "curved"
	DefaultLineNotation = "crowsfoot"  // "simple" | "crowsfoot" | "uml"
	DefaultLineStroke   = "solid"      // "solid" | "dashed" | "dotted"

	DefaultLineThickness = 2
	MinLineThickness     = 1
	MaxLineThickness     = 5

	DefaultManyToOneColor  = "#4a90d9"
	DefaultOneToManyColor  = "#7bb662"
	DefaultManyToManyColor = "#d97b4a"
)

// ColorLineSettings configures table coloring and relationship line drawing.
type ColorLineSettings struct {
	CustomTableColor   string `json:"customTableColor,omitempty"`
	StandardTableColor string `json:"standardTableColor,omitempty"`
	LookupTableColor   string `json:"lookupTableColor,omitempty"`

	EdgeStyle    string `json:"edgeStyle,omitempty"`
	LineNotation string `json:"lineNotation,omitempty"`
	LineStroke   string `json:"lineStroke,omitempty"`

	LineThickness int `json:"lineThickness,omitempty"`

	ColorByCardinality bool   `json:"colorByCardinality,omitempty"`
	ManyToOneColor     string `json:"manyToOneColor,omitempty"`
	OneToManyColor     string `json:"oneToManyColor,omitempty"`
	ManyToManyColor    string `json:"manyToManyColor,omitempty"`
}

// DefaultColorLineSettings returns a fully-populated settings record.
func DefaultColorLineSettings() ColorLineSettings {
	s := ColorLineSettings{}
	s.Normalize()
	return s
}

// Normalize fills every missing field with its documented default and clamps
// the line thickness into range. A zero-valued record becomes the default
// record; partial records from older snapshots are completed, never rejected.
func (s *ColorLineSettings) Normalize() {
	if s.CustomTableColor == "" {
		s.CustomTableColor = DefaultCustomTableColor
	}
	if s.StandardTableColor == "" {
		s.StandardTableColor = DefaultStandardTableColor
	}
	if s.LookupTableColor == "" {
		s.LookupTableColor = DefaultLookupTableColor
	}
	if s.EdgeStyle == "" {
		s.EdgeStyle = DefaultEdgeStyle
	}
	if s.LineNotation == "" {
		s.LineNotation = DefaultLineNotation
	}
	if s.LineStroke == "" {
		s.LineStroke = DefaultLineStroke
	}
	if s.LineThickness == 0 {
		s.LineThickness = DefaultLineThickness
	}
	if s.LineThickness < MinLineThickness {
		s.LineThickness = MinLineThickness
	}
	if s.LineThickness > MaxLineThickness {
		s.LineThickness = MaxLineThickness
	}
	if s.ManyToOneColor == "" {
		s.ManyToOneColor = DefaultManyToOneColor
	}
	if s.OneToManyColor == "" {
		s.OneToManyColor = DefaultOneToManyColor
	}
	if s.ManyToManyColor == "" {
		s.ManyToManyColor = DefaultManyToManyColor
	}
}
