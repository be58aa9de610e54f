package models

// Position is a canvas coordinate for a manually or force-placed entity.
// Velocity components are used by the force layout and are opaque here.
type Position struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	VX float64 `json:"vx,omitempty"`
	VY float64 `json:"vy,omitempty"`
}

// Pan is the viewport translation offset.
type Pan struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Layout modes for the diagram canvas.
const (
	LayoutModeAuto   = "auto"
	LayoutModeManual = "manual"
	LayoutModeForce  = "force"
)

// Group filter sentinel values. Any other filter value is a normalized hex
// color referencing an entity color override.
const (
	GroupFilterAll       = "all"
	GroupFilterUngrouped = "ungrouped"
)

// SerializableState is the plain-data projection of the full diagram state.
// It is the unit of persistence, sharing and restore: no live references and
// no set/map-shaped runtime collections, only ordered lists and records.
type SerializableState struct {
	SelectedEntities  []string            `json:"selectedEntities"`
	CollapsedEntities []string            `json:"collapsedEntities,omitempty"`
	FieldSelection    map[string][]string `json:"fieldSelection,omitempty"`
	FieldOrder        map[string][]string `json:"fieldOrder,omitempty"`
	Positions         map[string]Position `json:"positions,omitempty"`
	LayoutMode        string              `json:"layoutMode"`

	Zoom float64 `json:"zoom"`
	Pan  Pan     `json:"pan"`

	SearchFilter    string `json:"searchFilter,omitempty"`
	PublisherFilter string `json:"publisherFilter,omitempty"`
	SolutionFilter  string `json:"solutionFilter,omitempty"`

	DarkMode    bool `json:"darkMode,omitempty"`
	ShowMinimap bool `json:"showMinimap,omitempty"`
	SmartZoom   bool `json:"smartZoom,omitempty"`

	Settings ColorLineSettings `json:"settings"`

	EdgeOffsets map[string]float64 `json:"edgeOffsets,omitempty"`

	EntityColors map[string]string `json:"entityColors,omitempty"`
	GroupNames   map[string]string `json:"groupNames,omitempty"`
	GroupFilter  string            `json:"groupFilter,omitempty"`
}

// DerivedGroup is a read-only partition of entities by shared color override.
// It is always computed from EntityColors and GroupNames, never stored.
type DerivedGroup struct {
	Color       string   `json:"color"`
	Name        string   `json:"name"`
	EntityNames []string `json:"entityNames"`
}

// MinimalState is the deliberately small subset of diagram state encoded
// into share URLs. Bulky per-field and per-color data is excluded so the
// encoded fragment stays within browser URL limits.
type MinimalState struct {
	SelectedEntities []string            `json:"s" msgpack:"s"`
	Positions        map[string]Position `json:"p,omitempty" msgpack:"p,omitempty"`
	LayoutMode       string              `json:"l,omitempty" msgpack:"l,omitempty"`
	Zoom             float64             `json:"z,omitempty" msgpack:"z,omitempty"`
	Pan              Pan                 `json:"o,omitempty" msgpack:"o,omitempty"`
	SearchFilter     string              `json:"q,omitempty" msgpack:"q,omitempty"`
	PublisherFilter  string              `json:"pb,omitempty" msgpack:"pb,omitempty"`
	SolutionFilter   string              `json:"sl,omitempty" msgpack:"sl,omitempty"`
	DarkMode         bool                `json:"d,omitempty" msgpack:"d,omitempty"`
}
