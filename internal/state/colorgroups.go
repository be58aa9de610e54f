package state

import (
	"sort"
	"strings"

	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/models"
)

// presetGroupNames maps the ten palette hexes the widget offers to their
// algorithmic group labels. Colors outside the palette are labeled with the
// uppercased hex literal.
var presetGroupNames = map[string]string{
	"#ffadad": "Red",
	"#ffd6a5": "Orange",
	"#fdffb6": "Yellow",
	"#caffbf": "Green",
	"#9bf6ff": "Teal",
	"#a0c4ff": "Blue",
	"#bdb2ff": "Purple",
	"#ffc6ff": "Pink",
	"#e8c49c": "Brown",
	"#d3d3d3": "Gray",
}

// ColorGroups holds per-entity color overrides, user-assigned group names
// keyed by normalized color, and the active group filter.
type ColorGroups struct {
	overrides  map[string]string // entity logical name -> normalized hex
	groupNames map[string]string // normalized hex -> user label
	filter     string            // "all", "ungrouped", or a normalized hex
}

// NewColorGroups creates an empty color/grouping state with the filter set
// to "all".
func NewColorGroups() *ColorGroups {
	return &ColorGroups{
		overrides:  make(map[string]string),
		groupNames: make(map[string]string),
		filter:     models.GroupFilterAll,
	}
}

// NormalizeColor lowercases a hex color so callers never need to
// pre-normalize before using it as a key.
func NormalizeColor(hex string) string {
	return strings.ToLower(strings.TrimSpace(hex))
}

// SetEntityColor upserts one override.
func (c *ColorGroups) SetEntityColor(entity, hex string) {
	c.overrides[entity] = NormalizeColor(hex)
}

// ClearEntityColor removes one override. Removing an absent key is a no-op.
func (c *ColorGroups) ClearEntityColor(entity string) {
	delete(c.overrides, entity)
}

// ClearAll resets overrides, group names and the group filter together.
// Group names and the filter are meaningless without overrides, so all three
// are invalidated atomically.
func (c *ColorGroups) ClearAll() {
	c.overrides = make(map[string]string)
	c.groupNames = make(map[string]string)
	c.filter = models.GroupFilterAll
}

// Color returns the override for an entity, if any.
func (c *ColorGroups) Color(entity string) (string, bool) {
	hex, ok := c.overrides[entity]
	return hex, ok
}

// SetGroupName assigns a user label to the normalized color key.
func (c *ColorGroups) SetGroupName(hex, name string) {
	c.groupNames[NormalizeColor(hex)] = name
}

// ClearGroupName removes the user label for the normalized color key.
func (c *ColorGroups) ClearGroupName(hex string) {
	delete(c.groupNames, NormalizeColor(hex))
}

// SetFilter sets the active group filter to "all", "ungrouped", or a color.
func (c *ColorGroups) SetFilter(filter string) {
	if filter == models.GroupFilterAll || filter == models.GroupFilterUngrouped {
		c.filter = filter
		return
	}
	c.filter = NormalizeColor(filter)
}

// Filter returns the active group filter.
func (c *ColorGroups) Filter() string {
	return c.filter
}

// Overrides returns a copy of the override map.
func (c *ColorGroups) Overrides() map[string]string {
	out := make(map[string]string, len(c.overrides))
	for k, v := range c.overrides {
		out[k] = v
	}
	return out
}

// GroupNames returns a copy of the group-name map.
func (c *ColorGroups) GroupNames() map[string]string {
	out := make(map[string]string, len(c.groupNames))
	for k, v := range c.groupNames {
		out[k] = v
	}
	return out
}

// Restore replaces the whole color/grouping state from persisted records.
// Keys are re-normalized on the way in.
func (c *ColorGroups) Restore(overrides, groupNames map[string]string, filter string) {
	c.overrides = make(map[string]string, len(overrides))
	for entity, hex := range overrides {
		c.overrides[entity] = NormalizeColor(hex)
	}
	c.groupNames = make(map[string]string, len(groupNames))
	for hex, name := range groupNames {
		c.groupNames[NormalizeColor(hex)] = name
	}
	c.SetFilter(filter)
}

// DeriveGroups returns the current grouping view. Membership is a full
// partition of the override keys, so it is recomputed from scratch rather
// than patched incrementally.
func (c *ColorGroups) DeriveGroups() []models.DerivedGroup {
	return DeriveGroups(c.overrides, c.groupNames)
}

// DeriveGroups computes the read-only grouping view from an override map and
// a group-name map. The group name is the user label when present, else one
// of the preset palette names, else the uppercased hex literal. Entity names
// within a group are sorted lexicographically; groups are sorted by name.
func DeriveGroups(overrides, groupNames map[string]string) []models.DerivedGroup {
	byColor := make(map[string][]string)
	for entity, hex := range overrides {
		hex = NormalizeColor(hex)
		byColor[hex] = append(byColor[hex], entity)
	}

	groups := make([]models.DerivedGroup, 0, len(byColor))
	for hex, entities := range byColor {
		sort.Strings(entities)
		groups = append(groups, models.DerivedGroup{
			Color:       hex,
			Name:        groupLabel(hex, groupNames),
			EntityNames: entities,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Name != groups[j].Name {
			return groups[i].Name < groups[j].Name
		}
		return groups[i].Color < groups[j].Color
	})
	return groups
}

func groupLabel(hex string, groupNames map[string]string) string {
	if name, ok := groupNames[hex]; ok && name != "" {
		return name
	}
	if name, ok := presetGroupNames[hex]; ok {
		return name
	}
	return strings.ToUpper(hex)
}
