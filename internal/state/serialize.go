package state

import (
	"sort"

	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/models"
)

// Serializable captures the full aggregate as plain data. Live sets become
// sorted lists and live maps become plain records, so the output is stable
// across repeated calls on unchanged state.
func (d *Diagram) Serializable() models.SerializableState {
	d.mu.Lock()
	defer d.mu.Unlock()

	st := models.SerializableState{
		SelectedEntities:  d.selection.Names(),
		CollapsedEntities: sortedKeys(d.collapsed),
		LayoutMode:        d.layoutMode,
		Zoom:              d.viewport.Zoom,
		Pan:               d.viewport.Pan,
		SearchFilter:      d.searchFilter,
		PublisherFilter:   d.publisherFilter,
		SolutionFilter:    d.solutionFilter,
		DarkMode:          d.darkMode,
		ShowMinimap:       d.showMinimap,
		SmartZoom:         d.smartZoom,
		Settings:          d.settings,
		GroupFilter:       d.colors.Filter(),
	}

	if len(d.fieldSelection) > 0 {
		st.FieldSelection = make(map[string][]string, len(d.fieldSelection))
		for entity, sel := range d.fieldSelection {
			fields := make([]string, 0, len(sel))
			for f := range sel {
				fields = append(fields, f)
			}
			sort.Strings(fields)
			st.FieldSelection[entity] = fields
		}
	}
	if len(d.fieldOrder) > 0 {
		st.FieldOrder = make(map[string][]string, len(d.fieldOrder))
		for entity, order := range d.fieldOrder {
			st.FieldOrder[entity] = append([]string(nil), order...)
		}
	}
	if len(d.positions) > 0 {
		st.Positions = make(map[string]models.Position, len(d.positions))
		for entity, pos := range d.positions {
			st.Positions[entity] = pos
		}
	}
	if len(d.edgeOffsets) > 0 {
		st.EdgeOffsets = make(map[string]float64, len(d.edgeOffsets))
		for schema, off := range d.edgeOffsets {
			st.EdgeOffsets[schema] = off
		}
	}
	if overrides := d.colors.Overrides(); len(overrides) > 0 {
		st.EntityColors = overrides
	}
	if names := d.colors.GroupNames(); len(names) > 0 {
		st.GroupNames = names
	}

	return st
}

// Restore replaces the live aggregate state from a serialized snapshot,
// re-deriving sets from lists and applying backward-compatible defaulting:
// missing settings fields are filled in, the presence of manual positions
// always wins over the stored layout mode, and a group filter referencing a
// color no longer present among the overrides falls back to "all".
func (d *Diagram) Restore(st models.SerializableState) {
	d.update(func() {
		d.selection.Restore(st.SelectedEntities)

		d.collapsed = make(map[string]struct{}, len(st.CollapsedEntities))
		for _, name := range st.CollapsedEntities {
			d.collapsed[name] = struct{}{}
		}

		d.fieldSelection = make(map[string]map[string]struct{}, len(st.FieldSelection))
		d.fieldOrder = make(map[string][]string, len(st.FieldOrder))
		for entity, fields := range st.FieldSelection {
			sel := make(map[string]struct{}, len(fields))
			for _, f := range fields {
				sel[f] = struct{}{}
			}
			d.fieldSelection[entity] = sel
		}
		for entity, order := range st.FieldOrder {
			d.fieldOrder[entity] = append([]string(nil), order...)
		}
		// Older blobs may carry a selection without an order list; append the
		// stragglers so OrderedFields does not drop them.
		for entity, fields := range st.FieldSelection {
			for _, f := range fields {
				if !containsString(d.fieldOrder[entity], f) {
					d.fieldOrder[entity] = append(d.fieldOrder[entity], f)
				}
			}
		}

		d.positions = make(map[string]models.Position, len(st.Positions))
		for entity, pos := range st.Positions {
			d.positions[entity] = pos
		}

		// Manual positions always win: a blob that carries placements is a
		// manually arranged diagram no matter what its layout mode says.
		switch {
		case len(d.positions) > 0:
			d.layoutMode = models.LayoutModeManual
		case st.LayoutMode != "":
			d.layoutMode = st.LayoutMode
		default:
			d.layoutMode = models.LayoutModeAuto
		}

		d.viewport.SetZoom(zoomOrDefault(st.Zoom))
		d.viewport.SetPan(st.Pan)

		d.searchFilter = st.SearchFilter
		d.publisherFilter = st.PublisherFilter
		d.solutionFilter = st.SolutionFilter
		d.darkMode = st.DarkMode
		d.showMinimap = st.ShowMinimap
		d.smartZoom = st.SmartZoom

		settings := st.Settings
		settings.Normalize()
		d.settings = settings

		d.edgeOffsets = make(map[string]float64, len(st.EdgeOffsets))
		for schema, off := range st.EdgeOffsets {
			d.edgeOffsets[schema] = off
		}

		d.colors.Restore(st.EntityColors, st.GroupNames, validGroupFilter(st.GroupFilter, st.EntityColors))
	})
}

func zoomOrDefault(z float64) float64 {
	if z == 0 {
		return DefaultZoom
	}
	return z
}

// validGroupFilter drops a dangling group filter: a filter naming a color
// that no restored override carries silently becomes "all".
func validGroupFilter(filter string, overrides map[string]string) string {
	if filter == "" || filter == models.GroupFilterAll || filter == models.GroupFilterUngrouped {
		if filter == "" {
			return models.GroupFilterAll
		}
		return filter
	}
	want := NormalizeColor(filter)
	for _, hex := range overrides {
		if NormalizeColor(hex) == want {
			return want
		}
	}
	return models.GroupFilterAll
}
