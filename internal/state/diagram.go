package state

import (
	"sort"
	"sync"

	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/models"
	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/notify"
)

// Diagram is the aggregate state surface for the ERD canvas. It composes the
// viewport, selection and color/grouping states with filters, field
// selection/order, layout mode, entity positions, edge offsets and settings,
// and owns the canonical serialize/restore contract.
//
// All state transitions are synchronous; the mutex only guards against the
// HTTP composition layer calling in from multiple goroutines.
type Diagram struct {
	mu sync.Mutex

	entities      []models.Entity
	relationships []models.EntityRelationship
	entityIndex   map[string]int

	selection *Selection
	viewport  *Viewport
	colors    *ColorGroups

	collapsed      map[string]struct{}
	fieldSelection map[string]map[string]struct{}
	fieldOrder     map[string][]string
	positions      map[string]models.Position
	edgeOffsets    map[string]float64
	layoutMode     string

	searchFilter    string
	publisherFilter string
	solutionFilter  string

	darkMode    bool
	showMinimap bool
	smartZoom   bool

	settings models.ColorLineSettings

	notifier  *notify.Notifier
	observers []func()

	// memoized derived views, recomputed when dirty
	dirty          bool
	filteredEnts   []models.Entity
	filteredRels   []models.EntityRelationship
}

// NewDiagram creates an empty aggregate wired to the given notifier.
func NewDiagram(notifier *notify.Notifier) *Diagram {
	return &Diagram{
		selection:      NewSelection(nil),
		viewport:       NewViewport(),
		colors:         NewColorGroups(),
		collapsed:      make(map[string]struct{}),
		fieldSelection: make(map[string]map[string]struct{}),
		fieldOrder:     make(map[string][]string),
		positions:      make(map[string]models.Position),
		edgeOffsets:    make(map[string]float64),
		layoutMode:     models.LayoutModeAuto,
		settings:       models.DefaultColorLineSettings(),
		notifier:       notifier,
		dirty:          true,
	}
}

// OnChange registers a hook fired after every mutating operation. The
// snapshot manager observes the aggregate through it for auto-save; the
// websocket hub for change broadcasts. Observers must be registered during
// wiring, before the aggregate is shared between goroutines.
func (d *Diagram) OnChange(fn func()) {
	d.observers = append(d.observers, fn)
}

// update runs a mutation under the lock, invalidates derived views, and
// fires the change hooks outside the lock so observers can read back state.
func (d *Diagram) update(fn func()) {
	d.mu.Lock()
	fn()
	d.dirty = true
	d.mu.Unlock()
	for _, fn := range d.observers {
		fn()
	}
}

// SetMetadata replaces the live entity and relationship lists wholesale.
// A refreshed metadata result is never treated as an incremental diff.
func (d *Diagram) SetMetadata(entities []models.Entity, relationships []models.EntityRelationship) {
	d.update(func() {
		d.entities = entities
		d.relationships = relationships
		d.entityIndex = make(map[string]int, len(entities))
		names := make([]string, len(entities))
		for i, e := range entities {
			d.entityIndex[e.LogicalName] = i
			names[i] = e.LogicalName
		}
		d.selection.SetKnown(names)
	})
}

// Entities returns the full live entity list.
func (d *Diagram) Entities() []models.Entity {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.entities
}

// Relationships returns the full live relationship list.
func (d *Diagram) Relationships() []models.EntityRelationship {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.relationships
}

// Entity looks up a live entity by logical name.
func (d *Diagram) Entity(name string) (models.Entity, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.entityByName(name)
}

func (d *Diagram) entityByName(name string) (models.Entity, bool) {
	i, ok := d.entityIndex[name]
	if !ok {
		return models.Entity{}, false
	}
	return d.entities[i], true
}

// FilteredEntities returns the live entities restricted to the selection
// set. The result is memoized until the next state change.
func (d *Diagram) FilteredEntities() []models.Entity {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.refreshDerived()
	return d.filteredEnts
}

// FilteredRelationships returns the relationships whose both endpoints are
// selected. An edge with only one endpoint on canvas is dropped, not
// rendered dangling.
func (d *Diagram) FilteredRelationships() []models.EntityRelationship {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.refreshDerived()
	return d.filteredRels
}

func (d *Diagram) refreshDerived() {
	if !d.dirty {
		return
	}
	ents := make([]models.Entity, 0, d.selection.Len())
	for _, e := range d.entities {
		if d.selection.Has(e.LogicalName) {
			ents = append(ents, e)
		}
	}
	rels := make([]models.EntityRelationship, 0, len(d.relationships))
	for _, r := range d.relationships {
		if d.selection.Has(r.From) && d.selection.Has(r.To) {
			rels = append(rels, r)
		}
	}
	d.filteredEnts = ents
	d.filteredRels = rels
	d.dirty = false
}

// Selection operations.

// ToggleEntity flips selection membership of one entity.
func (d *Diagram) ToggleEntity(name string) { d.update(func() { d.selection.Toggle(name) }) }

// SelectAll selects every known entity.
func (d *Diagram) SelectAll() { d.update(func() { d.selection.SelectAll() }) }

// SelectEntities additively selects the given names; empty is a no-op.
func (d *Diagram) SelectEntities(names []string) { d.update(func() { d.selection.Select(names) }) }

// DeselectAll clears the selection.
func (d *Diagram) DeselectAll() { d.update(func() { d.selection.DeselectAll() }) }

// DeselectEntities removes the given names; empty is a no-op.
func (d *Diagram) DeselectEntities(names []string) { d.update(func() { d.selection.Deselect(names) }) }

// SelectedEntities returns the sorted selected entity names.
func (d *Diagram) SelectedEntities() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selection.Names()
}

// Viewport operations.

// ZoomIn steps the zoom up, clamped to MaxZoom.
func (d *Diagram) ZoomIn() { d.update(func() { d.viewport.ZoomIn() }) }

// ZoomOut steps the zoom down, clamped to MinZoom.
func (d *Diagram) ZoomOut() { d.update(func() { d.viewport.ZoomOut() }) }

// SetZoom sets the zoom directly, clamped.
func (d *Diagram) SetZoom(z float64) { d.update(func() { d.viewport.SetZoom(z) }) }

// SetPan sets the pan offset directly.
func (d *Diagram) SetPan(p models.Pan) { d.update(func() { d.viewport.SetPan(p) }) }

// ResetView restores zoom and pan to their defaults.
func (d *Diagram) ResetView() { d.update(func() { d.viewport.Reset() }) }

// Zoom returns the current zoom level.
func (d *Diagram) Zoom() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.viewport.Zoom
}

// Pan returns the current pan offset.
func (d *Diagram) Pan() models.Pan {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.viewport.Pan
}

// Color/grouping operations.

// SetEntityColor upserts one color override.
func (d *Diagram) SetEntityColor(entity, hex string) {
	d.update(func() { d.colors.SetEntityColor(entity, hex) })
}

// ClearEntityColor removes one color override; absent keys are a no-op.
func (d *Diagram) ClearEntityColor(entity string) {
	d.update(func() { d.colors.ClearEntityColor(entity) })
}

// ClearAllEntityColors resets overrides, group names and group filter.
func (d *Diagram) ClearAllEntityColors() { d.update(func() { d.colors.ClearAll() }) }

// SetGroupName assigns a user label to a color group.
func (d *Diagram) SetGroupName(hex, name string) {
	d.update(func() { d.colors.SetGroupName(hex, name) })
}

// ClearGroupName removes a color group's user label.
func (d *Diagram) ClearGroupName(hex string) { d.update(func() { d.colors.ClearGroupName(hex) }) }

// SetGroupFilter sets the active group filter.
func (d *Diagram) SetGroupFilter(filter string) { d.update(func() { d.colors.SetFilter(filter) }) }

// DeriveGroups returns the current grouping view.
func (d *Diagram) DeriveGroups() []models.DerivedGroup {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.colors.DeriveGroups()
}

// Field selection and ordering.

// AddField selects one field for display on an entity. Adding an
// already-selected field is idempotent and does not reorder it.
func (d *Diagram) AddField(entity, field string) {
	d.update(func() {
		sel := d.fieldSelection[entity]
		if sel == nil {
			sel = make(map[string]struct{})
			d.fieldSelection[entity] = sel
		}
		if _, ok := sel[field]; ok {
			return
		}
		sel[field] = struct{}{}
		if !containsString(d.fieldOrder[entity], field) {
			d.fieldOrder[entity] = append(d.fieldOrder[entity], field)
		}
	})
}

// RemoveField deselects one field. Selection membership and the order list
// move in lockstep, so re-adding a removed field sends it to the back.
func (d *Diagram) RemoveField(entity, field string) {
	d.update(func() {
		if sel, ok := d.fieldSelection[entity]; ok {
			delete(sel, field)
			if len(sel) == 0 {
				delete(d.fieldSelection, entity)
			}
		}
		d.fieldOrder[entity] = removeString(d.fieldOrder[entity], field)
		if len(d.fieldOrder[entity]) == 0 {
			delete(d.fieldOrder, entity)
		}
	})
}

// OrderedFields returns the attribute names to display for an entity. A
// collapsed entity shows only its primary key regardless of field selection.
// Otherwise the primary key always comes first, followed by the selected
// fields in first-selected-first-shown order.
func (d *Diagram) OrderedFields(entityName string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	ent, ok := d.entityByName(entityName)
	pk := ""
	if ok {
		pk = ent.PrimaryIDAttribute
	}

	if _, collapsed := d.collapsed[entityName]; collapsed {
		if pk == "" {
			return []string{}
		}
		return []string{pk}
	}

	fields := make([]string, 0, len(d.fieldOrder[entityName])+1)
	if pk != "" {
		fields = append(fields, pk)
	}
	sel := d.fieldSelection[entityName]
	for _, f := range d.fieldOrder[entityName] {
		if f == pk {
			continue
		}
		if _, ok := sel[f]; ok {
			fields = append(fields, f)
		}
	}
	return fields
}

// Collapse state. Collapsing is independent of selection and of field
// selection: it only changes what OrderedFields returns.

// ToggleCollapse flips the collapsed state of one entity.
func (d *Diagram) ToggleCollapse(entity string) {
	d.update(func() {
		if _, ok := d.collapsed[entity]; ok {
			delete(d.collapsed, entity)
		} else {
			d.collapsed[entity] = struct{}{}
		}
	})
}

// CollapseAll collapses every currently selected entity.
func (d *Diagram) CollapseAll() {
	d.update(func() {
		for _, name := range d.selection.Names() {
			d.collapsed[name] = struct{}{}
		}
	})
}

// ExpandAll clears the collapse set.
func (d *Diagram) ExpandAll() {
	d.update(func() { d.collapsed = make(map[string]struct{}) })
}

// IsCollapsed reports whether an entity is collapsed.
func (d *Diagram) IsCollapsed(entity string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.collapsed[entity]
	return ok
}

// Positions, layout and edge offsets.

// SetPosition places one entity. Placing an entity switches the canvas to
// manual layout.
func (d *Diagram) SetPosition(entity string, pos models.Position) {
	d.update(func() {
		d.positions[entity] = pos
		d.layoutMode = models.LayoutModeManual
	})
}

// ClearPositions removes all placements and returns to automatic layout.
func (d *Diagram) ClearPositions() {
	d.update(func() {
		d.positions = make(map[string]models.Position)
		d.layoutMode = models.LayoutModeAuto
	})
}

// SetLayoutMode sets the layout mode directly.
func (d *Diagram) SetLayoutMode(mode string) { d.update(func() { d.layoutMode = mode }) }

// LayoutMode returns the current layout mode.
func (d *Diagram) LayoutMode() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.layoutMode
}

// SetEdgeOffset adjusts the label/routing offset of one relationship edge.
func (d *Diagram) SetEdgeOffset(schemaName string, offset float64) {
	d.update(func() { d.edgeOffsets[schemaName] = offset })
}

// Filters and flags.

// SetSearchFilter sets the entity search filter string.
func (d *Diagram) SetSearchFilter(v string) { d.update(func() { d.searchFilter = v }) }

// SetPublisherFilter sets the publisher filter string.
func (d *Diagram) SetPublisherFilter(v string) { d.update(func() { d.publisherFilter = v }) }

// SetSolutionFilter sets the solution filter string.
func (d *Diagram) SetSolutionFilter(v string) { d.update(func() { d.solutionFilter = v }) }

// SetDarkMode toggles dark mode.
func (d *Diagram) SetDarkMode(v bool) { d.update(func() { d.darkMode = v }) }

// SetShowMinimap toggles the minimap.
func (d *Diagram) SetShowMinimap(v bool) { d.update(func() { d.showMinimap = v }) }

// SetSmartZoom toggles smart zoom.
func (d *Diagram) SetSmartZoom(v bool) { d.update(func() { d.smartZoom = v }) }

// SetSettings replaces the color/line settings, normalizing missing fields.
func (d *Diagram) SetSettings(s models.ColorLineSettings) {
	d.update(func() {
		s.Normalize()
		d.settings = s
	})
}

// Settings returns the current color/line settings.
func (d *Diagram) Settings() models.ColorLineSettings {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.settings
}

// ShowToast surfaces a status message through the notifier.
func (d *Diagram) ShowToast(message string, typ models.ToastType) {
	if d.notifier != nil {
		d.notifier.Show(message, typ)
	}
}

// CurrentToast returns the toast currently showing, or nil.
func (d *Diagram) CurrentToast() *models.Toast {
	if d.notifier == nil {
		return nil
	}
	return d.notifier.Current()
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
