package state

import "sort"

// Selection is the set of entity logical names currently shown on canvas.
//
// The set is scoped to a known-entity list which is used only as the
// SelectAll default; selecting a name outside the known list is not
// rejected. Callers combine SelectAll/DeselectAll with the scoped
// Select/Deselect variants to implement filter-scoped bulk actions, so the
// distinction between "everything" and "exactly these" is load-bearing.
type Selection struct {
	known    []string
	selected map[string]struct{}
}

// NewSelection creates a selection scoped to the given known entity names.
func NewSelection(known []string) *Selection {
	return &Selection{
		known:    append([]string(nil), known...),
		selected: make(map[string]struct{}),
	}
}

// SetKnown replaces the known-entity list. Existing selections are kept,
// including names no longer in the list; stale names are handled by snapshot
// validation, not here.
func (s *Selection) SetKnown(known []string) {
	s.known = append([]string(nil), known...)
}

// Has reports whether the named entity is selected.
func (s *Selection) Has(name string) bool {
	_, ok := s.selected[name]
	return ok
}

// Toggle flips membership of one entity name.
func (s *Selection) Toggle(name string) {
	if _, ok := s.selected[name]; ok {
		delete(s.selected, name)
	} else {
		s.selected[name] = struct{}{}
	}
}

// SelectAll replaces the selection with every known entity name.
func (s *Selection) SelectAll() {
	s.selected = make(map[string]struct{}, len(s.known))
	for _, name := range s.known {
		s.selected[name] = struct{}{}
	}
}

// Select adds only the given names, leaving existing selections untouched.
// An empty slice is a no-op and must not clear the selection.
func (s *Selection) Select(names []string) {
	for _, name := range names {
		s.selected[name] = struct{}{}
	}
}

// DeselectAll empties the selection.
func (s *Selection) DeselectAll() {
	s.selected = make(map[string]struct{})
}

// Deselect removes only the given names. An empty slice is a no-op.
func (s *Selection) Deselect(names []string) {
	for _, name := range names {
		delete(s.selected, name)
	}
}

// Len returns the number of selected entities.
func (s *Selection) Len() int {
	return len(s.selected)
}

// Names returns the selected entity names sorted lexicographically. The
// sorted order makes the serialized form stable across round trips.
func (s *Selection) Names() []string {
	names := make([]string, 0, len(s.selected))
	for name := range s.selected {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Restore replaces the selection with exactly the given names.
func (s *Selection) Restore(names []string) {
	s.selected = make(map[string]struct{}, len(names))
	for _, name := range names {
		s.selected[name] = struct{}{}
	}
}
