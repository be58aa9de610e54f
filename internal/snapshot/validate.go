package snapshot

import (
	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/models"
)

// MissingField identifies a field-selection entry referencing an attribute
// that no longer exists on its (still live) entity.
type MissingField struct {
	Entity string `json:"entity"`
	Field  string `json:"field"`
}

// ValidationResult summarizes schema drift between a snapshot and the live
// entity metadata.
type ValidationResult struct {
	MissingEntities []string       `json:"missingEntities,omitempty"`
	MissingFields   []MissingField `json:"missingFields,omitempty"`
}

// Valid reports whether no drift was detected.
func (r ValidationResult) Valid() bool {
	return len(r.MissingEntities) == 0 && len(r.MissingFields) == 0
}

// ValidateState checks a snapshot state against the live entity list.
// Field validity is only checked for entities that are themselves live:
// fields on a missing entity are already counted through the entity and are
// not double-reported.
func ValidateState(st models.SerializableState, entities []models.Entity) ValidationResult {
	live := indexEntities(entities)

	var result ValidationResult
	for _, name := range st.SelectedEntities {
		if _, ok := live[name]; !ok {
			result.MissingEntities = append(result.MissingEntities, name)
		}
	}

	for entityName, fields := range st.FieldSelection {
		ent, ok := live[entityName]
		if !ok {
			continue
		}
		for _, field := range fields {
			if _, ok := ent.Attribute(field); !ok {
				result.MissingFields = append(result.MissingFields, MissingField{
					Entity: entityName,
					Field:  field,
				})
			}
		}
	}

	return result
}

// FilterInvalidEntries drops stale references from every per-entity
// sub-structure consistently: an entity absent from the live list is absent
// from the selection, collapse set, field selection, field order and
// positions after filtering, and live entities lose any fields the schema
// no longer carries. Loading stays maximally permissive; nothing aborts.
func FilterInvalidEntries(st models.SerializableState, entities []models.Entity) models.SerializableState {
	live := indexEntities(entities)

	st.SelectedEntities = filterNames(st.SelectedEntities, func(name string) bool {
		_, ok := live[name]
		return ok
	})
	st.CollapsedEntities = filterNames(st.CollapsedEntities, func(name string) bool {
		_, ok := live[name]
		return ok
	})

	if st.FieldSelection != nil {
		filtered := make(map[string][]string, len(st.FieldSelection))
		for entityName, fields := range st.FieldSelection {
			ent, ok := live[entityName]
			if !ok {
				continue
			}
			kept := filterNames(fields, func(field string) bool {
				_, ok := ent.Attribute(field)
				return ok
			})
			if len(kept) > 0 {
				filtered[entityName] = kept
			}
		}
		st.FieldSelection = filtered
	}

	if st.FieldOrder != nil {
		filtered := make(map[string][]string, len(st.FieldOrder))
		for entityName, order := range st.FieldOrder {
			ent, ok := live[entityName]
			if !ok {
				continue
			}
			kept := filterNames(order, func(field string) bool {
				_, ok := ent.Attribute(field)
				return ok
			})
			if len(kept) > 0 {
				filtered[entityName] = kept
			}
		}
		st.FieldOrder = filtered
	}

	if st.Positions != nil {
		filtered := make(map[string]models.Position, len(st.Positions))
		for entityName, pos := range st.Positions {
			if _, ok := live[entityName]; ok {
				filtered[entityName] = pos
			}
		}
		st.Positions = filtered
	}

	return st
}

func indexEntities(entities []models.Entity) map[string]*models.Entity {
	live := make(map[string]*models.Entity, len(entities))
	for i := range entities {
		live[entities[i].LogicalName] = &entities[i]
	}
	return live
}

func filterNames(names []string, keep func(string) bool) []string {
	if names == nil {
		return nil
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		if keep(name) {
			out = append(out, name)
		}
	}
	return out
}
