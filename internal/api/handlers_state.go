// handlers_state.go - Diagram state operation handlers
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/models"
	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/state"
)

// StateHandlerImpl implements the StateHandler interface
type StateHandlerImpl struct {
	diagram *state.Diagram
}

// NewStateHandler creates a new state handler instance
func NewStateHandler(diagram *state.Diagram) StateHandler {
	return &StateHandlerImpl{diagram: diagram}
}

// HandleGetState returns the full serializable diagram state
func (h *StateHandlerImpl) HandleGetState(c echo.Context) error {
	return c.JSON(http.StatusOK, h.diagram.Serializable())
}

// HandleReplaceState restores a previously serialized state wholesale
func (h *StateHandlerImpl) HandleReplaceState(c echo.Context) error {
	var st models.SerializableState
	if err := c.Bind(&st); err != nil {
		return NewBadRequestError("invalid state document", err)
	}
	h.diagram.Restore(st)
	return c.JSON(http.StatusOK, h.diagram.Serializable())
}

// HandleGetDiagram returns the derived render model: entities and
// relationships that survive the selection filter, plus the field rows each
// entity card shows.
func (h *StateHandlerImpl) HandleGetDiagram(c echo.Context) error {
	entities := h.diagram.FilteredEntities()

	fields := make(map[string][]string, len(entities))
	collapsed := make(map[string]bool, len(entities))
	for _, ent := range entities {
		fields[ent.LogicalName] = h.diagram.OrderedFields(ent.LogicalName)
		collapsed[ent.LogicalName] = h.diagram.IsCollapsed(ent.LogicalName)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"entities":      entities,
		"relationships": h.diagram.FilteredRelationships(),
		"fields":        fields,
		"collapsed":     collapsed,
		"layoutMode":    h.diagram.LayoutMode(),
		"zoom":          h.diagram.Zoom(),
		"pan":           h.diagram.Pan(),
	})
}

type selectionRequest struct {
	Op       string   `json:"op"` // toggle | select | deselect | select-all | deselect-all
	Entity   string   `json:"entity,omitempty"`
	Entities []string `json:"entities,omitempty"`
}

// HandleSelection applies a selection operation. The all-variants take no
// entity list; the list variants require a non-empty one.
func (h *StateHandlerImpl) HandleSelection(c echo.Context) error {
	var req selectionRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	switch req.Op {
	case "toggle":
		if req.Entity == "" {
			return NewValidationError("entity")
		}
		h.diagram.ToggleEntity(req.Entity)
	case "select":
		if len(req.Entities) == 0 {
			return NewValidationError("entities")
		}
		h.diagram.SelectEntities(req.Entities)
	case "deselect":
		if len(req.Entities) == 0 {
			return NewValidationError("entities")
		}
		h.diagram.DeselectEntities(req.Entities)
	case "select-all":
		h.diagram.SelectAll()
	case "deselect-all":
		h.diagram.DeselectAll()
	default:
		return NewValidationError("op")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"selectedEntities": h.diagram.SelectedEntities(),
	})
}

type fieldRequest struct {
	Op     string `json:"op"` // add | remove
	Entity string `json:"entity"`
	Field  string `json:"field"`
}

// HandleFields adds or removes a field row on an entity card
func (h *StateHandlerImpl) HandleFields(c echo.Context) error {
	var req fieldRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if req.Entity == "" {
		return NewValidationError("entity")
	}
	if req.Field == "" {
		return NewValidationError("field")
	}

	switch req.Op {
	case "add":
		h.diagram.AddField(req.Entity, req.Field)
	case "remove":
		h.diagram.RemoveField(req.Entity, req.Field)
	default:
		return NewValidationError("op")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"entity": req.Entity,
		"fields": h.diagram.OrderedFields(req.Entity),
	})
}

type collapseRequest struct {
	Op     string `json:"op"` // toggle | collapse-all | expand-all
	Entity string `json:"entity,omitempty"`
}

// HandleCollapse toggles per-card collapse or applies it to all selected cards
func (h *StateHandlerImpl) HandleCollapse(c echo.Context) error {
	var req collapseRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	switch req.Op {
	case "toggle":
		if req.Entity == "" {
			return NewValidationError("entity")
		}
		h.diagram.ToggleCollapse(req.Entity)
	case "collapse-all":
		h.diagram.CollapseAll()
	case "expand-all":
		h.diagram.ExpandAll()
	default:
		return NewValidationError("op")
	}

	return c.NoContent(http.StatusNoContent)
}

type viewportRequest struct {
	Op   string      `json:"op"` // zoom-in | zoom-out | set | reset
	Zoom *float64    `json:"zoom,omitempty"`
	Pan  *models.Pan `json:"pan,omitempty"`
}

// HandleViewport applies a zoom or pan operation. Out-of-range zoom values
// are clamped, not rejected.
func (h *StateHandlerImpl) HandleViewport(c echo.Context) error {
	var req viewportRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	switch req.Op {
	case "zoom-in":
		h.diagram.ZoomIn()
	case "zoom-out":
		h.diagram.ZoomOut()
	case "set":
		if req.Zoom != nil {
			h.diagram.SetZoom(*req.Zoom)
		}
		if req.Pan != nil {
			h.diagram.SetPan(*req.Pan)
		}
	case "reset":
		h.diagram.ResetView()
	default:
		return NewValidationError("op")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"zoom": h.diagram.Zoom(),
		"pan":  h.diagram.Pan(),
	})
}

type colorRequest struct {
	Op     string `json:"op"` // set | clear | clear-all | name | clear-name | filter
	Entity string `json:"entity,omitempty"`
	Color  string `json:"color,omitempty"`
	Name   string `json:"name,omitempty"`
	Filter string `json:"filter,omitempty"`
}

// HandleColors applies a color grouping operation
func (h *StateHandlerImpl) HandleColors(c echo.Context) error {
	var req colorRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	switch req.Op {
	case "set":
		if req.Entity == "" {
			return NewValidationError("entity")
		}
		if req.Color == "" {
			return NewValidationError("color")
		}
		h.diagram.SetEntityColor(req.Entity, req.Color)
	case "clear":
		if req.Entity == "" {
			return NewValidationError("entity")
		}
		h.diagram.ClearEntityColor(req.Entity)
	case "clear-all":
		h.diagram.ClearAllEntityColors()
	case "name":
		if req.Color == "" {
			return NewValidationError("color")
		}
		h.diagram.SetGroupName(req.Color, req.Name)
	case "clear-name":
		if req.Color == "" {
			return NewValidationError("color")
		}
		h.diagram.ClearGroupName(req.Color)
	case "filter":
		h.diagram.SetGroupFilter(req.Filter)
	default:
		return NewValidationError("op")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"groups": h.diagram.DeriveGroups(),
	})
}

// HandleGetGroups returns the derived color group partition
func (h *StateHandlerImpl) HandleGetGroups(c echo.Context) error {
	return c.JSON(http.StatusOK, h.diagram.DeriveGroups())
}

type positionRequest struct {
	Op       string           `json:"op"` // set | clear | layout
	Entity   string           `json:"entity,omitempty"`
	Position *models.Position `json:"position,omitempty"`
	Mode     string           `json:"mode,omitempty"`
	Edge     string           `json:"edge,omitempty"`
	Offset   *float64         `json:"offset,omitempty"`
}

// HandlePositions applies a layout operation. Setting a position switches
// the diagram to manual layout; clearing all positions returns it to auto.
func (h *StateHandlerImpl) HandlePositions(c echo.Context) error {
	var req positionRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	switch req.Op {
	case "set":
		if req.Entity == "" {
			return NewValidationError("entity")
		}
		if req.Position == nil {
			return NewValidationError("position")
		}
		h.diagram.SetPosition(req.Entity, *req.Position)
	case "clear":
		h.diagram.ClearPositions()
	case "layout":
		switch req.Mode {
		case models.LayoutModeAuto, models.LayoutModeManual, models.LayoutModeForce:
			h.diagram.SetLayoutMode(req.Mode)
		default:
			return NewValidationError("mode")
		}
	case "edge-offset":
		if req.Edge == "" {
			return NewValidationError("edge")
		}
		if req.Offset == nil {
			return NewValidationError("offset")
		}
		h.diagram.SetEdgeOffset(req.Edge, *req.Offset)
	default:
		return NewValidationError("op")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"layoutMode": h.diagram.LayoutMode(),
	})
}

// HandleUpdateSettings replaces the color and line rendering settings.
// Missing values are filled with defaults and out-of-range values clamped.
func (h *StateHandlerImpl) HandleUpdateSettings(c echo.Context) error {
	var settings models.ColorLineSettings
	if err := c.Bind(&settings); err != nil {
		return NewBadRequestError("invalid settings document", err)
	}
	h.diagram.SetSettings(settings)
	return c.JSON(http.StatusOK, h.diagram.Settings())
}

type filtersRequest struct {
	Search      *string `json:"search,omitempty"`
	Publisher   *string `json:"publisher,omitempty"`
	Solution    *string `json:"solution,omitempty"`
	DarkMode    *bool   `json:"darkMode,omitempty"`
	ShowMinimap *bool   `json:"showMinimap,omitempty"`
	SmartZoom   *bool   `json:"smartZoom,omitempty"`
}

// HandleUpdateFilters applies a partial update to the display filters and
// view toggles. Only the fields present in the body change.
func (h *StateHandlerImpl) HandleUpdateFilters(c echo.Context) error {
	var req filtersRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	if req.Search != nil {
		h.diagram.SetSearchFilter(*req.Search)
	}
	if req.Publisher != nil {
		h.diagram.SetPublisherFilter(*req.Publisher)
	}
	if req.Solution != nil {
		h.diagram.SetSolutionFilter(*req.Solution)
	}
	if req.DarkMode != nil {
		h.diagram.SetDarkMode(*req.DarkMode)
	}
	if req.ShowMinimap != nil {
		h.diagram.SetShowMinimap(*req.ShowMinimap)
	}
	if req.SmartZoom != nil {
		h.diagram.SetSmartZoom(*req.SmartZoom)
	}

	return c.NoContent(http.StatusNoContent)
}
