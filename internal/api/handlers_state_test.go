package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/models"
	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/notify"
	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/snapshot"
	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/state"
	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/storage"
	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/testutil"
)

// newTestServer wires a full API over an in-memory store and the sample
// schema, with routes and the error handler registered.
func newTestServer(t *testing.T) (*echo.Echo, *state.Diagram, *snapshot.Manager) {
	t.Helper()

	notifier := notify.NewWithDuration(time.Minute)
	t.Cleanup(notifier.Close)

	diagram := state.NewDiagram(notifier)
	diagram.SetMetadata(testutil.SampleEntities(), testutil.SampleRelationships())

	mgr := snapshot.NewManager(storage.NewMemoryStore(), diagram, notifier, snapshot.Options{
		ShareBaseURL: "https://crm.example.com/erd",
	})
	t.Cleanup(mgr.Close)

	handlers := NewHandlers(&Dependencies{
		Diagram:     diagram,
		SnapshotMgr: mgr,
		Metadata:    testProvider{},
		Version:     "test",
		Backend:     "memory",
	})

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	RegisterRoutes(e, handlers)
	return e, diagram, mgr
}

type testProvider struct{}

func (testProvider) Metadata(ctx context.Context) ([]models.Entity, []models.EntityRelationship, error) {
	return testutil.SampleEntities(), testutil.SampleRelationships(), nil
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), `"backend":"memory"`)
}

func TestMetadataEndpoint(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/metadata", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"logicalName":"account"`)
}

func TestSelectionOperations(t *testing.T) {
	e, diagram, _ := newTestServer(t)

	// select-all takes no entity list
	rec := doJSON(e, http.MethodPost, "/api/state/selection", `{"op":"select-all"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, diagram.SelectedEntities(), 3)

	// deselect removes only the given names
	rec = doJSON(e, http.MethodPost, "/api/state/selection", `{"op":"deselect","entities":["contact"]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, diagram.SelectedEntities(), 2)
	assert.NotContains(t, diagram.SelectedEntities(), "contact")

	// the list variant without a list is a validation error
	rec = doJSON(e, http.MethodPost, "/api/state/selection", `{"op":"select"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")

	// unknown op is rejected
	rec = doJSON(e, http.MethodPost, "/api/state/selection", `{"op":"invert"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestViewportClampsThroughAPI(t *testing.T) {
	e, diagram, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/state/viewport", `{"op":"set","zoom":9.5}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, state.MaxZoom, diagram.Zoom())

	rec = doJSON(e, http.MethodPost, "/api/state/viewport", `{"op":"reset"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, state.DefaultZoom, diagram.Zoom())
}

func TestFieldOperations(t *testing.T) {
	e, _, _ := newTestServer(t)

	doJSON(e, http.MethodPost, "/api/state/selection", `{"op":"select","entities":["account"]}`)

	rec := doJSON(e, http.MethodPost, "/api/state/fields", `{"op":"add","entity":"account","field":"name"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Fields []string `json:"fields"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// Primary key first, then the added field.
	assert.Equal(t, []string{"accountid", "name"}, resp.Fields)

	rec = doJSON(e, http.MethodPost, "/api/state/fields", `{"op":"add","entity":"account"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestColorOperationsAndGroups(t *testing.T) {
	e, _, _ := newTestServer(t)

	doJSON(e, http.MethodPost, "/api/state/selection", `{"op":"select-all"}`)

	rec := doJSON(e, http.MethodPost, "/api/state/colors", `{"op":"set","entity":"account","color":"#FFADAD"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/state/groups", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	// Preset palette color resolves to its friendly name.
	assert.Contains(t, rec.Body.String(), `"Red"`)
}

func TestReplaceStateRoundTrip(t *testing.T) {
	e, diagram, _ := newTestServer(t)

	doJSON(e, http.MethodPost, "/api/state/selection", `{"op":"select","entities":["account","contact"]}`)
	doJSON(e, http.MethodPost, "/api/state/viewport", `{"op":"set","zoom":1.5}`)

	rec := doJSON(e, http.MethodGet, "/api/state", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	saved := rec.Body.String()

	doJSON(e, http.MethodPost, "/api/state/selection", `{"op":"deselect-all"}`)
	assert.Empty(t, diagram.SelectedEntities())

	rec = doJSON(e, http.MethodPut, "/api/state", saved)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"account", "contact"}, diagram.SelectedEntities())
	assert.Equal(t, 1.5, diagram.Zoom())
}

func TestDiagramEndpointFiltersRelationships(t *testing.T) {
	e, _, _ := newTestServer(t)

	// Only account selected: no relationship has both endpoints selected.
	doJSON(e, http.MethodPost, "/api/state/selection", `{"op":"select","entities":["account"]}`)

	rec := doJSON(e, http.MethodGet, "/api/state/diagram", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Entities      []json.RawMessage `json:"entities"`
		Relationships []json.RawMessage `json:"relationships"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Entities, 1)
	assert.Empty(t, resp.Relationships)
}

func TestFiltersPartialUpdate(t *testing.T) {
	e, diagram, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPut, "/api/state/filters", `{"search":"acc","darkMode":true}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	st := diagram.Serializable()
	assert.Equal(t, "acc", st.SearchFilter)
	assert.True(t, st.DarkMode)
}

func TestSettingsNormalizeThroughAPI(t *testing.T) {
	e, _, _ := newTestServer(t)

	// Out-of-range thickness clamps; empty fields fill with defaults.
	rec := doJSON(e, http.MethodPut, "/api/state/settings", `{"lineThickness":99}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"lineThickness":5`)
	assert.Contains(t, rec.Body.String(), `"edgeStyle":"orthogonal"`)
}
