// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"github.com/labstack/echo/v4"
)

// StateHandler handles diagram state operations
type StateHandler interface {
	HandleGetState(c echo.Context) error
	HandleReplaceState(c echo.Context) error
	HandleGetDiagram(c echo.Context) error
	HandleSelection(c echo.Context) error
	HandleFields(c echo.Context) error
	HandleCollapse(c echo.Context) error
	HandleViewport(c echo.Context) error
	HandleColors(c echo.Context) error
	HandleGetGroups(c echo.Context) error
	HandlePositions(c echo.Context) error
	HandleUpdateSettings(c echo.Context) error
	HandleUpdateFilters(c echo.Context) error
}

// SnapshotHandler handles snapshot persistence operations
type SnapshotHandler interface {
	HandleListSnapshots(c echo.Context) error
	HandleSaveSnapshot(c echo.Context) error
	HandleLoadSnapshot(c echo.Context) error
	HandleRenameSnapshot(c echo.Context) error
	HandleDeleteSnapshot(c echo.Context) error
	HandleExportSnapshot(c echo.Context) error
	HandleExportAll(c echo.Context) error
	HandleImportSnapshots(c echo.Context) error
	HandleShareSnapshot(c echo.Context) error
	HandleSetAutoSave(c echo.Context) error
	HandleFlush(c echo.Context) error
}

// MetadataHandler handles entity metadata operations
type MetadataHandler interface {
	HandleGetMetadata(c echo.Context) error
	HandleReloadMetadata(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}
