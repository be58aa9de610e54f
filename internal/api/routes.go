// routes.go - Route registration helpers
// This file provides a clean way to register all API routes
package api

import (
	"github.com/labstack/echo/v4"

	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/metadata"
	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/snapshot"
	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/state"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Diagram     *state.Diagram
	SnapshotMgr *snapshot.Manager
	Metadata    metadata.Provider
	Version     string
	Backend     string
}

// Handlers holds all handler instances
type Handlers struct {
	Health    HealthHandler
	State     StateHandler
	Snapshots SnapshotHandler
	Metadata  MetadataHandler
	Hub       *Hub
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(deps.Version, deps.Backend),
		State:     NewStateHandler(deps.Diagram),
		Snapshots: NewSnapshotHandler(deps.SnapshotMgr),
		Metadata:  NewMetadataHandler(deps.Metadata, deps.Diagram),
		Hub:       NewHub(),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	// Health check
	e.GET("/health", handlers.Health.HandleHealth)

	// Metadata routes
	metaGroup := e.Group("/api/metadata")
	metaGroup.GET("", handlers.Metadata.HandleGetMetadata)
	metaGroup.POST("/reload", handlers.Metadata.HandleReloadMetadata)

	// Diagram state routes
	stateGroup := e.Group("/api/state")
	stateGroup.GET("", handlers.State.HandleGetState)
	stateGroup.PUT("", handlers.State.HandleReplaceState)
	stateGroup.GET("/diagram", handlers.State.HandleGetDiagram)
	stateGroup.POST("/selection", handlers.State.HandleSelection)
	stateGroup.POST("/fields", handlers.State.HandleFields)
	stateGroup.POST("/collapse", handlers.State.HandleCollapse)
	stateGroup.POST("/viewport", handlers.State.HandleViewport)
	stateGroup.POST("/colors", handlers.State.HandleColors)
	stateGroup.GET("/groups", handlers.State.HandleGetGroups)
	stateGroup.POST("/positions", handlers.State.HandlePositions)
	stateGroup.PUT("/settings", handlers.State.HandleUpdateSettings)
	stateGroup.PUT("/filters", handlers.State.HandleUpdateFilters)

	// Snapshot routes
	snapGroup := e.Group("/api/snapshots")
	snapGroup.GET("", handlers.Snapshots.HandleListSnapshots)
	snapGroup.POST("", handlers.Snapshots.HandleSaveSnapshot)
	snapGroup.GET("/export", handlers.Snapshots.HandleExportAll)
	snapGroup.POST("/import", handlers.Snapshots.HandleImportSnapshots)
	snapGroup.POST("/:id/load", handlers.Snapshots.HandleLoadSnapshot)
	snapGroup.PUT("/:id", handlers.Snapshots.HandleRenameSnapshot)
	snapGroup.DELETE("/:id", handlers.Snapshots.HandleDeleteSnapshot)
	snapGroup.GET("/:id/export", handlers.Snapshots.HandleExportSnapshot)
	snapGroup.POST("/:id/share", handlers.Snapshots.HandleShareSnapshot)

	// Auto-save routes
	autoGroup := e.Group("/api/autosave")
	autoGroup.PUT("", handlers.Snapshots.HandleSetAutoSave)
	autoGroup.POST("/flush", handlers.Snapshots.HandleFlush)
}

// RegisterWebSocketRoutes registers WebSocket routes
func RegisterWebSocketRoutes(e *echo.Echo, handlers *Handlers) {
	e.GET("/api/ws", handlers.Hub.HandleWebSocket)
}
