// handlers_snapshots.go - Snapshot persistence operation handlers
package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/snapshot"
)

// maxImportBytes bounds the import payload; a snapshot export is far below
// this even at capacity.
const maxImportBytes = 32 << 20

// SnapshotHandlerImpl implements the SnapshotHandler interface
type SnapshotHandlerImpl struct {
	manager *snapshot.Manager
}

// NewSnapshotHandler creates a new snapshot handler instance
func NewSnapshotHandler(manager *snapshot.Manager) SnapshotHandler {
	return &SnapshotHandlerImpl{manager: manager}
}

// HandleListSnapshots returns the snapshot collection, newest first, with
// the auto-save slot and toggle state
func (h *SnapshotHandlerImpl) HandleListSnapshots(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"snapshots":       h.manager.Snapshots(),
		"lastAutoSave":    h.manager.LastAutoSave(),
		"autoSaveEnabled": h.manager.AutoSaveEnabled(),
	})
}

type saveSnapshotRequest struct {
	Name string `json:"name"`
}

// HandleSaveSnapshot captures the current diagram state as a named snapshot
func (h *SnapshotHandlerImpl) HandleSaveSnapshot(c echo.Context) error {
	var req saveSnapshotRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	snap, err := h.manager.Save(req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, snap)
}

type loadSnapshotRequest struct {
	SkipValidation bool `json:"skipValidation,omitempty"`
}

// HandleLoadSnapshot restores a snapshot into the diagram
func (h *SnapshotHandlerImpl) HandleLoadSnapshot(c echo.Context) error {
	var req loadSnapshotRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	if err := h.manager.Load(c.Param("id"), req.SkipValidation); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type renameSnapshotRequest struct {
	Name string `json:"name"`
}

// HandleRenameSnapshot renames a snapshot
func (h *SnapshotHandlerImpl) HandleRenameSnapshot(c echo.Context) error {
	var req renameSnapshotRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	if err := h.manager.Rename(c.Param("id"), req.Name); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// HandleDeleteSnapshot deletes a snapshot or clears the auto-save slot
func (h *SnapshotHandlerImpl) HandleDeleteSnapshot(c echo.Context) error {
	if err := h.manager.Delete(c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// HandleExportSnapshot returns a single snapshot as a downloadable document
func (h *SnapshotHandlerImpl) HandleExportSnapshot(c echo.Context) error {
	doc, err := h.manager.ExportSnapshot(c.Param("id"))
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="snapshot.json"`)
	return c.JSON(http.StatusOK, doc)
}

// HandleExportAll returns the whole collection as a downloadable document
func (h *SnapshotHandlerImpl) HandleExportAll(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="snapshots.json"`)
	return c.JSON(http.StatusOK, h.manager.ExportAll())
}

// HandleImportSnapshots merges snapshots from an exported document. The
// body is the raw export file, single or bulk.
func (h *SnapshotHandlerImpl) HandleImportSnapshots(c echo.Context) error {
	data, err := io.ReadAll(io.LimitReader(c.Request().Body, maxImportBytes))
	if err != nil {
		return NewBadRequestError("failed to read import payload", err)
	}

	count, err := h.manager.Import(data)
	if err != nil {
		if errors.Is(err, snapshot.ErrUnrecognizedImport) {
			return err
		}
		return NewBadRequestError("could not read snapshot file", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"imported": count,
	})
}

// HandleShareSnapshot builds a share link for a snapshot
func (h *SnapshotHandlerImpl) HandleShareSnapshot(c echo.Context) error {
	url, err := h.manager.Share(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"url": url,
	})
}

type autoSaveRequest struct {
	Enabled bool `json:"enabled"`
}

// HandleSetAutoSave flips the auto-save toggle
func (h *SnapshotHandlerImpl) HandleSetAutoSave(c echo.Context) error {
	var req autoSaveRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	if err := h.manager.ToggleAutoSave(req.Enabled); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"autoSaveEnabled": h.manager.AutoSaveEnabled(),
	})
}

// HandleFlush persists any pending auto-save immediately. The widget calls
// this as an unload beacon, so it must stay cheap and never block on a
// debounce window.
func (h *SnapshotHandlerImpl) HandleFlush(c echo.Context) error {
	h.manager.Flush()
	return c.NoContent(http.StatusNoContent)
}
