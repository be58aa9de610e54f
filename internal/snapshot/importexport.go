package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/models"
)

// ExportSnapshot serializes one snapshot (auto-save included) into a
// downloadable document tagged with the single-export marker.
func (m *Manager) ExportSnapshot(id string) (models.SingleExport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap, ok := m.resolve(id)
	if !ok {
		m.notifier.Error("Snapshot not found.")
		return models.SingleExport{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return models.SingleExport{
		Marker:   true,
		Version:  models.ExportVersion,
		Exported: m.now().UnixMilli(),
		Snapshot: snap,
	}, nil
}

// ExportAll serializes the whole collection, including the auto-save slot
// and the auto-save toggle flag, tagged with the bulk-export marker.
func (m *Manager) ExportAll() models.BulkExport {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshots := append([]models.Snapshot(nil), m.doc.Snapshots...)
	out := models.BulkExport{
		Marker:          true,
		Version:         models.ExportVersion,
		Exported:        m.now().UnixMilli(),
		Count:           len(snapshots),
		Snapshots:       snapshots,
		AutoSaveEnabled: m.doc.AutoSaveEnabled,
	}
	if m.doc.LastAutoSave != nil {
		snap := *m.doc.LastAutoSave
		out.LastAutoSave = &snap
	}
	return out
}

// importProbe sniffs the format marker of an import payload.
type importProbe struct {
	Single bool `json:"erdVisualizerSnapshot"`
	Bulk   bool `json:"erdVisualizerSnapshotsExport"`
}

// Import merges snapshots from an exported JSON document. Malformed or
// unmarked payloads are rejected at the boundary with a toast and never
// partially applied. Imported snapshots get fresh ids (imported ids are
// never trusted, they may collide with local ones) and names disambiguated
// against both the local collection and the rest of the import batch.
// Capacity eviction then keeps the newest snapshots across the merged set.
func (m *Manager) Import(data []byte) (int, error) {
	var probe importProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		m.notifier.Error("Could not read snapshot file.")
		return 0, fmt.Errorf("parsing import payload: %w", err)
	}

	var incoming []models.Snapshot
	switch {
	case probe.Single:
		var doc models.SingleExport
		if err := json.Unmarshal(data, &doc); err != nil {
			m.notifier.Error("Could not read snapshot file.")
			return 0, fmt.Errorf("parsing single export: %w", err)
		}
		incoming = []models.Snapshot{doc.Snapshot}
	case probe.Bulk:
		var doc models.BulkExport
		if err := json.Unmarshal(data, &doc); err != nil {
			m.notifier.Error("Could not read snapshot file.")
			return 0, fmt.Errorf("parsing bulk export: %w", err)
		}
		incoming = doc.Snapshots
	default:
		m.notifier.Error("Unrecognized snapshot file.")
		return 0, ErrUnrecognizedImport
	}

	if len(incoming) == 0 {
		m.notifier.Info("Snapshot file contained no snapshots.")
		return 0, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	taken := make(map[string]struct{}, len(m.doc.Snapshots)+len(incoming))
	for _, s := range m.doc.Snapshots {
		taken[s.Name] = struct{}{}
	}

	for _, snap := range incoming {
		snap.ID = m.newID()
		snap.Name = disambiguate(snap.Name, taken)
		taken[snap.Name] = struct{}{}
		if snap.Version == 0 {
			snap.Version = models.ExportVersion
		}
		m.doc.Snapshots = append(m.doc.Snapshots, snap)
	}

	m.evictOldest()

	if err := m.persist(); err != nil {
		return 0, err
	}
	m.notifier.Success(fmt.Sprintf("Imported %d snapshots", len(incoming)))
	return len(incoming), nil
}
