package models

// AutoSaveID is the distinguished id of the single auto-save slot. The
// auto-save snapshot is overwritten in place and never promoted to a named
// snapshot automatically.
const AutoSaveID = "auto-save"

// ExportVersion tags exported snapshot documents.
const ExportVersion = 1

// Snapshot is a named, timestamped capture of the full diagram state.
type Snapshot struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Timestamp int64             `json:"timestamp"` // Unix ms
	Version   int               `json:"version"`
	State     SerializableState `json:"state"`
}

// SnapshotDocument is the single JSON document held by the persistence
// collaborator under the fixed storage key.
type SnapshotDocument struct {
	Snapshots       []Snapshot `json:"snapshots"`
	LastAutoSave    *Snapshot  `json:"lastAutoSave,omitempty"`
	AutoSaveEnabled bool       `json:"autoSaveEnabled"`
}

// SingleExport is the downloadable document for one exported snapshot.
// The boolean marker field distinguishes it from bulk exports.
type SingleExport struct {
	Marker   bool     `json:"erdVisualizerSnapshot"`
	Version  int      `json:"version"`
	Exported int64    `json:"exported"` // Unix ms
	Snapshot Snapshot `json:"snapshot"`
}

// BulkExport is the downloadable document for a full snapshot collection,
// including the auto-save slot and the auto-save toggle flag.
type BulkExport struct {
	Marker          bool       `json:"erdVisualizerSnapshotsExport"`
	Version         int        `json:"version"`
	Exported        int64      `json:"exported"` // Unix ms
	Count           int        `json:"count"`
	Snapshots       []Snapshot `json:"snapshots"`
	LastAutoSave    *Snapshot  `json:"lastAutoSave,omitempty"`
	AutoSaveEnabled bool       `json:"autoSaveEnabled"`
}
