// Package snapshot implements persistence and sharing of diagram sessions:
// named snapshots with capacity eviction, a debounced auto-save slot, schema
// validation against live metadata, JSON import/export, and compact
// URL-based sharing.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/models"
	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/notify"
	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/state"
	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/storage"
)

// StorageKey is the single persistence key holding the snapshot document.
const StorageKey = "erd-visualizer-snapshots"

// MaxSnapshots caps the named snapshot collection. Saving past the cap
// evicts the oldest snapshot by timestamp, silently.
const MaxSnapshots = 20

// AutoSaveDelay is the debounce window: a burst of edits collapses to one
// auto-save write at quiescence.
const AutoSaveDelay = 2 * time.Second

// Share URL length guards. Past the soft limit the share still proceeds with
// a warning; past the hard limit it aborts, since very long URLs fail in
// some browsers and proxies.
const (
	ShareWarnLength = 2000
	ShareMaxLength  = 8000
)

// ErrNotFound is returned when a snapshot id cannot be resolved.
var ErrNotFound = errors.New("snapshot not found")

// ErrEmptyName is returned by Rename for names that are empty after trim.
var ErrEmptyName = errors.New("snapshot name is empty")

// ErrUnrecognizedImport is returned for import payloads missing both format
// markers.
var ErrUnrecognizedImport = errors.New("unrecognized snapshot file")

// ErrShareTooLong is returned when the encoded share URL exceeds the hard
// maximum length.
var ErrShareTooLong = errors.New("share URL exceeds maximum length")

// Clipboard is the external clipboard collaborator used by Share. Failures
// are caught and reported, never propagated as panics.
type Clipboard interface {
	Write(text string) error
}

// Options configures a Manager. Zero values fall back to the documented
// defaults.
type Options struct {
	MaxSnapshots  int
	AutoSaveDelay time.Duration
	ShareBaseURL  string
	Clipboard     Clipboard
}

// Manager owns the snapshot collection. The persistence collaborator only
// ever sees opaque serialized copies of the document.
type Manager struct {
	mu       sync.Mutex
	store    storage.Store
	diagram  *state.Diagram
	notifier *notify.Notifier

	// mirrored copy of doc.AutoSaveEnabled readable without the lock; the
	// change hook fires while the diagram holds its own lock and must stay
	// cheap.
	autoSave atomic.Bool

	clipboard    Clipboard
	shareBaseURL string
	maxSnapshots int

	doc           models.SnapshotDocument
	deb           *debouncer
	lastAutoSaved string // canonical JSON of the last auto-saved state

	now   func() time.Time
	newID func() string
}

// NewManager loads the persisted snapshot document (a malformed document is
// logged and replaced, never fatal) and subscribes to the aggregate's change
// hook for auto-save.
func NewManager(store storage.Store, diagram *state.Diagram, notifier *notify.Notifier, opts Options) *Manager {
	if opts.MaxSnapshots <= 0 {
		opts.MaxSnapshots = MaxSnapshots
	}
	if opts.AutoSaveDelay <= 0 {
		opts.AutoSaveDelay = AutoSaveDelay
	}

	m := &Manager{
		store:        store,
		diagram:      diagram,
		notifier:     notifier,
		clipboard:    opts.Clipboard,
		shareBaseURL: opts.ShareBaseURL,
		maxSnapshots: opts.MaxSnapshots,
		now:          time.Now,
		newID:        func() string { return uuid.New().String() },
	}
	m.deb = newDebouncer(opts.AutoSaveDelay, m.Flush)

	m.loadDocument()

	diagram.OnChange(m.observeChange)
	return m
}

func (m *Manager) loadDocument() {
	raw, ok, err := m.store.Get(StorageKey)
	if err != nil {
		fmt.Printf("[Snapshots] Warning: failed to read stored document: %v\n", err)
		return
	}
	if !ok {
		return
	}
	var doc models.SnapshotDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		fmt.Printf("[Snapshots] Warning: discarding malformed stored document: %v\n", err)
		return
	}
	m.doc = doc
	m.autoSave.Store(doc.AutoSaveEnabled)
	if doc.LastAutoSave != nil {
		if raw, err := canonicalState(doc.LastAutoSave.State); err == nil {
			m.lastAutoSaved = raw
		}
	}
	fmt.Printf("[Snapshots] Loaded %d snapshots (auto-save enabled: %v)\n",
		len(doc.Snapshots), doc.AutoSaveEnabled)
}

// persist writes the document through the persistence collaborator and
// converts failures into user-visible toasts. Quota failures instruct the
// user to free space; nothing is retried.
func (m *Manager) persist() error {
	raw, err := json.Marshal(m.doc)
	if err != nil {
		return fmt.Errorf("encoding snapshot document: %w", err)
	}
	if err := m.store.Set(StorageKey, string(raw)); err != nil {
		if errors.Is(err, storage.ErrQuotaExceeded) {
			m.notifier.Error("Storage is full. Delete or export snapshots to free space.")
		} else {
			m.notifier.Error("Failed to save snapshots.")
		}
		fmt.Printf("[Snapshots] Persist failed: %v\n", err)
		return err
	}
	return nil
}

// Save captures the current diagram state under the given name. An empty
// name gets a timestamp-derived default; colliding names get a numeric
// suffix. At capacity the single oldest snapshot by timestamp is evicted.
func (m *Manager) Save(name string) (models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		name = "Snapshot " + m.now().Format("2006-01-02 15:04:05")
	}
	name = m.uniqueName(name, "")

	// State is captured eagerly: the snapshot reflects the diagram at the
	// moment of the call, not at persist time.
	snap := models.Snapshot{
		ID:        m.newID(),
		Name:      name,
		Timestamp: m.now().UnixMilli(),
		Version:   models.ExportVersion,
		State:     m.diagram.Serializable(),
	}

	m.doc.Snapshots = append(m.doc.Snapshots, snap)
	m.evictOldest()

	if err := m.persist(); err != nil {
		return snap, err
	}
	m.notifier.Success(fmt.Sprintf("Saved snapshot %q", name))
	return snap, nil
}

// evictOldest removes oldest-by-timestamp snapshots until the collection is
// within capacity. Eviction is silent; it is bookkeeping, not an error.
func (m *Manager) evictOldest() {
	for len(m.doc.Snapshots) > m.maxSnapshots {
		oldest := 0
		for i, s := range m.doc.Snapshots {
			if s.Timestamp < m.doc.Snapshots[oldest].Timestamp {
				oldest = i
			}
		}
		evicted := m.doc.Snapshots[oldest]
		m.doc.Snapshots = append(m.doc.Snapshots[:oldest], m.doc.Snapshots[oldest+1:]...)
		fmt.Printf("[Snapshots] Evicted oldest snapshot %q to stay within capacity\n", evicted.Name)
	}
}

// resolve finds a snapshot by id. The auto-save id falls back to the last
// auto-save record when no named snapshot matches it.
func (m *Manager) resolve(id string) (models.Snapshot, bool) {
	for _, s := range m.doc.Snapshots {
		if s.ID == id {
			return s, true
		}
	}
	if id == models.AutoSaveID && m.doc.LastAutoSave != nil {
		return *m.doc.LastAutoSave, true
	}
	return models.Snapshot{}, false
}

// Load restores a snapshot into the diagram. Unless skipValidation is set,
// the state is validated against live metadata first; on drift the invalid
// entries are filtered out and the load proceeds with a warning carrying the
// skipped counts. Loading is never all-or-nothing.
func (m *Manager) Load(id string, skipValidation bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap, ok := m.resolve(id)
	if !ok {
		m.notifier.Error("Snapshot not found.")
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	st := snap.State
	if !skipValidation {
		result := ValidateState(st, m.diagram.Entities())
		if !result.Valid() {
			st = FilterInvalidEntries(st, m.diagram.Entities())
			m.notifier.Warning(fmt.Sprintf(
				"Loaded %q with %d missing entities and %d missing fields skipped",
				snap.Name, len(result.MissingEntities), len(result.MissingFields)))
			m.diagram.Restore(st)
			return nil
		}
	}

	m.diagram.Restore(st)
	m.notifier.Success(fmt.Sprintf("Loaded snapshot %q", snap.Name))
	return nil
}

// Rename changes a snapshot's name. Empty-after-trim names are rejected
// without mutation; colliding names are disambiguated against the other
// snapshots.
func (m *Manager) Rename(id, newName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	newName = strings.TrimSpace(newName)
	if newName == "" {
		m.notifier.Error("Snapshot name cannot be empty.")
		return ErrEmptyName
	}

	for i := range m.doc.Snapshots {
		if m.doc.Snapshots[i].ID != id {
			continue
		}
		m.doc.Snapshots[i].Name = m.uniqueName(newName, id)
		if err := m.persist(); err != nil {
			return err
		}
		m.notifier.Success(fmt.Sprintf("Renamed snapshot to %q", m.doc.Snapshots[i].Name))
		return nil
	}

	m.notifier.Error("Snapshot not found.")
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Delete removes a snapshot unconditionally. The auto-save id clears the
// auto-save slot.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.doc.Snapshots {
		if m.doc.Snapshots[i].ID != id {
			continue
		}
		name := m.doc.Snapshots[i].Name
		m.doc.Snapshots = append(m.doc.Snapshots[:i], m.doc.Snapshots[i+1:]...)
		if err := m.persist(); err != nil {
			return err
		}
		m.notifier.Success(fmt.Sprintf("Deleted snapshot %q", name))
		return nil
	}

	if id == models.AutoSaveID && m.doc.LastAutoSave != nil {
		m.doc.LastAutoSave = nil
		m.lastAutoSaved = ""
		if err := m.persist(); err != nil {
			return err
		}
		m.notifier.Success("Deleted auto-save.")
		return nil
	}

	m.notifier.Error("Snapshot not found.")
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Snapshots returns the named snapshots, newest first.
func (m *Manager) Snapshots() []models.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := append([]models.Snapshot(nil), m.doc.Snapshots...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out
}

// LastAutoSave returns the auto-save record, if any.
func (m *Manager) LastAutoSave() *models.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.doc.LastAutoSave == nil {
		return nil
	}
	snap := *m.doc.LastAutoSave
	return &snap
}

// AutoSaveEnabled reports the persisted auto-save flag.
func (m *Manager) AutoSaveEnabled() bool {
	return m.autoSave.Load()
}

// ToggleAutoSave flips the persisted auto-save flag.
func (m *Manager) ToggleAutoSave(enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.doc.AutoSaveEnabled = enabled
	m.autoSave.Store(enabled)
	if err := m.persist(); err != nil {
		return err
	}
	if enabled {
		m.notifier.Info("Auto-save enabled.")
	} else {
		m.notifier.Info("Auto-save disabled.")
	}
	return nil
}

// observeChange is the aggregate's change hook: each qualifying state change
// restarts the debounce window.
func (m *Manager) observeChange() {
	if !m.autoSave.Load() {
		return
	}
	m.deb.Trigger()
}

// Flush performs the auto-save synchronously, bypassing any pending
// debounce. It is the single persistence routine shared by the timer, the
// widget's unload beacon, and server shutdown. State that deep-equals the
// previously persisted form is skipped to avoid redundant writes.
func (m *Manager) Flush() {
	if !m.autoSave.Load() {
		return
	}
	m.deb.Cancel()

	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.diagram.Serializable()
	raw, err := canonicalState(st)
	if err != nil {
		fmt.Printf("[Snapshots] Auto-save encode failed: %v\n", err)
		return
	}
	if raw == m.lastAutoSaved {
		return
	}

	m.doc.LastAutoSave = &models.Snapshot{
		ID:        models.AutoSaveID,
		Name:      "Auto-save",
		Timestamp: m.now().UnixMilli(),
		Version:   models.ExportVersion,
		State:     st,
	}
	if err := m.persist(); err != nil {
		// Best effort: failures are reported, next change tries again.
		return
	}
	m.lastAutoSaved = raw
}

// Close flushes any pending auto-save and stops the debounce timer.
func (m *Manager) Close() {
	m.Flush()
	m.deb.Stop()
}

// uniqueName disambiguates a name against the sibling snapshots, excluding
// the snapshot being renamed, by suffixing a counter until unique.
func (m *Manager) uniqueName(name, excludeID string) string {
	taken := make(map[string]struct{}, len(m.doc.Snapshots))
	for _, s := range m.doc.Snapshots {
		if s.ID != excludeID {
			taken[s.Name] = struct{}{}
		}
	}
	return disambiguate(name, taken)
}

// disambiguate appends " (n)" to name until it is absent from taken.
func disambiguate(name string, taken map[string]struct{}) string {
	if _, ok := taken[name]; !ok {
		return name
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", name, n)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}

// canonicalState renders a state as deterministic JSON for deep value
// comparison. Go's JSON encoder sorts map keys, so structurally equal states
// encode identically.
func canonicalState(st models.SerializableState) (string, error) {
	raw, err := json.Marshal(st)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
