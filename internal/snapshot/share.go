package snapshot

import (
	"fmt"

	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/models"
	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/share"
)

// Share encodes a minimal view of a snapshot's state into a URL fragment
// and copies the link to the clipboard. The minimal state deliberately
// excludes bulky per-field and per-color data so the URL stays small.
// Sharing never mutates snapshot state, so every failure path leaves the
// manager untouched.
func (m *Manager) Share(id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap, ok := m.resolve(id)
	if !ok {
		m.notifier.Error("Snapshot not found.")
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	minimal := minimalState(snap.State)
	token, err := share.Encode(minimal)
	if err != nil {
		m.notifier.Error("Failed to build share link.")
		return "", err
	}

	url := share.BuildURL(m.shareBaseURL, token)
	if len(url) > ShareMaxLength {
		m.notifier.Error(fmt.Sprintf(
			"Share link is too long (%d characters). Reduce the diagram and try again.", len(url)))
		return "", ErrShareTooLong
	}
	if len(url) > ShareWarnLength {
		m.notifier.Warning("Share link is very long and may not work in every browser.")
	}

	if m.clipboard != nil {
		if err := m.clipboard.Write(url); err != nil {
			// Clipboard denial is an external failure: report it, hand the
			// URL back anyway.
			m.notifier.Error("Could not copy the share link to the clipboard.")
			fmt.Printf("[Snapshots] Clipboard write failed: %v\n", err)
			return url, nil
		}
	}

	if len(url) <= ShareWarnLength {
		m.notifier.Success("Share link copied to clipboard.")
	}
	return url, nil
}

func minimalState(st models.SerializableState) models.MinimalState {
	return models.MinimalState{
		SelectedEntities: st.SelectedEntities,
		Positions:        st.Positions,
		LayoutMode:       st.LayoutMode,
		Zoom:             st.Zoom,
		Pan:              st.Pan,
		SearchFilter:     st.SearchFilter,
		PublisherFilter:  st.PublisherFilter,
		SolutionFilter:   st.SolutionFilter,
		DarkMode:         st.DarkMode,
	}
}
