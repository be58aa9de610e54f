// Package state implements the client-observable diagram state: viewport,
// entity selection, color grouping, and the aggregate that composes them
// behind the canonical serialize/restore contract.
package state

import "github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/models"

// Zoom bounds and defaults for the diagram viewport.
const (
	DefaultZoom = 1.0
	ZoomStep    = 0.1
	MinZoom     = 0.25
	MaxZoom     = 2.0
)

// Viewport holds the zoom level and pan offset of the canvas. It is a pure
// value holder: no error conditions, no side effects beyond the in-memory
// change that downstream rendering collaborators observe.
type Viewport struct {
	Zoom float64
	Pan  models.Pan
}

// NewViewport returns a viewport at the default zoom and origin pan.
func NewViewport() *Viewport {
	return &Viewport{Zoom: DefaultZoom}
}

// ZoomIn increases zoom by one step, clamping to MaxZoom. Overshoot lands on
// the exact boundary value.
func (v *Viewport) ZoomIn() {
	v.SetZoom(v.Zoom + ZoomStep)
}

// ZoomOut decreases zoom by one step, clamping to MinZoom.
func (v *Viewport) ZoomOut() {
	v.SetZoom(v.Zoom - ZoomStep)
}

// SetZoom sets the zoom level directly, clamped into [MinZoom, MaxZoom].
func (v *Viewport) SetZoom(z float64) {
	if z > MaxZoom {
		z = MaxZoom
	}
	if z < MinZoom {
		z = MinZoom
	}
	v.Zoom = z
}

// SetPan sets the pan offset directly.
func (v *Viewport) SetPan(p models.Pan) {
	v.Pan = p
}

// Reset restores zoom and pan to their defaults.
func (v *Viewport) Reset() {
	v.Zoom = DefaultZoom
	v.Pan = models.Pan{}
}
