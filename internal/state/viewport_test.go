package state

import (
	"testing"

	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/models"
)

func TestViewport_ZoomClamping(t *testing.T) {
	v := NewViewport()

	// Any number of zoom-ins stays at or below the ceiling.
	for i := 0; i < 50; i++ {
		v.ZoomIn()
	}
	if v.Zoom != MaxZoom {
		t.Errorf("expected zoom clamped to %v, got %v", MaxZoom, v.Zoom)
	}

	for i := 0; i < 50; i++ {
		v.ZoomOut()
	}
	if v.Zoom != MinZoom {
		t.Errorf("expected zoom clamped to %v, got %v", MinZoom, v.Zoom)
	}
}

func TestViewport_OvershootLandsOnBoundary(t *testing.T) {
	v := NewViewport()
	v.SetZoom(MaxZoom - 0.05)
	v.ZoomIn()
	if v.Zoom != MaxZoom {
		t.Errorf("overshoot must clamp to exactly %v, got %v", MaxZoom, v.Zoom)
	}

	v.SetZoom(MinZoom + 0.05)
	v.ZoomOut()
	if v.Zoom != MinZoom {
		t.Errorf("overshoot must clamp to exactly %v, got %v", MinZoom, v.Zoom)
	}
}

func TestViewport_SetZoomClamps(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"within range", 1.5, 1.5},
		{"above max", 10, MaxZoom},
		{"below min", 0.01, MinZoom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewport()
			v.SetZoom(tt.in)
			if v.Zoom != tt.want {
				t.Errorf("SetZoom(%v) = %v, want %v", tt.in, v.Zoom, tt.want)
			}
		})
	}
}

func TestViewport_Reset(t *testing.T) {
	v := NewViewport()
	v.SetZoom(1.7)
	v.SetPan(models.Pan{X: 120, Y: -40})

	v.Reset()

	if v.Zoom != DefaultZoom {
		t.Errorf("expected default zoom %v after reset, got %v", DefaultZoom, v.Zoom)
	}
	if v.Pan != (models.Pan{}) {
		t.Errorf("expected origin pan after reset, got %+v", v.Pan)
	}
}
