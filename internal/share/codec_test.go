package share

import (
	"reflect"
	"strings"
	"testing"

	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/models"
)

func TestCodec_RoundTrip(t *testing.T) {
	st := models.MinimalState{
		SelectedEntities: []string{"account", "contact"},
		Positions: map[string]models.Position{
			"account": {X: 100, Y: 250.5},
		},
		LayoutMode:   models.LayoutModeManual,
		Zoom:         1.3,
		Pan:          models.Pan{X: -40, Y: 12},
		SearchFilter: "acc",
		DarkMode:     true,
	}

	token, err := Encode(st)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, st) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, st)
	}
}

func TestCodec_TokenIsURLSafe(t *testing.T) {
	st := models.MinimalState{
		SelectedEntities: []string{"account", "contact", "opportunity", "systemuser"},
		Positions: map[string]models.Position{
			"account":     {X: 1, Y: 2},
			"contact":     {X: 3, Y: 4},
			"opportunity": {X: 5, Y: 6},
		},
	}
	token, err := Encode(st)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if strings.ContainsAny(token, "+/=#&? ") {
		t.Errorf("token contains URL-unsafe characters: %q", token)
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "%%%"},
		{"not msgpack", "aGVsbG8td29ybGQtbm90LW1zZ3BhY2s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.token); err == nil {
				t.Error("expected error for malformed token")
			}
		})
	}
}

func TestBuildURL(t *testing.T) {
	got := BuildURL("https://crm.example.com/erd", "abc123")
	want := "https://crm.example.com/erd#d=abc123"
	if got != want {
		t.Errorf("BuildURL = %q, want %q", got, want)
	}
}
