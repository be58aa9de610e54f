package state

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/models"
	"github.com/allandecastro/dataverse-erd-visualizer-sub002/internal/testutil"
)

func newTestDiagram() *Diagram {
	d := NewDiagram(nil)
	d.SetMetadata(testutil.SampleEntities(), testutil.SampleRelationships())
	return d
}

func TestDiagram_FilteredRelationshipsNeedBothEndpoints(t *testing.T) {
	d := newTestDiagram()
	d.SelectEntities([]string{"account", "contact"})

	rels := d.FilteredRelationships()
	if len(rels) != 1 || rels[0].SchemaName != "contact_customer_accounts" {
		t.Fatalf("expected only the contact→account edge, got %v", rels)
	}

	// Deselecting one endpoint drops the edge, never renders it dangling.
	d.DeselectEntities([]string{"contact"})
	if rels := d.FilteredRelationships(); len(rels) != 0 {
		t.Errorf("expected no relationships with one endpoint deselected, got %v", rels)
	}
}

func TestDiagram_FilteredEntities(t *testing.T) {
	d := newTestDiagram()
	d.SelectEntities([]string{"opportunity"})

	ents := d.FilteredEntities()
	if len(ents) != 1 || ents[0].LogicalName != "opportunity" {
		t.Errorf("expected only opportunity, got %v", ents)
	}
}

func TestDiagram_OrderedFields(t *testing.T) {
	d := newTestDiagram()
	d.SelectEntities([]string{"account"})

	// Primary key is implicit even with no field selection at all.
	if got := d.OrderedFields("account"); !reflect.DeepEqual(got, []string{"accountid"}) {
		t.Fatalf("expected implicit primary key, got %v", got)
	}

	d.AddField("account", "name")
	d.AddField("account", "revenue")

	want := []string{"accountid", "name", "revenue"}
	if got := d.OrderedFields("account"); !reflect.DeepEqual(got, want) {
		t.Errorf("first-selected-first-shown order broken: got %v, want %v", got, want)
	}

	// Re-adding an already-present field is idempotent, no reorder.
	d.AddField("account", "name")
	if got := d.OrderedFields("account"); !reflect.DeepEqual(got, want) {
		t.Errorf("idempotent add reordered fields: got %v", got)
	}

	// Removing and re-adding sends the field to the back.
	d.RemoveField("account", "name")
	d.AddField("account", "name")
	want = []string{"accountid", "revenue", "name"}
	if got := d.OrderedFields("account"); !reflect.DeepEqual(got, want) {
		t.Errorf("re-added field should be last: got %v, want %v", got, want)
	}
}

func TestDiagram_CollapseOverridesFieldSelection(t *testing.T) {
	d := newTestDiagram()
	d.SelectEntities([]string{"contact"})
	d.AddField("contact", "fullname")
	d.AddField("contact", "emailaddress1")

	d.ToggleCollapse("contact")
	if got := d.OrderedFields("contact"); !reflect.DeepEqual(got, []string{"contactid"}) {
		t.Errorf("collapsed entity must show only its primary key, got %v", got)
	}

	// Collapse does not mutate field selections.
	d.ToggleCollapse("contact")
	want := []string{"contactid", "fullname", "emailaddress1"}
	if got := d.OrderedFields("contact"); !reflect.DeepEqual(got, want) {
		t.Errorf("field selection lost across collapse: got %v, want %v", got, want)
	}
}

func TestDiagram_CollapseAllExpandAll(t *testing.T) {
	d := newTestDiagram()
	d.SelectEntities([]string{"account", "contact"})

	d.CollapseAll()
	if !d.IsCollapsed("account") || !d.IsCollapsed("contact") {
		t.Error("expected all selected entities collapsed")
	}

	d.ExpandAll()
	if d.IsCollapsed("account") || d.IsCollapsed("contact") {
		t.Error("expected no entities collapsed after ExpandAll")
	}
}

func TestDiagram_SerializeRestoreRoundTrip(t *testing.T) {
	d := newTestDiagram()
	d.SelectEntities([]string{"account", "contact"})
	d.AddField("account", "name")
	d.AddField("account", "revenue")
	d.ToggleCollapse("contact")
	d.SetZoom(1.3)
	d.SetPan(models.Pan{X: 42, Y: -17})
	d.SetSearchFilter("acc")
	d.SetDarkMode(true)
	d.SetEntityColor("account", "#FFADAD")
	d.SetGroupName("#ffadad", "Sales")
	d.SetGroupFilter("#ffadad")
	d.SetEdgeOffset("contact_customer_accounts", 12.5)
	d.SetPosition("account", models.Position{X: 100, Y: 200})

	first := d.Serializable()

	restored := NewDiagram(nil)
	restored.SetMetadata(testutil.SampleEntities(), testutil.SampleRelationships())
	restored.Restore(first)
	second := restored.Serializable()

	// Compare through JSON to get structural equality with map ordering
	// normalized away.
	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Errorf("round trip not idempotent:\n%s\n%s", a, b)
	}
}

func TestDiagram_RestorePromotesManualLayout(t *testing.T) {
	d := newTestDiagram()
	st := models.SerializableState{
		SelectedEntities: []string{"account"},
		LayoutMode:       models.LayoutModeAuto,
		Positions: map[string]models.Position{
			"account": {X: 10, Y: 20},
		},
	}

	d.Restore(st)

	if d.LayoutMode() != models.LayoutModeManual {
		t.Errorf("presence of positions must force manual layout, got %q", d.LayoutMode())
	}
}

func TestDiagram_RestoreDropsDanglingGroupFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter string
		colors map[string]string
		want   string
	}{
		{"dangling color", "#123456", map[string]string{"account": "#ffadad"}, models.GroupFilterAll},
		{"live color", "#ffadad", map[string]string{"account": "#ffadad"}, "#ffadad"},
		{"sentinel all", models.GroupFilterAll, nil, models.GroupFilterAll},
		{"sentinel ungrouped", models.GroupFilterUngrouped, nil, models.GroupFilterUngrouped},
		{"empty", "", nil, models.GroupFilterAll},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDiagram()
			d.Restore(models.SerializableState{
				GroupFilter:  tt.filter,
				EntityColors: tt.colors,
			})
			if got := d.Serializable().GroupFilter; got != tt.want {
				t.Errorf("group filter = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDiagram_RestoreFillsMissingSettings(t *testing.T) {
	d := newTestDiagram()
	// A partial settings record from an older snapshot version.
	d.Restore(models.SerializableState{
		Settings: models.ColorLineSettings{LineNotation: "uml"},
	})

	s := d.Settings()
	if s.LineNotation != "uml" {
		t.Errorf("explicit field overwritten: %q", s.LineNotation)
	}
	if s.LineThickness != models.DefaultLineThickness {
		t.Errorf("missing thickness not defaulted: %d", s.LineThickness)
	}
	if s.CustomTableColor != models.DefaultCustomTableColor {
		t.Errorf("missing color not defaulted: %q", s.CustomTableColor)
	}
}

func TestDiagram_SetPositionForcesManualMode(t *testing.T) {
	d := newTestDiagram()
	if d.LayoutMode() != models.LayoutModeAuto {
		t.Fatalf("expected auto layout initially")
	}
	d.SetPosition("account", models.Position{X: 1, Y: 2})
	if d.LayoutMode() != models.LayoutModeManual {
		t.Errorf("placing an entity must switch to manual layout")
	}
	d.ClearPositions()
	if d.LayoutMode() != models.LayoutModeAuto {
		t.Errorf("clearing placements must return to auto layout")
	}
}

func TestDiagram_OnChangeFiresOnMutation(t *testing.T) {
	d := newTestDiagram()
	calls := 0
	d.OnChange(func() { calls++ })

	d.ToggleEntity("account")
	d.ZoomIn()
	d.SetDarkMode(true)

	if calls != 3 {
		t.Errorf("expected 3 change notifications, got %d", calls)
	}
}
