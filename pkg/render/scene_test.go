package render

import (
	"math"
	"testing"

	"github.com/archiveview/graphview/pkg/filter"
	"github.com/archiveview/graphview/pkg/graph"
	"github.com/archiveview/graphview/pkg/layout"
)

func testDataset(t *testing.T) *graph.Dataset {
	t.Helper()
	p := &graph.Payload{
		Nodes: []graph.NodePayload{
			{ID: "a", Name: "Alice"},
			{ID: "b", Name: "Bram", IsBillionaire: true},
			{ID: "c", Name: "Cora"},
		},
		Edges: []graph.EdgePayload{
			{Source: "a", Target: "b", Weight: 5, Contexts: []string{"flight_log"}},
			{Source: "b", Target: "c", Weight: 60},
		},
	}
	d, err := graph.Build(p, nil)
	if err != nil {
		t.Fatalf("building dataset: %v", err)
	}
	return d
}

func testPositions() map[string]layout.Position {
	return map[string]layout.Position{
		"a": {X: 100, Y: 100},
		"b": {X: 300, Y: 100},
		"c": {X: 300, Y: 300},
	}
}

func allVisible(d *graph.Dataset) *filter.Result {
	return filter.Apply(d, identityState())
}

func identityState() filter.State {
	s := filter.NewState()
	s.ZoomScale = 2.0
	return s
}

func testCamera() Camera {
	return Camera{Scale: 1.0, CenterX: 200, CenterY: 200, ViewW: 800, ViewH: 600}
}

func TestCamera_RoundTrip(t *testing.T) {
	cam := Camera{Scale: 1.7, CenterX: 420, CenterY: 137, ViewW: 1280, ViewH: 800}
	wx, wy := 333.5, 912.25
	sx, sy := cam.ToScreen(layout.Position{X: wx, Y: wy})
	gx, gy := cam.ToWorld(sx, sy)
	if math.Abs(gx-wx) > 1e-9 || math.Abs(gy-wy) > 1e-9 {
		t.Errorf("roundtrip drifted: (%v, %v) -> (%v, %v)", wx, wy, gx, gy)
	}
}

func TestNodeRadius(t *testing.T) {
	if got := NodeRadius(0); got != nodeRadiusMin {
		t.Errorf("degree 0 should get minimum radius, got %v", got)
	}
	if NodeRadius(9) <= NodeRadius(1) {
		t.Error("radius must grow with connection count")
	}
	if got := NodeRadius(1000000); got != nodeRadiusMax {
		t.Errorf("radius must cap at %v, got %v", nodeRadiusMax, got)
	}
}

func TestEdgeWidth(t *testing.T) {
	tests := []struct {
		weight int
		want   float64
	}{
		{1, EdgeWidthThin},
		{9, EdgeWidthThin},
		{10, EdgeWidthMedium},
		{49, EdgeWidthMedium},
		{50, EdgeWidthThick},
		{500, EdgeWidthThick},
	}
	for _, tt := range tests {
		if got := EdgeWidth(tt.weight); got != tt.want {
			t.Errorf("EdgeWidth(%d) = %v, want %v", tt.weight, got, tt.want)
		}
	}
}

func TestBuildScene_Basic(t *testing.T) {
	d := testDataset(t)
	scene := BuildScene(d, allVisible(d), testPositions(), testCamera(), Highlight{}, NoHover())

	if len(scene.Nodes) != 3 {
		t.Fatalf("expected 3 node sprites, got %d", len(scene.Nodes))
	}
	if len(scene.Edges) != 2 {
		t.Fatalf("expected 2 edge sprites, got %d", len(scene.Edges))
	}

	var alice, bram *NodeSprite
	for i := range scene.Nodes {
		switch scene.Nodes[i].ID {
		case "a":
			alice = &scene.Nodes[i]
		case "b":
			bram = &scene.Nodes[i]
		}
	}
	if alice == nil || bram == nil {
		t.Fatal("missing expected sprites")
	}
	if alice.Color != ColorEntity {
		t.Errorf("plain entity color = %s, want %s", alice.Color, ColorEntity)
	}
	if bram.Color != ColorBillionaire {
		t.Errorf("billionaire color = %s, want %s", bram.Color, ColorBillionaire)
	}
	if alice.Opacity != opacityNormal {
		t.Errorf("expected normal opacity, got %v", alice.Opacity)
	}
}

func TestBuildScene_HeavyEdgeLabel(t *testing.T) {
	d := testDataset(t)
	scene := BuildScene(d, allVisible(d), testPositions(), testCamera(), Highlight{}, NoHover())

	for _, e := range scene.Edges {
		if e.Weight == 60 {
			if e.Label != "60" {
				t.Errorf("heavy edge label = %q, want \"60\"", e.Label)
			}
			if e.LabelX != (e.X1+e.X2)/2 || e.LabelY != (e.Y1+e.Y2)/2 {
				t.Error("label must sit at the edge midpoint")
			}
		}
		if e.Weight == 5 && e.Label != "" {
			t.Errorf("light edge must not carry a label, got %q", e.Label)
		}
	}
}

func TestBuildScene_HighlightDimsOthers(t *testing.T) {
	d := testDataset(t)
	hl := Highlight{
		Nodes: map[string]struct{}{"a": {}, "b": {}},
		Edges: map[int]struct{}{0: {}},
	}
	scene := BuildScene(d, allVisible(d), testPositions(), testCamera(), hl, NoHover())

	for _, n := range scene.Nodes {
		switch n.ID {
		case "a", "b":
			if n.Opacity != opacityHover {
				t.Errorf("highlighted node %s opacity = %v", n.ID, n.Opacity)
			}
		default:
			if n.Opacity != opacityDimmed {
				t.Errorf("unselected node %s should be dimmed, got %v", n.ID, n.Opacity)
			}
		}
	}
	for _, e := range scene.Edges {
		if e.Index == 0 && e.Opacity != opacityHover {
			t.Errorf("highlighted edge opacity = %v", e.Opacity)
		}
		if e.Index != 0 && e.Opacity != opacityDimmed {
			t.Errorf("unselected edge should be dimmed, got %v", e.Opacity)
		}
	}
}

func TestBuildScene_HoverWidensEdge(t *testing.T) {
	d := testDataset(t)
	hover := Hover{EdgeIndex: 1}
	scene := BuildScene(d, allVisible(d), testPositions(), testCamera(), Highlight{}, hover)

	for _, e := range scene.Edges {
		if e.Index == 1 {
			if !e.Hovered {
				t.Error("expected hovered flag")
			}
			if e.Width != EdgeWidth(e.Weight)+hoverStrokePad {
				t.Errorf("hovered edge width = %v", e.Width)
			}
		}
	}
}

func TestBuildScene_SkipsMissingPositions(t *testing.T) {
	d := testDataset(t)
	pos := testPositions()
	delete(pos, "c")

	scene := BuildScene(d, allVisible(d), pos, testCamera(), Highlight{}, NoHover())
	if len(scene.Nodes) != 2 {
		t.Errorf("expected 2 node sprites without a position for c, got %d", len(scene.Nodes))
	}
	// The b-c edge has an unplaced endpoint and must be skipped too
	if len(scene.Edges) != 1 {
		t.Errorf("expected 1 edge sprite, got %d", len(scene.Edges))
	}
}

func TestBuildScene_FilteredOut(t *testing.T) {
	d := testDataset(t)
	s := identityState()
	s.SearchQuery = "alice"
	res := filter.Apply(d, s)

	scene := BuildScene(d, res, testPositions(), testCamera(), Highlight{}, NoHover())
	if len(scene.Nodes) != 1 || scene.Nodes[0].ID != "a" {
		t.Errorf("expected only alice in the scene, got %d nodes", len(scene.Nodes))
	}
	if len(scene.Edges) != 0 {
		t.Errorf("expected no edges, got %d", len(scene.Edges))
	}
}
