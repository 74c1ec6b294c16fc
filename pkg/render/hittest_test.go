package render

import (
	"testing"
)

func hitScene() *Scene {
	return &Scene{
		Nodes: []NodeSprite{
			{ID: "a", X: 100, Y: 100, Radius: 10},
			{ID: "b", X: 115, Y: 100, Radius: 10},
			{ID: "c", X: 400, Y: 400, Radius: 6},
		},
		Edges: []EdgeSprite{
			{Index: 0, X1: 100, Y1: 100, X2: 400, Y2: 100, Width: 2},
			{Index: 1, X1: 100, Y1: 300, X2: 400, Y2: 300, Width: 4.5},
		},
	}
}

func TestHitTest_Node(t *testing.T) {
	s := hitScene()
	hit := s.HitTest(398, 402)
	if hit.Kind != HitNode || hit.NodeID != "c" {
		t.Errorf("expected node c, got %+v", hit)
	}
}

func TestHitTest_NearestNodeWins(t *testing.T) {
	// Point inside both overlapping circles, closer to b
	s := hitScene()
	hit := s.HitTest(110, 100)
	if hit.Kind != HitNode || hit.NodeID != "b" {
		t.Errorf("expected nearest node b, got %+v", hit)
	}
}

func TestHitTest_NodePrecedenceOverEdge(t *testing.T) {
	// Node a sits on edge 0; the node must win
	s := hitScene()
	hit := s.HitTest(100, 100)
	if hit.Kind != HitNode || hit.NodeID != "a" {
		t.Errorf("expected node a over the underlying edge, got %+v", hit)
	}
}

func TestHitTest_EdgeWithinTolerance(t *testing.T) {
	s := hitScene()

	// 4px above edge 1: inside width/2 + tolerance = 6.25
	hit := s.HitTest(250, 296)
	if hit.Kind != HitEdge || hit.EdgeIndex != 1 {
		t.Errorf("expected edge 1, got %+v", hit)
	}

	// 8px above: outside the band
	hit = s.HitTest(250, 292)
	if hit.Kind != HitNone {
		t.Errorf("expected miss outside tolerance, got %+v", hit)
	}
}

func TestHitTest_BeyondSegmentEnd(t *testing.T) {
	// Aligned with edge 1 but 20px past its endpoint
	s := hitScene()
	hit := s.HitTest(420, 300)
	if hit.Kind != HitNone {
		t.Errorf("expected miss beyond segment end, got %+v", hit)
	}
}

func TestHitTest_EmptySpace(t *testing.T) {
	s := hitScene()
	hit := s.HitTest(700, 700)
	if hit.Kind != HitNone || hit.EdgeIndex != -1 {
		t.Errorf("expected NoHit, got %+v", hit)
	}
}

func TestPointSegmentDistance(t *testing.T) {
	tests := []struct {
		name           string
		px, py         float64
		x1, y1, x2, y2 float64
		want           float64
	}{
		{"perpendicular", 5, 3, 0, 0, 10, 0, 3},
		{"past left end", -4, 0, 0, 0, 10, 0, 4},
		{"past right end", 13, 4, 0, 0, 10, 0, 5},
		{"degenerate segment", 3, 4, 0, 0, 0, 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pointSegmentDistance(tt.px, tt.py, tt.x1, tt.y1, tt.x2, tt.y2)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
