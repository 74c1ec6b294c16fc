package render

import (
	"math"
)

// edgeHitTolerance widens the clickable band around an edge beyond its
// rendered stroke, since thin lines are unusable click targets
const edgeHitTolerance = 4.0

// HitKind tags a hit-test result
type HitKind int

const (
	HitNone HitKind = iota
	HitNode
	HitEdge
)

// Hit is a resolved pointer target
type Hit struct {
	Kind      HitKind
	NodeID    string
	EdgeIndex int // index into the dataset edge slice
}

// NoHit returns the empty hit
func NoHit() Hit {
	return Hit{Kind: HitNone, EdgeIndex: -1}
}

// HitTest resolves the pointer position against the scene: the nearest
// node whose circle contains the point wins; otherwise the nearest edge
// within its widened stroke band. Nodes take precedence, they are drawn
// on top of edges.
func (s *Scene) HitTest(x, y float64) Hit {
	if hit, ok := s.hitNode(x, y); ok {
		return hit
	}
	if hit, ok := s.hitEdge(x, y); ok {
		return hit
	}
	return NoHit()
}

func (s *Scene) hitNode(x, y float64) (Hit, bool) {
	best := NoHit()
	bestDist := math.MaxFloat64
	for i := range s.Nodes {
		n := &s.Nodes[i]
		dx := x - n.X
		dy := y - n.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist <= n.Radius && dist < bestDist {
			best = Hit{Kind: HitNode, NodeID: n.ID, EdgeIndex: -1}
			bestDist = dist
		}
	}
	return best, best.Kind == HitNode
}

func (s *Scene) hitEdge(x, y float64) (Hit, bool) {
	best := NoHit()
	bestDist := math.MaxFloat64
	for i := range s.Edges {
		e := &s.Edges[i]
		dist := pointSegmentDistance(x, y, e.X1, e.Y1, e.X2, e.Y2)
		if dist <= e.Width/2+edgeHitTolerance && dist < bestDist {
			best = Hit{Kind: HitEdge, EdgeIndex: e.Index}
			bestDist = dist
		}
	}
	return best, best.Kind == HitEdge
}

// pointSegmentDistance returns the distance from (px, py) to the
// segment (x1, y1)-(x2, y2)
func pointSegmentDistance(px, py, x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(px-x1, py-y1)
	}
	t := ((px-x1)*dx + (py-y1)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(px-(x1+t*dx), py-(y1+t*dy))
}
