package filter

import (
	"strings"

	"github.com/archiveview/graphview/pkg/graph"
)

// Result is the outcome of applying a State to a Dataset: the set of
// visible nodes and the indices of visible edges. It only drives render
// visibility and hit-testability; the physics simulation always runs on
// the full dataset.
type Result struct {
	// NodeIDs holds the ids of every visible node
	NodeIDs map[string]struct{}
	// EdgeIndices holds indices into Dataset.Edges, heaviest first
	EdgeIndices []int
	// Effective is the edge-weight threshold that was applied
	Effective int
}

// NodeVisible reports whether the node id survived the filter
func (r *Result) NodeVisible(id string) bool {
	_, ok := r.NodeIDs[id]
	return ok
}

// Empty reports whether nothing at all matched
func (r *Result) Empty() bool {
	return len(r.NodeIDs) == 0
}

// nodeMatches applies the node-level criteria: name substring match
// (case-insensitive, empty query matches all), category intersection
// (OR semantics, empty selection matches all), and minimum degree.
func nodeMatches(n *graph.Node, s *State, query string) bool {
	if query != "" && !strings.Contains(strings.ToLower(n.Name), query) {
		return false
	}
	if len(s.SelectedCategories) > 0 && !n.IntersectsCategories(s.SelectedCategories) {
		return false
	}
	return n.ConnCount >= s.MinConnectionCount
}

// Apply computes the visible node and edge sets for the given state.
//
// Pure function of (dataset, state): no internal caches, no side
// effects, so applying the same state twice yields identical results.
// One linear pass over the nodes plus one over the edges at or above
// the effective weight threshold.
func Apply(d *graph.Dataset, s State) *Result {
	s = s.Normalize()
	res := &Result{
		NodeIDs:   make(map[string]struct{}, d.NodeCount()),
		Effective: s.EffectiveMinEdgeWeight(),
	}

	query := strings.ToLower(strings.TrimSpace(s.SearchQuery))
	for _, n := range d.Nodes {
		if nodeMatches(n, &s, query) {
			res.NodeIDs[n.ID] = struct{}{}
		}
	}

	// The weight buckets give the candidates at or above the threshold
	// as a prefix, so a high threshold touches few edges
	candidates := d.Buckets().EdgesAtOrAbove(res.Effective)
	res.EdgeIndices = make([]int, 0, len(candidates))
	for _, ei := range candidates {
		e := d.Edges[ei]
		if res.NodeVisible(e.Source) && res.NodeVisible(e.Target) {
			res.EdgeIndices = append(res.EdgeIndices, ei)
		}
	}
	return res
}
