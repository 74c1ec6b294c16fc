package render

import (
	"fmt"
	"strings"

	"github.com/archiveview/graphview/pkg/graph"
)

// Tooltip renders the hover text for a hit: the entity name for a
// node; weight, endpoint names and source-context breakdown for an
// edge. Empty string for no hit.
func Tooltip(d *graph.Dataset, hit Hit) string {
	switch hit.Kind {
	case HitNode:
		n := d.NodeByID(hit.NodeID)
		if n == nil {
			return ""
		}
		return n.Name
	case HitEdge:
		if hit.EdgeIndex < 0 || hit.EdgeIndex >= d.EdgeCount() {
			return ""
		}
		e := d.Edges[hit.EdgeIndex]
		src := d.NodeByID(e.Source)
		dst := d.NodeByID(e.Target)
		if src == nil || dst == nil {
			return ""
		}
		contexts := make([]string, 0, len(e.Contexts))
		for _, c := range e.Contexts {
			contexts = append(contexts, string(c))
		}
		tip := fmt.Sprintf("%s — %s: %d co-occurrences", src.Name, dst.Name, e.Weight)
		if len(contexts) > 0 {
			tip += " (" + strings.Join(contexts, ", ") + ")"
		}
		return tip
	}
	return ""
}
