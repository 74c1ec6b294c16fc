package graph

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/archiveview/graphview/pkg/logging"
)

// MalformedEdgeError describes an edge record dropped during load
type MalformedEdgeError struct {
	Source string
	Target string
	Reason string
}

func (e *MalformedEdgeError) Error() string {
	return fmt.Sprintf("malformed edge %s--%s: %s", e.Source, e.Target, e.Reason)
}

// checkEdge returns nil when the edge record is usable, or the reason it
// must be dropped
func checkEdge(ep EdgePayload, nodeByID map[string]*Node) *MalformedEdgeError {
	reason := ""
	switch {
	case ep.Source == "" || ep.Target == "":
		reason = "missing endpoint id"
	case nodeByID[ep.Source] == nil:
		reason = "unknown source id"
	case nodeByID[ep.Target] == nil:
		reason = "unknown target id"
	case ep.Source == ep.Target:
		reason = "self loop"
	case ep.Weight < 1:
		reason = "weight below 1"
	default:
		for _, c := range ep.Contexts {
			if !ValidContext(c) {
				reason = "unknown context " + c
			}
		}
	}
	if reason == "" {
		return nil
	}
	return &MalformedEdgeError{Source: ep.Source, Target: ep.Target, Reason: reason}
}

// Build assembles an immutable Dataset from a validated payload.
//
// Malformed edges (unknown endpoint ids, non-positive weights, unknown
// contexts) are dropped here and logged, never treated as fatal: one bad
// record must not blank the whole view. Node degrees are computed from
// the surviving edges.
func Build(p *Payload, logger logging.Logger) (*Dataset, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	loadID := uuid.NewString()
	log := logger.With(logging.Component("graph"), logging.LoadID(loadID))

	nodeByID := make(map[string]*Node, len(p.Nodes))
	nodes := make([]*Node, 0, len(p.Nodes))
	for _, np := range p.Nodes {
		if nodeByID[np.ID] != nil {
			log.Warn("duplicate node id, keeping first", logging.EntityID(np.ID))
			continue
		}
		n := &Node{
			ID:            np.ID,
			Name:          np.Name,
			Categories:    append([]string(nil), np.Categories...),
			IsBillionaire: np.IsBillionaire,
			categorySet:   make(map[string]struct{}, len(np.Categories)),
		}
		for _, c := range np.Categories {
			n.categorySet[c] = struct{}{}
		}
		nodeByID[n.ID] = n
		nodes = append(nodes, n)
	}

	edges := make([]*Edge, 0, len(p.Edges))
	dropped := 0
	for _, ep := range p.Edges {
		if merr := checkEdge(ep, nodeByID); merr != nil {
			dropped++
			log.Warn("dropping malformed edge",
				logging.EdgeKey(ep.Source, ep.Target),
				logging.String("reason", merr.Reason))
			continue
		}
		contexts := make([]EdgeContext, 0, len(ep.Contexts))
		for _, c := range ep.Contexts {
			contexts = append(contexts, EdgeContext(c))
		}
		edges = append(edges, &Edge{
			Source:   ep.Source,
			Target:   ep.Target,
			Weight:   ep.Weight,
			Contexts: contexts,
		})
	}

	d := &Dataset{
		Nodes:    nodes,
		Edges:    edges,
		LoadID:   loadID,
		LoadedAt: time.Now(),
		nodeByID: nodeByID,
		incident: make(map[string][]int, len(nodes)),
		dropped:  dropped,
	}

	// Degree and adjacency from surviving edges only. The wire payload
	// carries a connection_count, but a count that disagrees with the
	// edges actually drawn would make node sizing lie about the scene.
	for i, e := range edges {
		d.incident[e.Source] = append(d.incident[e.Source], i)
		d.incident[e.Target] = append(d.incident[e.Target], i)
		nodeByID[e.Source].ConnCount++
		nodeByID[e.Target].ConnCount++
	}

	d.Categories = collectCategories(nodes)
	d.buckets = NewWeightBuckets(edges)

	log.Info("dataset loaded",
		logging.NodeCount(len(nodes)),
		logging.EdgeCount(len(edges)),
		logging.Int("dropped_edges", dropped))
	return d, nil
}

// collectCategories returns the sorted distinct category vocabulary
func collectCategories(nodes []*Node) []string {
	seen := make(map[string]struct{})
	for _, n := range nodes {
		for _, c := range n.Categories {
			seen[c] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
