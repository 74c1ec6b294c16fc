package graph

import (
	"time"
)

// EdgeContext identifies the archive source a relationship was observed in
type EdgeContext string

const (
	ContextFlightLog   EdgeContext = "flight_log"
	ContextContactBook EdgeContext = "contact_book"
	ContextDocument    EdgeContext = "document"
)

// ValidContext reports whether s is a known edge context
func ValidContext(s string) bool {
	switch EdgeContext(s) {
	case ContextFlightLog, ContextContactBook, ContextDocument:
		return true
	}
	return false
}

// Node is one entity (person or organization) in the relationship network.
// ConnectionCount is the node degree, computed once when the dataset is
// loaded; the filter engine never recomputes it.
type Node struct {
	ID            string
	Name          string
	Categories    []string
	ConnCount     int
	IsBillionaire bool

	categorySet map[string]struct{}
}

// HasCategory reports whether the node carries the given category
func (n *Node) HasCategory(category string) bool {
	_, ok := n.categorySet[category]
	return ok
}

// IntersectsCategories reports whether any of the node's categories is in
// the given set. An empty argument intersects nothing.
func (n *Node) IntersectsCategories(categories map[string]struct{}) bool {
	for c := range categories {
		if _, ok := n.categorySet[c]; ok {
			return true
		}
	}
	return false
}

// Edge is an aggregate co-occurrence relationship between two entities.
// Weight counts documented joint appearances across all contexts.
type Edge struct {
	Source   string
	Target   string
	Weight   int
	Contexts []EdgeContext
}

// Touches reports whether the edge is incident to the given node id
func (e *Edge) Touches(nodeID string) bool {
	return e.Source == nodeID || e.Target == nodeID
}

// Other returns the opposite endpoint of the edge, or "" if nodeID is not
// an endpoint
func (e *Edge) Other(nodeID string) string {
	switch nodeID {
	case e.Source:
		return e.Target
	case e.Target:
		return e.Source
	}
	return ""
}

// Dataset is the immutable session dataset: every node and edge fetched
// for the current view activation. A reload replaces the whole Dataset;
// nothing mutates it in place.
type Dataset struct {
	Nodes []*Node
	Edges []*Edge

	// LoadID tags one fetch for log and metric correlation
	LoadID   string
	LoadedAt time.Time

	// Categories is the distinct, sorted category vocabulary of the
	// dataset, collected at load for filter UI chips
	Categories []string

	nodeByID map[string]*Node
	incident map[string][]int // node id -> indices into Edges
	buckets  *WeightBuckets
	dropped  int
}

// DroppedEdges returns how many malformed edge records were dropped
// while building the dataset
func (d *Dataset) DroppedEdges() int {
	return d.dropped
}

// NodeByID returns the node with the given id, or nil
func (d *Dataset) NodeByID(id string) *Node {
	return d.nodeByID[id]
}

// IncidentEdges returns the indices into Edges of all edges touching the
// given node id. The returned slice must not be modified.
func (d *Dataset) IncidentEdges(nodeID string) []int {
	return d.incident[nodeID]
}

// Buckets returns the precomputed weight buckets for threshold lookups
func (d *Dataset) Buckets() *WeightBuckets {
	return d.buckets
}

// NodeCount returns the number of nodes in the dataset
func (d *Dataset) NodeCount() int {
	return len(d.Nodes)
}

// EdgeCount returns the number of edges in the dataset
func (d *Dataset) EdgeCount() int {
	return len(d.Edges)
}
