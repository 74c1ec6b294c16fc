package view

import (
	"github.com/archiveview/graphview/pkg/filter"
	"github.com/archiveview/graphview/pkg/graph"
	"github.com/archiveview/graphview/pkg/render"
)

// Phase is the lifecycle phase of the view
type Phase int

const (
	// PhaseLoading means the dataset fetch is in flight; nothing to draw
	PhaseLoading Phase = iota
	// PhaseFetchFailed means the fetch failed; the user sees an error
	// state with a retry action and the simulation was never started
	PhaseFetchFailed
	// PhaseReady means the dataset is loaded and the scene is live
	PhaseReady
	// PhaseNoResults means the dataset is loaded but the current filter
	// matches nothing. Distinct from PhaseFetchFailed so the user can
	// tell "nothing matches" from "the system is broken".
	PhaseNoResults
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseFetchFailed:
		return "fetch_failed"
	case PhaseReady:
		return "ready"
	case PhaseNoResults:
		return "no_results"
	default:
		return "unknown"
	}
}

// SelectionKind tags the selection state machine
type SelectionKind int

const (
	SelectionNone SelectionKind = iota
	SelectionNode
	SelectionEdge
)

// Selection is the persistent click-selection. Unlike hover it
// survives pan and zoom until explicitly changed.
type Selection struct {
	Kind   SelectionKind
	NodeID string // for SelectionNode
	Source string // for SelectionEdge
	Target string
}

// NoSelection returns the empty selection
func NoSelection() Selection {
	return Selection{Kind: SelectionNone}
}

// GraphViewState is the complete mutable state of the view, owned
// exclusively by the Controller. All mutation goes through the
// controller's event dispatch; there are no ambient globals.
type GraphViewState struct {
	Phase   Phase
	Err     error // set in PhaseFetchFailed
	Dataset *graph.Dataset

	Filter  filter.State
	Visible *filter.Result

	Selection Selection
	Hover     render.Hover
	Camera    render.Camera
}

// highlightFor derives the emphasized element sets from a selection: a
// selected node highlights itself plus every incident edge, a selected
// edge highlights only itself and nothing else.
func highlightFor(d *graph.Dataset, sel Selection) render.Highlight {
	hl := render.Highlight{
		Nodes: make(map[string]struct{}),
		Edges: make(map[int]struct{}),
	}
	if d == nil {
		return hl
	}
	switch sel.Kind {
	case SelectionNode:
		hl.Nodes[sel.NodeID] = struct{}{}
		for _, ei := range d.IncidentEdges(sel.NodeID) {
			hl.Edges[ei] = struct{}{}
		}
	case SelectionEdge:
		for _, ei := range d.IncidentEdges(sel.Source) {
			e := d.Edges[ei]
			if e.Touches(sel.Target) {
				hl.Edges[ei] = struct{}{}
			}
		}
	}
	return hl
}
