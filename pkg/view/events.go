package view

import (
	"github.com/archiveview/graphview/pkg/graph"
)

// Event is a single input to the view reducer. All interaction (click,
// hover, zoom, filter edits, load results) flows through Dispatch as
// events; there are no side entry points into the state.
type Event interface {
	isEvent()
}

// DatasetLoaded replaces the session dataset wholesale and reheats the
// simulation. This is the only event that restarts layout.
type DatasetLoaded struct {
	Dataset *graph.Dataset
}

// FetchFailed enters the fetch-error phase with a retry action
type FetchFailed struct {
	Err error
}

// RetryRequested re-enters the loading phase; the surrounding
// application performs the actual refetch
type RetryRequested struct{}

// FilterEdit carries every field changed by a single user action. Nil
// fields are untouched. Batching all changes of one action into one
// event keeps FilterState updates logically atomic: one recompute per
// user action, never one per field.
type FilterEdit struct {
	SearchQuery        *string
	ToggleCategory     *string // flips membership in the selected set
	MinConnectionCount *int
	MinEdgeWeight      *int

	// Continuous marks typing and slider drags: the recompute is
	// debounced instead of firing per keystroke or per pixel
	Continuous bool
}

// ResetFilters restores the default criteria (empty query, no
// categories, zero thresholds). Zoom is unaffected, so the zoom-derived
// auto-threshold may still apply.
type ResetFilters struct{}

// ZoomChanged updates the zoom scale. Never debounced: the density
// controller must react within one render frame.
type ZoomChanged struct {
	Scale float64
}

// PanChanged moves the camera center in world coordinates
type PanChanged struct {
	CenterX float64
	CenterY float64
}

// PointerMoved drives transient hover state via scene hit-testing
type PointerMoved struct {
	X, Y float64
}

// PointerLeft clears the hover state
type PointerLeft struct{}

// Clicked drives the selection state machine via scene hit-testing
type Clicked struct {
	X, Y float64
}

// ClearSelection returns the selection machine to NONE
type ClearSelection struct{}

// recomputeRequested is the internal debounce-expiry event; stale
// generations are discarded on arrival
type recomputeRequested struct {
	generation uint64
}

func (DatasetLoaded) isEvent()      {}
func (FetchFailed) isEvent()        {}
func (RetryRequested) isEvent()     {}
func (FilterEdit) isEvent()         {}
func (ResetFilters) isEvent()       {}
func (ZoomChanged) isEvent()        {}
func (PanChanged) isEvent()         {}
func (PointerMoved) isEvent()       {}
func (PointerLeft) isEvent()        {}
func (Clicked) isEvent()            {}
func (ClearSelection) isEvent()     {}
func (recomputeRequested) isEvent() {}

