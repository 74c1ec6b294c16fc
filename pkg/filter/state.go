package filter

// Fixed product constants. The zoom detail threshold, the zoomed-out
// auto weight floor, and the manual slider range are part of the
// product contract and are not tunable, unlike the physics constants
// in pkg/layout.
const (
	// ZoomDetailThreshold is the zoom scale at which the auto
	// edge-weight threshold relaxes: past it the user has signalled
	// focused interest and full edge detail is worth drawing
	ZoomDetailThreshold = 1.5

	// AutoWeightFloor hides edges lighter than this while zoomed out,
	// where a full-density scene is unreadable
	AutoWeightFloor = 3

	// MinEdgeWeightMax is the upper bound of the manual weight slider
	MinEdgeWeightMax = 20
)

// State is the complete set of user-controlled filter criteria for one
// session. It is owned by the view controller; every field change from a
// single user action is batched into one recompute.
type State struct {
	SearchQuery        string
	SelectedCategories map[string]struct{}
	MinConnectionCount int
	MinEdgeWeight      int
	ZoomScale          float64
}

// NewState returns the unfiltered default state at 1:1 zoom
func NewState() State {
	return State{
		SelectedCategories: make(map[string]struct{}),
		ZoomScale:          1.0,
	}
}

// Reset clears every user criterion. Zoom is a viewport property, not a
// filter, and survives a reset; the zoom-derived auto threshold may
// therefore still hide light edges afterwards.
func (s State) Reset() State {
	return State{
		SelectedCategories: make(map[string]struct{}),
		ZoomScale:          s.ZoomScale,
	}
}

// Clone returns a deep copy, so a superseded recompute cannot observe
// later mutations
func (s State) Clone() State {
	cats := make(map[string]struct{}, len(s.SelectedCategories))
	for c := range s.SelectedCategories {
		cats[c] = struct{}{}
	}
	s.SelectedCategories = cats
	return s
}

// Normalize clamps the manual weight threshold to the slider range and
// floors the connection count at zero
func (s State) Normalize() State {
	if s.MinEdgeWeight < 0 {
		s.MinEdgeWeight = 0
	}
	if s.MinEdgeWeight > MinEdgeWeightMax {
		s.MinEdgeWeight = MinEdgeWeightMax
	}
	if s.MinConnectionCount < 0 {
		s.MinConnectionCount = 0
	}
	if s.ZoomScale <= 0 {
		s.ZoomScale = 1.0
	}
	return s
}

// IsDefault reports whether no user criterion is active
func (s State) IsDefault() bool {
	return s.SearchQuery == "" &&
		len(s.SelectedCategories) == 0 &&
		s.MinConnectionCount == 0 &&
		s.MinEdgeWeight == 0
}

// AutoThreshold maps a zoom scale to the automatic minimum edge weight:
// AutoWeightFloor while zoomed out, zero once the scale crosses
// ZoomDetailThreshold
func AutoThreshold(zoomScale float64) int {
	if zoomScale < ZoomDetailThreshold {
		return AutoWeightFloor
	}
	return 0
}

// EffectiveMinEdgeWeight combines the manual slider with the
// zoom-derived automatic threshold. The stricter of the two always
// wins: a user who sets 10 while zoomed out gets 10, not 3.
func (s State) EffectiveMinEdgeWeight() int {
	auto := AutoThreshold(s.ZoomScale)
	if s.MinEdgeWeight > auto {
		return s.MinEdgeWeight
	}
	return auto
}
