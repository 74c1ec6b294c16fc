package view

import (
	"time"

	"github.com/archiveview/graphview/pkg/filter"
	"github.com/archiveview/graphview/pkg/graph"
	"github.com/archiveview/graphview/pkg/layout"
	"github.com/archiveview/graphview/pkg/logging"
	"github.com/archiveview/graphview/pkg/metrics"
	"github.com/archiveview/graphview/pkg/render"
)

// NavigateFunc receives the outward openEntityDetail event fired when
// a node is clicked. The surrounding application consumes it; it is
// the engine's only outward call.
type NavigateFunc func(nodeID string)

// Options configures a Controller. Everything is optional except Seed,
// which fixes the layout for reproducibility.
type Options struct {
	Layout   layout.Config
	Seed     int64
	Debounce time.Duration

	Logger   logging.Logger
	Metrics  *metrics.Registry
	Navigate NavigateFunc

	// Enqueue posts an event back onto the owner's dispatch path; it
	// is how debounce expiry re-enters the single-owner loop. When nil,
	// debounced recomputes fire synchronously on flush only.
	Enqueue func(Event)

	ViewportW float64
	ViewportH float64
}

// Controller owns the GraphViewState and is its only writer. It runs
// single-threaded and cooperative: the owner calls Dispatch for every
// input event and Frame once per animation frame. No locking, by
// construction.
type Controller struct {
	state GraphViewState
	sim   *layout.Simulation

	opts Options
	log  logging.Logger

	debouncer *filter.Debouncer

	// stateGen increments on every filter-affecting change; a pending
	// recompute stamped with an older generation is discarded rather
	// than allowed to overwrite a newer result
	stateGen uint64

	renderer  render.Renderer
	lastScene *render.Scene
}

// NewController creates a controller in the loading phase
func NewController(opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = logging.NewNopLogger()
	}
	if opts.ViewportW == 0 {
		opts.ViewportW = 1280
	}
	if opts.ViewportH == 0 {
		opts.ViewportH = 800
	}
	if (opts.Layout == layout.Config{}) {
		opts.Layout = layout.DefaultConfig()
	}
	c := &Controller{
		opts: opts,
		log:  opts.Logger.With(logging.Component("view")),
		state: GraphViewState{
			Phase:  PhaseLoading,
			Filter: filter.NewState(),
			Hover:  render.NoHover(),
			Camera: render.Camera{
				Scale: 1.0,
				ViewW: opts.ViewportW,
				ViewH: opts.ViewportH,
			},
		},
	}
	c.debouncer = c.newDebouncer()
	return c
}

// AttachRenderer mounts the drawing surface. Until a renderer is
// attached, Frame still advances the simulation but drawing is
// deferred rather than an error.
func (c *Controller) AttachRenderer(r render.Renderer) {
	c.renderer = r
}

// SetNavigate installs the openEntityDetail consumer after
// construction
func (c *Controller) SetNavigate(fn NavigateFunc) {
	c.opts.Navigate = fn
}

// State returns a read-only snapshot of the current view state
func (c *Controller) State() GraphViewState {
	return c.state
}

// Highlight returns the emphasized elements for the current selection
func (c *Controller) Highlight() render.Highlight {
	return highlightFor(c.state.Dataset, c.state.Selection)
}

// TooltipText returns the hover tooltip for the current pointer target
func (c *Controller) TooltipText() string {
	if c.state.Dataset == nil {
		return ""
	}
	hit := render.NoHit()
	if c.state.Hover.NodeID != "" {
		hit = render.Hit{Kind: render.HitNode, NodeID: c.state.Hover.NodeID, EdgeIndex: -1}
	} else if c.state.Hover.EdgeIndex >= 0 {
		hit = render.Hit{Kind: render.HitEdge, EdgeIndex: c.state.Hover.EdgeIndex}
	}
	return render.Tooltip(c.state.Dataset, hit)
}

// Dispatch applies one event to the view state. Must be called from
// the owning loop; events are applied strictly in arrival order and a
// later filter state always supersedes an earlier one.
func (c *Controller) Dispatch(ev Event) {
	switch e := ev.(type) {
	case DatasetLoaded:
		c.onDatasetLoaded(e.Dataset)
	case FetchFailed:
		c.state = GraphViewState{
			Phase:  PhaseFetchFailed,
			Err:    e.Err,
			Filter: filter.NewState(),
			Hover:  render.NoHover(),
			Camera: c.state.Camera,
		}
		c.sim = nil
		c.lastScene = nil
		c.log.Error("dataset fetch failed", logging.Error(e.Err))
	case RetryRequested:
		if c.state.Phase == PhaseFetchFailed {
			c.state.Phase = PhaseLoading
			c.state.Err = nil
		}
	case FilterEdit:
		c.onFilterEdit(e)
	case ResetFilters:
		c.debouncer.Cancel()
		c.state.Filter = c.state.Filter.Reset()
		c.stateGen++
		c.recompute("reset")
	case ZoomChanged:
		c.onZoomChanged(e.Scale)
	case PanChanged:
		c.state.Camera.CenterX = e.CenterX
		c.state.Camera.CenterY = e.CenterY
	case PointerMoved:
		c.onPointerMoved(e.X, e.Y)
	case PointerLeft:
		c.state.Hover = render.NoHover()
	case Clicked:
		c.onClicked(e.X, e.Y)
	case ClearSelection:
		c.setSelection(NoSelection())
	case recomputeRequested:
		if e.generation < c.stateGen {
			// A newer state arrived while this one was pending
			if c.opts.Metrics != nil {
				c.opts.Metrics.RecomputeSuperseded.Inc()
			}
			c.log.Debug("discarding superseded recompute",
				logging.Generation(e.generation))
			return
		}
		c.recompute("debounce")
	}
}

func (c *Controller) newDebouncer() *filter.Debouncer {
	// The callback only posts an event back to the owner's loop; when
	// no loop is attached, the owner drives recomputes through
	// FlushPendingFilter instead. The generation is stamped on the
	// dispatch path at Trigger time, so the timer goroutine never
	// touches controller state.
	return filter.NewDebouncer(c.opts.Debounce, func(gen uint64) {
		if c.opts.Enqueue != nil {
			c.opts.Enqueue(recomputeRequested{generation: gen})
		}
	})
}

func (c *Controller) onDatasetLoaded(d *graph.Dataset) {
	c.state.Dataset = d
	c.state.Err = nil
	c.state.Selection = NoSelection()
	c.state.Hover = render.NoHover()
	c.state.Camera.CenterX = c.opts.Layout.Width / 2
	c.state.Camera.CenterY = c.opts.Layout.Height / 2

	// Only a structural dataset change reheats the simulation
	if c.sim == nil {
		c.sim = layout.NewSimulation(d, c.opts.Layout, c.opts.Seed, c.opts.Logger)
	} else {
		c.sim.Replace(d)
	}
	c.stateGen++
	c.recompute("load")
}

func (c *Controller) onFilterEdit(e FilterEdit) {
	if c.state.Dataset == nil {
		return
	}
	s := c.state.Filter.Clone()
	if e.SearchQuery != nil {
		s.SearchQuery = *e.SearchQuery
	}
	if e.ToggleCategory != nil {
		cat := *e.ToggleCategory
		if _, ok := s.SelectedCategories[cat]; ok {
			delete(s.SelectedCategories, cat)
		} else {
			s.SelectedCategories[cat] = struct{}{}
		}
	}
	if e.MinConnectionCount != nil {
		s.MinConnectionCount = *e.MinConnectionCount
	}
	if e.MinEdgeWeight != nil {
		s.MinEdgeWeight = *e.MinEdgeWeight
	}
	c.state.Filter = s.Normalize()
	c.stateGen++

	if e.Continuous {
		c.debouncer.Trigger(c.stateGen)
		return
	}
	c.recompute("edit")
}

// FlushPendingFilter forces any debounced recompute to run now, e.g.
// on slider release
func (c *Controller) FlushPendingFilter() {
	c.debouncer.Cancel()
	c.recompute("flush")
}

func (c *Controller) onZoomChanged(scale float64) {
	if scale <= 0 {
		return
	}
	prev := c.state.Filter.EffectiveMinEdgeWeight()
	c.state.Filter.ZoomScale = scale
	c.state.Camera.Scale = scale

	// The density controller reacts within the same dispatch, well
	// inside the one-frame budget. Skip the recompute when the
	// effective threshold did not move.
	if c.state.Filter.EffectiveMinEdgeWeight() != prev {
		c.stateGen++
		c.recompute("zoom")
	}
}

// recompute runs the pure filter pass against the current state and
// dataset, then re-derives the lifecycle phase
func (c *Controller) recompute(trigger string) {
	d := c.state.Dataset
	if d == nil {
		return
	}
	start := time.Now()
	res := filter.Apply(d, c.state.Filter)
	elapsed := time.Since(start)

	c.state.Visible = res
	if res.Empty() {
		c.state.Phase = PhaseNoResults
	} else {
		c.state.Phase = PhaseReady
	}

	// Drop hover or selection that the filter made invisible
	c.pruneInteraction(res)

	if c.opts.Metrics != nil {
		c.opts.Metrics.ObserveRecompute(trigger, elapsed, len(res.NodeIDs), len(res.EdgeIndices))
	}
	c.log.Debug("filter recomputed",
		logging.String("trigger", trigger),
		logging.NodeCount(len(res.NodeIDs)),
		logging.EdgeCount(len(res.EdgeIndices)),
		logging.Int("effective_min_weight", res.Effective),
		logging.Latency(elapsed))
}

func (c *Controller) pruneInteraction(res *filter.Result) {
	if c.state.Hover.NodeID != "" && !res.NodeVisible(c.state.Hover.NodeID) {
		c.state.Hover = render.NoHover()
	}
	switch c.state.Selection.Kind {
	case SelectionNode:
		if !res.NodeVisible(c.state.Selection.NodeID) {
			c.state.Selection = NoSelection()
		}
	case SelectionEdge:
		if !res.NodeVisible(c.state.Selection.Source) || !res.NodeVisible(c.state.Selection.Target) {
			c.state.Selection = NoSelection()
		}
	}
}

func (c *Controller) onPointerMoved(x, y float64) {
	if c.lastScene == nil {
		return
	}
	hit := c.lastScene.HitTest(x, y)
	switch hit.Kind {
	case render.HitNode:
		c.state.Hover = render.Hover{NodeID: hit.NodeID, EdgeIndex: -1}
	case render.HitEdge:
		c.state.Hover = render.Hover{EdgeIndex: hit.EdgeIndex}
	default:
		c.state.Hover = render.NoHover()
	}
}

// onClicked runs the selection state machine. Clicking a different
// node or edge while one is selected transitions directly to the new
// selection; only empty canvas (or ClearSelection) returns to NONE.
func (c *Controller) onClicked(x, y float64) {
	if c.lastScene == nil {
		return
	}
	hit := c.lastScene.HitTest(x, y)
	switch hit.Kind {
	case render.HitNode:
		c.setSelection(Selection{Kind: SelectionNode, NodeID: hit.NodeID})
		if c.opts.Navigate != nil {
			c.opts.Navigate(hit.NodeID)
		}
		if c.opts.Metrics != nil {
			c.opts.Metrics.NavigationsTotal.Inc()
		}
	case render.HitEdge:
		e := c.state.Dataset.Edges[hit.EdgeIndex]
		c.setSelection(Selection{Kind: SelectionEdge, Source: e.Source, Target: e.Target})
	default:
		c.setSelection(NoSelection())
	}
}

func (c *Controller) setSelection(sel Selection) {
	c.state.Selection = sel
	if c.opts.Metrics != nil {
		kind := "none"
		switch sel.Kind {
		case SelectionNode:
			kind = "node"
		case SelectionEdge:
			kind = "edge"
		}
		c.opts.Metrics.ObserveSelection(kind)
	}
}

// Frame advances one animation frame: one simulation tick (bounded, a
// few ms), a scene build from the latest committed positions, and a
// draw if a renderer is mounted. Input during the tick is decoupled:
// rendering always reads the most recent committed positions.
func (c *Controller) Frame() (*render.Scene, error) {
	if c.state.Dataset == nil || c.state.Visible == nil {
		return nil, nil
	}
	frameStart := time.Now()

	tickStart := time.Now()
	wasRunning := c.sim.Running()
	running := c.sim.Tick()
	if c.opts.Metrics != nil {
		c.opts.Metrics.ObserveTick(time.Since(tickStart), c.sim.Alpha(), running)
		if wasRunning && !running {
			c.opts.Metrics.ConvergenceTicks.Observe(float64(c.sim.Ticks()))
		}
	}

	scene := render.BuildScene(
		c.state.Dataset,
		c.state.Visible,
		c.sim.Positions(),
		c.state.Camera,
		c.Highlight(),
		c.state.Hover,
	)
	c.lastScene = scene

	var err error
	if c.renderer != nil {
		err = c.renderer.Draw(scene)
	}
	if c.opts.Metrics != nil {
		c.opts.Metrics.FrameDuration.Observe(time.Since(frameStart).Seconds())
	}
	return scene, err
}

// Simulation exposes the layout engine, mainly for tests and the CLI
// convergence path
func (c *Controller) Simulation() *layout.Simulation {
	return c.sim
}

// Close releases the debounce timer
func (c *Controller) Close() {
	c.debouncer.Stop()
}
