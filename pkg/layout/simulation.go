package layout

import (
	"math"
	"math/rand"
	"time"

	"github.com/archiveview/graphview/pkg/graph"
	"github.com/archiveview/graphview/pkg/logging"
)

// vec2 is a 2D vector
type vec2 struct {
	X, Y float64
}

// Position is a node coordinate exposed to the render layer
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

const (
	minSeparation   = 0.01
	minSeparationSq = minSeparation * minSeparation
)

// Simulation is the force-directed layout over the full dataset. It
// advances one tick per render frame and freezes once kinetic energy
// falls below the convergence threshold or the tick budget runs out.
//
// Filtering and zoom never touch the simulation: every node is
// simulated whether currently visible or not, so filter changes cannot
// perturb the equilibrium. Only replacing the dataset reheats it.
//
// Deterministic for a fixed (dataset, seed) pair: initial placement
// comes from a seeded source and all iteration is over slices in
// dataset order.
type Simulation struct {
	cfg  Config
	log  logging.Logger
	seed int64

	dataset *graph.Dataset
	index   map[string]int // node id -> body index

	pos []vec2
	vel []vec2

	alpha  float64
	ticks  int
	frozen bool

	qt *quadTree
}

// NewSimulation creates a simulation for the dataset with a fixed seed
func NewSimulation(d *graph.Dataset, cfg Config, seed int64, logger logging.Logger) *Simulation {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	s := &Simulation{
		cfg:  cfg,
		log:  logger.With(logging.Component("layout")),
		seed: seed,
		qt:   newQuadTree(cfg.BarnesHutTheta),
	}
	s.reset(d)
	return s
}

// reset seeds initial placement and restores full heat
func (s *Simulation) reset(d *graph.Dataset) {
	s.dataset = d
	n := d.NodeCount()
	s.index = make(map[string]int, n)
	s.pos = make([]vec2, n)
	s.vel = make([]vec2, n)

	rng := rand.New(rand.NewSource(s.seed))
	for i, node := range d.Nodes {
		s.index[node.ID] = i
		s.pos[i] = vec2{
			X: rng.Float64() * s.cfg.Width,
			Y: rng.Float64() * s.cfg.Height,
		}
	}

	s.alpha = 1.0
	s.ticks = 0
	s.frozen = n == 0

	s.log.Info("simulation seeded",
		logging.LoadID(d.LoadID),
		logging.NodeCount(n),
		logging.EdgeCount(d.EdgeCount()))
}

// Replace installs a new dataset and reheats. This is the only path
// that restarts the simulation.
func (s *Simulation) Replace(d *graph.Dataset) {
	s.reset(d)
}

// Running reports whether the simulation is still advancing
func (s *Simulation) Running() bool {
	return !s.frozen
}

// Ticks returns the number of ticks advanced since the last reheat
func (s *Simulation) Ticks() int {
	return s.ticks
}

// Alpha returns the current cooling factor
func (s *Simulation) Alpha() float64 {
	return s.alpha
}

// Tick advances the simulation one discrete time step. Returns false
// once frozen. Bounded cost: one quadtree rebuild plus O(N log N + E)
// force work, well under a frame budget for the supported graph sizes.
func (s *Simulation) Tick() bool {
	if s.frozen {
		return false
	}

	forces := make([]vec2, len(s.pos))
	s.applyRepulsion(forces)
	s.applySprings(forces)
	s.applyCentering(forces)

	// Semi-implicit integration with damping; alpha scales the forces
	// down as the layout cools
	energy := 0.0
	for i := range s.pos {
		s.vel[i].X = (s.vel[i].X + forces[i].X*s.alpha) * s.cfg.VelocityDamping
		s.vel[i].Y = (s.vel[i].Y + forces[i].Y*s.alpha) * s.cfg.VelocityDamping
		s.pos[i].X += s.vel[i].X
		s.pos[i].Y += s.vel[i].Y
		energy += s.vel[i].X*s.vel[i].X + s.vel[i].Y*s.vel[i].Y
	}

	s.alpha += (s.cfg.AlphaMin - s.alpha) * s.cfg.AlphaDecay
	s.ticks++

	mean := energy / float64(len(s.pos))
	if mean < s.cfg.ConvergenceEnergy || s.ticks >= s.cfg.MaxTicks {
		s.frozen = true
		s.log.Info("simulation converged",
			logging.Int("ticks", s.ticks),
			logging.Float64("mean_energy", mean))
	}
	return !s.frozen
}

// Run advances ticks until convergence and returns the elapsed time
func (s *Simulation) Run() time.Duration {
	start := time.Now()
	for s.Tick() {
	}
	return time.Since(start)
}

func (s *Simulation) applyRepulsion(forces []vec2) {
	n := len(s.pos)
	if n > s.cfg.ExactRepulsionLimit {
		s.qt.build(s.pos)
		for i := range s.pos {
			f := s.qt.force(i, s.pos, s.cfg.RepulsionStrength)
			forces[i].X += f.X
			forces[i].Y += f.Y
		}
		return
	}

	// Exact pairwise sum for small graphs
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := s.pos[i].X - s.pos[j].X
			dy := s.pos[i].Y - s.pos[j].Y
			distSq := dx*dx + dy*dy
			if distSq < minSeparationSq {
				distSq = minSeparationSq
				dx, dy = minSeparation, 0
			}
			f := s.cfg.RepulsionStrength / distSq
			invDist := 1 / math.Sqrt(distSq)
			fx := dx * invDist * f
			fy := dy * invDist * f
			forces[i].X += fx
			forces[i].Y += fy
			forces[j].X -= fx
			forces[j].Y -= fy
		}
	}
}

// restingDistance shrinks with edge weight: entities that co-occur more
// sit closer together
func (s *Simulation) restingDistance(weight int) float64 {
	d := s.cfg.BaseLinkDistance / math.Sqrt(float64(weight))
	if d < s.cfg.MinLinkDistance {
		d = s.cfg.MinLinkDistance
	}
	return d
}

func (s *Simulation) applySprings(forces []vec2) {
	for _, e := range s.dataset.Edges {
		a := s.index[e.Source]
		b := s.index[e.Target]
		dx := s.pos[b].X - s.pos[a].X
		dy := s.pos[b].Y - s.pos[a].Y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist < minSeparation {
			continue
		}
		stretch := dist - s.restingDistance(e.Weight)
		f := s.cfg.SpringStiffness * stretch / dist
		fx := dx * f
		fy := dy * f
		forces[a].X += fx
		forces[a].Y += fy
		forces[b].X -= fx
		forces[b].Y -= fy
	}
}

func (s *Simulation) applyCentering(forces []vec2) {
	cx := s.cfg.Width / 2
	cy := s.cfg.Height / 2
	for i := range s.pos {
		forces[i].X += (cx - s.pos[i].X) * s.cfg.CenterStrength
		forces[i].Y += (cy - s.pos[i].Y) * s.cfg.CenterStrength
	}
}

// Position returns the current coordinate of a node id. The zero value
// is returned for unknown ids.
func (s *Simulation) Position(id string) Position {
	i, ok := s.index[id]
	if !ok {
		return Position{}
	}
	return Position{X: s.pos[i].X, Y: s.pos[i].Y}
}

// Positions returns a snapshot of all node coordinates keyed by id.
// The render loop reads the most recent committed snapshot; input
// handling never blocks the simulation.
func (s *Simulation) Positions() map[string]Position {
	out := make(map[string]Position, len(s.pos))
	for id, i := range s.index {
		out[id] = Position{X: s.pos[i].X, Y: s.pos[i].Y}
	}
	return out
}

// Bounds returns the current min/max extent of the layout
func (s *Simulation) Bounds() (minX, minY, maxX, maxY float64) {
	if len(s.pos) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = s.pos[0].X, s.pos[0].Y
	maxX, maxY = minX, minY
	for _, p := range s.pos[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}
