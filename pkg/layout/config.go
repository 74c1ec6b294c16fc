package layout

// Config holds the physics tuning constants for the force simulation.
// These are implementation details validated empirically, not product
// requirements; they can be overridden from the YAML config file.
type Config struct {
	// Canvas extent the initial placement is scattered over. The
	// simulation itself is unbounded; the centering force keeps the
	// layout from drifting off-viewport.
	Width  float64 `yaml:"width" validate:"gt=0"`
	Height float64 `yaml:"height" validate:"gt=0"`

	// SpringStiffness scales the per-edge attraction toward the
	// resting distance
	SpringStiffness float64 `yaml:"spring_stiffness" validate:"gt=0"`

	// BaseLinkDistance is the spring resting distance for a weight-1
	// edge; heavier edges rest closer, floored at MinLinkDistance
	BaseLinkDistance float64 `yaml:"base_link_distance" validate:"gt=0"`
	MinLinkDistance  float64 `yaml:"min_link_distance" validate:"gt=0"`

	// RepulsionStrength scales the pairwise inverse-square repulsion
	RepulsionStrength float64 `yaml:"repulsion_strength" validate:"gt=0"`

	// CenterStrength is the weak pull toward the canvas center
	CenterStrength float64 `yaml:"center_strength" validate:"gte=0"`

	// VelocityDamping multiplies velocities every tick
	VelocityDamping float64 `yaml:"velocity_damping" validate:"gt=0,lt=1"`

	// AlphaDecay drives the cooling schedule; alpha relaxes toward
	// AlphaMin by this fraction per tick
	AlphaDecay float64 `yaml:"alpha_decay" validate:"gt=0,lt=1"`
	AlphaMin   float64 `yaml:"alpha_min" validate:"gt=0"`

	// ConvergenceEnergy is the mean kinetic energy per node below
	// which the simulation freezes
	ConvergenceEnergy float64 `yaml:"convergence_energy" validate:"gt=0"`

	// MaxTicks caps the simulation even if it never settles
	MaxTicks int `yaml:"max_ticks" validate:"gt=0"`

	// BarnesHutTheta is the opening angle of the approximation; larger
	// is faster and coarser
	BarnesHutTheta float64 `yaml:"barnes_hut_theta" validate:"gt=0"`

	// ExactRepulsionLimit is the node count below which repulsion is
	// summed pairwise instead of through the quadtree
	ExactRepulsionLimit int `yaml:"exact_repulsion_limit" validate:"gte=0"`
}

// DefaultConfig returns constants tuned so a graph of a few hundred
// nodes and a couple thousand edges settles well inside the tick budget
func DefaultConfig() Config {
	return Config{
		Width:               1600,
		Height:              1200,
		SpringStiffness:     0.08,
		BaseLinkDistance:    180,
		MinLinkDistance:     30,
		RepulsionStrength:   1200,
		CenterStrength:      0.015,
		VelocityDamping:     0.85,
		AlphaDecay:          0.028,
		AlphaMin:            0.001,
		ConvergenceEnergy:   0.05,
		MaxTicks:            600,
		BarnesHutTheta:      0.9,
		ExactRepulsionLimit: 500,
	}
}
