package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initLayoutMetrics() {
	r.SimulationTicks = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphview_simulation_ticks_total",
			Help: "Simulation ticks advanced",
		},
	)

	r.TickDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graphview_simulation_tick_duration_seconds",
			Help:    "Per-tick cost; must stay a few milliseconds to share the frame",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.016, 0.033},
		},
	)

	r.SimulationAlpha = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphview_simulation_alpha",
			Help: "Current cooling factor of the simulation",
		},
	)

	r.SimulationRunning = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphview_simulation_running",
			Help: "1 while the simulation is advancing, 0 once frozen",
		},
	)

	r.ConvergenceTicks = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graphview_simulation_convergence_ticks",
			Help:    "Ticks needed to reach convergence per dataset load",
			Buckets: []float64{50, 100, 200, 300, 400, 500, 600},
		},
	)
}
