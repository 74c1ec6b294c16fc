package metrics

import (
	"time"
)

// ObserveRecompute records one filter recomputation
func (r *Registry) ObserveRecompute(trigger string, duration time.Duration, visibleNodes, visibleEdges int) {
	r.RecomputeTotal.WithLabelValues(trigger).Inc()
	r.RecomputeDuration.Observe(duration.Seconds())
	r.VisibleNodes.Set(float64(visibleNodes))
	r.VisibleEdges.Set(float64(visibleEdges))
}

// ObserveTick records one simulation tick
func (r *Registry) ObserveTick(duration time.Duration, alpha float64, running bool) {
	r.SimulationTicks.Inc()
	r.TickDuration.Observe(duration.Seconds())
	r.SimulationAlpha.Set(alpha)
	if running {
		r.SimulationRunning.Set(1)
	} else {
		r.SimulationRunning.Set(0)
	}
}

// ObserveSelection records a selection transition
func (r *Registry) ObserveSelection(kind string) {
	r.SelectionsTotal.WithLabelValues(kind).Inc()
}
