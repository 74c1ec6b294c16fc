package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initFilterMetrics() {
	r.RecomputeTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphview_filter_recompute_total",
			Help: "Filter recomputations by trigger",
		},
		[]string{"trigger"},
	)

	r.RecomputeDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graphview_filter_recompute_duration_seconds",
			Help:    "Filter recompute duration; interactive budget is 10ms",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
	)

	r.RecomputeSuperseded = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphview_filter_recompute_superseded_total",
			Help: "Recompute results discarded because a newer state arrived",
		},
	)

	r.VisibleNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphview_visible_nodes",
			Help: "Nodes visible under the current filter",
		},
	)

	r.VisibleEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphview_visible_edges",
			Help: "Edges visible under the current filter",
		},
	)
}
