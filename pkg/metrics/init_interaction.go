package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initInteractionMetrics() {
	r.FrameDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graphview_frame_duration_seconds",
			Help:    "Full frame cost: tick, scene build and draw",
			Buckets: []float64{0.002, 0.004, 0.008, 0.016, 0.033, 0.066, 0.1},
		},
	)

	r.SelectionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphview_selections_total",
			Help: "Selection transitions by target kind",
		},
		[]string{"kind"},
	)

	r.NavigationsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphview_navigations_total",
			Help: "openEntityDetail navigation events emitted",
		},
	)
}
