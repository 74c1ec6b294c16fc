package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initFetchMetrics() {
	r.FetchTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphview_fetch_total",
			Help: "Dataset fetch attempts by status",
		},
		[]string{"status"},
	)

	r.FetchDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphview_fetch_duration_seconds",
			Help:    "Dataset fetch duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
		[]string{"status"},
	)

	r.DatasetNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphview_dataset_nodes",
			Help: "Nodes in the currently loaded dataset",
		},
	)

	r.DatasetEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphview_dataset_edges",
			Help: "Edges in the currently loaded dataset",
		},
	)

	r.DroppedEdges = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphview_dropped_edges_total",
			Help: "Malformed edge records dropped at load",
		},
	)
}
