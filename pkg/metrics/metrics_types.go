package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the visualization engine
type Registry struct {
	// Fetch metrics
	FetchTotal    *prometheus.CounterVec
	FetchDuration *prometheus.HistogramVec
	DatasetNodes  prometheus.Gauge
	DatasetEdges  prometheus.Gauge
	DroppedEdges  prometheus.Counter

	// Filter metrics
	RecomputeTotal      *prometheus.CounterVec
	RecomputeDuration   prometheus.Histogram
	RecomputeSuperseded prometheus.Counter
	VisibleNodes        prometheus.Gauge
	VisibleEdges        prometheus.Gauge

	// Layout metrics
	SimulationTicks   prometheus.Counter
	TickDuration      prometheus.Histogram
	SimulationAlpha   prometheus.Gauge
	SimulationRunning prometheus.Gauge
	ConvergenceTicks  prometheus.Histogram

	// Interaction metrics
	FrameDuration    prometheus.Histogram
	SelectionsTotal  *prometheus.CounterVec
	NavigationsTotal prometheus.Counter

	registry prometheus.Registerer
}

// NewRegistry creates a Registry with all metrics registered against
// the given registerer
func NewRegistry(reg prometheus.Registerer) *Registry {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	r := &Registry{registry: reg}
	r.initFetchMetrics()
	r.initFilterMetrics()
	r.initLayoutMetrics()
	r.initInteractionMetrics()
	return r
}
