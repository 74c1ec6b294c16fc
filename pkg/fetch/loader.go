package fetch

import (
	"context"
	"time"

	"github.com/archiveview/graphview/pkg/graph"
	"github.com/archiveview/graphview/pkg/logging"
	"github.com/archiveview/graphview/pkg/metrics"
)

// Loader turns a Source into built datasets: fetch, decode, validate,
// assemble. With a cache attached it refreshes the snapshot on success
// and falls back to it when the backend is down.
type Loader struct {
	source Source
	cache  *SnapshotCache
	log    logging.Logger
	reg    *metrics.Registry
}

// NewLoader creates a loader over the given source. cache and reg may
// be nil.
func NewLoader(source Source, cache *SnapshotCache, reg *metrics.Registry, logger logging.Logger) *Loader {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Loader{
		source: source,
		cache:  cache,
		log:    logger.With(logging.Component("fetch")),
		reg:    reg,
	}
}

// Load fetches and builds the session dataset. On fetch failure with a
// usable cache snapshot, the snapshot is served instead and the
// returned error is nil; without one, the FetchError propagates so the
// view can show the retry state.
func (l *Loader) Load(ctx context.Context) (*graph.Dataset, error) {
	start := time.Now()
	raw, ferr := l.source.Fetch(ctx)
	if ferr != nil {
		l.observeFetch("error", start)
		if l.cache == nil || !l.cache.Exists() {
			return nil, ferr
		}
		cached, cerr := l.cache.Load()
		if cerr != nil {
			l.log.Warn("cache fallback failed", logging.Error(cerr))
			return nil, ferr
		}
		l.log.Warn("serving cached dataset snapshot",
			logging.Source(l.source.Name()),
			logging.Error(ferr))
		return l.build(cached)
	}
	l.observeFetch("ok", start)

	d, err := l.build(raw)
	if err != nil {
		return nil, err
	}
	if l.cache != nil {
		if cerr := l.cache.Store(raw); cerr != nil {
			l.log.Warn("failed to refresh cache snapshot", logging.Error(cerr))
		}
	}
	return d, nil
}

func (l *Loader) build(raw []byte) (*graph.Dataset, error) {
	p, err := graph.DecodePayload(raw)
	if err != nil {
		// A payload the backend served but we cannot decode is still a
		// fetch-phase failure from the user's point of view
		return nil, &FetchError{Source: l.source.Name(), Err: err}
	}
	d, err := graph.Build(p, l.log)
	if err != nil {
		return nil, err
	}
	if l.reg != nil {
		l.reg.DatasetNodes.Set(float64(d.NodeCount()))
		l.reg.DatasetEdges.Set(float64(d.EdgeCount()))
		l.reg.DroppedEdges.Add(float64(d.DroppedEdges()))
	}
	return d, nil
}

func (l *Loader) observeFetch(status string, start time.Time) {
	if l.reg == nil {
		return
	}
	l.reg.FetchTotal.WithLabelValues(status).Inc()
	l.reg.FetchDuration.WithLabelValues(status).Observe(time.Since(start).Seconds())
}
