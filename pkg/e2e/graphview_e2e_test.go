package e2e

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archiveview/graphview/pkg/fetch"
	"github.com/archiveview/graphview/pkg/filter"
	"github.com/archiveview/graphview/pkg/metrics"
	"github.com/archiveview/graphview/pkg/render"
	"github.com/archiveview/graphview/pkg/view"
)

const datasetDoc = `{
	"nodes": [
		{"id": "p1", "name": "Alice Aster", "categories": ["victims"]},
		{"id": "p2", "name": "Bram Borel", "categories": ["associates"]},
		{"id": "p3", "name": "Cora Crane", "categories": ["victims", "witnesses"]},
		{"id": "p4", "name": "Dian Dietrich", "categories": ["associates"], "is_billionaire": true}
	],
	"edges": [
		{"source": "p1", "target": "p2", "weight": 5, "contexts": ["flight_log"]},
		{"source": "p2", "target": "p3", "weight": 15, "contexts": ["flight_log", "document"]},
		{"source": "p3", "target": "p4", "weight": 60, "contexts": ["document"]},
		{"source": "p1", "target": "p4", "weight": 2},
		{"source": "p1", "target": "ghost", "weight": 9}
	]
}`

// TestCompleteViewerWorkflow walks one full session: fetch the dataset
// from a backend, converge the layout, filter, zoom, select a node and
// export the scene as SVG.
func TestCompleteViewerWorkflow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(datasetDoc))
	}))
	defer server.Close()

	cachePath := filepath.Join(t.TempDir(), "snapshot.bin")
	reg := metrics.NewRegistry(nil)
	loader := fetch.NewLoader(
		fetch.NewHTTPSource(server.URL, nil),
		fetch.NewSnapshotCache(cachePath),
		reg, nil,
	)

	// Step 1: fetch and build the dataset
	dataset, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, dataset.NodeCount())
	assert.Equal(t, 4, dataset.EdgeCount(), "the malformed edge is dropped, not fatal")
	assert.Equal(t, 1, dataset.DroppedEdges())

	// Step 2: load it into the view and converge the layout
	ctrl := view.NewController(view.Options{Seed: 7, Metrics: reg})
	defer ctrl.Close()

	var navigations []string
	ctrl.SetNavigate(func(id string) { navigations = append(navigations, id) })

	ctrl.Dispatch(view.DatasetLoaded{Dataset: dataset})
	require.Equal(t, view.PhaseReady, ctrl.State().Phase)
	ctrl.Simulation().Run()
	require.False(t, ctrl.Simulation().Running())

	scene, err := ctrl.Frame()
	require.NoError(t, err)
	require.NotNil(t, scene)

	// The zoomed-out auto threshold hides the weight-2 edge
	assert.Equal(t, filter.AutoWeightFloor, ctrl.State().Visible.Effective)
	assert.Len(t, scene.Edges, 3)
	assert.Len(t, scene.Nodes, 4)

	// Step 3: zoom in past the detail threshold reveals everything
	ctrl.Dispatch(view.ZoomChanged{Scale: 2.0})
	assert.Equal(t, 0, ctrl.State().Visible.Effective)
	scene, err = ctrl.Frame()
	require.NoError(t, err)
	assert.Len(t, scene.Edges, 4)

	// Step 4: filter down to victims
	ctrl.Dispatch(view.FilterEdit{ToggleCategory: strp("victims")})
	st := ctrl.State()
	assert.Equal(t, view.PhaseReady, st.Phase)
	assert.Len(t, st.Visible.NodeIDs, 2)
	for _, ei := range st.Visible.EdgeIndices {
		e := dataset.Edges[ei]
		assert.True(t, st.Visible.NodeVisible(e.Source))
		assert.True(t, st.Visible.NodeVisible(e.Target))
	}

	// Step 5: a filter matching nothing is a distinct phase, and reset
	// recovers without refetching
	ctrl.Dispatch(view.FilterEdit{SearchQuery: strp("zzz-no-match")})
	assert.Equal(t, view.PhaseNoResults, ctrl.State().Phase)
	ctrl.Dispatch(view.ResetFilters{})
	assert.Equal(t, view.PhaseReady, ctrl.State().Phase)
	assert.True(t, ctrl.State().Filter.IsDefault())
	assert.Equal(t, 2.0, ctrl.State().Filter.ZoomScale, "reset keeps zoom")

	// Step 6: click a node, expect selection plus navigation
	scene, err = ctrl.Frame()
	require.NoError(t, err)
	require.NotEmpty(t, scene.Nodes)
	target := scene.Nodes[0]
	ctrl.Dispatch(view.Clicked{X: target.X, Y: target.Y})
	require.Equal(t, view.SelectionNode, ctrl.State().Selection.Kind)
	assert.Equal(t, []string{target.ID}, navigations)

	hl := ctrl.Highlight()
	assert.Contains(t, hl.Nodes, target.ID)
	assert.Len(t, hl.Edges, len(dataset.IncidentEdges(target.ID)))

	// Step 7: export the final scene as SVG
	var buf bytes.Buffer
	require.NoError(t, render.NewSVGRenderer(&buf, nil).Draw(scene))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<svg "))
	assert.Contains(t, out, render.ColorBillionaire)
	assert.Contains(t, out, ">60</text>", "heavy edges carry weight labels")
}

// TestBackendOutageFallsBackToSnapshot verifies the cached-snapshot
// path end to end: a successful session leaves a snapshot, and the
// next session survives a dead backend on it.
func TestBackendOutageFallsBackToSnapshot(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "snapshot.bin")
	cache := fetch.NewSnapshotCache(cachePath)

	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(datasetDoc))
	}))
	_, err := fetch.NewLoader(fetch.NewHTTPSource(up.URL, nil), cache, nil, nil).Load(context.Background())
	up.Close()
	require.NoError(t, err)
	require.True(t, cache.Exists())

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer down.Close()

	dataset, err := fetch.NewLoader(fetch.NewHTTPSource(down.URL, nil), cache, nil, nil).Load(context.Background())
	require.NoError(t, err, "a usable snapshot must mask the outage")
	assert.Equal(t, 4, dataset.NodeCount())

	// Without a snapshot the outage surfaces as the retryable fetch error
	empty := fetch.NewSnapshotCache(filepath.Join(t.TempDir(), "none.bin"))
	_, err = fetch.NewLoader(fetch.NewHTTPSource(down.URL, nil), empty, nil, nil).Load(context.Background())
	var ferr *fetch.FetchError
	require.ErrorAs(t, err, &ferr)

	ctrl := view.NewController(view.Options{Seed: 1})
	defer ctrl.Close()
	ctrl.Dispatch(view.FetchFailed{Err: err})
	assert.Equal(t, view.PhaseFetchFailed, ctrl.State().Phase)
	ctrl.Dispatch(view.RetryRequested{})
	assert.Equal(t, view.PhaseLoading, ctrl.State().Phase)
}

func strp(s string) *string { return &s }
