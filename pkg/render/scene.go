package render

import (
	"math"
	"strconv"

	"github.com/archiveview/graphview/pkg/filter"
	"github.com/archiveview/graphview/pkg/graph"
	"github.com/archiveview/graphview/pkg/layout"
)

// Node color scheme: entities are drawn in one of exactly two colors
// keyed by the billionaire flag.
const (
	ColorEntity      = "#4a90d9"
	ColorBillionaire = "#d4a017"
	ColorEdge        = "#8a8a8a"
	ColorHighlight   = "#e8443a"
)

// Edge width tiers by co-occurrence weight
const (
	EdgeWidthThin   = 1.0 // weight in [1, 10)
	EdgeWidthMedium = 2.5 // weight in [10, 50)
	EdgeWidthThick  = 4.5 // weight >= 50

	// EdgeLabelMinWeight is the weight above which an edge gets a
	// numeric label at its midpoint
	EdgeLabelMinWeight = 50
)

// Node radius encoding from connection count
const (
	nodeRadiusMin   = 4.0
	nodeRadiusScale = 2.0
	nodeRadiusMax   = 26.0
)

// Opacity levels for dimmed versus emphasized elements
const (
	opacityNormal  = 0.85
	opacityHover   = 1.0
	opacityDimmed  = 0.25
	hoverStrokePad = 1.5
)

// Camera maps world coordinates from the layout into screen pixels
type Camera struct {
	Scale    float64 // zoom scale, 1.0 = 1:1
	CenterX  float64 // world point at the viewport center
	CenterY  float64
	ViewW    float64 // viewport size in pixels
	ViewH    float64
}

// ToScreen projects a world position into screen space
func (c Camera) ToScreen(p layout.Position) (float64, float64) {
	return (p.X-c.CenterX)*c.Scale + c.ViewW/2,
		(p.Y-c.CenterY)*c.Scale + c.ViewH/2
}

// ToWorld inverts ToScreen
func (c Camera) ToWorld(x, y float64) (float64, float64) {
	return (x-c.ViewW/2)/c.Scale + c.CenterX,
		(y-c.ViewH/2)/c.Scale + c.CenterY
}

// NodeSprite is one visible node ready to draw, in screen space
type NodeSprite struct {
	ID          string
	Name        string
	X, Y        float64
	Radius      float64
	Color       string
	Opacity     float64
	Highlighted bool
	Hovered     bool
}

// EdgeSprite is one visible edge ready to draw, in screen space
type EdgeSprite struct {
	Index          int // index into the dataset edge slice
	Source, Target string
	X1, Y1, X2, Y2 float64
	Width          float64
	Weight         int
	Label          string // weight label for heavy edges, "" otherwise
	LabelX, LabelY float64
	Opacity        float64
	Highlighted    bool
	Hovered        bool
}

// Highlight is the set of emphasized elements derived from the current
// selection: a selected node highlights all its incident edges, a
// selected edge highlights only itself.
type Highlight struct {
	Nodes map[string]struct{}
	Edges map[int]struct{}
}

// Active reports whether anything is highlighted
func (h Highlight) Active() bool {
	return len(h.Nodes) > 0 || len(h.Edges) > 0
}

// Hover marks the transient pointer-over element, cleared on
// pointer-out
type Hover struct {
	NodeID    string
	EdgeIndex int // -1 when not hovering an edge
}

// NoHover returns the empty hover state
func NoHover() Hover {
	return Hover{EdgeIndex: -1}
}

// Scene is the complete visible frame: the filtered scene projected
// through the camera, plus the static legend
type Scene struct {
	Nodes  []NodeSprite
	Edges  []EdgeSprite
	Legend Legend
	Camera Camera
}

// NodeRadius maps a connection count to a circle radius
func NodeRadius(connCount int) float64 {
	r := nodeRadiusMin + nodeRadiusScale*math.Sqrt(float64(connCount))
	return math.Min(r, nodeRadiusMax)
}

// EdgeWidth maps a co-occurrence weight to a stroke width tier
func EdgeWidth(weight int) float64 {
	switch {
	case weight >= 50:
		return EdgeWidthThick
	case weight >= 10:
		return EdgeWidthMedium
	default:
		return EdgeWidthThin
	}
}

// nodeColor applies the two-color scheme
func nodeColor(n *graph.Node) string {
	if n.IsBillionaire {
		return ColorBillionaire
	}
	return ColorEntity
}

// BuildScene projects the visible sets through the camera into draw
// sprites. Visibility comes entirely from the filter result; positions
// come from the most recent committed simulation snapshot.
func BuildScene(d *graph.Dataset, visible *filter.Result, positions map[string]layout.Position, cam Camera, hl Highlight, hover Hover) *Scene {
	scene := &Scene{
		Nodes:  make([]NodeSprite, 0, len(visible.NodeIDs)),
		Edges:  make([]EdgeSprite, 0, len(visible.EdgeIndices)),
		Legend: DefaultLegend(),
		Camera: cam,
	}
	dimOthers := hl.Active()

	for _, ei := range visible.EdgeIndices {
		e := d.Edges[ei]
		p1, ok1 := positions[e.Source]
		p2, ok2 := positions[e.Target]
		if !ok1 || !ok2 {
			continue
		}
		x1, y1 := cam.ToScreen(p1)
		x2, y2 := cam.ToScreen(p2)

		_, highlighted := hl.Edges[ei]
		hovered := hover.EdgeIndex == ei
		sp := EdgeSprite{
			Index:       ei,
			Source:      e.Source,
			Target:      e.Target,
			X1:          x1,
			Y1:          y1,
			X2:          x2,
			Y2:          y2,
			Width:       EdgeWidth(e.Weight),
			Weight:      e.Weight,
			Opacity:     elementOpacity(highlighted, hovered, dimOthers),
			Highlighted: highlighted,
			Hovered:     hovered,
		}
		if hovered {
			sp.Width += hoverStrokePad
		}
		if e.Weight > EdgeLabelMinWeight {
			sp.Label = strconv.Itoa(e.Weight)
			sp.LabelX = (x1 + x2) / 2
			sp.LabelY = (y1 + y2) / 2
		}
		scene.Edges = append(scene.Edges, sp)
	}

	for _, n := range d.Nodes {
		if !visible.NodeVisible(n.ID) {
			continue
		}
		p, ok := positions[n.ID]
		if !ok {
			continue
		}
		x, y := cam.ToScreen(p)
		_, highlighted := hl.Nodes[n.ID]
		hovered := hover.NodeID == n.ID
		scene.Nodes = append(scene.Nodes, NodeSprite{
			ID:          n.ID,
			Name:        n.Name,
			X:           x,
			Y:           y,
			Radius:      NodeRadius(n.ConnCount) * math.Max(cam.Scale, 0.5),
			Color:       nodeColor(n),
			Opacity:     elementOpacity(highlighted, hovered, dimOthers),
			Highlighted: highlighted,
			Hovered:     hovered,
		})
	}
	return scene
}

func elementOpacity(highlighted, hovered, dimOthers bool) float64 {
	switch {
	case hovered:
		return opacityHover
	case highlighted:
		return opacityHover
	case dimOthers:
		return opacityDimmed
	default:
		return opacityNormal
	}
}
