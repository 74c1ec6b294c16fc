package render

import (
	"fmt"
	"io"
	"math"

	"github.com/archiveview/graphview/pkg/logging"
)

// SVGRenderer draws scenes as standalone SVG documents. Used by the
// CLI export path and by tests that need to assert on drawn output
// without a live surface.
type SVGRenderer struct {
	w   io.Writer
	log logging.Logger
}

// NewSVGRenderer creates an SVG renderer targeting the given writer
func NewSVGRenderer(w io.Writer, logger logging.Logger) *SVGRenderer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &SVGRenderer{w: w, log: logger.With(logging.Component("render"))}
}

// Draw writes one complete SVG document for the scene. Elements with
// unusable geometry (NaN or infinite coordinates from a diverged
// layout) are skipped and logged, never fatal for the frame.
func (r *SVGRenderer) Draw(scene *Scene) error {
	if r.w == nil {
		return ErrRenderTargetUnavailable
	}

	w := scene.Camera.ViewW
	h := scene.Camera.ViewH
	if _, err := fmt.Fprintf(r.w,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		w, h, w, h); err != nil {
		return fmt.Errorf("writing svg header: %w", err)
	}

	for i := range scene.Edges {
		e := &scene.Edges[i]
		if !finite(e.X1, e.Y1, e.X2, e.Y2) {
			r.log.Debug("skipping edge with unusable geometry",
				logging.EdgeKey(e.Source, e.Target))
			continue
		}
		stroke := ColorEdge
		if e.Highlighted || e.Hovered {
			stroke = ColorHighlight
		}
		fmt.Fprintf(r.w,
			`  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f" stroke-opacity="%.2f"/>`+"\n",
			e.X1, e.Y1, e.X2, e.Y2, stroke, e.Width, e.Opacity)
		if e.Label != "" {
			fmt.Fprintf(r.w,
				`  <text x="%.1f" y="%.1f" font-size="10" text-anchor="middle">%s</text>`+"\n",
				e.LabelX, e.LabelY, e.Label)
		}
	}

	for i := range scene.Nodes {
		n := &scene.Nodes[i]
		if !finite(n.X, n.Y, n.Radius) {
			r.log.Debug("skipping node with unusable geometry", logging.EntityID(n.ID))
			continue
		}
		stroke := ""
		if n.Highlighted || n.Hovered {
			stroke = fmt.Sprintf(` stroke="%s" stroke-width="2"`, ColorHighlight)
		}
		fmt.Fprintf(r.w,
			`  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" fill-opacity="%.2f"%s/>`+"\n",
			n.X, n.Y, n.Radius, n.Color, n.Opacity, stroke)
	}

	r.drawLegend(scene)

	if _, err := io.WriteString(r.w, "</svg>\n"); err != nil {
		return fmt.Errorf("writing svg footer: %w", err)
	}
	return nil
}

func (r *SVGRenderer) drawLegend(scene *Scene) {
	y := 20.0
	for _, entry := range scene.Legend.Entries {
		switch entry.Swatch {
		case "thin", "medium", "thick":
			width := EdgeWidthThin
			if entry.Swatch == "medium" {
				width = EdgeWidthMedium
			} else if entry.Swatch == "thick" {
				width = EdgeWidthThick
			}
			fmt.Fprintf(r.w,
				`  <line x1="10" y1="%.1f" x2="30" y2="%.1f" stroke="%s" stroke-width="%.1f"/>`+"\n",
				y-4, y-4, ColorEdge, width)
		default:
			fmt.Fprintf(r.w,
				`  <rect x="10" y="%.1f" width="20" height="10" fill="%s"/>`+"\n",
				y-10, entry.Swatch)
		}
		fmt.Fprintf(r.w,
			`  <text x="36" y="%.1f" font-size="11">%s</text>`+"\n", y, entry.Label)
		y += 16
	}
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
