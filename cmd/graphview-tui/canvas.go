package main

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/archiveview/graphview/pkg/render"
)

// cellCanvas renders scenes onto a character grid. It implements
// render.Renderer; View() composes the grid into a string for
// bubbletea. Scene coordinates are in pixels; the canvas maps them
// onto cells, two pixels per column and four per row to roughly
// square the aspect ratio.
type cellCanvas struct {
	cols, rows int
	runes      [][]rune
	styles     [][]lipgloss.Style

	pxPerCol float64
	pxPerRow float64
}

var (
	entityStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#4a90d9"))
	billionaireStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d4a017"))
	edgeStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#6a6a6a"))
	highlightStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e8443a")).Bold(true)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#bbbbbb"))
)

func newCellCanvas(cols, rows int, viewW, viewH float64) *cellCanvas {
	c := &cellCanvas{
		cols:     cols,
		rows:     rows,
		pxPerCol: viewW / float64(cols),
		pxPerRow: viewH / float64(rows),
	}
	c.runes = make([][]rune, rows)
	c.styles = make([][]lipgloss.Style, rows)
	for y := range c.runes {
		c.runes[y] = make([]rune, cols)
		c.styles[y] = make([]lipgloss.Style, cols)
	}
	return c
}

func (c *cellCanvas) clear() {
	for y := range c.runes {
		for x := range c.runes[y] {
			c.runes[y][x] = ' '
			c.styles[y][x] = lipgloss.NewStyle()
		}
	}
}

func (c *cellCanvas) cell(px, py float64) (int, int, bool) {
	x := int(px / c.pxPerCol)
	y := int(py / c.pxPerRow)
	if x < 0 || x >= c.cols || y < 0 || y >= c.rows {
		return 0, 0, false
	}
	return x, y, true
}

func (c *cellCanvas) put(x, y int, r rune, st lipgloss.Style) {
	if x < 0 || x >= c.cols || y < 0 || y >= c.rows {
		return
	}
	c.runes[y][x] = r
	c.styles[y][x] = st
}

// Draw renders the scene onto the grid: edges first, then nodes on
// top, then edge weight labels
func (c *cellCanvas) Draw(scene *render.Scene) error {
	if c.cols == 0 || c.rows == 0 {
		return render.ErrRenderTargetUnavailable
	}
	c.clear()

	for i := range scene.Edges {
		c.drawEdge(&scene.Edges[i])
	}
	for i := range scene.Nodes {
		c.drawNode(&scene.Nodes[i])
	}
	for i := range scene.Edges {
		e := &scene.Edges[i]
		if e.Label == "" {
			continue
		}
		if x, y, ok := c.cell(e.LabelX, e.LabelY); ok {
			for j, r := range e.Label {
				c.put(x+j, y, r, labelStyle)
			}
		}
	}
	return nil
}

func (c *cellCanvas) drawEdge(e *render.EdgeSprite) {
	if math.IsNaN(e.X1) || math.IsNaN(e.Y1) || math.IsNaN(e.X2) || math.IsNaN(e.Y2) {
		return
	}
	st := edgeStyle
	if e.Highlighted || e.Hovered {
		st = highlightStyle
	}
	ch := edgeRune(e.Weight)

	// Clip to the canvas first so a segment leaving the screen is
	// rasterized along its true direction up to the border
	cx1, cy1, cx2, cy2, ok := c.clipSegment(e.X1, e.Y1, e.X2, e.Y2)
	if !ok {
		return
	}
	x1 := clamp(int(cx1/c.pxPerCol), 0, c.cols-1)
	y1 := clamp(int(cy1/c.pxPerRow), 0, c.rows-1)
	x2 := clamp(int(cx2/c.pxPerCol), 0, c.cols-1)
	y2 := clamp(int(cy2/c.pxPerRow), 0, c.rows-1)

	// Bresenham between the two cells
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy
	x, y := x1, y1
	for {
		if c.inGrid(x, y) && c.runes[y][x] == ' ' {
			c.put(x, y, ch, st)
		}
		if x == x2 && y == y2 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func (c *cellCanvas) drawNode(n *render.NodeSprite) {
	x, y, ok := c.cell(n.X, n.Y)
	if !ok {
		return
	}
	st := entityStyle
	if n.Color == render.ColorBillionaire {
		st = billionaireStyle
	}
	if n.Highlighted || n.Hovered {
		st = highlightStyle
	}
	c.put(x, y, nodeRune(n), st)
}

func (c *cellCanvas) inGrid(x, y int) bool {
	return x >= 0 && x < c.cols && y >= 0 && y < c.rows
}

// clipSegment trims a pixel-space segment to the canvas rectangle
// (Liang-Barsky). Reports false when the segment misses the canvas
// entirely.
func (c *cellCanvas) clipSegment(x1, y1, x2, y2 float64) (float64, float64, float64, float64, bool) {
	w := float64(c.cols) * c.pxPerCol
	h := float64(c.rows) * c.pxPerRow
	dx, dy := x2-x1, y2-y1

	t0, t1 := 0.0, 1.0
	for _, edge := range [4][2]float64{{-dx, x1}, {dx, w - x1}, {-dy, y1}, {dy, h - y1}} {
		p, q := edge[0], edge[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	return x1 + t0*dx, y1 + t0*dy, x1 + t1*dx, y1 + t1*dy, true
}

// View composes the grid plus an overlaid cursor into a printable string
func (c *cellCanvas) View(cursorX, cursorY int) string {
	var b strings.Builder
	for y := 0; y < c.rows; y++ {
		for x := 0; x < c.cols; x++ {
			if x == cursorX && y == cursorY {
				b.WriteString(highlightStyle.Render("┼"))
				continue
			}
			r := c.runes[y][x]
			if r == ' ' {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(c.styles[y][x].Render(string(r)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// pixel returns the pixel center of a cell, for hit-testing at the
// cursor
func (c *cellCanvas) pixel(x, y int) (float64, float64) {
	return (float64(x) + 0.5) * c.pxPerCol, (float64(y) + 0.5) * c.pxPerRow
}

func nodeRune(n *render.NodeSprite) rune {
	switch {
	case n.Radius >= 14:
		return '◉'
	case n.Radius >= 8:
		return '●'
	default:
		return '•'
	}
}

func edgeRune(weight int) rune {
	switch {
	case weight >= 50:
		return '█'
	case weight >= 10:
		return '▒'
	default:
		return '·'
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
