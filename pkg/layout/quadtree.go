package layout

import "math"

// quadTree is a Barnes-Hut approximation tree over node positions.
// Rebuilt every tick; approximates the repulsion a node feels from a
// distant cluster by the cluster's center of mass, dropping the
// per-tick cost from O(N^2) to O(N log N).
type quadTree struct {
	nodes []quadNode
	theta float64
}

// quadNode is one cell of the tree. Leaf cells hold a single body;
// internal cells hold aggregate mass and center of mass of their
// subtree. Children are indices into quadTree.nodes, -1 when absent.
type quadNode struct {
	x, y, half float64 // cell center and half-extent

	comX, comY float64 // center of mass
	mass       float64

	body     int // body index for leaves, -1 otherwise
	children [4]int
	leaf     bool
}

func newQuadTree(theta float64) *quadTree {
	return &quadTree{theta: theta}
}

// build rebuilds the tree over the given positions
func (qt *quadTree) build(pos []vec2) {
	qt.nodes = qt.nodes[:0]
	if len(pos) == 0 {
		return
	}

	minX, minY := pos[0].X, pos[0].Y
	maxX, maxY := minX, minY
	for _, p := range pos[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	half := (maxX - minX) / 2
	if h := (maxY - minY) / 2; h > half {
		half = h
	}
	half += 1e-6 // open bound so max-coordinate bodies land inside

	qt.newCell((minX+maxX)/2, (minY+maxY)/2, half)
	for i := range pos {
		qt.insert(0, i, pos)
	}
	qt.aggregate(0, pos)
}

func (qt *quadTree) newCell(x, y, half float64) int {
	qt.nodes = append(qt.nodes, quadNode{
		x: x, y: y, half: half,
		body:     -1,
		children: [4]int{-1, -1, -1, -1},
		leaf:     true,
	})
	return len(qt.nodes) - 1
}

// quadrant returns which child cell of c contains (x, y)
func (qt *quadTree) quadrant(c int, x, y float64) int {
	q := 0
	if x >= qt.nodes[c].x {
		q |= 1
	}
	if y >= qt.nodes[c].y {
		q |= 2
	}
	return q
}

func (qt *quadTree) childCell(c, q int) int {
	if qt.nodes[c].children[q] >= 0 {
		return qt.nodes[c].children[q]
	}
	h := qt.nodes[c].half / 2
	cx := qt.nodes[c].x - h
	cy := qt.nodes[c].y - h
	if q&1 != 0 {
		cx = qt.nodes[c].x + h
	}
	if q&2 != 0 {
		cy = qt.nodes[c].y + h
	}
	child := qt.newCell(cx, cy, h)
	qt.nodes[c].children[q] = child
	return child
}

func (qt *quadTree) insert(c, body int, pos []vec2) {
	const minHalf = 1e-9

	for {
		n := &qt.nodes[c]
		if n.leaf && n.body < 0 {
			n.body = body
			return
		}
		if n.leaf {
			// Split: push the resident body down, unless the cell is
			// already degenerate (coincident bodies), in which case the
			// extra body is folded into the aggregate during aggregation
			if n.half <= minHalf {
				n.mass++ // coincident marker, resolved in aggregate
				return
			}
			resident := n.body
			n.body = -1
			n.leaf = false
			rq := qt.quadrant(c, pos[resident].X, pos[resident].Y)
			rc := qt.childCell(c, rq)
			qt.nodes[rc].body = resident
		}
		q := qt.quadrant(c, pos[body].X, pos[body].Y)
		c = qt.childCell(c, q)
	}
}

// aggregate fills mass and center of mass bottom-up
func (qt *quadTree) aggregate(c int, pos []vec2) (mass, mx, my float64) {
	n := &qt.nodes[c]
	if n.leaf {
		if n.body < 0 {
			return 0, 0, 0
		}
		extra := n.mass // coincident bodies folded in during insert
		n.mass = 1 + extra
		n.comX = pos[n.body].X
		n.comY = pos[n.body].Y
		return n.mass, n.comX * n.mass, n.comY * n.mass
	}
	var tm, tx, ty float64
	for _, ch := range n.children {
		if ch < 0 {
			continue
		}
		m, x, y := qt.aggregate(ch, pos)
		tm += m
		tx += x
		ty += y
	}
	n.mass = tm
	if tm > 0 {
		n.comX = tx / tm
		n.comY = ty / tm
	}
	return tm, tx, ty
}

// force accumulates the approximate repulsion on body i under the
// inverse-square law with the given strength
func (qt *quadTree) force(i int, pos []vec2, strength float64) vec2 {
	if len(qt.nodes) == 0 {
		return vec2{}
	}
	var out vec2
	qt.forceFrom(0, i, pos, strength, &out)
	return out
}

func (qt *quadTree) forceFrom(c, i int, pos []vec2, strength float64, out *vec2) {
	n := &qt.nodes[c]
	if n.mass == 0 || (n.leaf && n.body == i && n.mass <= 1) {
		return
	}

	dx := pos[i].X - n.comX
	dy := pos[i].Y - n.comY
	distSq := dx*dx + dy*dy

	// Cell far enough away (or a leaf): treat as a point mass
	if n.leaf || (4*n.half*n.half) < qt.theta*qt.theta*distSq {
		mass := n.mass
		if n.leaf && n.body == i {
			mass-- // exclude self from a coincident stack
		}
		if distSq < minSeparationSq {
			distSq = minSeparationSq
			// Coincident bodies get a deterministic nudge on the x axis
			dx, dy = minSeparation, 0
		}
		f := strength * mass / distSq
		invDist := 1 / math.Sqrt(distSq)
		out.X += dx * invDist * f
		out.Y += dy * invDist * f
		return
	}

	for _, ch := range n.children {
		if ch >= 0 {
			qt.forceFrom(ch, i, pos, strength, out)
		}
	}
}
