package meshsplit

import (
	"github.com/unixpickle/model3d/model2d"
)

// An edge is a directed segment of the cut cross-section.
//
// For a counter-clockwise border, the interior is on the left of every
// edge.
type edge struct {
	LeftIndex  int
	RightIndex int

	Left  model2d.Coord
	Right model2d.Coord

	LeftUV  model2d.Coord
	RightUV model2d.Coord
}

// joinEdges creates the edge from the start of e1 to the end of e2.
func joinEdges(e1, e2 *edge) edge {
	return edge{
		LeftIndex:  e1.LeftIndex,
		RightIndex: e2.RightIndex,
		Left:       e1.Left,
		Right:      e2.Right,
		LeftUV:     e1.LeftUV,
		RightUV:    e2.RightUV,
	}
}

// Normal gets the unit vector perpendicular to the edge, pointing to its
// left.
func (e *edge) Normal() model2d.Coord {
	d := e.Right.Sub(e.Left)
	n := model2d.XY(-d.Y, d.X)
	if norm := n.Norm(); norm != 0 {
		return n.Scale(1 / norm)
	}
	return n
}

// Side computes the signed distance of c from the line through e, which is
// positive on the left.
func (e *edge) Side(c model2d.Coord) float64 {
	return e.Normal().Dot(c.Sub(e.Left))
}

func (e *edge) Flip() {
	e.LeftIndex, e.RightIndex = e.RightIndex, e.LeftIndex
	e.Left, e.Right = e.Right, e.Left
	e.LeftUV, e.RightUV = e.RightUV, e.LeftUV
}

// SameVectors checks if both edges have the same endpoints in the same
// order.
func (e *edge) SameVectors(other *edge) bool {
	return coords2DEqual(e.Left, other.Left) && coords2DEqual(e.Right, other.Right)
}

// Intersects checks if the edge crosses the segment from p1 to p2 away from
// the endpoints of either segment.
func (e *edge) Intersects(p1, p2 model2d.Coord) bool {
	d1 := e.Right.Sub(e.Left)
	d2 := p2.Sub(p1)
	denom := cross2D(d1, d2)
	diff := p1.Sub(e.Left)
	ua := cross2D(diff, d2) / denom
	ub := cross2D(diff, d1) / denom
	return ua > Epsilon && ua < 1-Epsilon && ub > Epsilon && ub < 1-Epsilon
}
