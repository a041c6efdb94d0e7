package meshsplit

import (
	"math"

	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// Epsilon is the tolerance used by every geometric comparison in this
// package.
const Epsilon = 1e-5

func coordsEqual(c1, c2 model3d.Coord3D) bool {
	return math.Abs(c1.X-c2.X) <= Epsilon &&
		math.Abs(c1.Y-c2.Y) <= Epsilon &&
		math.Abs(c1.Z-c2.Z) <= Epsilon
}

func coords2DEqual(c1, c2 model2d.Coord) bool {
	return math.Abs(c1.X-c2.X) <= Epsilon && math.Abs(c1.Y-c2.Y) <= Epsilon
}

// isHit checks if an intersection parameter is strictly inside a segment.
// NaN and infinite values are never hits.
func isHit(t float64) bool {
	return t > 0 && t < 1
}

// triangleSide decides which half-space an uncut triangle belongs to, given
// the plane side of each of its vertices.
//
// The first vertex that is clearly off the plane decides. If every vertex
// lies on the plane, the last one decides.
func triangleSide(sides [3]float64) (upper bool) {
	for _, s := range sides {
		if math.Abs(s) > Epsilon {
			return s > 0
		}
	}
	return sides[2] >= 0
}

// cross2D computes the z component of the cross product of two planar
// vectors.
func cross2D(c1, c2 model2d.Coord) float64 {
	return c1.X*c2.Y - c1.Y*c2.X
}

// coordLess orders coordinates lexicographically.
func coordLess(c1, c2 model3d.Coord3D) bool {
	if c1.X != c2.X {
		return c1.X < c2.X
	} else if c1.Y != c2.Y {
		return c1.Y < c2.Y
	}
	return c1.Z < c2.Z
}
