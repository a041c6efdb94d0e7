package meshsplit

import (
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// A Plane is a cutting plane described by a point on the plane and a normal.
//
// The upper side of the plane is the half-space the normal points into.
type Plane struct {
	Point  model3d.Coord3D
	Normal model3d.Coord3D
}

// Validate returns an error if the plane cannot be used for a split.
func (p *Plane) Validate() error {
	for _, c := range []model3d.Coord3D{p.Point, p.Normal} {
		for _, x := range c.Array() {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return errors.New("validate plane: non-finite component")
			}
		}
	}
	if p.Normal.Norm() == 0 {
		return errors.New("validate plane: zero normal")
	}
	return nil
}

// PointSide returns a value that is positive on the upper side of the plane,
// negative on the lower side, and zero on the plane.
func (p *Plane) PointSide(c model3d.Coord3D) float64 {
	return p.Normal.Dot(c.Sub(p.Point))
}

// LineIntersect finds the parameter t such that a+(b-a)*t is on the plane.
//
// The result is NaN or infinite when the segment is parallel to the plane.
func (p *Plane) LineIntersect(a, b model3d.Coord3D) float64 {
	return p.Normal.Dot(p.Point.Sub(a)) / p.Normal.Dot(b.Sub(a))
}

// Translate returns a copy of the plane with its point moved by offset.
func (p *Plane) Translate(offset model3d.Coord3D) *Plane {
	return &Plane{Point: p.Point.Add(offset), Normal: p.Normal}
}

// Flip returns the plane with the upper and lower sides swapped.
func (p *Plane) Flip() *Plane {
	return &Plane{Point: p.Point, Normal: p.Normal.Scale(-1)}
}

// Frame creates a rotation whose Y axis is the unit normal of the plane.
//
// The inverse of the frame projects world coordinates into a plane-local
// space where the X and Z components span the plane.
func (p *Plane) Frame() *model3d.Matrix3 {
	n := p.Normal.Normalize()
	ex, _ := planeBasis(n)
	ez := ex.Cross(n)
	return model3d.NewMatrix3Columns(ex, n, ez)
}

// planeBasis creates two orthonormal vectors tangent to a plane with unit
// normal n, such that b1 x b2 = n.
func planeBasis(n model3d.Coord3D) (b1, b2 model3d.Coord3D) {
	axis := model3d.X(1)
	if math.Abs(n.X) > 0.9 {
		axis = model3d.Y(1)
	}
	b1 = axis.Sub(n.Scale(axis.Dot(n))).Normalize()
	b2 = n.Cross(b1)
	return
}
