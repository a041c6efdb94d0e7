package meshsplit

import (
	"math"

	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// A UVRect is a region of texture space that cap UVs are mapped into.
type UVRect struct {
	Min model2d.Coord
	Max model2d.Coord
}

// UnitUVRect covers the full texture.
var UnitUVRect = UVRect{Max: model2d.XY(1, 1)}

// mapBounds maps c from a bounding box into the rectangle. Degenerate
// bounding box dimensions map to the minimum of the rectangle.
func (u *UVRect) mapBounds(min, max, c model2d.Coord) model2d.Coord {
	size := max.Sub(min)
	rel := c.Sub(min)
	if size.X != 0 {
		rel.X /= size.X
	} else {
		rel.X = 0
	}
	if size.Y != 0 {
		rel.Y /= size.Y
	} else {
		rel.Y = 0
	}
	return u.Min.Add(rel.Mul(u.Max.Sub(u.Min)))
}

func bounds2D(points []model2d.Coord) (min, max model2d.Coord) {
	min = model2d.XY(math.Inf(1), math.Inf(1))
	max = min.Scale(-1)
	for _, p := range points {
		min = min.Min(p)
		max = max.Max(p)
	}
	return
}

// A projector maps world coordinates into the plane-local 2D space used to
// build caps.
type projector struct {
	inv *model3d.Matrix3
}

func newProjector(frame *model3d.Matrix3) projector {
	return projector{inv: frame.Inverse()}
}

func (p projector) Project(c model3d.Coord3D) model2d.Coord {
	local := p.inv.MulColumn(c)
	return model2d.XY(local.X, local.Z)
}

// ccwFaces checks if a triangle that is counter-clockwise in the projection
// faces along the unit normal n.
func (p projector) ccwFaces(n model3d.Coord3D) bool {
	b1, b2 := planeBasis(n)
	return cross2D(p.Project(b1), p.Project(b2)) > 0
}

type capCorner struct {
	Index int
	UV    model2d.Coord
}

// A capMesh is a triangulated cap referencing snapshot vertices.
//
// Triangles are counter-clockwise in the projection.
type capMesh struct {
	Corners   []capCorner
	Triangles []int

	lookup map[int]int
}

func (c *capMesh) Add(index int, uv model2d.Coord) int {
	if c.lookup == nil {
		c.lookup = map[int]int{}
	}
	if i, ok := c.lookup[index]; ok {
		return i
	}
	i := len(c.Corners)
	c.lookup[index] = i
	c.Corners = append(c.Corners, capCorner{Index: index, UV: uv})
	return i
}

func (c *capMesh) AddTriangle(i1, i2, i3 int) {
	c.Triangles = append(c.Triangles, i1, i2, i3)
}

func (c *capMesh) NumTriangles() int {
	return len(c.Triangles) / 3
}

// materializeCap adds one copy of the cap to each side of the snapshot.
//
// The upper copy faces against the plane normal and the lower copy faces
// along it.
func (s *Splitter) materializeCap(c *capMesh) {
	if c.NumTriangles() == 0 {
		return
	}
	worldNormal := s.plane.Normal.Normalize()
	normal := worldNormal
	if s.config.MeshRotation != nil {
		normal = s.config.MeshRotation.Inverse().MulColumn(normal).Normalize()
	}
	ccwUp := s.projector.ccwFaces(worldNormal)

	upper := make([]int, len(c.Corners))
	lower := make([]int, len(c.Corners))
	for i, corner := range c.Corners {
		if s.config.CapUV {
			upper[i] = s.snapshot.AddCapVertexUV(corner.Index, normal.Scale(-1), corner.UV)
			lower[i] = s.snapshot.AddCapVertexUV(corner.Index, normal, corner.UV)
		} else {
			upper[i] = s.snapshot.AddCapVertex(corner.Index, normal.Scale(-1))
			lower[i] = s.snapshot.AddCapVertex(corner.Index, normal)
		}
	}
	for i := 0; i < len(c.Triangles); i += 3 {
		i1, i2, i3 := c.Triangles[i], c.Triangles[i+1], c.Triangles[i+2]
		if ccwUp {
			s.snapshot.AddUpper(upper[i1], upper[i3], upper[i2])
			s.snapshot.AddLower(lower[i1], lower[i2], lower[i3])
		} else {
			s.snapshot.AddUpper(upper[i1], upper[i2], upper[i3])
			s.snapshot.AddLower(lower[i1], lower[i3], lower[i2])
		}
	}
}
