package meshsplit

import (
	"math"

	"github.com/pkg/errors"
	"github.com/ungerik/go3d/float64/mat4"
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
	"golang.org/x/exp/constraints"
)

// A Vec4 is a four component vector, used for tangents where W stores the
// handedness of the bitangent.
type Vec4 struct {
	X, Y, Z, W float64
}

// XYZ returns the first three components.
func (v Vec4) XYZ() model3d.Coord3D {
	return model3d.XYZ(v.X, v.Y, v.Z)
}

func (v Vec4) Lerp(v1 Vec4, t float64) Vec4 {
	return Vec4{
		X: lerp(v.X, v1.X, t),
		Y: lerp(v.Y, v1.Y, t),
		Z: lerp(v.Z, v1.Z, t),
		W: lerp(v.W, v1.W, t),
	}
}

// A Color is a linear RGBA vertex color.
type Color struct {
	R, G, B, A float64
}

func (c Color) Lerp(c1 Color, t float64) Color {
	return Color{
		R: lerp(c.R, c1.R, t),
		G: lerp(c.G, c1.G, t),
		B: lerp(c.B, c1.B, t),
		A: lerp(c.A, c1.A, t),
	}
}

// A BoneWeight binds a vertex to up to four bones.
//
// Unused slots should have a weight of zero.
type BoneWeight struct {
	Indices [4]int
	Weights [4]float64
}

// A Mesh is an indexed triangle mesh with optional per-vertex attribute
// channels.
//
// Every non-empty channel must have exactly one entry per position.
// Each group of three entries in Triangles forms one triangle.
type Mesh struct {
	Positions   []model3d.Coord3D
	Normals     []model3d.Coord3D
	Tangents    []Vec4
	UV          []model2d.Coord
	UV2         []model2d.Coord
	Colors      []Color
	BoneWeights []BoneWeight

	// BindPoses holds the inverse bind pose matrix of every bone referenced
	// by BoneWeights. It is carried through splits unchanged.
	BindPoses []mat4.T

	Triangles []int
}

func (m *Mesh) NumVertices() int {
	return len(m.Positions)
}

func (m *Mesh) NumTriangles() int {
	return len(m.Triangles) / 3
}

// Validate checks that every channel has the right length and that every
// triangle and bone index is in range.
func (m *Mesh) Validate() error {
	n := len(m.Positions)
	channels := []struct {
		name string
		size int
	}{
		{"normals", len(m.Normals)},
		{"tangents", len(m.Tangents)},
		{"uv", len(m.UV)},
		{"uv2", len(m.UV2)},
		{"colors", len(m.Colors)},
		{"bone weights", len(m.BoneWeights)},
	}
	for _, ch := range channels {
		if ch.size != 0 && ch.size != n {
			return errors.Errorf("validate mesh: %s has %d entries but mesh has %d vertices",
				ch.name, ch.size, n)
		}
	}
	if len(m.Triangles)%3 != 0 {
		return errors.Errorf("validate mesh: triangle index count %d is not a multiple of 3",
			len(m.Triangles))
	}
	for _, idx := range m.Triangles {
		if idx < 0 || idx >= n {
			return errors.Errorf("validate mesh: triangle index %d out of range", idx)
		}
	}
	if len(m.BindPoses) > 0 {
		for i, bw := range m.BoneWeights {
			for j, bone := range bw.Indices {
				if bw.Weights[j] != 0 && (bone < 0 || bone >= len(m.BindPoses)) {
					return errors.Errorf("validate mesh: vertex %d references bone %d of %d",
						i, bone, len(m.BindPoses))
				}
			}
		}
	}
	return nil
}

// Min gets the minimum corner of the bounding box of all referenced
// vertices.
func (m *Mesh) Min() model3d.Coord3D {
	min, _ := m.bounds()
	return min
}

// Max gets the maximum corner of the bounding box of all referenced
// vertices.
func (m *Mesh) Max() model3d.Coord3D {
	_, max := m.bounds()
	return max
}

func (m *Mesh) bounds() (min, max model3d.Coord3D) {
	if len(m.Triangles) == 0 {
		return
	}
	min = model3d.XYZ(math.Inf(1), math.Inf(1), math.Inf(1))
	max = min.Scale(-1)
	for _, idx := range m.Triangles {
		p := m.Positions[idx]
		min = min.Min(p)
		max = max.Max(p)
	}
	return
}

// Triangle gets the positions of the i-th triangle.
func (m *Mesh) Triangle(i int) *model3d.Triangle {
	return &model3d.Triangle{
		m.Positions[m.Triangles[i*3]],
		m.Positions[m.Triangles[i*3+1]],
		m.Positions[m.Triangles[i*3+2]],
	}
}

// Model3D converts the triangles of m into a model3d mesh, dropping every
// attribute besides position.
func (m *Mesh) Model3D() *model3d.Mesh {
	res := model3d.NewMesh()
	for i := 0; i < m.NumTriangles(); i++ {
		res.Add(m.Triangle(i))
	}
	return res
}

// NewMeshModel3D creates an indexed mesh from a model3d mesh, welding
// vertices with identical positions.
func NewMeshModel3D(mesh *model3d.Mesh) *Mesh {
	return NewMeshTriangles(mesh.TriangleSlice())
}

// NewMeshTriangles creates an indexed mesh from a list of triangles,
// welding vertices with identical positions.
func NewMeshTriangles(tris []*model3d.Triangle) *Mesh {
	res := &Mesh{}
	indices := map[model3d.Coord3D]int{}
	for _, t := range tris {
		for _, c := range t {
			idx, ok := indices[c]
			if !ok {
				idx = len(res.Positions)
				indices[c] = idx
				res.Positions = append(res.Positions, c)
			}
			res.Triangles = append(res.Triangles, idx)
		}
	}
	return res
}

func lerp[F constraints.Float](a, b, t F) F {
	return a + (b-a)*t
}

func lerpCoord3D(a, b model3d.Coord3D, t float64) model3d.Coord3D {
	return a.Add(b.Sub(a).Scale(t))
}

func lerpCoord2D(a, b model2d.Coord, t float64) model2d.Coord {
	return a.Add(b.Sub(a).Scale(t))
}
