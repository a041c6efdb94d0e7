package meshsplit

import (
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// AddLerpVertex synthesizes a vertex between two existing vertices and
// returns its global index.
//
// Every enabled channel is interpolated linearly, except for bone weights
// which are copied from whichever endpoint is closer.
func (s *Snapshot) AddLerpVertex(from, to int, t float64) int {
	index := s.NumVertices()
	a, i := s.store(from)
	b, j := s.store(to)
	d := &s.added

	d.World = append(d.World, lerpCoord3D(a.World[i], b.World[j], t))
	d.Positions = append(d.Positions, lerpCoord3D(a.Positions[i], b.Positions[j], t))
	if s.hasNormals {
		d.Normals = append(d.Normals, lerpCoord3D(a.Normals[i], b.Normals[j], t))
	}
	if s.hasTangents {
		d.Tangents = append(d.Tangents, a.Tangents[i].Lerp(b.Tangents[j], t))
	}
	if s.hasUV {
		d.UV = append(d.UV, lerpCoord2D(a.UV[i], b.UV[j], t))
	}
	if s.hasUV2 {
		d.UV2 = append(d.UV2, lerpCoord2D(a.UV2[i], b.UV2[j], t))
	}
	if s.hasColors {
		d.Colors = append(d.Colors, a.Colors[i].Lerp(b.Colors[j], t))
	}
	if s.hasBoneWeights {
		if t >= 0.5 {
			d.BoneWeights = append(d.BoneWeights, b.BoneWeights[j])
		} else {
			d.BoneWeights = append(d.BoneWeights, a.BoneWeights[i])
		}
	}
	return index
}

// AddCapVertex duplicates a vertex with a new normal, keeping the UV of the
// referenced vertex.
func (s *Snapshot) AddCapVertex(ref int, normal model3d.Coord3D) int {
	return s.AddCapVertexUV(ref, normal, s.UV(ref))
}

// AddCapVertexUV duplicates a vertex with a new normal and UV, and returns
// the global index of the duplicate.
//
// Position, color, UV2 and bone weights are copied. The tangent is derived
// from the normal.
func (s *Snapshot) AddCapVertexUV(ref int, normal model3d.Coord3D, uv model2d.Coord) int {
	index := s.NumVertices()
	a, i := s.store(ref)
	d := &s.added

	d.World = append(d.World, a.World[i])
	d.Positions = append(d.Positions, a.Positions[i])
	if s.hasUV2 {
		d.UV2 = append(d.UV2, a.UV2[i])
	}
	if s.hasColors {
		d.Colors = append(d.Colors, a.Colors[i])
	}
	if s.hasBoneWeights {
		d.BoneWeights = append(d.BoneWeights, a.BoneWeights[i])
	}
	if s.hasNormals {
		d.Normals = append(d.Normals, normal)
	}
	if s.hasUV {
		d.UV = append(d.UV, uv)
	}
	if s.hasTangents {
		d.Tangents = append(d.Tangents, capTangent(normal))
	}
	return index
}

func capTangent(normal model3d.Coord3D) Vec4 {
	c1 := normal.Cross(model3d.Z(1))
	c2 := normal.Cross(model3d.Y(1))
	t := c2
	if c1.Dot(c1) > c2.Dot(c2) {
		t = c1
	}
	if norm := t.Norm(); norm != 0 {
		t = t.Scale(1 / norm)
	}
	return Vec4{X: t.X, Y: t.Y, Z: t.Z, W: 1}
}
