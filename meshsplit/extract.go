package meshsplit

import (
	"github.com/ungerik/go3d/float64/mat4"
)

// Upper extracts the mesh on the upper side of the plane, or nil if no
// triangles were routed there.
func (s *Snapshot) Upper() *Mesh {
	if !s.HasUpper() {
		return nil
	}
	return s.ExtractSubMesh(s.upper)
}

// Lower extracts the mesh on the lower side of the plane, or nil if no
// triangles were routed there.
func (s *Snapshot) Lower() *Mesh {
	if !s.HasLower() {
		return nil
	}
	return s.ExtractSubMesh(s.lower)
}

// ExtractSubMesh creates an independent mesh containing the given triangles
// and only the vertices they reference.
//
// Vertices are numbered in order of first use and triangle winding is
// preserved.
func (s *Snapshot) ExtractSubMesh(tris []int) *Mesh {
	remap := make([]int, s.NumVertices())
	for i := range remap {
		remap[i] = -1
	}
	res := &Mesh{
		Triangles: make([]int, len(tris)),
	}
	if len(s.bindPoses) > 0 {
		res.BindPoses = append([]mat4.T{}, s.bindPoses...)
	}
	for i, idx := range tris {
		if remap[idx] == -1 {
			remap[idx] = res.NumVertices()
			s.appendVertex(res, idx)
		}
		res.Triangles[i] = remap[idx]
	}
	return res
}

func (s *Snapshot) appendVertex(m *Mesh, idx int) {
	st, i := s.store(idx)
	m.Positions = append(m.Positions, st.Positions[i])
	if s.hasNormals {
		m.Normals = append(m.Normals, st.Normals[i])
	}
	if s.hasTangents {
		m.Tangents = append(m.Tangents, st.Tangents[i])
	}
	if s.hasUV {
		m.UV = append(m.UV, st.UV[i])
	}
	if s.hasUV2 {
		m.UV2 = append(m.UV2, st.UV2[i])
	}
	if s.hasColors {
		m.Colors = append(m.Colors, st.Colors[i])
	}
	if s.hasBoneWeights {
		m.BoneWeights = append(m.BoneWeights, st.BoneWeights[i])
	}
}
