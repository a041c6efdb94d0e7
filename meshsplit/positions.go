package meshsplit

import (
	"github.com/pkg/errors"
	"github.com/ungerik/go3d/float64/mat4"
	"github.com/ungerik/go3d/float64/vec3"
	"github.com/unixpickle/model3d/model3d"
)

// A PositionProvider computes the world-space position of every vertex in a
// mesh at the moment a split starts.
type PositionProvider interface {
	WorldPositions(m *Mesh) ([]model3d.Coord3D, error)
}

// StaticPositions places a mesh rigidly in the world.
type StaticPositions struct {
	// Transform maps mesh coordinates to world coordinates.
	// If nil, the identity is used.
	Transform model3d.Transform
}

func (s *StaticPositions) WorldPositions(m *Mesh) ([]model3d.Coord3D, error) {
	res := make([]model3d.Coord3D, len(m.Positions))
	for i, p := range m.Positions {
		if s.Transform == nil {
			res[i] = p
		} else {
			res[i] = s.Transform.Apply(p)
		}
	}
	return res, nil
}

// SkinnedPositions deforms a mesh with a set of bones.
//
// Each vertex is moved by the weighted sum of (bone * bind pose) matrices for
// the bones it references, using the bind poses stored in the mesh.
type SkinnedPositions struct {
	// Bones holds the current bone-to-world matrix of each bone.
	Bones []mat4.T
}

func (s *SkinnedPositions) WorldPositions(m *Mesh) ([]model3d.Coord3D, error) {
	if len(m.BoneWeights) != len(m.Positions) {
		return nil, errors.New("skinned positions: mesh has no bone weights")
	}
	if len(s.Bones) != len(m.BindPoses) {
		return nil, errors.Errorf("skinned positions: got %d bones but %d bind poses",
			len(s.Bones), len(m.BindPoses))
	}
	skin := make([]mat4.T, len(s.Bones))
	for i := range s.Bones {
		skin[i].AssignMul(&s.Bones[i], &m.BindPoses[i])
	}

	res := make([]model3d.Coord3D, len(m.Positions))
	for i, p := range m.Positions {
		bw := m.BoneWeights[i]
		var blend mat4.T
		for j, bone := range bw.Indices {
			w := bw.Weights[j]
			if w == 0 {
				continue
			}
			if bone < 0 || bone >= len(skin) {
				return nil, errors.Errorf("skinned positions: vertex %d references bone %d", i, bone)
			}
			for col := 0; col < 4; col++ {
				for row := 0; row < 3; row++ {
					blend[col][row] += skin[bone][col][row] * w
				}
			}
		}
		blend[3][3] = 1
		v := vec3.T{p.X, p.Y, p.Z}
		out := blend.MulVec3(&v)
		res[i] = model3d.XYZ(out[0], out[1], out[2])
	}
	return res, nil
}
