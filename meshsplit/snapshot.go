package meshsplit

import (
	"github.com/pkg/errors"
	"github.com/ungerik/go3d/float64/mat4"
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// A VertexRef locates a vertex in one of the two vertex stores of a
// Snapshot.
type VertexRef struct {
	// Added is true for vertices synthesized during a split.
	Added bool

	// Index is relative to the selected store.
	Index int
}

// vertexStore holds parallel attribute streams. A disabled channel stays
// nil for the lifetime of the store.
type vertexStore struct {
	World       []model3d.Coord3D
	Positions   []model3d.Coord3D
	Normals     []model3d.Coord3D
	Tangents    []Vec4
	UV          []model2d.Coord
	UV2         []model2d.Coord
	Colors      []Color
	BoneWeights []BoneWeight
}

// A Snapshot is the working state of one split.
//
// Vertex indices in [0, N) refer to the N source vertices, while indices
// N+k refer to the k-th synthesized vertex. Use Ref to tell them apart.
//
// A Snapshot is not safe for concurrent use.
type Snapshot struct {
	source    vertexStore
	added     vertexStore
	numSource int
	bindPoses []mat4.T

	hasNormals     bool
	hasTangents    bool
	hasUV          bool
	hasUV2         bool
	hasColors      bool
	hasBoneWeights bool

	provider PositionProvider

	sourceTriangles []int

	upper []int
	lower []int
}

// NewSnapshot copies the streams of m and computes world positions using p.
//
// If p is nil, the mesh coordinates are treated as world coordinates.
func NewSnapshot(m *Mesh, p PositionProvider) (*Snapshot, error) {
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "new snapshot")
	}
	if p == nil {
		p = &StaticPositions{}
	}
	n := m.NumVertices()
	s := &Snapshot{
		source: vertexStore{
			Positions:   append([]model3d.Coord3D{}, m.Positions...),
			Normals:     copyChannel(m.Normals),
			Tangents:    copyChannel(m.Tangents),
			UV:          copyChannel(m.UV),
			UV2:         copyChannel(m.UV2),
			Colors:      copyChannel(m.Colors),
			BoneWeights: copyChannel(m.BoneWeights),
		},
		numSource:      n,
		bindPoses:      append([]mat4.T{}, m.BindPoses...),
		hasNormals:     len(m.Normals) > 0,
		hasTangents:    len(m.Tangents) > 0,
		hasUV:          len(m.UV) > 0,
		hasUV2:         len(m.UV2) > 0,
		hasColors:      len(m.Colors) > 0,
		hasBoneWeights: len(m.BoneWeights) > 0,
		provider:       p,

		sourceTriangles: append([]int{}, m.Triangles...),
	}

	triCap := m.NumTriangles() * 3 * 3 / 2
	s.upper = make([]int, 0, triCap)
	s.lower = make([]int, 0, triCap)
	s.reserveAdded(n / 2)

	if err := s.ComputeWorldPositions(); err != nil {
		return nil, errors.Wrap(err, "new snapshot")
	}
	return s, nil
}

func copyChannel[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return append([]T{}, s...)
}

func (s *Snapshot) reserveAdded(capacity int) {
	s.added.World = make([]model3d.Coord3D, 0, capacity)
	s.added.Positions = make([]model3d.Coord3D, 0, capacity)
	if s.hasNormals {
		s.added.Normals = make([]model3d.Coord3D, 0, capacity)
	}
	if s.hasTangents {
		s.added.Tangents = make([]Vec4, 0, capacity)
	}
	if s.hasUV {
		s.added.UV = make([]model2d.Coord, 0, capacity)
	}
	if s.hasUV2 {
		s.added.UV2 = make([]model2d.Coord, 0, capacity)
	}
	if s.hasColors {
		s.added.Colors = make([]Color, 0, capacity)
	}
	if s.hasBoneWeights {
		s.added.BoneWeights = make([]BoneWeight, 0, capacity)
	}
}

// ComputeWorldPositions recomputes the world position of every source
// vertex from the snapshot's position provider.
func (s *Snapshot) ComputeWorldPositions() error {
	mesh := &Mesh{
		Positions:   s.source.Positions,
		BoneWeights: s.source.BoneWeights,
		BindPoses:   s.bindPoses,
	}
	world, err := s.provider.WorldPositions(mesh)
	if err != nil {
		return errors.Wrap(err, "compute world positions")
	}
	if len(world) != s.numSource {
		panic("position provider returned the wrong number of positions")
	}
	s.source.World = world
	return nil
}

// NumSource gets the number of vertices in the source mesh.
func (s *Snapshot) NumSource() int {
	return s.numSource
}

// NumVertices gets the total number of vertices, including synthesized
// ones.
func (s *Snapshot) NumVertices() int {
	return s.numSource + len(s.added.Positions)
}

// Ref resolves a global vertex index.
func (s *Snapshot) Ref(idx int) VertexRef {
	if idx < 0 || idx >= s.NumVertices() {
		panic("vertex index out of range")
	}
	if idx >= s.numSource {
		return VertexRef{Added: true, Index: idx - s.numSource}
	}
	return VertexRef{Index: idx}
}

func (s *Snapshot) store(idx int) (*vertexStore, int) {
	ref := s.Ref(idx)
	if ref.Added {
		return &s.added, ref.Index
	}
	return &s.source, ref.Index
}

// World gets the world-space position of any vertex.
func (s *Snapshot) World(idx int) model3d.Coord3D {
	st, i := s.store(idx)
	return st.World[i]
}

// Position gets the mesh-space position of any vertex.
func (s *Snapshot) Position(idx int) model3d.Coord3D {
	st, i := s.store(idx)
	return st.Positions[i]
}

// UV gets the primary texture coordinate of a vertex, or the origin if the
// mesh has no UV channel.
func (s *Snapshot) UV(idx int) model2d.Coord {
	if !s.hasUV {
		return model2d.Coord{}
	}
	st, i := s.store(idx)
	return st.UV[i]
}

// HasUpper checks if any triangle was routed to the upper side.
func (s *Snapshot) HasUpper() bool {
	return len(s.upper) > 0
}

// HasLower checks if any triangle was routed to the lower side.
func (s *Snapshot) HasLower() bool {
	return len(s.lower) > 0
}

// IsSplit checks if both sides received triangles.
func (s *Snapshot) IsSplit() bool {
	return s.HasUpper() && s.HasLower()
}

// AddUpper appends a triangle to the upper side.
func (s *Snapshot) AddUpper(i1, i2, i3 int) {
	s.upper = append(s.upper, i1, i2, i3)
}

// AddLower appends a triangle to the lower side.
func (s *Snapshot) AddLower(i1, i2, i3 int) {
	s.lower = append(s.lower, i1, i2, i3)
}

func (s *Snapshot) addTriangle(upper bool, i1, i2, i3 int) {
	if upper {
		s.AddUpper(i1, i2, i3)
	} else {
		s.AddLower(i1, i2, i3)
	}
}
