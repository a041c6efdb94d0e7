package meshsplit

import (
	"math"
	"reflect"
	"testing"

	"github.com/ungerik/go3d/float64/mat4"
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

func TestSnapshotAddLerpVertex(t *testing.T) {
	mesh := attributeTriangle()
	s, err := NewSnapshot(mesh, nil)
	if err != nil {
		t.Fatal(err)
	}
	idx := s.AddLerpVertex(0, 1, 0.5)
	if idx != 3 {
		t.Fatalf("expected index 3 but got %d", idx)
	}
	if s.NumSource() != 3 || s.NumVertices() != 4 {
		t.Fatalf("unexpected vertex counts: %d %d", s.NumSource(), s.NumVertices())
	}
	if ref := s.Ref(idx); !ref.Added || ref.Index != 0 {
		t.Fatalf("unexpected ref: %v", ref)
	}
	if ref := s.Ref(2); ref.Added || ref.Index != 2 {
		t.Fatalf("unexpected ref: %v", ref)
	}

	v := &s.added
	checkCoord := func(name string, actual, expected model3d.Coord3D) {
		if actual.Dist(expected) > 1e-8 {
			t.Errorf("%s: expected %v but got %v", name, expected, actual)
		}
	}
	checkCoord("position", v.Positions[0], mesh.Positions[0].Mid(mesh.Positions[1]))
	checkCoord("world", v.World[0], mesh.Positions[0].Mid(mesh.Positions[1]))
	checkCoord("normal", v.Normals[0], mesh.Normals[0].Mid(mesh.Normals[1]))
	if v.UV[0].Dist(lerpCoord2D(mesh.UV[0], mesh.UV[1], 0.5)) > 1e-8 {
		t.Errorf("unexpected uv: %v", v.UV[0])
	}
	if v.UV2[0].Dist(lerpCoord2D(mesh.UV2[0], mesh.UV2[1], 0.5)) > 1e-8 {
		t.Errorf("unexpected uv2: %v", v.UV2[0])
	}
	expectedColor := Color{R: 0.5, G: 0.5, B: 0, A: 1}
	if v.Colors[0] != expectedColor {
		t.Errorf("expected color %v but got %v", expectedColor, v.Colors[0])
	}
	expectedTangent := Vec4{X: 0.5, Y: 0.5, Z: 0, W: 0}
	if v.Tangents[0] != expectedTangent {
		t.Errorf("expected tangent %v but got %v", expectedTangent, v.Tangents[0])
	}
	if v.BoneWeights[0] != mesh.BoneWeights[1] {
		t.Errorf("bone weights should snap to the second vertex at t=0.5")
	}

	s.AddLerpVertex(0, 1, 0.25)
	if v.BoneWeights[1] != mesh.BoneWeights[0] {
		t.Errorf("bone weights should snap to the first vertex at t=0.25")
	}

	// Interpolating between synthesized vertices uses the added store.
	s.AddLerpVertex(idx, 2, 0.5)
	expected := mesh.Positions[0].Mid(mesh.Positions[1]).Mid(mesh.Positions[2])
	checkCoord("nested position", s.Position(5), expected)
}

func TestSnapshotAddCapVertex(t *testing.T) {
	mesh := attributeTriangle()
	s, err := NewSnapshot(mesh, nil)
	if err != nil {
		t.Fatal(err)
	}
	normal := model3d.Y(-1)
	idx := s.AddCapVertex(1, normal)
	v := &s.added
	if v.Positions[0] != mesh.Positions[1] || v.Colors[0] != mesh.Colors[1] ||
		v.UV2[0] != mesh.UV2[1] || v.BoneWeights[0] != mesh.BoneWeights[1] {
		t.Error("cap vertex should copy position, color, uv2 and bone weights")
	}
	if v.Normals[0] != normal {
		t.Errorf("expected normal %v but got %v", normal, v.Normals[0])
	}
	if v.UV[0] != mesh.UV[1] {
		t.Errorf("expected UV %v but got %v", mesh.UV[1], v.UV[0])
	}
	tangent := v.Tangents[0]
	if math.Abs(tangent.XYZ().Norm()-1) > 1e-8 || math.Abs(tangent.XYZ().Dot(normal)) > 1e-8 {
		t.Errorf("tangent should be a unit vector perpendicular to the normal: %v", tangent)
	}

	uv := model2d.XY(0.25, 0.75)
	idx2 := s.AddCapVertexUV(idx, normal.Scale(-1), uv)
	if idx2 != idx+1 || v.UV[1] != uv || v.Positions[1] != mesh.Positions[1] {
		t.Error("unexpected duplicate of a cap vertex")
	}
}

func TestSnapshotExtractSubMesh(t *testing.T) {
	mesh := attributeTriangle()
	s, err := NewSnapshot(mesh, nil)
	if err != nil {
		t.Fatal(err)
	}
	mid := s.AddLerpVertex(0, 2, 0.5)
	s.AddUpper(2, mid, 1)

	if !s.HasUpper() || s.HasLower() || s.IsSplit() {
		t.Fatal("unexpected sides")
	}
	if s.Lower() != nil {
		t.Fatal("lower side should be nil")
	}
	sub := s.Upper()
	if err := sub.Validate(); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(sub.Triangles, []int{0, 1, 2}) {
		t.Fatalf("unexpected triangles: %v", sub.Triangles)
	}
	if sub.Positions[0] != mesh.Positions[2] || sub.Positions[2] != mesh.Positions[1] {
		t.Fatal("vertices should be numbered in order of first use")
	}
	if len(sub.Colors) != 3 || len(sub.BoneWeights) != 3 || len(sub.BindPoses) != 1 {
		t.Fatal("every channel should be carried over")
	}
	if sub.Min() != model3d.XYZ(0, 0, 0) || sub.Max() != model3d.XYZ(1, 1, 0) {
		t.Fatalf("unexpected bounds: %v %v", sub.Min(), sub.Max())
	}

	// The extracted mesh must not alias the snapshot.
	sub.Positions[0] = model3d.XYZ(5, 5, 5)
	if s.Position(2) == sub.Positions[0] {
		t.Fatal("extracted mesh shares memory with the snapshot")
	}
}

func TestNewSnapshotValidation(t *testing.T) {
	mesh := attributeTriangle()
	mesh.Normals = mesh.Normals[:2]
	if _, err := NewSnapshot(mesh, nil); err == nil {
		t.Error("expected error for short normal channel")
	}

	mesh = attributeTriangle()
	mesh.Triangles = []int{0, 1, 3}
	if _, err := NewSnapshot(mesh, nil); err == nil {
		t.Error("expected error for out of range index")
	}

	mesh = attributeTriangle()
	mesh.Triangles = []int{0, 1}
	if _, err := NewSnapshot(mesh, nil); err == nil {
		t.Error("expected error for incomplete triangle")
	}

	mesh = attributeTriangle()
	mesh.BoneWeights[0].Indices[0] = 3
	if _, err := NewSnapshot(mesh, nil); err == nil {
		t.Error("expected error for out of range bone")
	}
}

func TestSnapshotChannelPresence(t *testing.T) {
	mesh := &Mesh{
		Positions: []model3d.Coord3D{model3d.X(1), model3d.Y(1), model3d.Z(1)},
		Triangles: []int{0, 1, 2},
	}
	s, err := NewSnapshot(mesh, nil)
	if err != nil {
		t.Fatal(err)
	}
	s.AddLerpVertex(0, 1, 0.5)
	s.AddCapVertex(2, model3d.X(1))
	s.AddUpper(0, 3, 4)
	sub := s.Upper()
	if sub.Normals != nil || sub.Tangents != nil || sub.UV != nil || sub.UV2 != nil ||
		sub.Colors != nil || sub.BoneWeights != nil {
		t.Fatal("absent channels should stay absent")
	}
}

func attributeTriangle() *Mesh {
	return &Mesh{
		Positions: []model3d.Coord3D{
			model3d.XYZ(0, 0, 0),
			model3d.XYZ(1, 0, 0),
			model3d.XYZ(0, 1, 0),
		},
		Normals: []model3d.Coord3D{
			model3d.Z(1),
			model3d.XYZ(0, 1, 1),
			model3d.XYZ(1, 0, 1),
		},
		Tangents: []Vec4{
			{X: 1, W: -1},
			{Y: 1, W: 1},
			{Z: 1, W: 1},
		},
		UV: []model2d.Coord{
			model2d.XY(0, 0),
			model2d.XY(1, 0),
			model2d.XY(0, 1),
		},
		UV2: []model2d.Coord{
			model2d.XY(0.5, 0.5),
			model2d.XY(1, 1),
			model2d.XY(0, 0.25),
		},
		Colors: []Color{
			{R: 1, A: 1},
			{G: 1, A: 1},
			{B: 1, A: 1},
		},
		BoneWeights: []BoneWeight{
			{Indices: [4]int{0}, Weights: [4]float64{1}},
			{Indices: [4]int{0, 0}, Weights: [4]float64{0.5, 0.5}},
			{Indices: [4]int{0}, Weights: [4]float64{0.75}},
		},
		BindPoses: []mat4.T{mat4.Ident},
		Triangles: []int{0, 1, 2},
	}
}
