package meshsplit

import (
	"testing"

	"github.com/ungerik/go3d/float64/mat4"
	"github.com/unixpickle/model3d/model3d"
)

func TestStaticPositions(t *testing.T) {
	mesh := &Mesh{Positions: []model3d.Coord3D{model3d.XYZ(1, 2, 3)}}

	world, err := (&StaticPositions{}).WorldPositions(mesh)
	if err != nil {
		t.Fatal(err)
	}
	if world[0] != mesh.Positions[0] {
		t.Errorf("identity moved vertex to %v", world[0])
	}

	p := &StaticPositions{Transform: &model3d.Translate{Offset: model3d.X(2)}}
	world, err = p.WorldPositions(mesh)
	if err != nil {
		t.Fatal(err)
	}
	if world[0] != model3d.XYZ(3, 2, 3) {
		t.Errorf("unexpected position %v", world[0])
	}
}

func TestSkinnedPositions(t *testing.T) {
	mesh := &Mesh{
		Positions: []model3d.Coord3D{
			model3d.XYZ(1, 1, 1),
			model3d.XYZ(1, 1, 1),
			model3d.XYZ(1, 1, 1),
			model3d.XYZ(1, 1, 1),
		},
		BoneWeights: []BoneWeight{
			{Indices: [4]int{0}, Weights: [4]float64{1}},
			{Indices: [4]int{0, 1}, Weights: [4]float64{0.25, 0.75}},
			{Indices: [4]int{1, 0}, Weights: [4]float64{0.75, 0.25}},
			{Indices: [4]int{2}, Weights: [4]float64{1}},
		},
		BindPoses: []mat4.T{
			translationMatrix(0, 2, 0),
			mat4.Ident,
			mat4.Ident,
		},
	}
	p := &SkinnedPositions{
		Bones: []mat4.T{
			translationMatrix(4, 0, 0),
			translationMatrix(0, 4, 0),
			scaleMatrix(2),
		},
	}
	world, err := p.WorldPositions(mesh)
	if err != nil {
		t.Fatal(err)
	}
	expected := []model3d.Coord3D{
		model3d.XYZ(5, 3, 1),
		model3d.XYZ(2, 4.5, 1),
		model3d.XYZ(2, 4.5, 1),
		model3d.XYZ(2, 2, 2),
	}
	for i, x := range expected {
		if world[i].Dist(x) > 1e-8 {
			t.Errorf("vertex %d: expected %v but got %v", i, x, world[i])
		}
	}

	p.Bones = p.Bones[:2]
	if _, err := p.WorldPositions(mesh); err == nil {
		t.Error("expected error for mismatched bone count")
	}

	mesh.BoneWeights = nil
	if _, err := (&SkinnedPositions{}).WorldPositions(mesh); err == nil {
		t.Error("expected error for missing bone weights")
	}
}

func translationMatrix(x, y, z float64) mat4.T {
	res := mat4.Ident
	res[3][0] = x
	res[3][1] = y
	res[3][2] = z
	return res
}

func scaleMatrix(s float64) mat4.T {
	res := mat4.Ident
	res[0][0] = s
	res[1][1] = s
	res[2][2] = s
	return res
}
