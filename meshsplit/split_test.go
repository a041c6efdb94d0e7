package meshsplit

import (
	"testing"

	"github.com/unixpickle/model3d/model3d"
)

func TestSplitParts(t *testing.T) {
	box := boxMesh(model3d.XYZ(0, 0, 0), model3d.XYZ(1, 1, 1))
	parts := []*Part{
		{Mesh: box},
		{Mesh: box, Positions: &StaticPositions{Transform: &model3d.Translate{Offset: model3d.X(5)}}},
		{Mesh: prismMesh(5), Positions: &StaticPositions{}},
	}
	plane := &Plane{Point: model3d.XYZ(0.5, 0.5, 0.5), Normal: model3d.X(1)}
	results, err := SplitParts(parts, plane, nil, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(parts) {
		t.Fatalf("expected %d results but got %d", len(parts), len(results))
	}
	if !results[0].IsSplit() {
		t.Error("first part should be split")
	}
	if results[1].IsSplit() || results[1].Upper == nil {
		t.Error("second part should be entirely above the plane")
	}
	if !results[2].IsSplit() {
		t.Error("third part should be split")
	}

	parts = append(parts, &Part{Mesh: &Mesh{Triangles: []int{0, 1, 2}}})
	if _, err := SplitParts(parts, plane, nil, 2); err == nil {
		t.Error("expected error for invalid part")
	}
}
