package meshsplit

import (
	"testing"

	"github.com/unixpickle/model3d/model3d"
)

func TestFragmentTreeFind(t *testing.T) {
	left := boxMesh(model3d.XYZ(0, 0, 0), model3d.XYZ(0.5, 1, 1))
	right := boxMesh(model3d.XYZ(0.5, 0, 0), model3d.XYZ(1, 1, 1))
	tree := &FragmentTree{
		Plane: &Plane{Point: model3d.Z(0.5), Normal: model3d.Z(1)},
		Upper: &FragmentTree{Leaf: right},
		Lower: &FragmentTree{Leaf: left},
	}
	mustEqualMesh(t, left, tree.Find(model3d.Z(0)))
	mustEqualMesh(t, left, tree.Find(model3d.Z(0.499999)))
	mustEqualMesh(t, right, tree.Find(model3d.Z(0.5)))
	mustEqualMesh(t, right, tree.Find(model3d.Z(0.50001)))

	if tree.NumFragments() != 2 || len(tree.Fragments()) != 2 {
		t.Fatal("expected two fragments")
	}
	if tree.Fragments()[0] != right {
		t.Fatal("upper fragment should come first")
	}

	tree.Upper = nil
	mustEqualMesh(t, nil, tree.Find(model3d.Z(1)))
	if tree.NumFragments() != 1 {
		t.Fatal("expected one fragment")
	}
}

func TestFragmentTreeString(t *testing.T) {
	tree := &FragmentTree{
		Plane: &Plane{Point: model3d.Z(0.5), Normal: model3d.Z(1)},
		Upper: &FragmentTree{Leaf: boxMesh(model3d.XYZ(0, 0, 0), model3d.XYZ(1, 1, 1))},
	}
	expected := "if (point - {0 0 0.5}) * {0 0 1} >= 0 {\n" +
		"  fragment (12 triangles)\n" +
		"} else {\n" +
		"  empty\n" +
		"}"
	if actual := tree.String(); actual != expected {
		t.Fatalf("expected:\n%s\ngot:\n%s", expected, actual)
	}
}

func mustEqualMesh(t *testing.T, expected, actual *Mesh) {
	if expected != actual {
		t.Fatalf("expected fragment %p but got %p", expected, actual)
	}
}
