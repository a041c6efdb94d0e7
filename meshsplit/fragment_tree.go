package meshsplit

import (
	"fmt"
	"strings"

	"github.com/unixpickle/model3d/model3d"
)

// A FragmentTree records a sequence of cuts applied to a mesh.
//
// Branches hold the cutting plane and the subtrees for both sides of it,
// either of which may be nil if the side was empty. Leaves hold the final
// fragments.
type FragmentTree struct {
	Plane *Plane
	Upper *FragmentTree
	Lower *FragmentTree

	Leaf *Mesh
}

func (f *FragmentTree) IsLeaf() bool {
	return f.Plane == nil
}

// Fragments gets the leaf meshes in depth-first order, upper side first.
func (f *FragmentTree) Fragments() []*Mesh {
	if f == nil {
		return nil
	}
	if f.IsLeaf() {
		return []*Mesh{f.Leaf}
	}
	return append(f.Upper.Fragments(), f.Lower.Fragments()...)
}

// NumFragments counts the leaves of the tree.
func (f *FragmentTree) NumFragments() int {
	if f == nil {
		return 0
	} else if f.IsLeaf() {
		return 1
	}
	return f.Upper.NumFragments() + f.Lower.NumFragments()
}

// Find gets the fragment on the same side of every plane as the world
// coordinate c, or nil if that region is empty.
func (f *FragmentTree) Find(c model3d.Coord3D) *Mesh {
	if f == nil {
		return nil
	} else if f.IsLeaf() {
		return f.Leaf
	}
	if f.Plane.PointSide(c) >= 0 {
		return f.Upper.Find(c)
	} else {
		return f.Lower.Find(c)
	}
}

func (f *FragmentTree) String() string {
	if f == nil {
		return "empty"
	} else if f.IsLeaf() {
		return fmt.Sprintf("fragment (%d triangles)", f.Leaf.NumTriangles())
	}
	return fmt.Sprintf(
		"if (point - %v) * %v >= 0 {\n%s\n} else {\n%s\n}",
		f.Plane.Point,
		f.Plane.Normal,
		indentText(f.Upper.String()),
		indentText(f.Lower.String()),
	)
}

func indentText(text string) string {
	lines := strings.Split(text, "\n")
	for i, x := range lines {
		lines[i] = "  " + x
	}
	return strings.Join(lines, "\n")
}
