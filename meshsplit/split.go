package meshsplit

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"
)

// Config controls how a mesh is split.
//
// The zero value splits with concave caps and no cap UVs.
type Config struct {
	Strategy Strategy

	// NoCaps skips cap generation, leaving both sides open at the cut.
	NoCaps bool

	// CapUV enables texture coordinates for cap vertices, mapped from the
	// bounding box of each cross-section into CapUVRect.
	CapUV bool

	// CapUVRect defaults to UnitUVRect.
	CapUVRect *UVRect

	// Frame is the rotation whose inverse projects world coordinates into
	// the 2D space used to build caps. Its Y axis should be the plane
	// normal. If nil, Plane.Frame is used.
	Frame *model3d.Matrix3

	// MeshRotation is the rotation of the mesh in world space, used to turn
	// the plane normal into cap vertex normals. If nil, the mesh is assumed
	// to be unrotated.
	MeshRotation *model3d.Matrix3

	// Verbose enables logging of unusual geometry.
	Verbose bool
}

// A Result holds both halves of a split mesh.
//
// A side is nil if no triangles ended up on it.
type Result struct {
	Upper *Mesh
	Lower *Mesh
}

// IsSplit checks if both sides are non-empty.
func (r *Result) IsSplit() bool {
	return r.Upper != nil && r.Lower != nil
}

// Split bisects a mesh with a plane and caps the cut on both sides.
//
// The position provider p places the mesh in world space, where the plane
// is defined. If p is nil, mesh coordinates are world coordinates.
func Split(m *Mesh, p PositionProvider, plane *Plane, c *Config) (*Result, error) {
	if c == nil {
		c = &Config{}
	}
	snapshot, err := NewSnapshot(m, p)
	if err != nil {
		return nil, errors.Wrap(err, "split mesh")
	}
	splitter, err := NewSplitter(snapshot, plane, c)
	if err != nil {
		return nil, errors.Wrap(err, "split mesh")
	}
	splitter.Clip()
	if !c.NoCaps {
		splitter.Cap()
	}
	return &Result{
		Upper: snapshot.Upper(),
		Lower: snapshot.Lower(),
	}, nil
}

// A Part is one mesh of an object made of several meshes that move
// together.
type Part struct {
	Mesh      *Mesh
	Positions PositionProvider
}

// SplitParts splits every part of an object with the same plane.
//
// Parts are split concurrently using up to concurrency Goroutines, or
// GOMAXPROCS if concurrency is 0. The results are in the order of parts.
func SplitParts(parts []*Part, plane *Plane, c *Config, concurrency int) ([]*Result, error) {
	results := make([]*Result, len(parts))
	errs := make([]error, len(parts))
	essentials.ConcurrentMap(concurrency, len(parts), func(i int) {
		results[i], errs[i] = Split(parts[i].Mesh, parts[i].Positions, plane, c)
	})
	for i, err := range errs {
		if err != nil {
			return nil, errors.Wrapf(err, "split part %d", i)
		}
	}
	return results, nil
}
