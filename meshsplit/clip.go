package meshsplit

import (
	"log"
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// A Strategy selects how the cross-section of a cut is capped.
type Strategy int

const (
	// ConcaveCaps links cut edges into borders and triangulates them. It
	// handles any number of concave cross-sections, including holes.
	ConcaveCaps Strategy = iota

	// ConvexCaps assumes the cross-section is one convex polygon and
	// fan-triangulates the cut vertices in angular order.
	ConvexCaps
)

func (s Strategy) String() string {
	switch s {
	case ConcaveCaps:
		return "concave"
	case ConvexCaps:
		return "convex"
	}
	return "unknown"
}

// A Splitter bisects the triangles of a Snapshot with a plane and builds
// caps for the resulting cross-section.
//
// Clip must be called once before Cap.
type Splitter struct {
	snapshot  *Snapshot
	plane     *Plane
	config    *Config
	projector projector

	// lerpCache maps undirected source edges to the vertex created on them.
	lerpCache map[[2]int]int
	clipped   bool

	// Used by ConvexCaps.
	capIndices []int

	// Used by ConcaveCaps.
	edges []edge
}

// NewSplitter creates a splitter that writes into s.
//
// If c is nil, a zero Config is used.
func NewSplitter(s *Snapshot, plane *Plane, c *Config) (*Splitter, error) {
	if err := plane.Validate(); err != nil {
		return nil, errors.Wrap(err, "new splitter")
	}
	if c == nil {
		c = &Config{}
	}
	frame := c.Frame
	if frame == nil {
		frame = plane.Frame()
	}
	if frame.Det() == 0 {
		return nil, errors.New("new splitter: singular frame")
	}
	if c.MeshRotation != nil && c.MeshRotation.Det() == 0 {
		return nil, errors.New("new splitter: singular mesh rotation")
	}
	return &Splitter{
		snapshot:  s,
		plane:     plane,
		config:    c,
		projector: newProjector(frame),
		lerpCache: map[[2]int]int{},
	}, nil
}

// Clip routes every source triangle to the upper or lower side of the
// plane, dividing triangles that cross it.
func (s *Splitter) Clip() {
	if s.clipped {
		panic("triangles were already clipped")
	}
	s.clipped = true

	snap := s.snapshot
	tris := snap.sourceTriangles
	for i := 0; i < len(tris); i += 3 {
		tri := [3]int{tris[i], tris[i+1], tris[i+2]}
		var world [3]model3d.Coord3D
		for j, idx := range tri {
			world[j] = snap.World(idx)
		}
		var ts [3]float64
		var hits [3]bool
		var numHits int
		for j := 0; j < 3; j++ {
			ts[j] = s.plane.LineIntersect(world[j], world[(j+1)%3])
			hits[j] = isHit(ts[j])
			if hits[j] {
				numHits++
			}
		}

		if numHits == 0 {
			var sides [3]float64
			for j, c := range world {
				sides[j] = s.plane.PointSide(c)
			}
			snap.addTriangle(triangleSide(sides), tri[0], tri[1], tri[2])
			continue
		}

		if numHits == 1 && s.config.Strategy == ConvexCaps {
			for j, hit := range hits {
				if hit {
					s.splitThroughVertex(tri, j)
				}
			}
			continue
		}

		if !hits[2] {
			s.splitTriangle(tri, 0)
		} else if !hits[0] {
			s.splitTriangle(tri, 1)
		} else {
			s.splitTriangle(tri, 2)
		}
	}
}

// splitTriangle cuts the edges starting at offset and offset+1, isolating
// the vertex between them.
func (s *Splitter) splitTriangle(tri [3]int, offset int) {
	i0 := offset
	i1 := (offset + 1) % 3
	i2 := (offset + 2) % 3

	v0, v1, v2 := tri[i0], tri[i1], tri[i2]
	h0 := s.lerpVertex(v0, v1)
	h1 := s.lerpVertex(v1, v2)

	snap := s.snapshot
	isolatedUp := s.plane.PointSide(snap.World(v1)) > 0
	snap.addTriangle(isolatedUp, h0, v1, h1)
	snap.addTriangle(!isolatedUp, v0, h0, h1)
	snap.addTriangle(!isolatedUp, v0, h1, v2)

	// Cut edges follow the winding of the lower side.
	if isolatedUp {
		s.addCutEdge(h0, h1)
	} else {
		s.addCutEdge(h1, h0)
	}
}

// splitThroughVertex cuts the edge starting at offset and connects the new
// vertex to the opposite vertex, which lies on the plane.
func (s *Splitter) splitThroughVertex(tri [3]int, offset int) {
	i0 := offset
	i1 := (offset + 1) % 3
	i2 := (offset + 2) % 3

	v0, v1, v2 := tri[i0], tri[i1], tri[i2]
	h := s.lerpVertex(v0, v1)

	if s.config.Verbose {
		log.Printf("splitting triangle %v through vertex %d", tri, v2)
	}

	snap := s.snapshot
	firstUp := s.plane.PointSide(snap.World(v0)) > 0
	snap.addTriangle(firstUp, v0, h, v2)
	snap.addTriangle(!firstUp, h, v1, v2)

	if firstUp {
		s.addCutEdge(v2, h)
	} else {
		s.addCutEdge(h, v2)
	}
}

// clampHit moves a parameter that missed the segment onto the nearest
// endpoint.
func clampHit(t float64) float64 {
	if math.IsNaN(t) {
		return 0
	}
	return math.Max(0, math.Min(1, t))
}

// lerpVertex creates the vertex where a source edge meets the plane,
// reusing the vertex created by a neighboring triangle when possible.
//
// The intersection is always computed from the endpoint with the smaller
// world position, so edges that coincide in space get identical vertices.
// Edges that miss the plane are clamped to the nearest endpoint.
func (s *Splitter) lerpVertex(from, to int) int {
	key := [2]int{from, to}
	if from > to {
		key = [2]int{to, from}
	}
	if idx, ok := s.lerpCache[key]; ok {
		return idx
	}
	a, b := s.snapshot.World(from), s.snapshot.World(to)
	if coordLess(b, a) {
		from, to = to, from
		a, b = b, a
	}
	t := clampHit(s.plane.LineIntersect(a, b))
	idx := s.snapshot.AddLerpVertex(from, to, t)
	s.lerpCache[key] = idx
	return idx
}

func (s *Splitter) addCutEdge(from, to int) {
	switch s.config.Strategy {
	case ConvexCaps:
		s.addCapIndex(from)
		s.addCapIndex(to)
	case ConcaveCaps:
		snap := s.snapshot
		if coordsEqual(snap.World(from), snap.World(to)) {
			return
		}
		s.edges = append(s.edges, edge{LeftIndex: from, RightIndex: to})
	default:
		panic("unknown strategy")
	}
}

func (s *Splitter) addCapIndex(idx int) {
	c := s.snapshot.World(idx)
	for _, other := range s.capIndices {
		if coordsEqual(c, s.snapshot.World(other)) {
			return
		}
	}
	s.capIndices = append(s.capIndices, idx)
}

// Cap closes the cross-section of the cut on both sides.
//
// Nothing is added if the plane did not cut any triangle.
func (s *Splitter) Cap() {
	if !s.clipped {
		panic("triangles must be clipped before capping")
	}
	var c *capMesh
	switch s.config.Strategy {
	case ConvexCaps:
		c = s.convexCap()
	case ConcaveCaps:
		c = s.concaveCap()
	default:
		panic("unknown strategy")
	}
	if c != nil {
		s.materializeCap(c)
	}
}
