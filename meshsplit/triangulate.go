package meshsplit

import (
	"log"

	"golang.org/x/exp/slices"
)

// triangulate reduces a counter-clockwise border to triangles by repeatedly
// cutting off ears, and adds the triangles to out.
//
// The border is walked from a current edge towards a neighbor. Straight
// joints are melted into one edge, convex joints become triangles unless
// the closing edge would cross the border, and reflex joints reverse the
// walking direction. After two rejections in a row the current edge moves
// on, and a border that stops shrinking is abandoned.
func (s *Splitter) triangulate(b border, out *capMesh) {
	b = s.meltStraight(slices.Clone(b))

	cur := 0
	forward := true
	rejections := 0
	stalled := 0
	for len(b) > 3 {
		if stalled > 3*len(b)+3 {
			if s.config.Verbose {
				log.Printf("abandoning border with %d edges left", len(b))
			}
			return
		}
		stalled++

		n := len(b)
		cur %= n
		first, second := cur, (cur+1)%n
		if !forward {
			first, second = (cur+n-1)%n, cur
		}
		e1, e2 := &s.edges[b[first]], &s.edges[b[second]]

		var side float64
		if forward {
			side = e1.Side(e2.Right)
		} else {
			side = e2.Side(e1.Left)
		}

		if side >= -Epsilon && side <= Epsilon {
			if coords2DEqual(e1.Left, e2.Right) {
				// The two edges double back onto each other.
				b = removeIndices(b, first, second)
				cur = 0
			} else {
				b, cur = s.replacePair(b, first, joinEdges(e1, e2))
			}
			rejections = 0
			stalled = 0
			continue
		}

		if side > Epsilon {
			if k, ok := s.closingNeighbor(b, first, second); ok {
				s.emitTriangle(out, e1, e2)
				b = removeIndices(b, first, second, k)
				cur = 0
				rejections = 0
				stalled = 0
				continue
			}
			if !s.earBlocked(b, e1, e2) {
				s.emitTriangle(out, e1, e2)
				b, cur = s.replacePair(b, first, joinEdges(e1, e2))
				rejections = 0
				stalled = 0
				continue
			}
		}

		forward = !forward
		rejections++
		if rejections >= 2 {
			cur = (cur + 1) % n
			rejections = 0
		}
	}

	if len(b) == 3 {
		e1, e2 := &s.edges[b[0]], &s.edges[b[1]]
		s.emitTriangle(out, e1, e2)
	}
}

// meltStraight joins consecutive edges that continue in the same direction.
func (s *Splitter) meltStraight(b border) border {
	for i := 0; i < len(b) && len(b) > 3; {
		j := (i + 1) % len(b)
		e1, e2 := &s.edges[b[i]], &s.edges[b[j]]
		d1 := e1.Right.Sub(e1.Left)
		d2 := e2.Right.Sub(e2.Left)
		side := e1.Side(e2.Right)
		if side >= -Epsilon && side <= Epsilon && d1.Dot(d2) > 0 {
			b, i = s.replacePair(b, i, joinEdges(e1, e2))
		} else {
			i++
		}
	}
	return b
}

// replacePair replaces the edge at index i and the one after it with e,
// returning the new border and the index of e.
func (s *Splitter) replacePair(b border, i int, e edge) (border, int) {
	s.edges = append(s.edges, e)
	idx := len(s.edges) - 1
	j := (i + 1) % len(b)
	b[i] = idx
	b = slices.Delete(b, j, j+1)
	if j < i {
		i--
	}
	return b, i
}

// closingNeighbor finds an edge adjacent to the ear at first and second
// which already connects the ends of the ear.
func (s *Splitter) closingNeighbor(b border, first, second int) (int, bool) {
	n := len(b)
	e1, e2 := &s.edges[b[first]], &s.edges[b[second]]
	closing := edge{Left: e2.Right, Right: e1.Left}
	for _, k := range []int{(first + n - 1) % n, (second + 1) % n} {
		if closing.SameVectors(&s.edges[b[k]]) {
			return k, true
		}
	}
	return 0, false
}

// earBlocked checks if the triangle formed by two consecutive edges
// overlaps the rest of the border.
func (s *Splitter) earBlocked(b border, e1, e2 *edge) bool {
	a, v, w := e1.Left, e1.Right, e2.Right
	for _, idx := range b {
		e := &s.edges[idx]
		if e.Intersects(a, w) {
			return true
		}
		p := e.Left
		if coords2DEqual(p, a) || coords2DEqual(p, v) || coords2DEqual(p, w) {
			continue
		}
		if cross2D(v.Sub(a), p.Sub(a)) > Epsilon &&
			cross2D(w.Sub(v), p.Sub(v)) > Epsilon &&
			cross2D(a.Sub(w), p.Sub(w)) > Epsilon {
			return true
		}
	}
	return false
}

func (s *Splitter) emitTriangle(out *capMesh, e1, e2 *edge) {
	out.AddTriangle(
		out.Add(e1.LeftIndex, e1.LeftUV),
		out.Add(e1.RightIndex, e1.RightUV),
		out.Add(e2.RightIndex, e2.RightUV),
	)
}

func removeIndices(b border, indices ...int) border {
	slices.SortFunc(indices, func(i, j int) bool {
		return i > j
	})
	for _, i := range indices {
		b = slices.Delete(b, i, i+1)
	}
	return b
}
