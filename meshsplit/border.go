package meshsplit

import (
	"log"
	"math"

	"github.com/unixpickle/model3d/model2d"
	"golang.org/x/exp/slices"
)

// A border is a closed loop of edges, stored as indices into an edge arena.
//
// The end of every edge matches the start of the next one, wrapping around
// at the end of the slice.
type border []int

// linkBorders chains the cut edges into closed borders.
//
// Chains that cannot be closed are closed with an extra edge if they have
// more than two edges, and are dropped otherwise.
func (s *Splitter) linkBorders() []border {
	used := make([]bool, len(s.edges))
	var res []border
	for start := range s.edges {
		if used[start] {
			continue
		}
		used[start] = true
		chain := border{start}
		closed := false
		for !closed && s.extendChain(&chain, used, false) {
			closed = s.chainClosed(chain)
		}
		if !closed {
			for !closed && s.extendChain(&chain, used, true) {
				closed = s.chainClosed(chain)
			}
		}
		if closed {
			res = append(res, chain)
			continue
		}
		if len(chain) <= 2 {
			if s.config.Verbose {
				log.Printf("dropping open chain of %d cut edges", len(chain))
			}
			continue
		}
		first := &s.edges[chain[0]]
		last := &s.edges[chain[len(chain)-1]]
		s.edges = append(s.edges, edge{
			LeftIndex:  last.RightIndex,
			RightIndex: first.LeftIndex,
			Left:       last.Right,
			Right:      first.Left,
		})
		used = append(used, true)
		res = append(res, append(chain, len(s.edges)-1))
	}
	return res
}

func (s *Splitter) chainClosed(chain border) bool {
	if len(chain) < 2 {
		return false
	}
	first := &s.edges[chain[0]]
	last := &s.edges[chain[len(chain)-1]]
	return coords2DEqual(last.Right, first.Left)
}

// extendChain attaches one unused edge to the end of the chain, or to the
// start if backward is true, flipping the edge if needed.
func (s *Splitter) extendChain(chain *border, used []bool, backward bool) bool {
	var target model2d.Coord
	if backward {
		target = s.edges[(*chain)[0]].Left
	} else {
		target = s.edges[(*chain)[len(*chain)-1]].Right
	}
	flipped := -1
	for i := range s.edges {
		if used[i] {
			continue
		}
		e := &s.edges[i]
		var aligned, opposite model2d.Coord
		if backward {
			aligned, opposite = e.Right, e.Left
		} else {
			aligned, opposite = e.Left, e.Right
		}
		if coords2DEqual(aligned, target) {
			s.attach(chain, used, i, backward)
			return true
		} else if flipped == -1 && coords2DEqual(opposite, target) {
			flipped = i
		}
	}
	if flipped != -1 {
		s.edges[flipped].Flip()
		s.attach(chain, used, flipped, backward)
		return true
	}
	return false
}

func (s *Splitter) attach(chain *border, used []bool, idx int, backward bool) {
	used[idx] = true
	if backward {
		*chain = slices.Insert(*chain, 0, idx)
	} else {
		*chain = append(*chain, idx)
	}
}

// borderPoints gets the start of every edge in the border.
func (s *Splitter) borderPoints(b border) []model2d.Coord {
	res := make([]model2d.Coord, len(b))
	for i, idx := range b {
		res[i] = s.edges[idx].Left
	}
	return res
}

// reverseBorder flips the direction of every edge and the order of the
// loop.
func (s *Splitter) reverseBorder(b border) {
	for _, idx := range b {
		s.edges[idx].Flip()
	}
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// fixWinding makes the border counter-clockwise.
//
// The turn at the top-most vertex decides, falling back to the signed area
// when that turn is degenerate.
func (s *Splitter) fixWinding(b border) {
	top := 0
	for i, idx := range b {
		p := s.edges[idx].Right
		q := s.edges[b[top]].Right
		if p.Y > q.Y || (p.Y == q.Y && p.X > q.X) {
			top = i
		}
	}
	in := &s.edges[b[top]]
	out := &s.edges[b[(top+1)%len(b)]]
	turn := cross2D(in.Right.Sub(in.Left), out.Right.Sub(out.Left))
	if math.Abs(turn) <= Epsilon*Epsilon {
		turn = signedArea(s.borderPoints(b))
	}
	if turn < 0 {
		s.reverseBorder(b)
	}
}

func signedArea(points []model2d.Coord) float64 {
	var sum float64
	for i, p := range points {
		sum += cross2D(p, points[(i+1)%len(points)])
	}
	return sum / 2
}

func pointInPolygon(c model2d.Coord, points []model2d.Coord) bool {
	inside := false
	for i, p1 := range points {
		p2 := points[(i+1)%len(points)]
		if (p1.Y > c.Y) != (p2.Y > c.Y) {
			x := p1.X + (c.Y-p1.Y)*(p2.X-p1.X)/(p2.Y-p1.Y)
			if c.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// mergeHoles joins every counter-clockwise border that lies inside an odd
// number of other borders into its enclosing border.
//
// A hole is reversed and connected to its parent by a pair of opposite
// bridge edges, producing one simple loop.
func (s *Splitter) mergeHoles(borders []border) []border {
	if len(borders) < 2 {
		return borders
	}
	points := make([][]model2d.Coord, len(borders))
	for i, b := range borders {
		points[i] = s.borderPoints(b)
	}
	depth := make([]int, len(borders))
	parent := make([]int, len(borders))
	for i := range borders {
		parent[i] = -1
		for j := range borders {
			if i != j && pointInPolygon(points[i][0], points[j]) {
				depth[i]++
			}
		}
	}
	for i := range borders {
		for j := range borders {
			if i != j && depth[j] == depth[i]-1 && pointInPolygon(points[i][0], points[j]) {
				parent[i] = j
			}
		}
	}

	holes := make([][]int, len(borders))
	for i := range borders {
		if depth[i]%2 == 1 && parent[i] != -1 {
			holes[parent[i]] = append(holes[parent[i]], i)
		}
	}
	merged := make([]bool, len(borders))
	for p, children := range holes {
		if len(children) == 0 {
			continue
		}
		slices.SortFunc(children, func(a, b int) bool {
			return maxX(points[a]) > maxX(points[b])
		})
		for i, h := range children {
			s.reverseBorder(borders[h])
			if joined, ok := s.bridgeHole(borders[p], borders[h], borders, children[i+1:]); ok {
				borders[p] = joined
				merged[h] = true
			} else {
				if s.config.Verbose {
					log.Printf("no bridge for hole of %d edges", len(borders[h]))
				}
				s.reverseBorder(borders[h])
			}
		}
	}

	var res []border
	for i, b := range borders {
		if !merged[i] {
			res = append(res, b)
		}
	}
	return res
}

func maxX(points []model2d.Coord) float64 {
	res := math.Inf(-1)
	for _, p := range points {
		res = math.Max(res, p.X)
	}
	return res
}

// bridgeHole splices a clockwise hole into its parent through the nearest
// parent vertex visible from the right-most hole vertex.
func (s *Splitter) bridgeHole(parent, hole border, all []border, pending []int) (border, bool) {
	start := 0
	for i, idx := range hole {
		if s.edges[idx].Left.X > s.edges[hole[start]].Left.X {
			start = i
		}
	}
	h := &s.edges[hole[start]]
	hPoint, hIndex := h.Left, h.LeftIndex

	candidates := make([]int, len(parent))
	for i := range candidates {
		candidates[i] = i
	}
	slices.SortStableFunc(candidates, func(a, b int) bool {
		return s.edges[parent[a]].Right.Dist(hPoint) < s.edges[parent[b]].Right.Dist(hPoint)
	})

	obstacles := []border{parent, hole}
	for _, idx := range pending {
		obstacles = append(obstacles, all[idx])
	}
	for _, k := range candidates {
		p := &s.edges[parent[k]]
		if coords2DEqual(p.Right, hPoint) {
			continue
		}
		if s.segmentBlocked(p.Right, hPoint, obstacles) {
			continue
		}
		pPoint, pIndex := p.Right, p.RightIndex
		s.edges = append(s.edges,
			edge{LeftIndex: pIndex, RightIndex: hIndex, Left: pPoint, Right: hPoint},
			edge{LeftIndex: hIndex, RightIndex: pIndex, Left: hPoint, Right: pPoint},
		)
		into, back := len(s.edges)-2, len(s.edges)-1

		res := make(border, 0, len(parent)+len(hole)+2)
		res = append(res, parent[:k+1]...)
		res = append(res, into)
		res = append(res, hole[start:]...)
		res = append(res, hole[:start]...)
		res = append(res, back)
		res = append(res, parent[k+1:]...)
		return res, true
	}
	return nil, false
}

func (s *Splitter) segmentBlocked(p1, p2 model2d.Coord, borders []border) bool {
	for _, b := range borders {
		for _, idx := range b {
			if s.edges[idx].Intersects(p1, p2) {
				return true
			}
		}
	}
	return false
}

// assignUVs maps the bounding box of the border into the cap UV rectangle.
func (s *Splitter) assignUVs(b border) {
	rect := &UnitUVRect
	if s.config.CapUVRect != nil {
		rect = s.config.CapUVRect
	}
	min, max := bounds2D(s.borderPoints(b))
	for _, idx := range b {
		e := &s.edges[idx]
		e.LeftUV = rect.mapBounds(min, max, e.Left)
		e.RightUV = rect.mapBounds(min, max, e.Right)
	}
}
