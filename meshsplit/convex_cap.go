package meshsplit

import (
	"github.com/unixpickle/model3d/model2d"
	"golang.org/x/exp/slices"
)

// angleBuckets is the number of sort buckets per quarter turn.
const angleBuckets = 900

// convexCap sorts the cut vertices around the lowest one and builds a fan
// of triangles from them, returning nil if there are too few vertices.
func (s *Splitter) convexCap() *capMesh {
	if len(s.capIndices) < 3 {
		return nil
	}
	points := make([]model2d.Coord, len(s.capIndices))
	for i, idx := range s.capIndices {
		points[i] = s.projector.Project(s.snapshot.World(idx))
	}

	order := angularOrder(points)
	order = dropCollinear(order, points)
	if len(order) < 3 {
		return nil
	}

	var uvs []model2d.Coord
	if s.config.CapUV {
		rect := &UnitUVRect
		if s.config.CapUVRect != nil {
			rect = s.config.CapUVRect
		}
		kept := make([]model2d.Coord, len(order))
		for i, j := range order {
			kept[i] = points[j]
		}
		min, max := bounds2D(kept)
		uvs = make([]model2d.Coord, len(order))
		for i, p := range kept {
			uvs[i] = rect.mapBounds(min, max, p)
		}
	}

	res := &capMesh{}
	corners := make([]int, len(order))
	for i, j := range order {
		var uv model2d.Coord
		if uvs != nil {
			uv = uvs[i]
		}
		corners[i] = res.Add(s.capIndices[j], uv)
	}
	for i := 2; i < len(corners); i++ {
		res.AddTriangle(corners[0], corners[i-1], corners[i])
	}
	return res
}

// angularOrder sorts points counter-clockwise around the lowest point,
// which comes first.
//
// Points are bucketed by angle, and points sharing a bucket are ordered by
// the exact turn between them.
func angularOrder(points []model2d.Coord) []int {
	start := 0
	for i, p := range points {
		q := points[start]
		if p.Y < q.Y || (p.Y == q.Y && p.X < q.X) {
			start = i
		}
	}
	origin := points[start]

	keys := make([]int, len(points))
	for i, p := range points {
		if i == start {
			keys[i] = -1
			continue
		}
		dot := model2d.XY(0, 1).Dot(p.Sub(origin).Normalize())
		var key int
		if origin.X <= p.X {
			key = int(dot * angleBuckets)
		} else {
			key = int((2 - dot) * angleBuckets)
		}
		if key < 0 {
			key = 0
		}
		keys[i] = key
	}

	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	order[0], order[start] = order[start], order[0]
	slices.SortStableFunc(order, func(a, b int) bool {
		if keys[a] != keys[b] {
			return keys[a] < keys[b]
		}
		return cross2D(points[a].Sub(origin), points[b].Sub(origin)) > 0
	})

	// Points sharing the first bucket are nearly level with the start, so
	// the lower ones come first. In the last bucket the higher ones do.
	firstRun := runLength(order[1:], keys)
	slices.SortStableFunc(order[1:1+firstRun], func(a, b int) bool {
		pa, pb := points[a], points[b]
		return pa.Y < pb.Y || (pa.Y == pb.Y && pa.X < pb.X)
	})
	if firstRun < len(order)-1 {
		tail := order[1+firstRun:]
		reversed := make([]int, len(tail))
		for i, j := range tail {
			reversed[len(tail)-1-i] = j
		}
		lastRun := runLength(reversed, keys)
		slices.SortStableFunc(tail[len(tail)-lastRun:], func(a, b int) bool {
			return points[a].Y > points[b].Y
		})
	}
	return order
}

// runLength counts the leading elements sharing the key of the first one.
func runLength(order []int, keys []int) int {
	if len(order) == 0 {
		return 0
	}
	n := 1
	for n < len(order) && keys[order[n]] == keys[order[0]] {
		n++
	}
	return n
}

// dropCollinear removes points that continue the direction of the loop.
func dropCollinear(order []int, points []model2d.Coord) []int {
	res := []int{order[0]}
	for i := 1; i < len(order); i++ {
		prev := points[res[len(res)-1]]
		cur := points[order[i]]
		next := points[order[(i+1)%len(order)]]
		d1 := cur.Sub(prev).Normalize()
		d2 := next.Sub(cur).Normalize()
		if d1.Dot(d2) > 1-Epsilon {
			continue
		}
		res = append(res, order[i])
	}
	return res
}
