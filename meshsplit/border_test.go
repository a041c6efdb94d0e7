package meshsplit

import (
	"testing"

	"github.com/unixpickle/model3d/model2d"
)

func TestLinkBordersClosed(t *testing.T) {
	s := &Splitter{
		config: &Config{},
		edges: append(
			polygonEdges(0, unitSquare()),
			polygonEdges(4, []model2d.Coord{
				model2d.XY(3, 0),
				model2d.XY(4, 0),
				model2d.XY(3, 1),
			})...,
		),
	}
	borders := s.linkBorders()
	if len(borders) != 2 {
		t.Fatalf("expected 2 borders but got %d", len(borders))
	}
	for i, expected := range []int{4, 3} {
		if len(borders[i]) != expected {
			t.Errorf("border %d: expected %d edges but got %d", i, expected, len(borders[i]))
		}
		checkBorderLinked(t, s, borders[i])
	}
}

func TestLinkBordersOpenChain(t *testing.T) {
	square := unitSquare()
	s := &Splitter{
		config: &Config{},
		edges:  polygonEdges(0, square)[:3],
	}
	borders := s.linkBorders()
	if len(borders) != 1 || len(borders[0]) != 4 {
		t.Fatalf("expected one border of 4 edges but got %v", borders)
	}
	checkBorderLinked(t, s, borders[0])
	closing := s.edges[borders[0][3]]
	if closing.LeftIndex != 3 || closing.RightIndex != 0 {
		t.Errorf("unexpected closing edge %d -> %d", closing.LeftIndex, closing.RightIndex)
	}
	if closing.Left != square[3] || closing.Right != square[0] {
		t.Errorf("unexpected closing edge %v -> %v", closing.Left, closing.Right)
	}
}

func TestLinkBordersShortChain(t *testing.T) {
	s := &Splitter{
		config: &Config{},
		edges:  polygonEdges(0, unitSquare())[:2],
	}
	if borders := s.linkBorders(); len(borders) != 0 {
		t.Fatalf("expected no borders but got %v", borders)
	}
}

func TestLinkBordersBackward(t *testing.T) {
	edges := polygonEdges(0, unitSquare())
	s := &Splitter{
		config: &Config{},
		edges:  []edge{edges[1], edges[0], edges[2]},
	}
	borders := s.linkBorders()
	if len(borders) != 1 || len(borders[0]) != 4 {
		t.Fatalf("expected one border of 4 edges but got %v", borders)
	}
	checkBorderLinked(t, s, borders[0])
	if borders[0][0] != 1 || borders[0][1] != 0 || borders[0][2] != 2 {
		t.Errorf("unexpected edge order %v", borders[0])
	}
}

func TestLinkBordersFlipped(t *testing.T) {
	s := &Splitter{
		config: &Config{},
		edges:  polygonEdges(0, unitSquare()),
	}
	s.edges[1].Flip()
	borders := s.linkBorders()
	if len(borders) != 1 || len(borders[0]) != 4 {
		t.Fatalf("expected one border of 4 edges but got %v", borders)
	}
	checkBorderLinked(t, s, borders[0])
	if e := s.edges[1]; e.LeftIndex != 1 || e.RightIndex != 2 {
		t.Errorf("edge should be flipped back but goes %d -> %d", e.LeftIndex, e.RightIndex)
	}
}

func TestFixWinding(t *testing.T) {
	square := unitSquare()
	reversed := make([]model2d.Coord, len(square))
	for i, c := range square {
		reversed[len(square)-1-i] = c
	}
	for i, points := range [][]model2d.Coord{square, reversed} {
		s := &Splitter{config: &Config{}, edges: polygonEdges(0, points)}
		b := border{0, 1, 2, 3}
		s.fixWinding(b)
		checkBorderLinked(t, s, b)
		if area := signedArea(s.borderPoints(b)); area <= 0 {
			t.Errorf("case %d: expected counter-clockwise border but area is %f", i, area)
		}
	}
}

func unitSquare() []model2d.Coord {
	return []model2d.Coord{
		model2d.XY(0, 0),
		model2d.XY(1, 0),
		model2d.XY(1, 1),
		model2d.XY(0, 1),
	}
}

// polygonEdges creates the edges of a closed loop, numbering vertices from
// firstIndex.
func polygonEdges(firstIndex int, points []model2d.Coord) []edge {
	res := make([]edge, len(points))
	for i, p := range points {
		next := (i + 1) % len(points)
		res[i] = edge{
			LeftIndex:  firstIndex + i,
			RightIndex: firstIndex + next,
			Left:       p,
			Right:      points[next],
		}
	}
	return res
}

func checkBorderLinked(t *testing.T, s *Splitter, b border) {
	for i, idx := range b {
		e1 := s.edges[idx]
		e2 := s.edges[b[(i+1)%len(b)]]
		if e1.RightIndex != e2.LeftIndex || !coords2DEqual(e1.Right, e2.Left) {
			t.Fatalf("edge %d does not connect to the next edge", i)
		}
	}
}
