package meshsplit

// concaveCap links the recorded cut edges into borders and triangulates
// them, returning nil if nothing was cut.
func (s *Splitter) concaveCap() *capMesh {
	if len(s.edges) == 0 {
		return nil
	}
	for i := range s.edges {
		e := &s.edges[i]
		e.Left = s.projector.Project(s.snapshot.World(e.LeftIndex))
		e.Right = s.projector.Project(s.snapshot.World(e.RightIndex))
	}

	borders := s.linkBorders()
	for _, b := range borders {
		s.fixWinding(b)
	}
	borders = s.mergeHoles(borders)

	res := &capMesh{}
	for _, b := range borders {
		if s.config.CapUV {
			s.assignUVs(b)
		}
		s.triangulate(b, res)
	}
	return res
}
