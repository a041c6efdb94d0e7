package meshsplit

import (
	"github.com/pkg/errors"
)

type shatterResult struct {
	Tree *FragmentTree
	Err  error
}

// Shatter cuts a mesh with every plane in turn, splitting each fragment
// produced by one plane with all of the planes after it.
//
// Fragments are split concurrently using up to concurrency Goroutines, or
// GOMAXPROCS if concurrency is 0.
//
// The resulting tree has one level per plane. Subtrees for empty sides are
// nil.
func Shatter(m *Mesh, p PositionProvider, planes []*Plane, c *Config,
	concurrency int) (*FragmentTree, error) {
	for i, plane := range planes {
		if err := plane.Validate(); err != nil {
			return nil, errors.Wrapf(err, "shatter: plane %d", i)
		}
	}
	queue := newForkQueue[shatterResult](concurrency)
	res := queue.Run(func() shatterResult {
		return shatter(queue, m, p, planes, c)
	})
	if res.Err != nil {
		return nil, errors.Wrap(res.Err, "shatter")
	}
	return res.Tree, nil
}

func shatter(q *forkQueue[shatterResult], m *Mesh, p PositionProvider, planes []*Plane,
	c *Config) shatterResult {
	if m == nil {
		return shatterResult{}
	}
	if len(planes) == 0 {
		return shatterResult{Tree: &FragmentTree{Leaf: m}}
	}
	split, err := Split(m, p, planes[0], c)
	if err != nil {
		return shatterResult{Err: err}
	}
	upper, lower := q.Fork(
		func() shatterResult {
			return shatter(q, split.Upper, p, planes[1:], c)
		},
		func() shatterResult {
			return shatter(q, split.Lower, p, planes[1:], c)
		},
	)
	if upper.Err != nil {
		return upper
	} else if lower.Err != nil {
		return lower
	}
	return shatterResult{
		Tree: &FragmentTree{
			Plane: planes[0],
			Upper: upper.Tree,
			Lower: lower.Tree,
		},
	}
}
