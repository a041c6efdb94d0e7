package meshsplit

import "testing"

func TestForkQueue(t *testing.T) {
	for _, workers := range []int{0, 1, 4} {
		q := newForkQueue[int](workers)
		var sum func(lo, hi int) int
		sum = func(lo, hi int) int {
			if hi-lo == 1 {
				return lo
			}
			mid := (lo + hi) / 2
			a, b := q.Fork(
				func() int { return sum(lo, mid) },
				func() int { return sum(mid, hi) },
			)
			return a + b
		}
		actual := q.Run(func() int { return sum(0, 1000) })
		if expected := 999 * 1000 / 2; actual != expected {
			t.Fatalf("workers %d: expected %d but got %d", workers, expected, actual)
		}
	}
}
