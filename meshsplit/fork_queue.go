package meshsplit

import (
	"runtime"
	"sync/atomic"
)

// A forkTask is a pending computation that is run exactly once, either by
// whoever forked it or by a worker that steals it.
type forkTask[T any] struct {
	claimed atomic.Bool
	fn      func() T
	done    chan T
}

func newForkTask[T any](fn func() T) *forkTask[T] {
	return &forkTask[T]{fn: fn, done: make(chan T, 1)}
}

// claim reports whether the caller is the first to claim t.
func (t *forkTask[T]) claim() bool {
	return t.claimed.CompareAndSwap(false, true)
}

// A forkQueue runs a recursive computation on a bounded number of
// Goroutines.
//
// The root computation is started with Run(). Inside it, Fork() evaluates
// two sub-computations, handing the second one to an idle worker if one
// picks it up before the first one finishes.
type forkQueue[T any] struct {
	pending chan *forkTask[T]
}

func newForkQueue[T any](numWorkers int) *forkQueue[T] {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	q := &forkQueue[T]{
		pending: make(chan *forkTask[T], numWorkers*64),
	}
	for i := 0; i < numWorkers; i++ {
		go q.steal()
	}
	return q
}

// Run evaluates fn and shuts down the workers once it returns.
func (q *forkQueue[T]) Run(fn func() T) T {
	defer close(q.pending)
	root := newForkTask(fn)
	q.pending <- root
	return <-root.done
}

func (q *forkQueue[T]) Fork(fn1, fn2 func() T) (T, T) {
	second := newForkTask(fn2)
	select {
	case q.pending <- second:
	default:
		return fn1(), fn2()
	}
	res1 := fn1()
	if second.claim() {
		return res1, fn2()
	}
	return res1, <-second.done
}

func (q *forkQueue[T]) steal() {
	for task := range q.pending {
		if task.claim() {
			task.done <- task.fn()
		}
	}
}
