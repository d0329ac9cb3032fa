package serialrunner

import (
	. "github.com/huangjunwen/taskserver/taskrunner"
)

// slot holds the result of one task. It's written at most once (by the worker)
// and can be read by any number of goroutines after done is closed.
type slot[T Number] struct {
	done  chan struct{}
	value T
}

func newSlot[T Number]() *slot[T] {
	return &slot[T]{
		done: make(chan struct{}),
	}
}

// set must be called only once.
func (s *slot[T]) set(v T) {
	s.value = v
	close(s.done)
}

func (s *slot[T]) ready() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

type entry[T Number] struct {
	id   TaskID
	task Task[T]
	slot *slot[T]
}
