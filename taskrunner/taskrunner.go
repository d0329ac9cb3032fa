// Package taskrunner defines the interface of numeric task runners.
package taskrunner

import (
	"context"
	"fmt"
)

// Number is the constraint of task results.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// TaskID identifies a submitted task. It is unique and strictly increasing
// within one runner instance and never reused.
type TaskID uint64

// Task is a zero-argument computation. A non-nil error (or a panic) marks the
// task as failed: its result never becomes available.
type Task[T Number] func() (T, error)

// Func adapts a computation which can not fail to Task.
func Func[T Number](f func() T) Task[T] {
	if f == nil {
		return nil
	}
	return func() (T, error) {
		return f(), nil
	}
}

// State is the lifecycle state of a runner.
type State int32

const (
	// Created is the state before Start. Tasks can be submitted but are not executed.
	Created State = iota

	// Running means the worker is executing tasks.
	Running

	// Stopped is terminal.
	Stopped
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// TaskRunner is an interface to run numeric tasks and fetch their results.
type TaskRunner[T Number] interface {
	// Submit submits a task to run. The call must not block.
	// Return an error if the task can't be accepted.
	Submit(task Task[T]) (TaskID, error)

	// Result blocks until the result of the task is available.
	// Returns ErrNotFound immediately for ids never issued.
	Result(id TaskID) (T, error)

	// ResultContext is similar to Result but also returns when ctx done.
	ResultContext(ctx context.Context, id TaskID) (T, error)

	// Start starts the worker.
	Start() error

	// Stop stops the worker and waits it to exit. Tasks not yet executed are abandoned.
	// It's safe to call Stop multiple times.
	Stop()
}
