package taskrunner

import (
	"errors"
)

var (
	// ErrClosed is returned when task is submitted or runner is started after stopped.
	ErrClosed = errors.New("TaskRunner: Closed")

	// ErrAlreadyStarted is returned when Start is called more than once.
	ErrAlreadyStarted = errors.New("TaskRunner: Already started")

	// ErrNotFound is returned when requesting result of a task id never issued.
	ErrNotFound = errors.New("TaskRunner: Task not found")

	// ErrStopped is returned to result waiters when the runner stopped before
	// the result became available.
	ErrStopped = errors.New("TaskRunner: Stopped before result available")
)
