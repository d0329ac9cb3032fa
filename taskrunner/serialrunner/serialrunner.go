package serialrunner

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	perrors "github.com/pkg/errors"

	"github.com/huangjunwen/taskserver/logr"
	. "github.com/huangjunwen/taskserver/taskrunner"
)

var (
	// DefaultLogger is the logger used if Logger option is not set.
	DefaultLogger = logr.Nop

	// DefaultQueueHint is the default initial capacity of the pending queue.
	DefaultQueueHint = 64
)

var (
	_ TaskRunner[float64] = (*Runner[float64])(nil)
)

// Runner implements taskrunner interface with a single worker go routine.
// Tasks are executed one at a time in the order they are submitted.
//
// Results are kept for the whole lifetime of the runner so that they can be
// requested any number of times.
//
// Known limitations:
//   - A failed task (returns an error or panics) is logged only, its result never
//     becomes available. Result on it blocks until Stop.
//   - Tasks still queued when Stop is called are abandoned.
type Runner[T Number] struct {
	name   string
	logger logr.Logger

	nextID atomic.Uint64

	mu    sync.Mutex
	state State
	queue []entry[T]
	slots map[TaskID]*slot[T]

	wakeCh   chan struct{} // cap 1, signals worker that queue is not empty
	stopCh   chan struct{} // closed when stop requested
	exitCh   chan struct{} // closed after worker exited
	stopOnce sync.Once
	wg       sync.WaitGroup

	completed atomic.Uint64
	failed    atomic.Uint64
}

// Stats is a snapshot of runner counters.
type Stats struct {
	// Submitted is the number of tasks accepted.
	Submitted int

	// Completed is the number of tasks finished successfully.
	Completed uint64

	// Failed is the number of tasks returned error or panicked.
	Failed uint64

	// Pending is the number of tasks waiting in queue.
	Pending int

	State State
}

// Must creates a Runner or panic.
func Must[T Number](opts ...Option) *Runner[T] {
	ret, err := New[T](opts...)
	if err != nil {
		panic(err)
	}
	return ret
}

// New creates a new Runner in Created state. Call Start to begin executing tasks.
func New[T Number](opts ...Option) (*Runner[T], error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &Runner[T]{
		name:   o.name,
		logger: o.logger.WithValues("runner", o.name),
		state:  Created,
		queue:  make([]entry[T], 0, o.queueHint),
		slots:  make(map[TaskID]*slot[T]),
		wakeCh: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		exitCh: make(chan struct{}),
	}, nil
}

// Name returns the runner name.
func (r *Runner[T]) Name() string {
	return r.name
}

// Start implements taskrunner interface. Returns ErrAlreadyStarted if called twice and
// ErrClosed if called after Stop.
func (r *Runner[T]) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.state {
	case Running:
		return ErrAlreadyStarted
	case Stopped:
		return ErrClosed
	}

	r.state = Running
	r.wg.Add(1)
	go r.workerLoop()

	r.logger.Info("runner started", "pending", len(r.queue))
	return nil
}

// Stop implements taskrunner interface. The task being executed (if any) is allowed
// to finish, queued tasks are abandoned and result waiters of them are released
// with ErrStopped. Stop before Start is fine.
func (r *Runner[T]) Stop() {
	r.stopOnce.Do(r.stop)
}

// Close is the same as Stop.
func (r *Runner[T]) Close() {
	r.Stop()
}

func (r *Runner[T]) stop() {
	// Once State() reports Stopped, stopCh is closed.
	r.mu.Lock()
	r.state = Stopped
	close(r.stopCh)
	r.mu.Unlock()

	r.wg.Wait()

	r.mu.Lock()
	abandoned := len(r.queue)
	r.queue = nil
	r.mu.Unlock()

	close(r.exitCh)
	r.logger.Info("runner stopped",
		"completed", r.completed.Load(),
		"failed", r.failed.Load(),
		"abandoned", abandoned,
	)
}

// Submit implements taskrunner interface. Tasks can be submitted before Start,
// they are queued until the worker starts. Returns ErrClosed after Stop.
func (r *Runner[T]) Submit(task Task[T]) (TaskID, error) {
	if task == nil {
		panic(fmt.Errorf("Runner.Submit(nil)"))
	}

	id := TaskID(r.nextID.Add(1) - 1)
	s := newSlot[T]()

	r.mu.Lock()
	if r.state == Stopped {
		r.mu.Unlock()
		return 0, ErrClosed
	}
	r.slots[id] = s
	r.queue = append(r.queue, entry[T]{id: id, task: task, slot: s})
	r.mu.Unlock()

	// Non-blocking: a pending signal is enough for the worker to recheck the queue.
	select {
	case r.wakeCh <- struct{}{}:
	default:
	}
	return id, nil
}

// Result implements taskrunner interface.
func (r *Runner[T]) Result(id TaskID) (T, error) {
	return r.ResultContext(context.Background(), id)
}

// ResultContext implements taskrunner interface. Besides ErrNotFound, it returns
// ErrStopped if the runner stopped without producing the result, or ctx.Err().
func (r *Runner[T]) ResultContext(ctx context.Context, id TaskID) (T, error) {
	var zero T

	s, err := r.lookup(id)
	if err != nil {
		return zero, err
	}

	if s.ready() {
		return s.value, nil
	}

	select {
	case <-s.done:
		return s.value, nil

	case <-r.exitCh:
		// The worker may have finished this one just before exit.
		if s.ready() {
			return s.value, nil
		}
		return zero, ErrStopped

	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// TryResult returns the result without blocking. ok is false if the result is not
// available yet.
func (r *Runner[T]) TryResult(id TaskID) (value T, ok bool, err error) {
	s, err := r.lookup(id)
	if err != nil {
		return value, false, err
	}
	if !s.ready() {
		return value, false, nil
	}
	return s.value, true, nil
}

// State returns the current lifecycle state.
func (r *Runner[T]) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Stats returns a snapshot of counters.
func (r *Runner[T]) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{
		Submitted: len(r.slots),
		Completed: r.completed.Load(),
		Failed:    r.failed.Load(),
		Pending:   len(r.queue),
		State:     r.state,
	}
}

func (r *Runner[T]) lookup(id TaskID) (*slot[T], error) {
	r.mu.Lock()
	s, ok := r.slots[id]
	r.mu.Unlock()

	if !ok {
		return nil, perrors.Wrapf(ErrNotFound, "task %d", id)
	}
	return s, nil
}

func (r *Runner[T]) dequeue() (entry[T], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.queue) == 0 {
		return entry[T]{}, false
	}
	e := r.queue[0]
	r.queue[0] = entry[T]{} // Release the task for gc.
	r.queue = r.queue[1:]
	return e, true
}

// workerLoop executes tasks until stop requested. Stop is checked between tasks only.
func (r *Runner[T]) workerLoop() {
	defer r.wg.Done()

	for {
		select {
		case <-r.stopCh:
			return
		default:
		}

		e, ok := r.dequeue()
		if !ok {
			select {
			case <-r.wakeCh:
			case <-r.stopCh:
				return
			}
			continue
		}

		r.execute(e)
	}
}

func (r *Runner[T]) execute(e entry[T]) {
	v, err := r.call(e)
	if err != nil {
		r.failed.Add(1)
		r.logger.Error(err, "task failed", "task_id", uint64(e.id))
		return
	}
	e.slot.set(v)
	r.completed.Add(1)
}

// call runs the task and turns a panic into an error.
func (r *Runner[T]) call(e entry[T]) (v T, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = perrors.Errorf("task panicked: %v", p)
		}
	}()
	return e.task()
}
