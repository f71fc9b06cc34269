package api

import "context"

// TaskID identifies a submitted task. IDs are opaque to callers; within one
// engine they are unique and monotonically increasing in submission order.
type TaskID uint64

// TaskFunc is the type-erased unit of deferred work. Arguments are captured
// by closure at submission time; the function is invoked exactly once, on
// the engine's worker goroutine. The returned value (or error) becomes the
// task's stored outcome.
//
// The context passed in is the engine's execution context. TaskFuncs should
// be self-contained: they run serially on a single shared worker, so a task
// that blocks forever blocks every task submitted after it.
type TaskFunc func(ctx context.Context) (any, error)

// TaskInfo carries a task's identity to observers.
type TaskInfo struct {
	ID   TaskID
	Name string
}

// Engine is the task-execution API.
//
// An Engine owns a registry of submitted tasks, a FIFO pending queue, and a
// single worker goroutine that executes tasks serially in submission order.
// Submit is safe for arbitrarily many concurrent producers; Await blocks the
// caller until the requested task has executed.
type Engine interface {
	// Start spawns the worker goroutine. Calling Start on a running engine
	// returns ErrAlreadyRunning; on a stopped engine, ErrNotRunning.
	Start() error

	// Stop requests shutdown, wakes the worker, and waits for it to exit.
	// Stop is idempotent. Tasks still queued when Stop is called are never
	// executed; awaiting them blocks until the caller's context expires.
	Stop()

	// Submit enqueues fn for execution and returns its id immediately.
	// It never blocks on task execution; the pending queue is unbounded.
	// Submitting before Start is allowed (tasks queue up); submitting
	// after Stop returns ErrNotRunning.
	Submit(fn TaskFunc) (TaskID, error)

	// SubmitNamed is Submit with a human-oriented name used in logs,
	// observer callbacks, and the event journal.
	SubmitNamed(name string, fn TaskFunc) (TaskID, error)

	// Await blocks until the task identified by id has executed, then
	// removes it from the registry and returns its outcome. An unknown or
	// already-retrieved id fails immediately with ErrTaskNotFound. If the
	// task's function returned an error or panicked, Await returns a
	// *TaskError wrapping ErrTaskFailed.
	//
	// When several goroutines await the same id, exactly one claims the
	// entry and receives the outcome; the others get ErrTaskNotFound.
	Await(ctx context.Context, id TaskID) (any, error)

	// Pending reports the number of tasks queued but not yet executed.
	Pending() int
}

// HistoryReader allows reading a task's journaled event history. It is
// implemented by engines constructed with a journal.
type HistoryReader interface {
	// ListEvents returns all journaled events for a task in append order.
	ListEvents(ctx context.Context, id TaskID) ([]TaskEvent, error)
}
