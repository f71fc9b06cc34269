package engine

import (
	"context"
	"fmt"

	"github.com/mlahtinen/taskserv/pkg/api"
)

// task is a type-erased unit of deferred work: the captured function, a
// single-writer result slot, and a private readiness signal.
//
// The readiness channel is per-task so that waiting on one task never
// blocks producers submitting another or consumers retrieving a task
// that is already done.
type task struct {
	id   api.TaskID
	name string
	fn   api.TaskFunc

	// done is closed exactly once, by execute, after value/err have been
	// written. The close is the readiness broadcast; its happens-before
	// edge publishes the result slot to every waiter.
	done chan struct{}

	value any
	err   error
}

func newTask(id api.TaskID, name string, fn api.TaskFunc) *task {
	return &task{
		id:   id,
		name: name,
		fn:   fn,
		done: make(chan struct{}),
	}
}

// execute invokes the captured function and flips readiness. It must be
// called at most once; the worker guarantees this by construction (one
// task, one queue entry, one dequeue). A panicking function is captured
// into the error outcome so a bad task can never take down the worker.
func (t *task) execute(ctx context.Context) {
	defer close(t.done)
	defer func() {
		if r := recover(); r != nil {
			t.value = nil
			t.err = fmt.Errorf("task panicked: %v", r)
		}
	}()

	t.value, t.err = t.fn(ctx)
}

// wait blocks until the task is ready or ctx expires.
func (t *task) wait(ctx context.Context) error {
	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
