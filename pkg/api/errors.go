package api

import (
	"errors"
	"fmt"
)

var (
	// ErrTaskNotFound reports an id that is unknown to the registry, either
	// because it was never issued or because a prior Await already claimed it.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTypeMismatch reports a typed retrieval whose requested type differs
	// from the dynamic type of the stored value.
	ErrTypeMismatch = errors.New("task result type mismatch")

	// ErrTaskFailed reports that a task's function returned an error or
	// panicked. The concrete error is a *TaskError carrying the cause.
	ErrTaskFailed = errors.New("task failed")

	// ErrAlreadyRunning is returned by Start on an engine whose worker is
	// already running.
	ErrAlreadyRunning = errors.New("engine already running")

	// ErrNotRunning is returned by Start and Submit on a stopped engine.
	// A stopped engine cannot be restarted; build a new one.
	ErrNotRunning = errors.New("engine not running")
)

// TaskError is the outcome stored for a task whose function failed. It
// unwraps to both the underlying cause and ErrTaskFailed, so callers can
// use errors.Is(err, api.ErrTaskFailed) or inspect the cause directly.
type TaskError struct {
	ID   TaskID
	Name string
	Err  error
}

func (e *TaskError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("task %d (%s) failed: %v", e.ID, e.Name, e.Err)
	}
	return fmt.Sprintf("task %d failed: %v", e.ID, e.Err)
}

func (e *TaskError) Unwrap() []error {
	return []error{ErrTaskFailed, e.Err}
}
