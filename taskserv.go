package taskserv

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mlahtinen/taskserv/internal/engine"
	"github.com/mlahtinen/taskserv/internal/journal"
	"github.com/mlahtinen/taskserv/pkg/api"
)

// Re-export key types so users don't need to dig into pkg/api.

type (
	Engine               = api.Engine
	HistoryReader        = api.HistoryReader
	TaskID               = api.TaskID
	TaskFunc             = api.TaskFunc
	TaskInfo             = api.TaskInfo
	TaskError            = api.TaskError
	TaskEvent            = api.TaskEvent
	EventType            = api.EventType
	Observer             = api.Observer
	LoggingObserver      = api.LoggingObserver
	BasicMetrics         = api.BasicMetrics
	BasicMetricsSnapshot = api.BasicMetricsSnapshot
	CompositeObserver    = api.CompositeObserver
	NoopObserver         = api.NoopObserver
)

// Re-export common observer helpers.

var (
	NewLoggingObserver   = api.NewLoggingObserver
	NewCompositeObserver = api.NewCompositeObserver
)

// Re-export the error taxonomy for convenience.

var (
	ErrTaskNotFound   = api.ErrTaskNotFound
	ErrTypeMismatch   = api.ErrTypeMismatch
	ErrTaskFailed     = api.ErrTaskFailed
	ErrAlreadyRunning = api.ErrAlreadyRunning
	ErrNotRunning     = api.ErrNotRunning
)

// Re-export event types for convenience.

const (
	EventTaskSubmitted = api.EventTaskSubmitted
	EventTaskStarted   = api.EventTaskStarted
	EventTaskCompleted = api.EventTaskCompleted
	EventTaskFailed    = api.EventTaskFailed
)

// Engine constructors
// These wrap the internal/engine package so external callers
// never need to import internal packages.

// New returns an in-memory Engine with no journal and a no-op observer.
func New() Engine {
	return engine.New()
}

// NewWithObserver returns an in-memory Engine with the given Observer.
func NewWithObserver(obs Observer) Engine {
	return engine.NewWithConfig(engine.Config{Observer: obs})
}

// NewSQLiteEngine returns an Engine that journals task lifecycle events
// to a SQLite database. The journal is append-only observability: a new
// process always starts with an empty registry and queue.
func NewSQLiteEngine(db *sql.DB) (Engine, error) {
	j, err := journal.NewSQLite(db)
	if err != nil {
		return nil, err
	}
	return engine.NewWithConfig(engine.Config{Journal: j}), nil
}

// NewSQLiteEngineWithObserver is NewSQLiteEngine with the given Observer.
func NewSQLiteEngineWithObserver(db *sql.DB, obs Observer) (Engine, error) {
	j, err := journal.NewSQLite(db)
	if err != nil {
		return nil, err
	}
	return engine.NewWithConfig(engine.Config{Journal: j, Observer: obs}), nil
}

// AwaitAs blocks until the task identified by id has executed, then
// returns its value as T. It fails with ErrTypeMismatch when the stored
// value's dynamic type is not T; retrieval errors (ErrTaskNotFound,
// ErrTaskFailed, context expiry) pass through unchanged.
func AwaitAs[T any](ctx context.Context, eng Engine, id TaskID) (T, error) {
	var zero T

	v, err := eng.Await(ctx, id)
	if err != nil {
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: task %d produced %T, requested %T", ErrTypeMismatch, id, v, zero)
	}
	return typed, nil
}

// Convenience helpers that just forward to the underlying Engine.

// Submit enqueues fn on eng and returns its id.
func Submit(eng Engine, fn TaskFunc) (TaskID, error) {
	return eng.Submit(fn)
}

// Await blocks until the task has executed and returns its untyped outcome.
func Await(ctx context.Context, eng Engine, id TaskID) (any, error) {
	return eng.Await(ctx, id)
}

// ListEvents returns the journaled history for a task. It fails when eng
// was built without a journal-capable implementation.
func ListEvents(ctx context.Context, eng Engine, id TaskID) ([]TaskEvent, error) {
	hr, ok := eng.(HistoryReader)
	if !ok {
		return nil, fmt.Errorf("engine %T does not expose task history", eng)
	}
	return hr.ListEvents(ctx, id)
}
