package api

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Observer receives callbacks from the engine for logging and metrics.
//
// Implementations should be fast and non-blocking; heavy work should be done
// asynchronously so as not to delay the worker.
type Observer interface {
	// OnTaskSubmitted is called once per task, after Submit has assigned an
	// id and enqueued it.
	OnTaskSubmitted(ctx context.Context, t TaskInfo)

	// OnTaskStarted is called on the worker goroutine, immediately before
	// the task's function is invoked.
	OnTaskStarted(ctx context.Context, t TaskInfo)

	// OnTaskCompleted is called after a task's function returns successfully.
	OnTaskCompleted(ctx context.Context, t TaskInfo, duration time.Duration)

	// OnTaskFailed is called after a task's function returns an error or
	// panics. The task's outcome is still retrievable via Await.
	OnTaskFailed(ctx context.Context, t TaskInfo, err error, duration time.Duration)

	// OnEngineStopped is called once when the worker has exited.
	// abandoned is the number of tasks left in the pending queue; those
	// tasks will never execute.
	OnEngineStopped(ctx context.Context, abandoned int)
}

// NoopObserver is an Observer that does nothing.
// It is used as the default when no observer is configured.
type NoopObserver struct{}

func (NoopObserver) OnTaskSubmitted(ctx context.Context, t TaskInfo)                  {}
func (NoopObserver) OnTaskStarted(ctx context.Context, t TaskInfo)                    {}
func (NoopObserver) OnTaskCompleted(ctx context.Context, t TaskInfo, d time.Duration) {}
func (NoopObserver) OnTaskFailed(ctx context.Context, t TaskInfo, err error, d time.Duration) {
}
func (NoopObserver) OnEngineStopped(ctx context.Context, abandoned int) {}

// CompositeObserver fans out events to multiple observers.
type CompositeObserver struct {
	observers []Observer
}

// NewCompositeObserver creates an Observer that forwards events to each
// non-nil observer in obs.
func NewCompositeObserver(obs ...Observer) Observer {
	filtered := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return NoopObserver{}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &CompositeObserver{observers: filtered}
}

func (c *CompositeObserver) OnTaskSubmitted(ctx context.Context, t TaskInfo) {
	for _, o := range c.observers {
		o.OnTaskSubmitted(ctx, t)
	}
}

func (c *CompositeObserver) OnTaskStarted(ctx context.Context, t TaskInfo) {
	for _, o := range c.observers {
		o.OnTaskStarted(ctx, t)
	}
}

func (c *CompositeObserver) OnTaskCompleted(ctx context.Context, t TaskInfo, d time.Duration) {
	for _, o := range c.observers {
		o.OnTaskCompleted(ctx, t, d)
	}
}

func (c *CompositeObserver) OnTaskFailed(ctx context.Context, t TaskInfo, err error, d time.Duration) {
	for _, o := range c.observers {
		o.OnTaskFailed(ctx, t, err, d)
	}
}

func (c *CompositeObserver) OnEngineStopped(ctx context.Context, abandoned int) {
	for _, o := range c.observers {
		o.OnEngineStopped(ctx, abandoned)
	}
}

// LoggingObserver writes structured logs using log/slog.
type LoggingObserver struct {
	Logger *slog.Logger
}

// NewLoggingObserver creates an Observer that logs task lifecycle events
// using the provided slog.Logger. If logger is nil, slog.Default() is used.
func NewLoggingObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{Logger: logger}
}

func (o *LoggingObserver) OnTaskSubmitted(ctx context.Context, t TaskInfo) {
	o.Logger.DebugContext(ctx, "task_submitted",
		slog.Uint64("task_id", uint64(t.ID)),
		slog.String("task", t.Name),
	)
}

func (o *LoggingObserver) OnTaskStarted(ctx context.Context, t TaskInfo) {
	o.Logger.DebugContext(ctx, "task_started",
		slog.Uint64("task_id", uint64(t.ID)),
		slog.String("task", t.Name),
	)
}

func (o *LoggingObserver) OnTaskCompleted(ctx context.Context, t TaskInfo, d time.Duration) {
	o.Logger.InfoContext(ctx, "task_completed",
		slog.Uint64("task_id", uint64(t.ID)),
		slog.String("task", t.Name),
		slog.Duration("duration", d),
	)
}

func (o *LoggingObserver) OnTaskFailed(ctx context.Context, t TaskInfo, err error, d time.Duration) {
	o.Logger.ErrorContext(ctx, "task_failed",
		slog.Uint64("task_id", uint64(t.ID)),
		slog.String("task", t.Name),
		slog.Duration("duration", d),
		slog.Any("error", err),
	)
}

func (o *LoggingObserver) OnEngineStopped(ctx context.Context, abandoned int) {
	o.Logger.InfoContext(ctx, "engine_stopped",
		slog.Int("abandoned_tasks", abandoned),
	)
}

// BasicMetrics collects simple counters and aggregate execution durations.
// It implements Observer, and can be combined with LoggingObserver via
// NewCompositeObserver.
type BasicMetrics struct {
	NoopObserver

	tasksSubmitted    atomic.Int64
	tasksCompleted    atomic.Int64
	tasksFailed       atomic.Int64
	totalExecDuration atomic.Int64 // nanoseconds
}

// BasicMetricsSnapshot is an immutable snapshot of BasicMetrics.
type BasicMetricsSnapshot struct {
	TasksSubmitted int64
	TasksCompleted int64
	TasksFailed    int64
	PendingTasks   int64

	AvgExecDuration time.Duration
}

func (m *BasicMetrics) OnTaskSubmitted(ctx context.Context, t TaskInfo) {
	m.tasksSubmitted.Add(1)
}

func (m *BasicMetrics) OnTaskCompleted(ctx context.Context, t TaskInfo, d time.Duration) {
	m.tasksCompleted.Add(1)
	m.totalExecDuration.Add(d.Nanoseconds())
}

func (m *BasicMetrics) OnTaskFailed(ctx context.Context, t TaskInfo, err error, d time.Duration) {
	m.tasksFailed.Add(1)
}

// Snapshot returns a snapshot of the current metrics.
func (m *BasicMetrics) Snapshot() BasicMetricsSnapshot {
	submitted := m.tasksSubmitted.Load()
	completed := m.tasksCompleted.Load()
	failed := m.tasksFailed.Load()
	totalNs := m.totalExecDuration.Load()

	var avg time.Duration
	if completed > 0 {
		avg = time.Duration(totalNs / completed)
	}

	return BasicMetricsSnapshot{
		TasksSubmitted:  submitted,
		TasksCompleted:  completed,
		TasksFailed:     failed,
		PendingTasks:    submitted - completed - failed,
		AvgExecDuration: avg,
	}
}
