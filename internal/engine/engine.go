package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mlahtinen/taskserv/internal/journal"
	"github.com/mlahtinen/taskserv/internal/taskqueue"
	"github.com/mlahtinen/taskserv/pkg/api"
)

// Lifecycle states. Transitions are one-way:
// created -> running -> stopRequested -> stopped.
type state int

const (
	stateCreated state = iota
	stateRunning
	stateStopRequested
	stateStopped
)

// engineImpl is a single-worker, in-process task execution engine.
//
// There are two synchronization domains. mu (with cond for the worker's
// wakeup) guards the registry, the pending queue, the id counter, and the
// lifecycle state. Each task additionally carries its own readiness
// channel, so Await blocks on the task, not on mu.
type engineImpl struct {
	mu    sync.Mutex
	cond  *sync.Cond // worker wakeup: queue non-empty or stop requested
	state state

	nextID   api.TaskID
	registry map[api.TaskID]*task
	queue    taskqueue.Queue

	wg sync.WaitGroup

	observer api.Observer
	journal  journal.Journal
	logger   *slog.Logger
}

// Config describes how to construct an engine.
// Zero-value fields fall back to defaults (no-op observer, no journal,
// slog.Default()).
type Config struct {
	Observer api.Observer
	Journal  journal.Journal
	Logger   *slog.Logger
}

// New returns an in-memory engine with default configuration.
func New() api.Engine {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a new engine using the given configuration.
func NewWithConfig(cfg Config) api.Engine {
	obs := cfg.Observer
	if obs == nil {
		obs = api.NoopObserver{}
	}
	jr := cfg.Journal
	if jr == nil {
		jr = journal.Noop{}
	}
	lg := cfg.Logger
	if lg == nil {
		lg = slog.Default()
	}

	e := &engineImpl{
		registry: make(map[api.TaskID]*task),
		queue:    taskqueue.NewFIFO(),
		observer: obs,
		journal:  jr,
		logger:   lg,
	}
	e.cond = sync.NewCond(&e.mu)
	return e
}

var (
	_ api.Engine        = (*engineImpl)(nil)
	_ api.HistoryReader = (*engineImpl)(nil)
)

func (e *engineImpl) Submit(fn api.TaskFunc) (api.TaskID, error) {
	return e.SubmitNamed("", fn)
}

func (e *engineImpl) SubmitNamed(name string, fn api.TaskFunc) (api.TaskID, error) {
	e.mu.Lock()
	if e.state == stateStopRequested || e.state == stateStopped {
		e.mu.Unlock()
		return 0, fmt.Errorf("%w: submit after stop", api.ErrNotRunning)
	}

	e.nextID++
	id := e.nextID
	e.registry[id] = newTask(id, name, fn)
	e.mu.Unlock()

	// Record the submission before the task becomes runnable, so the
	// submitted event always precedes the worker-side events.
	ctx := context.Background()
	info := api.TaskInfo{ID: id, Name: name}
	e.observer.OnTaskSubmitted(ctx, info)
	e.appendEvent(ctx, api.TaskEvent{TaskID: id, Name: name, Type: api.EventTaskSubmitted})

	e.mu.Lock()
	e.queue.Push(id)
	e.cond.Signal()
	e.mu.Unlock()

	return id, nil
}

func (e *engineImpl) Await(ctx context.Context, id api.TaskID) (any, error) {
	// Resolve the registry entry once. An absent id fails immediately,
	// whether it was never issued or already claimed.
	e.mu.Lock()
	t, ok := e.registry[id]
	e.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: id %d", api.ErrTaskNotFound, id)
	}

	if err := t.wait(ctx); err != nil {
		return nil, err
	}

	// Claim-by-erase: whichever waiter reaches the lock first after
	// readiness removes the entry and wins; the rest observe the id as
	// already retrieved.
	e.mu.Lock()
	if _, ok := e.registry[id]; !ok {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: id %d already retrieved", api.ErrTaskNotFound, id)
	}
	delete(e.registry, id)
	e.mu.Unlock()

	if t.err != nil {
		return nil, &api.TaskError{ID: id, Name: t.name, Err: t.err}
	}
	return t.value, nil
}

func (e *engineImpl) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.queue.Len()
}

func (e *engineImpl) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case stateRunning:
		return api.ErrAlreadyRunning
	case stateStopRequested, stateStopped:
		return fmt.Errorf("%w: engine was stopped", api.ErrNotRunning)
	}

	e.state = stateRunning
	e.wg.Add(1)
	go e.run()
	return nil
}

func (e *engineImpl) Stop() {
	e.mu.Lock()
	switch e.state {
	case stateStopped:
		e.mu.Unlock()
		return

	case stateStopRequested:
		// Another Stop is already in flight; wait for the worker with it.
		e.mu.Unlock()
		e.wg.Wait()
		return

	case stateCreated:
		// No worker was ever started.
		e.state = stateStopped
		abandoned := e.queue.Len()
		e.mu.Unlock()
		e.observer.OnEngineStopped(context.Background(), abandoned)
		return
	}

	e.state = stateStopRequested
	e.cond.Broadcast()
	e.mu.Unlock()

	e.wg.Wait()

	e.mu.Lock()
	e.state = stateStopped
	abandoned := e.queue.Len()
	e.mu.Unlock()

	e.observer.OnEngineStopped(context.Background(), abandoned)
}

// Close stops the engine, so deferred teardown can treat it as an
// io.Closer. It never returns an error.
func (e *engineImpl) Close() error {
	e.Stop()
	return nil
}

// ListEvents implements api.HistoryReader. Without a configured journal
// it returns no events.
func (e *engineImpl) ListEvents(ctx context.Context, id api.TaskID) ([]api.TaskEvent, error) {
	return e.journal.ListEvents(ctx, id)
}

// appendEvent writes to the journal best-effort. The journal is
// observability; a failing sink must not fail submission or execution.
func (e *engineImpl) appendEvent(ctx context.Context, ev api.TaskEvent) {
	if err := e.journal.Append(ctx, ev); err != nil {
		e.logger.Warn("journal append failed",
			"task_id", uint64(ev.TaskID),
			"event", string(ev.Type),
			"error", err)
	}
}
