package engine

import (
	"context"
	"time"

	"github.com/mlahtinen/taskserv/pkg/api"
)

// run is the single worker goroutine. It idles on cond until the queue is
// non-empty or stop is requested, then executes tasks serially in FIFO
// order. All task bodies run here, one at a time.
func (e *engineImpl) run() {
	defer e.wg.Done()

	ctx := context.Background()
	e.logger.Debug("worker started")

	for {
		e.mu.Lock()
		for e.queue.Len() == 0 && e.state == stateRunning {
			e.cond.Wait()
		}
		if e.state != stateRunning {
			// Stop requested: exit without draining. Queued tasks are
			// abandoned; Stop reports their count to the observer.
			e.mu.Unlock()
			e.logger.Debug("worker stopping")
			return
		}

		id, ok := e.queue.Pop()
		if !ok {
			e.mu.Unlock()
			continue
		}
		t := e.registry[id]
		e.mu.Unlock()

		if t == nil {
			// Ids stay registered until first retrieval, and retrieval
			// blocks on execution, so this indicates a bug elsewhere.
			// Skip the id rather than crash the worker.
			e.logger.Warn("dequeued unknown task", "task_id", uint64(id))
			continue
		}

		e.executeTask(ctx, t)
	}
}

// executeTask runs one task to completion on the worker goroutine and
// reports the outcome. Failures end up in the task's result slot, never
// in the worker loop.
func (e *engineImpl) executeTask(ctx context.Context, t *task) {
	info := api.TaskInfo{ID: t.id, Name: t.name}
	e.observer.OnTaskStarted(ctx, info)
	e.appendEvent(ctx, api.TaskEvent{TaskID: t.id, Name: t.name, Type: api.EventTaskStarted})

	start := time.Now()
	t.execute(ctx)
	duration := time.Since(start)

	if t.err != nil {
		e.observer.OnTaskFailed(ctx, info, t.err, duration)
		e.appendEvent(ctx, api.TaskEvent{
			TaskID: t.id,
			Name:   t.name,
			Type:   api.EventTaskFailed,
			Detail: t.err.Error(),
		})
		return
	}

	e.observer.OnTaskCompleted(ctx, info, duration)
	e.appendEvent(ctx, api.TaskEvent{TaskID: t.id, Name: t.name, Type: api.EventTaskCompleted})
}
