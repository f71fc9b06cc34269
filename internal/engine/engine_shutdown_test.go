package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mlahtinen/taskserv/pkg/api"
)

// stopObserver records the abandoned-task count reported at shutdown.
type stopObserver struct {
	api.NoopObserver

	mu        sync.Mutex
	stopped   bool
	abandoned int
}

func (o *stopObserver) OnEngineStopped(ctx context.Context, abandoned int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stopped = true
	o.abandoned = abandoned
}

func TestShutdown_PendingTasksAreNeverExecuted(t *testing.T) {
	obs := &stopObserver{}
	e := NewWithConfig(Config{Observer: obs})
	if err := e.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// First task blocks the worker so the rest stay queued.
	release := make(chan struct{})
	blocker, err := e.Submit(func(ctx context.Context) (any, error) {
		<-release
		return nil, nil
	})
	if err != nil {
		t.Fatalf("Submit blocker failed: %v", err)
	}

	var executed sync.Map
	var pending []api.TaskID
	for i := 0; i < 5; i++ {
		i := i
		id, err := e.Submit(func(ctx context.Context) (any, error) {
			executed.Store(i, true)
			return nil, nil
		})
		if err != nil {
			t.Fatalf("Submit %d failed: %v", i, err)
		}
		pending = append(pending, id)
	}

	// Unblock the worker and stop. The worker observes the stop request
	// on its next wakeup and exits without draining.
	stopDone := make(chan struct{})
	go func() {
		e.Stop()
		close(stopDone)
	}()
	// Give Stop a moment to set the flag before releasing the worker, so
	// the queued tasks are reliably abandoned.
	time.Sleep(20 * time.Millisecond)
	close(release)
	<-stopDone

	executed.Range(func(k, _ any) bool {
		t.Fatalf("pending task %v was executed after Stop", k)
		return false
	})

	obs.mu.Lock()
	stopped, abandoned := obs.stopped, obs.abandoned
	obs.mu.Unlock()
	if !stopped {
		t.Fatalf("observer was not notified of the stop")
	}
	if abandoned != len(pending) {
		t.Fatalf("expected %d abandoned tasks, got %d", len(pending), abandoned)
	}

	// The blocker ran to completion before the worker exited.
	got, err := e.Await(context.Background(), blocker)
	if err != nil || got != nil {
		t.Fatalf("blocker outcome: got (%v, %v), want (nil, nil)", got, err)
	}

	// Awaiting an abandoned task blocks forever by design; assert
	// non-completion with an enforced timeout.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = e.Await(ctx, pending[0])
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected abandoned-task Await to time out, got %v", err)
	}
}

func TestShutdown_StopReportsZeroAbandonedWhenDrained(t *testing.T) {
	obs := &stopObserver{}
	e := NewWithConfig(Config{Observer: obs})
	if err := e.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		id, err := e.Submit(func(ctx context.Context) (any, error) { return i, nil })
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if _, err := e.Await(ctx, id); err != nil {
			t.Fatalf("Await failed: %v", err)
		}
	}

	e.Stop()

	obs.mu.Lock()
	defer obs.mu.Unlock()
	if obs.abandoned != 0 {
		t.Fatalf("expected 0 abandoned tasks after draining, got %d", obs.abandoned)
	}
}
