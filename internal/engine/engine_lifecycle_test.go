package engine

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/mlahtinen/taskserv/pkg/api"
)

func TestLifecycle_DoubleStart(t *testing.T) {
	e := New()
	if err := e.Start(); err != nil {
		t.Fatalf("first Start failed: %v", err)
	}
	defer e.Stop()

	if err := e.Start(); !errors.Is(err, api.ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning on second Start, got %v", err)
	}
}

func TestLifecycle_StopIsIdempotent(t *testing.T) {
	e := New()
	if err := e.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	e.Stop()
	e.Stop()
	e.Stop()
}

func TestLifecycle_StopWithoutStart(t *testing.T) {
	e := New()
	e.Stop() // no worker to join; must not hang or panic
	e.Stop()
}

func TestLifecycle_ConcurrentStops(t *testing.T) {
	e := New()
	if err := e.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			e.Stop()
			done <- struct{}{}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}
}

func TestLifecycle_SubmitAfterStop(t *testing.T) {
	e := New()
	if err := e.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	e.Stop()

	_, err := e.Submit(func(ctx context.Context) (any, error) { return nil, nil })
	if !errors.Is(err, api.ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning on Submit after Stop, got %v", err)
	}
}

func TestLifecycle_StartAfterStop(t *testing.T) {
	e := New()
	if err := e.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	e.Stop()

	if err := e.Start(); !errors.Is(err, api.ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning on Start after Stop, got %v", err)
	}
}

func TestLifecycle_EngineIsACloser(t *testing.T) {
	e := New()
	if err := e.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	c, ok := e.(io.Closer)
	if !ok {
		t.Fatalf("expected engine to implement io.Closer")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	// Close after Close is Stop after Stop: a no-op.
	if err := c.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
}
