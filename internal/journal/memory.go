package journal

import (
	"context"
	"sync"
	"time"

	"github.com/mlahtinen/taskserv/pkg/api"
)

// Memory is a simple, goroutine-safe Journal backed by a slice.
// Intended for tests and development.
type Memory struct {
	mu     sync.RWMutex
	events []api.TaskEvent
}

// NewMemory creates an empty in-memory journal.
func NewMemory() *Memory {
	return &Memory{}
}

// Ensure Memory implements Journal.
var _ Journal = (*Memory)(nil)

func (m *Memory) Append(ctx context.Context, ev api.TaskEvent) error {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, ev)
	return nil
}

func (m *Memory) ListEvents(ctx context.Context, id api.TaskID) ([]api.TaskEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []api.TaskEvent
	for _, ev := range m.events {
		if ev.TaskID == id {
			out = append(out, ev)
		}
	}
	return out, nil
}
