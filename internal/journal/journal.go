// Package journal provides append-only sinks for task history events.
//
// A journal is pure observability: the engine writes events as tasks move
// through their lifecycle and exposes them for audit/debugging, but it
// never reads the journal back to reconstruct state. A restarted process
// always starts with an empty registry and queue.
package journal

import (
	"context"

	"github.com/mlahtinen/taskserv/pkg/api"
)

// Journal is an append-only history store for task execution events.
type Journal interface {
	Append(ctx context.Context, ev api.TaskEvent) error
	ListEvents(ctx context.Context, id api.TaskID) ([]api.TaskEvent, error)
}

// Noop discards all events.
type Noop struct{}

func (Noop) Append(ctx context.Context, ev api.TaskEvent) error { return nil }
func (Noop) ListEvents(ctx context.Context, id api.TaskID) ([]api.TaskEvent, error) {
	return nil, nil
}
