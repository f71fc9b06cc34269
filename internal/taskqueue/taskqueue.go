// Package taskqueue provides the engine's pending queue: an ordered
// sequence of task ids awaiting execution. The queue holds only ids,
// never tasks, so every lookup goes through the engine's registry.
package taskqueue

import "github.com/mlahtinen/taskserv/pkg/api"

// Queue is a FIFO of task ids. Implementations are not required to be
// safe for concurrent use; the engine serializes access under its lock.
type Queue interface {
	// Push appends an id to the back of the queue.
	Push(id api.TaskID)

	// Pop removes and returns the front id. The second return value is
	// false when the queue is empty.
	Pop() (api.TaskID, bool)

	// Len returns the number of queued ids.
	Len() int
}
