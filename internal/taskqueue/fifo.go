package taskqueue

import "github.com/mlahtinen/taskserv/pkg/api"

// FIFO is an unbounded Queue backed by a slice with a moving head.
// Push never blocks and never fails; capacity grows as needed.
//
// Not safe for concurrent use on its own: callers hold the engine's lock.
type FIFO struct {
	ids  []api.TaskID
	head int
}

// NewFIFO creates an empty queue.
func NewFIFO() *FIFO {
	return &FIFO{}
}

// Ensure FIFO implements Queue.
var _ Queue = (*FIFO)(nil)

func (q *FIFO) Push(id api.TaskID) {
	q.ids = append(q.ids, id)
}

func (q *FIFO) Pop() (api.TaskID, bool) {
	if q.head >= len(q.ids) {
		return 0, false
	}
	id := q.ids[q.head]
	q.head++

	// Reclaim the consumed prefix once it dominates the backing slice,
	// so a long-lived queue does not pin memory for popped ids.
	if q.head > 64 && q.head*2 >= len(q.ids) {
		q.ids = append(q.ids[:0], q.ids[q.head:]...)
		q.head = 0
	}
	return id, true
}

func (q *FIFO) Len() int {
	return len(q.ids) - q.head
}
