// Package taskserv provides a minimal, embeddable asynchronous
// task-execution engine for Go.
//
// Taskserv is designed for programs that need to hand heterogeneous units
// of work to a single background executor and collect the results later —
// without introducing external brokers or heavy infrastructure. Producers
// submit closures from any number of goroutines; one dedicated worker
// executes them serially, in submission order; each producer retrieves its
// result by blocking on the task it submitted.
//
// # Core Concepts
//
// The taskserv programming model is intentionally small:
//
//  1. Engine
//  2. TaskFunc
//  3. TaskID
//  4. Observer
//  5. Journal
//
// # Engine
//
// The Engine owns everything: a registry of submitted tasks, a FIFO
// pending queue of their ids, and the single worker goroutine. Its
// lifecycle is one-way — construct, Start, Stop — and Stop never leaks
// the worker: it wakes it, waits for it to exit, and reports any tasks
// left behind.
//
//	eng := taskserv.New()
//	_ = eng.Start()
//	defer eng.Stop()
//
//	id, _ := eng.Submit(func(ctx context.Context) (any, error) {
//	    return 7 * 7, nil
//	})
//	v, _ := eng.Await(ctx, id) // 49
//
// Submit never blocks on execution: the queue is unbounded and ids are
// handed out immediately. Await blocks only on the one task it asks for;
// waiting for task A never delays submitting task B or retrieving task C.
//
// # TaskFunc
//
// A TaskFunc is the fundamental unit of work:
//
//	type TaskFunc func(ctx context.Context) (any, error)
//
// Arguments are captured by closure at submission time and the function
// runs exactly once, on the worker. A TaskFunc that returns an error — or
// panics — produces a failed outcome for its own awaiter and nothing
// else: the worker survives and later tasks run normally.
//
// # TaskID and retrieval semantics
//
// Every submission returns a TaskID. The result behind an id can be
// claimed exactly once: the first successful Await removes the task from
// the registry, and any later (or concurrently racing) Await for the same
// id fails with ErrTaskNotFound. Typed retrieval is available via
// AwaitAs:
//
//	n, err := taskserv.AwaitAs[int](ctx, eng, id)
//
// which fails with ErrTypeMismatch instead of guessing when the stored
// value has a different dynamic type.
//
// # Observer
//
// Observers receive task lifecycle callbacks for logging and metrics.
// The package ships NoopObserver, LoggingObserver (structured log/slog
// output), BasicMetrics (atomic counters with snapshots), and
// CompositeObserver to fan out to several at once.
//
// # Journal
//
// Engines built with NewSQLiteEngine append task lifecycle events to a
// SQLite table and expose them through ListEvents. The journal is an
// audit trail, not persistence: a restarted process starts empty, and
// tasks pending at Stop are abandoned by design.
//
// For runnable demos, see the /examples directory.
package taskserv
