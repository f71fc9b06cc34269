package taskserv_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mlahtinen/taskserv"
)

// TestConcurrentProducers verifies that many producer goroutines submitting
// and then retrieving their own results observe exactly the values their
// tasks produced — no lost, duplicated, or cross-wired results.
//
// This mirrors production use: a shared engine, each producer tracking its
// own (id, expected value) pairs.
func TestConcurrentProducers(t *testing.T) {
	t.Parallel()

	eng := taskserv.New()
	require.NoError(t, eng.Start())
	defer eng.Stop()

	ctx := context.Background()

	const (
		producers        = 8
		tasksPerProducer = 200
	)

	var wg sync.WaitGroup
	wg.Add(producers)

	errs := make(chan error, producers)

	for p := 0; p < producers; p++ {
		p := p
		go func() {
			defer wg.Done()

			expected := make(map[taskserv.TaskID]int, tasksPerProducer)

			for i := 0; i < tasksPerProducer; i++ {
				x := p*tasksPerProducer + i
				id, err := eng.Submit(func(ctx context.Context) (any, error) {
					return x * x, nil
				})
				if err != nil {
					errs <- err
					return
				}
				if _, dup := expected[id]; dup {
					t.Errorf("producer %d: duplicate id %d", p, id)
					return
				}
				expected[id] = x * x
			}

			for id, want := range expected {
				got, err := taskserv.AwaitAs[int](ctx, eng, id)
				if err != nil {
					errs <- err
					return
				}
				if got != want {
					t.Errorf("producer %d: task %d returned %d, want %d", p, id, got, want)
					return
				}
			}
		}()
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}

// TestSubmitNeverBlocksOnExecution checks the no-backpressure contract: a
// slow task at the head of the queue must not delay later submissions.
func TestSubmitNeverBlocksOnExecution(t *testing.T) {
	t.Parallel()

	eng := taskserv.New()
	require.NoError(t, eng.Start())
	defer eng.Stop()

	release := make(chan struct{})
	_, err := eng.Submit(func(ctx context.Context) (any, error) {
		<-release
		return nil, nil
	})
	require.NoError(t, err)

	// All of these land behind the blocker; Submit must return anyway.
	ids := make([]taskserv.TaskID, 0, 1000)
	for i := 0; i < 1000; i++ {
		i := i
		id, err := eng.Submit(func(ctx context.Context) (any, error) { return i, nil })
		require.NoError(t, err)
		ids = append(ids, id)
	}

	close(release)

	ctx := context.Background()
	for i, id := range ids {
		got, err := taskserv.AwaitAs[int](ctx, eng, id)
		require.NoError(t, err)
		require.Equal(t, i, got)
	}
}
