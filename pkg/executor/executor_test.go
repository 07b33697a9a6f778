package executor_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/statekit/pkg/executor"
	"github.com/dmitrymomot/statekit/pkg/logger"
)

func TestPool_StartStop(t *testing.T) {
	t.Parallel()

	t.Run("start and stop successfully", func(t *testing.T) {
		t.Parallel()

		pool := executor.NewPool(executor.WithLogger(logger.Discard()))
		require.NoError(t, pool.Start())
		require.NoError(t, pool.Stop())
	})

	t.Run("double start error", func(t *testing.T) {
		t.Parallel()

		pool := executor.NewPool(executor.WithLogger(logger.Discard()))
		require.NoError(t, pool.Start())
		defer pool.Stop()

		assert.ErrorIs(t, pool.Start(), executor.ErrPoolAlreadyStarted)
	})

	t.Run("stop without start", func(t *testing.T) {
		t.Parallel()

		pool := executor.NewPool(executor.WithLogger(logger.Discard()))
		assert.ErrorIs(t, pool.Stop(), executor.ErrPoolNotStarted)
	})

	t.Run("second stop is a no-op", func(t *testing.T) {
		t.Parallel()

		pool := executor.NewPool(executor.WithLogger(logger.Discard()))
		require.NoError(t, pool.Start())
		require.NoError(t, pool.Stop())
		assert.NoError(t, pool.Stop())
	})
}

func TestPool_Submit(t *testing.T) {
	t.Parallel()

	t.Run("nil task", func(t *testing.T) {
		t.Parallel()

		pool := executor.NewPool(executor.WithLogger(logger.Discard()))
		assert.ErrorIs(t, pool.Submit(nil), executor.ErrNilTask)
	})

	t.Run("not started", func(t *testing.T) {
		t.Parallel()

		pool := executor.NewPool(executor.WithLogger(logger.Discard()))
		assert.ErrorIs(t, pool.Submit(func() {}), executor.ErrPoolNotStarted)
	})

	t.Run("rejected after stop", func(t *testing.T) {
		t.Parallel()

		pool := executor.NewPool(executor.WithLogger(logger.Discard()))
		require.NoError(t, pool.Start())
		require.NoError(t, pool.Stop())

		assert.ErrorIs(t, pool.Submit(func() {}), executor.ErrPoolStopped)
	})

	t.Run("single worker preserves order", func(t *testing.T) {
		t.Parallel()

		pool := executor.NewPool(
			executor.WithWorkers(1),
			executor.WithQueueSize(16),
			executor.WithLogger(logger.Discard()),
		)
		require.True(t, pool.Serial())
		require.NoError(t, pool.Start())

		var (
			mu    sync.Mutex
			order []int
		)
		for i := range 50 {
			require.NoError(t, pool.Submit(func() {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
			}))
		}

		// Stop drains what is buffered
		require.NoError(t, pool.Stop())

		require.Len(t, order, 50)
		for i, v := range order {
			assert.Equal(t, i, v)
		}
	})

	t.Run("multiple workers run tasks in parallel", func(t *testing.T) {
		t.Parallel()

		pool := executor.NewPool(
			executor.WithWorkers(4),
			executor.WithLogger(logger.Discard()),
		)
		require.False(t, pool.Serial())
		require.NoError(t, pool.Start())
		defer pool.Stop()

		var (
			started sync.WaitGroup
			release = make(chan struct{})
			done    sync.WaitGroup
		)
		started.Add(4)
		done.Add(4)
		for range 4 {
			require.NoError(t, pool.Submit(func() {
				defer done.Done()
				started.Done()
				<-release
			}))
		}

		// All four tasks must be blocked at the same time
		started.Wait()
		assert.Equal(t, 4, pool.Running())
		close(release)
		done.Wait()
	})

	t.Run("panic is recovered", func(t *testing.T) {
		t.Parallel()

		pool := executor.NewPool(executor.WithLogger(logger.Discard()))
		require.NoError(t, pool.Start())

		var ran atomic.Bool
		require.NoError(t, pool.Submit(func() { panic("boom") }))
		require.NoError(t, pool.Submit(func() { ran.Store(true) }))
		require.NoError(t, pool.Stop())

		assert.True(t, ran.Load(), "worker should survive a panicking task")
	})
}

func TestPool_Run(t *testing.T) {
	t.Parallel()

	pool := executor.NewPool(executor.WithLogger(logger.Discard()))

	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	g.Go(pool.Run(ctx))

	var ran atomic.Int32
	require.Eventually(t, func() bool {
		return pool.Submit(func() { ran.Add(1) }) == nil
	}, time.Second, time.Millisecond)

	cancel()
	require.NoError(t, g.Wait())
	assert.Equal(t, int32(1), ran.Load())
}

func TestFunc(t *testing.T) {
	t.Parallel()

	t.Run("inline runs before submit returns", func(t *testing.T) {
		t.Parallel()

		ran := false
		require.NoError(t, executor.Inline().Submit(func() { ran = true }))
		assert.True(t, ran)
	})

	t.Run("go runs every task", func(t *testing.T) {
		t.Parallel()

		var wg sync.WaitGroup
		var count atomic.Int32
		for range 10 {
			wg.Add(1)
			require.NoError(t, executor.Go().Submit(func() {
				defer wg.Done()
				count.Add(1)
			}))
		}
		wg.Wait()
		assert.Equal(t, int32(10), count.Load())
	})

	t.Run("custom adapter error is returned", func(t *testing.T) {
		t.Parallel()

		errBusy := errors.New("busy")
		reject := executor.Func(func(func()) error { return errBusy })
		assert.ErrorIs(t, reject.Submit(func() {}), errBusy)
	})

	t.Run("nil task", func(t *testing.T) {
		t.Parallel()

		assert.ErrorIs(t, executor.Go().Submit(nil), executor.ErrNilTask)
	})
}

func TestDelayed(t *testing.T) {
	t.Parallel()

	mockClock := clock.NewMock()
	d := executor.NewDelayed(time.Minute, executor.WithClock(mockClock))

	var ran atomic.Bool
	require.NoError(t, d.Submit(func() { ran.Store(true) }))

	mockClock.Add(30 * time.Second)
	assert.False(t, ran.Load())

	mockClock.Add(30 * time.Second)
	d.Wait()
	assert.True(t, ran.Load())

	assert.ErrorIs(t, d.Submit(nil), executor.ErrNilTask)
}
