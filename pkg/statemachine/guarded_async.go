package statemachine

import (
	"context"
	"sync/atomic"

	"github.com/dmitrymomot/statekit/pkg/async"
	"github.com/dmitrymomot/statekit/pkg/logger"
)

// guardedAsyncMachine runs each transition on its own goroutine. The guard
// is taken before FireAsync returns and held until the transition finishes,
// including any blocking action.
type guardedAsyncMachine struct {
	*core
	busy atomic.Bool
}

func (m *guardedAsyncMachine) Fire(ctx context.Context, trigger Trigger, data any) error {
	_, err := m.FireAsync(ctx, trigger, data).Await()
	return err
}

func (m *guardedAsyncMachine) FireAsync(ctx context.Context, trigger Trigger, data any) *async.Future[State] {
	if err := m.check(trigger); err != nil {
		return async.Rejected[State](err)
	}

	if !m.busy.CompareAndSwap(false, true) {
		m.logger.DebugContext(ctx, "trigger rejected, transition in progress", logger.Trigger(trigger.Name()))
		return async.Rejected[State](ErrConcurrencyViolation)
	}

	future, complete := async.NewPromise[State]()
	ctx = context.WithoutCancel(ctx)

	go func() {
		state, err := m.step(ctx, trigger, data)
		// Release before settling so a caller woken by the future can fire again
		m.busy.Store(false)
		complete(state, err)
	}()

	return future
}

func (m *guardedAsyncMachine) Reset() error {
	if !m.busy.CompareAndSwap(false, true) {
		return ErrConcurrencyViolation
	}
	defer m.busy.Store(false)

	m.reset()
	return nil
}

func (m *guardedAsyncMachine) Close() error {
	return m.release()
}
