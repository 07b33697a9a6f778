package statemachine

import (
	"context"
	"sync/atomic"

	"github.com/dmitrymomot/statekit/pkg/async"
	"github.com/dmitrymomot/statekit/pkg/logger"
)

// guardedMachine runs transitions on the caller goroutine and rejects
// overlapping or reentrant triggers instead of waiting.
type guardedMachine struct {
	*core
	busy atomic.Bool
}

func (m *guardedMachine) Fire(ctx context.Context, trigger Trigger, data any) error {
	_, err := m.fire(ctx, trigger, data)
	return err
}

func (m *guardedMachine) FireAsync(ctx context.Context, trigger Trigger, data any) *async.Future[State] {
	if err := m.check(trigger); err != nil {
		return async.Rejected[State](err)
	}
	return async.Async(context.WithoutCancel(ctx), trigger, func(ctx context.Context, trigger Trigger) (State, error) {
		return m.fire(ctx, trigger, data)
	})
}

func (m *guardedMachine) fire(ctx context.Context, trigger Trigger, data any) (State, error) {
	if err := m.check(trigger); err != nil {
		return nil, err
	}

	if !m.busy.CompareAndSwap(false, true) {
		m.logger.DebugContext(ctx, "trigger rejected, transition in progress", logger.Trigger(trigger.Name()))
		return nil, ErrConcurrencyViolation
	}
	defer m.busy.Store(false)

	return m.step(ctx, trigger, data)
}

func (m *guardedMachine) Reset() error {
	if !m.busy.CompareAndSwap(false, true) {
		return ErrConcurrencyViolation
	}
	defer m.busy.Store(false)

	m.reset()
	return nil
}

func (m *guardedMachine) Close() error {
	return m.release()
}
