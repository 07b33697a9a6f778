package statemachine

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/dmitrymomot/statekit/pkg/async"
	"github.com/dmitrymomot/statekit/pkg/logger"
)

// scheduledMachine submits each transition to an external executor.
//
// For a non-serial executor the guard is taken at submission, so a second
// trigger fails with ErrConcurrencyViolation while one is pending. A serial
// executor orders the work itself: submissions are accepted and the guard is
// only taken when a task starts, which surfaces an executor that breaks its
// serial promise as ErrConcurrencyViolation on the future.
type scheduledMachine struct {
	*core
	exec   Executor
	serial bool
	busy   atomic.Bool
}

func (m *scheduledMachine) Fire(ctx context.Context, trigger Trigger, data any) error {
	_, err := m.FireAsync(ctx, trigger, data).Await()
	return err
}

func (m *scheduledMachine) FireAsync(ctx context.Context, trigger Trigger, data any) *async.Future[State] {
	if err := m.check(trigger); err != nil {
		return async.Rejected[State](err)
	}

	if !m.serial && !m.busy.CompareAndSwap(false, true) {
		m.logger.DebugContext(ctx, "trigger rejected, transition in progress", logger.Trigger(trigger.Name()))
		return async.Rejected[State](ErrConcurrencyViolation)
	}

	future, complete := async.NewPromise[State]()
	ctx = context.WithoutCancel(ctx)

	task := func() {
		if m.serial && !m.busy.CompareAndSwap(false, true) {
			m.logger.WarnContext(ctx, "serial executor ran transitions concurrently", logger.Trigger(trigger.Name()))
			complete(nil, ErrConcurrencyViolation)
			return
		}

		state, err := m.step(ctx, trigger, data)
		m.busy.Store(false)
		complete(state, err)
	}

	if err := m.exec.Submit(task); err != nil {
		if !m.serial {
			m.busy.Store(false)
		}
		m.logger.ErrorContext(ctx, "executor rejected transition", logger.Trigger(trigger.Name()), logger.Error(err))
		complete(nil, fmt.Errorf("%w: %w", ErrExecutorRejected, err))
	}

	return future
}

// Reset applies immediately when no transition holds the guard.
func (m *scheduledMachine) Reset() error {
	if !m.busy.CompareAndSwap(false, true) {
		return ErrConcurrencyViolation
	}
	defer m.busy.Store(false)

	m.reset()
	return nil
}

// Close rejects new triggers and stops the executor when the machine owns it.
func (m *scheduledMachine) Close() error {
	return m.release()
}
