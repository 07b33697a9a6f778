package statemachine

import (
	"context"
	"sync"

	"github.com/dmitrymomot/statekit/pkg/async"
)

// blockingMachine holds a mutex for the whole transition. Concurrent
// callers wait, so transitions form a total order.
type blockingMachine struct {
	*core
	mu sync.Mutex
}

func (m *blockingMachine) Fire(ctx context.Context, trigger Trigger, data any) error {
	_, err := m.fire(ctx, trigger, data)
	return err
}

func (m *blockingMachine) FireAsync(ctx context.Context, trigger Trigger, data any) *async.Future[State] {
	if err := m.check(trigger); err != nil {
		return async.Rejected[State](err)
	}
	return async.Async(context.WithoutCancel(ctx), trigger, func(ctx context.Context, trigger Trigger) (State, error) {
		return m.fire(ctx, trigger, data)
	})
}

func (m *blockingMachine) fire(ctx context.Context, trigger Trigger, data any) (State, error) {
	if err := m.check(trigger); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.step(ctx, trigger, data)
}

func (m *blockingMachine) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reset()
	return nil
}

func (m *blockingMachine) Close() error {
	return m.release()
}
