package statemachine

import (
	"context"
	"sync"

	"github.com/dmitrymomot/statekit/pkg/async"
	"github.com/dmitrymomot/statekit/pkg/logger"
)

// request is a pending unit of work for the queued strategy.
// A nil trigger marks a reset request.
type request struct {
	ctx      context.Context
	trigger  Trigger
	data     any
	complete async.Complete[State]
}

// queuedMachine appends requests to an unbounded FIFO drained by a single
// worker goroutine, started on demand. Each transition runs to completion
// before the next one starts.
type queuedMachine struct {
	*core

	mu      sync.Mutex
	pending []request
	running bool
	closing bool
	worker  sync.WaitGroup
}

func (m *queuedMachine) Fire(ctx context.Context, trigger Trigger, data any) error {
	_, err := m.FireAsync(ctx, trigger, data).Await()
	return err
}

// FireAsync enqueues trigger. Calling it from inside an action of the same
// machine is allowed; the request runs after the current one. Waiting on
// that future from inside the action deadlocks.
func (m *queuedMachine) FireAsync(ctx context.Context, trigger Trigger, data any) *async.Future[State] {
	if trigger == nil {
		return async.Rejected[State](ErrInvalidTrigger)
	}
	return m.enqueue(ctx, trigger, data)
}

// Reset is queued behind pending triggers and returns once it has been applied.
func (m *queuedMachine) Reset() error {
	_, err := m.enqueue(context.Background(), nil, nil).Await()
	return err
}

// Close rejects new requests, waits for pending ones to finish and stops the worker.
// Calling Close from inside an action of the same machine deadlocks, since it
// waits for the worker running that action. Call it from another goroutine instead.
func (m *queuedMachine) Close() error {
	m.mu.Lock()
	if m.closing {
		m.mu.Unlock()
		return nil
	}
	m.closing = true
	remaining := len(m.pending)
	m.mu.Unlock()

	m.logger.Debug("draining queued transitions", logger.QueueLength(remaining))
	m.worker.Wait()

	return m.release()
}

func (m *queuedMachine) enqueue(ctx context.Context, trigger Trigger, data any) *async.Future[State] {
	future, complete := async.NewPromise[State]()

	m.mu.Lock()
	if m.closing {
		m.mu.Unlock()
		return async.Rejected[State](ErrMachineClosed)
	}

	m.pending = append(m.pending, request{
		ctx:      context.WithoutCancel(ctx),
		trigger:  trigger,
		data:     data,
		complete: complete,
	})
	length := len(m.pending)

	if !m.running {
		m.running = true
		m.worker.Add(1)
		go m.drain()
	}
	m.mu.Unlock()

	if trigger != nil {
		m.logger.DebugContext(ctx, "trigger queued", logger.Trigger(trigger.Name()), logger.QueueLength(length))
	}

	return future
}

func (m *queuedMachine) drain() {
	defer m.worker.Done()

	for {
		m.mu.Lock()
		if len(m.pending) == 0 {
			m.running = false
			m.pending = nil
			m.mu.Unlock()
			return
		}
		req := m.pending[0]
		m.pending[0] = request{}
		m.pending = m.pending[1:]
		m.mu.Unlock()

		if req.trigger == nil {
			m.reset()
			req.complete(m.Current(), nil)
			continue
		}

		req.complete(m.step(req.ctx, req.trigger, req.data))
	}
}
