package executor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dmitrymomot/statekit/pkg/logger"
)

// Pool runs submitted tasks on a fixed set of worker goroutines.
type Pool struct {
	id      uuid.UUID
	workers int
	tasks   chan func()
	logger  *slog.Logger

	wg sync.WaitGroup
	mu sync.RWMutex // Protects started/stopping against in-flight Submit calls

	started  bool
	stopping bool
	running  atomic.Int64
}

// NewPool creates a pool. Call Start (or Run) before submitting tasks.
func NewPool(opts ...Option) *Pool {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	id := uuid.New()
	return &Pool{
		id:      id,
		workers: o.workers,
		tasks:   make(chan func(), o.queueSize),
		logger: o.logger.With(
			logger.Component("executor.pool"),
			logger.WorkerID(id.String()),
		),
	}
}

// ID returns the pool identifier used in log records.
func (p *Pool) ID() uuid.UUID {
	return p.id
}

// Serial reports whether the pool runs tasks one at a time in submission order.
func (p *Pool) Serial() bool {
	return p.workers == 1
}

// Running returns the number of tasks currently executing.
func (p *Pool) Running() int {
	return int(p.running.Load())
}

// Start launches the worker goroutines.
func (p *Pool) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return ErrPoolAlreadyStarted
	}
	p.started = true

	for range p.workers {
		p.wg.Add(1)
		go p.work()
	}

	p.logger.Info("executor pool started", slog.Int("workers", p.workers), slog.Int("queue_size", cap(p.tasks)))
	return nil
}

// Submit enqueues task. It blocks while the buffer is full.
func (p *Pool) Submit(task func()) error {
	if task == nil {
		return ErrNilTask
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopping {
		return ErrPoolStopped
	}
	if !p.started {
		return ErrPoolNotStarted
	}

	p.tasks <- task
	return nil
}

// Stop stops accepting tasks, lets workers drain what is buffered and waits for them.
func (p *Pool) Stop() error {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return ErrPoolNotStarted
	}
	if p.stopping {
		p.mu.Unlock()
		return nil
	}
	p.stopping = true
	close(p.tasks)
	p.mu.Unlock()

	p.logger.Info("executor pool stopping, draining buffered tasks", slog.Int("buffered", len(p.tasks)))
	p.wg.Wait()
	p.logger.Info("executor pool stopped")

	return nil
}

// Run starts the pool and returns a function suitable for errgroup that
// stops it once ctx is done.
func (p *Pool) Run(ctx context.Context) func() error {
	return func() error {
		if err := p.Start(); err != nil {
			return err
		}

		<-ctx.Done()

		return p.Stop()
	}
}

func (p *Pool) work() {
	defer p.wg.Done()

	for task := range p.tasks {
		p.execute(task)
	}
}

func (p *Pool) execute(task func()) {
	p.running.Add(1)
	defer p.running.Add(-1)

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("task panicked", logger.Error(fmt.Errorf("panic: %v", r)))
		}
	}()

	task()
}
