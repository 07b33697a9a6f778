package statemachine

import (
	"fmt"

	"github.com/dmitrymomot/statekit/pkg/executor"
	"github.com/dmitrymomot/statekit/pkg/logger"
)

// New creates a machine in the initial state, bound to table and driven by strategy.
// The initial state does not have to appear in the table; firing from an unknown
// state is reported through the invalid state policy.
func New(initial State, table *Table, strategy Strategy, opts ...Option) (Machine, error) {
	return build(initial, table, strategy, newMachineOptions(opts))
}

// build creates the machine from already applied options.
func build(initial State, table *Table, strategy Strategy, o *machineOptions) (Machine, error) {
	if initial == nil {
		return nil, ErrNilInitialState
	}
	if table == nil {
		return nil, ErrNilTable
	}
	if strategy == nil {
		return nil, ErrNilStrategy
	}

	c := newCore(initial, table, strategy.Name(), o)

	m, err := strategy.newMachine(c)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("state machine created", logger.State(initial.Name()))
	if !table.HasState(initial) {
		c.logger.Warn("initial state is not defined in the transition table", logger.State(initial.Name()))
	}

	return m, nil
}

// MustNew creates a new machine and panics on failure, following the
// fail-fast pattern used at application start.
func MustNew(initial State, table *Table, strategy Strategy, opts ...Option) Machine {
	m, err := New(initial, table, strategy, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create state machine: %v", err))
	}
	return m
}

// NewFunc builds a machine with a caller supplied factory. Any failure of the
// factory is reported as a configuration error.
func NewFunc(factory func() (Machine, error)) (Machine, error) {
	if factory == nil {
		return nil, ErrNilFactory
	}

	m, err := factory()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	if m == nil {
		return nil, ErrNilMachine
	}

	return m, nil
}

// NewFromConfig builds a machine from an env-loaded Config. Options passed
// explicitly take precedence over the config. The scheduled strategy gets an
// executor.Pool that the machine owns and stops on Close.
func NewFromConfig(initial State, table *Table, cfg Config, opts ...Option) (Machine, error) {
	opts = append([]Option{
		WithThrowOnInvalidTrigger(cfg.ThrowOnInvalidTrigger),
		WithThrowOnInvalidState(cfg.ThrowOnInvalidState),
	}, opts...)

	if cfg.Strategy != KindScheduled {
		strategy, err := cfg.Strategy.Strategy(nil)
		if err != nil {
			return nil, err
		}
		return New(initial, table, strategy, opts...)
	}

	o := newMachineOptions(opts)
	pool := executor.NewPool(
		executor.WithWorkers(cfg.SchedulerWorkers),
		executor.WithQueueSize(cfg.SchedulerQueueSize),
		executor.WithLogger(o.logger),
	)
	if err := pool.Start(); err != nil {
		return nil, fmt.Errorf("starting scheduler pool: %w", err)
	}
	o.closer = pool.Stop

	m, err := build(initial, table, Scheduled(pool), o)
	if err != nil {
		_ = pool.Stop()
		return nil, err
	}

	return m, nil
}
