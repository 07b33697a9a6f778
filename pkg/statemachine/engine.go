package statemachine

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/statekit/pkg/logger"
)

// Span and attribute names recorded for every transition attempt.
const (
	SpanFire = "statemachine.fire"

	AttrMachineID = attribute.Key("statemachine.machine_id")
	AttrStrategy  = attribute.Key("statemachine.strategy")
	AttrFrom      = attribute.Key("statemachine.from")
	AttrTrigger   = attribute.Key("statemachine.trigger")
	AttrTo        = attribute.Key("statemachine.to")
)

// core holds what every strategy shares: the table, the current state cell
// and the ambient dependencies. Strategies wrap step with their own
// exclusion primitive; step itself assumes it runs exclusively.
type core struct {
	id       uuid.UUID
	strategy string
	initial  State
	current  atomic.Pointer[State]
	table    *Table
	policy   policy
	logger   *slog.Logger
	tracer   trace.Tracer
	clock    clock.Clock
	closer   func() error
	closed   atomic.Bool
}

func newCore(initial State, table *Table, strategy string, o *machineOptions) *core {
	id := uuid.New()
	c := &core{
		id:       id,
		strategy: strategy,
		initial:  initial,
		table:    table,
		policy:   o.policy,
		tracer:   o.tracer,
		clock:    o.clock,
		closer:   o.closer,
		logger: o.logger.With(
			logger.Component("statemachine"),
			logger.MachineID(id.String()),
			logger.Strategy(strategy),
		),
	}
	c.store(initial)
	return c
}

func (c *core) ID() uuid.UUID {
	return c.id
}

func (c *core) Current() State {
	return *c.current.Load()
}

func (c *core) CanFire(ctx context.Context, trigger Trigger, data any) bool {
	if trigger == nil {
		return false
	}
	_, err := c.table.Resolve(ctx, c.Current(), trigger, data)
	return err == nil
}

func (c *core) PermittedTriggers(ctx context.Context, data any) []Trigger {
	state := c.Current()
	var permitted []Trigger
	for _, trigger := range c.table.Triggers(state) {
		if _, err := c.table.Resolve(ctx, state, trigger, data); err == nil {
			permitted = append(permitted, trigger)
		}
	}
	return permitted
}

func (c *core) store(state State) {
	c.current.Store(&state)
}

// check validates a request before any exclusion primitive is taken.
func (c *core) check(trigger Trigger) error {
	if trigger == nil {
		return ErrInvalidTrigger
	}
	if c.closed.Load() {
		return ErrMachineClosed
	}
	return nil
}

// reset stores the initial state. Callers hold the strategy's exclusion primitive.
func (c *core) reset() {
	from := c.Current()
	c.store(c.initial)
	c.logger.Debug("state machine reset",
		logger.FromState(from.Name()),
		logger.ToState(c.initial.Name()),
	)
}

// release marks the machine closed and frees any owned resource.
func (c *core) release() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	c.logger.Debug("state machine closed", logger.State(c.Current().Name()))
	if c.closer != nil {
		return c.closer()
	}
	return nil
}

// step resolves and applies one transition. On failure the state is left
// unchanged and the current state is returned with the error. A panic never
// escapes step, so strategies holding a guard always get to release it.
func (c *core) step(ctx context.Context, trigger Trigger, data any) (state State, err error) {
	from := c.Current()
	start := c.clock.Now()

	ctx, span := c.tracer.Start(ctx, SpanFire, trace.WithAttributes(
		AttrMachineID.String(c.id.String()),
		AttrStrategy.String(c.strategy),
		AttrFrom.String(from.Name()),
		AttrTrigger.String(trigger.Name()),
	))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			state, err = from, fmt.Errorf("%w: %v", ErrTransitionPanicked, r)
			c.logger.ErrorContext(ctx, "transition panicked",
				logger.FromState(from.Name()),
				logger.Trigger(trigger.Name()),
				logger.Error(err),
			)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	tr, err := c.table.Resolve(ctx, from, trigger, data)
	if err != nil {
		if err = c.policy.apply(ctx, c.logger, from, trigger, err); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return from, err
	}

	if err := c.run(ctx, from, tr, trigger, data); err != nil {
		c.logger.ErrorContext(ctx, "transition aborted",
			logger.FromState(from.Name()),
			logger.ToState(tr.To.Name()),
			logger.Trigger(trigger.Name()),
			logger.Error(err),
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return from, err
	}

	c.store(tr.To)
	span.SetAttributes(AttrTo.String(tr.To.Name()))

	c.logger.DebugContext(ctx, "transition completed",
		logger.FromState(from.Name()),
		logger.ToState(tr.To.Name()),
		logger.Trigger(trigger.Name()),
		logger.Duration(c.clock.Since(start)),
	)

	return tr.To, nil
}

// run executes exit hooks of the source state, the transition actions and
// entry hooks of the target state. Any failure aborts the transition.
func (c *core) run(ctx context.Context, from State, tr Transition, trigger Trigger, data any) error {
	phases := [][]Action{
		c.table.exitHooks(from),
		tr.Actions,
		c.table.entryHooks(tr.To),
	}
	for _, actions := range phases {
		for _, action := range actions {
			if action == nil {
				continue
			}
			if err := invoke(ctx, action, from, tr.To, trigger, data); err != nil {
				return fmt.Errorf("%w: %w", ErrActionFailed, err)
			}
		}
	}
	return nil
}

// invoke calls action and turns a panic into an error.
func invoke(ctx context.Context, action Action, from, to State, trigger Trigger, data any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return action(ctx, from, to, trigger, data)
}
