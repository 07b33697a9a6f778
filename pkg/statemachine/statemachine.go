package statemachine

import (
	"context"

	"github.com/google/uuid"

	"github.com/dmitrymomot/statekit/pkg/async"
)

// State represents a state in the state machine. States are compared by Name.
type State interface {
	Name() string
}

// Trigger represents an input that can cause a state transition.
type Trigger interface {
	Name() string
}

// Action executes side effects during state transitions. Returning an error prevents the transition.
// Actions may block; asynchronous strategies run them off the caller goroutine.
type Action func(ctx context.Context, from, to State, trigger Trigger, data any) error

// Guard evaluates whether a transition should be allowed based on runtime conditions.
type Guard func(ctx context.Context, from State, trigger Trigger, data any) bool

// Transition defines a state change caused by a trigger, with optional guards and actions.
type Transition struct {
	From    State
	To      State
	Trigger Trigger
	Guards  []Guard  // All must pass for transition to proceed
	Actions []Action // Executed in order before state change
}

// Machine is a running state machine bound to one execution strategy.
type Machine interface {
	// ID identifies the instance in logs and traces.
	ID() uuid.UUID

	// Current returns a snapshot of the current state. It never blocks.
	Current() State

	// Fire applies trigger and returns once the transition has finished or failed.
	Fire(ctx context.Context, trigger Trigger, data any) error

	// FireAsync applies trigger and returns a future settled with the resulting state.
	FireAsync(ctx context.Context, trigger Trigger, data any) *async.Future[State]

	// CanFire reports whether trigger would be accepted from the current state.
	CanFire(ctx context.Context, trigger Trigger, data any) bool

	// PermittedTriggers lists the triggers CanFire would accept right now.
	PermittedTriggers(ctx context.Context, data any) []Trigger

	// Reset returns the machine to its initial state.
	Reset() error

	// Close stops accepting triggers and releases strategy resources.
	Close() error
}

// StringState provides a simple string-based state implementation for basic use cases.
type StringState string

func (s StringState) Name() string {
	return string(s)
}

// StringTrigger provides a simple string-based trigger implementation for basic use cases.
type StringTrigger string

func (t StringTrigger) Name() string {
	return string(t)
}
