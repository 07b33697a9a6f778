package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("invalid transition: from, to, or trigger cannot be nil")
	ErrInvalidTrigger    = errors.New("invalid trigger: trigger cannot be nil")
	ErrActionFailed      = errors.New("action failed")

	// ErrConcurrencyViolation is returned when a guarded strategy receives a
	// trigger while another transition is still in progress.
	ErrConcurrencyViolation = errors.New("concurrency violation: another transition is in progress")

	ErrMachineClosed    = errors.New("state machine is closed")
	ErrExecutorRejected = errors.New("executor rejected transition")

	// ErrTransitionPanicked is returned when a guard panics while a trigger is resolved.
	// Panicking actions and hooks are reported as ErrActionFailed instead.
	ErrTransitionPanicked = errors.New("transition panicked")
)

// Configuration errors. All of them wrap ErrInvalidConfiguration.
var (
	ErrInvalidConfiguration = errors.New("invalid state machine configuration")

	ErrNilInitialState = fmt.Errorf("%w: initial state cannot be nil", ErrInvalidConfiguration)
	ErrNilTable        = fmt.Errorf("%w: transition table cannot be nil", ErrInvalidConfiguration)
	ErrNilStrategy     = fmt.Errorf("%w: execution strategy cannot be nil", ErrInvalidConfiguration)
	ErrNilExecutor     = fmt.Errorf("%w: scheduled strategy requires an executor", ErrInvalidConfiguration)
	ErrNilFactory      = fmt.Errorf("%w: factory function cannot be nil", ErrInvalidConfiguration)
	ErrNilMachine      = fmt.Errorf("%w: factory returned a nil machine", ErrInvalidConfiguration)
	ErrUnknownStrategy = fmt.Errorf("%w: unknown strategy", ErrInvalidConfiguration)
)

// ErrNoTransitionAvailable indicates no transition exists for the given state/trigger combination.
type ErrNoTransitionAvailable struct {
	StateName   string
	TriggerName string
}

func (e *ErrNoTransitionAvailable) Error() string {
	return fmt.Sprintf("no transition available from state '%s' for trigger '%s'", e.StateName, e.TriggerName)
}

func NewErrNoTransitionAvailable(stateName, triggerName string) *ErrNoTransitionAvailable {
	return &ErrNoTransitionAvailable{
		StateName:   stateName,
		TriggerName: triggerName,
	}
}

// ErrTransitionRejected indicates all possible transitions were blocked by guard functions.
type ErrTransitionRejected struct {
	StateName   string
	TriggerName string
}

func (e *ErrTransitionRejected) Error() string {
	return fmt.Sprintf("transition from state '%s' for trigger '%s' was rejected by guards", e.StateName, e.TriggerName)
}

func NewErrTransitionRejected(stateName, triggerName string) *ErrTransitionRejected {
	return &ErrTransitionRejected{
		StateName:   stateName,
		TriggerName: triggerName,
	}
}

// ErrInvalidState indicates the machine is in a state the transition table does not know.
type ErrInvalidState struct {
	StateName string
}

func (e *ErrInvalidState) Error() string {
	return fmt.Sprintf("state '%s' is not defined in the transition table", e.StateName)
}

func NewErrInvalidState(stateName string) *ErrInvalidState {
	return &ErrInvalidState{StateName: stateName}
}

func IsNoTransitionAvailableError(err error) bool {
	var e *ErrNoTransitionAvailable
	return errors.As(err, &e)
}

func IsTransitionRejectedError(err error) bool {
	var e *ErrTransitionRejected
	return errors.As(err, &e)
}

// IsUnhandledTriggerError reports whether err means the trigger could not be
// handled from the current state, either because no transition is defined or
// because every guard rejected it.
func IsUnhandledTriggerError(err error) bool {
	return IsNoTransitionAvailableError(err) || IsTransitionRejectedError(err)
}

func IsInvalidStateError(err error) bool {
	var e *ErrInvalidState
	return errors.As(err, &e)
}

func IsActionError(err error) bool {
	return errors.Is(err, ErrActionFailed)
}

func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}
