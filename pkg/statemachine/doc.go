// Package statemachine provides a finite-state-machine runtime with
// pluggable execution strategies.
//
// The package revolves around two minimal interfaces, State and Trigger, that
// give you full freedom to model domain specific states while the library
// handles:
//  1. Transition lookup and guard evaluation through an immutable Table
//  2. Execution of exit hooks, transition actions and entry hooks
//  3. Serialization of concurrent triggers according to a Strategy
//  4. Reporting of unhandled triggers and unknown states through an error policy
//
// StringState and StringTrigger cover simple cases; custom types can satisfy
// the interfaces when more data is needed.
//
// # Transition Tables
//
// A Table is built once and shared read-only by any number of machines:
//
//	const (
//	    Idle    = statemachine.StringState("idle")
//	    Running = statemachine.StringState("running")
//	    Start   = statemachine.StringTrigger("start")
//	    Stop    = statemachine.StringTrigger("stop")
//	)
//
//	table := statemachine.MustNewTable(
//	    statemachine.WithTransition(Idle, Running, Start),
//	    statemachine.WithTransition(Running, Idle, Stop),
//	)
//
// The fluent Builder produces the same table:
//
//	table, err := statemachine.NewBuilder().
//	    From(Idle).When(Start).To(Running).Add().
//	    From(Running).When(Stop).To(Idle).Add().
//	    Build()
//
// Several transitions may share a source state and trigger. The first one
// whose guards all pass wins, so declaration order sets priority.
//
// # Execution Strategies
//
// The strategy passed to New decides how concurrent triggers are handled:
//
//   - Blocking holds a mutex for the whole transition; callers wait.
//   - Guarded runs on the caller goroutine and fails overlapping triggers
//     with ErrConcurrencyViolation.
//   - GuardedAsync does the same on a background goroutine and returns a future.
//   - Queued applies every trigger in arrival order on a single worker.
//   - Scheduled submits transitions to an Executor such as executor.Pool.
//     Overlap is rejected unless the executor is serial.
//
// SyncStrategy and AsyncStrategy pick a strategy from boolean settings, and
// NewFromConfig builds one from a Config loaded with package config.
//
//	machine, err := statemachine.New(Idle, table, statemachine.Queued(),
//	    statemachine.WithLogger(log),
//	)
//	if err != nil {
//	    return err
//	}
//	defer machine.Close()
//
//	state, err := machine.FireAsync(ctx, Start, nil).Await()
//
// Current never blocks. It returns the last stored state even while a
// transition is in progress.
//
// # Error Handling
//
// Unhandled triggers and unknown current states are governed by the error
// policy. By default both are returned as errors:
//
//	if statemachine.IsUnhandledTriggerError(err) { /* ... */ }
//	if statemachine.IsInvalidStateError(err)     { /* ... */ }
//
// WithThrowOnInvalidTrigger(false) and WithThrowOnInvalidState(false) turn
// them into no-ops that leave the state unchanged. Subscribers registered with
// WithUnhandledTriggerHandler and WithInvalidStateHandler are notified either way.
//
// A failing action aborts the transition and is reported wrapped in
// ErrActionFailed. RetryAction retries an action with a backoff policy.
// Construction problems wrap ErrInvalidConfiguration.
//
// # Observability
//
// Every transition attempt is logged through slog and traced as a
// "statemachine.fire" span on the tracer given to WithTracer.
package statemachine
