package executor

import "errors"

var (
	// ErrNilTask is returned when Submit is called with a nil task.
	ErrNilTask = errors.New("executor: task cannot be nil")

	// ErrPoolNotStarted is returned when submitting to a pool that was never started.
	ErrPoolNotStarted = errors.New("executor: pool not started")

	// ErrPoolAlreadyStarted is returned by Start on a running pool.
	ErrPoolAlreadyStarted = errors.New("executor: pool already started")

	// ErrPoolStopped is returned when submitting to a pool that is shutting down.
	ErrPoolStopped = errors.New("executor: pool stopped")
)
