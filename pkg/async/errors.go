package async

import "errors"

var (
	// ErrTimeout is returned by AwaitWithTimeout when the future is still pending.
	ErrTimeout = errors.New("async: timed out waiting for future")

	// ErrNoFutures is returned by WaitAny when called without futures.
	ErrNoFutures = errors.New("async: no futures to wait for")
)
