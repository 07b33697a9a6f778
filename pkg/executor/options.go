package executor

import (
	"log/slog"

	"github.com/benbjohnson/clock"
)

// Option is a functional option for configuring executors.
type Option func(*options)

type options struct {
	workers   int
	queueSize int
	logger    *slog.Logger
	clock     clock.Clock
}

func defaultOptions() *options {
	return &options{
		workers:   1,
		queueSize: 64,
		logger:    slog.Default(),
		clock:     clock.New(),
	}
}

// WithWorkers sets the number of pool workers.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithQueueSize sets how many submitted tasks a pool buffers before Submit blocks.
func WithQueueSize(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.queueSize = n
		}
	}
}

// WithLogger sets the logger used by the executor.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock sets the clock used by Delayed.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}
