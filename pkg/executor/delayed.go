package executor

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Delayed runs each submitted task once delay has elapsed on its clock.
type Delayed struct {
	delay time.Duration
	clock clock.Clock
	wg    sync.WaitGroup
}

// NewDelayed creates a Delayed executor. WithClock swaps the wall clock for a mock.
func NewDelayed(delay time.Duration, opts ...Option) *Delayed {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Delayed{
		delay: delay,
		clock: o.clock,
	}
}

// Submit schedules task to run after the configured delay.
func (d *Delayed) Submit(task func()) error {
	if task == nil {
		return ErrNilTask
	}

	d.wg.Add(1)
	d.clock.AfterFunc(d.delay, func() {
		defer d.wg.Done()
		task()
	})
	return nil
}

// Wait blocks until every submitted task has run.
func (d *Delayed) Wait() {
	d.wg.Wait()
}
