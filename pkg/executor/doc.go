// Package executor provides task executors that can drive the scheduled
// execution strategy of package statemachine.
//
// An executor accepts a func() through Submit and decides when and on which
// goroutine it runs. Three implementations are included:
//
//   - Pool runs tasks on a fixed number of worker goroutines fed by a bounded
//     FIFO buffer. A pool with a single worker preserves submission order and
//     reports Serial() == true.
//   - Go starts one goroutine per task. No ordering is implied.
//   - Delayed runs each task after a fixed delay measured on a clock.Clock,
//     which makes it easy to drive from tests with clock.NewMock().
//
// Func adapts a plain function to the Submit contract.
//
// # Usage
//
//	pool := executor.NewPool(
//	    executor.WithWorkers(1),
//	    executor.WithLogger(log),
//	)
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(pool.Run(ctx))
//
//	machine, err := statemachine.New(Idle, table, statemachine.Scheduled(pool))
//
// # Error Handling
//
// Submit returns ErrNilTask for a nil task, ErrPoolNotStarted before Start and
// ErrPoolStopped once Stop has begun. A panic inside a task is recovered and
// logged; it never takes a worker down.
package executor
