// Package async provides a generic Future type for results that are produced
// on another goroutine.
//
// A Future is created in one of three ways:
//
//   - Async runs a function on a new goroutine and settles the future with its result.
//   - NewPromise returns a pending future and the Complete function that settles it,
//     for producers that finish work on a goroutine they do not own, such as a queue
//     worker or an external executor.
//   - Resolved and Rejected return futures that are already settled.
//
// A future settles exactly once. Consumers wait with Await, bound the wait
// with AwaitWithTimeout or AwaitContext, select on Done, or poll IsComplete.
// WaitAll and WaitAny coordinate several futures.
//
// # Usage
//
//	future := async.Async(ctx, orderID, func(ctx context.Context, id string) (Receipt, error) {
//	    return billing.Charge(ctx, id)
//	})
//
//	// do other work
//
//	receipt, err := future.AwaitContext(ctx)
//
// Producing a future from a worker:
//
//	future, complete := async.NewPromise[State]()
//	queue <- func() { complete(apply(trigger)) }
//	return future
//
// # Error Handling
//
// Await returns the error the producer settled with. Async settles with the
// context error when ctx is already done before the function starts.
// AwaitWithTimeout returns ErrTimeout and AwaitContext returns ctx.Err() when
// the wait ends first; neither cancels the producer. WaitAny returns
// ErrNoFutures for an empty argument list.
package async
