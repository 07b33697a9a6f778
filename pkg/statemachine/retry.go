package statemachine

import (
	"context"

	"github.com/cenkalti/backoff/v4"
)

// RetryAction wraps action so a failure is retried according to the policy
// returned by newBackOff. A fresh policy is created per transition. Return
// backoff.Permanent(err) from action to stop retrying early. The retry loop
// ends when ctx is done.
func RetryAction(action Action, newBackOff func() backoff.BackOff) Action {
	if newBackOff == nil {
		newBackOff = func() backoff.BackOff { return backoff.NewExponentialBackOff() }
	}

	return func(ctx context.Context, from, to State, trigger Trigger, data any) error {
		return backoff.Retry(func() error {
			return action(ctx, from, to, trigger, data)
		}, backoff.WithContext(newBackOff(), ctx))
	}
}
