package statemachine

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/statekit/pkg/logger"
)

// policy decides what happens when a trigger cannot be handled or the
// current state is unknown to the table.
type policy struct {
	throwOnInvalidTrigger bool
	throwOnInvalidState   bool
	onUnhandledTrigger    UnhandledTriggerHandler
	onInvalidState        InvalidStateHandler
}

// apply signals subscribers for policy-controlled errors and returns the error
// the caller should see. Other errors pass through unchanged.
func (p policy) apply(ctx context.Context, log *slog.Logger, state State, trigger Trigger, err error) error {
	switch {
	case IsInvalidStateError(err):
		log.WarnContext(ctx, "current state is not defined in the transition table",
			logger.State(nameOf(state)),
			logger.Trigger(nameOf(trigger)),
		)
		if p.onInvalidState != nil {
			p.onInvalidState(ctx, state)
		}
		if p.throwOnInvalidState {
			return err
		}
		return nil

	case IsUnhandledTriggerError(err):
		log.WarnContext(ctx, "trigger not handled in current state",
			logger.State(nameOf(state)),
			logger.Trigger(nameOf(trigger)),
			logger.Error(err),
		)
		if p.onUnhandledTrigger != nil {
			p.onUnhandledTrigger(ctx, state, trigger)
		}
		if p.throwOnInvalidTrigger {
			return err
		}
		return nil
	}

	return err
}
