package statemachine

import (
	"context"
	"log/slog"

	"github.com/benbjohnson/clock"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Option configures a machine during construction.
type Option func(*machineOptions)

// UnhandledTriggerHandler is notified when a trigger cannot be handled from state.
type UnhandledTriggerHandler func(ctx context.Context, state State, trigger Trigger)

// InvalidStateHandler is notified when the machine is in a state the table does not know.
type InvalidStateHandler func(ctx context.Context, state State)

type machineOptions struct {
	logger *slog.Logger
	tracer trace.Tracer
	clock  clock.Clock
	policy policy
	closer func() error
}

func defaultMachineOptions() *machineOptions {
	return &machineOptions{
		logger: slog.Default(),
		tracer: noop.NewTracerProvider().Tracer("statemachine"),
		clock:  clock.New(),
		policy: policy{
			throwOnInvalidTrigger: true,
			throwOnInvalidState:   true,
		},
	}
}

func newMachineOptions(opts []Option) *machineOptions {
	o := defaultMachineOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *machineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTracer sets the OpenTelemetry tracer used for transition spans.
// Defaults to a no-op tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *machineOptions) {
		if tracer != nil {
			o.tracer = tracer
		}
	}
}

// WithClock sets the clock used to measure transition duration.
func WithClock(c clock.Clock) Option {
	return func(o *machineOptions) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithThrowOnInvalidTrigger controls whether an unhandled trigger is returned
// as an error. When disabled the trigger is ignored and Fire returns nil.
// Enabled by default.
func WithThrowOnInvalidTrigger(throw bool) Option {
	return func(o *machineOptions) {
		o.policy.throwOnInvalidTrigger = throw
	}
}

// WithThrowOnInvalidState controls whether an unknown current state is
// returned as an error. Enabled by default.
func WithThrowOnInvalidState(throw bool) Option {
	return func(o *machineOptions) {
		o.policy.throwOnInvalidState = throw
	}
}

// WithUnhandledTriggerHandler subscribes fn to unhandled trigger signals.
func WithUnhandledTriggerHandler(fn UnhandledTriggerHandler) Option {
	return func(o *machineOptions) {
		o.policy.onUnhandledTrigger = fn
	}
}

// WithInvalidStateHandler subscribes fn to invalid state signals.
func WithInvalidStateHandler(fn InvalidStateHandler) Option {
	return func(o *machineOptions) {
		o.policy.onInvalidState = fn
	}
}
