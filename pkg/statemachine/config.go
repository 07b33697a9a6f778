package statemachine

import (
	"fmt"
)

// StrategyKind names an execution strategy in configuration.
type StrategyKind string

const (
	KindBlocking     StrategyKind = "blocking"
	KindGuarded      StrategyKind = "guarded"
	KindGuardedAsync StrategyKind = "guarded_async"
	KindQueued       StrategyKind = "queued"
	KindScheduled    StrategyKind = "scheduled"
)

// UnmarshalText rejects unknown strategy names so bad configuration fails at load time.
func (k *StrategyKind) UnmarshalText(text []byte) error {
	switch kind := StrategyKind(text); kind {
	case KindBlocking, KindGuarded, KindGuardedAsync, KindQueued, KindScheduled:
		*k = kind
		return nil
	default:
		return fmt.Errorf("%w %q", ErrUnknownStrategy, string(text))
	}
}

// Strategy returns the strategy for k. exec is only used by KindScheduled.
func (k StrategyKind) Strategy(exec Executor) (Strategy, error) {
	switch k {
	case KindBlocking:
		return Blocking(), nil
	case KindGuarded:
		return Guarded(), nil
	case KindGuardedAsync:
		return GuardedAsync(), nil
	case KindQueued:
		return Queued(), nil
	case KindScheduled:
		if exec == nil {
			return nil, ErrNilExecutor
		}
		return Scheduled(exec), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownStrategy, string(k))
	}
}

// Config holds the environment driven settings for NewFromConfig.
type Config struct {
	Strategy              StrategyKind `env:"FSM_STRATEGY" envDefault:"blocking"`
	ThrowOnInvalidTrigger bool         `env:"FSM_THROW_ON_INVALID_TRIGGER" envDefault:"true"`
	ThrowOnInvalidState   bool         `env:"FSM_THROW_ON_INVALID_STATE" envDefault:"true"`
	SchedulerWorkers      int          `env:"FSM_SCHEDULER_WORKERS" envDefault:"1"`
	SchedulerQueueSize    int          `env:"FSM_SCHEDULER_QUEUE_SIZE" envDefault:"64"`
}
