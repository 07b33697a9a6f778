package statemachine

import "reflect"

// Strategy selects how a machine serializes transitions. The set of
// strategies is closed: use Blocking, Guarded, GuardedAsync, Queued or Scheduled.
type Strategy interface {
	Name() string
	newMachine(c *core) (Machine, error)
}

// Executor runs submitted tasks on a scheduler the caller controls.
type Executor interface {
	Submit(task func()) error
}

// SerialExecutor is implemented by executors that can declare they run
// tasks one at a time in submission order.
type SerialExecutor interface {
	Executor
	Serial() bool
}

// Blocking serializes transitions with a mutex. Concurrent callers wait their turn.
// Firing from inside an action of the same machine deadlocks.
func Blocking() Strategy { return blockingStrategy{} }

// Guarded rejects a trigger with ErrConcurrencyViolation while another
// transition is in progress. It never blocks.
func Guarded() Strategy { return guardedStrategy{} }

// GuardedAsync runs each transition on its own goroutine and rejects
// overlapping triggers with ErrConcurrencyViolation.
func GuardedAsync() Strategy { return guardedAsyncStrategy{} }

// Queued appends triggers to an unbounded FIFO drained by a single worker,
// so every trigger is applied in arrival order. Close must not be called
// synchronously from an action of the same machine.
func Queued() Strategy { return queuedStrategy{} }

// Scheduled hands each transition to exec. Overlapping triggers are rejected
// with ErrConcurrencyViolation unless exec is a SerialExecutor reporting Serial() == true.
func Scheduled(exec Executor) Strategy { return scheduledStrategy{exec: exec} }

// SyncStrategy selects a synchronous strategy: Blocking when blocking is
// true, otherwise Guarded.
func SyncStrategy(blocking bool) Strategy {
	if blocking {
		return Blocking()
	}
	return Guarded()
}

// AsyncStrategy selects an asynchronous strategy. queued takes precedence
// over exec, and exec over the guarded fallback. exec is ignored when queued is true.
func AsyncStrategy(queued bool, exec Executor) Strategy {
	switch {
	case queued:
		return Queued()
	case exec != nil:
		return Scheduled(exec)
	default:
		return GuardedAsync()
	}
}

type blockingStrategy struct{}

func (blockingStrategy) Name() string { return string(KindBlocking) }

func (blockingStrategy) newMachine(c *core) (Machine, error) {
	return &blockingMachine{core: c}, nil
}

type guardedStrategy struct{}

func (guardedStrategy) Name() string { return string(KindGuarded) }

func (guardedStrategy) newMachine(c *core) (Machine, error) {
	return &guardedMachine{core: c}, nil
}

type guardedAsyncStrategy struct{}

func (guardedAsyncStrategy) Name() string { return string(KindGuardedAsync) }

func (guardedAsyncStrategy) newMachine(c *core) (Machine, error) {
	return &guardedAsyncMachine{core: c}, nil
}

type queuedStrategy struct{}

func (queuedStrategy) Name() string { return string(KindQueued) }

func (queuedStrategy) newMachine(c *core) (Machine, error) {
	return &queuedMachine{core: c}, nil
}

type scheduledStrategy struct {
	exec Executor
}

func (scheduledStrategy) Name() string { return string(KindScheduled) }

func (s scheduledStrategy) newMachine(c *core) (Machine, error) {
	if isNil(s.exec) {
		return nil, ErrNilExecutor
	}

	serial := false
	if se, ok := s.exec.(SerialExecutor); ok {
		serial = se.Serial()
	}

	return &scheduledMachine{core: c, exec: s.exec, serial: serial}, nil
}

// isNil reports whether exec is nil or an interface holding a nil pointer,
// func, map, chan or slice.
func isNil(exec Executor) bool {
	if exec == nil {
		return true
	}
	v := reflect.ValueOf(exec)
	switch v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Chan, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
