package executor

// Func adapts an ordinary function to the Submit contract.
type Func func(task func()) error

// Submit calls f(task).
func (f Func) Submit(task func()) error {
	if task == nil {
		return ErrNilTask
	}
	return f(task)
}

// Go returns an executor that starts a new goroutine for every task.
// Tasks may run in any order and in parallel.
func Go() Func {
	return func(task func()) error {
		go task()
		return nil
	}
}

// Inline returns an executor that runs each task on the submitting goroutine
// before Submit returns.
func Inline() Func {
	return func(task func()) error {
		task()
		return nil
	}
}
