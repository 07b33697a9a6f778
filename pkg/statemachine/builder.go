package statemachine

// Builder provides a fluent API for building transition tables.
// Errors are reported by Build.
type Builder struct {
	opts []TableOption

	currentFrom    State
	currentTrigger Trigger
	currentTo      State
	guards         []Guard
	actions        []Action
}

// NewBuilder creates a new transition table builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// From sets the starting state for a transition.
func (b *Builder) From(state State) *Builder {
	b.reset()
	b.currentFrom = state
	return b
}

// When sets the trigger that causes a transition.
func (b *Builder) When(trigger Trigger) *Builder {
	b.currentTrigger = trigger
	return b
}

// To sets the target state for a transition.
func (b *Builder) To(state State) *Builder {
	b.currentTo = state
	return b
}

// WithGuard adds a guard function to the current transition.
func (b *Builder) WithGuard(guard Guard) *Builder {
	b.guards = append(b.guards, guard)
	return b
}

// WithAction adds an action function to the current transition.
func (b *Builder) WithAction(action Action) *Builder {
	b.actions = append(b.actions, action)
	return b
}

// Add finalizes the current transition.
func (b *Builder) Add() *Builder {
	b.opts = append(b.opts, WithTransition(b.currentFrom, b.currentTo, b.currentTrigger,
		WithGuards(b.guards...),
		WithActions(b.actions...),
	))
	b.reset()
	return b
}

// State declares states without transitions.
func (b *Builder) State(states ...State) *Builder {
	b.opts = append(b.opts, WithState(states...))
	return b
}

// OnEntry registers entry actions for state.
func (b *Builder) OnEntry(state State, actions ...Action) *Builder {
	b.opts = append(b.opts, WithEntry(state, actions...))
	return b
}

// OnExit registers exit actions for state.
func (b *Builder) OnExit(state State, actions ...Action) *Builder {
	b.opts = append(b.opts, WithExit(state, actions...))
	return b
}

// Build returns the constructed table.
func (b *Builder) Build() (*Table, error) {
	return NewTable(b.opts...)
}

// MustBuild works like Build but panics on failure.
func (b *Builder) MustBuild() *Table {
	return MustNewTable(b.opts...)
}

// reset clears the current transition configuration.
func (b *Builder) reset() {
	b.currentFrom = nil
	b.currentTrigger = nil
	b.currentTo = nil
	b.guards = nil
	b.actions = nil
}
