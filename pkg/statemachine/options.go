package statemachine

import (
	"fmt"
)

// TableOption configures a transition table during construction.
type TableOption func(*Table) error

// TransitionOption configures a single transition with guards and actions.
type TransitionOption func(*transitionConfig)

// TransitionDef defines a transition between states.
type TransitionDef struct {
	From    State
	To      State
	Trigger Trigger
	Guards  []Guard
	Actions []Action
}

type transitionConfig struct {
	guards  []Guard
	actions []Action
}

// WithState declares a state that may have no transitions of its own,
// such as a terminal state or an initial state that only reacts later.
func WithState(states ...State) TableOption {
	return func(t *Table) error {
		for _, s := range states {
			if s == nil {
				return fmt.Errorf("%w: state cannot be nil", ErrInvalidConfiguration)
			}
			t.addState(s)
		}
		return nil
	}
}

// WithEntry registers actions run when the machine enters state, after the
// transition actions and before the state is stored.
func WithEntry(state State, actions ...Action) TableOption {
	return func(t *Table) error {
		if state == nil {
			return fmt.Errorf("%w: state cannot be nil", ErrInvalidConfiguration)
		}
		t.addState(state)
		t.entry[state.Name()] = appendActions(t.entry[state.Name()], actions)
		return nil
	}
}

// WithExit registers actions run when the machine leaves state, before the
// transition actions.
func WithExit(state State, actions ...Action) TableOption {
	return func(t *Table) error {
		if state == nil {
			return fmt.Errorf("%w: state cannot be nil", ErrInvalidConfiguration)
		}
		t.addState(state)
		t.exit[state.Name()] = appendActions(t.exit[state.Name()], actions)
		return nil
	}
}

// WithTransition adds a single transition to the table.
func WithTransition(from, to State, trigger Trigger, opts ...TransitionOption) TableOption {
	return func(t *Table) error {
		cfg := &transitionConfig{}
		for _, opt := range opts {
			opt(cfg)
		}

		return t.addTransition(from, to, trigger, cfg.guards, cfg.actions)
	}
}

// WithTransitions adds multiple transitions to the table at once.
func WithTransitions(transitions []TransitionDef) TableOption {
	return func(t *Table) error {
		for i, td := range transitions {
			if err := t.addTransition(td.From, td.To, td.Trigger, td.Guards, td.Actions); err != nil {
				return fmt.Errorf("failed to add transition[%d] %s->%s on %s: %w",
					i, nameOf(td.From), nameOf(td.To), nameOf(td.Trigger), err)
			}
		}
		return nil
	}
}

// WithGuard adds a single guard to a transition.
func WithGuard(guard Guard) TransitionOption {
	return func(cfg *transitionConfig) {
		if guard != nil {
			cfg.guards = append(cfg.guards, guard)
		}
	}
}

// WithGuards adds multiple guards to a transition.
func WithGuards(guards ...Guard) TransitionOption {
	return func(cfg *transitionConfig) {
		for _, guard := range guards {
			if guard != nil {
				cfg.guards = append(cfg.guards, guard)
			}
		}
	}
}

// WithAction adds a single action to a transition.
func WithAction(action Action) TransitionOption {
	return func(cfg *transitionConfig) {
		if action != nil {
			cfg.actions = append(cfg.actions, action)
		}
	}
}

// WithActions adds multiple actions to a transition.
func WithActions(actions ...Action) TransitionOption {
	return func(cfg *transitionConfig) {
		cfg.actions = appendActions(cfg.actions, actions)
	}
}

func appendActions(dst, actions []Action) []Action {
	for _, action := range actions {
		if action != nil {
			dst = append(dst, action)
		}
	}
	return dst
}

// nameOf handles nil states and triggers safely in error messages.
func nameOf(v interface{ Name() string }) string {
	if v == nil {
		return "<nil>"
	}
	return v.Name()
}
