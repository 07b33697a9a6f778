package statemachine

import (
	"context"
	"fmt"
	"slices"
)

// Table holds the transitions and state hooks of a state machine.
// It is built once by NewTable or Builder and is read-only afterwards,
// so any number of machines may share it without locking.
type Table struct {
	// Nested map for O(1) lookups: [fromState][trigger][]Transition
	transitions map[string]map[string][]Transition
	triggers    map[string][]Trigger
	states      map[string]State
	order       []State
	entry       map[string][]Action
	exit        map[string][]Action
}

// NewTable creates a transition table from the given options.
func NewTable(opts ...TableOption) (*Table, error) {
	t := &Table{
		transitions: make(map[string]map[string][]Transition),
		triggers:    make(map[string][]Trigger),
		states:      make(map[string]State),
		entry:       make(map[string][]Action),
		exit:        make(map[string][]Action),
	}

	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// MustNewTable works like NewTable but panics on failure.
func MustNewTable(opts ...TableOption) *Table {
	t, err := NewTable(opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create transition table: %v", err))
	}
	return t
}

// Lookup returns the transitions registered for state and trigger in declaration order.
func (t *Table) Lookup(state State, trigger Trigger) ([]Transition, bool) {
	if state == nil || trigger == nil {
		return nil, false
	}
	byTrigger, ok := t.transitions[state.Name()]
	if !ok {
		return nil, false
	}
	trs, ok := byTrigger[trigger.Name()]
	if !ok || len(trs) == 0 {
		return nil, false
	}
	return slices.Clone(trs), true
}

// Resolve picks the transition that trigger would take from state.
// The first transition whose guards all pass wins.
func (t *Table) Resolve(ctx context.Context, state State, trigger Trigger, data any) (Transition, error) {
	if trigger == nil {
		return Transition{}, ErrInvalidTrigger
	}
	if !t.HasState(state) {
		name := "<nil>"
		if state != nil {
			name = state.Name()
		}
		return Transition{}, NewErrInvalidState(name)
	}

	trs := t.transitions[state.Name()][trigger.Name()]
	if len(trs) == 0 {
		return Transition{}, NewErrNoTransitionAvailable(state.Name(), trigger.Name())
	}

	for _, tr := range trs {
		if guardsPass(ctx, tr.Guards, state, trigger, data) {
			return tr, nil
		}
	}

	return Transition{}, NewErrTransitionRejected(state.Name(), trigger.Name())
}

// HasState reports whether state is known to the table.
func (t *Table) HasState(state State) bool {
	if state == nil {
		return false
	}
	_, ok := t.states[state.Name()]
	return ok
}

// Triggers returns the triggers defined for state, in declaration order.
func (t *Table) Triggers(state State) []Trigger {
	if state == nil {
		return nil
	}
	return slices.Clone(t.triggers[state.Name()])
}

// States returns every known state in the order it was first seen.
func (t *Table) States() []State {
	return slices.Clone(t.order)
}

func (t *Table) entryHooks(state State) []Action {
	return t.entry[state.Name()]
}

func (t *Table) exitHooks(state State) []Action {
	return t.exit[state.Name()]
}

func (t *Table) addState(state State) {
	name := state.Name()
	if _, ok := t.states[name]; ok {
		return
	}
	t.states[name] = state
	t.order = append(t.order, state)
}

func (t *Table) addTransition(from, to State, trigger Trigger, guards []Guard, actions []Action) error {
	if from == nil || to == nil || trigger == nil {
		return ErrInvalidTransition
	}

	t.addState(from)
	t.addState(to)

	fromName := from.Name()
	triggerName := trigger.Name()

	if _, ok := t.transitions[fromName]; !ok {
		t.transitions[fromName] = make(map[string][]Transition)
	}
	if _, ok := t.transitions[fromName][triggerName]; !ok {
		t.triggers[fromName] = append(t.triggers[fromName], trigger)
	}

	// Multiple transitions allowed for same from/trigger to support guard-based branching
	t.transitions[fromName][triggerName] = append(t.transitions[fromName][triggerName], Transition{
		From:    from,
		To:      to,
		Trigger: trigger,
		Guards:  guards,
		Actions: actions,
	})
	return nil
}

func guardsPass(ctx context.Context, guards []Guard, from State, trigger Trigger, data any) bool {
	for _, guard := range guards {
		if guard != nil && !guard(ctx, from, trigger, data) {
			return false
		}
	}
	return true
}
