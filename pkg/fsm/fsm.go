package fsm

import (
	"fmt"
	"sync"
)

// State is a named state in the machine.
type State string

// Event is a named trigger for a transition.
type Event string

// Machine is a small thread-safe finite state machine. Transitions are
// registered up front; firing an event outside the registered set is a
// programming error reported by Fire.
type Machine struct {
	initial     State
	current     State
	transitions map[State]map[Event]State
	mu          sync.RWMutex
}

// New creates a machine resting in the initial state.
func New(initial State) *Machine {
	return &Machine{
		initial:     initial,
		current:     initial,
		transitions: make(map[State]map[Event]State),
	}
}

// AddTransition registers a state change triggered by event while in from.
func (m *Machine) AddTransition(from State, event Event, to State) *Machine {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.transitions[from]; !ok {
		m.transitions[from] = make(map[Event]State)
	}
	m.transitions[from][event] = to
	return m
}

// Current returns the machine's current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Fire applies the transition registered for event in the current state.
func (m *Machine) Fire(event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, ok := m.transitions[m.current][event]
	if !ok {
		return &NoTransitionError{State: m.current, Event: event}
	}

	m.current = next
	return nil
}

// CanFire reports whether event has a registered transition from the current
// state.
func (m *Machine) CanFire(event Event) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.transitions[m.current][event]
	return ok
}

// Reset returns the machine to its initial state.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.initial
}

// NoTransitionError indicates no transition exists for a state/event pair.
type NoTransitionError struct {
	State State
	Event Event
}

func (e *NoTransitionError) Error() string {
	return fmt.Sprintf("fsm: no transition from state %q for event %q", e.State, e.Event)
}
