// Package report models the report pipeline's run lifecycle: the ordered
// states a run passes through and the error kinds each stage can fail with.
package report

import (
	"errors"
	"fmt"
)

// State is one step of a report run.
type State string

const (
	StateIdle              State = "idle"
	StateValidating        State = "validating"
	StateFetching          State = "fetching"
	StateEmptyShortCircuit State = "empty_short_circuit"
	StateRendering         State = "rendering"
	StateStoring           State = "storing"
	StateNotifying         State = "notifying"
	StateDone              State = "done"
	StateFailed            State = "failed"
)

// ErrInvalidTransition is returned when a run attempts an undeclared state change.
var ErrInvalidTransition = errors.New("invalid report state transition")

// transitions lists the forward edges. Failed is reachable from every
// non-terminal state and is handled separately.
var transitions = map[State][]State{
	StateIdle:              {StateValidating},
	StateValidating:        {StateFetching},
	StateFetching:          {StateEmptyShortCircuit, StateRendering},
	StateEmptyShortCircuit: {StateDone},
	StateRendering:         {StateStoring},
	StateStoring:           {StateNotifying},
	StateNotifying:         {StateDone},
}

// Terminal reports whether s ends a run.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// CanTransition reports whether a run in state from may move to state to.
func CanTransition(from, to State) bool {
	if from.Terminal() {
		return false
	}
	if to == StateFailed {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Tracker records the state of a single run. It is not safe for concurrent use;
// a run is strictly sequential.
type Tracker struct {
	state   State
	history []State
}

// NewTracker returns a tracker in StateIdle.
func NewTracker() *Tracker {
	return &Tracker{state: StateIdle, history: []State{StateIdle}}
}

// State returns the current state.
func (t *Tracker) State() State { return t.state }

// History returns every state visited, in order.
func (t *Tracker) History() []State {
	out := make([]State, len(t.history))
	copy(out, t.history)
	return out
}

// Advance moves the run to the next state.
func (t *Tracker) Advance(to State) error {
	if !CanTransition(t.state, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.state, to)
	}
	t.state = to
	t.history = append(t.history, to)
	return nil
}
