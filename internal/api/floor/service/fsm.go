package floorService

import "fmt"

type State string

const (
	StateIdle        State = "IDLE"
	StateObserving   State = "OBSERVING"
	StateRotating    State = "ROTATING"
	StateAggregating State = "AGGREGATING"
	StateReporting   State = "REPORTING"
)

type Event string

const (
	EventStart        Event = "start"
	EventFound        Event = "found"
	EventEmpty        Event = "empty"
	EventObserved     Event = "observed"
	EventSweepDone    Event = "sweep_done"
	EventRotated      Event = "rotated"
	EventRotateFailed Event = "rotate_failed"
	EventAborted      Event = "aborted"
	EventAggregated   Event = "aggregated"
	EventReported     Event = "reported"
)

type transition struct {
	from  State
	event Event
}

// found at heading 0 short-circuits straight to REPORTING; found at any later
// heading is reported as observed and the sweep continues. aborted stops the
// sweep at a heading boundary and aggregates what was visited.
var transitions = map[transition]State{
	{StateIdle, EventStart}:             StateObserving,
	{StateObserving, EventFound}:        StateReporting,
	{StateObserving, EventEmpty}:        StateRotating,
	{StateObserving, EventObserved}:     StateRotating,
	{StateObserving, EventSweepDone}:    StateAggregating,
	{StateRotating, EventRotated}:       StateObserving,
	{StateRotating, EventRotateFailed}:  StateAggregating,
	{StateRotating, EventAborted}:       StateAggregating,
	{StateAggregating, EventAggregated}: StateReporting,
	{StateReporting, EventReported}:     StateIdle,
}

type Machine struct {
	state   State
	history []State
}

func NewMachine() *Machine {
	return &Machine{state: StateIdle, history: []State{StateIdle}}
}

func (m *Machine) State() State {
	return m.state
}

// History lists every state entered, starting with IDLE.
func (m *Machine) History() []State {
	out := make([]State, len(m.history))
	copy(out, m.history)
	return out
}

func (m *Machine) Fire(event Event) (State, error) {
	next, ok := transitions[transition{m.state, event}]
	if !ok {
		return m.state, fmt.Errorf("invalid transition %s --%s-->", m.state, event)
	}
	m.state = next
	m.history = append(m.history, next)
	return next, nil
}

// nextObservationEvent decides where the sweep goes after observing position
// index (0-based) out of positions.
func nextObservationEvent(index, positions int, found bool) Event {
	switch {
	case index == 0 && found:
		return EventFound
	case index >= positions-1:
		return EventSweepDone
	case found:
		return EventObserved
	default:
		return EventEmpty
	}
}
