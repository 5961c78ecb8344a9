package session

import (
	"github.com/riordanpawley/workouttimer/internal/domain"
)

// EventType names a change reported by a Timer
type EventType string

const (
	EventStarted      EventType = "started"
	EventPaused       EventType = "paused"
	EventResumed      EventType = "resumed"
	EventPhaseChanged EventType = "phase_changed"
	EventCompleted    EventType = "completed"
)

// Event is a Timer update for observers
type Event struct {
	Type  EventType
	From  Phase
	State State
}

// Timer owns the state of one session and reports what changed on each
// action. EventCompleted is reported exactly once.
type Timer struct {
	workout   domain.Workout
	state     State
	completed bool
}

// NewTimer creates a timer for the workout in its initial state
func NewTimer(w domain.Workout) *Timer {
	return &Timer{
		workout: w.Clone(),
		state:   NewState(),
	}
}

// Workout returns the workout being run
func (t *Timer) Workout() domain.Workout {
	return t.workout
}

// State returns a copy of the current state
func (t *Timer) State() State {
	return t.state
}

// Done reports whether the session reached complete
func (t *Timer) Done() bool {
	return t.state.Phase == PhaseComplete
}

// Start begins the countdown. Starting a running or finished session, or a
// workout with no exercises, does nothing.
func (t *Timer) Start() []Event {
	if t.state.Running || t.Done() || !t.workout.Startable() {
		return nil
	}
	t.state.Running = true
	return []Event{{Type: EventStarted, From: t.state.Phase, State: t.state}}
}

// TogglePause pauses or resumes a running session
func (t *Timer) TogglePause() []Event {
	if !t.state.Running || t.Done() {
		return nil
	}
	t.state.Paused = !t.state.Paused
	typ := EventResumed
	if t.state.Paused {
		typ = EventPaused
	}
	return []Event{{Type: typ, From: t.state.Phase, State: t.state}}
}

// Skip ends the current phase immediately
func (t *Timer) Skip() []Event {
	if !t.state.Running || t.Done() {
		return nil
	}
	return t.apply(Advance(t.state, t.workout))
}

// CompleteSet finishes the current reps set
func (t *Timer) CompleteSet() []Event {
	if !t.state.Running || !CanCompleteSet(t.state, t.workout) {
		return nil
	}
	return t.apply(CompleteSet(t.state, t.workout))
}

// Tick applies one second of wall time
func (t *Timer) Tick() []Event {
	return t.apply(Tick(t.state, t.workout))
}

func (t *Timer) apply(next State) []Event {
	prev := t.state
	t.state = next

	var events []Event
	if next.Phase != prev.Phase || next.SetIndex != prev.SetIndex || next.ExerciseIndex != prev.ExerciseIndex {
		events = append(events, Event{Type: EventPhaseChanged, From: prev.Phase, State: next})
	}
	if next.Phase == PhaseComplete && !t.completed {
		t.completed = true
		events = append(events, Event{Type: EventCompleted, From: prev.Phase, State: next})
	}
	return events
}
