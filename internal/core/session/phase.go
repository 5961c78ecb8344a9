// Package session implements the workout session state machine.
//
// A session walks a workout through warmup, exercise and rest phases:
//
//	warmup → exercise → rest → exercise → … → exercise → complete
//
// A rest follows every set except the last set of the last exercise.
// Advance and Tick are pure functions over State, so the sequencing can be
// tested without a UI or a real clock. Timer wraps them with event
// reporting, and Runner drives a Timer from a Clock.
package session

// Phase is the current mode of a session
type Phase int

const (
	PhaseWarmup Phase = iota
	PhaseExercise
	PhaseRest
	PhaseComplete
)

// String returns the lowercase phase name
func (p Phase) String() string {
	switch p {
	case PhaseWarmup:
		return "warmup"
	case PhaseExercise:
		return "exercise"
	case PhaseRest:
		return "rest"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Terminal reports whether no transition leaves this phase
func (p Phase) Terminal() bool {
	return p == PhaseComplete
}
