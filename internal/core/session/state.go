package session

// WarmupSeconds is the countdown every session starts with
const WarmupSeconds = 5

// State is the ephemeral state of one session run. It is never persisted.
type State struct {
	ExerciseIndex  int
	SetIndex       int
	Phase          Phase
	TimeRemaining  int
	Running        bool
	Paused         bool
	ElapsedSeconds int
}

// NewState returns the initial state of a session
func NewState() State {
	return State{
		Phase:         PhaseWarmup,
		TimeRemaining: WarmupSeconds,
	}
}

// Ticking reports whether a one-second tick would count down
func (s State) Ticking() bool {
	return s.Running && !s.Paused && s.TimeRemaining > 0
}

// StatusLabel returns Ready, Running or Paused
func (s State) StatusLabel() string {
	switch {
	case !s.Running:
		return "Ready"
	case s.Paused:
		return "Paused"
	default:
		return "Running"
	}
}
