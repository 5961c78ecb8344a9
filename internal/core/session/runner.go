package session

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// ErrExited is returned by Runner.Run when the user leaves a session early
var ErrExited = errors.New("session exited")

// Action is a user command delivered to a running session
type Action int

const (
	ActionStart Action = iota
	ActionTogglePause
	ActionSkip
	ActionCompleteSet
	ActionExit
)

// String returns the action name
func (a Action) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionTogglePause:
		return "pause"
	case ActionSkip:
		return "skip"
	case ActionCompleteSet:
		return "complete-set"
	case ActionExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Runner drives a Timer from a Clock and a stream of actions
type Runner struct {
	clock    Clock
	interval time.Duration
	logger   *slog.Logger

	// OnEvent, when set, is called for every timer event
	OnEvent func(Event, time.Time)
	// OnTick, when set, is called after every tick with the new state
	OnTick func(State)
}

// NewRunner creates a runner that ticks once per second on the given clock
func NewRunner(clock Clock, logger *slog.Logger) *Runner {
	if clock == nil {
		clock = RealClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		clock:    clock,
		interval: time.Second,
		logger:   logger,
	}
}

// Run blocks until the session completes, the user exits or ctx is done.
// A closed actions channel stops action handling but lets the countdown
// continue.
func (r *Runner) Run(ctx context.Context, t *Timer, actions <-chan Action) (State, error) {
	ticker := r.clock.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Debug("session runner started", "workout", t.Workout().ID)

	for {
		select {
		case <-ctx.Done():
			return t.State(), ctx.Err()

		case action, ok := <-actions:
			if !ok {
				actions = nil
				continue
			}
			if action == ActionExit {
				r.logger.Info("session exited", "workout", t.Workout().ID, "phase", t.State().Phase)
				return t.State(), ErrExited
			}
			r.emit(r.dispatch(t, action))

		case <-ticker.C():
			r.emit(t.Tick())
			if r.OnTick != nil {
				r.OnTick(t.State())
			}
		}

		if t.Done() {
			r.logger.Info("session completed", "workout", t.Workout().ID, "elapsed", t.State().ElapsedSeconds)
			return t.State(), nil
		}
	}
}

func (r *Runner) dispatch(t *Timer, action Action) []Event {
	switch action {
	case ActionStart:
		return t.Start()
	case ActionTogglePause:
		return t.TogglePause()
	case ActionSkip:
		return t.Skip()
	case ActionCompleteSet:
		return t.CompleteSet()
	}
	r.logger.Warn("unknown session action", "action", int(action))
	return nil
}

func (r *Runner) emit(events []Event) {
	if r.OnEvent == nil {
		return
	}
	now := r.clock.Now()
	for _, e := range events {
		r.OnEvent(e, now)
	}
}
