package session

import (
	"fmt"

	"github.com/riordanpawley/workouttimer/internal/domain"
)

// Advance moves the session to the next phase. It is used both when a
// countdown expires and for an explicit skip. Complete is terminal.
func Advance(s State, w domain.Workout) State {
	exercises := w.Exercises
	if len(exercises) == 0 {
		return complete(s)
	}

	switch s.Phase {
	case PhaseWarmup:
		s.Phase = PhaseExercise
		s.TimeRemaining = setCountdown(exercises, s.ExerciseIndex)

	case PhaseExercise:
		ex := exercises[s.ExerciseIndex]
		switch {
		case s.SetIndex < ex.Sets-1:
			s.Phase = PhaseRest
			s.TimeRemaining = ex.RestBetweenSets
		case s.ExerciseIndex < len(exercises)-1:
			s.Phase = PhaseRest
			s.TimeRemaining = ex.RestBetweenExercises
		default:
			return complete(s)
		}

	case PhaseRest:
		ex := exercises[s.ExerciseIndex]
		if s.SetIndex < ex.Sets-1 {
			s.SetIndex++
		} else {
			s.ExerciseIndex++
			s.SetIndex = 0
		}
		s.Phase = PhaseExercise
		s.TimeRemaining = setCountdown(exercises, s.ExerciseIndex)
	}

	if s.TimeRemaining < 0 {
		s.TimeRemaining = 0
	}
	return s
}

// Tick applies one second of wall time. While the countdown is live it
// decrements TimeRemaining and increments ElapsedSeconds, advancing when
// the countdown reaches zero. A phase with nothing left to count, such as
// a reps set or a rest configured as zero seconds, is left alone until the
// user completes or skips it.
func Tick(s State, w domain.Workout) State {
	if !s.Ticking() || s.Phase.Terminal() {
		return s
	}

	s.TimeRemaining--
	s.ElapsedSeconds++
	if s.TimeRemaining == 0 {
		return Advance(s, w)
	}
	return s
}

// CompleteSet finishes the current reps set. It has no effect outside the
// exercise phase or on duration exercises.
func CompleteSet(s State, w domain.Workout) State {
	if !CanCompleteSet(s, w) {
		return s
	}
	return Advance(s, w)
}

// CanCompleteSet reports whether a manual set completion applies
func CanCompleteSet(s State, w domain.Workout) bool {
	if s.Phase != PhaseExercise {
		return false
	}
	ex, ok := Current(s, w)
	return ok && !ex.IsDuration()
}

// Current returns the exercise the session is on
func Current(s State, w domain.Workout) (domain.Exercise, bool) {
	if s.ExerciseIndex < 0 || s.ExerciseIndex >= len(w.Exercises) {
		return domain.Exercise{}, false
	}
	return w.Exercises[s.ExerciseIndex], true
}

// TotalSets is the number of sets in the whole workout
func TotalSets(w domain.Workout) int {
	return w.TotalSets()
}

// CompletedSets counts the sets finished before the current one. Once the
// session is complete every set counts.
func CompletedSets(s State, w domain.Workout) int {
	if s.Phase == PhaseComplete {
		return TotalSets(w)
	}
	done := 0
	for i := 0; i < s.ExerciseIndex && i < len(w.Exercises); i++ {
		done += w.Exercises[i].Sets
	}
	return done + s.SetIndex
}

// Progress is the completed fraction of the workout in [0, 1]
func Progress(s State, w domain.Workout) float64 {
	total := TotalSets(w)
	if total <= 0 {
		return 0
	}
	p := float64(CompletedSets(s, w)) / float64(total)
	if p > 1 {
		return 1
	}
	return p
}

// PhaseTotal is the full length of the current countdown, or 0 when the
// phase has none
func PhaseTotal(s State, w domain.Workout) int {
	ex, ok := Current(s, w)
	switch s.Phase {
	case PhaseWarmup:
		return WarmupSeconds
	case PhaseExercise:
		if !ok {
			return 0
		}
		return ex.SetDuration()
	case PhaseRest:
		if !ok {
			return 0
		}
		if s.SetIndex < ex.Sets-1 {
			return ex.RestBetweenSets
		}
		return ex.RestBetweenExercises
	default:
		return 0
	}
}

// PhaseProgress is the elapsed fraction of the current countdown
func PhaseProgress(s State, w domain.Workout) float64 {
	total := PhaseTotal(s, w)
	if total <= 0 {
		return 0
	}
	p := float64(total-s.TimeRemaining) / float64(total)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Title is the headline for the current phase
func Title(s State, w domain.Workout) string {
	switch s.Phase {
	case PhaseWarmup:
		return "Get Ready!"
	case PhaseExercise:
		ex, _ := Current(s, w)
		return ex.Name
	case PhaseRest:
		return "Rest Time"
	case PhaseComplete:
		return "Workout Complete!"
	}
	return ""
}

// Subtitle describes the current set or what comes next
func Subtitle(s State, w domain.Workout) string {
	ex, _ := Current(s, w)
	switch s.Phase {
	case PhaseWarmup:
		return "Workout starting soon..."
	case PhaseExercise:
		if ex.IsDuration() {
			return fmt.Sprintf("Set %d of %d", s.SetIndex+1, ex.Sets)
		}
		return fmt.Sprintf("Set %d of %d • %s reps", s.SetIndex+1, ex.Sets, ex.Reps.String())
	case PhaseRest:
		if s.SetIndex < ex.Sets-1 {
			return fmt.Sprintf("Next: %s - Set %d", ex.Name, s.SetIndex+2)
		}
		if next := s.ExerciseIndex + 1; next < len(w.Exercises) {
			return "Next: " + w.Exercises[next].Name
		}
		return ""
	case PhaseComplete:
		return fmt.Sprintf("Great job! You completed %d exercises in %s",
			len(w.Exercises), FormatTime(s.ElapsedSeconds))
	}
	return ""
}

// FormatTime renders seconds as m:ss
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func setCountdown(exercises []domain.Exercise, index int) int {
	if index < 0 || index >= len(exercises) {
		return 0
	}
	return exercises[index].SetDuration()
}

func complete(s State) State {
	s.Phase = PhaseComplete
	s.Running = false
	s.Paused = false
	s.TimeRemaining = 0
	return s
}
