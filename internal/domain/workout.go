// Package domain holds the workout, exercise and theme types shared by
// every layer, plus the sentinel errors they fail with.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// WorkoutID identifies a workout. Older exports used numeric ids, so both
// JSON strings and numbers are accepted and the exact text is preserved.
type WorkoutID string

// UnmarshalJSON implements json.Unmarshaler
func (id *WorkoutID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = WorkoutID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("workout id: %w", err)
	}
	*id = WorkoutID(n.String())
	return nil
}

// String returns the display string
func (id WorkoutID) String() string {
	return string(id)
}

// Workout is a named, ordered list of exercises
type Workout struct {
	ID                WorkoutID  `json:"id"`
	Name              string     `json:"name"`
	Exercises         []Exercise `json:"exercises"`
	CreatedAt         time.Time  `json:"createdAt"`
	CompletedSessions int        `json:"completedSessions,omitempty"`
	LastCompleted     *time.Time `json:"lastCompleted,omitempty"`
}

// Startable reports whether a session can run this workout
func (w Workout) Startable() bool {
	return len(w.Exercises) > 0
}

// DisplayName returns the name, or a placeholder for unnamed workouts
func (w Workout) DisplayName() string {
	if strings.TrimSpace(w.Name) == "" {
		return "Untitled Workout"
	}
	return w.Name
}

// TotalSets sums the configured sets of every exercise
func (w Workout) TotalSets() int {
	return TotalSets(w.Exercises)
}

// Clone returns a deep copy so callers cannot mutate shared slices
func (w Workout) Clone() Workout {
	out := w
	out.Exercises = append([]Exercise(nil), w.Exercises...)
	if w.LastCompleted != nil {
		t := *w.LastCompleted
		out.LastCompleted = &t
	}
	return out
}

// TotalSets sums the sets of the given exercises
func TotalSets(exercises []Exercise) int {
	total := 0
	for _, ex := range exercises {
		total += ex.Sets
	}
	return total
}

// EstimateSeconds is the estimate shown on dashboard workout cards.
// Empty or zero values fall back to 30s per set, 30s between sets and
// 60s after the exercise.
func EstimateSeconds(exercises []Exercise) int {
	total := 0
	for _, ex := range exercises {
		setTime := ex.Duration.Or(30) * ex.Sets
		restTime := orDefault(ex.RestBetweenSets, 30) * (ex.Sets - 1)
		exerciseRest := orDefault(ex.RestBetweenExercises, 60)
		total += setTime + restTime + exerciseRest
	}
	return total
}

// PlannedSeconds is the estimate used by the editor summary and the
// Markdown report. Reps exercises count 30s per set; rests are taken as
// configured.
func PlannedSeconds(exercises []Exercise) int {
	total := 0
	for _, ex := range exercises {
		perSet := 30
		if ex.IsDuration() {
			perSet = ex.Duration.Int()
		}
		total += perSet*ex.Sets + ex.RestBetweenSets*(ex.Sets-1) + ex.RestBetweenExercises
	}
	return total
}

// RoundMinutes converts seconds to whole minutes, rounding half up
func RoundMinutes(seconds int) int {
	if seconds <= 0 {
		return 0
	}
	return (seconds + 30) / 60
}

func orDefault(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}
