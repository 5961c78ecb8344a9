package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ExerciseType selects which of reps or duration drives a set
type ExerciseType string

const (
	ExerciseReps     ExerciseType = "reps"
	ExerciseDuration ExerciseType = "duration"
)

// Normalize maps unknown types onto reps
func (t ExerciseType) Normalize() ExerciseType {
	if t == ExerciseDuration {
		return ExerciseDuration
	}
	return ExerciseReps
}

// Label returns the human readable name used in reports
func (t ExerciseType) Label() string {
	if t.Normalize() == ExerciseDuration {
		return "Duration"
	}
	return "Repetitions"
}

// String returns the display string
func (t ExerciseType) String() string {
	return string(t)
}

// Default values applied to exercises that omit a field
const (
	DefaultSets                 = 1
	DefaultRestBetweenSets      = 30
	DefaultRestBetweenExercises = 60
)

// OptionalInt is a whole number that may be empty.
// On the wire an empty value is "" and a set value is a JSON number.
type OptionalInt struct {
	Value int
	Valid bool
}

// Some returns a set OptionalInt
func Some(v int) OptionalInt {
	return OptionalInt{Value: v, Valid: true}
}

// Or returns the value, or fallback when empty or zero
func (o OptionalInt) Or(fallback int) int {
	if !o.Valid || o.Value == 0 {
		return fallback
	}
	return o.Value
}

// Int returns the value, or 0 when empty
func (o OptionalInt) Int() int {
	if !o.Valid {
		return 0
	}
	return o.Value
}

// String renders the value, or "" when empty
func (o OptionalInt) String() string {
	if !o.Valid {
		return ""
	}
	return strconv.Itoa(o.Value)
}

// MarshalJSON implements json.Marshaler
func (o OptionalInt) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte(`""`), nil
	}
	return []byte(strconv.Itoa(o.Value)), nil
}

// UnmarshalJSON accepts a number, a numeric string, "" or null
func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*o = OptionalInt{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return o.parse(s)
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("optional int: %w", err)
	}
	return o.parse(n.String())
}

// ParseOptionalInt parses user input; blank input yields an empty value
func ParseOptionalInt(s string) (OptionalInt, error) {
	var o OptionalInt
	err := o.parse(s)
	return o, err
}

func (o *OptionalInt) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*o = OptionalInt{}
		return nil
	}
	if i, err := strconv.Atoi(s); err == nil {
		*o = Some(i)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("optional int: invalid value %q", s)
	}
	*o = Some(int(f))
	return nil
}

// Exercise is one entry in a workout
type Exercise struct {
	Name                 string       `json:"name"`
	Type                 ExerciseType `json:"type"`
	Reps                 OptionalInt  `json:"reps"`
	Duration             OptionalInt  `json:"duration"`
	Sets                 int          `json:"sets"`
	RestBetweenSets      int          `json:"restBetweenSets"`
	RestBetweenExercises int          `json:"restBetweenExercises"`
	MediaURL             string       `json:"mediaUrl"`
}

// NewExercise returns a blank reps exercise with editor defaults
func NewExercise() Exercise {
	return Exercise{
		Type:                 ExerciseReps,
		Sets:                 DefaultSets,
		RestBetweenSets:      DefaultRestBetweenSets,
		RestBetweenExercises: DefaultRestBetweenExercises,
	}
}

// Clamp returns the exercise with sets of at least 1 and no negative
// rests, and with an unknown type read as reps
func (e Exercise) Clamp() Exercise {
	e.Type = e.Type.Normalize()
	e.Sets = max(e.Sets, 1)
	e.RestBetweenSets = max(e.RestBetweenSets, 0)
	e.RestBetweenExercises = max(e.RestBetweenExercises, 0)
	return e
}

// IsDuration reports whether sets of this exercise run on a countdown
func (e Exercise) IsDuration() bool {
	return e.Type.Normalize() == ExerciseDuration
}

// SetDuration returns the countdown length for one set; reps exercises have none
func (e Exercise) SetDuration() int {
	if e.IsDuration() {
		return e.Duration.Int()
	}
	return 0
}

// Summary renders "3 × 10" or "3 × 45s" as shown on workout cards
func (e Exercise) Summary() string {
	if e.Reps.Valid && e.Reps.Value != 0 {
		return fmt.Sprintf("%d × %d", e.Sets, e.Reps.Value)
	}
	return fmt.Sprintf("%d × %ss", e.Sets, e.Duration.String())
}
