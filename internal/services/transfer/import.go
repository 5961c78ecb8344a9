// Package transfer converts workout lists to and from the JSON and
// Markdown files users move between devices.
package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/riordanpawley/workouttimer/internal/domain"
)

// Importer parses import files. Zero fields fall back to the wall clock and
// random UUIDs.
type Importer struct {
	Now   func() time.Time
	NewID func() domain.WorkoutID
}

// NewID returns a fresh random workout id
func NewID() domain.WorkoutID {
	return domain.WorkoutID(uuid.NewString())
}

// ParseImport parses data with the default Importer
func ParseImport(data []byte) ([]domain.Workout, error) {
	return Importer{}.Parse(data)
}

// Parse validates an import file and returns the accepted workouts.
//
// The top level must be a JSON array. Elements without a non-empty string
// name or an exercises array are dropped. Exercise fields that are absent
// get defaults. An import with no acceptable elements fails with
// domain.ErrNoValidWorkouts.
func (im Importer) Parse(data []byte) ([]domain.Workout, error) {
	trimmed := bytes.TrimSpace(data)
	if !json.Valid(trimmed) {
		return nil, domain.ErrMalformedImport
	}
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, domain.ErrNotArray
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedImport, err)
	}

	workouts := make([]domain.Workout, 0, len(elements))
	for _, raw := range elements {
		if w, ok := im.workout(raw); ok {
			workouts = append(workouts, w)
		}
	}

	if len(workouts) == 0 {
		return nil, domain.ErrNoValidWorkouts
	}
	return workouts, nil
}

func (im Importer) now() time.Time {
	if im.Now != nil {
		return im.Now()
	}
	return time.Now()
}

func (im Importer) newID() domain.WorkoutID {
	if im.NewID != nil {
		return im.NewID()
	}
	return NewID()
}

type fields map[string]json.RawMessage

func (f fields) present(key string) bool {
	raw, ok := f[key]
	return ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func (f fields) decode(key string, v any) bool {
	if !f.present(key) {
		return false
	}
	return json.Unmarshal(f[key], v) == nil
}

func (f fields) text(key string) string {
	var s string
	f.decode(key, &s)
	return s
}

func (f fields) number(key string, fallback int) int {
	var o domain.OptionalInt
	if !f.decode(key, &o) || !o.Valid {
		return fallback
	}
	return o.Value
}

func (f fields) optional(key string) domain.OptionalInt {
	var o domain.OptionalInt
	f.decode(key, &o)
	return o
}

func (im Importer) workout(raw json.RawMessage) (domain.Workout, bool) {
	var f fields
	if err := json.Unmarshal(raw, &f); err != nil || f == nil {
		return domain.Workout{}, false
	}

	var name string
	if !f.decode("name", &name) || name == "" {
		return domain.Workout{}, false
	}
	var rawExercises []json.RawMessage
	if !f.decode("exercises", &rawExercises) || rawExercises == nil {
		return domain.Workout{}, false
	}

	w := domain.Workout{
		Name:      name,
		Exercises: make([]domain.Exercise, 0, len(rawExercises)),
	}

	if !f.decode("id", &w.ID) || w.ID == "" {
		w.ID = im.newID()
	}
	if !f.decode("createdAt", &w.CreatedAt) || w.CreatedAt.IsZero() {
		w.CreatedAt = im.now()
	}
	w.CompletedSessions = f.number("completedSessions", 0)
	var last time.Time
	if f.decode("lastCompleted", &last) && !last.IsZero() {
		w.LastCompleted = &last
	}

	for _, rawEx := range rawExercises {
		var ef fields
		if err := json.Unmarshal(rawEx, &ef); err != nil || ef == nil {
			continue
		}
		w.Exercises = append(w.Exercises, exercise(ef))
	}

	return w, true
}

func exercise(f fields) domain.Exercise {
	typ := domain.ExerciseReps
	if f.present("type") {
		typ = domain.ExerciseType(f.text("type")).Normalize()
	}

	ex := domain.Exercise{
		Name:                 f.text("name"),
		Type:                 typ,
		Reps:                 f.optional("reps"),
		Duration:             f.optional("duration"),
		Sets:                 f.number("sets", domain.DefaultSets),
		RestBetweenSets:      f.number("restBetweenSets", domain.DefaultRestBetweenSets),
		RestBetweenExercises: f.number("restBetweenExercises", domain.DefaultRestBetweenExercises),
		MediaURL:             f.text("mediaUrl"),
	}
	return ex.Clamp()
}
