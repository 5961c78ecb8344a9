package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/riordanpawley/workouttimer/internal/domain"
)

// WorkoutRepository reads and writes the workout list and theme preference
type WorkoutRepository struct {
	kv KeyValue
}

// NewWorkoutRepository wraps a key/value store
func NewWorkoutRepository(kv KeyValue) *WorkoutRepository {
	return &WorkoutRepository{kv: kv}
}

// Load returns the saved workouts. A missing key yields an empty list.
func (r *WorkoutRepository) Load(ctx context.Context) ([]domain.Workout, error) {
	raw, ok, err := r.kv.Get(ctx, KeyWorkouts)
	if err != nil {
		return nil, err
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []domain.Workout{}, nil
	}

	var workouts []domain.Workout
	if err := json.Unmarshal([]byte(raw), &workouts); err != nil {
		return nil, &domain.StoreError{Op: "load", Key: KeyWorkouts, Err: fmt.Errorf("parse workouts: %w", err)}
	}
	if workouts == nil {
		workouts = []domain.Workout{}
	}
	for i := range workouts {
		for j, ex := range workouts[i].Exercises {
			workouts[i].Exercises[j] = ex.Clamp()
		}
	}
	return workouts, nil
}

// Save serialises the entire list under the workouts key
func (r *WorkoutRepository) Save(ctx context.Context, workouts []domain.Workout) error {
	if workouts == nil {
		workouts = []domain.Workout{}
	}
	data, err := json.Marshal(workouts)
	if err != nil {
		return &domain.StoreError{Op: "save", Key: KeyWorkouts, Err: err}
	}
	return r.kv.Set(ctx, KeyWorkouts, string(data))
}

// Clear removes the workouts key
func (r *WorkoutRepository) Clear(ctx context.Context) error {
	return r.kv.Remove(ctx, KeyWorkouts)
}

// LoadTheme returns the saved theme, dark when unset
func (r *WorkoutRepository) LoadTheme(ctx context.Context) (domain.Theme, error) {
	raw, ok, err := r.kv.Get(ctx, KeyTheme)
	if err != nil {
		return domain.ThemeDark, err
	}
	if !ok {
		return domain.ThemeDark, nil
	}
	theme, err := domain.ParseTheme(strings.Trim(strings.TrimSpace(raw), `"`))
	if err != nil {
		return domain.ThemeDark, err
	}
	return theme, nil
}

// SaveTheme stores the theme as a bare string
func (r *WorkoutRepository) SaveTheme(ctx context.Context, theme domain.Theme) error {
	return r.kv.Set(ctx, KeyTheme, theme.String())
}
