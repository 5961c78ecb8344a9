package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrNotFound        = errors.New("workout not found")
	ErrEmptyName       = errors.New("workout name cannot be empty")
	ErrNoExercises     = errors.New("workout needs at least one exercise")
	ErrMalformedImport = errors.New("malformed import JSON")
	ErrNotArray        = errors.New("import must be an array of workouts")
	ErrNoValidWorkouts = errors.New("no valid workouts in import")
	ErrNothingToExport = errors.New("no workouts to export")
	ErrInvalidTheme    = errors.New("invalid theme")
)

// StoreError represents a failure in the key/value store collaborator
type StoreError struct {
	Op  string // Operation: "get", "set", "remove", "open"
	Key string // Optional: the key involved
	Err error  // Underlying error
}

func (e *StoreError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("store %s [%s]: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
