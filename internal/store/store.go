// Package store is the key/value persistence boundary for workouts and
// preferences. Backends hold opaque string values under string keys; the
// WorkoutRepository maps the two fixed keys onto typed values.
package store

import (
	"context"
)

// Keys used by the workout timer
const (
	KeyWorkouts = "workoutTimerPro_workouts"
	KeyTheme    = "workoutTimerPro_theme"
)

// Backend names accepted by Open
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// KeyValue is a string-keyed store. Removing a missing key is not an error.
type KeyValue interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}
