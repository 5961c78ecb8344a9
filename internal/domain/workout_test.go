package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalInt_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input string
		want  OptionalInt
	}{
		{`12`, Some(12)},
		{`"15"`, Some(15)},
		{`""`, OptionalInt{}},
		{`null`, OptionalInt{}},
		{`0`, Some(0)},
		{`45.0`, Some(45)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got OptionalInt
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.Equal(t, tt.want, got)
		})
	}

	var bad OptionalInt
	assert.Error(t, json.Unmarshal([]byte(`"ten"`), &bad))
}

func TestOptionalInt_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		A OptionalInt `json:"a"`
		B OptionalInt `json:"b"`
	}{A: Some(10)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":10,"b":""}`, string(data))
}

func TestWorkoutID_AcceptsNumbersAndStrings(t *testing.T) {
	var w Workout
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1712345678901.42, "name": "A", "exercises": []}`), &w))
	assert.Equal(t, WorkoutID("1712345678901.42"), w.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id": "abc", "name": "B", "exercises": []}`), &w))
	assert.Equal(t, WorkoutID("abc"), w.ID)
}

func TestWorkout_JSONShape(t *testing.T) {
	created := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	w := Workout{
		ID:        "w-1",
		Name:      "Push day",
		CreatedAt: created,
		Exercises: []Exercise{{
			Name:                 "Push-up",
			Type:                 ExerciseReps,
			Reps:                 Some(12),
			Sets:                 3,
			RestBetweenSets:      30,
			RestBetweenExercises: 60,
		}},
	}

	data, err := json.Marshal(w)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "w-1",
		"name": "Push day",
		"createdAt": "2025-03-01T09:30:00Z",
		"exercises": [{
			"name": "Push-up",
			"type": "reps",
			"reps": 12,
			"duration": "",
			"sets": 3,
			"restBetweenSets": 30,
			"restBetweenExercises": 60,
			"mediaUrl": ""
		}]
	}`, string(data))
}

func TestEstimators(t *testing.T) {
	exercises := []Exercise{
		{Name: "Plank", Type: ExerciseDuration, Duration: Some(45), Sets: 3, RestBetweenSets: 15, RestBetweenExercises: 60},
		{Name: "Squat", Type: ExerciseReps, Reps: Some(10), Sets: 2, RestBetweenSets: 0, RestBetweenExercises: 0},
	}

	// Card estimator: empty duration and zero rests fall back to defaults
	// plank: 45*3 + 15*2 + 60 = 225; squat: 30*2 + 30*1 + 60 = 150
	assert.Equal(t, 375, EstimateSeconds(exercises))

	// Editor estimator: reps count 30s per set, rests are literal
	// plank: 45*3 + 15*2 + 60 = 225; squat: 30*2 + 0 + 0 = 60
	assert.Equal(t, 285, PlannedSeconds(exercises))

	assert.Equal(t, 6, RoundMinutes(375))
	assert.Equal(t, 5, RoundMinutes(285))
	assert.Equal(t, 0, RoundMinutes(0))
}

func TestEstimateSeconds_DurationOnRepsExercise(t *testing.T) {
	// The card estimator uses a configured duration even on a reps exercise
	exercises := []Exercise{{Type: ExerciseReps, Duration: Some(20), Sets: 1, RestBetweenSets: 30, RestBetweenExercises: 60}}
	assert.Equal(t, 80, EstimateSeconds(exercises))
	assert.Equal(t, 90, PlannedSeconds(exercises))
}

func TestExercise_Summary(t *testing.T) {
	assert.Equal(t, "3 × 12", Exercise{Sets: 3, Reps: Some(12)}.Summary())
	assert.Equal(t, "2 × 45s", Exercise{Sets: 2, Type: ExerciseDuration, Duration: Some(45)}.Summary())
}

func TestWorkout_CloneIsIndependent(t *testing.T) {
	now := time.Now()
	w := Workout{ID: "1", Exercises: []Exercise{{Name: "A", Sets: 1}}, LastCompleted: &now}
	c := w.Clone()
	c.Exercises[0].Name = "B"
	*c.LastCompleted = now.Add(time.Hour)

	assert.Equal(t, "A", w.Exercises[0].Name)
	assert.Equal(t, now, *w.LastCompleted)
}

func TestExerciseType_Normalize(t *testing.T) {
	assert.Equal(t, ExerciseDuration, ExerciseDuration.Normalize())
	assert.Equal(t, ExerciseReps, ExerciseType("").Normalize())
	assert.Equal(t, ExerciseReps, ExerciseType("tempo").Normalize())
}
