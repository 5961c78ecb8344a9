package workouts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/workouttimer/internal/core/session"
	"github.com/riordanpawley/workouttimer/internal/domain"
	"github.com/riordanpawley/workouttimer/internal/store"
)

// mockRepository records saves and can be told to fail
type mockRepository struct {
	workouts []domain.Workout
	theme    domain.Theme
	saves    int
	clears   int
	loadErr  error
	saveErr  error
	themeErr error
	clearErr error
}

func (m *mockRepository) Load(context.Context) ([]domain.Workout, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.workouts, nil
}

func (m *mockRepository) Save(_ context.Context, workouts []domain.Workout) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.workouts = workouts
	return nil
}

func (m *mockRepository) Clear(context.Context) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.clears++
	m.workouts = nil
	return nil
}

func (m *mockRepository) LoadTheme(context.Context) (domain.Theme, error) {
	if m.themeErr != nil {
		return domain.ThemeDark, m.themeErr
	}
	if m.theme == "" {
		return domain.ThemeDark, nil
	}
	return m.theme, nil
}

func (m *mockRepository) SaveTheme(_ context.Context, theme domain.Theme) error {
	if m.themeErr != nil {
		return m.themeErr
	}
	m.theme = theme
	return nil
}

var testNow = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func newTestService(repo Repository) *Service {
	n := 0
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)),
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(func() domain.WorkoutID {
			n++
			return domain.WorkoutID(fmt.Sprintf("id-%d", n))
		}),
	)
}

func pushup() domain.Exercise {
	ex := domain.NewExercise()
	ex.Name = "Push-up"
	ex.Reps = domain.Some(10)
	ex.Sets = 3
	return ex
}

func TestService_Add(t *testing.T) {
	repo := &mockRepository{}
	svc := newTestService(repo)

	w, err := svc.Add(context.Background(), "  Upper body ", []domain.Exercise{pushup(), {Name: "  "}})
	require.NoError(t, err)

	assert.Equal(t, domain.WorkoutID("id-1"), w.ID)
	assert.Equal(t, "Upper body", w.Name)
	assert.Equal(t, testNow, w.CreatedAt)
	assert.Len(t, w.Exercises, 1, "blank exercises are dropped")
	assert.Equal(t, 1, repo.saves)
	assert.Len(t, repo.workouts, 1)
}

func TestService_AddValidation(t *testing.T) {
	svc := newTestService(&mockRepository{})
	ctx := context.Background()

	_, err := svc.Add(ctx, "  ", []domain.Exercise{pushup()})
	assert.ErrorIs(t, err, domain.ErrEmptyName)

	_, err = svc.Add(ctx, "Legs", []domain.Exercise{{Name: ""}})
	assert.ErrorIs(t, err, domain.ErrNoExercises)

	assert.Equal(t, 0, svc.Len())
}

func TestService_AddClampsFields(t *testing.T) {
	svc := newTestService(&mockRepository{})
	w, err := svc.Add(context.Background(), "A", []domain.Exercise{{
		Name: "X", Type: "tempo", Sets: 0, RestBetweenSets: -5, RestBetweenExercises: -1,
	}})
	require.NoError(t, err)

	ex := w.Exercises[0]
	assert.Equal(t, domain.ExerciseReps, ex.Type)
	assert.Equal(t, 1, ex.Sets)
	assert.Equal(t, 0, ex.RestBetweenSets)
	assert.Equal(t, 0, ex.RestBetweenExercises)
}

func TestService_UpdatePreservesIdentity(t *testing.T) {
	repo := &mockRepository{}
	svc := newTestService(repo)
	ctx := context.Background()

	w, err := svc.Add(ctx, "Old", []domain.Exercise{pushup()})
	require.NoError(t, err)
	_, err = svc.RecordCompletion(ctx, w.ID, testNow.Add(time.Hour))
	require.NoError(t, err)

	plank := domain.Exercise{Name: "Plank", Type: domain.ExerciseDuration, Duration: domain.Some(60), Sets: 1}
	updated, err := svc.Update(ctx, w.ID, "New", []domain.Exercise{plank})
	require.NoError(t, err)

	assert.Equal(t, w.ID, updated.ID)
	assert.Equal(t, w.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, 1, updated.CompletedSessions)
	assert.Equal(t, "Plank", updated.Exercises[0].Name)

	_, err = svc.Update(ctx, "missing", "X", []domain.Exercise{plank})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_DeleteKeepsOrder(t *testing.T) {
	svc := newTestService(&mockRepository{})
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C", "D"} {
		_, err := svc.Add(ctx, name, []domain.Exercise{pushup()})
		require.NoError(t, err)
	}

	require.NoError(t, svc.Delete(ctx, "id-2"))

	var names []string
	for _, w := range svc.List() {
		names = append(names, w.Name)
	}
	assert.Equal(t, []string{"A", "C", "D"}, names)

	assert.ErrorIs(t, svc.Delete(ctx, "id-2"), domain.ErrNotFound)
}

func TestService_ImportAppend(t *testing.T) {
	repo := &mockRepository{}
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Add(ctx, "Existing", []domain.Exercise{pushup()})
	require.NoError(t, err)

	n, err := svc.Import(ctx, []byte(`[
		{"id": "id-1", "name": "Clash", "exercises": [{"name": "Squat"}]},
		{"name": "Fresh", "exercises": [{"name": "Lunge"}]},
		{"name": ""}
	]`), ImportAppend)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	list := svc.List()
	require.Len(t, list, 3)
	assert.Equal(t, "Existing", list[0].Name)
	assert.Equal(t, domain.WorkoutID("id-1"), list[0].ID)
	assert.NotEqual(t, domain.WorkoutID("id-1"), list[1].ID, "colliding ids are replaced")
	assert.Equal(t, 2, repo.saves)
}

func TestService_ImportReplace(t *testing.T) {
	svc := newTestService(&mockRepository{})
	ctx := context.Background()

	_, err := svc.Add(ctx, "Existing", []domain.Exercise{pushup()})
	require.NoError(t, err)

	n, err := svc.Import(ctx, []byte(`[{"name": "Only", "exercises": []}]`), ImportReplace)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, svc.List(), 1)
	assert.Equal(t, "Only", svc.List()[0].Name)
}

func TestService_ImportNothingValidWritesNothing(t *testing.T) {
	repo := &mockRepository{}
	svc := newTestService(repo)

	for _, input := range []string{`[]`, `[{}]`, `{`, `{"a":1}`} {
		n, err := svc.Import(context.Background(), []byte(input), ImportAppend)
		assert.Error(t, err)
		assert.Equal(t, 0, n)
	}
	assert.Equal(t, 0, repo.saves)
}

func TestService_RecordCompletion(t *testing.T) {
	svc := newTestService(&mockRepository{})
	ctx := context.Background()

	w, err := svc.Add(ctx, "A", []domain.Exercise{pushup()})
	require.NoError(t, err)

	at := testNow.Add(30 * time.Minute)
	for i := 0; i < 2; i++ {
		_, err = svc.RecordCompletion(ctx, w.ID, at)
		require.NoError(t, err)
	}

	got, err := svc.Get(w.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CompletedSessions)
	require.NotNil(t, got.LastCompleted)
	assert.Equal(t, at, *got.LastCompleted)

	assert.Equal(t, Stats{Workouts: 1, Exercises: 1, CompletedSessions: 2}, svc.Stats())
}

func TestService_SaveFailureLeavesListUnchanged(t *testing.T) {
	repo := &mockRepository{}
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Add(ctx, "A", []domain.Exercise{pushup()})
	require.NoError(t, err)

	repo.saveErr = errors.New("disk full")
	_, err = svc.Add(ctx, "B", []domain.Exercise{pushup()})
	assert.ErrorContains(t, err, "disk full")
	assert.Equal(t, 1, svc.Len())

	assert.Error(t, svc.Delete(ctx, "id-1"))
	assert.Equal(t, 1, svc.Len())
}

func TestService_Clear(t *testing.T) {
	repo := &mockRepository{}
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.Add(ctx, "A", []domain.Exercise{pushup()})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx))
	assert.Equal(t, 0, svc.Len())
	assert.Equal(t, 1, repo.clears)
}

func TestService_LoadDegradesToEmpty(t *testing.T) {
	repo := &mockRepository{loadErr: errors.New("corrupt")}
	svc := newTestService(repo)

	err := svc.Load(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0, svc.Len())
	assert.NotNil(t, svc.List())
	assert.Equal(t, domain.ThemeDark, svc.Theme())
}

func TestService_LoadFromStore(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	repo := store.NewWorkoutRepository(kv)
	require.NoError(t, repo.Save(ctx, []domain.Workout{{ID: "x", Name: "Saved", Exercises: []domain.Exercise{pushup()}}}))
	require.NoError(t, repo.SaveTheme(ctx, domain.ThemeLight))

	svc := newTestService(repo)
	require.NoError(t, svc.Load(ctx))
	assert.Equal(t, 1, svc.Len())
	assert.Equal(t, domain.ThemeLight, svc.Theme())
}

func TestService_ToggleTheme(t *testing.T) {
	repo := &mockRepository{}
	svc := newTestService(repo)
	ctx := context.Background()

	theme, err := svc.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, theme)
	assert.Equal(t, domain.ThemeLight, repo.theme)

	theme, err = svc.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, theme)

	assert.ErrorIs(t, svc.SetTheme(ctx, "blue"), domain.ErrInvalidTheme)
}

func TestService_ListReturnsCopies(t *testing.T) {
	svc := newTestService(&mockRepository{})
	w, err := svc.Add(context.Background(), "A", []domain.Exercise{pushup()})
	require.NoError(t, err)

	list := svc.List()
	list[0].Exercises[0].Name = "Mutated"

	got, _ := svc.Get(w.ID)
	assert.Equal(t, "Push-up", got.Exercises[0].Name)
}

func TestParseImportMode(t *testing.T) {
	mode, err := ParseImportMode("")
	require.NoError(t, err)
	assert.Equal(t, ImportAppend, mode)

	mode, err = ParseImportMode("REPLACE")
	require.NoError(t, err)
	assert.Equal(t, ImportReplace, mode)

	_, err = ParseImportMode("merge")
	assert.Error(t, err)
}

func TestService_ImportedSetsKeepProgressMonotonic(t *testing.T) {
	svc := newTestService(&mockRepository{})
	ctx := context.Background()

	_, err := svc.Import(ctx, []byte(`[{"name":"A","exercises":[
		{"name":"x","sets":-1},
		{"name":"y","sets":0},
		{"name":"z","sets":1}
	]}]`), ImportReplace)
	require.NoError(t, err)

	w := svc.List()[0]
	for _, ex := range w.Exercises {
		assert.Equal(t, 1, ex.Sets, ex.Name)
	}
	require.Equal(t, 3, session.TotalSets(w))

	state := session.NewState()
	last := session.CompletedSets(state, w)
	for i := 0; i < 20 && state.Phase != session.PhaseComplete; i++ {
		state = session.Advance(state, w)
		done := session.CompletedSets(state, w)
		assert.GreaterOrEqual(t, done, last, "completed sets went backwards at step %d", i)
		assert.LessOrEqual(t, done, 3)
		last = done
	}
	assert.Equal(t, session.PhaseComplete, state.Phase)
	assert.Equal(t, 3, last)
}
