package player

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/workouttimer/internal/core/session"
	"github.com/riordanpawley/workouttimer/internal/domain"
	"github.com/riordanpawley/workouttimer/internal/ui/styles"
)

var finishedAt = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// scheduled records tick generations instead of sleeping
type scheduled struct {
	gens []int
}

func (s *scheduled) tick(gen int) tea.Cmd {
	s.gens = append(s.gens, gen)
	return func() tea.Msg { return TickMsg{Gen: gen} }
}

func (s *scheduled) last() int {
	return s.gens[len(s.gens)-1]
}

func plankWorkout() domain.Workout {
	return domain.Workout{
		ID:   "w-1",
		Name: "Core",
		Exercises: []domain.Exercise{
			{Name: "Plank", Type: domain.ExerciseDuration, Duration: domain.Some(3), Sets: 1, RestBetweenExercises: 0},
		},
	}
}

func repsWorkout() domain.Workout {
	return domain.Workout{
		ID:   "w-2",
		Name: "Push",
		Exercises: []domain.Exercise{
			{Name: "Push-ups", Type: domain.ExerciseReps, Reps: domain.Some(12), Sets: 1},
		},
	}
}

func newPlayer(w domain.Workout) (Model, *scheduled) {
	sched := &scheduled{}
	m := New(styles.New(domain.ThemeDark), w,
		WithTickFunc(sched.tick),
		WithClock(func() time.Time { return finishedAt }),
	)
	m.SetSize(80, 24)
	return m, sched
}

func key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestPlayer_StartSchedulesTicks(t *testing.T) {
	m, sched := newPlayer(plankWorkout())
	assert.Contains(t, m.View(), "Press enter to start")
	assert.Contains(t, m.View(), "Get Ready!")

	m, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.True(t, m.State().Running)
	assert.Equal(t, []int{1}, sched.gens)

	m, _ = m.Update(TickMsg{Gen: 1})
	assert.Equal(t, session.WarmupSeconds-1, m.State().TimeRemaining)
	assert.Equal(t, []int{1, 1}, sched.gens, "each tick schedules the next")
}

// collect runs a command and any batch it expands to
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collect(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func TestPlayer_StartTickMatchesGeneration(t *testing.T) {
	m, _ := newPlayer(plankWorkout())

	m, cmd := m.Update(key("enter"))
	var ticks []TickMsg
	for _, msg := range collect(cmd) {
		if tick, ok := msg.(TickMsg); ok {
			ticks = append(ticks, tick)
		}
	}
	require.Len(t, ticks, 1)
	assert.Equal(t, m.gen, ticks[0].Gen)

	m, _ = m.Update(ticks[0])
	assert.Equal(t, session.WarmupSeconds-1, m.State().TimeRemaining, "the scheduled tick is not stale")
}

func TestPlayer_RunsToCompletion(t *testing.T) {
	m, sched := newPlayer(plankWorkout())
	m, _ = m.Update(key("enter"))

	var completed []CompletedMsg
	for i := 0; i < 20 && !m.Done(); i++ {
		var cmd tea.Cmd
		m, cmd = m.Update(TickMsg{Gen: sched.last()})
		completed = append(completed, drainCompleted(cmd)...)
	}

	require.True(t, m.Done())
	require.Len(t, completed, 1)
	assert.Equal(t, domain.WorkoutID("w-1"), completed[0].WorkoutID)
	assert.Equal(t, finishedAt, completed[0].At)
	assert.Equal(t, 8, completed[0].ElapsedSeconds, "5s warmup plus 3s plank")

	view := m.View()
	assert.Contains(t, view, "Workout Complete!")
	assert.Contains(t, view, "Progress: 1 / 1 sets")

	_, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, FinishedMsg{}, cmd())
}

// drainCompleted runs cmd, unpacking batches, and collects completions
func drainCompleted(cmd tea.Cmd) []CompletedMsg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case CompletedMsg:
		return []CompletedMsg{msg}
	case tea.BatchMsg:
		var out []CompletedMsg
		for _, c := range msg {
			out = append(out, drainCompleted(c)...)
		}
		return out
	}
	return nil
}

func TestPlayer_PauseDropsStaleTicks(t *testing.T) {
	m, sched := newPlayer(plankWorkout())
	m, _ = m.Update(key("enter"))
	m, _ = m.Update(key("p"))
	assert.True(t, m.State().Paused)
	assert.Contains(t, m.View(), "Paused")

	m, _ = m.Update(TickMsg{Gen: 1})
	assert.Equal(t, session.WarmupSeconds, m.State().TimeRemaining, "paused sessions do not count down")

	m, _ = m.Update(key("p"))
	assert.False(t, m.State().Paused)
	assert.Equal(t, 2, sched.last(), "resume starts a new tick chain")

	m, _ = m.Update(TickMsg{Gen: 1})
	assert.Equal(t, session.WarmupSeconds, m.State().TimeRemaining, "old chain is ignored")

	m, _ = m.Update(TickMsg{Gen: 2})
	assert.Equal(t, session.WarmupSeconds-1, m.State().TimeRemaining)
}

func TestPlayer_RepsSetCompletesOnEnter(t *testing.T) {
	m, _ := newPlayer(repsWorkout())
	m, _ = m.Update(key("enter"))
	m, _ = m.Update(key("s"))
	require.Equal(t, session.PhaseExercise, m.State().Phase)

	view := m.View()
	assert.Contains(t, view, "12 reps")
	assert.Contains(t, view, "enter: set complete")

	m, cmd := m.Update(key("enter"))
	assert.True(t, m.Done())
	require.Len(t, drainCompleted(cmd), 1)
}

func TestPlayer_ExitRequestsConfirmation(t *testing.T) {
	m, _ := newPlayer(plankWorkout())
	m, _ = m.Update(key("enter"))

	_, cmd := m.Update(key("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, ExitRequestMsg{}, cmd())
}

func TestPlayer_EmptyWorkoutDoesNotStart(t *testing.T) {
	m, sched := newPlayer(domain.Workout{ID: "empty", Name: "Empty"})
	m, cmd := m.Update(key("enter"))
	assert.Nil(t, cmd)
	assert.False(t, m.State().Running)
	assert.Empty(t, sched.gens)
}

func TestPlayer_ShowsMedia(t *testing.T) {
	w := plankWorkout()
	w.Exercises[0].MediaURL = "https://example.com/plank.gif"
	m, _ := newPlayer(w)
	m, _ = m.Update(key("enter"))
	m, _ = m.Update(key("s"))

	assert.Contains(t, m.View(), "https://example.com/plank.gif")
}
