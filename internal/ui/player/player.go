// Package player renders a running workout session and drives its
// one-second countdown from Bubble Tea ticks.
package player

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/workouttimer/internal/core/session"
	"github.com/riordanpawley/workouttimer/internal/domain"
	"github.com/riordanpawley/workouttimer/internal/ui/styles"
)

// ExitConfirmMessage is shown before abandoning a session
const ExitConfirmMessage = "Are you sure you want to exit the workout? Your progress will be lost."

// TickMsg is one second of session time. Gen ties it to the tick chain
// that scheduled it; ticks from an older chain are dropped.
type TickMsg struct {
	Gen int
}

// CompletedMsg is emitted once when the session reaches complete
type CompletedMsg struct {
	WorkoutID      domain.WorkoutID
	At             time.Time
	ElapsedSeconds int
}

// ExitRequestMsg asks the owner to confirm leaving a session in progress
type ExitRequestMsg struct{}

// FinishedMsg asks the owner to return to the dashboard
type FinishedMsg struct{}

// TickFunc schedules the next tick of the given generation
type TickFunc func(gen int) tea.Cmd

// SecondTick schedules a TickMsg one second from now
func SecondTick(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return TickMsg{Gen: gen}
	})
}

// Option configures a Model
type Option func(*Model)

// WithTickFunc replaces the tick scheduler
func WithTickFunc(f TickFunc) Option {
	return func(m *Model) { m.tick = f }
}

// WithClock sets the time source used for completion timestamps
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithLogger sets the logger for session events
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) { m.logger = logger }
}

// Model is the session view state
type Model struct {
	timer   *session.Timer
	gen     int
	tick    TickFunc
	now     func() time.Time
	logger  *slog.Logger
	phase   progress.Model
	overall progress.Model
	width   int
	styles  *styles.Styles
}

// New creates a session view for the workout. The session waits in warmup
// until started.
func New(s *styles.Styles, w domain.Workout, opts ...Option) Model {
	m := Model{
		timer:   session.NewTimer(w),
		tick:    SecondTick,
		now:     time.Now,
		logger:  slog.Default(),
		phase:   progress.New(progress.WithoutPercentage()),
		overall: progress.New(progress.WithoutPercentage(), progress.WithSolidFill(string(s.Palette.Mauve))),
		width:   60,
		styles:  s,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.phase.EmptyColor = string(s.Palette.Surface1)
	m.overall.EmptyColor = string(s.Palette.Surface1)
	return m
}

// State returns the current session state
func (m Model) State() session.State {
	return m.timer.State()
}

// Workout returns the workout being run
func (m Model) Workout() domain.Workout {
	return m.timer.Workout()
}

// Done reports whether the session reached complete
func (m Model) Done() bool {
	return m.timer.Done()
}

// SetSize sets the available width
func (m *Model) SetSize(width, _ int) {
	m.width = width
	barWidth := min(max(width-16, 20), 60)
	m.phase.Width = barWidth
	m.overall.Width = barWidth
}

// Init initializes the view
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		state := m.timer.State()
		if !state.Running || state.Paused {
			return m, nil
		}
		cmd := m.handle(m.timer.Tick())
		if m.timer.State().Running {
			cmd = tea.Batch(cmd, m.tick(m.gen))
		}
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	state := m.timer.State()

	switch msg.String() {
	case "enter":
		switch {
		case m.timer.Done():
			return m, func() tea.Msg { return FinishedMsg{} }
		case !state.Running:
			events := m.timer.Start()
			if len(events) == 0 {
				return m, nil
			}
			tick := m.restartTicks()
			return m, tea.Batch(m.handle(events), tick)
		default:
			return m, m.handle(m.timer.CompleteSet())
		}

	case "p", " ":
		events := m.timer.TogglePause()
		cmd := m.handle(events)
		if len(events) > 0 && !m.timer.State().Paused {
			cmd = tea.Batch(cmd, m.restartTicks())
		}
		return m, cmd

	case "s":
		return m, m.handle(m.timer.Skip())

	case "esc", "q":
		if m.timer.Done() {
			return m, func() tea.Msg { return FinishedMsg{} }
		}
		return m, func() tea.Msg { return ExitRequestMsg{} }
	}

	return m, nil
}

// restartTicks starts a new tick chain, orphaning any tick in flight
func (m *Model) restartTicks() tea.Cmd {
	m.gen++
	return m.tick(m.gen)
}

// handle logs session events and reports completion
func (m Model) handle(events []session.Event) tea.Cmd {
	var cmd tea.Cmd
	w := m.timer.Workout()
	for _, ev := range events {
		m.logger.Debug("session event",
			"workout", w.ID,
			"event", ev.Type,
			"from", ev.From,
			"phase", ev.State.Phase,
			"exercise", ev.State.ExerciseIndex,
			"set", ev.State.SetIndex,
		)
		if ev.Type == session.EventCompleted {
			done := CompletedMsg{
				WorkoutID:      w.ID,
				At:             m.now(),
				ElapsedSeconds: ev.State.ElapsedSeconds,
			}
			cmd = func() tea.Msg { return done }
		}
	}
	return cmd
}

// View renders the session
func (m Model) View() string {
	s := m.styles
	w := m.timer.Workout()
	state := m.timer.State()
	phaseStyle := s.Phase(state.Phase)

	var rows []string
	rows = append(rows,
		s.Muted.Render(w.DisplayName()),
		"",
		phaseStyle.Render(session.Title(state, w)),
	)
	if sub := session.Subtitle(state, w); sub != "" {
		rows = append(rows, s.AppSubtitle.Render(sub))
	}

	ex, _ := session.Current(state, w)
	switch {
	case state.Phase == session.PhaseComplete:
		rows = append(rows, "", s.PhaseDone.Render("✓"), "", s.Muted.Render("enter: back to dashboard"))

	case state.Phase == session.PhaseExercise && !ex.IsDuration():
		rows = append(rows,
			s.Timer.Render(fmt.Sprintf("%s reps", ex.Reps.String())),
			s.Accent.Render("enter: set complete"),
		)

	default:
		m.phase.FullColor = string(s.PhaseColor(state.Phase))
		rows = append(rows,
			s.Timer.Render(session.FormatTime(state.TimeRemaining)),
			m.phase.ViewAs(session.PhaseProgress(state, w)),
		)
	}

	if state.Phase == session.PhaseExercise && ex.MediaURL != "" {
		rows = append(rows, "", s.Muted.Render("Media: "+ex.MediaURL))
	}

	if !state.Running && state.Phase != session.PhaseComplete {
		rows = append(rows, "", s.Accent.Render("Press enter to start"))
	}

	panel := s.SessionPanel.Width(min(max(m.width-4, 40), 80)).
		Render(lipgloss.JoinVertical(lipgloss.Center, rows...))

	return lipgloss.JoinVertical(lipgloss.Center, panel, m.renderFooter(state, w))
}

func (m Model) renderFooter(state session.State, w domain.Workout) string {
	s := m.styles
	progressLine := fmt.Sprintf("Progress: %d / %d sets", session.CompletedSets(state, w), session.TotalSets(w))
	info := []string{
		s.StatLabel.Render(progressLine),
		s.StatLabel.Render("Total time: " + session.FormatTime(state.ElapsedSeconds)),
		s.Phase(state.Phase).Render(state.StatusLabel()),
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		m.overall.ViewAs(session.Progress(state, w)),
		strings.Join(info, s.Separator.Render("  •  ")),
	)
}
