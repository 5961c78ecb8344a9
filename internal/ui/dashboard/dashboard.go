// Package dashboard renders the workout list with its summary tiles.
package dashboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/workouttimer/internal/domain"
	"github.com/riordanpawley/workouttimer/internal/services/workouts"
	"github.com/riordanpawley/workouttimer/internal/ui/styles"
)

// previewCount is how many exercises a card lists before "+N more"
const previewCount = 3

// cardHeight is the rendered height of a card with a full preview
const cardHeight = 8

// Model is the dashboard state
type Model struct {
	workouts []domain.Workout
	stats    workouts.Stats
	cursor   int
	loading  bool
	spinner  spinner.Model
	width    int
	height   int
	styles   *styles.Styles
}

// New creates a dashboard in its loading state
func New(s *styles.Styles) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(s.Palette.Blue)

	return Model{
		loading: true,
		spinner: sp,
		width:   80,
		height:  24,
		styles:  s,
	}
}

// Init starts the loading spinner
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update advances the spinner while loading
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok && m.loading {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(tick)
		return m, cmd
	}
	return m, nil
}

// SetWorkouts replaces the list and ends the loading state. The cursor is
// kept in range.
func (m *Model) SetWorkouts(list []domain.Workout, stats workouts.Stats) {
	m.workouts = list
	m.stats = stats
	m.loading = false
	m.cursor = min(m.cursor, max(len(list)-1, 0))
}

// SetSize sets the available area
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Loading reports whether the initial load is still running
func (m Model) Loading() bool {
	return m.loading
}

// Cursor returns the selected index
func (m Model) Cursor() int {
	return m.cursor
}

// Selected returns the workout under the cursor
func (m Model) Selected() (domain.Workout, bool) {
	if m.cursor < 0 || m.cursor >= len(m.workouts) {
		return domain.Workout{}, false
	}
	return m.workouts[m.cursor], true
}

// Select moves the cursor to the workout with the given id
func (m *Model) Select(id domain.WorkoutID) {
	for i, w := range m.workouts {
		if w.ID == id {
			m.cursor = i
			return
		}
	}
}

// MoveDown moves the cursor to the next workout
func (m *Model) MoveDown() {
	if m.cursor < len(m.workouts)-1 {
		m.cursor++
	}
}

// MoveUp moves the cursor to the previous workout
func (m *Model) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// View renders the dashboard
func (m Model) View() string {
	s := m.styles
	header := s.AppTitle.Render("Workout Timer Pro") + "  " +
		s.AppSubtitle.Render("Build, run and track interval workouts")

	if m.loading {
		return lipgloss.JoinVertical(lipgloss.Left,
			header, "",
			m.spinner.View()+" Loading workouts...",
		)
	}

	stats := m.renderStats()
	avail := m.height - lipgloss.Height(header) - lipgloss.Height(stats) - 3

	return lipgloss.JoinVertical(lipgloss.Left,
		header, "",
		s.WorkoutName.Render("Your Workouts"),
		m.renderList(avail),
		stats,
	)
}

func (m Model) renderList(height int) string {
	s := m.styles
	if len(m.workouts) == 0 {
		return s.Card.Width(m.cardWidth()).Align(lipgloss.Center).Render(
			s.WorkoutName.Render("No workouts yet") + "\n" +
				s.Muted.Render("Create your first workout to get started with your fitness journey.") + "\n\n" +
				s.Accent.Render("n: Create Your First Workout"),
		)
	}

	start, end := m.window(height)
	cards := make([]string, 0, end-start+2)
	if start > 0 {
		cards = append(cards, s.Muted.Render(fmt.Sprintf("  ↑ %d more", start)))
	}
	for i := start; i < end; i++ {
		cards = append(cards, m.renderCard(m.workouts[i], i == m.cursor))
	}
	if end < len(m.workouts) {
		cards = append(cards, s.Muted.Render(fmt.Sprintf("  ↓ %d more", len(m.workouts)-end)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// window returns the range of cards that fit, keeping the cursor visible
func (m Model) window(height int) (start, end int) {
	visible := max(height/cardHeight, 1)
	if visible >= len(m.workouts) {
		return 0, len(m.workouts)
	}
	start = max(m.cursor-visible+1, 0)
	return start, start + visible
}

func (m Model) cardWidth() int {
	return max(m.width-2, 40)
}

func (m Model) renderCard(w domain.Workout, active bool) string {
	s := m.styles
	style := s.Card
	if active {
		style = s.CardActive
	}

	minutes := domain.RoundMinutes(domain.EstimateSeconds(w.Exercises))
	meta := fmt.Sprintf("%d exercises • ~%d min", len(w.Exercises), minutes)
	if w.CompletedSessions > 0 {
		meta += fmt.Sprintf(" • completed %d×", w.CompletedSessions)
	}

	lines := []string{
		s.WorkoutName.Render(w.DisplayName()),
		s.Muted.Render(meta),
	}

	if len(w.Exercises) > 0 {
		inner := m.cardWidth() - 4
		lines = append(lines, s.Separator.Render(strings.Repeat("─", inner)))
		for _, ex := range w.Exercises[:min(len(w.Exercises), previewCount)] {
			summary := ex.Summary()
			gap := max(inner-lipgloss.Width(ex.Name)-lipgloss.Width(summary), 1)
			lines = append(lines, ex.Name+strings.Repeat(" ", gap)+s.Muted.Render(summary))
		}
		if extra := len(w.Exercises) - previewCount; extra > 0 {
			lines = append(lines, s.Muted.Render(fmt.Sprintf("+%d more exercises", extra)))
		}
	}

	return style.Width(m.cardWidth()).Render(strings.Join(lines, "\n"))
}

func (m Model) renderStats() string {
	s := m.styles
	tileWidth := max((m.cardWidth()-6)/3, 16)
	tile := func(value int, label string) string {
		return s.StatTile.Width(tileWidth).Render(
			s.StatValue.Render(strconv.Itoa(value)) + "\n" + s.StatLabel.Render(label),
		)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		tile(m.stats.Workouts, "Total Workouts"),
		tile(m.stats.Exercises, "Total Exercises"),
		tile(m.stats.CompletedSessions, "Completed Sessions"),
	)
}
