// Package editor implements the workout create/edit form.
package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/workouttimer/internal/domain"
	"github.com/riordanpawley/workouttimer/internal/ui/styles"
)

// Validation messages shown above the form
const (
	MsgNameRequired     = "Please enter a workout name"
	MsgExerciseRequired = "Please add at least one exercise"
)

// SaveMsg is emitted when the form is submitted. ID is empty for a new
// workout.
type SaveMsg struct {
	ID        domain.WorkoutID
	Name      string
	Exercises []domain.Exercise
}

// CancelMsg is emitted when editing is abandoned
type CancelMsg struct{}

type field int

const (
	fieldName field = iota
	fieldReps
	fieldDuration
	fieldSets
	fieldRestSets
	fieldRestExercise
	fieldMedia
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldName:         "Exercise Name",
	fieldReps:         "Reps per Set",
	fieldDuration:     "Duration per Set (seconds)",
	fieldSets:         "Number of Sets",
	fieldRestSets:     "Rest Between Sets (seconds)",
	fieldRestExercise: "Rest After Exercise (seconds)",
	fieldMedia:        "Media URL (optional)",
}

type exerciseForm struct {
	kind   domain.ExerciseType
	inputs [fieldCount]textinput.Model
}

// slot addresses one focusable input; exercise -1 is the workout name
type slot struct {
	exercise int
	field    field
}

// Model is the editor state
type Model struct {
	id        domain.WorkoutID
	name      textinput.Model
	exercises []exerciseForm
	focus     int
	err       string
	width     int
	styles    *styles.Styles
}

// New creates an editor. A nil workout starts a blank form.
func New(s *styles.Styles, w *domain.Workout) Model {
	name := newInput("Enter workout name...", 100)
	m := Model{
		name:   name,
		styles: s,
	}
	if w != nil {
		m.id = w.ID
		m.name.SetValue(w.Name)
		for _, ex := range w.Exercises {
			m.exercises = append(m.exercises, newExerciseForm(ex))
		}
	}
	m.applyFocus()
	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	ti.Prompt = ""
	return ti
}

func newExerciseForm(ex domain.Exercise) exerciseForm {
	f := exerciseForm{kind: ex.Type.Normalize()}
	f.inputs[fieldName] = newInput("e.g., Push-ups, Squats, Plank...", 100)
	f.inputs[fieldReps] = newInput("10", 6)
	f.inputs[fieldDuration] = newInput("30", 6)
	f.inputs[fieldSets] = newInput("1", 4)
	f.inputs[fieldRestSets] = newInput("30", 6)
	f.inputs[fieldRestExercise] = newInput("60", 6)
	f.inputs[fieldMedia] = newInput("https://example.com/exercise-demo.gif", 512)

	f.inputs[fieldName].SetValue(ex.Name)
	f.inputs[fieldReps].SetValue(ex.Reps.String())
	f.inputs[fieldDuration].SetValue(ex.Duration.String())
	f.inputs[fieldSets].SetValue(strconv.Itoa(ex.Sets))
	f.inputs[fieldRestSets].SetValue(strconv.Itoa(ex.RestBetweenSets))
	f.inputs[fieldRestExercise].SetValue(strconv.Itoa(ex.RestBetweenExercises))
	f.inputs[fieldMedia].SetValue(ex.MediaURL)
	return f
}

// amountField is the reps or duration input, whichever the type uses
func (f exerciseForm) amountField() field {
	if f.kind == domain.ExerciseDuration {
		return fieldDuration
	}
	return fieldReps
}

func (f exerciseForm) exercise() domain.Exercise {
	reps, _ := domain.ParseOptionalInt(f.inputs[fieldReps].Value())
	duration, _ := domain.ParseOptionalInt(f.inputs[fieldDuration].Value())
	return domain.Exercise{
		Name:                 f.inputs[fieldName].Value(),
		Type:                 f.kind,
		Reps:                 reps,
		Duration:             duration,
		Sets:                 parseOr(f.inputs[fieldSets].Value(), 1),
		RestBetweenSets:      parseOr(f.inputs[fieldRestSets].Value(), 0),
		RestBetweenExercises: parseOr(f.inputs[fieldRestExercise].Value(), 0),
		MediaURL:             strings.TrimSpace(f.inputs[fieldMedia].Value()),
	}
}

// parseOr parses a whole number; empty, zero or invalid input gives fallback
func parseOr(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n == 0 {
		return fallback
	}
	return n
}

// IsNew reports whether the form creates a workout rather than editing one
func (m Model) IsNew() bool {
	return m.id == ""
}

// SetSize sets the available width
func (m *Model) SetSize(width, _ int) {
	m.width = width
}

// SetError shows an error above the form, used when saving fails
func (m *Model) SetError(err string) {
	m.err = err
}

// Exercises returns the exercises as currently entered
func (m Model) Exercises() []domain.Exercise {
	out := make([]domain.Exercise, 0, len(m.exercises))
	for _, f := range m.exercises {
		out = append(out, f.exercise())
	}
	return out
}

func (m Model) slots() []slot {
	out := []slot{{exercise: -1, field: fieldName}}
	for i, f := range m.exercises {
		out = append(out,
			slot{i, fieldName},
			slot{i, f.amountField()},
			slot{i, fieldSets},
			slot{i, fieldRestSets},
			slot{i, fieldRestExercise},
			slot{i, fieldMedia},
		)
	}
	return out
}

func (m Model) current() slot {
	return m.slots()[m.focus]
}

func (m *Model) input(s slot) *textinput.Model {
	if s.exercise < 0 {
		return &m.name
	}
	return &m.exercises[s.exercise].inputs[s.field]
}

// applyFocus focuses the input under the cursor and blurs the rest
func (m *Model) applyFocus() {
	slots := m.slots()
	m.focus = min(max(m.focus, 0), len(slots)-1)
	m.name.Blur()
	for i := range m.exercises {
		for f := range m.exercises[i].inputs {
			m.exercises[i].inputs[f].Blur()
		}
	}
	m.input(slots[m.focus]).Focus()
}

// Init initializes the editor
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, func() tea.Msg { return CancelMsg{} }

	case "ctrl+s":
		return m.save()

	case "tab", "down", "enter":
		m.focus = (m.focus + 1) % len(m.slots())
		m.applyFocus()
		return m, nil

	case "shift+tab", "up":
		n := len(m.slots())
		m.focus = (m.focus - 1 + n) % n
		m.applyFocus()
		return m, nil

	case "ctrl+n":
		m.exercises = append(m.exercises, newExerciseForm(domain.NewExercise()))
		m.focus = 1 + (len(m.exercises)-1)*6
		m.err = ""
		m.applyFocus()
		return m, nil

	case "ctrl+d":
		if cur := m.current(); cur.exercise >= 0 {
			m.exercises = append(m.exercises[:cur.exercise], m.exercises[cur.exercise+1:]...)
			m.focus = 1 + (cur.exercise-1)*6
			m.applyFocus()
		}
		return m, nil

	case "ctrl+t":
		if cur := m.current(); cur.exercise >= 0 {
			f := &m.exercises[cur.exercise]
			if f.kind == domain.ExerciseDuration {
				f.kind = domain.ExerciseReps
			} else {
				f.kind = domain.ExerciseDuration
			}
			m.applyFocus()
		}
		return m, nil
	}

	var cmd tea.Cmd
	in := m.input(m.current())
	*in, cmd = in.Update(msg)
	return m, cmd
}

func (m Model) save() (Model, tea.Cmd) {
	name := strings.TrimSpace(m.name.Value())
	if name == "" {
		m.err = MsgNameRequired
		return m, nil
	}
	if len(m.exercises) == 0 {
		m.err = MsgExerciseRequired
		return m, nil
	}

	m.err = ""
	save := SaveMsg{
		ID:        m.id,
		Name:      name,
		Exercises: m.Exercises(),
	}
	return m, func() tea.Msg { return save }
}

// View renders the form
func (m Model) View() string {
	s := m.styles
	var b strings.Builder

	title := "Create New Workout"
	if !m.IsNew() {
		title = "Edit Workout"
	}
	b.WriteString(s.AppTitle.Render(title))
	b.WriteString("\n\n")

	if m.err != "" {
		b.WriteString(s.ErrorText.Render(m.err))
		b.WriteString("\n\n")
	}

	cur := m.current()
	b.WriteString(m.label("Workout Name", cur.exercise < 0))
	b.WriteString("\n")
	b.WriteString(m.name.View())
	b.WriteString("\n\n")

	b.WriteString(s.WorkoutName.Render(fmt.Sprintf("Exercises (%d)", len(m.exercises))))
	b.WriteString("\n")

	if len(m.exercises) == 0 {
		b.WriteString(s.Muted.Render("No exercises added yet. Press ctrl+n to add one."))
		b.WriteString("\n")
	}

	cardWidth := max(m.width-4, 40)
	for i, f := range m.exercises {
		if i == cur.exercise {
			b.WriteString(s.ExerciseActive.Width(cardWidth).Render(m.renderExpanded(i, f, cur.field)))
		} else {
			b.WriteString(s.ExerciseCard.Width(cardWidth).Render(m.renderCollapsed(i, f)))
		}
		b.WriteString("\n")
	}

	if len(m.exercises) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderSummary())
	}

	return b.String()
}

func (m Model) label(text string, active bool) string {
	if active {
		return m.styles.FieldLabelActive.Render(text)
	}
	return m.styles.FieldLabel.Render(text)
}

func (m Model) renderCollapsed(i int, f exerciseForm) string {
	ex := f.exercise()
	name := ex.Name
	if strings.TrimSpace(name) == "" {
		name = fmt.Sprintf("Exercise %d", i+1)
	}
	return m.styles.WorkoutName.Render(name) + "  " +
		m.styles.Badge.Render(ex.Type.Label()) + "  " +
		m.styles.Muted.Render(ex.Summary())
}

func (m Model) renderExpanded(i int, f exerciseForm, active field) string {
	var rows []string
	row := func(fl field) {
		rows = append(rows, m.label(fieldLabels[fl], fl == active)+"\n"+f.inputs[fl].View())
	}

	row(fieldName)

	reps, duration := m.styles.Muted, m.styles.Muted
	if f.kind == domain.ExerciseDuration {
		duration = m.styles.Badge
	} else {
		reps = m.styles.Badge
	}
	rows = append(rows, m.styles.FieldLabel.Render("Exercise Type")+"\n"+
		reps.Render("Repetitions")+" "+duration.Render("Duration")+"  "+
		m.styles.Muted.Render("ctrl+t"))

	row(f.amountField())
	row(fieldSets)
	row(fieldRestSets)
	row(fieldRestExercise)
	row(fieldMedia)

	header := m.styles.Accent.Render(fmt.Sprintf("Exercise %d", i+1))
	return header + "\n" + strings.Join(rows, "\n")
}

func (m Model) renderSummary() string {
	exercises := m.Exercises()
	tile := func(value, label string) string {
		return m.styles.StatTile.Render(
			m.styles.StatValue.Render(value) + "\n" + m.styles.StatLabel.Render(label),
		)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		tile(strconv.Itoa(len(exercises)), "Total Exercises"),
		tile(strconv.Itoa(domain.TotalSets(exercises)), "Total Sets"),
		tile(fmt.Sprintf("~%d", domain.RoundMinutes(domain.PlannedSeconds(exercises))), "Estimated Minutes"),
	)
}
