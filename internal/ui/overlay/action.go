package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Action represents a menu action
type Action struct {
	Key     string
	Label   string
	Enabled bool
}

// Separator returns a disabled divider row
func Separator() Action {
	return Action{Label: "───────────────────"}
}

// ActionMenu is a small keyed menu. Choosing an action emits a
// SelectionMsg whose Key is the menu id and whose Value is the Action.
type ActionMenu struct {
	id      string
	title   string
	actions []Action
	cursor  int
	styles  *Styles
}

// NewActionMenu creates a menu over the given actions
func NewActionMenu(s *Styles, id, title string, actions []Action) *ActionMenu {
	m := &ActionMenu{
		id:      id,
		title:   title,
		actions: actions,
		cursor:  -1,
		styles:  s,
	}
	m.moveCursorDown()
	return m
}

// ImportModeMenu asks how imported workouts combine with the saved ones
func ImportModeMenu(s *Styles, id string) *ActionMenu {
	return NewActionMenu(s, id, "Import Workouts", []Action{
		{Key: "a", Label: "Add to my workouts", Enabled: true},
		{Key: "r", Label: "Replace all workouts", Enabled: true},
	})
}

// Init initializes the menu
func (m *ActionMenu) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *ActionMenu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc", "q":
		return m, closeCmd
	case "j", "down":
		m.moveCursorDown()
		return m, nil
	case "k", "up":
		m.moveCursorUp()
		return m, nil
	case "enter":
		return m, m.selectCurrentAction()
	default:
		return m, m.selectByKey(keyMsg.String())
	}
}

// View renders the menu
func (m *ActionMenu) View() string {
	var b strings.Builder

	for i, action := range m.actions {
		if action.Key == "" {
			b.WriteString(m.styles.Separator.Render(action.Label))
			b.WriteString("\n")
			continue
		}

		style, keyStyle := m.styles.MenuItem, m.styles.MenuKey
		if !action.Enabled {
			style = m.styles.MenuItemDisabled
			keyStyle = m.styles.MenuItemDisabled
		} else if i == m.cursor {
			style = m.styles.MenuItemActive
		}

		b.WriteString(keyStyle.Render("["+action.Key+"]") + " " + style.Render(action.Label))
		b.WriteString("\n")
	}

	return b.String()
}

// Title returns the overlay title
func (m *ActionMenu) Title() string {
	return m.title
}

// Size returns the overlay dimensions
func (m *ActionMenu) Size() (width, height int) {
	return 40, len(m.actions) + 4
}

// moveCursorDown moves the cursor to the next enabled action
func (m *ActionMenu) moveCursorDown() {
	for i := 1; i <= len(m.actions); i++ {
		next := (m.cursor + i + len(m.actions)) % len(m.actions)
		if m.actions[next].Enabled && m.actions[next].Key != "" {
			m.cursor = next
			return
		}
	}
}

// moveCursorUp moves the cursor to the previous enabled action
func (m *ActionMenu) moveCursorUp() {
	for i := 1; i <= len(m.actions); i++ {
		prev := ((m.cursor-i)%len(m.actions) + len(m.actions)) % len(m.actions)
		if m.actions[prev].Enabled && m.actions[prev].Key != "" {
			m.cursor = prev
			return
		}
	}
}

// selectCurrentAction selects the action at the cursor
func (m *ActionMenu) selectCurrentAction() tea.Cmd {
	if m.cursor < 0 || m.cursor >= len(m.actions) {
		return nil
	}
	action := m.actions[m.cursor]
	if !action.Enabled || action.Key == "" {
		return nil
	}
	return selectCmd(m.id, action)
}

// selectByKey selects an action by its key binding
func (m *ActionMenu) selectByKey(key string) tea.Cmd {
	for _, action := range m.actions {
		if action.Key == key && action.Enabled {
			return selectCmd(m.id, action)
		}
	}
	return nil
}
