package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmDialog is a confirmation dialog overlay with Yes/No options
type ConfirmDialog struct {
	id       string
	title    string
	message  string
	danger   bool
	styles   *Styles
	selected bool // true = Yes, false = No
}

// ConfirmResult represents the result of a confirmation dialog
type ConfirmResult struct {
	Confirmed bool
}

// NewConfirmDialog creates a confirmation dialog. id becomes the Key of the
// SelectionMsg it emits.
func NewConfirmDialog(s *Styles, id, title, message string) *ConfirmDialog {
	return &ConfirmDialog{
		id:      id,
		title:   title,
		message: message,
		styles:  s,
	}
}

// Destructive marks the message in the danger colour
func (c *ConfirmDialog) Destructive() *ConfirmDialog {
	c.danger = true
	return c
}

// ID returns the dialog identifier
func (c *ConfirmDialog) ID() string {
	return c.id
}

// Init initializes the dialog
func (c *ConfirmDialog) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (c *ConfirmDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		return c, selectCmd(c.id, ConfirmResult{Confirmed: true})

	case "n", "N", "esc":
		return c, selectCmd(c.id, ConfirmResult{Confirmed: false})

	case "enter":
		return c, selectCmd(c.id, ConfirmResult{Confirmed: c.selected})

	case "left", "h":
		c.selected = false

	case "right", "l", "tab":
		c.selected = true
	}

	return c, nil
}

// View renders the dialog
func (c *ConfirmDialog) View() string {
	var b strings.Builder

	if c.message != "" {
		msgStyle := c.styles.MenuItem
		if c.danger {
			msgStyle = c.styles.Danger
		}
		b.WriteString(msgStyle.Render(c.message))
		b.WriteString("\n\n")
	}

	yesStyle := c.styles.MenuItem
	noStyle := c.styles.MenuItem
	if c.selected {
		yesStyle = c.styles.MenuItemActive
	} else {
		noStyle = c.styles.MenuItemActive
	}

	b.WriteString(yesStyle.Render("[Y] Yes") + "    " + noStyle.Render("[N] No"))
	b.WriteString("\n\n")
	b.WriteString(c.styles.Footer.Render("← → / Tab: Switch • Enter: Confirm • Esc: Cancel"))

	return b.String()
}

// Title returns the dialog title
func (c *ConfirmDialog) Title() string {
	return c.title
}

// Size returns the dialog dimensions
func (c *ConfirmDialog) Size() (width, height int) {
	messageLines := len(strings.Split(c.message, "\n"))
	return 60, messageLines + 6
}
