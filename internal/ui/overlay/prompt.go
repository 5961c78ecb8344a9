package overlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PromptResult carries the submitted text of an InputPrompt
type PromptResult struct {
	Value string
}

// InputPrompt asks for a single line of text, such as a file path
type InputPrompt struct {
	id     string
	title  string
	label  string
	input  textinput.Model
	err    string
	styles *Styles
}

// NewInputPrompt creates a prompt. id becomes the Key of the SelectionMsg
// emitted on enter.
func NewInputPrompt(s *Styles, id, title, label, initial string) *InputPrompt {
	ti := textinput.New()
	ti.Placeholder = "path/to/workouts.json"
	ti.CharLimit = 1024
	ti.Width = 56
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Focus()

	return &InputPrompt{
		id:     id,
		title:  title,
		label:  label,
		input:  ti,
		styles: s,
	}
}

// Value returns the current text
func (p *InputPrompt) Value() string {
	return p.input.Value()
}

// Init initializes the overlay
func (p *InputPrompt) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (p *InputPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return p, closeCmd
		case "enter":
			value := strings.TrimSpace(p.input.Value())
			if value == "" {
				p.err = "A path is required"
				return p, nil
			}
			return p, selectCmd(p.id, PromptResult{Value: value})
		}
	}

	p.err = ""
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// View renders the prompt
func (p *InputPrompt) View() string {
	var b strings.Builder

	if p.label != "" {
		b.WriteString(p.styles.MenuHeader.Render(p.label))
		b.WriteString("\n")
	}
	b.WriteString(p.input.View())
	b.WriteString("\n")

	if p.err != "" {
		b.WriteString(p.styles.Danger.Render(p.err))
		b.WriteString("\n")
	}

	hints := []string{
		p.styles.MenuKey.Render("Enter") + " " + p.styles.Footer.Render("Confirm"),
		p.styles.MenuKey.Render("Esc") + " " + p.styles.Footer.Render("Cancel"),
	}
	b.WriteString(p.styles.Footer.Render(strings.Join(hints, " • ")))

	return b.String()
}

// Title returns the overlay title
func (p *InputPrompt) Title() string {
	return p.title
}

// Size returns the overlay dimensions
func (p *InputPrompt) Size() (width, height int) {
	return 64, 7
}
