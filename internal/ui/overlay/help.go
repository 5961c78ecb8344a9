package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyBinding represents a single keybinding entry
type KeyBinding struct {
	Key         string
	Description string
}

// KeyCategory represents a category of keybindings
type KeyCategory struct {
	Name     string
	Bindings []KeyBinding
}

// HelpOverlay displays keybinding reference
type HelpOverlay struct {
	styles     *Styles
	scroll     int
	maxScroll  int
	viewHeight int
}

// NewHelpOverlay creates a new help overlay
func NewHelpOverlay(s *Styles) *HelpOverlay {
	return &HelpOverlay{
		styles:     s,
		viewHeight: 20,
	}
}

// Init initializes the overlay
func (h *HelpOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (h *HelpOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	switch keyMsg.String() {
	case "esc", "q", "?":
		return h, closeCmd
	case "j", "down":
		if h.scroll < h.maxScroll {
			h.scroll++
		}
	case "k", "up":
		if h.scroll > 0 {
			h.scroll--
		}
	case "g":
		h.scroll = 0
	case "G":
		h.scroll = h.maxScroll
	}

	return h, nil
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	var content strings.Builder
	for i, cat := range Categories() {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(h.styles.MenuHeader.Render(cat.Name + ":"))
		content.WriteString("\n")

		for _, binding := range cat.Bindings {
			key := h.styles.MenuKey.Width(10).Render(binding.Key)
			content.WriteString("  " + key + "  " + h.styles.MenuItem.Render(binding.Description))
			content.WriteString("\n")
		}
	}

	lines := strings.Split(strings.TrimRight(content.String(), "\n"), "\n")
	h.maxScroll = max(0, len(lines)-h.viewHeight)
	h.scroll = min(h.scroll, h.maxScroll)

	end := min(h.scroll+h.viewHeight, len(lines))
	result := strings.Join(lines[h.scroll:end], "\n")

	if h.maxScroll > 0 {
		result += "\n" + h.styles.Footer.Render("[j/k to scroll, g/G to jump]")
	}

	return result
}

// Title returns the overlay title
func (h *HelpOverlay) Title() string {
	return "Help"
}

// Size returns the overlay dimensions
func (h *HelpOverlay) Size() (width, height int) {
	return 56, h.viewHeight + 4
}

// Categories returns the keybindings of every screen
func Categories() []KeyCategory {
	return []KeyCategory{
		{
			Name: "Dashboard",
			Bindings: []KeyBinding{
				{Key: "j/k", Description: "Select workout"},
				{Key: "enter", Description: "Start workout"},
				{Key: "n", Description: "New workout"},
				{Key: "e", Description: "Edit workout"},
				{Key: "d", Description: "Delete workout"},
				{Key: "i", Description: "Import workouts from a file"},
				{Key: "x", Description: "Export workouts as JSON"},
				{Key: "m", Description: "Export workouts as Markdown"},
				{Key: "?", Description: "Toggle this help"},
				{Key: "C", Description: "Clear all data"},
				{Key: "t", Description: "Toggle light/dark theme"},
				{Key: "q", Description: "Quit"},
			},
		},
		{
			Name: "Editor",
			Bindings: []KeyBinding{
				{Key: "tab", Description: "Next field"},
				{Key: "shift+tab", Description: "Previous field"},
				{Key: "ctrl+n", Description: "Add exercise"},
				{Key: "ctrl+d", Description: "Remove exercise"},
				{Key: "ctrl+t", Description: "Switch reps/duration"},
				{Key: "ctrl+s", Description: "Save workout"},
				{Key: "esc", Description: "Cancel"},
			},
		},
		{
			Name: "Workout",
			Bindings: []KeyBinding{
				{Key: "enter", Description: "Start, or complete a reps set"},
				{Key: "p/space", Description: "Pause or resume"},
				{Key: "s", Description: "Skip to next phase"},
				{Key: "esc", Description: "Exit workout"},
			},
		},
	}
}
