// Package overlay provides the modal dialogs stacked over the main views:
// confirmations, text prompts, small menus and the help screen.
package overlay

import tea "github.com/charmbracelet/bubbletea"

// Overlay represents a modal overlay component
type Overlay interface {
	tea.Model
	Title() string
	Size() (width, height int)
}

// CloseOverlayMsg signals that the overlay should be closed
type CloseOverlayMsg struct{}

// SelectionMsg is sent when an overlay produces a result. Key names the
// overlay that produced it so the owner can route the value.
type SelectionMsg struct {
	Key   string
	Value any
}

func selectCmd(key string, value any) tea.Cmd {
	return func() tea.Msg {
		return SelectionMsg{Key: key, Value: value}
	}
}

func closeCmd() tea.Msg {
	return CloseOverlayMsg{}
}
