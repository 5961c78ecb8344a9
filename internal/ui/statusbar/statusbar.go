package statusbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/workouttimer/internal/types"
	"github.com/riordanpawley/workouttimer/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	view   types.View
	width  int
	info   string
	styles *styles.Styles
}

// New creates a new StatusBar with the given view, width, and styles
func New(view types.View, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		view:   view,
		width:  width,
		styles: styles,
	}
}

// WithInfo sets right-aligned text such as the storage backend
func (sb StatusBar) WithInfo(info string) StatusBar {
	sb.info = info
	return sb
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	viewBadge := sb.styles.StatusMode.Render(" " + sb.view.String() + " ")

	hints := GetHints(sb.view)
	content := viewBadge
	if hints != "" {
		separator := sb.styles.StatusHint.Render(" │ ")
		content = lipgloss.JoinHorizontal(lipgloss.Left, viewBadge, separator, sb.styles.StatusHint.Render(hints))
	}

	if sb.info != "" {
		info := sb.styles.StatusInfo.Render(sb.info)
		// StatusBar pads one cell on each side
		gap := sb.width - 2 - lipgloss.Width(content) - lipgloss.Width(info)
		if gap > 0 {
			content = lipgloss.JoinHorizontal(lipgloss.Left, content, lipgloss.NewStyle().Width(gap).Render(""), info)
		}
	}

	return sb.styles.StatusBar.Width(sb.width).Render(content)
}
