package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/workouttimer/internal/types"
	"github.com/riordanpawley/workouttimer/internal/ui/statusbar"
	"github.com/riordanpawley/workouttimer/internal/ui/toast"
)

// View renders the current state as a string
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var main string
	switch m.view {
	case types.ViewEditor:
		main = m.editor.View()
	case types.ViewSession:
		main = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.player.View())
	default:
		main = m.dashboard.View()
	}

	// Overlays are modal and take over the body
	if current := m.overlayStack.Current(); current != nil {
		overlayView := current.View()
		if title := current.Title(); title != "" {
			overlayView = lipgloss.JoinVertical(lipgloss.Left, m.styles.OverlayTitle.Render(title), overlayView)
		}
		w, _ := current.Size()
		overlayView = m.styles.Overlay.Width(w).Render(overlayView)
		main = lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, overlayView)
	}

	body := m.bodyHeight()
	if len(m.toasts) > 0 {
		toastView := toast.New(m.styles).Render(m.toasts, m.width)
		toastView = lipgloss.PlaceHorizontal(m.width, lipgloss.Right, toastView)
		toastHeight := lipgloss.Height(toastView)
		main = clip(main, body-toastHeight) + "\n" + toastView
	}
	main = clip(main, body)
	main = lipgloss.PlaceVertical(body, lipgloss.Top, main)

	sb := statusbar.New(m.view, m.width, m.styles).WithInfo(m.info)
	return lipgloss.JoinVertical(lipgloss.Left, main, sb.Render())
}

// clip keeps at most n lines
func clip(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n")
}
