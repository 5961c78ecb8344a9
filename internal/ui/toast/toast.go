// Package toast renders transient status messages, the terminal version of
// the dashboard's status line.
package toast

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/workouttimer/internal/ui/styles"
)

// MaxVisible caps how many toasts are stacked at once
const MaxVisible = 3

// Level is the severity of a toast
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Toast is one status message and the moment it disappears
type Toast struct {
	Level   Level
	Message string
	Expires time.Time
}

// Active reports whether the toast is still shown at now
func (t Toast) Active(now time.Time) bool {
	return now.Before(t.Expires)
}

// ToastRenderer handles rendering of toast notifications
type ToastRenderer struct {
	styles *styles.Styles
}

// New creates a new ToastRenderer with the given styles
func New(styles *styles.Styles) *ToastRenderer {
	return &ToastRenderer{
		styles: styles,
	}
}

// Render renders a stack of toasts, right aligned.
// Returns empty string if no toasts to display
func (r *ToastRenderer) Render(toasts []Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}

	toastWidth := min(max(width/3, 24), 48)

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, r.styleForLevel(t.Level).Width(toastWidth).Render(t.Message))
	}

	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

// styleForLevel returns the appropriate style for a toast level
func (r *ToastRenderer) styleForLevel(level Level) lipgloss.Style {
	switch level {
	case LevelSuccess:
		return r.styles.ToastSuccess
	case LevelWarning:
		return r.styles.ToastWarning
	case LevelError:
		return r.styles.ToastError
	default:
		return r.styles.ToastInfo
	}
}

// Push appends a toast that expires after ttl, dropping the oldest beyond
// MaxVisible
func Push(toasts []Toast, level Level, message string, now time.Time, ttl time.Duration) []Toast {
	toasts = append(toasts, Toast{
		Level:   level,
		Message: message,
		Expires: now.Add(ttl),
	})
	if len(toasts) > MaxVisible {
		toasts = toasts[len(toasts)-MaxVisible:]
	}
	return toasts
}

// Expire drops toasts whose time has passed
func Expire(toasts []Toast, now time.Time) []Toast {
	active := toasts[:0]
	for _, t := range toasts {
		if t.Active(now) {
			active = append(active, t)
		}
	}
	return active
}
