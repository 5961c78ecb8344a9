package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Message types for async operations

type loadedMsg struct {
	err error
}

type expireToastsMsg struct{}

// loadCmd reads saved workouts and theme from storage
func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.storeContext()
		defer cancel()
		return loadedMsg{err: m.service.Load(ctx)}
	}
}

// expireAfter schedules a toast sweep once the newest toast has expired
func (m Model) expireAfter() tea.Cmd {
	if len(m.toasts) == 0 {
		return nil
	}
	return tea.Tick(m.toastTTL+10*time.Millisecond, func(time.Time) tea.Msg {
		return expireToastsMsg{}
	})
}
