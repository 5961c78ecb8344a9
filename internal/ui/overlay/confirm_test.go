package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/workouttimer/internal/domain"
	"github.com/riordanpawley/workouttimer/internal/ui/styles"
)

func testStyles() *Styles {
	return New(styles.New(domain.ThemeDark))
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func selection(t *testing.T, cmd tea.Cmd) SelectionMsg {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(SelectionMsg)
	require.True(t, ok, "expected SelectionMsg")
	return msg
}

func TestNewConfirmDialog(t *testing.T) {
	dialog := NewConfirmDialog(testStyles(), "delete", "Delete Workout", "Are you sure you want to delete this workout?")

	assert.Equal(t, "delete", dialog.ID())
	assert.Equal(t, "Delete Workout", dialog.Title())
	assert.False(t, dialog.selected, "default selection is No")

	width, height := dialog.Size()
	assert.Equal(t, 60, width)
	assert.GreaterOrEqual(t, height, 6)
}

func TestConfirmDialog_Keys(t *testing.T) {
	tests := []struct {
		name      string
		keys      []string
		confirmed bool
	}{
		{"lowercase y", []string{"y"}, true},
		{"uppercase Y", []string{"Y"}, true},
		{"n", []string{"n"}, false},
		{"esc", []string{"esc"}, false},
		{"enter defaults to no", []string{"enter"}, false},
		{"tab then enter", []string{"tab", "enter"}, true},
		{"tab left enter", []string{"tab", "left", "enter"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialog := NewConfirmDialog(testStyles(), "clear", "Clear", "Really?")

			var cmd tea.Cmd
			for _, k := range tt.keys {
				_, cmd = dialog.Update(keyMsg(k))
			}

			msg := selection(t, cmd)
			assert.Equal(t, "clear", msg.Key)
			assert.Equal(t, ConfirmResult{Confirmed: tt.confirmed}, msg.Value)
		})
	}
}

func TestConfirmDialog_View(t *testing.T) {
	dialog := NewConfirmDialog(testStyles(), "exit", "Exit Workout", "Your progress will be lost.").Destructive()

	view := dialog.View()
	assert.Contains(t, view, "Your progress will be lost.")
	assert.Contains(t, view, "[Y] Yes")
	assert.Contains(t, view, "[N] No")
}

func TestConfirmDialog_IgnoresOtherMessages(t *testing.T) {
	dialog := NewConfirmDialog(testStyles(), "x", "T", "M")
	_, cmd := dialog.Update(tea.WindowSizeMsg{Width: 10})
	assert.Nil(t, cmd)
}
