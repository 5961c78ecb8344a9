package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockOverlay is a value-type overlay so the stack has to store the
// model returned from Update
type mockOverlay struct {
	title   string
	value   string
	updates int
}

func (m mockOverlay) Init() tea.Cmd { return nil }

func (m mockOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.updates++
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEnter {
		return m, selectCmd("test", m.value)
	}
	return m, nil
}

func (m mockOverlay) View() string              { return m.title }
func (m mockOverlay) Title() string             { return m.title }
func (m mockOverlay) Size() (width, height int) { return 40, 10 }

func TestStack_PushPop(t *testing.T) {
	stack := NewStack()
	assert.True(t, stack.IsEmpty())
	assert.Nil(t, stack.Current())
	assert.Nil(t, stack.Pop())

	stack.Push(mockOverlay{title: "first"})
	stack.Push(mockOverlay{title: "second"})
	assert.Equal(t, 2, stack.Len())
	assert.Equal(t, "second", stack.Current().Title())

	popped := stack.Pop()
	require.NotNil(t, popped)
	assert.Equal(t, "second", popped.Title())
	assert.Equal(t, "first", stack.Current().Title())

	stack.Clear()
	assert.True(t, stack.IsEmpty())
}

func TestStack_Replace(t *testing.T) {
	stack := NewStack()
	stack.Push(mockOverlay{title: "base"})
	stack.Push(mockOverlay{title: "prompt"})

	stack.Replace(mockOverlay{title: "menu"})

	assert.Equal(t, 2, stack.Len())
	assert.Equal(t, "menu", stack.Current().Title())
}

func TestStack_UpdateStoresNewModel(t *testing.T) {
	stack := NewStack()
	assert.Nil(t, stack.Update(tea.KeyMsg{Type: tea.KeyEnter}), "empty stack ignores messages")

	stack.Push(mockOverlay{title: "m", value: "result"})
	stack.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Equal(t, 1, stack.Current().(mockOverlay).updates)

	cmd := stack.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := selection(t, cmd)
	assert.Equal(t, "test", msg.Key)
	assert.Equal(t, "result", msg.Value)
}

func TestStack_CloseMsgPops(t *testing.T) {
	stack := NewStack()
	stack.Push(mockOverlay{title: "first"})
	stack.Push(mockOverlay{title: "second"})

	assert.Nil(t, stack.Update(CloseOverlayMsg{}))
	assert.Equal(t, "first", stack.Current().Title())

	stack.Update(CloseOverlayMsg{})
	assert.True(t, stack.IsEmpty())
}
