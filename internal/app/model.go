// Package app contains the main application model and TEA implementation.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/riordanpawley/workouttimer/internal/config"
	"github.com/riordanpawley/workouttimer/internal/domain"
	"github.com/riordanpawley/workouttimer/internal/services/transfer"
	"github.com/riordanpawley/workouttimer/internal/services/workouts"
	"github.com/riordanpawley/workouttimer/internal/types"
	"github.com/riordanpawley/workouttimer/internal/ui/dashboard"
	"github.com/riordanpawley/workouttimer/internal/ui/editor"
	"github.com/riordanpawley/workouttimer/internal/ui/overlay"
	"github.com/riordanpawley/workouttimer/internal/ui/player"
	"github.com/riordanpawley/workouttimer/internal/ui/styles"
	"github.com/riordanpawley/workouttimer/internal/ui/toast"
)

// Re-export Toast type and constants for convenience
type Toast = toast.Toast
type ToastLevel = toast.Level

const (
	ToastInfo    = toast.LevelInfo
	ToastSuccess = toast.LevelSuccess
	ToastWarning = toast.LevelWarning
	ToastError   = toast.LevelError
)

// Overlay ids, used to route SelectionMsg results
const (
	overlayDelete     = "delete"
	overlayClear      = "clear"
	overlayExit       = "exit-session"
	overlayImportPath = "import-path"
	overlayImportMode = "import-mode"
)

// storeTimeout bounds every storage round trip made from the UI
const storeTimeout = 5 * time.Second

// Option configures a Model
type Option func(*Model)

// WithClock sets the time source for exports, completions and toasts
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithExportDir sets where export files are written
func WithExportDir(dir string) Option {
	return func(m *Model) { m.exportDir = dir }
}

// WithPlayerOptions passes options to every session view
func WithPlayerOptions(opts ...player.Option) Option {
	return func(m *Model) { m.playerOpts = opts }
}

// WithInfo sets the right-hand status bar text, such as the storage backend
func WithInfo(info string) Option {
	return func(m *Model) { m.info = info }
}

// Model is the main application state
type Model struct {
	service *workouts.Service

	view      types.View
	dashboard dashboard.Model
	editor    editor.Model
	player    player.Model

	overlayStack  *overlay.Stack
	pendingImport []byte

	toasts   []Toast
	toastTTL time.Duration

	width  int
	height int

	// styles and overlayStyles are shared with the sub-models and
	// rewritten in place when the theme changes
	styles        *styles.Styles
	overlayStyles *overlay.Styles

	config     *config.Config
	info       string
	exportDir  string
	playerOpts []player.Option
	now        func() time.Time
	logger     *slog.Logger
}

// New creates the application model over a workout service
func New(cfg *config.Config, service *workouts.Service, logger *slog.Logger, opts ...Option) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	st := styles.New(domain.ThemeDark)
	m := Model{
		service:       service,
		view:          types.ViewDashboard,
		dashboard:     dashboard.New(st),
		overlayStack:  overlay.NewStack(),
		toastTTL:      cfg.ToastDuration(),
		styles:        st,
		overlayStyles: overlay.New(st),
		config:        cfg,
		exportDir:     ".",
		now:           time.Now,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init returns the initial command for the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.dashboard.Init(),
		m.loadCmd(),
	)
}

// ActiveView returns the active screen
func (m Model) ActiveView() types.View {
	return m.view
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.overlayStack.IsEmpty() {
			return m, m.overlayStack.Update(msg)
		}
		return m.handleKey(msg)

	case loadedMsg:
		if msg.err != nil {
			m.addToast(ToastWarning, "Saved data could not be loaded; starting fresh")
		}
		m.applyTheme(m.service.Theme())
		m.refresh()
		return m, m.expireAfter()

	case expireToastsMsg:
		m.toasts = toast.Expire(m.toasts, m.now())
		return m, nil

	case overlay.CloseOverlayMsg:
		m.overlayStack.Pop()
		m.pendingImport = nil
		return m, nil

	case overlay.SelectionMsg:
		return m.handleSelection(msg)

	case editor.SaveMsg:
		return m.saveWorkout(msg)

	case editor.CancelMsg:
		m.view = types.ViewDashboard
		return m, nil

	case player.CompletedMsg:
		return m.recordCompletion(msg)

	case player.ExitRequestMsg:
		dialog := overlay.NewConfirmDialog(m.overlayStyles, overlayExit, "Exit Workout", player.ExitConfirmMessage).Destructive()
		return m, m.overlayStack.Push(dialog)

	case player.FinishedMsg:
		m.view = types.ViewDashboard
		return m, nil

	case player.TickMsg:
		if m.view != types.ViewSession {
			return m, nil
		}
		var cmd tea.Cmd
		m.player, cmd = m.player.Update(msg)
		return m, cmd
	}

	// Anything else (spinner ticks, cursor blinks) goes to the active screen
	return m.updateActive(msg)
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case types.ViewEditor:
		m.editor, cmd = m.editor.Update(msg)
	case types.ViewSession:
		m.player, cmd = m.player.Update(msg)
	default:
		m.dashboard, cmd = m.dashboard.Update(msg)
	}
	return m, cmd
}

// handleKey routes keys to the active screen
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.view {
	case types.ViewEditor, types.ViewSession:
		return m.updateActive(msg)
	default:
		return m.handleDashboardKey(msg)
	}
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.dashboard.Loading() {
		if msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	}

	selected, hasSelection := m.dashboard.Selected()

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "j", "down":
		m.dashboard.MoveDown()

	case "k", "up":
		m.dashboard.MoveUp()

	case "enter":
		if !hasSelection {
			return m, nil
		}
		if !selected.Startable() {
			m.addToast(ToastWarning, "This workout has no exercises")
			return m, m.expireAfter()
		}
		m.player = player.New(m.styles, selected, m.playerOpts...)
		m.player.SetSize(m.width, m.bodyHeight())
		m.view = types.ViewSession
		return m, m.player.Init()

	case "n":
		return m.openEditor(nil)

	case "e":
		if hasSelection {
			return m.openEditor(&selected)
		}

	case "d":
		if hasSelection {
			dialog := overlay.NewConfirmDialog(m.overlayStyles, overlayDelete, "Delete Workout",
				fmt.Sprintf("Delete %q? This action cannot be undone.", selected.DisplayName())).Destructive()
			return m, m.overlayStack.Push(dialog)
		}

	case "i":
		prompt := overlay.NewInputPrompt(m.overlayStyles, overlayImportPath, "Import Workouts",
			"Path to a workout JSON file", m.exportDir+string(filepath.Separator))
		return m, m.overlayStack.Push(prompt)

	case "x":
		return m.export(transfer.FormatJSON)

	case "m":
		return m.export(transfer.FormatMarkdown)

	case "C":
		if m.service.Len() == 0 {
			return m, nil
		}
		dialog := overlay.NewConfirmDialog(m.overlayStyles, overlayClear, "Clear All Workouts",
			"Are you sure you want to delete all workouts? This action cannot be undone.").Destructive()
		return m, m.overlayStack.Push(dialog)

	case "t":
		ctx, cancel := m.storeContext()
		defer cancel()
		theme, err := m.service.ToggleTheme(ctx)
		m.applyTheme(theme)
		if err != nil {
			m.addToast(ToastError, "Theme could not be saved")
			return m, m.expireAfter()
		}

	case "?":
		return m, m.overlayStack.Push(overlay.NewHelpOverlay(m.overlayStyles))
	}

	return m, nil
}

func (m Model) openEditor(w *domain.Workout) (tea.Model, tea.Cmd) {
	m.editor = editor.New(m.styles, w)
	m.editor.SetSize(m.width, m.bodyHeight())
	m.view = types.ViewEditor
	return m, m.editor.Init()
}

// handleSelection handles overlay results
func (m Model) handleSelection(msg overlay.SelectionMsg) (tea.Model, tea.Cmd) {
	switch msg.Key {
	case overlayImportPath:
		result, _ := msg.Value.(overlay.PromptResult)
		data, err := os.ReadFile(result.Value)
		if err != nil {
			m.overlayStack.Pop()
			m.logger.Error("failed to read import file", "path", result.Value, "error", err)
			m.addToast(ToastError, "Error reading file. Please check the JSON format.")
			return m, m.expireAfter()
		}
		m.pendingImport = data
		return m, m.overlayStack.Replace(overlay.ImportModeMenu(m.overlayStyles, overlayImportMode))

	case overlayImportMode:
		m.overlayStack.Pop()
		action, _ := msg.Value.(overlay.Action)
		mode := workouts.ImportAppend
		if action.Key == "r" {
			mode = workouts.ImportReplace
		}
		data := m.pendingImport
		m.pendingImport = nil
		return m.importWorkouts(data, mode)
	}

	m.overlayStack.Pop()
	result, _ := msg.Value.(overlay.ConfirmResult)
	if !result.Confirmed {
		return m, nil
	}

	ctx, cancel := m.storeContext()
	defer cancel()

	switch msg.Key {
	case overlayDelete:
		selected, ok := m.dashboard.Selected()
		if !ok {
			return m, nil
		}
		if err := m.service.Delete(ctx, selected.ID); err != nil {
			m.addToast(ToastError, "Workout could not be deleted")
		} else {
			m.addToast(ToastSuccess, fmt.Sprintf("Deleted %s", selected.DisplayName()))
		}
		m.refresh()

	case overlayClear:
		if err := m.service.Clear(ctx); err != nil {
			m.addToast(ToastError, "Workouts could not be cleared")
		} else {
			m.addToast(ToastSuccess, transfer.ClearedMessage)
		}
		m.refresh()

	case overlayExit:
		m.view = types.ViewDashboard
		return m, nil
	}

	return m, m.expireAfter()
}

func (m Model) saveWorkout(msg editor.SaveMsg) (tea.Model, tea.Cmd) {
	ctx, cancel := m.storeContext()
	defer cancel()

	var (
		saved domain.Workout
		err   error
	)
	if msg.ID == "" {
		saved, err = m.service.Add(ctx, msg.Name, msg.Exercises)
	} else {
		saved, err = m.service.Update(ctx, msg.ID, msg.Name, msg.Exercises)
	}

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyName):
			m.editor.SetError(editor.MsgNameRequired)
		case errors.Is(err, domain.ErrNoExercises):
			m.editor.SetError("Please add at least one named exercise")
		default:
			m.editor.SetError("Workout could not be saved: " + err.Error())
		}
		return m, nil
	}

	m.view = types.ViewDashboard
	m.refresh()
	m.dashboard.Select(saved.ID)
	m.addToast(ToastSuccess, fmt.Sprintf("Saved %s", saved.DisplayName()))
	return m, m.expireAfter()
}

func (m Model) recordCompletion(msg player.CompletedMsg) (tea.Model, tea.Cmd) {
	ctx, cancel := m.storeContext()
	defer cancel()

	if _, err := m.service.RecordCompletion(ctx, msg.WorkoutID, msg.At); err != nil {
		m.logger.Warn("failed to record completed session", "workout", msg.WorkoutID, "error", err)
	}
	m.refresh()
	m.addToast(ToastSuccess, "Workout complete! Great job!")
	return m, m.expireAfter()
}

func (m Model) importWorkouts(data []byte, mode workouts.ImportMode) (tea.Model, tea.Cmd) {
	ctx, cancel := m.storeContext()
	defer cancel()

	n, err := m.service.Import(ctx, data, mode)
	if err != nil {
		m.addToast(ToastError, transfer.ImportErrorMessage(err))
	} else {
		m.addToast(ToastSuccess, transfer.ImportedMessage(n))
	}
	m.refresh()
	return m, m.expireAfter()
}

func (m Model) export(format transfer.Format) (tea.Model, tea.Cmd) {
	list := m.service.List()
	now := m.now()

	data, err := transfer.Export(list, format, now)
	if err == nil {
		path := filepath.Join(m.exportDir, transfer.Filename(format, now))
		if err = os.WriteFile(path, data, 0o644); err == nil {
			m.logger.Info("exported workouts", "path", path, "count", len(list))
			m.addToast(ToastSuccess, transfer.ExportedMessage(len(list), format)+" → "+path)
			return m, m.expireAfter()
		}
	}

	m.logger.Error("export failed", "format", format, "error", err)
	m.addToast(ToastError, transfer.ExportErrorMessage(err, format))
	return m, m.expireAfter()
}

// refresh copies the service state into the dashboard
func (m *Model) refresh() {
	m.dashboard.SetWorkouts(m.service.List(), m.service.Stats())
}

// applyTheme rewrites the shared styles in place
func (m *Model) applyTheme(theme domain.Theme) {
	*m.styles = *styles.New(theme)
	*m.overlayStyles = *overlay.New(m.styles)
}

func (m *Model) resize() {
	h := m.bodyHeight()
	m.dashboard.SetSize(m.width, h)
	m.editor.SetSize(m.width, h)
	m.player.SetSize(m.width, h)
}

// bodyHeight is the height left above the status bar
func (m Model) bodyHeight() int {
	return max(m.height-1, 0)
}

func (m Model) storeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}

// addToast queues a toast that expires after the configured duration
func (m *Model) addToast(level ToastLevel, message string) {
	m.logger.Debug("toast", "level", level, "message", message)
	m.toasts = toast.Push(m.toasts, level, message, m.now(), m.toastTTL)
}
