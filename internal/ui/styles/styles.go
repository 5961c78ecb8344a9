package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/workouttimer/internal/core/session"
	"github.com/riordanpawley/workouttimer/internal/domain"
)

// Styles holds all the UI styles
type Styles struct {
	Theme   domain.Theme
	Palette Palette

	// Header
	AppTitle    lipgloss.Style
	AppSubtitle lipgloss.Style
	Muted       lipgloss.Style
	Accent      lipgloss.Style

	// Dashboard
	Card        lipgloss.Style
	CardActive  lipgloss.Style
	WorkoutName lipgloss.Style
	StatTile    lipgloss.Style
	StatValue   lipgloss.Style
	StatLabel   lipgloss.Style

	// Editor
	FieldLabel       lipgloss.Style
	FieldLabelActive lipgloss.Style
	ExerciseCard     lipgloss.Style
	ExerciseActive   lipgloss.Style
	Badge            lipgloss.Style
	ErrorText        lipgloss.Style

	// Session
	Timer        lipgloss.Style
	PhaseWarmup  lipgloss.Style
	PhaseWork    lipgloss.Style
	PhaseRest    lipgloss.Style
	PhaseDone    lipgloss.Style
	SessionPanel lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusMode lipgloss.Style
	StatusHint lipgloss.Style
	StatusInfo lipgloss.Style

	// Overlays
	Overlay        lipgloss.Style
	OverlayTitle   lipgloss.Style
	MenuItem       lipgloss.Style
	MenuItemActive lipgloss.Style
	MenuKey        lipgloss.Style
	Separator      lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
}

// New creates a Styles instance for the theme: Catppuccin Macchiato for
// dark, Latte for light
func New(theme domain.Theme) *Styles {
	p := PaletteFor(theme)

	toast := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(c).
			Foreground(c).
			Padding(0, 1)
	}

	return &Styles{
		Theme:   theme,
		Palette: p,

		AppTitle: lipgloss.NewStyle().
			Foreground(p.Mauve).
			Bold(true),

		AppSubtitle: lipgloss.NewStyle().
			Foreground(p.Subtext0),

		Muted: lipgloss.NewStyle().
			Foreground(p.Overlay1),

		Accent: lipgloss.NewStyle().
			Foreground(p.Peach).
			Bold(true),

		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Surface1).
			Padding(0, 1),

		CardActive: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Lavender).
			Padding(0, 1),

		WorkoutName: lipgloss.NewStyle().
			Foreground(p.Text).
			Bold(true),

		StatTile: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Surface1).
			Padding(0, 2).
			Align(lipgloss.Center),

		StatValue: lipgloss.NewStyle().
			Foreground(p.Peach).
			Bold(true),

		StatLabel: lipgloss.NewStyle().
			Foreground(p.Subtext0),

		FieldLabel: lipgloss.NewStyle().
			Foreground(p.Subtext0),

		FieldLabelActive: lipgloss.NewStyle().
			Foreground(p.Blue).
			Bold(true),

		ExerciseCard: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Surface1).
			Padding(0, 1),

		ExerciseActive: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Mauve).
			Padding(0, 1),

		Badge: lipgloss.NewStyle().
			Foreground(p.Base).
			Background(p.Teal).
			Padding(0, 1).
			Bold(true),

		ErrorText: lipgloss.NewStyle().
			Foreground(p.Red),

		Timer: lipgloss.NewStyle().
			Foreground(p.Text).
			Bold(true).
			Padding(1, 0),

		PhaseWarmup: lipgloss.NewStyle().
			Foreground(p.Yellow).
			Bold(true),

		PhaseWork: lipgloss.NewStyle().
			Foreground(p.Peach).
			Bold(true),

		PhaseRest: lipgloss.NewStyle().
			Foreground(p.Blue).
			Bold(true),

		PhaseDone: lipgloss.NewStyle().
			Foreground(p.Green).
			Bold(true),

		SessionPanel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Surface2).
			Padding(1, 4).
			Align(lipgloss.Center),

		StatusBar: lipgloss.NewStyle().
			Background(p.Surface0).
			Foreground(p.Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(p.Blue).
			Foreground(p.Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(p.Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(p.Subtext0),

		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Surface2).
			Background(p.Base).
			Padding(1, 2),

		OverlayTitle: lipgloss.NewStyle().
			Foreground(p.Text).
			Bold(true).
			MarginBottom(1),

		MenuItem: lipgloss.NewStyle().
			Foreground(p.Text),

		MenuItemActive: lipgloss.NewStyle().
			Foreground(p.Blue).
			Bold(true),

		MenuKey: lipgloss.NewStyle().
			Foreground(p.Yellow).
			Bold(true),

		Separator: lipgloss.NewStyle().
			Foreground(p.Surface1),

		ToastInfo:    toast(p.Blue),
		ToastSuccess: toast(p.Green),
		ToastWarning: toast(p.Yellow),
		ToastError:   toast(p.Red),
	}
}

// Phase returns the colour style for a session phase
func (s *Styles) Phase(phase session.Phase) lipgloss.Style {
	switch phase {
	case session.PhaseWarmup:
		return s.PhaseWarmup
	case session.PhaseExercise:
		return s.PhaseWork
	case session.PhaseRest:
		return s.PhaseRest
	case session.PhaseComplete:
		return s.PhaseDone
	default:
		return s.Muted
	}
}

// PhaseColor returns the raw colour for a session phase, used for
// progress bar gradients
func (s *Styles) PhaseColor(phase session.Phase) lipgloss.Color {
	switch phase {
	case session.PhaseWarmup:
		return s.Palette.Yellow
	case session.PhaseExercise:
		return s.Palette.Peach
	case session.PhaseRest:
		return s.Palette.Blue
	default:
		return s.Palette.Green
	}
}
