package overlay

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/riordanpawley/workouttimer/internal/ui/styles"
)

// Styles holds all overlay-specific styles
type Styles struct {
	// Overlay is the base overlay container style
	Overlay lipgloss.Style
	// Title is the overlay title style
	Title lipgloss.Style
	// MenuItem is the default menu item style
	MenuItem lipgloss.Style
	// MenuItemActive is the highlighted/selected menu item style
	MenuItemActive lipgloss.Style
	// MenuItemDisabled is the disabled menu item style
	MenuItemDisabled lipgloss.Style
	// MenuKey is the style for keybinding hints
	MenuKey lipgloss.Style
	// Separator is the style for divider lines
	Separator lipgloss.Style
	// Footer is the style for overlay footer text
	Footer lipgloss.Style
	// MenuHeader is the style for menu section headers
	MenuHeader lipgloss.Style
	// Danger marks destructive confirmations
	Danger lipgloss.Style
}

// New derives overlay styles from the active theme's styles
func New(s *styles.Styles) *Styles {
	p := s.Palette
	return &Styles{
		Overlay:        s.Overlay,
		Title:          s.OverlayTitle,
		MenuItem:       s.MenuItem,
		MenuItemActive: s.MenuItemActive,

		MenuItemDisabled: lipgloss.NewStyle().
			Foreground(p.Overlay0),

		MenuKey:   s.MenuKey,
		Separator: s.Separator,

		Footer: lipgloss.NewStyle().
			Foreground(p.Subtext0).
			MarginTop(1),

		MenuHeader: lipgloss.NewStyle().
			Foreground(p.Subtext1).
			Bold(true),

		Danger: lipgloss.NewStyle().
			Foreground(p.Red).
			Bold(true),
	}
}
