package overlay

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/riordanpawley/workouttimer/internal/domain"
	"github.com/riordanpawley/workouttimer/internal/ui/styles"
)

func TestNewStyles(t *testing.T) {
	for _, theme := range []domain.Theme{domain.ThemeDark, domain.ThemeLight} {
		s := New(styles.New(theme))

		for name, style := range map[string]lipgloss.Style{
			"Overlay":          s.Overlay,
			"Title":            s.Title,
			"MenuItem":         s.MenuItem,
			"MenuItemActive":   s.MenuItemActive,
			"MenuItemDisabled": s.MenuItemDisabled,
			"MenuKey":          s.MenuKey,
			"Separator":        s.Separator,
			"Footer":           s.Footer,
			"Danger":           s.Danger,
		} {
			assert.NotEmpty(t, style.Render("test"), "%s/%s", theme, name)
		}
	}
}

func TestNewStyles_FollowsTheme(t *testing.T) {
	dark := New(styles.New(domain.ThemeDark))
	light := New(styles.New(domain.ThemeLight))

	assert.NotEqual(t, dark.Danger.GetForeground(), light.Danger.GetForeground())
}
