// Package ui is the interactive terminal browser for the shop: one tab per
// screen, each a paginated data table with live search.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme names accepted in configuration.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Theme is a color scheme. Models hold it by value; nothing is global.
type Theme struct {
	Name       string
	IsDark     bool
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Danger     lipgloss.Color
}

// LightTheme is the default scheme.
func LightTheme() Theme {
	return Theme{
		Name:       ThemeLight,
		Foreground: lipgloss.Color("#3b2f2f"),
		Primary:    lipgloss.Color("#6d4c41"),
		Accent:     lipgloss.Color("#c2185b"),
		Muted:      lipgloss.Color("#9e9e9e"),
		Border:     lipgloss.Color("#d7ccc8"),
		Success:    lipgloss.Color("#2e7d32"),
		Warning:    lipgloss.Color("#f9a825"),
		Danger:     lipgloss.Color("#c62828"),
	}
}

// DarkTheme is the scheme for dark terminals.
func DarkTheme() Theme {
	return Theme{
		Name:       ThemeDark,
		IsDark:     true,
		Foreground: lipgloss.Color("#f5f0eb"),
		Primary:    lipgloss.Color("#d7a86e"),
		Accent:     lipgloss.Color("#f48fb1"),
		Muted:      lipgloss.Color("#757575"),
		Border:     lipgloss.Color("#4e342e"),
		Success:    lipgloss.Color("#81c784"),
		Warning:    lipgloss.Color("#ffd54f"),
		Danger:     lipgloss.Color("#e57373"),
	}
}

// ThemeByName returns the named theme. Unknown names fall back to light.
func ThemeByName(name string) Theme {
	if strings.EqualFold(strings.TrimSpace(name), ThemeDark) {
		return DarkTheme()
	}
	return LightTheme()
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t.IsDark {
		return LightTheme()
	}
	return DarkTheme()
}

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	Theme Theme

	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Header    lipgloss.Style
	Cell      lipgloss.Style
	Footer    lipgloss.Style
	Muted     lipgloss.Style
	Divider   lipgloss.Style
	Current   lipgloss.Style
	Banner    lipgloss.Style
	Error     lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style
}

// NewStyles builds the styles for theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Tab: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		ActiveTab: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Underline(true).
			Padding(0, 2),

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Cell: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true).
			Padding(0, 1),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Current: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Banner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(theme.Danger).
			Bold(true).
			Padding(0, 1),

		Error: lipgloss.NewStyle().
			Foreground(theme.Danger).
			Bold(true),

		Success: lipgloss.NewStyle().Foreground(theme.Success),
		Warning: lipgloss.NewStyle().Foreground(theme.Warning),
		Danger:  lipgloss.NewStyle().Foreground(theme.Danger),
	}
}
