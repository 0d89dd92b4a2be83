// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette and styling for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour.
	Secondary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text and locked steps.
	Muted lipgloss.Color

	// Good marks healthy meters and low risk.
	Good lipgloss.Color

	// Caution marks middling meters.
	Caution lipgloss.Color

	// Risk marks weak meters and high risk.
	Risk lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#2D6A4F"), // Field green
		Secondary:  lipgloss.Color("#52B788"), // Leaf
		Foreground: lipgloss.Color("#E9F5DB"),
		Muted:      lipgloss.Color("#6C7086"),
		Good:       lipgloss.Color("#74C69D"),
		Caution:    lipgloss.Color("#F4A261"),
		Risk:       lipgloss.Color("#E76F51"),
		Border:     lipgloss.Color("#40534A"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for headers.
	Title lipgloss.Style

	// Subtitle style for secondary headers.
	Subtitle lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Selected style for highlighted items.
	Selected lipgloss.Style

	// Disabled style for locked sidebar entries.
	Disabled lipgloss.Style

	// Good, Caution and Risk colour meter bands.
	Good    lipgloss.Style
	Caution lipgloss.Style
	Risk    lipgloss.Style

	// InputField style for input areas.
	InputField lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Sidebar style for the step list column.
	Sidebar lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Good),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Disabled: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Faint(true),

		Good:    lipgloss.NewStyle().Foreground(theme.Good),
		Caution: lipgloss.NewStyle().Foreground(theme.Caution),
		Risk:    lipgloss.NewStyle().Foreground(theme.Risk),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#1B2621")).
			Padding(0, 1),

		Sidebar: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Band returns the style for a named meter band: "good", "caution" or
// "risk" and the gauge bands "low", "mid" and "high". Unknown names render
// as normal text.
func (s *Styles) Band(name string) lipgloss.Style {
	switch name {
	case "good", "low":
		return s.Good
	case "caution", "mid":
		return s.Caution
	case "risk", "high":
		return s.Risk
	default:
		return s.Normal
	}
}
