package render

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme for the TUI
type Theme struct {
	Name string

	// Base colors
	Surface lipgloss.Color
	Border  lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Error     lipgloss.Color

	// Text colors
	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

// The two built-in themes
var (
	DarkTheme = Theme{
		Name: "dark",

		Surface: lipgloss.Color("#24283b"),
		Border:  lipgloss.Color("#414868"),

		Primary:   lipgloss.Color("#7aa2f7"),
		Secondary: lipgloss.Color("#9ece6a"),
		Error:     lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),
	}

	LightTheme = Theme{
		Name: "light",

		Surface: lipgloss.Color("#e1e2e7"),
		Border:  lipgloss.Color("#a8aecb"),

		Primary:   lipgloss.Color("#2e7de9"),
		Secondary: lipgloss.Color("#587539"),
		Error:     lipgloss.Color("#f52a65"),

		Text:     lipgloss.Color("#3760bf"),
		TextDim:  lipgloss.Color("#848cb5"),
		TextMute: lipgloss.Color("#a8aecb"),
	}
)

// ThemeByName resolves a configured theme name. An empty name follows
// the terminal background, mirroring the OS dark/light preference.
func ThemeByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme
	case "dark":
		return DarkTheme
	default:
		return DetectTheme()
	}
}

// DetectTheme picks a theme from the terminal background. Evaluated at
// startup only; explicit user choices take precedence and persist.
func DetectTheme() Theme {
	if lipgloss.HasDarkBackground() {
		return DarkTheme
	}
	return LightTheme
}

// Opposite returns the other theme, for the theme toggle
func (t Theme) Opposite() Theme {
	if t.Name == "dark" {
		return LightTheme
	}
	return DarkTheme
}
