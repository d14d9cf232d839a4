// Package render draws volunteer records as terminal cards. The colour theme
// is always passed in explicitly; there is no package-level current theme.
package render

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the colour scheme used for cards
type Theme struct {
	Name          string
	Background    lipgloss.Color
	Card          lipgloss.Color
	Foreground    lipgloss.Color
	Muted         lipgloss.Color
	Accent        lipgloss.Color
	TagBackground lipgloss.Color
	Danger        lipgloss.Color
}

// Light returns the light mode theme
func Light() Theme {
	return Theme{
		Name:          "light",
		Background:    lipgloss.Color("#F3F4F6"),
		Card:          lipgloss.Color("#FFFFFF"),
		Foreground:    lipgloss.Color("#111827"),
		Muted:         lipgloss.Color("#6B7280"),
		Accent:        lipgloss.Color("#2563EB"),
		TagBackground: lipgloss.Color("#E5E7EB"),
		Danger:        lipgloss.Color("#F43F5E"),
	}
}

// Dark returns the dark mode theme
func Dark() Theme {
	return Theme{
		Name:          "dark",
		Background:    lipgloss.Color("#0F172A"),
		Card:          lipgloss.Color("#0B1220"),
		Foreground:    lipgloss.Color("#E6EEF8"),
		Muted:         lipgloss.Color("#9AA6B2"),
		Accent:        lipgloss.Color("#60A5FA"),
		TagBackground: lipgloss.Color("#1F2937"),
		Danger:        lipgloss.Color("#F87171"),
	}
}

// ThemeByName returns the named theme ("dark" or "light")
func ThemeByName(name string) (Theme, error) {
	switch name {
	case "dark":
		return Dark(), nil
	case "light":
		return Light(), nil
	default:
		return Theme{}, fmt.Errorf("unknown theme: %s", name)
	}
}

// Toggle returns the opposite theme
func Toggle(t Theme) Theme {
	if t.Name == "dark" {
		return Light()
	}
	return Dark()
}
