// Package ui is the terminal console over the ledger service.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Theme is an immutable palette. Render functions receive it by value;
// toggling produces a new Theme instead of flipping shared state.
type Theme struct {
	Name     string
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Accent   lipgloss.Color
	HeaderFg lipgloss.Color
	HeaderBg lipgloss.Color
	Border   lipgloss.Color
	Danger   lipgloss.Color
}

func Light() Theme {
	return Theme{
		Name:     ThemeLight,
		Text:     lipgloss.Color("#1F2933"),
		Muted:    lipgloss.Color("#616E7C"),
		Accent:   lipgloss.Color("#0B7285"),
		HeaderFg: lipgloss.Color("#000000"),
		HeaderBg: lipgloss.Color("#DDE3EA"),
		Border:   lipgloss.Color("#9AA5B1"),
		Danger:   lipgloss.Color("#C92A2A"),
	}
}

func Dark() Theme {
	return Theme{
		Name:     ThemeDark,
		Text:     lipgloss.Color("#FFFFFF"),
		Muted:    lipgloss.Color("#A0AEC0"),
		Accent:   lipgloss.Color("#66D9E8"),
		HeaderFg: lipgloss.Color("#FFFFFF"),
		HeaderBg: lipgloss.Color("#000000"),
		Border:   lipgloss.Color("#4A5568"),
		Danger:   lipgloss.Color("#FF6B6B"),
	}
}

// ThemeByName returns the named theme, falling back to light.
func ThemeByName(name string) Theme {
	if strings.EqualFold(strings.TrimSpace(name), ThemeDark) {
		return Dark()
	}
	return Light()
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t.IsDark() {
		return Light()
	}
	return Dark()
}

// IsDark reports whether this is the dark palette.
func (t Theme) IsDark() bool { return t.Name == ThemeDark }
