// Package styles holds the fixed JetAudio palette and the lipgloss styles
// built from it.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	Primary   lipgloss.Color // accent: playing row, slider fill, badge
	Secondary lipgloss.Color // second stop of the slider gradient

	FgBase   lipgloss.Color // titles and display names
	FgMuted  lipgloss.Color // artists, durations
	FgSubtle lipgloss.Color // empty slider track, help

	BgBar    lipgloss.Color // text on the accent badge
	BgCursor lipgloss.Color // selected row

	Error lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles for the home screen.
type Styles struct {
	Base     lipgloss.Style
	Muted    lipgloss.Style
	Subtle   lipgloss.Style
	Title    lipgloss.Style
	Playing  lipgloss.Style
	Cursor   lipgloss.Style
	Badge    lipgloss.Style // music-note square in the bottom bar
	Control  lipgloss.Style // play/pause and next buttons
	Error    lipgloss.Style
	Divider  lipgloss.Style
	Duration lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#60a5fa"),

	FgBase:   lipgloss.Color("#d0d0d0"),
	FgMuted:  lipgloss.Color("#8a8a8a"),
	FgSubtle: lipgloss.Color("#4e4e4e"),

	BgBar:    lipgloss.Color("#1c1c1c"),
	BgCursor: lipgloss.Color("#303030"),

	Error: lipgloss.Color("#ff5555"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)
	muted := lipgloss.NewStyle().Foreground(t.FgMuted)

	return &Styles{
		Base:    base,
		Muted:   muted,
		Subtle:  lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:   base.Bold(true),
		Playing: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Cursor:  lipgloss.NewStyle().Background(t.BgCursor),
		Badge: lipgloss.NewStyle().
			Foreground(t.BgBar).
			Background(t.Primary).
			Padding(0, 1),
		Control:  lipgloss.NewStyle().Foreground(t.FgBase).Bold(true),
		Error:    lipgloss.NewStyle().Foreground(t.Error),
		Divider:  lipgloss.NewStyle().Foreground(t.FgSubtle),
		Duration: muted,
	}
}
