package shell

import "github.com/charmbracelet/lipgloss"

// Styles is the immutable color table passed into the session and the
// renderers. Construct once at startup; never mutate.
type Styles struct {
	Title   lipgloss.Style
	Info    lipgloss.Style
	Option  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Faint   lipgloss.Style
}

// DefaultStyles matches the classic green/red/cyan terminal palette.
func DefaultStyles() Styles {
	base := lipgloss.NewStyle()
	return Styles{
		Title:   base.Bold(true).Foreground(lipgloss.Color("13")),
		Info:    base.Foreground(lipgloss.Color("14")),
		Option:  base.Foreground(lipgloss.Color("11")),
		Success: base.Bold(true).Foreground(lipgloss.Color("10")),
		Error:   base.Bold(true).Foreground(lipgloss.Color("9")),
		Warning: base.Foreground(lipgloss.Color("11")),
		Faint:   base.Faint(true),
	}
}

// PlainStyles renders without color, for non-TTY output and tests.
func PlainStyles() Styles {
	base := lipgloss.NewStyle()
	return Styles{
		Title: base, Info: base, Option: base,
		Success: base, Error: base, Warning: base, Faint: base,
	}
}
