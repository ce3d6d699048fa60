// Package theme defines color themes for the hidralife dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name         string
	Background   lipgloss.Color // Main app background
	Surface      lipgloss.Color // Card/panel backgrounds
	Border       lipgloss.Color // Subtle borders
	BorderAccent lipgloss.Color // Focused card borders
	TextDim      lipgloss.Color // Hints, empty bar cells, missed days
	TextMuted    lipgloss.Color // Labels, metadata
	TextPrimary  lipgloss.Color // Primary content text
	Accent       lipgloss.Color // Goal met, active states
	AccentBright lipgloss.Color
	Water        lipgloss.Color // Intake below half the goal
	WaterBright  lipgloss.Color // Intake from half the goal
	Warning      lipgloss.Color
	Error        lipgloss.Color
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme - warm, paper-inspired dark theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   lipgloss.Color("#100F0F"),
	Surface:      lipgloss.Color("#1C1B1A"),
	Border:       lipgloss.Color("#403E3C"),
	BorderAccent: lipgloss.Color("#3AA99F"),
	TextDim:      lipgloss.Color("#575653"),
	TextMuted:    lipgloss.Color("#878580"),
	TextPrimary:  lipgloss.Color("#FFFCF0"),
	Accent:       lipgloss.Color("#3AA99F"),
	AccentBright: lipgloss.Color("#5BC8BE"),
	Water:        lipgloss.Color("#4385BE"),
	WaterBright:  lipgloss.Color("#6BA3D6"),
	Warning:      lipgloss.Color("#DA702C"),
	Error:        lipgloss.Color("#D14D41"),
}

// Ocean is a deep blue theme.
var Ocean = Theme{
	Name:         "ocean",
	Background:   lipgloss.Color("#0B1622"),
	Surface:      lipgloss.Color("#12263A"),
	Border:       lipgloss.Color("#23415E"),
	BorderAccent: lipgloss.Color("#4FC3F7"),
	TextDim:      lipgloss.Color("#3E5C76"),
	TextMuted:    lipgloss.Color("#8FA9C2"),
	TextPrimary:  lipgloss.Color("#E6F1FB"),
	Accent:       lipgloss.Color("#26C6DA"),
	AccentBright: lipgloss.Color("#80DEEA"),
	Water:        lipgloss.Color("#1E88E5"),
	WaterBright:  lipgloss.Color("#4FC3F7"),
	Warning:      lipgloss.Color("#FFB74D"),
	Error:        lipgloss.Color("#EF5350"),
}

// Terminal uses ANSI 16 colors only - maximum compatibility.
var Terminal = Theme{
	Name:         "terminal",
	Background:   lipgloss.Color("0"),
	Surface:      lipgloss.Color("0"),
	Border:       lipgloss.Color("8"),
	BorderAccent: lipgloss.Color("6"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("6"),
	AccentBright: lipgloss.Color("14"),
	Water:        lipgloss.Color("4"),
	WaterBright:  lipgloss.Color("12"),
	Warning:      lipgloss.Color("3"),
	Error:        lipgloss.Color("1"),
}

// All available themes.
var All = []Theme{FlexokiDark, Ocean, Terminal}

// Names lists the theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// ProgressColor picks the fill color for an intake ratio.
func (t Theme) ProgressColor(ratio float64) lipgloss.Color {
	switch {
	case ratio >= 1:
		return t.Accent
	case ratio >= 0.5:
		return t.WaterBright
	default:
		return t.Water
	}
}
