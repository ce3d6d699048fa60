package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/hidralife/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a block progress bar followed by its percentage.
// pct is a 0..1 ratio; values outside are clamped.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	pct = min(max(pct, 0), 1)
	filled := min(int(pct*float64(width)), width)

	barColor := t.ProgressColor(pct)
	filledStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))

	return b.String() + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// Ring renders the intake "ring": a big percentage, the current/goal line
// and a gradient bar. percent is the rounded, uncapped percentage; ratio is
// the capped 0..1 fill.
func Ring(current, goal, percent int, ratio float64, width int) string {
	t := theme.Active
	width = max(width, 10)

	bar := progress.New(
		progress.WithGradient(string(t.Water), string(t.AccentBright)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().
		Foreground(t.ProgressColor(ratio)).
		Background(t.Surface).
		Bold(true).
		Width(width).
		Align(lipgloss.Center)
	amountStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width).
		Align(lipgloss.Center)

	return pctStyle.Render(fmt.Sprintf("%d%%", percent)) + "\n" +
		amountStyle.Render(fmt.Sprintf("%d / %d ml", current, goal)) + "\n" +
		bar.ViewAs(min(max(ratio, 0), 1))
}
