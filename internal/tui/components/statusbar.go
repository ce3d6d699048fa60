package components

import (
	"strings"

	"github.com/theirongolddev/hidralife/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// KeyHint is one entry of the status bar key legend.
type KeyHint struct {
	Key, Desc string
}

// RenderStatusBar renders the bottom status bar: key hints on the left and
// an info string on the right.
func RenderStatusBar(width int, hints []KeyHint, info string) string {
	t := theme.Active

	barStyle := lipgloss.NewStyle().Background(t.Surface)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	infoStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var left strings.Builder
	left.WriteString(barStyle.Render(" "))
	for i, h := range hints {
		if i > 0 {
			left.WriteString(barStyle.Render("  "))
		}
		left.WriteString(keyStyle.Render("[" + h.Key + "]"))
		left.WriteString(descStyle.Render(h.Desc))
	}

	right := ""
	if info != "" {
		right = infoStyle.Render(info + " ")
	}

	padding := max(width-lipgloss.Width(left.String())-lipgloss.Width(right), 0)
	return left.String() + barStyle.Render(strings.Repeat(" ", padding)) + right
}
