package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/hidralife/internal/cli"
	"github.com/theirongolddev/hidralife/internal/model"
	"github.com/theirongolddev/hidralife/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	peak := 1.0
	for _, v := range values {
		peak = max(peak, v)
	}

	var buf strings.Builder
	for _, v := range values {
		i := int(v / peak * float64(len(sparkBlocks)-1))
		buf.WriteRune(sparkBlocks[min(max(i, 0), len(sparkBlocks)-1)])
	}
	return lipgloss.NewStyle().Foreground(color).Background(theme.Active.Surface).Render(buf.String())
}

// Bars is the input to BarChart.
type Bars struct {
	Values []float64
	Labels []string // optional, one per value
	// ColorOf picks the color of bar i. Nil uses the accent color.
	ColorOf func(i int) lipgloss.Color
	// Target draws a dotted line across empty cells at this value. Zero disables.
	Target float64
}

// HistoryChart renders daily intake as a bar chart labelled by weekday.
// Bars for days that met their goal use the accent color, the rest are dim,
// and the most recent goal is drawn as a dotted line.
func HistoryChart(days []model.DailyStats, width, height int) string {
	if len(days) == 0 {
		return ""
	}
	t := theme.Active

	bars := Bars{
		Values: make([]float64, len(days)),
		Labels: make([]string, len(days)),
		ColorOf: func(i int) lipgloss.Color {
			if days[i].GoalMet() {
				return t.Accent
			}
			return t.TextDim
		},
	}
	for i, d := range days {
		bars.Values[i] = float64(d.Total)
		bars.Labels[i] = cli.FormatDayKey(d.Date)
		if d.Goal > 0 {
			bars.Target = float64(d.Goal)
		}
	}
	return BarChart(bars, width, height)
}

// yAxis maps values onto chart rows.
type yAxis struct {
	ceiling float64
	rows    int
	labels  map[int]string // row -> tick label
	width   int
}

func newYAxis(peak float64, height int) yAxis {
	step := chartTickStep(peak)
	for int(math.Ceil(peak/step)) > max(height/2, 2) {
		step *= 2
	}
	ceiling := math.Ceil(peak/step) * step
	ticks := max(int(math.Round(ceiling/step)), 1)
	perTick := max(height/ticks, 2)

	ax := yAxis{
		ceiling: ceiling,
		rows:    perTick * ticks,
		labels:  make(map[int]string, ticks),
		width:   max(len(formatChartLabel(ceiling))+1, 4),
	}
	for i := 1; i <= ticks; i++ {
		ax.labels[i*perTick] = formatChartLabel(step * float64(i))
	}
	return ax
}

// span returns the value range covered by row (1-based from the bottom).
func (ax yAxis) span(row int) (bottom, top float64) {
	return ax.ceiling * float64(row-1) / float64(ax.rows), ax.ceiling * float64(row) / float64(ax.rows)
}

// BarChart renders a vertical bar chart with a y-axis. Charts narrower than
// 15 columns or shorter than 3 rows collapse to a sparkline. When there are
// more bars than fit, bars are sampled evenly.
func BarChart(b Bars, width, height int) string {
	if len(b.Values) == 0 {
		return ""
	}
	t := theme.Active
	if width < 15 || height < 3 {
		return Sparkline(b.Values, t.Accent)
	}
	colorOf := b.ColorOf
	if colorOf == nil {
		colorOf = func(int) lipgloss.Color { return t.Accent }
	}

	peak := b.Target
	for _, v := range b.Values {
		peak = max(peak, v)
	}
	ax := newYAxis(max(peak, 1), height)

	plotW := max(width-ax.width-1, 5)
	idx, barW := sampleBars(len(b.Values), plotW)
	gap := 0
	if len(idx) > 1 {
		gap = 1
	}
	axisLen := len(idx)*barW + (len(idx)-1)*gap

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blankStyle := lipgloss.NewStyle().Background(t.Surface)
	targetStyle := lipgloss.NewStyle().Foreground(t.Water).Background(t.Surface)

	var sb strings.Builder
	for row := ax.rows; row >= 1; row-- {
		bottom, top := ax.span(row)
		onTarget := b.Target > bottom && b.Target <= top

		sb.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", ax.width, ax.labels[row])))
		for i, src := range idx {
			if i > 0 {
				fill := " "
				if onTarget {
					fill = "┄"
				}
				sb.WriteString(targetStyle.Render(strings.Repeat(fill, gap)))
			}
			v := b.Values[src]
			bar := lipgloss.NewStyle().Foreground(colorOf(src)).Background(t.Surface)
			switch {
			case v >= top:
				sb.WriteString(bar.Render(strings.Repeat("█", barW)))
			case v > bottom:
				frac := (v - bottom) / (top - bottom)
				block := sparkBlocks[min(max(int(frac*8)-1, 0), len(sparkBlocks)-1)]
				sb.WriteString(bar.Render(strings.Repeat(string(block), barW)))
			case onTarget:
				sb.WriteString(targetStyle.Render(strings.Repeat("┄", barW)))
			default:
				sb.WriteString(blankStyle.Render(strings.Repeat(" ", barW)))
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString(axisStyle.Render(fmt.Sprintf("%*s└%s", ax.width, "0", strings.Repeat("─", axisLen))))

	if len(b.Labels) == len(b.Values) {
		sb.WriteString("\n")
		sb.WriteString(blankStyle.Render(strings.Repeat(" ", ax.width+1)))
		sb.WriteString(axisStyle.Render(placeLabels(b.Labels, idx, barW+gap, axisLen)))
	}
	return sb.String()
}

// sampleBars picks which of n bars to draw in w columns and their width.
func sampleBars(n, w int) (idx []int, barW int) {
	barW = w
	if n > 1 {
		barW = (w - (n - 1)) / n
	}
	if barW >= 2 || n == 1 {
		idx = make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx, min(barW, 6)
	}

	keep := max((w+1)/3, 2)
	idx = make([]int, keep)
	for i := range idx {
		idx[i] = i * (n - 1) / (keep - 1)
	}
	return idx, 2
}

// placeLabels lays labels under their bars, skipping any that would overlap.
func placeLabels(labels []string, idx []int, pitch, axisLen int) string {
	buf := []byte(strings.Repeat(" ", axisLen))
	lastEnd := -1
	for i, src := range idx {
		lbl := labels[src]
		pos := i * pitch
		end := min(pos+len(lbl), axisLen)
		if pos <= lastEnd || end-pos < 3 {
			continue
		}
		copy(buf[pos:end], lbl[:end-pos])
		lastEnd = end
	}
	return strings.TrimRight(string(buf), " ")
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(peak float64) float64 {
	if peak <= 0 {
		return 1
	}
	rough := peak / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))

	switch frac := rough / base; {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

// formatChartLabel renders axis ticks in liters from 1000 ml up.
func formatChartLabel(v float64) string {
	if v < 1000 {
		return fmt.Sprintf("%.0f", v)
	}
	if v == math.Trunc(v/1000)*1000 {
		return fmt.Sprintf("%.0fL", v/1000)
	}
	return fmt.Sprintf("%.1fL", v/1000)
}
