package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/spendora/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// DayBar is one day's column in a SpendingChart.
type DayBar struct {
	Label string
	Spent float64
}

// eighths holds partial cell fills, index 0 empty.
var eighths = []rune(" ▁▂▃▄▅▆▇█")

// SpendingChart draws days oldest first as columns against a daily target.
// Columns are colored by how much of the target they use and a dotted row
// marks the target. Days that do not fit are dropped from the oldest end.
// With no target every column uses the spending color and no line is drawn.
func SpendingChart(days []DayBar, target float64, width, height int) string {
	if len(days) == 0 {
		return ""
	}
	t := theme.Active
	if width < 20 || height < 3 {
		return trendLine(days, t.Spending)
	}

	top := target
	for _, d := range days {
		top = math.Max(top, d.Spent)
	}
	if top <= 0 {
		top = 1
	}
	step := tickStep(top, height/2)
	ceiling := math.Ceil(top/step) * step

	axisW := len(formatChartLabel(ceiling)) + 1
	plotW := width - axisW - 1

	// One cell gap between columns; drop old days until columns fit.
	for len(days) > 1 && (plotW+1)/len(days)-1 < 1 {
		days = days[1:]
	}
	colW := min(max((plotW+1)/len(days)-1, 1), 5)
	if len(days) == 1 {
		colW = min(plotW, 5)
	}

	ticks := make(map[int]string)
	for v := step; v <= ceiling+step/2; v += step {
		ticks[int(math.Round(v/ceiling*float64(height)))] = formatChartLabel(v)
	}
	targetRow := 0
	if target > 0 {
		targetRow = int(math.Ceil(target / ceiling * float64(height)))
	}

	axis := lipgloss.NewStyle().Foreground(t.Dim)
	marker := lipgloss.NewStyle().Foreground(t.Muted)
	colors := make([]lipgloss.Style, len(days))
	for i, d := range days {
		c := t.Spending
		if target > 0 {
			c = t.ForUtilization(d.Spent / target)
		}
		colors[i] = lipgloss.NewStyle().Foreground(c)
	}

	var b strings.Builder
	for row := height; row >= 1; row-- {
		hi := ceiling * float64(row) / float64(height)
		lo := ceiling * float64(row-1) / float64(height)

		b.WriteString(axis.Render(fmt.Sprintf("%*s│", axisW, ticks[row])))
		for i, d := range days {
			if i > 0 {
				b.WriteString(gapCell(row == targetRow, marker))
			}
			var cell rune
			switch {
			case d.Spent >= hi:
				cell = eighths[8]
			case d.Spent > lo:
				cell = eighths[max(1, min(8, int((d.Spent-lo)/(hi-lo)*8)))]
			}
			switch {
			case cell != 0:
				b.WriteString(colors[i].Render(strings.Repeat(string(cell), colW)))
			case row == targetRow:
				b.WriteString(marker.Render(strings.Repeat("┄", colW)))
			default:
				b.WriteString(strings.Repeat(" ", colW))
			}
		}
		b.WriteString("\n")
	}

	plotLen := len(days)*(colW+1) - 1
	b.WriteString(axis.Render(fmt.Sprintf("%*s└%s", axisW, "$0", strings.Repeat("─", plotLen))))

	if labels := dayLabels(days, colW, plotLen); labels != "" {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", axisW+1))
		b.WriteString(axis.Render(labels))
	}
	return b.String()
}

func gapCell(onTarget bool, marker lipgloss.Style) string {
	if onTarget {
		return marker.Render("┄")
	}
	return " "
}

// dayLabels places each label under its column, skipping any that would
// collide with the previous one.
func dayLabels(days []DayBar, colW, plotLen int) string {
	line := []rune(strings.Repeat(" ", plotLen))
	next := 0
	for i, d := range days {
		pos := i * (colW + 1)
		lbl := []rune(d.Label)
		if len(lbl) == 0 || pos < next || pos+len(lbl) > plotLen {
			continue
		}
		copy(line[pos:], lbl)
		next = pos + len(lbl) + 1
	}
	return strings.TrimRight(string(line), " ")
}

// trendLine is the one-row fallback for cramped layouts.
func trendLine(days []DayBar, color lipgloss.Color) string {
	peak := 0.0
	for _, d := range days {
		peak = math.Max(peak, d.Spent)
	}
	var b strings.Builder
	for _, d := range days {
		idx := 1
		if peak > 0 {
			idx = 1 + int(math.Max(d.Spent, 0)/peak*7)
		}
		b.WriteRune(eighths[min(idx, 8)])
	}
	return lipgloss.NewStyle().Foreground(color).Render(b.String())
}

// tickStep picks a 1, 2 or 5 times power-of-ten step that splits top into at
// most maxTicks intervals.
func tickStep(top float64, maxTicks int) float64 {
	maxTicks = max(maxTicks, 1)
	for base := math.Pow(10, math.Floor(math.Log10(top/float64(maxTicks)))); ; base *= 10 {
		for _, m := range []float64{1, 2, 5} {
			if step := base * m; math.Ceil(top/step) <= float64(maxTicks) {
				return step
			}
		}
	}
}

// formatChartLabel renders a y-axis money tick, e.g. "$40" or "$1.5k".
func formatChartLabel(v float64) string {
	switch {
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("$%.0fk", v/1e3)
		}
		return fmt.Sprintf("$%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("$%.0f", v)
	default:
		return fmt.Sprintf("$%.2f", v)
	}
}
