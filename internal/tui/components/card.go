// Package components provides reusable TUI widgets for spendora views.
package components

import (
	"strings"

	"github.com/theirongolddev/spendora/internal/cli"
	"github.com/theirongolddev/spendora/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Metric is one figure on a card row.
type Metric struct {
	Label string
	Value string
	Note  string

	// Util is spent/target. When Tracked is set the value is colored by
	// budget state.
	Util    float64
	Tracked bool
}

// Amount is a plain money metric.
func Amount(label string, v float64, note string) Metric {
	return Metric{Label: label, Value: cli.FormatMoney(v), Note: note}
}

// Spend shows spent against target, noting what is left or how far over.
// A zero target leaves the metric untracked.
func Spend(label string, spent, target float64) Metric {
	m := Metric{Label: label, Value: cli.FormatMoney(spent), Note: "no target"}
	if target > 0 {
		m.Note = cli.FormatDelta(target, spent)
		m.Util = spent / target
		m.Tracked = true
	}
	return m
}

// Count is a whole-number metric such as a streak.
func Count(label string, n int, unit, note string) Metric {
	return Metric{Label: label, Value: cli.Pluralize(n, unit), Note: note}
}

// LayoutRow splits totalWidth into n widths that sum to totalWidth, giving
// the remainder to the leftmost cells.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	widths := make([]int, n)
	for i := range widths {
		widths[i] = totalWidth / n
		if i < totalWidth%n {
			widths[i]++
		}
	}
	return widths
}

func cardFrame(outerWidth int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Active.Border).
		Width(max(outerWidth-2, 10)).
		Padding(0, 1)
}

// MetricCard renders m in a bordered card outerWidth cells wide.
func MetricCard(m Metric, outerWidth int) string {
	t := theme.Active
	valueColor := t.Text
	if m.Tracked {
		valueColor = t.ForUtilization(m.Util)
	}

	lines := []string{
		lipgloss.NewStyle().Foreground(t.Muted).Render(m.Label),
		lipgloss.NewStyle().Foreground(valueColor).Bold(true).Render(m.Value),
	}
	if m.Note != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.Dim).Render(m.Note))
	}
	return cardFrame(outerWidth).Render(strings.Join(lines, "\n"))
}

// MetricRow lays metric cards side by side across totalWidth.
func MetricRow(metrics []Metric, totalWidth int) string {
	if len(metrics) == 0 {
		return ""
	}
	widths := LayoutRow(totalWidth, len(metrics))
	cards := make([]string, len(metrics))
	for i, m := range metrics {
		cards[i] = MetricCard(m, widths[i])
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// ListCard renders items as a bulleted list in a titled card, wrapping each
// item to the card's inner width.
func ListCard(title string, items []string, outerWidth int) string {
	t := theme.Active
	inner := max(outerWidth-4, 10)
	wrap := lipgloss.NewStyle().Foreground(t.Text).Width(inner - 2)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(t.Muted).Bold(true).Render(title))
	for _, item := range items {
		b.WriteString("\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Foreground(t.Brand).Render("• "),
			wrap.Render(item)))
	}
	return cardFrame(outerWidth).Render(b.String())
}
