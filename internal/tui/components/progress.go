package components

import (
	"fmt"
	"time"

	"github.com/theirongolddev/spendora/internal/cli"
	"github.com/theirongolddev/spendora/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

// solidBar renders a bubbles progress bar at fill in one color.
func solidBar(fill float64, width int, color lipgloss.Color) string {
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(width, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(theme.Active.Dim)
	return bar.ViewAs(clamp01(fill))
}

// ProgressBar renders progress toward a goal such as the next reward tier.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	color := t.BrandSoft
	if pct >= 1 {
		color = t.Brand
	}
	return solidBar(pct, width, color) + " " +
		lipgloss.NewStyle().Foreground(color).Bold(true).Render(fmt.Sprintf("%.0f%%", clamp01(pct)*100))
}

// BudgetBar renders one budget line: label, spent-vs-target bar, percentage
// and what is left or over. A zero target renders an empty bar marked n/a.
func BudgetBar(label string, spent, target float64, labelW, barWidth int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.Muted)
	row := muted.Render(fmt.Sprintf("%-*s ", labelW, label))

	if target <= 0 {
		return row + solidBar(0, barWidth, t.Dim) + muted.Render("  n/a")
	}

	pct := spent / target
	state := lipgloss.NewStyle().Foreground(t.ForUtilization(pct))
	return row + solidBar(pct, barWidth, t.ForUtilization(pct)) +
		state.Bold(true).Render(fmt.Sprintf(" %4.0f%%", pct*100)) +
		lipgloss.NewStyle().Foreground(t.Dim).Render("  "+cli.FormatDelta(target, spent))
}

// CompactBudgetBar fits a labeled utilization gauge into width cells.
func CompactBudgetBar(label string, pct float64, width int) string {
	t := theme.Active
	color := t.ForUtilization(pct)
	barW := width - lipgloss.Width(label) - 6
	return lipgloss.NewStyle().Foreground(t.Muted).Render(label) + " " +
		solidBar(pct, barW, color) + " " +
		lipgloss.NewStyle().Foreground(color).Bold(true).Render(fmt.Sprintf("%.0f%%", pct*100))
}

// FormatCountdown renders a wait such as a rate-limit retry delay.
func FormatCountdown(d time.Duration) string {
	if d <= 0 {
		return "now"
	}
	d = d.Round(time.Second)
	h, m, s := int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60
	switch {
	case h >= 24:
		return fmt.Sprintf("%dd %dh", h/24, h%24)
	case h > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
