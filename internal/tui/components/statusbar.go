package components

import (
	"strings"

	"github.com/theirongolddev/spendora/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders key hints on the left and the chat status on the
// right, padded to width.
func RenderStatusBar(width int, hints, status string) string {
	left := " " + hints
	right := ""
	if status != "" {
		right = status + " "
	}
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return lipgloss.NewStyle().
		Foreground(theme.Active.Muted).
		Width(width).
		Render(left + strings.Repeat(" ", gap) + right)
}
