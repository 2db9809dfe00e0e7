package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/spendora/internal/config"
	"github.com/theirongolddev/spendora/internal/pipeline"
	"github.com/theirongolddev/spendora/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with Violet, your budgeting coach",
	Args:  cobra.NoArgs,
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, _ []string) error {
	ledger, closeLedger, err := openLedger()
	if err != nil {
		return err
	}
	st, err := loadState(context.Background(), ledger)
	closeLedger()
	if err != nil {
		return err
	}
	day, err := today()
	if err != nil {
		return err
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	if !flagNoColor && !termenv.EnvNoColor() {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}

	chat := tui.NewChat(newCoach(), tui.ChatContext{
		Profile: st.Profile,
		Budget:  st.Budget,
		Stats:   pipeline.MonthStats(st.Logs, day),
	}, config.CoachTimeout(appCfg))

	p := tea.NewProgram(chat, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
