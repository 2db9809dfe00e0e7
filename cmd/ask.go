package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/theirongolddev/spendora/internal/cli"
	"github.com/theirongolddev/spendora/internal/coach"
	"github.com/theirongolddev/spendora/internal/logger"
	"github.com/theirongolddev/spendora/internal/pipeline"
	"github.com/theirongolddev/spendora/internal/tui/components"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask Violet a budgeting question",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(_ *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	ledger, closeLedger, err := openLedger()
	if err != nil {
		return err
	}
	defer closeLedger()

	st, err := loadState(context.Background(), ledger)
	if err != nil {
		return err
	}
	day, err := today()
	if err != nil {
		return err
	}

	client := newCoach()
	if !client.HasKey() {
		fmt.Printf("\n  %s\n", cli.Warn(coach.TextNoKey))
		fmt.Println("  Set OPENROUTER_API_KEY or run `spendora setup`.")
		fmt.Println()
		return nil
	}

	ctx, cancel := coachContext()
	defer cancel()
	reply := client.Ask(ctx, question, st.Profile, st.Budget, pipeline.MonthStats(st.Logs, day))
	if reply.Err != nil {
		logger.Get().Warn("coach request failed", zap.String("state", reply.State.String()), zap.Error(reply.Err))
	}

	fmt.Println()
	fmt.Printf("  %s\n", cli.Header("Violet"))
	for _, line := range strings.Split(reply.Text, "\n") {
		fmt.Printf("  %s\n", line)
	}
	if reply.State == coach.StateRateLimited {
		fmt.Printf("\n  %s\n", cli.Muted("Try again in "+components.FormatCountdown(reply.RetryAfter)+"."))
	}
	fmt.Println()
	return nil
}
