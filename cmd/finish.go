package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/spendora/internal/cli"
	"github.com/theirongolddev/spendora/internal/logger"
	"github.com/theirongolddev/spendora/internal/model"
	"github.com/theirongolddev/spendora/internal/pipeline"
	"github.com/theirongolddev/spendora/internal/rewards"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var finishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Mark today's log as complete",
	Args:  cobra.NoArgs,
	RunE:  runFinish,
}

func init() {
	rootCmd.AddCommand(finishCmd)
}

func runFinish(_ *cobra.Command, _ []string) error {
	day, err := today()
	if err != nil {
		return err
	}
	date := model.DateKey(day)

	ctx := context.Background()
	ledger, closeLedger, err := openLedger()
	if err != nil {
		return err
	}
	defer closeLedger()

	if _, err := ledger.Logs.FinishDay(ctx, date); err != nil {
		return err
	}
	logs, err := ledger.Logs.All(ctx)
	if err != nil {
		return err
	}
	streak := pipeline.ComputeStreak(logs, day)
	logger.Get().Info("day finished", zap.String("date", date), zap.Int("streak", streak))

	fmt.Printf("\n  %s %s\n", cli.Good("Day complete:"), date)
	fmt.Printf("  Streak: %s   Points: %d\n\n",
		cli.Pluralize(streak, "day"), rewards.ComputePoints(len(logs)))
	return nil
}
