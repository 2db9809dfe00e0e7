package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/spendora/internal/cli"
	"github.com/theirongolddev/spendora/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <category>",
	Short: "Get one AI money-saving tip for a budget category",
	Long:  "Get one short money-saving tip for a category such as groceries, transport or coffee, based on your profile.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(_ *cobra.Command, args []string) error {
	ledger, closeLedger, err := openLedger()
	if err != nil {
		return err
	}
	defer closeLedger()

	p, err := ledger.Profiles.Load(context.Background())
	if err != nil {
		return err
	}

	ctx, cancel := coachContext()
	defer cancel()
	tip, err := newCoach().Suggest(ctx, args[0], p)
	if err != nil {
		logger.Get().Warn("suggestion failed", zap.String("category", args[0]), zap.Error(err))
		return fmt.Errorf("failed to generate suggestion: %w", err)
	}

	fmt.Printf("\n  %s %s\n\n", cli.Header("Tip:"), tip)
	return nil
}
