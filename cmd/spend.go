package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/theirongolddev/spendora/internal/budget"
	"github.com/theirongolddev/spendora/internal/cli"
	"github.com/theirongolddev/spendora/internal/logger"
	"github.com/theirongolddev/spendora/internal/model"
	"github.com/theirongolddev/spendora/internal/pipeline"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flagSpendAdd bool

var spendCmd = &cobra.Command{
	Use:   "spend <category> <amount>",
	Short: "Record a day's spending in one category",
	Long: "Record the amount spent in a category for today (or --date).\n" +
		"Categories: " + categoryList() + ".\n" +
		"The amount replaces what was recorded before; use --add to add to it.",
	Args: cobra.ExactArgs(2),
	RunE: runSpend,
}

func init() {
	spendCmd.Flags().BoolVar(&flagSpendAdd, "add", false, "Add to the recorded amount instead of replacing it")
	rootCmd.AddCommand(spendCmd)
}

func runSpend(_ *cobra.Command, args []string) error {
	category, err := model.ParseCategory(args[0])
	if err != nil {
		return fmt.Errorf("%w (expected one of %s)", err, categoryList())
	}
	amount, err := model.ParseAmount(args[1])
	if err != nil {
		return fmt.Errorf("%q: %w", args[1], err)
	}
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

	var entry model.DailyLogEntry
	if flagSpendAdd {
		entry, err = ledger.Logs.Add(ctx, date, category, amount)
	} else {
		entry, err = ledger.Logs.Record(ctx, date, category, amount)
	}
	if err != nil {
		return err
	}
	logger.Get().Info("daily log updated",
		zap.String("date", date),
		zap.String("category", string(category)),
		zap.Float64("amount", amount),
		zap.Bool("add", flagSpendAdd),
	)

	spent := pipeline.SumDay([]model.DailyLogEntry{entry}, date)
	fmt.Printf("\n  Logged %s %s for %s\n", category.Label(), cli.FormatCents(entry.Amount(category)), date)
	fmt.Printf("  Today: %s of %s  (%s)\n\n",
		cli.FormatMoney(spent),
		cli.FormatMoney(budget.DailyTarget),
		cli.FormatDelta(budget.DailyTarget, spent),
	)
	return nil
}

func categoryList() string {
	names := make([]string, len(model.Categories))
	for i, c := range model.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
