package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/spendora/internal/budget"
	"github.com/theirongolddev/spendora/internal/cli"
	"github.com/theirongolddev/spendora/internal/model"
	"github.com/theirongolddev/spendora/internal/pipeline"
	"github.com/theirongolddev/spendora/internal/tui/components"

	"github.com/spf13/cobra"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Today's spending against the daily target",
	Args:  cobra.NoArgs,
	RunE:  runToday,
}

func init() {
	rootCmd.AddCommand(todayCmd)
}

func runToday(_ *cobra.Command, _ []string) error {
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

	st, err := loadState(ctx, ledger)
	if err != nil {
		return err
	}
	entry := model.DailyLogEntry{Date: date}
	if e, ok, err := ledger.Logs.Get(ctx, date); err != nil {
		return err
	} else if ok {
		entry = e
	}

	spent := pipeline.SumDay(st.Logs, date)
	remaining := max(budget.DailyTarget-spent, 0)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("TODAY  %s %s", cli.FormatDayOfWeek(int(day.Weekday())), date)))
	fmt.Println()
	fmt.Println(components.MetricRow([]components.Metric{
		components.Amount("Daily Target", budget.DailyTarget, ""),
		components.Spend("Spent", spent, budget.DailyTarget),
		components.Amount("Remaining", remaining, cli.FormatPercent(remaining/budget.DailyTarget)+" left"),
		components.Count("Streak", pipeline.ComputeStreak(st.Logs, day), "day", ""),
	}, 72))
	fmt.Printf("  %s\n\n", components.CompactBudgetBar("Daily target", spent/budget.DailyTarget, 60))

	rows := make([][]string, 0, len(model.Categories))
	for _, c := range model.Categories {
		rows = append(rows, []string{c.Label(), cli.FormatCents(entry.Amount(c))})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Today"},
		Rows:    rows,
	}))

	if entry.Cooking {
		fmt.Printf("  %s\n", cli.Good("Day finished"))
	} else {
		fmt.Printf("  %s\n", cli.Muted("Run `spendora finish` when you're done for the day."))
	}

	if tips := budget.Suggest(entry, st.Budget, st.Profile.GroceriesBudget()); len(tips) > 0 {
		fmt.Println()
		fmt.Println(components.ListCard("Suggestions", tips, 72))
	}
	fmt.Println()
	return nil
}
