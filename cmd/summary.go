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

var (
	flagSummaryDays  int
	flagSummaryChart bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Monthly budget vs spending by category",
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().IntVarP(&flagSummaryDays, "days", "n", 7, "Days of history to show")
	summaryCmd.Flags().BoolVar(&flagSummaryChart, "chart", false, "Draw daily spending as a bar chart")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	ledger, closeLedger, err := openLedger()
	if err != nil {
		return err
	}
	defer closeLedger()

	if ok, err := requireProfile(ctx, ledger); err != nil || !ok {
		return err
	}
	asOf, err := today()
	if err != nil {
		return err
	}
	st, err := loadState(ctx, ledger)
	if err != nil {
		return err
	}

	first := asOf.AddDate(0, 0, 1-asOf.Day())
	month := pipeline.FilterByRange(st.Logs, model.DateKey(first), model.DateKey(asOf))
	stats := pipeline.MonthStats(st.Logs, asOf)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BUDGET  %s", asOf.Format("January 2006"))))
	fmt.Println()

	// Fixed monthly lines have a target only.
	rows := make([][]string, 0, 16)
	for _, line := range st.Budget.Lines() {
		switch line.Label {
		case "Rent", "Utilities", "Phone", "Shopping", "Entertainment":
			rows = append(rows, []string{line.Label, cli.FormatMoney(line.Amount), "", ""})
		}
	}
	rows = append(rows, []string{"---"})

	var bars []string
	for _, b := range pipeline.AggregateBreakdown(month, st.Budget, pipeline.All()) {
		target, left := "-", "-"
		if b.HasTarget {
			target = cli.FormatMoney(b.Target)
			left = cli.FormatDelta(b.Target, b.Spent)
			if b.Over() {
				left = cli.Over(left)
			}
		}
		rows = append(rows, []string{b.Category.Label(), target, cli.FormatMoney(b.Spent), left})
		if b.HasTarget {
			bars = append(bars, components.BudgetBar(b.Category.Label(), b.Spent, b.Target, 13, 24))
		}
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{
		"Total",
		cli.FormatMoney(st.Budget.Total),
		cli.FormatMoney(stats.TotalSpent),
		cli.FormatDelta(st.Budget.Total, stats.TotalSpent),
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Monthly", "Spent", "Left"},
		Rows:    rows,
	}))
	fmt.Println()
	for _, bar := range bars {
		fmt.Printf("  %s\n", bar)
	}
	if len(bars) > 0 {
		fmt.Println()
	}

	daysInMonth := first.AddDate(0, 1, -1).Day()
	fmt.Printf("  %s  %s   %s  %s   %s  %s\n",
		cli.Muted("Month"), cli.RenderProgressBar(stats.DaysPassed, daysInMonth, 20),
		cli.Muted("Days left"), fmt.Sprintf("%d", stats.DaysRemaining),
		cli.Muted("Streak"), cli.Pluralize(pipeline.ComputeStreak(st.Logs, asOf), "day"),
	)

	if flagSummaryDays > 0 {
		since := asOf.AddDate(0, 0, 1-flagSummaryDays)
		days := pipeline.AggregateDays(st.Logs, since, asOf)
		printHistory(days)
	}
	return nil
}

// printHistory renders recent days oldest first, as a sparkline or as a
// chart against the daily target.
func printHistory(days []model.DailyStats) {
	values := make([]float64, len(days))
	bars := make([]components.DayBar, len(days))
	for i, d := range days {
		j := len(days) - 1 - i
		values[j] = d.Spent
		bars[j].Spent = d.Spent
		if t, err := model.ParseDate(d.Date); err == nil {
			bars[j].Label = cli.FormatDayOfWeek(int(t.Weekday()))
		}
	}

	fmt.Println()
	if flagSummaryChart {
		fmt.Println(cli.Header(fmt.Sprintf("  Last %s", cli.Pluralize(len(days), "day"))))
		fmt.Println(components.SpendingChart(bars, budget.DailyTarget, 60, 8))
		return
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	fmt.Printf("  %s  %s  %s\n",
		cli.Muted(fmt.Sprintf("Last %s", cli.Pluralize(len(days), "day"))),
		cli.RenderSparkline(values),
		cli.FormatMoney(total),
	)
}
