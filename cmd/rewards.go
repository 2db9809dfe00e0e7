package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/spendora/internal/cli"
	"github.com/theirongolddev/spendora/internal/pipeline"
	"github.com/theirongolddev/spendora/internal/rewards"
	"github.com/theirongolddev/spendora/internal/tui/components"

	"github.com/spf13/cobra"
)

var rewardsCmd = &cobra.Command{
	Use:   "rewards",
	Short: "Points earned and reward tiers",
	Args:  cobra.NoArgs,
	RunE:  runRewards,
}

func init() {
	rootCmd.AddCommand(rewardsCmd)
}

func runRewards(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	ledger, closeLedger, err := openLedger()
	if err != nil {
		return err
	}
	defer closeLedger()

	logs, err := ledger.Logs.All(ctx)
	if err != nil {
		return err
	}
	day, err := today()
	if err != nil {
		return err
	}

	tiers := rewards.DefaultTiers
	points := rewards.ComputePoints(len(logs))

	fmt.Println()
	fmt.Println(cli.RenderTitle("REWARDS"))
	fmt.Println()
	fmt.Println(components.MetricRow([]components.Metric{
		components.Count("Points", points, "point", fmt.Sprintf("%d per logged day", rewards.PointsPerLog)),
		components.Count("Days Logged", len(logs), "day", ""),
		components.Count("Streak", pipeline.ComputeStreak(logs, day), "day", ""),
	}, 72))
	fmt.Println()

	if next, remaining, ok := rewards.NextTier(points, tiers); ok {
		fmt.Printf("  Next: %s  %s\n", cli.Header(next.Name), cli.Muted(fmt.Sprintf("%d points to go", remaining)))
		fmt.Printf("  %s\n\n", components.ProgressBar(rewards.Progress(points, tiers), 40))
	} else {
		fmt.Printf("  %s\n\n", cli.Good("Every reward unlocked!"))
	}

	rows := make([][]string, 0, len(tiers))
	for _, t := range tiers {
		status := cli.Muted("locked")
		if t.Threshold <= points {
			status = cli.Good("unlocked")
		}
		rows = append(rows, []string{t.Name, t.Description, cli.FormatNumber(int64(t.Threshold)), status})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Reward", "Description", "Points", "Status"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}
