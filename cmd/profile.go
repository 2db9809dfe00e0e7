package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/theirongolddev/spendora/internal/budget"
	"github.com/theirongolddev/spendora/internal/cli"
	"github.com/theirongolddev/spendora/internal/model"

	"github.com/spf13/cobra"
)

var flagProfileJSON bool

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the stored profile and its derived monthly budget",
	Args:  cobra.NoArgs,
	RunE:  runProfile,
}

func init() {
	profileCmd.Flags().BoolVar(&flagProfileJSON, "json", false, "Print the profile and budget as JSON")
	rootCmd.AddCommand(profileCmd)
}

func runProfile(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	ledger, closeLedger, err := openLedger()
	if err != nil {
		return err
	}
	defer closeLedger()

	if ok, err := requireProfile(ctx, ledger); err != nil || !ok {
		return err
	}
	st, err := loadState(ctx, ledger)
	if err != nil {
		return err
	}

	if flagProfileJSON {
		out, err := json.MarshalIndent(struct {
			Profile model.Profile       `json:"profile"`
			Budget  model.MonthlyBudget `json:"budget"`
		}{st.Profile, st.Budget}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	p := st.Profile
	fmt.Println()
	fmt.Println(cli.RenderTitle("PROFILE"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Rows: profileRows(p),
	}))
	fmt.Println()

	rows := make([][]string, 0, 12)
	for _, line := range st.Budget.Lines() {
		rows = append(rows, []string{line.Label, cli.FormatMoney(line.Amount)})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"Total", cli.FormatMoney(st.Budget.Total)})
	rows = append(rows, []string{"Per day (30d)", cli.FormatMoney(budget.DailyTargetFromTotal(st.Budget))})
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Monthly Budget",
		Headers: []string{"Line", "Amount"},
		Rows:    rows,
	}))
	fmt.Println()
	printBudgetShares(st.Budget)
	return nil
}

// printBudgetShares draws each budget line as a bar scaled to the largest.
func printBudgetShares(b model.MonthlyBudget) {
	lines := b.Lines()
	maxAmt, labelW := 0.0, 0
	for _, l := range lines {
		maxAmt = max(maxAmt, l.Amount)
		labelW = max(labelW, len(l.Label))
	}
	if maxAmt <= 0 {
		return
	}
	fmt.Println(cli.Header("  Where it goes"))
	for _, l := range lines {
		label := fmt.Sprintf("%-*s %7s", labelW, l.Label, cli.FormatMoney(l.Amount))
		fmt.Println(cli.RenderHorizontalBar(label, l.Amount, maxAmt, 30))
	}
	fmt.Println()
}

func profileRows(p model.Profile) [][]string {
	orDash := func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	}
	yesNo := func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	}

	modes := make([]string, len(p.TransportModes))
	for i, m := range p.TransportModes {
		modes[i] = string(m)
	}

	pass := ""
	if p.TransportUnlimited {
		pass = ", unlimited pass"
	}

	billing := p.PhoneBilling
	if billing == "" {
		billing = model.BillingMonthly
	}

	rows := [][]string{
		{"Name", orDash(p.Name)},
		{"International", yesNo(p.IsInternational)},
		{"School", orDash(p.School)},
		{"Program", orDash(p.Program)},
		{"Staying", orDash(string(p.LivingDuration))},
		{"Campus", orDash(p.Campus)},
		{"Housing", orDash(p.LivingType)},
		{"Neighborhood", orDash(p.Neighborhood)},
		{"---"},
		{"Rent", cli.FormatCents(p.Rent)},
		{"Roommates", fmt.Sprintf("%d", p.Roommates)},
		{"Utilities split", yesNo(p.UtilitiesSplit)},
		{"Phone", fmt.Sprintf("%s %s (%s)", orDash(p.PhoneProvider), cli.FormatCents(p.PhoneCost), billing)},
		{"---"},
	}

	switch f := p.Food.(type) {
	case model.DetailedFood:
		rows = append(rows,
			[]string{"Cooking / week", fmt.Sprintf("%d", f.CookingPerWeek)},
			[]string{"Eating out / week", fmt.Sprintf("%d × %s", f.EatingOutPerWeek, cli.FormatCents(f.AvgMealCost))},
			[]string{"Food preview", cli.FormatMoney(budget.FoodPreview(p)) + "/mo"},
		)
	case model.FlatGroceries:
		rows = append(rows, []string{"Groceries", cli.FormatCents(f.GroceriesBudget) + "/mo"})
	default:
		rows = append(rows, []string{"Food", "-"})
	}

	rows = append(rows,
		[]string{"Transport", fmt.Sprintf("%s, %d days/week, %s/mo%s", orDash(strings.Join(modes, ", ")), p.TransportDaysPerWeek, cli.FormatCents(p.TransportCost), pass)},
		[]string{"Coffee", fmt.Sprintf("%d/week × %s", p.CoffeePerWeek, cli.FormatCents(p.CoffeeCost))},
		[]string{"Shopping", cli.FormatCents(p.ShoppingMonthly) + "/mo"},
		[]string{"Going out", fmt.Sprintf("%d/month × %s", p.PartyPerMonth, cli.FormatCents(p.PartyCost))},
	)
	return rows
}
