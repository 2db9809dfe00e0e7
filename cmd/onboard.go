package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/spendora/internal/budget"
	"github.com/theirongolddev/spendora/internal/cli"
	"github.com/theirongolddev/spendora/internal/logger"
	"github.com/theirongolddev/spendora/internal/model"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagOnboardSimple bool
	flagOnboardMode   string
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Set up your budget profile",
	Args:  cobra.NoArgs,
	RunE:  runOnboard,
}

var (
	schoolOptions     = []string{"Tandon", "CAS", "Stern", "GSAS", "Gallatin", "Tisch", "Steinhardt", "School of Medicine", "Other"}
	programOptions    = []string{"MS Computer Science", "MS Computer Engineering", "BS Business", "MS Finance", "MS Data Science", "Other"}
	livingTypeOptions = []string{"Shared room", "Private room", "Private + attached washroom"}
	providerOptions   = []string{"US Mobile", "Mint", "Verizon", "T-Mobile", "Other"}
)

func init() {
	onboardCmd.Flags().BoolVar(&flagOnboardSimple, "simple", false, "Short form with a single monthly groceries budget")
	onboardCmd.Flags().StringVar(&flagOnboardMode, "mode", "", "Onboarding narrative: current or incoming (default: stored mode)")
	rootCmd.AddCommand(onboardCmd)
}

// onboardValues holds raw form input. Numbers stay strings until the form
// completes so partially typed values never reach the profile.
type onboardValues struct {
	Name           string
	International  bool
	School         string
	Program        string
	Duration       string
	Campus         string
	LivingType     string
	Neighborhood   string
	Rent           string
	Roommates      string
	UtilitiesSplit bool
	WiFi           string
	Electricity    string
	Gas            string
	PhoneProvider  string
	PhoneCost      string
	PhoneYearly    bool
	Cooking        string
	EatingOut      string
	MealCost       string
	Groceries      string
	TransportDays  string
	TransportModes []string
	Unlimited      bool
	TransportCost  string
	CoffeePerWeek  string
	CoffeeCost     string
	Shopping       string
	PartyPerMonth  string
	PartyCost      string
}

func runOnboard(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	ledger, closeLedger, err := openLedger()
	if err != nil {
		return err
	}
	defer closeLedger()

	mode, err := ledger.Profiles.Mode(ctx)
	if err != nil {
		return err
	}
	if flagOnboardMode != "" {
		mode = model.UserMode(strings.ToLower(flagOnboardMode))
		if mode != model.ModeCurrent && mode != model.ModeIncoming {
			return fmt.Errorf("unknown mode %q (expected current or incoming)", flagOnboardMode)
		}
	}

	existing, err := ledger.Profiles.Load(ctx)
	if err != nil {
		return err
	}
	vals := valuesFromProfile(existing)

	form := onboardForm(&vals, mode, flagOnboardSimple).WithTheme(huh.ThemeCharm())
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("\n  Onboarding cancelled, nothing saved.")
			return nil
		}
		return fmt.Errorf("onboarding form: %w", err)
	}

	p, err := vals.profile(flagOnboardSimple)
	if err != nil {
		return err
	}
	if err := ledger.Profiles.Save(ctx, p); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	if err := ledger.Profiles.SetMode(ctx, mode); err != nil {
		return err
	}
	if err := ledger.Profiles.SetOnboardingComplete(ctx, true); err != nil {
		return err
	}
	logger.Get().Info("profile saved", zap.String("mode", string(mode)), zap.Bool("simple", flagOnboardSimple))

	b := budget.Derive(p)
	fmt.Println()
	fmt.Printf("  %s\n", cli.Good("Profile saved."))
	fmt.Printf("  Monthly budget: %s  (%s/day over 30 days)\n",
		cli.FormatMoney(b.Total), cli.FormatMoney(budget.DailyTargetFromTotal(b)))
	if _, ok := p.DetailedFood(); ok {
		fmt.Printf("  Estimated food spend: %s/month\n", cli.FormatMoney(budget.FoodPreview(p)))
	}
	fmt.Println("  Run `spendora` for the full breakdown.")
	fmt.Println()
	return nil
}

func onboardForm(v *onboardValues, mode model.UserMode, simple bool) *huh.Form {
	welcome := "Planning your NYC adventure? Let's budget for it!"
	if mode == model.ModeCurrent {
		welcome = "You're already here! Let's explore your spending."
	}
	intro := huh.NewGroup(
		huh.NewNote().
			Title("Welcome to NYC!").
			Description(welcome + "\n\nAnswer a few questions to get personalized budget insights."),
	)

	if simple {
		return huh.NewForm(
			intro,
			huh.NewGroup(
				huh.NewInput().Title("Name (optional)").Placeholder("Your name").Value(&v.Name),
				huh.NewConfirm().Title("Are you an international student?").Value(&v.International),
			).Title("Basic Profile"),
			huh.NewGroup(
				moneyInput("Monthly Rent ($)", "1200", &v.Rent),
				countInput("Number of Roommates", "2", &v.Roommates),
				moneyInput("Wi-Fi per month ($)", "30", &v.WiFi),
				moneyInput("Electricity per month ($)", "25", &v.Electricity),
			).Title("Housing"),
			huh.NewGroup(
				moneyInput("Monthly Groceries Budget ($)", "250", &v.Groceries),
			).Title("Food"),
			huh.NewGroup(
				countInput("Days per week to campus", "5", &v.TransportDays),
				moneyInput("Monthly Transport Budget ($)", "80", &v.TransportCost),
			).Title("Transport"),
			huh.NewGroup(
				countInput("Coffee/snacks per week", "5", &v.CoffeePerWeek),
				moneyInput("Average coffee cost ($)", "6", &v.CoffeeCost),
				moneyInput("Monthly shopping budget ($)", "80", &v.Shopping),
			).Title("Lifestyle"),
		)
	}

	durations := make([]string, len(model.LivingDurations))
	for i, d := range model.LivingDurations {
		durations[i] = string(d)
	}
	modes := make([]string, len(model.TransportModes))
	for i, m := range model.TransportModes {
		modes[i] = string(m)
	}

	return huh.NewForm(
		intro,
		huh.NewGroup(
			huh.NewInput().Title("Name (optional)").Placeholder("Your name").Value(&v.Name),
			huh.NewConfirm().Title("International student?").Value(&v.International),
			optionalSelect("School", schoolOptions, &v.School),
			optionalSelect("Program", programOptions, &v.Program),
			optionalSelect("How long are you staying?", durations, &v.Duration),
			huh.NewInput().Title("Campus").Placeholder("e.g., Washington Square, Brooklyn").Value(&v.Campus),
		).Title("Basic Profile").Description("Tell us about yourself"),
		huh.NewGroup(
			optionalSelect("Living type", livingTypeOptions, &v.LivingType),
			moneyInput("Monthly rent ($)", "1200", &v.Rent),
			countInput("Roommates", "2", &v.Roommates),
			huh.NewInput().Title("Neighborhood").Placeholder("e.g., Astoria, Williamsburg").Value(&v.Neighborhood),
		).Title("Housing"),
		huh.NewGroup(
			huh.NewConfirm().Title("Split utilities with roommates?").Value(&v.UtilitiesSplit),
			moneyInput("Wi-Fi per month ($)", "30", &v.WiFi),
			moneyInput("Electricity per month ($)", "25", &v.Electricity),
			moneyInput("Gas per month ($)", "10", &v.Gas),
		).Title("Utilities").Description("Enter your share of each bill"),
		huh.NewGroup(
			optionalSelect("Phone provider", providerOptions, &v.PhoneProvider),
			moneyInput("Plan cost ($)", "30", &v.PhoneCost),
			huh.NewConfirm().Title("Billed yearly?").Affirmative("Yearly").Negative("Monthly").Value(&v.PhoneYearly),
		).Title("Phone"),
		huh.NewGroup(
			countInput("Meals cooked at home per week", "10", &v.Cooking),
			countInput("Meals eaten out per week", "5", &v.EatingOut),
			moneyInput("Average cost per meal outside ($)", "12", &v.MealCost),
		).Title("Food"),
		huh.NewGroup(
			countInput("Days per week to campus", "5", &v.TransportDays),
			huh.NewMultiSelect[string]().
				Title("How do you get around?").
				Options(huh.NewOptions(modes...)...).
				Value(&v.TransportModes),
			huh.NewConfirm().Title("Unlimited MetroCard?").Description("NYC unlimited: $133/month").Value(&v.Unlimited),
			moneyInput("Monthly transport budget ($)", "80", &v.TransportCost),
		).Title("Transport"),
		huh.NewGroup(
			countInput("Coffee/snacks per week", "5", &v.CoffeePerWeek),
			moneyInput("Average coffee cost ($)", "6", &v.CoffeeCost),
			moneyInput("Monthly shopping budget ($)", "80", &v.Shopping),
			countInput("Nights out per month", "4", &v.PartyPerMonth),
			moneyInput("Average cost per night out ($)", "30", &v.PartyCost),
		).Title("Lifestyle"),
	)
}

func optionalSelect(title string, options []string, dst *string) *huh.Select[string] {
	opts := []huh.Option[string]{huh.NewOption("Skip", "")}
	opts = append(opts, huh.NewOptions(options...)...)
	return huh.NewSelect[string]().Title(title).Options(opts...).Value(dst)
}

func moneyInput(title, placeholder string, dst *string) *huh.Input {
	return huh.NewInput().Title(title).Placeholder(placeholder).Value(dst).Validate(validateMoney)
}

func countInput(title, placeholder string, dst *string) *huh.Input {
	return huh.NewInput().Title(title).Placeholder(placeholder).Value(dst).Validate(validateCount)
}

func validateMoney(s string) error {
	_, err := parseMoney(s)
	return err
}

func validateCount(s string) error {
	_, err := parseCount(s)
	return err
}

// parseMoney treats blank input as zero.
func parseMoney(s string) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	v, err := model.ParseAmount(s)
	if err != nil {
		return 0, errors.New("enter a non-negative amount")
	}
	return v, nil
}

// parseCount treats blank input as zero.
func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New("enter a whole number, 0 or more")
	}
	return n, nil
}

// profile converts the form input. simple selects the flat groceries plan
// and leaves the detailed-only fields empty.
func (v onboardValues) profile(simple bool) (model.Profile, error) {
	var errs []error
	money := func(field, s string) float64 {
		n, err := parseMoney(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
		}
		return n
	}
	count := func(field, s string) int {
		n, err := parseCount(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
		}
		return n
	}

	p := model.Profile{
		Name:                 strings.TrimSpace(v.Name),
		IsInternational:      v.International,
		Rent:                 money("rent", v.Rent),
		Roommates:            count("roommates", v.Roommates),
		WiFi:                 money("wifi", v.WiFi),
		Electricity:          money("electricity", v.Electricity),
		TransportDaysPerWeek: count("transport days", v.TransportDays),
		TransportCost:        money("transport cost", v.TransportCost),
		CoffeePerWeek:        count("coffee per week", v.CoffeePerWeek),
		CoffeeCost:           money("coffee cost", v.CoffeeCost),
		ShoppingMonthly:      money("shopping", v.Shopping),
		PhoneBilling:         model.BillingMonthly,
	}

	if simple {
		p.Food = model.FlatGroceries{GroceriesBudget: money("groceries", v.Groceries)}
		return p, errors.Join(errs...)
	}

	p.School = v.School
	p.Program = v.Program
	p.LivingDuration = model.LivingDuration(v.Duration)
	p.Campus = strings.TrimSpace(v.Campus)
	p.LivingType = v.LivingType
	p.Neighborhood = strings.TrimSpace(v.Neighborhood)
	p.UtilitiesSplit = v.UtilitiesSplit
	p.Gas = money("gas", v.Gas)
	p.PhoneProvider = v.PhoneProvider
	p.PhoneCost = money("phone cost", v.PhoneCost)
	if v.PhoneYearly {
		p.PhoneBilling = model.BillingYearly
	}
	p.Food = model.DetailedFood{
		CookingPerWeek:   count("cooking per week", v.Cooking),
		EatingOutPerWeek: count("eating out per week", v.EatingOut),
		AvgMealCost:      money("meal cost", v.MealCost),
	}
	for _, m := range v.TransportModes {
		p.TransportModes = append(p.TransportModes, model.TransportMode(m))
	}
	p.TransportUnlimited = v.Unlimited
	p.PartyPerMonth = count("nights out", v.PartyPerMonth)
	p.PartyCost = money("night out cost", v.PartyCost)

	return p, errors.Join(errs...)
}

// valuesFromProfile prefills the form from a stored profile so re-running
// onboarding edits rather than starts over.
func valuesFromProfile(p model.Profile) onboardValues {
	money := func(f float64) string {
		if f == 0 {
			return ""
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	count := func(n int) string {
		if n == 0 {
			return ""
		}
		return strconv.Itoa(n)
	}

	v := onboardValues{
		Name:           p.Name,
		International:  p.IsInternational,
		School:         p.School,
		Program:        p.Program,
		Duration:       string(p.LivingDuration),
		Campus:         p.Campus,
		LivingType:     p.LivingType,
		Neighborhood:   p.Neighborhood,
		Rent:           money(p.Rent),
		Roommates:      count(p.Roommates),
		UtilitiesSplit: p.UtilitiesSplit,
		WiFi:           money(p.WiFi),
		Electricity:    money(p.Electricity),
		Gas:            money(p.Gas),
		PhoneProvider:  p.PhoneProvider,
		PhoneCost:      money(p.PhoneCost),
		PhoneYearly:    p.PhoneBilling == model.BillingYearly,
		TransportDays:  count(p.TransportDaysPerWeek),
		Unlimited:      p.TransportUnlimited,
		TransportCost:  money(p.TransportCost),
		CoffeePerWeek:  count(p.CoffeePerWeek),
		CoffeeCost:     money(p.CoffeeCost),
		Shopping:       money(p.ShoppingMonthly),
		PartyPerMonth:  count(p.PartyPerMonth),
		PartyCost:      money(p.PartyCost),
	}
	for _, m := range p.TransportModes {
		v.TransportModes = append(v.TransportModes, string(m))
	}
	switch f := p.Food.(type) {
	case model.DetailedFood:
		v.Cooking = count(f.CookingPerWeek)
		v.EatingOut = count(f.EatingOutPerWeek)
		v.MealCost = money(f.AvgMealCost)
	case model.FlatGroceries:
		v.Groceries = money(f.GroceriesBudget)
	}
	return v
}
