package budget

import "github.com/theirongolddev/spendora/internal/model"

// Advisory texts, in evaluation order.
const (
	AdviceCookInstead  = "You still have groceries at home. Try cooking instead of ordering out to save money!"
	AdviceCoffeeAdding = "Coffee spending is adding up. Consider brewing at home tomorrow!"
)

const (
	eatingOutShareOfGroceries = 0.3
	coffeeShareOfMonthly      = 0.5
)

// Suggest evaluates the rule-based advisories for one day's log. groceries is
// the profile's flat groceries figure (0 for the detailed plan). Both rules
// may fire; the eating-out rule always comes first.
func Suggest(day model.DailyLogEntry, b model.MonthlyBudget, groceries float64) []string {
	var out []string

	if day.EatingOut > groceries*eatingOutShareOfGroceries && !day.Cooking {
		out = append(out, AdviceCookInstead)
	}

	if day.Coffee > b.Coffee*coffeeShareOfMonthly {
		out = append(out, AdviceCoffeeAdding)
	}

	return out
}
