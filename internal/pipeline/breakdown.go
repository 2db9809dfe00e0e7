package pipeline

import "github.com/theirongolddev/spendora/internal/model"

// CategoryBreakdown compares one category's spending with its monthly target.
type CategoryBreakdown struct {
	Category  model.Category
	Target    float64
	HasTarget bool
	Spent     float64
	Remaining float64 // Target - Spent; negative when over budget
	Percent   float64 // Spent / Target, 0 without a target
}

// Over reports whether spending exceeded a set target.
func (b CategoryBreakdown) Over() bool {
	return b.HasTarget && b.Spent > b.Target
}

// AggregateBreakdown joins budget targets with actual spending for every
// category, in display order.
func AggregateBreakdown(logs []model.DailyLogEntry, budget model.MonthlyBudget, rng DateRange) []CategoryBreakdown {
	totals := Totals(logs, rng)

	rows := make([]CategoryBreakdown, 0, len(model.Categories))
	for _, c := range model.Categories {
		row := CategoryBreakdown{
			Category: c,
			Spent:    totals.Get(c),
		}
		row.Target, row.HasTarget = budget.Target(c)
		if row.HasTarget {
			row.Remaining = row.Target - row.Spent
			if row.Target > 0 {
				row.Percent = row.Spent / row.Target
			}
		}
		rows = append(rows, row)
	}
	return rows
}
