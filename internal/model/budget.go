package model

// MonthlyBudget holds the derived monthly target per budget line.
// It is always recomputed from a Profile and never persisted.
type MonthlyBudget struct {
	Rent          float64 `json:"rent"`
	Utilities     float64 `json:"utilities"`
	Phone         float64 `json:"phone"`
	Groceries     float64 `json:"groceries"`
	EatingOut     float64 `json:"eatingOut"`
	Coffee        float64 `json:"coffee"`
	Transport     float64 `json:"transport"`
	Shopping      float64 `json:"shopping"`
	Entertainment float64 `json:"entertainment"`
	Total         float64 `json:"total"`
}

// Target returns the monthly target that a logged category is measured
// against. Other has no dedicated budget line and reports false.
func (b MonthlyBudget) Target(c Category) (float64, bool) {
	switch c {
	case CategoryGroceries:
		return b.Groceries, true
	case CategoryEatingOut:
		return b.EatingOut, true
	case CategoryCoffee:
		return b.Coffee, true
	case CategoryTransport:
		return b.Transport, true
	}
	return 0, false
}

// BudgetLine is one named row of a MonthlyBudget, for rendering.
type BudgetLine struct {
	Label  string
	Amount float64
}

// Lines returns the nine budget components in display order.
func (b MonthlyBudget) Lines() []BudgetLine {
	return []BudgetLine{
		{"Rent", b.Rent},
		{"Utilities", b.Utilities},
		{"Phone", b.Phone},
		{"Groceries", b.Groceries},
		{"Eating Out", b.EatingOut},
		{"Coffee & Snacks", b.Coffee},
		{"Transport", b.Transport},
		{"Shopping", b.Shopping},
		{"Entertainment", b.Entertainment},
	}
}
