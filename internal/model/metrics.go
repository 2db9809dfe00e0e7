package model

// CategoryTotals holds summed spending per logged category.
type CategoryTotals struct {
	Groceries float64
	EatingOut float64
	Coffee    float64
	Transport float64
	Other     float64
}

// Get returns the total for one category.
func (t CategoryTotals) Get(c Category) float64 {
	switch c {
	case CategoryGroceries:
		return t.Groceries
	case CategoryEatingOut:
		return t.EatingOut
	case CategoryCoffee:
		return t.Coffee
	case CategoryTransport:
		return t.Transport
	case CategoryOther:
		return t.Other
	}
	return 0
}

// Sum returns the total across every category.
func (t CategoryTotals) Sum() float64 {
	return t.Groceries + t.EatingOut + t.Coffee + t.Transport + t.Other
}

// MonthStats is the current-month status handed to the coach.
type MonthStats struct {
	TotalSpent     float64 `json:"totalSpent"`
	DaysPassed     int     `json:"daysPassed"`
	DaysRemaining  int     `json:"daysRemaining"`
	GroceriesSpent float64 `json:"groceriesSpent"`
	EatingOutSpent float64 `json:"eatingOutSpent"`
	CoffeeSpent    float64 `json:"coffeeSpent"`
	TransportSpent float64 `json:"transportSpent"`
	ShoppingSpent  float64 `json:"shoppingSpent"`
}

// DailyStats is one day in a spending history view.
type DailyStats struct {
	Date    string
	Logged  bool
	Cooking bool
	Spent   float64 // counted against the daily target
	Other   float64
}
