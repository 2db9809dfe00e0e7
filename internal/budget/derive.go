// Package budget derives monthly budget figures from a profile and
// evaluates the rule-based spending advisories.
package budget

import (
	"math"
	"slices"

	"github.com/theirongolddev/spendora/internal/model"
)

// DailyTarget is the fixed short-term daily spending cap shown on the today
// view. It is deliberately independent of the derived monthly total.
const DailyTarget = 50.0

const (
	weeksPerMonth = 4
	daysPerMonth  = 30
	monthsPerYear = 12

	// home-cooked meal cost used by the onboarding food preview
	homeMealCost = 3
)

// Derive computes the monthly budget for a profile. Absent fields are zero,
// so an empty profile yields an all-zero budget.
func Derive(p model.Profile) model.MonthlyBudget {
	var b model.MonthlyBudget

	b.Rent = p.Rent
	b.Utilities = p.WiFi + p.Electricity + p.Gas
	b.Phone = MonthlyPhone(p.PhoneCost, p.PhoneBilling)

	switch f := p.Food.(type) {
	case model.DetailedFood:
		b.EatingOut = float64(f.EatingOutPerWeek) * f.AvgMealCost * weeksPerMonth
	case model.FlatGroceries:
		b.Groceries = f.GroceriesBudget
	}

	b.Coffee = float64(p.CoffeePerWeek) * p.CoffeeCost * weeksPerMonth
	b.Transport = p.TransportCost
	b.Shopping = p.ShoppingMonthly
	b.Entertainment = float64(p.PartyPerMonth) * p.PartyCost

	b.Total = b.Rent + b.Utilities + b.Phone + b.Groceries + b.EatingOut +
		b.Coffee + b.Transport + b.Shopping + b.Entertainment

	return b
}

// MonthlyPhone converts a phone plan price to its monthly contribution.
func MonthlyPhone(cost float64, period model.BillingPeriod) float64 {
	if period == model.BillingYearly {
		return cost / monthsPerYear
	}
	return cost
}

// DailyTargetFromTotal spreads the monthly total over a fixed 30-day month.
func DailyTargetFromTotal(b model.MonthlyBudget) float64 {
	return b.Total / daysPerMonth
}

// FoodPreview is the onboarding estimate for the detailed food plan:
// eating out plus home-cooked meals. It is a preview only and does not feed
// the monthly total.
func FoodPreview(p model.Profile) float64 {
	d, ok := p.DetailedFood()
	if !ok {
		return p.GroceriesBudget()
	}
	eatingOut := float64(d.EatingOutPerWeek) * d.AvgMealCost * weeksPerMonth
	cooking := float64(d.CookingPerWeek) * homeMealCost * weeksPerMonth
	return eatingOut + cooking
}

// Normalize returns p with every default applied: non-finite or negative
// money and negative counts become 0, unknown enum values become empty (an
// empty billing period means monthly), and transport modes are deduplicated
// into display order. Normalize(model.Profile{}) is the zero Profile.
func Normalize(p model.Profile) model.Profile {
	p.Rent = money(p.Rent)
	p.Roommates = count(p.Roommates)
	p.WiFi = money(p.WiFi)
	p.Electricity = money(p.Electricity)
	p.Gas = money(p.Gas)
	p.PhoneCost = money(p.PhoneCost)
	if p.PhoneBilling != model.BillingYearly && p.PhoneBilling != model.BillingMonthly {
		p.PhoneBilling = ""
	}
	if !slices.Contains(model.LivingDurations, p.LivingDuration) {
		p.LivingDuration = ""
	}

	switch f := p.Food.(type) {
	case model.DetailedFood:
		p.Food = model.DetailedFood{
			CookingPerWeek:   count(f.CookingPerWeek),
			EatingOutPerWeek: count(f.EatingOutPerWeek),
			AvgMealCost:      money(f.AvgMealCost),
		}
	case model.FlatGroceries:
		p.Food = model.FlatGroceries{GroceriesBudget: money(f.GroceriesBudget)}
	}

	p.TransportDaysPerWeek = count(p.TransportDaysPerWeek)
	p.TransportModes = normalizeModes(p.TransportModes)
	p.TransportCost = money(p.TransportCost)

	p.CoffeePerWeek = count(p.CoffeePerWeek)
	p.CoffeeCost = money(p.CoffeeCost)
	p.ShoppingMonthly = money(p.ShoppingMonthly)
	p.PartyPerMonth = count(p.PartyPerMonth)
	p.PartyCost = money(p.PartyCost)

	return p
}

func money(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func count(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func normalizeModes(modes []model.TransportMode) []model.TransportMode {
	if len(modes) == 0 {
		return nil
	}
	var out []model.TransportMode
	for _, m := range model.TransportModes {
		if slices.Contains(modes, m) {
			out = append(out, m)
		}
	}
	return out
}
