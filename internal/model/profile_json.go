package model

import (
	"encoding/json"
	"fmt"
)

// profileJSON is the persisted layout of a Profile. Key names follow the
// records written by earlier versions of the app, hence the mixed casing.
type profileJSON struct {
	Name           string  `json:"name,omitempty"`
	International  bool    `json:"international,omitempty"`
	School         string  `json:"school,omitempty"`
	Program        string  `json:"program,omitempty"`
	Duration       string  `json:"duration,omitempty"`
	Campus         string  `json:"campus,omitempty"`
	LivingType     string  `json:"livingType,omitempty"`
	Neighborhood   string  `json:"neighborhood,omitempty"`
	Rent           float64 `json:"rent,omitempty"`
	Roommates      int     `json:"roommates,omitempty"`
	UtilitiesSplit bool    `json:"utilities_split,omitempty"`
	WiFi           float64 `json:"wifi,omitempty"`
	Electricity    float64 `json:"electricity,omitempty"`
	Gas            float64 `json:"gas,omitempty"`
	PhoneProvider  string  `json:"phone_provider,omitempty"`
	PhoneCost      float64 `json:"phone_cost,omitempty"`
	PhoneBilling   string  `json:"phone_billing,omitempty"`
	PhoneYearly    *bool   `json:"phone_yearly,omitempty"`

	FoodPlan         string   `json:"food_plan,omitempty"`
	CookingPerWeek   *int     `json:"cooking_per_week,omitempty"`
	EatingOutPerWeek *int     `json:"eating_out_per_week,omitempty"`
	AvgMealCost      *float64 `json:"avg_meal_cost,omitempty"`
	GroceriesBudget  *float64 `json:"groceries_budget,omitempty"`

	TransportDays      int      `json:"transport_days,omitempty"`
	TransportModes     []string `json:"transport_modes,omitempty"`
	TransportUnlimited bool     `json:"transport_unlimited,omitempty"`
	TransportCost      float64  `json:"transport_cost,omitempty"`

	CoffeePerWeek   int     `json:"coffee_per_week,omitempty"`
	CoffeeCost      float64 `json:"coffee_cost,omitempty"`
	ShoppingMonthly float64 `json:"shopping_monthly,omitempty"`
	PartyPerMonth   int     `json:"party_per_month,omitempty"`
	PartyCost       float64 `json:"party_cost,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (p Profile) MarshalJSON() ([]byte, error) {
	w := profileJSON{
		Name:               p.Name,
		International:      p.IsInternational,
		School:             p.School,
		Program:            p.Program,
		Duration:           string(p.LivingDuration),
		Campus:             p.Campus,
		LivingType:         p.LivingType,
		Neighborhood:       p.Neighborhood,
		Rent:               p.Rent,
		Roommates:          p.Roommates,
		UtilitiesSplit:     p.UtilitiesSplit,
		WiFi:               p.WiFi,
		Electricity:        p.Electricity,
		Gas:                p.Gas,
		PhoneProvider:      p.PhoneProvider,
		PhoneCost:          p.PhoneCost,
		PhoneBilling:       string(p.PhoneBilling),
		TransportDays:      p.TransportDaysPerWeek,
		TransportCost:      p.TransportCost,
		TransportUnlimited: p.TransportUnlimited,
		CoffeePerWeek:      p.CoffeePerWeek,
		CoffeeCost:         p.CoffeeCost,
		ShoppingMonthly:    p.ShoppingMonthly,
		PartyPerMonth:      p.PartyPerMonth,
		PartyCost:          p.PartyCost,
	}
	for _, m := range p.TransportModes {
		w.TransportModes = append(w.TransportModes, string(m))
	}

	switch f := p.Food.(type) {
	case DetailedFood:
		w.FoodPlan = foodPlanDetailed
		w.CookingPerWeek = &f.CookingPerWeek
		w.EatingOutPerWeek = &f.EatingOutPerWeek
		w.AvgMealCost = &f.AvgMealCost
	case FlatGroceries:
		w.FoodPlan = foodPlanFlat
		w.GroceriesBudget = &f.GroceriesBudget
	case nil:
	default:
		return nil, fmt.Errorf("model: unknown food plan %T", f)
	}

	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler.
//
// Records without a food_plan tag are classified by shape: a groceries_budget
// key means the flat plan, any cadence key means the detailed plan.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var w profileJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*p = Profile{
		Name:                 w.Name,
		IsInternational:      w.International,
		School:               w.School,
		Program:              w.Program,
		LivingDuration:       LivingDuration(w.Duration),
		Campus:               w.Campus,
		LivingType:           w.LivingType,
		Neighborhood:         w.Neighborhood,
		Rent:                 w.Rent,
		Roommates:            w.Roommates,
		UtilitiesSplit:       w.UtilitiesSplit,
		WiFi:                 w.WiFi,
		Electricity:          w.Electricity,
		Gas:                  w.Gas,
		PhoneProvider:        w.PhoneProvider,
		PhoneCost:            w.PhoneCost,
		PhoneBilling:         BillingPeriod(w.PhoneBilling),
		TransportDaysPerWeek: w.TransportDays,
		TransportUnlimited:   w.TransportUnlimited,
		TransportCost:        w.TransportCost,
		CoffeePerWeek:        w.CoffeePerWeek,
		CoffeeCost:           w.CoffeeCost,
		ShoppingMonthly:      w.ShoppingMonthly,
		PartyPerMonth:        w.PartyPerMonth,
		PartyCost:            w.PartyCost,
	}
	if p.PhoneBilling == "" && w.PhoneYearly != nil {
		if *w.PhoneYearly {
			p.PhoneBilling = BillingYearly
		} else {
			p.PhoneBilling = BillingMonthly
		}
	}
	for _, m := range w.TransportModes {
		p.TransportModes = append(p.TransportModes, TransportMode(m))
	}

	hasCadence := w.CookingPerWeek != nil || w.EatingOutPerWeek != nil || w.AvgMealCost != nil
	plan := w.FoodPlan
	if plan == "" {
		switch {
		case w.GroceriesBudget != nil:
			plan = foodPlanFlat
		case hasCadence:
			plan = foodPlanDetailed
		}
	}

	switch plan {
	case foodPlanFlat:
		p.Food = FlatGroceries{GroceriesBudget: derefFloat(w.GroceriesBudget)}
	case foodPlanDetailed:
		p.Food = DetailedFood{
			CookingPerWeek:   derefInt(w.CookingPerWeek),
			EatingOutPerWeek: derefInt(w.EatingOutPerWeek),
			AvgMealCost:      derefFloat(w.AvgMealCost),
		}
	case "":
	default:
		return fmt.Errorf("model: unknown food plan %q", plan)
	}

	return nil
}

func derefFloat(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
