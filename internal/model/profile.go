// Package model defines domain types for the spendora budget ledger.
package model

// BillingPeriod is how often the phone plan is billed.
type BillingPeriod string

const (
	BillingMonthly BillingPeriod = "monthly"
	BillingYearly  BillingPeriod = "yearly"
)

// LivingDuration is how long the student expects to stay.
type LivingDuration string

const (
	DurationUnder3Months LivingDuration = "<3 months"
	Duration3To12Months  LivingDuration = "3-12 months"
	DurationOverYear     LivingDuration = ">1 year"
)

// LivingDurations lists the accepted durations in display order.
var LivingDurations = []LivingDuration{DurationUnder3Months, Duration3To12Months, DurationOverYear}

// TransportMode is one way of getting to campus.
type TransportMode string

const (
	TransportSubway   TransportMode = "Subway"
	TransportBus      TransportMode = "Bus"
	TransportRideHail TransportMode = "Uber/Taxi"
	TransportWalk     TransportMode = "Walk"
)

// TransportModes lists the accepted modes in display order.
var TransportModes = []TransportMode{TransportSubway, TransportBus, TransportRideHail, TransportWalk}

// UserMode records which onboarding narrative was shown.
type UserMode string

const (
	ModeCurrent  UserMode = "current"
	ModeIncoming UserMode = "incoming"
)

// FoodPlan is either DetailedFood or FlatGroceries. The two onboarding
// flows collect incompatible food data, so a profile carries exactly one.
type FoodPlan interface {
	foodPlanKind() string
}

// DetailedFood is the cadence-based food plan from the full onboarding flow.
type DetailedFood struct {
	CookingPerWeek   int
	EatingOutPerWeek int
	AvgMealCost      float64
}

func (DetailedFood) foodPlanKind() string { return foodPlanDetailed }

// FlatGroceries is the single monthly groceries figure from the simple flow.
type FlatGroceries struct {
	GroceriesBudget float64
}

func (FlatGroceries) foodPlanKind() string { return foodPlanFlat }

const (
	foodPlanDetailed = "detailed"
	foodPlanFlat     = "flat"
)

// Profile holds the user's declared monthly cost assumptions.
// Money fields are monthly shares in the user's currency unless noted.
type Profile struct {
	Name            string
	IsInternational bool
	School          string
	Program         string
	LivingDuration  LivingDuration
	Campus          string
	LivingType      string
	Neighborhood    string

	Rent           float64
	Roommates      int
	UtilitiesSplit bool
	WiFi           float64
	Electricity    float64
	Gas            float64

	PhoneProvider string
	PhoneCost     float64 // per billing period
	PhoneBilling  BillingPeriod

	Food FoodPlan

	TransportDaysPerWeek int
	TransportModes       []TransportMode
	TransportUnlimited   bool    // holds an unlimited monthly pass; descriptive only
	TransportCost        float64 // user-entered monthly budget

	CoffeePerWeek   int
	CoffeeCost      float64 // per cup
	ShoppingMonthly float64
	PartyPerMonth   int
	PartyCost       float64 // per occasion
}

// GroceriesBudget returns the flat groceries figure, or 0 for any other plan.
func (p Profile) GroceriesBudget() float64 {
	if f, ok := p.Food.(FlatGroceries); ok {
		return f.GroceriesBudget
	}
	return 0
}

// DetailedFood returns the cadence plan if the profile uses one.
func (p Profile) DetailedFood() (DetailedFood, bool) {
	d, ok := p.Food.(DetailedFood)
	return d, ok
}
