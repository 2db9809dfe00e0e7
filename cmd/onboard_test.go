package cmd

import (
	"reflect"
	"strings"
	"testing"

	"github.com/theirongolddev/spendora/internal/budget"
	"github.com/theirongolddev/spendora/internal/model"
)

func TestOnboardValues_DetailedProfile(t *testing.T) {
	v := onboardValues{
		Name:           "  Ada ",
		International:  true,
		School:         "Tandon",
		Duration:       "3-12 months",
		Rent:           "1200",
		Roommates:      "2",
		WiFi:           "30",
		Electricity:    "$25",
		Gas:            "10",
		PhoneCost:      "120",
		PhoneYearly:    true,
		Cooking:        "10",
		EatingOut:      "5",
		MealCost:       "12",
		Groceries:      "999", // ignored by the detailed plan
		TransportDays:  "5",
		TransportModes: []string{"Walk", "Subway"},
		TransportCost:  "80",
		CoffeePerWeek:  "5",
		CoffeeCost:     "6",
		Shopping:       "80",
		PartyPerMonth:  "4",
		PartyCost:      "30",
	}

	p, err := v.profile(false)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.Name != "Ada" {
		t.Errorf("Name = %q", p.Name)
	}
	if p.PhoneBilling != model.BillingYearly {
		t.Errorf("PhoneBilling = %q", p.PhoneBilling)
	}
	want := model.DetailedFood{CookingPerWeek: 10, EatingOutPerWeek: 5, AvgMealCost: 12}
	if got, ok := p.DetailedFood(); !ok || got != want {
		t.Errorf("Food = %#v", p.Food)
	}

	b := budget.Derive(p)
	if b.Phone != 10 || b.Utilities != 65 || b.EatingOut != 240 || b.Groceries != 0 {
		t.Errorf("derived budget = %+v", b)
	}
	if b.Entertainment != 120 || b.Coffee != 120 {
		t.Errorf("derived budget = %+v", b)
	}
}

func TestOnboardValues_SimpleProfile(t *testing.T) {
	v := onboardValues{
		Rent:          "900",
		Groceries:     "250",
		Cooking:       "10", // not collected by the short form
		Gas:           "15",
		PartyPerMonth: "3",
	}
	p, err := v.profile(true)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.GroceriesBudget() != 250 {
		t.Errorf("GroceriesBudget = %v", p.GroceriesBudget())
	}
	if _, ok := p.DetailedFood(); ok {
		t.Error("short form must use the flat groceries plan")
	}
	if p.Gas != 0 || p.PartyPerMonth != 0 {
		t.Errorf("detailed-only fields leaked: gas=%v party=%d", p.Gas, p.PartyPerMonth)
	}
}

func TestOnboardValues_BlankIsZero(t *testing.T) {
	p, err := onboardValues{}.profile(false)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if b := budget.Derive(p); b.Total != 0 {
		t.Errorf("blank form total = %v, want 0", b.Total)
	}
}

func TestOnboardValues_InvalidNumbers(t *testing.T) {
	_, err := onboardValues{Rent: "-5", Roommates: "two"}.profile(true)
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, field := range []string{"rent", "roommates"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not name %s", err, field)
		}
	}
}

func TestValuesFromProfileRoundTrip(t *testing.T) {
	v := onboardValues{
		Name:           "Sam",
		School:         "Stern",
		Rent:           "1450.5",
		Roommates:      "1",
		WiFi:           "40",
		PhoneProvider:  "Mint",
		PhoneCost:      "15",
		Cooking:        "7",
		EatingOut:      "3",
		MealCost:       "14.25",
		TransportModes: []string{"Subway"},
		Unlimited:      true,
		TransportCost:  "132",
	}
	p, err := v.profile(false)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	back := valuesFromProfile(p)
	if !reflect.DeepEqual(back, v) {
		t.Errorf("round trip:\n got %+v\nwant %+v", back, v)
	}
}

func TestValidators(t *testing.T) {
	if validateMoney("") != nil || validateMoney("12.50") != nil {
		t.Error("valid money rejected")
	}
	if validateMoney("abc") == nil || validateMoney("-1") == nil {
		t.Error("invalid money accepted")
	}
	if validateCount("3") != nil || validateCount(" ") != nil {
		t.Error("valid count rejected")
	}
	if validateCount("1.5") == nil || validateCount("-2") == nil {
		t.Error("invalid count accepted")
	}
}
