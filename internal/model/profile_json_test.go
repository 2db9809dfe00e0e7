package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestProfileJSON_WritesOnlyActiveFoodVariant(t *testing.T) {
	p := Profile{Food: FlatGroceries{GroceriesBudget: 250}}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.Contains(s, `"food_plan":"flat"`) || !strings.Contains(s, `"groceries_budget":250`) {
		t.Errorf("flat profile encoded as %s", s)
	}
	if strings.Contains(s, "avg_meal_cost") || strings.Contains(s, "eating_out_per_week") {
		t.Errorf("flat profile leaked cadence fields: %s", s)
	}
}

func TestProfileJSON_ZeroDetailedSurvives(t *testing.T) {
	p := Profile{Food: DetailedFood{}}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	var got Profile
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if _, ok := got.DetailedFood(); !ok {
		t.Errorf("zero detailed plan decoded as %#v from %s", got.Food, data)
	}
}

func TestProfileJSON_LegacyClassification(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"groceries key means flat", `{"groceries_budget":300}`, foodPlanFlat},
		{"cadence keys mean detailed", `{"cooking_per_week":4,"avg_meal_cost":12}`, foodPlanDetailed},
		{"both present prefers flat", `{"groceries_budget":300,"eating_out_per_week":2}`, foodPlanFlat},
		{"no food keys", `{"rent":900}`, ""},
		{"tag wins", `{"food_plan":"detailed","groceries_budget":300}`, foodPlanDetailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Profile
			if err := json.Unmarshal([]byte(tt.in), &p); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			got := ""
			if p.Food != nil {
				got = p.Food.foodPlanKind()
			}
			if got != tt.want {
				t.Errorf("plan = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProfileJSON_UnknownPlan(t *testing.T) {
	var p Profile
	if err := json.Unmarshal([]byte(`{"food_plan":"keto"}`), &p); err == nil {
		t.Fatal("expected error for unknown food plan")
	}
}

func TestProfileJSON_LegacyPhoneYearly(t *testing.T) {
	var p Profile
	if err := json.Unmarshal([]byte(`{"phone_cost":1200,"phone_yearly":true}`), &p); err != nil {
		t.Fatal(err)
	}
	if p.PhoneBilling != BillingYearly {
		t.Errorf("PhoneBilling = %q, want yearly", p.PhoneBilling)
	}

	if err := json.Unmarshal([]byte(`{"phone_billing":"monthly","phone_yearly":true}`), &p); err != nil {
		t.Fatal(err)
	}
	if p.PhoneBilling != BillingMonthly {
		t.Errorf("explicit phone_billing overridden by legacy flag: %q", p.PhoneBilling)
	}
}

func TestProfileJSON_TransportUnlimitedSurvivesRewrite(t *testing.T) {
	var p Profile
	if err := json.Unmarshal([]byte(`{"transport_cost":133,"transport_unlimited":true}`), &p); err != nil {
		t.Fatal(err)
	}
	if !p.TransportUnlimited {
		t.Fatal("transport_unlimited not decoded")
	}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"transport_unlimited":true`) {
		t.Errorf("re-encoded profile dropped transport_unlimited: %s", data)
	}
}
