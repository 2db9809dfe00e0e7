package coach

import (
	"strings"
	"testing"

	"github.com/theirongolddev/spendora/internal/model"
)

func TestCoachPrompt_Sections(t *testing.T) {
	p := model.Profile{Name: "Ari", School: "Stern", IsInternational: true}
	b := model.MonthlyBudget{Rent: 1450.5, Coffee: 90, Utilities: 95.5}
	st := model.MonthStats{TotalSpent: 312.25, DaysPassed: 10, DaysRemaining: 21}

	got := CoachPrompt("Am I on track?", p, b, st)

	for _, want := range []string{
		"You are Violet",
		"- International: true",
		"- School: Stern",
		"- Program: Not specified",
		"- Name: Ari",
		"- Rent: $1450.5",
		"- Coffee: $90",
		"- Utilities: $95.5",
		"- Total spent so far: $312.25",
		"- Days remaining: 21",
		`The student just asked: "Am I on track?"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestCoachPrompt_Defaults(t *testing.T) {
	got := CoachPrompt("hi", model.Profile{}, model.MonthlyBudget{}, model.MonthStats{})
	if !strings.Contains(got, "- Name: Student") || !strings.Contains(got, "- International: Not specified") {
		t.Errorf("defaults missing:\n%s", got)
	}
}

func TestSuggestionPrompt(t *testing.T) {
	detailed := model.Profile{
		Rent: 1200,
		Food: model.DetailedFood{CookingPerWeek: 4, EatingOutPerWeek: 3},
	}
	got := SuggestionPrompt("eating_out", detailed)
	for _, want := range []string{`for the "eating_out" category`, "- Cooking at Home: 4 meals/week", "- Eating Out: 3 meals/week", "- Rent: $1200/month"} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	flat := model.Profile{Food: model.FlatGroceries{GroceriesBudget: 250}}
	if got := SuggestionPrompt("groceries", flat); !strings.Contains(got, "- Groceries: $250/month") {
		t.Errorf("flat prompt missing groceries line:\n%s", got)
	}
}
