package coach

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/spendora/internal/model"
)

// CoachPrompt builds the conversational prompt for one question.
func CoachPrompt(question string, p model.Profile, b model.MonthlyBudget, st model.MonthStats) string {
	var sb strings.Builder

	sb.WriteString("You are Violet, a friendly and encouraging budgeting assistant for NYU students in NYC. ")
	sb.WriteString("You help students understand their spending patterns and make smart financial decisions.\n\n")

	sb.WriteString("USER PROFILE:\n")
	international := "Not specified"
	if p.IsInternational {
		international = "true"
	}
	fmt.Fprintf(&sb, "- International: %s\n", international)
	fmt.Fprintf(&sb, "- School: %s\n", orDefault(p.School, "Not specified"))
	fmt.Fprintf(&sb, "- Program: %s\n", orDefault(p.Program, "Not specified"))
	fmt.Fprintf(&sb, "- Name: %s\n\n", orDefault(p.Name, "Student"))

	sb.WriteString("MONTHLY BUDGET:\n")
	fmt.Fprintf(&sb, "- Rent: $%s\n", num(b.Rent))
	fmt.Fprintf(&sb, "- Groceries: $%s\n", num(b.Groceries))
	fmt.Fprintf(&sb, "- Eating out: $%s\n", num(b.EatingOut))
	fmt.Fprintf(&sb, "- Coffee: $%s\n", num(b.Coffee))
	fmt.Fprintf(&sb, "- Transport: $%s\n", num(b.Transport))
	fmt.Fprintf(&sb, "- Shopping: $%s\n", num(b.Shopping))
	fmt.Fprintf(&sb, "- Party: $%s\n", num(b.Entertainment))
	fmt.Fprintf(&sb, "- Utilities: $%s\n\n", num(b.Utilities))

	sb.WriteString("CURRENT MONTH STATUS:\n")
	fmt.Fprintf(&sb, "- Total spent so far: $%s\n", num(st.TotalSpent))
	fmt.Fprintf(&sb, "- Days passed this month: %d\n", st.DaysPassed)
	fmt.Fprintf(&sb, "- Days remaining: %d\n", st.DaysRemaining)
	fmt.Fprintf(&sb, "- Groceries spent: $%s\n", num(st.GroceriesSpent))
	fmt.Fprintf(&sb, "- Eating out spent: $%s\n", num(st.EatingOutSpent))
	fmt.Fprintf(&sb, "- Coffee spent: $%s\n", num(st.CoffeeSpent))
	fmt.Fprintf(&sb, "- Transport spent: $%s\n", num(st.TransportSpent))
	fmt.Fprintf(&sb, "- Shopping spent: $%s\n\n", num(st.ShoppingSpent))

	fmt.Fprintf(&sb, "The student just asked: %q\n\n", question)
	sb.WriteString("Give a short, practical, and encouraging answer (2-4 sentences). Use simple language. ")
	sb.WriteString("Suggest concrete next steps. Be empathetic and understanding. ")
	sb.WriteString("Reference specific numbers from their budget when relevant.")

	return sb.String()
}

// SuggestionPrompt builds the single-shot advisory prompt for a category.
func SuggestionPrompt(category string, p model.Profile) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are a friendly financial advisor for college students in NYC. "+
		"Based on the following budget data, provide ONE specific, actionable suggestion for the %q category "+
		"to help them save money or spend smarter.\n\n", category)

	var cooking, eatingOut int
	if d, ok := p.DetailedFood(); ok {
		cooking, eatingOut = d.CookingPerWeek, d.EatingOutPerWeek
	}

	sb.WriteString("Budget Data:\n")
	fmt.Fprintf(&sb, "- Rent: $%s/month\n", num(p.Rent))
	fmt.Fprintf(&sb, "- Utilities: $%s/month\n", num(p.WiFi+p.Electricity+p.Gas))
	fmt.Fprintf(&sb, "- Phone: $%s/%s\n", num(p.PhoneCost), billingUnit(p.PhoneBilling))
	fmt.Fprintf(&sb, "- Transport Days/Week: %d\n", p.TransportDaysPerWeek)
	fmt.Fprintf(&sb, "- Transport Budget: $%s/month\n", num(p.TransportCost))
	if g := p.GroceriesBudget(); g > 0 {
		fmt.Fprintf(&sb, "- Groceries: $%s/month\n", num(g))
	} else {
		fmt.Fprintf(&sb, "- Cooking at Home: %d meals/week\n", cooking)
		fmt.Fprintf(&sb, "- Eating Out: %d meals/week\n", eatingOut)
	}
	fmt.Fprintf(&sb, "- Coffee/Snacks: %dx/week @ $%s\n", p.CoffeePerWeek, num(p.CoffeeCost))
	fmt.Fprintf(&sb, "- Shopping: $%s/month\n", num(p.ShoppingMonthly))
	fmt.Fprintf(&sb, "- Party Nights: %d/month @ $%s\n\n", p.PartyPerMonth, num(p.PartyCost))

	sb.WriteString("Keep the suggestion short (1-2 sentences), practical, and encouraging. Be specific to NYC student life.")

	return sb.String()
}

func billingUnit(b model.BillingPeriod) string {
	if b == model.BillingYearly {
		return "year"
	}
	return "month"
}

// num formats money the way a plain number prints: no trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
