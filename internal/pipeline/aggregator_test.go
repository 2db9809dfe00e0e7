package pipeline

import (
	"math"
	"testing"
	"time"

	"github.com/theirongolddev/spendora/internal/model"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func sampleLogs() []model.DailyLogEntry {
	return []model.DailyLogEntry{
		{Date: "2025-03-08", Groceries: 40, Coffee: 4.5},
		{Date: "2025-03-09", EatingOut: 18, Transport: 2.9},
		{Date: "2025-03-10", Groceries: 12, Coffee: 5, Other: 30, Cooking: true},
	}
}

func TestSumCategory_EmptyLogs(t *testing.T) {
	for _, c := range model.Categories {
		if got := SumCategory(nil, c, All()); got != 0 {
			t.Errorf("SumCategory(nil, %s, All) = %v", c, got)
		}
		if got := SumCategory(nil, c, Day("2025-03-10")); got != 0 {
			t.Errorf("SumCategory(nil, %s, Day) = %v", c, got)
		}
	}
}

func TestSumCategory_Ranges(t *testing.T) {
	logs := sampleLogs()
	if got := SumCategory(logs, model.CategoryGroceries, All()); got != 52 {
		t.Errorf("groceries all = %v, want 52", got)
	}
	if got := SumCategory(logs, model.CategoryCoffee, Day("2025-03-10")); got != 5 {
		t.Errorf("coffee on 03-10 = %v, want 5", got)
	}
	if got := SumCategory(logs, model.CategoryEatingOut, Day("2025-04-01")); got != 0 {
		t.Errorf("eating out on unlogged day = %v, want 0", got)
	}
}

func TestSumDay_ExcludesOther(t *testing.T) {
	if got := SumDay(sampleLogs(), "2025-03-10"); got != 17 {
		t.Errorf("SumDay = %v, want 17", got)
	}
}

func TestTotals(t *testing.T) {
	tot := Totals(sampleLogs(), All())
	if tot.Groceries != 52 || tot.EatingOut != 18 || tot.Other != 30 {
		t.Errorf("Totals = %+v", tot)
	}
	if got := tot.Sum(); math.Abs(got-112.4) > 1e-9 {
		t.Errorf("Sum = %v, want 112.4", got)
	}
}

func TestComputeStreak(t *testing.T) {
	logs := sampleLogs()
	d := mustDate(t, "2025-03-10")

	if got := ComputeStreak(logs, d); got != 3 {
		t.Errorf("streak at D = %d, want 3", got)
	}
	if got := ComputeStreak(logs, d.AddDate(0, 0, 1)); got != 0 {
		t.Errorf("streak at D+1 = %d, want 0", got)
	}
	if got := ComputeStreak(logs, d.AddDate(0, 0, -1)); got != 2 {
		t.Errorf("streak at D-1 = %d, want 2", got)
	}
}

func TestComputeStreak_StopsAtGap(t *testing.T) {
	logs := []model.DailyLogEntry{
		{Date: "2025-03-10"},
		{Date: "2025-03-09"},
		{Date: "2025-03-07"},
		{Date: "2025-03-06"},
	}
	if got := ComputeStreak(logs, mustDate(t, "2025-03-10")); got != 2 {
		t.Errorf("streak = %d, want 2", got)
	}
}

func TestComputeStreak_CapsAtOneYear(t *testing.T) {
	start := mustDate(t, "2024-01-01")
	var logs []model.DailyLogEntry
	for i := 0; i < 400; i++ {
		logs = append(logs, model.DailyLogEntry{Date: model.DateKey(start.AddDate(0, 0, i))})
	}
	asOf := start.AddDate(0, 0, 399)
	if got := ComputeStreak(logs, asOf); got != 365 {
		t.Errorf("streak = %d, want 365", got)
	}
}

func TestComputeStreak_Empty(t *testing.T) {
	if got := ComputeStreak(nil, time.Now()); got != 0 {
		t.Errorf("streak of empty log = %d", got)
	}
}

func TestMonthStats(t *testing.T) {
	logs := append(sampleLogs(), model.DailyLogEntry{Date: "2025-02-28", Groceries: 100})
	st := MonthStats(logs, mustDate(t, "2025-03-10"))

	if st.DaysPassed != 10 || st.DaysRemaining != 21 {
		t.Errorf("days = %d passed, %d remaining; want 10, 21", st.DaysPassed, st.DaysRemaining)
	}
	if st.GroceriesSpent != 52 {
		t.Errorf("GroceriesSpent = %v, want 52 (February excluded)", st.GroceriesSpent)
	}
	if st.ShoppingSpent != 30 {
		t.Errorf("ShoppingSpent = %v, want 30", st.ShoppingSpent)
	}
}

func TestAggregateDays_FillsGaps(t *testing.T) {
	days := AggregateDays(sampleLogs(), mustDate(t, "2025-03-07"), mustDate(t, "2025-03-10"))
	if len(days) != 4 {
		t.Fatalf("got %d days, want 4", len(days))
	}
	if days[0].Date != "2025-03-10" || days[3].Date != "2025-03-07" {
		t.Errorf("order = %s .. %s, want most recent first", days[0].Date, days[3].Date)
	}
	if days[3].Logged {
		t.Error("2025-03-07 has no entry but is marked logged")
	}
	if !days[0].Cooking || days[0].Spent != 17 {
		t.Errorf("2025-03-10 = %+v", days[0])
	}
}

func TestFilterByRange(t *testing.T) {
	logs := sampleLogs()
	got := FilterByRange(logs, "2025-03-09", "")
	if len(got) != 2 {
		t.Fatalf("open upper bound kept %d, want 2", len(got))
	}
	got = FilterByRange(logs, "", "2025-03-08")
	if len(got) != 1 {
		t.Fatalf("open lower bound kept %d, want 1", len(got))
	}
	if got := FilterByRange(logs, "", ""); len(got) != len(logs) {
		t.Fatalf("unbounded filter dropped entries")
	}
}

func TestSortByDate(t *testing.T) {
	logs := []model.DailyLogEntry{{Date: "2025-03-10"}, {Date: "2025-01-02"}, {Date: "2025-02-15"}}
	got := SortByDate(logs)
	if got[0].Date != "2025-01-02" || got[2].Date != "2025-03-10" {
		t.Errorf("SortByDate = %v", got)
	}
	if logs[0].Date != "2025-03-10" {
		t.Error("SortByDate mutated its input")
	}
}

func TestAggregateBreakdown(t *testing.T) {
	b := model.MonthlyBudget{Groceries: 40, Coffee: 20}
	rows := AggregateBreakdown(sampleLogs(), b, All())
	if len(rows) != len(model.Categories) {
		t.Fatalf("got %d rows", len(rows))
	}

	groceries := rows[0]
	if groceries.Category != model.CategoryGroceries || !groceries.Over() || groceries.Remaining != -12 {
		t.Errorf("groceries row = %+v", groceries)
	}
	coffee := rows[2]
	if coffee.Over() || coffee.Percent != 9.5/20 {
		t.Errorf("coffee row = %+v", coffee)
	}
	other := rows[4]
	if other.HasTarget || other.Over() {
		t.Errorf("other row = %+v, want no target", other)
	}
}
