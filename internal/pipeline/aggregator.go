// Package pipeline aggregates daily spending logs into totals, streaks and
// per-period statistics.
package pipeline

import (
	"sort"
	"time"

	"github.com/theirongolddev/spendora/internal/model"
)

// maxStreakDays bounds the backward walk in ComputeStreak.
const maxStreakDays = 365

// DateRange selects which log entries an aggregate covers: every entry, or
// the single entry for one date.
type DateRange struct {
	day string
}

// All covers every logged day.
func All() DateRange { return DateRange{} }

// Day covers only the given date.
func Day(date string) DateRange { return DateRange{day: date} }

// Contains reports whether the range covers date.
func (r DateRange) Contains(date string) bool {
	return r.day == "" || r.day == date
}

// IsAll reports whether the range covers every day.
func (r DateRange) IsAll() bool { return r.day == "" }

// SumCategory totals one category over the entries in range.
// Empty logs sum to 0.
func SumCategory(logs []model.DailyLogEntry, c model.Category, rng DateRange) float64 {
	var total float64
	for _, e := range logs {
		if rng.Contains(e.Date) {
			total += e.Amount(c)
		}
	}
	return total
}

// Totals sums every category over the entries in range.
func Totals(logs []model.DailyLogEntry, rng DateRange) model.CategoryTotals {
	var t model.CategoryTotals
	for _, e := range logs {
		if !rng.Contains(e.Date) {
			continue
		}
		t.Groceries += e.Groceries
		t.EatingOut += e.EatingOut
		t.Coffee += e.Coffee
		t.Transport += e.Transport
		t.Other += e.Other
	}
	return t
}

// SumDay is the "spent today" figure: groceries, eating out, coffee and
// transport for the date. Other is not counted against the daily target.
func SumDay(logs []model.DailyLogEntry, date string) float64 {
	rng := Day(date)
	return SumCategory(logs, model.CategoryGroceries, rng) +
		SumCategory(logs, model.CategoryEatingOut, rng) +
		SumCategory(logs, model.CategoryCoffee, rng) +
		SumCategory(logs, model.CategoryTransport, rng)
}

// ComputeStreak counts consecutive logged days ending at asOf, walking back
// at most 365 days. It is 0 when asOf itself has no entry.
func ComputeStreak(logs []model.DailyLogEntry, asOf time.Time) int {
	if len(logs) == 0 {
		return 0
	}
	dates := make(map[string]struct{}, len(logs))
	for _, e := range logs {
		dates[e.Date] = struct{}{}
	}

	day := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, asOf.Location())
	streak := 0
	for i := 0; i < maxStreakDays; i++ {
		if _, ok := dates[model.DateKey(day)]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// MonthStats summarizes spending in asOf's calendar month. Other spending is
// reported as shopping, the closest budget line.
func MonthStats(logs []model.DailyLogEntry, asOf time.Time) model.MonthStats {
	first := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
	last := first.AddDate(0, 1, -1)

	inMonth := FilterByRange(logs, model.DateKey(first), model.DateKey(last))
	t := Totals(inMonth, All())

	return model.MonthStats{
		TotalSpent:     t.Sum(),
		DaysPassed:     asOf.Day(),
		DaysRemaining:  last.Day() - asOf.Day(),
		GroceriesSpent: t.Groceries,
		EatingOutSpent: t.EatingOut,
		CoffeeSpent:    t.Coffee,
		TransportSpent: t.Transport,
		ShoppingSpent:  t.Other,
	}
}

// AggregateDays returns one DailyStats per day in [since, until], most
// recent first. Days without an entry are included with zero spend.
func AggregateDays(logs []model.DailyLogEntry, since, until time.Time) []model.DailyStats {
	byDate := make(map[string]model.DailyLogEntry, len(logs))
	for _, e := range logs {
		byDate[e.Date] = e
	}

	day := time.Date(since.Year(), since.Month(), since.Day(), 0, 0, 0, 0, since.Location())
	end := time.Date(until.Year(), until.Month(), until.Day(), 0, 0, 0, 0, until.Location())

	var days []model.DailyStats
	for !day.After(end) {
		key := model.DateKey(day)
		ds := model.DailyStats{Date: key}
		if e, ok := byDate[key]; ok {
			ds.Logged = true
			ds.Cooking = e.Cooking
			ds.Spent = SumDay(logs, key)
			ds.Other = e.Other
		}
		days = append(days, ds)
		day = day.AddDate(0, 0, 1)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Date > days[j].Date
	})
	return days
}

// FilterByRange returns entries whose date falls within [from, to].
// An empty bound is open.
func FilterByRange(logs []model.DailyLogEntry, from, to string) []model.DailyLogEntry {
	if from == "" && to == "" {
		return logs
	}

	var result []model.DailyLogEntry
	for _, e := range logs {
		if from != "" && e.Date < from {
			continue
		}
		if to != "" && e.Date > to {
			continue
		}
		result = append(result, e)
	}
	return result
}

// SortByDate returns a copy of logs ordered oldest first.
func SortByDate(logs []model.DailyLogEntry) []model.DailyLogEntry {
	out := make([]model.DailyLogEntry, len(logs))
	copy(out, logs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}
