package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/theirongolddev/spendora/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToWidth(t *testing.T) {
	for _, n := range []int{1, 3, 4, 7} {
		widths := LayoutRow(80, n)
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != 80 {
			t.Errorf("LayoutRow(80, %d) sums to %d", n, sum)
		}
	}
	if LayoutRow(80, 0) != nil {
		t.Error("zero columns should return nil")
	}
}

func TestSpendNotes(t *testing.T) {
	under := Spend("Spent", 30, 40)
	if under.Note != "$10 left" || !under.Tracked || under.Util != 0.75 {
		t.Errorf("Spend under target = %+v", under)
	}
	over := Spend("Spent", 50, 40)
	if over.Note != "$10 over" {
		t.Errorf("Spend over target note = %q", over.Note)
	}
	untracked := Spend("Spent", 12, 0)
	if untracked.Tracked || untracked.Note != "no target" {
		t.Errorf("Spend without target = %+v", untracked)
	}
}

func TestMetricCardShowsValues(t *testing.T) {
	out := MetricCard(Spend("Spent today", 38, 50), 24)
	for _, want := range []string{"Spent today", "$38", "$12 left"} {
		if !strings.Contains(out, want) {
			t.Errorf("card missing %q:\n%s", want, out)
		}
	}
	if out := MetricCard(Count("Streak", 1, "day", ""), 24); !strings.Contains(out, "1 day") {
		t.Errorf("count card = %q", out)
	}
}

func TestMetricCardColorsTrackedValue(t *testing.T) {
	theme.SetActive("flexoki-dark")
	over := MetricCard(Spend("Spent", 60, 50), 24)
	under := MetricCard(Spend("Spent", 10, 50), 24)
	if over == under {
		t.Fatal("over and under cards should differ")
	}
	plain := MetricCard(Amount("Spent", 60, "$10 over"), 24)
	if plain == over {
		t.Error("untracked amount should not use the budget-state color")
	}
}

func TestMetricRowMatchesTallestCard(t *testing.T) {
	withNote := MetricCard(Amount("Target", 50, "per day"), 24)
	row := MetricRow([]Metric{Amount("Target", 50, "per day"), Amount("Left", 12, "")}, 48)
	if got, want := len(strings.Split(row, "\n")), len(strings.Split(withNote, "\n")); got != want {
		t.Errorf("row height = %d, want %d", got, want)
	}
	if MetricRow(nil, 48) != "" {
		t.Error("empty row should render nothing")
	}
}

func TestListCardWrapsItems(t *testing.T) {
	tips := []string{"Cook at home tonight", "Skip the second coffee and use the dining hall swipe instead"}
	out := ListCard("Suggestions", tips, 40)
	for _, want := range []string{"Suggestions", "Cook at home tonight", "•"} {
		if !strings.Contains(out, want) {
			t.Errorf("list card missing %q:\n%s", want, out)
		}
	}
	for _, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w > 40 {
			t.Errorf("line width %d exceeds card: %q", w, line)
		}
	}
}

func TestBudgetBar(t *testing.T) {
	theme.SetActive("terminal")
	defer theme.SetActive("flexoki-dark")

	if out := BudgetBar("Coffee", 30, 40, 10, 20); !strings.Contains(out, "75%") || !strings.Contains(out, "$10 left") {
		t.Errorf("under budget bar = %q", out)
	}
	if out := BudgetBar("Coffee", 50, 40, 10, 20); !strings.Contains(out, "125%") || !strings.Contains(out, "$10 over") {
		t.Errorf("over budget bar = %q", out)
	}
	if out := BudgetBar("Other", 5, 0, 10, 20); !strings.Contains(out, "n/a") {
		t.Errorf("untargeted bar = %q", out)
	}
}

func TestProgressBarCapsPercent(t *testing.T) {
	if out := ProgressBar(1.4, 20); !strings.Contains(out, "100%") {
		t.Errorf("ProgressBar(1.4) = %q", out)
	}
	if out := ProgressBar(0.25, 20); !strings.Contains(out, "25%") {
		t.Errorf("ProgressBar(0.25) = %q", out)
	}
}

func TestFormatCountdown(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "now"},
		{20 * time.Second, "20s"},
		{90 * time.Second, "1m 30s"},
		{2*time.Hour + 5*time.Minute, "2h 5m"},
		{50 * time.Hour, "2d 2h"},
	}
	for _, c := range cases {
		if got := FormatCountdown(c.d); got != c.want {
			t.Errorf("FormatCountdown(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}

func TestFormatChartLabel(t *testing.T) {
	cases := map[float64]string{
		40:   "$40",
		1000: "$1k",
		1500: "$1.5k",
		0.5:  "$0.50",
	}
	for in, want := range cases {
		if got := formatChartLabel(in); got != want {
			t.Errorf("formatChartLabel(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestTickStep(t *testing.T) {
	cases := []struct {
		top      float64
		maxTicks int
		want     float64
	}{
		{60, 4, 20},
		{7, 4, 2},
		{1000, 4, 500},
		{50, 1, 50},
	}
	for _, c := range cases {
		if got := tickStep(c.top, c.maxTicks); got != c.want {
			t.Errorf("tickStep(%v, %d) = %v, want %v", c.top, c.maxTicks, got, c.want)
		}
	}
}

func TestSpendingChartDrawsAxisAndTarget(t *testing.T) {
	days := []DayBar{{"Mon", 10}, {"Tue", 65}, {"Wed", 20}}
	out := SpendingChart(days, 50, 40, 8)
	for _, want := range []string{"└", "$0", "Mon", "Wed", "┄"} {
		if !strings.Contains(out, want) {
			t.Errorf("chart missing %q:\n%s", want, out)
		}
	}
	if rows := len(strings.Split(out, "\n")); rows != 8+2 {
		t.Errorf("chart rows = %d, want 10", rows)
	}
}

func TestSpendingChartWithoutTargetHasNoMarker(t *testing.T) {
	out := SpendingChart([]DayBar{{"Mon", 10}, {"Tue", 20}}, 0, 40, 6)
	if strings.Contains(out, "┄") {
		t.Errorf("chart without target drew a marker:\n%s", out)
	}
}

func TestSpendingChartDropsOldestDays(t *testing.T) {
	days := make([]DayBar, 30)
	for i := range days {
		days[i].Spent = float64(10 + i)
	}
	days[0].Label = "x"
	days[len(days)-1].Label = "y"

	out := SpendingChart(days, 50, 20, 8)
	if strings.Contains(out, "x") || !strings.Contains(out, "y") {
		t.Errorf("narrow chart should keep the newest days:\n%s", out)
	}
}

func TestSpendingChartFallsBackWhenCramped(t *testing.T) {
	out := SpendingChart([]DayBar{{"Mon", 0}, {"Tue", 40}}, 50, 10, 8)
	if strings.Contains(out, "\n") || !strings.Contains(out, "█") {
		t.Errorf("cramped chart = %q", out)
	}
	if SpendingChart(nil, 50, 40, 8) != "" {
		t.Error("no days should render nothing")
	}
}
