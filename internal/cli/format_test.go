package cli

import (
	"math"
	"strings"
	"testing"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{12.4, "$12"},
		{12.5, "$13"},
		{1234.6, "$1,235"},
		{1500000, "$1,500,000"},
		{-12.4, "-$12"},
		{math.NaN(), "$?"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{4.5, "$4.50"},
		{1234.999, "$1,235.00"},
		{-3.25, "-$3.25"},
	}
	for _, tt := range tests {
		if got := FormatCents(tt.in); got != tt.want {
			t.Errorf("FormatCents(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4500, "-4,500"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDelta(t *testing.T) {
	if got := FormatDelta(50, 38); got != "$12 left" {
		t.Errorf("under target = %q", got)
	}
	if got := FormatDelta(50, 58); got != "$8 over" {
		t.Errorf("over target = %q", got)
	}
}

func TestPluralize(t *testing.T) {
	if got := Pluralize(1, "day"); got != "1 day" {
		t.Errorf("got %q", got)
	}
	if got := Pluralize(3, "day"); got != "3 days" {
		t.Errorf("got %q", got)
	}
}

func TestRenderSparklineScales(t *testing.T) {
	got := []rune(RenderSparkline([]float64{0, 5, 10}))
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0] != '▁' || got[2] != '█' {
		t.Errorf("sparkline = %q", string(got))
	}
	if RenderSparkline(nil) != "" {
		t.Error("empty series should render nothing")
	}
}

func TestRenderTableContainsCells(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Budget",
		Headers: []string{"Category", "Target"},
		Rows:    [][]string{{"Rent", "$1,200"}, {"---"}, {"Total", "$1,200"}},
	})
	for _, want := range []string{"Budget", "Category", "Rent", "$1,200", "Total"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
