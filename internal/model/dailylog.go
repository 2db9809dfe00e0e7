package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-date key format for daily log entries.
const DateLayout = "2006-01-02"

// ErrInvalidAmount is returned for negative, non-finite or non-numeric amounts.
var ErrInvalidAmount = errors.New("model: amount must be a non-negative number")

// ErrUnknownCategory is returned when a spending category name is not recognized.
var ErrUnknownCategory = errors.New("model: unknown spending category")

// Category is a loggable spending category.
type Category string

const (
	CategoryGroceries Category = "groceries"
	CategoryEatingOut Category = "eating_out"
	CategoryCoffee    Category = "coffee"
	CategoryTransport Category = "transport"
	CategoryOther     Category = "other"
)

// Categories lists every loggable category in display order.
var Categories = []Category{
	CategoryGroceries,
	CategoryEatingOut,
	CategoryCoffee,
	CategoryTransport,
	CategoryOther,
}

// Label returns a human-readable name for the category.
func (c Category) Label() string {
	switch c {
	case CategoryGroceries:
		return "Groceries"
	case CategoryEatingOut:
		return "Eating Out"
	case CategoryCoffee:
		return "Coffee & Snacks"
	case CategoryTransport:
		return "Transport"
	case CategoryOther:
		return "Other"
	}
	return string(c)
}

// ParseCategory accepts "eating_out", "eating-out" or "eatingout" style names.
func ParseCategory(s string) (Category, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "-", "_")
	if norm == "eatingout" {
		norm = string(CategoryEatingOut)
	}
	for _, c := range Categories {
		if string(c) == norm {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// DailyLogEntry is one calendar day's recorded spending.
type DailyLogEntry struct {
	Date      string  `json:"date"`
	Groceries float64 `json:"groceries,omitempty"`
	EatingOut float64 `json:"eating_out,omitempty"`
	Coffee    float64 `json:"coffee,omitempty"`
	Transport float64 `json:"transport,omitempty"`
	Other     float64 `json:"other,omitempty"`
	Cooking   bool    `json:"cooking,omitempty"` // day explicitly finished
}

// Amount returns the entry's value for a category.
func (e DailyLogEntry) Amount(c Category) float64 {
	switch c {
	case CategoryGroceries:
		return e.Groceries
	case CategoryEatingOut:
		return e.EatingOut
	case CategoryCoffee:
		return e.Coffee
	case CategoryTransport:
		return e.Transport
	case CategoryOther:
		return e.Other
	}
	return 0
}

// SetAmount validates v and stores it under the category.
func (e *DailyLogEntry) SetAmount(c Category, v float64) error {
	if err := ValidateAmount(v); err != nil {
		return err
	}
	switch c {
	case CategoryGroceries:
		e.Groceries = v
	case CategoryEatingOut:
		e.EatingOut = v
	case CategoryCoffee:
		e.Coffee = v
	case CategoryTransport:
		e.Transport = v
	case CategoryOther:
		e.Other = v
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
	}
	return nil
}

// Validate checks the date key and every amount.
func (e DailyLogEntry) Validate() error {
	if _, err := ParseDate(e.Date); err != nil {
		return err
	}
	for _, c := range Categories {
		if err := ValidateAmount(e.Amount(c)); err != nil {
			return fmt.Errorf("%s: %w", c, err)
		}
	}
	return nil
}

// ValidateAmount rejects negative and non-finite values.
func ValidateAmount(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ParseAmount parses user input such as "12.50" or "$12.50".
func ParseAmount(s string) (float64, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	if s == "" {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if err := ValidateAmount(v); err != nil {
		return 0, err
	}
	return v, nil
}

// DateKey formats t as a log date key in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a log date key at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("model: invalid date %q: %w", s, err)
	}
	return t, nil
}
