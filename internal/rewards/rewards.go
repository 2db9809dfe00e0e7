// Package rewards converts logging activity into points and reward tiers.
package rewards

import (
	"cmp"
	"slices"
)

// PointsPerLog is awarded for every logged day.
const PointsPerLog = 10

// Tier is a redeemable reward unlocked at a points threshold.
type Tier struct {
	Name        string
	Threshold   int
	Description string
}

// DefaultTiers is the reward catalogue in ascending threshold order.
var DefaultTiers = []Tier{
	{Name: "Digital Voucher", Threshold: 500, Description: "Save $10 on your next purchase"},
	{Name: "Weekly Coffee Card", Threshold: 1000, Description: "Free coffee from your favorite cafe"},
	{Name: "NYU Mug", Threshold: 2000, Description: "Exclusive branded mug (planned partnership)"},
	{Name: "Notebook Bundle", Threshold: 5000, Description: "Premium notebook set + stickers"},
}

// ComputePoints returns the points earned for logCount logged days.
func ComputePoints(logCount int) int {
	if logCount < 0 {
		return 0
	}
	return logCount * PointsPerLog
}

// UnlockedTiers returns the tiers whose threshold is at most points, in
// ascending threshold order whatever the order of tiers.
func UnlockedTiers(points int, tiers []Tier) []Tier {
	var out []Tier
	for _, t := range tiers {
		if t.Threshold <= points {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b Tier) int { return cmp.Compare(a.Threshold, b.Threshold) })
	return out
}

// NextTier returns the lowest locked tier and the points still needed.
// ok is false once every tier is unlocked.
func NextTier(points int, tiers []Tier) (next Tier, remaining int, ok bool) {
	for _, t := range tiers {
		if t.Threshold > points {
			if !ok || t.Threshold < next.Threshold {
				next, ok = t, true
			}
		}
	}
	if ok {
		remaining = next.Threshold - points
	}
	return next, remaining, ok
}

// Progress is the fraction of the way from the previous unlocked threshold
// to the next tier, in [0, 1]. It is 1 once every tier is unlocked.
func Progress(points int, tiers []Tier) float64 {
	next, _, ok := NextTier(points, tiers)
	if !ok {
		return 1
	}
	floor := 0
	for _, t := range UnlockedTiers(points, tiers) {
		if t.Threshold > floor {
			floor = t.Threshold
		}
	}
	span := next.Threshold - floor
	if span <= 0 {
		return 0
	}
	return float64(points-floor) / float64(span)
}
