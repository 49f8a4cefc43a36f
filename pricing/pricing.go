package pricing

import "math"

// TierTable maps a rental duration in days to its price multiplier.
type TierTable map[int]float64

// DefaultTiers are the fixed storefront tiers. The 7-day rate is the
// base rate a game's rental_price column stores.
var DefaultTiers = TierTable{
	7:  1.0,
	14: 1.8,
	30: 3.5,
}

// Multiplier returns the factor for a duration. Durations outside the
// table fall back to the 7-day tier.
func (t TierTable) Multiplier(durationDays int) float64 {
	if m, ok := t[durationDays]; ok {
		return m
	}
	return t[7]
}

// RentalPrice computes the tiered rental amount for a duration,
// rounded to 2 decimal places.
func (t TierTable) RentalPrice(baseRate float64, durationDays int) float64 {
	return math.Round(baseRate*t.Multiplier(durationDays)*100) / 100
}

// RentalPrice applies the default tier table.
func RentalPrice(baseRate float64, durationDays int) float64 {
	return DefaultTiers.RentalPrice(baseRate, durationDays)
}
