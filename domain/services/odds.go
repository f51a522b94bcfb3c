package services

import (
	"fmt"
	"math"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
)

// ValidateOdds rejects the undefined zero-odds value. Every service guards
// odds with this before handing them to Payout.
func ValidateOdds(odds int) error {
	if odds == 0 {
		return fmt.Errorf("american odds of zero are undefined: %w", entities.ErrOutOfRange)
	}
	return nil
}

// ClampOdds forces odds into [min, max], skipping over the undefined zero
// value toward the nearest favorite price.
func ClampOdds(odds, min, max int) int {
	if odds < min {
		odds = min
	}
	if odds > max {
		odds = max
	}
	if odds == 0 {
		odds = -100
	}
	return odds
}

// Payout converts a stake at American odds into the total returned on a win,
// stake included. Underdog payouts (odds > 0) scale with the odds; favorite
// payouts (odds < 0) add a smaller fractional bonus. Odds must be nonzero.
func Payout(stake int64, odds int) int64 {
	if odds == 0 {
		return 0
	}
	if odds > 0 {
		return stake + int64(math.Floor(float64(stake)*float64(odds)/100))
	}
	return stake + int64(math.Floor(float64(stake)*100/math.Abs(float64(odds))))
}

// DecimalOdds converts American odds to a decimal multiplier
func DecimalOdds(odds int) float64 {
	if odds > 0 {
		return 1 + float64(odds)/100
	}
	return 1 + 100/math.Abs(float64(odds))
}

// CombineParlayOdds multiplies each leg's decimal form and converts the
// product back to American odds. Order of legs does not affect the result.
func CombineParlayOdds(oddsList []int) (int, error) {
	if len(oddsList) == 0 {
		return 0, fmt.Errorf("parlay requires at least one leg: %w", entities.ErrOutOfRange)
	}
	combined := 1.0
	for _, odds := range oddsList {
		if err := ValidateOdds(odds); err != nil {
			return 0, err
		}
		combined *= DecimalOdds(odds)
	}
	if combined >= 2.0 {
		return int(math.Floor((combined - 1) * 100)), nil
	}
	return int(math.Floor(-100 / (combined - 1))), nil
}

// ImpliedProbability converts American odds to their implied win probability
// in [0, 1]. Display and coin-flip weighting only, no payout effect.
func ImpliedProbability(odds int) float64 {
	if odds > 0 {
		return 100 / (float64(odds) + 100)
	}
	abs := math.Abs(float64(odds))
	return abs / (abs + 100)
}
