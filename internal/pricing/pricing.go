// Package pricing computes effective item prices from discount
// descriptors. All arithmetic is on whole NT$ amounts.
package pricing

import (
	"time"

	"github.com/swdadsa/Shoppping-system-frontend/internal/domain"
)

// TiebreakPolicy picks which discount wins when more than one is active
// for the same item at the same time.
type TiebreakPolicy string

const (
	// TiebreakFirstListed keeps the upstream behavior: the first active
	// discount in list order wins.
	TiebreakFirstListed TiebreakPolicy = "first_listed"
	// TiebreakEarliestStart prefers the discount whose window opened first.
	TiebreakEarliestStart TiebreakPolicy = "earliest_start"
	// TiebreakLargestReduction prefers the discount that cuts the most
	// off the given base price.
	TiebreakLargestReduction TiebreakPolicy = "largest_reduction"
)

// Calculator applies discounts to base prices. The zero value uses the
// first-listed tie-break and does not clamp negative results.
type Calculator struct {
	Policy TiebreakPolicy
	// ClampNonNegative floors results at zero. An absolute reduction
	// larger than the base price otherwise produces a negative result.
	ClampNonNegative bool
}

// DiscountedPrice returns the price after applying d. A nil discount
// leaves the price unchanged. Absolute reductions win over percentages
// when a descriptor carries both.
func DiscountedPrice(base int64, d *domain.Discount) int64 {
	if d == nil {
		return base
	}
	if d.Number != nil {
		return base - *d.Number
	}
	if d.Percent != nil {
		return floorPercent(base, *d.Percent)
	}
	return base
}

// floor(base * (1 - percent/100)), kept in integer math
func floorPercent(base, percent int64) int64 {
	return base * (100 - percent) / 100
}

// ActiveDiscount selects the discount to apply at now, or nil when none
// is active. base is only consulted by the largest-reduction policy.
func (c Calculator) ActiveDiscount(base int64, discounts []domain.Discount, now time.Time) *domain.Discount {
	var winner *domain.Discount
	for i := range discounts {
		d := &discounts[i]
		if !d.Active(now) {
			continue
		}
		if winner == nil {
			winner = d
			if c.Policy == TiebreakFirstListed || c.Policy == "" {
				return winner
			}
			continue
		}
		switch c.Policy {
		case TiebreakEarliestStart:
			if d.StartAt.Before(winner.StartAt) {
				winner = d
			}
		case TiebreakLargestReduction:
			if DiscountedPrice(base, d) < DiscountedPrice(base, winner) {
				winner = d
			}
		}
	}
	return winner
}

// EffectivePrice resolves the active discount for an item and applies it.
func (c Calculator) EffectivePrice(base int64, discounts []domain.Discount, now time.Time) int64 {
	price := DiscountedPrice(base, c.ActiveDiscount(base, discounts, now))
	if c.ClampNonNegative && price < 0 {
		return 0
	}
	return price
}
