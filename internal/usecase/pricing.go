package usecase

import (
	"venue-booking/internal/data/entity"
	"venue-booking/pkg/utils"
)

// ComputeTotal prices a booking from its parts: package base price plus the
// extras, then the coupon discount applied once over the subtotal. The
// result is rounded to 2 decimals, halves away from zero. An invalid or nil
// coupon contributes nothing. Every create and update path recomputes the
// total through here; it is never adjusted incrementally.
func ComputeTotal(pkg *entity.Package, extras []*entity.ExtraService, coupon *entity.Coupon) float64 {
	var total float64
	if pkg != nil {
		total = pkg.Price
	}
	for _, extra := range extras {
		total += extra.Price
	}
	if coupon != nil && coupon.Valid() {
		total *= 1 - coupon.DiscountPercent/100
	}
	return utils.RoundMoney(total)
}
