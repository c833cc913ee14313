package entity

type Coupon struct {
	Base
	Code            string  `db:"code"`
	DiscountPercent float64 `db:"discount_percent"`
	MaxUses         int     `db:"max_uses"`
	CurrentUses     int     `db:"current_uses"`
	Active          bool    `db:"is_active"`
}

// Valid coupons are active and still below their usage cap. The usage
// counter is consumed atomically in the repository, once per booking;
// price recomputation never touches it.
func (c *Coupon) Valid() bool {
	return c.Active && c.CurrentUses < c.MaxUses
}
