package entity

// Package is a pricing tier. Price is read at computation time; bookings
// keep their own derived total instead of caching the package price.
type Package struct {
	Base
	Title       string  `db:"title"`
	Description string  `db:"description"`
	Capacity    int     `db:"capacity"`
	Price       float64 `db:"price"`
	Hours       string  `db:"hours"`
	Slug        string  `db:"slug"`
}
