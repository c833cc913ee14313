package entity

type ExtraService struct {
	Base
	Name   string  `db:"name"`
	Price  float64 `db:"price"`
	Active bool    `db:"is_active"`
	Slug   string  `db:"slug"`
}
