package entity

type Venue struct {
	Base
	Name    string `db:"name"`
	Address string `db:"address"`
	Active  bool   `db:"active"`
	Slug    string `db:"slug"`
}
