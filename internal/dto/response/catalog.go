package response

import (
	"time"

	"venue-booking/internal/data/entity"
)

type VenueResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Active    bool      `json:"active"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

type PackageResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Capacity    int     `json:"capacity"`
	Price       float64 `json:"price"`
	Hours       string  `json:"hours,omitempty"`
	Slug        string  `json:"slug"`
}

type ExtraServiceResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Active bool    `json:"active"`
	Slug   string  `json:"slug"`
}

type CouponResponse struct {
	ID              string  `json:"id"`
	Code            string  `json:"code"`
	DiscountPercent float64 `json:"discount_percent"`
	MaxUses         int     `json:"max_uses"`
	CurrentUses     int     `json:"current_uses"`
	Active          bool    `json:"active"`
	Valid           bool    `json:"valid"`
}

func VenueToResponse(venue *entity.Venue) VenueResponse {
	return VenueResponse{
		ID:        venue.ID.String(),
		Name:      venue.Name,
		Address:   venue.Address,
		Active:    venue.Active,
		Slug:      venue.Slug,
		CreatedAt: venue.CreatedAt,
	}
}

func PackageToResponse(pkg *entity.Package) PackageResponse {
	return PackageResponse{
		ID:          pkg.ID.String(),
		Title:       pkg.Title,
		Description: pkg.Description,
		Capacity:    pkg.Capacity,
		Price:       pkg.Price,
		Hours:       pkg.Hours,
		Slug:        pkg.Slug,
	}
}

func ExtraServiceToResponse(extra *entity.ExtraService) ExtraServiceResponse {
	return ExtraServiceResponse{
		ID:     extra.ID.String(),
		Name:   extra.Name,
		Price:  extra.Price,
		Active: extra.Active,
		Slug:   extra.Slug,
	}
}

func CouponToResponse(coupon *entity.Coupon) CouponResponse {
	return CouponResponse{
		ID:              coupon.ID.String(),
		Code:            coupon.Code,
		DiscountPercent: coupon.DiscountPercent,
		MaxUses:         coupon.MaxUses,
		CurrentUses:     coupon.CurrentUses,
		Active:          coupon.Active,
		Valid:           coupon.Valid(),
	}
}
