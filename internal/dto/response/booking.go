package response

import (
	"time"

	"venue-booking/internal/data/entity"
)

type BookingResponse struct {
	ID              string               `json:"id"`
	Slug            string               `json:"slug"`
	VenueID         string               `json:"venue_id"`
	VenueName       string               `json:"venue_name,omitempty"`
	PackageID       string               `json:"package_id"`
	PackageTitle    string               `json:"package_title,omitempty"`
	RequesterID     string               `json:"requester_id"`
	StaffID         *string              `json:"staff_id,omitempty"`
	ExtraServices   []ExtraServiceBrief  `json:"extra_services,omitempty"`
	CouponCode      string               `json:"coupon_code,omitempty"`
	Description     string               `json:"description,omitempty"`
	StartAt         time.Time            `json:"start_at"`
	EndAt           time.Time            `json:"end_at"`
	StartDate       string               `json:"start_date"`
	TotalPrice      float64              `json:"total_price"`
	AdvancePaid     float64              `json:"advance_paid"`
	AmountDue       float64              `json:"amount_due"`
	Status          entity.BookingStatus `json:"status"`
	RejectionReason *string              `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

type ExtraServiceBrief struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type DateAvailabilityResponse struct {
	VenueID   string `json:"venue_id"`
	Date      string `json:"date"`
	Available bool   `json:"available"`
}

type BookedDatesResponse struct {
	VenueID string   `json:"venue_id"`
	From    string   `json:"from"`
	To      string   `json:"to"`
	Booked  []string `json:"booked"`
}

type StatusCountsResponse map[entity.BookingStatus]int64

type SlugRepairResponse struct {
	Renamed int `json:"renamed"`
}
