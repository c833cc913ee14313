package entity

import (
	"time"

	"github.com/google/uuid"
)

// Booking reserves a venue for a single calendar day. StartDate is the date
// component of StartAt and is the admission key: at most one active booking
// may exist per (venue, start_date). Bookings are never deleted; cancellation
// and rejection are statuses.
type Booking struct {
	Base
	Slug            string        `db:"slug"`
	VenueID         uuid.UUID     `db:"venue_id"`
	PackageID       uuid.UUID     `db:"package_id"`
	RequesterID     uuid.UUID     `db:"requester_id"`
	StaffID         *uuid.UUID    `db:"staff_id"`
	CouponID        *uuid.UUID    `db:"coupon_id"`
	Description     string        `db:"description"`
	StartAt         time.Time     `db:"start_at"`
	EndAt           time.Time     `db:"end_at"`
	StartDate       time.Time     `db:"start_date"`
	TotalPrice      float64       `db:"total_price"`
	AdvancePaid     float64       `db:"advance_paid"`
	Status          BookingStatus `db:"status"`
	RejectionReason *string       `db:"rejection_reason"`

	// ExtraServiceIDs is loaded from the booking_extras join table.
	ExtraServiceIDs []uuid.UUID `db:"-"`
}

// SlotDate truncates an instant to the UTC calendar day used as admission
// key. Normalizing first keeps the same instant on the same slot no matter
// which offset the client sent it in.
func SlotDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (b *Booking) HasCoupon() bool {
	return b.CouponID != nil && *b.CouponID != uuid.Nil
}
