package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DateUnavailableError means another active booking already holds the
// venue-day slot. Nothing is persisted when it is returned.
type DateUnavailableError struct {
	VenueID uuid.UUID
	Date    time.Time
}

func (e *DateUnavailableError) Error() string {
	return fmt.Sprintf("date %s is not available for venue %s",
		e.Date.Format("2006-01-02"), e.VenueID.String())
}

// IllegalTransitionError names both the current and the requested status.
type IllegalTransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition from %s to %s", e.From, e.To)
}

// UnknownReferenceError means a request referenced a package, venue, extra
// service or coupon that does not exist.
type UnknownReferenceError struct {
	Kind string
	ID   string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("unknown %s reference %s", e.Kind, e.ID)
}

// NotFoundError is for the requested resource itself.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// ValidationError covers semantic validation that struct tags cannot
// express, such as an end instant before the start.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IntegrityError surfaces a storage constraint violation that slipped past
// the application-level checks, e.g. the unique slug index firing despite
// the allocator's lookup. Callers may retry.
type IntegrityError struct {
	Op  string
	Err error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity violation during %s: %v", e.Op, e.Err)
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}
