package usecase

import (
	"context"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"

	"github.com/google/uuid"
)

// admitSlot serializes on the (venue, day) advisory lock and checks that no
// other active booking holds the slot. Must run inside the transaction that
// also writes the booking, so admission and insert commit together.
func admitSlot(ctx context.Context, tx *repository.Repository, venueID uuid.UUID, date time.Time, excludeID uuid.UUID) error {
	if err := tx.Booking.LockSlot(ctx, venueID, date); err != nil {
		return err
	}

	available, err := tx.Booking.IsDateAvailable(ctx, venueID, date, excludeID)
	if err != nil {
		return err
	}
	if !available {
		return &entity.DateUnavailableError{VenueID: venueID, Date: date}
	}
	return nil
}

// CheckAvailable is the lock-free read used by availability queries; only
// admitSlot gives a guarantee that survives until commit.
func CheckAvailable(ctx context.Context, repo *repository.Repository, venueID uuid.UUID, date time.Time) (bool, error) {
	return repo.Booking.IsDateAvailable(ctx, venueID, date, uuid.Nil)
}
