package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Booking, error)
	FindByRequester(ctx context.Context, requesterID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByRequester(ctx context.Context, requesterID uuid.UUID) (int64, error)
	Update(ctx context.Context, booking *entity.Booking) error
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus, reason *string) error
	UpdateFinancials(ctx context.Context, bookingID uuid.UUID, advancePaid float64, status entity.BookingStatus) error
	ReplaceExtras(ctx context.Context, bookingID uuid.UUID, extraIDs []uuid.UUID) error

	// Slot admission. LockSlot must be called inside a transaction; the
	// advisory lock is released on commit or rollback.
	LockSlot(ctx context.Context, venueID uuid.UUID, date time.Time) error
	IsDateAvailable(ctx context.Context, venueID uuid.UUID, date time.Time, excludeID uuid.UUID) (bool, error)
	BookedDates(ctx context.Context, venueID uuid.UUID, from, to time.Time) ([]time.Time, error)

	// Slug bookkeeping
	SlugExists(ctx context.Context, slug string) (bool, error)
	FindSlugDuplicates(ctx context.Context) ([]*entity.Booking, error)
	UpdateSlug(ctx context.Context, bookingID uuid.UUID, slug string) error

	// Reporting / guards
	StatusCounts(ctx context.Context) (map[entity.BookingStatus]int64, error)
	ExistsForVenue(ctx context.Context, venueID uuid.UUID) (bool, error)
}

type bookingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBookingRepository(db database.Querier, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, slug, venue_id, package_id, requester_id, staff_id, coupon_id,
		description, start_at, end_at, start_date, total_price, advance_paid,
		status, rejection_reason, created_at, updated_at`

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.Slug,
		booking.VenueID,
		booking.PackageID,
		booking.RequesterID,
		booking.StaffID,
		booking.CouponID,
		booking.Description,
		booking.StartAt,
		booking.EndAt,
		booking.StartDate,
		booking.TotalPrice,
		booking.AdvancePaid,
		booking.Status,
		booking.RejectionReason,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return &entity.IntegrityError{Op: "create booking", Err: err}
		}
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("slug", booking.Slug),
			zap.String("venue_id", booking.VenueID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.Slug, err)
	}

	if len(booking.ExtraServiceIDs) > 0 {
		if err := r.insertExtras(ctx, booking.ID, booking.ExtraServiceIDs); err != nil {
			return err
		}
	}

	return nil
}

func (r *bookingRepository) insertExtras(ctx context.Context, bookingID uuid.UUID, extraIDs []uuid.UUID) error {
	query := `INSERT INTO booking_extras (booking_id, extra_service_id) VALUES ($1, $2)`

	for _, extraID := range extraIDs {
		if _, err := r.db.Exec(ctx, query, bookingID, extraID); err != nil {
			r.log.Error("Failed to attach extra service",
				zap.Error(err),
				zap.String("booking_id", bookingID.String()),
				zap.String("extra_service_id", extraID.String()),
			)
			return fmt.Errorf("attach extra service %s: %w", extraID.String(), err)
		}
	}

	return nil
}

func (r *bookingRepository) scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.Slug,
		&booking.VenueID,
		&booking.PackageID,
		&booking.RequesterID,
		&booking.StaffID,
		&booking.CouponID,
		&booking.Description,
		&booking.StartAt,
		&booking.EndAt,
		&booking.StartDate,
		&booking.TotalPrice,
		&booking.AdvancePaid,
		&booking.Status,
		&booking.RejectionReason,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) loadExtras(ctx context.Context, booking *entity.Booking) error {
	query := `SELECT extra_service_id FROM booking_extras WHERE booking_id = $1`

	rows, err := r.db.Query(ctx, query, booking.ID)
	if err != nil {
		return fmt.Errorf("load booking extras %s: %w", booking.ID.String(), err)
	}
	defer rows.Close()

	for rows.Next() {
		var extraID uuid.UUID
		if err := rows.Scan(&extraID); err != nil {
			return fmt.Errorf("scan booking extra: %w", err)
		}
		booking.ExtraServiceIDs = append(booking.ExtraServiceIDs, extraID)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := r.scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	if err := r.loadExtras(ctx, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

func (r *bookingRepository) FindBySlug(ctx context.Context, slug string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE slug = $1`

	booking, err := r.scanBooking(r.db.QueryRow(ctx, query, slug))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by slug",
			zap.Error(err),
			zap.String("slug", slug),
		)
		return nil, fmt.Errorf("find booking by slug %s: %w", slug, err)
	}

	if err := r.loadExtras(ctx, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

func (r *bookingRepository) FindByRequester(ctx context.Context, requesterID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE requester_id = $1
		ORDER BY start_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, requesterID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by requester",
			zap.Error(err),
			zap.String("requester_id", requesterID.String()),
		)
		return nil, fmt.Errorf("find bookings by requester %s: %w", requesterID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	for _, booking := range bookings {
		if err := r.loadExtras(ctx, booking); err != nil {
			return nil, err
		}
	}

	return bookings, nil
}

func (r *bookingRepository) CountByRequester(ctx context.Context, requesterID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE requester_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, requesterID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by requester",
			zap.Error(err),
			zap.String("requester_id", requesterID.String()),
		)
		return 0, fmt.Errorf("count bookings by requester %s: %w", requesterID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET venue_id = $2, package_id = $3, staff_id = $4, coupon_id = $5,
		    description = $6, start_at = $7, end_at = $8, start_date = $9,
		    total_price = $10, advance_paid = $11, status = $12,
		    rejection_reason = $13, updated_at = $14
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.VenueID,
		booking.PackageID,
		booking.StaffID,
		booking.CouponID,
		booking.Description,
		booking.StartAt,
		booking.EndAt,
		booking.StartDate,
		booking.TotalPrice,
		booking.AdvancePaid,
		booking.Status,
		booking.RejectionReason,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return &entity.NotFoundError{Kind: "booking", ID: booking.ID.String()}
	}

	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus, reason *string) error {
	query := `
		UPDATE bookings
		SET status = $2, rejection_reason = COALESCE($3, rejection_reason), updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, bookingID, status, reason)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return &entity.NotFoundError{Kind: "booking", ID: bookingID.String()}
	}

	return nil
}

func (r *bookingRepository) UpdateFinancials(ctx context.Context, bookingID uuid.UUID, advancePaid float64, status entity.BookingStatus) error {
	query := `UPDATE bookings SET advance_paid = $2, status = $3, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, advancePaid, status)
	if err != nil {
		r.log.Error("Failed to update booking financials",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.Float64("advance_paid", advancePaid),
		)
		return fmt.Errorf("update booking %s financials: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return &entity.NotFoundError{Kind: "booking", ID: bookingID.String()}
	}

	return nil
}

func (r *bookingRepository) ReplaceExtras(ctx context.Context, bookingID uuid.UUID, extraIDs []uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM booking_extras WHERE booking_id = $1`, bookingID); err != nil {
		return fmt.Errorf("clear booking extras %s: %w", bookingID.String(), err)
	}

	return r.insertExtras(ctx, bookingID, extraIDs)
}

// LockSlot serializes writers on one (venue, date) slot for the remainder
// of the current transaction. Concurrent admissions for the same slot queue
// here instead of racing the availability check.
func (r *bookingRepository) LockSlot(ctx context.Context, venueID uuid.UUID, date time.Time) error {
	key := venueID.String() + ":" + date.Format("2006-01-02")

	_, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key)
	if err != nil {
		r.log.Error("Failed to acquire slot lock",
			zap.Error(err),
			zap.String("slot", key),
		)
		return fmt.Errorf("lock slot %s: %w", key, err)
	}

	return nil
}

func (r *bookingRepository) IsDateAvailable(ctx context.Context, venueID uuid.UUID, date time.Time, excludeID uuid.UUID) (bool, error) {
	query := `
		SELECT NOT EXISTS (
			SELECT 1 FROM bookings
			WHERE venue_id = $1
			  AND start_date = $2
			  AND status NOT IN ('completed', 'cancelled', 'rejected')
			  AND id <> $3
		)
	`

	var available bool
	err := r.db.QueryRow(ctx, query, venueID, date, excludeID).Scan(&available)
	if err != nil {
		r.log.Error("Failed to check date availability",
			zap.Error(err),
			zap.String("venue_id", venueID.String()),
			zap.Time("date", date),
		)
		return false, fmt.Errorf("check availability for venue %s: %w", venueID.String(), err)
	}

	return available, nil
}

func (r *bookingRepository) BookedDates(ctx context.Context, venueID uuid.UUID, from, to time.Time) ([]time.Time, error) {
	query := `
		SELECT DISTINCT start_date
		FROM bookings
		WHERE venue_id = $1
		  AND start_date BETWEEN $2 AND $3
		  AND status NOT IN ('completed', 'cancelled', 'rejected')
		ORDER BY start_date
	`

	rows, err := r.db.Query(ctx, query, venueID, from, to)
	if err != nil {
		r.log.Error("Failed to list booked dates",
			zap.Error(err),
			zap.String("venue_id", venueID.String()),
		)
		return nil, fmt.Errorf("list booked dates for venue %s: %w", venueID.String(), err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("scan booked date: %w", err)
		}
		dates = append(dates, date)
	}

	return dates, nil
}

func (r *bookingRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slug %s: %w", slug, err)
	}
	return exists, nil
}

// FindSlugDuplicates returns every booking whose slug is shared with
// another booking, ordered so the earliest booking of each group comes
// first.
func (r *bookingRepository) FindSlugDuplicates(ctx context.Context) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE slug IN (
			SELECT slug FROM bookings GROUP BY slug HAVING COUNT(*) > 1
		)
		ORDER BY slug, created_at
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find duplicate slugs", zap.Error(err))
		return nil, fmt.Errorf("find duplicate slugs: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) UpdateSlug(ctx context.Context, bookingID uuid.UUID, slug string) error {
	result, err := r.db.Exec(ctx, `UPDATE bookings SET slug = $2, updated_at = NOW() WHERE id = $1`, bookingID, slug)
	if err != nil {
		if isUniqueViolation(err) {
			return &entity.IntegrityError{Op: "update slug", Err: err}
		}
		return fmt.Errorf("update slug for booking %s: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return &entity.NotFoundError{Kind: "booking", ID: bookingID.String()}
	}

	return nil
}

func (r *bookingRepository) StatusCounts(ctx context.Context) (map[entity.BookingStatus]int64, error) {
	counts := make(map[entity.BookingStatus]int64, len(entity.AllStatuses))
	for _, status := range entity.AllStatuses {
		counts[status] = 0
	}

	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM bookings GROUP BY status`)
	if err != nil {
		r.log.Error("Failed to count bookings by status", zap.Error(err))
		return nil, fmt.Errorf("count bookings by status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status entity.BookingStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[status] = count
	}

	return counts, nil
}

func (r *bookingRepository) ExistsForVenue(ctx context.Context, venueID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE venue_id = $1)`, venueID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check bookings for venue %s: %w", venueID.String(), err)
	}
	return exists, nil
}
