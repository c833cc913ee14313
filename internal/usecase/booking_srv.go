package usecase

import (
	"context"
	"fmt"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/dto/request"
	"venue-booking/internal/dto/response"
	"venue-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetBooking(ctx context.Context, idOrSlug string) (*response.BookingResponse, error)
	GetRequesterBookings(ctx context.Context, requesterID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	UpdateBooking(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error)

	// Staff lifecycle operations
	AcceptBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	RejectBooking(ctx context.Context, bookingID string, req *request.RejectBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID string, req *request.CancelBookingRequest) (*response.BookingResponse, error)
	ChangeStatus(ctx context.Context, bookingID string, req *request.UpdateStatusRequest) (*response.BookingResponse, error)

	// Payment entry point
	Checkout(ctx context.Context, bookingID string, req *request.CheckoutRequest) (*response.PaymentOrderResponse, error)

	// Reporting and maintenance
	DateAvailable(ctx context.Context, venueID, date string) (*response.DateAvailabilityResponse, error)
	BookedDates(ctx context.Context, venueID, from, to string) (*response.BookedDatesResponse, error)
	StatusCounts(ctx context.Context) (response.StatusCountsResponse, error)
	RepairDuplicateSlugs(ctx context.Context) (*response.SlugRepairResponse, error)
}

type bookingService struct {
	repo   *repository.Repository
	config utils.BookingConfig
	log    *zap.Logger
}

func NewBookingService(repo *repository.Repository, config utils.BookingConfig, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "booking")),
	}
}

// bookingRefs holds the resolved catalog rows a create or update needs.
type bookingRefs struct {
	venue  *entity.Venue
	pkg    *entity.Package
	extras []*entity.ExtraService
	coupon *entity.Coupon
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, &entity.ValidationError{Field: "request", Reason: utils.FormatValidationErrors(errs)}
	}

	requesterID, err := uuid.Parse(req.RequesterID)
	if err != nil {
		return nil, &entity.ValidationError{Field: "requester_id", Reason: "not a valid UUID"}
	}

	startAt, endAt, err := parseBookingWindow(req.StartAt, req.EndAt)
	if err != nil {
		return nil, err
	}

	refs, err := s.resolveRefs(ctx, req.VenueID, req.PackageID, req.ExtraServiceIDs, req.CouponCode)
	if err != nil {
		return nil, err
	}

	totalPrice := ComputeTotal(refs.pkg, refs.extras, refs.coupon)
	startDate := entity.SlotDate(startAt)

	booking := &entity.Booking{
		Base:        entity.NewBase(time.Now()),
		VenueID:     refs.venue.ID,
		PackageID:   refs.pkg.ID,
		RequesterID: requesterID,
		Description: req.Description,
		StartAt:     startAt,
		EndAt:       endAt,
		StartDate:   startDate,
		TotalPrice:  totalPrice,
		Status:      entity.StatusRequested,
	}
	if refs.coupon != nil {
		couponID := refs.coupon.ID
		booking.CouponID = &couponID
	}
	for _, extra := range refs.extras {
		booking.ExtraServiceIDs = append(booking.ExtraServiceIDs, extra.ID)
	}

	// Admission and insert commit together. The advisory lock serializes
	// concurrent requests for the same venue-day, so the availability check
	// cannot race with another insert.
	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		if err := admitSlot(ctx, tx, booking.VenueID, startDate, uuid.Nil); err != nil {
			return err
		}

		slug, err := AllocateSlug(ctx, requesterID, startAt, s.config.SlugMaxAttempts, tx.Booking.SlugExists)
		if err != nil {
			return err
		}
		booking.Slug = slug

		if booking.CouponID != nil {
			consumed, err := tx.Coupon.Consume(ctx, *booking.CouponID)
			if err != nil {
				return err
			}
			if !consumed {
				return &entity.ValidationError{Field: "coupon_code", Reason: "coupon is no longer valid"}
			}
		}

		return tx.Booking.Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("slug", booking.Slug),
		zap.Float64("total_price", booking.TotalPrice),
	)

	return s.toResponse(ctx, booking)
}

func (s *bookingService) GetBooking(ctx context.Context, idOrSlug string) (*response.BookingResponse, error) {
	var booking *entity.Booking
	var err error

	if id, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		booking, err = s.repo.Booking.FindByID(ctx, id)
	} else {
		booking, err = s.repo.Booking.FindBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, &entity.NotFoundError{Kind: "booking", ID: idOrSlug}
	}

	return s.toResponse(ctx, booking)
}

func (s *bookingService) GetRequesterBookings(ctx context.Context, requesterID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	requesterUUID, err := uuid.Parse(requesterID)
	if err != nil {
		return nil, &entity.ValidationError{Field: "requester_id", Reason: "not a valid UUID"}
	}

	bookings, err := s.repo.Booking.FindByRequester(ctx, requesterUUID, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Booking.CountByRequester(ctx, requesterUUID)
	if err != nil {
		return nil, err
	}

	items := make([]response.BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		resp, err := s.toResponse(ctx, booking)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, bookingID string, req *request.UpdateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &entity.ValidationError{Field: "request", Reason: utils.FormatValidationErrors(errs)}
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, &entity.ValidationError{Field: "booking_id", Reason: "not a valid UUID"}
	}

	var updated *entity.Booking
	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		booking, err := tx.Booking.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if booking == nil {
			return &entity.NotFoundError{Kind: "booking", ID: bookingID}
		}
		if booking.Status.Terminal() {
			return &entity.ValidationError{Field: "status", Reason: fmt.Sprintf("booking is %s and can no longer change", booking.Status)}
		}

		if err := s.applyPatch(ctx, tx, booking, req); err != nil {
			return err
		}

		updated = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking updated", zap.String("booking_id", updated.ID.String()))

	return s.toResponse(ctx, updated)
}

// applyPatch mutates the booking in place inside the caller's transaction.
func (s *bookingService) applyPatch(ctx context.Context, tx *repository.Repository, booking *entity.Booking, req *request.UpdateBookingRequest) error {
	repriceNeeded := false
	oldCouponID := booking.CouponID

	if req.StartAt != nil || req.EndAt != nil {
		startStr := booking.StartAt.Format(time.RFC3339)
		endStr := booking.EndAt.Format(time.RFC3339)
		if req.StartAt != nil {
			startStr = *req.StartAt
		}
		if req.EndAt != nil {
			endStr = *req.EndAt
		}
		startAt, endAt, err := parseBookingWindow(startStr, endStr)
		if err != nil {
			return err
		}

		newDate := entity.SlotDate(startAt)
		if !newDate.Equal(booking.StartDate) {
			// Moving days re-runs admission for the new slot, excluding
			// this booking itself.
			if err := admitSlot(ctx, tx, booking.VenueID, newDate, booking.ID); err != nil {
				return err
			}
		}

		booking.StartAt = startAt
		booking.EndAt = endAt
		booking.StartDate = newDate
	}

	if req.PackageID != nil {
		pkgID, err := uuid.Parse(*req.PackageID)
		if err != nil {
			return &entity.ValidationError{Field: "package_id", Reason: "not a valid UUID"}
		}
		pkg, err := tx.Package.FindByID(ctx, pkgID)
		if err != nil {
			return err
		}
		if pkg == nil {
			return &entity.UnknownReferenceError{Kind: "package", ID: *req.PackageID}
		}
		booking.PackageID = pkg.ID
		repriceNeeded = true
	}

	if req.ExtraServiceIDs != nil {
		extras, err := s.resolveExtras(ctx, tx, *req.ExtraServiceIDs)
		if err != nil {
			return err
		}
		booking.ExtraServiceIDs = booking.ExtraServiceIDs[:0]
		for _, extra := range extras {
			booking.ExtraServiceIDs = append(booking.ExtraServiceIDs, extra.ID)
		}
		if err := tx.Booking.ReplaceExtras(ctx, booking.ID, booking.ExtraServiceIDs); err != nil {
			return err
		}
		repriceNeeded = true
	}

	if req.CouponCode != nil {
		if *req.CouponCode == "" {
			booking.CouponID = nil
		} else {
			coupon, err := tx.Coupon.FindByCode(ctx, *req.CouponCode)
			if err != nil {
				return err
			}
			if coupon == nil {
				return &entity.UnknownReferenceError{Kind: "coupon", ID: *req.CouponCode}
			}
			if oldCouponID == nil || *oldCouponID != coupon.ID {
				consumed, err := tx.Coupon.Consume(ctx, coupon.ID)
				if err != nil {
					return err
				}
				if !consumed {
					return &entity.ValidationError{Field: "coupon_code", Reason: "coupon is no longer valid"}
				}
			}
			couponID := coupon.ID
			booking.CouponID = &couponID
		}
		repriceNeeded = true
	}

	// A dropped or swapped coupon hands its use back.
	if oldCouponID != nil && (booking.CouponID == nil || *booking.CouponID != *oldCouponID) {
		if err := tx.Coupon.Release(ctx, *oldCouponID); err != nil {
			return err
		}
	}

	if req.Description != nil {
		booking.Description = *req.Description
	}

	if req.StaffID != nil {
		staffID, err := uuid.Parse(*req.StaffID)
		if err != nil {
			return &entity.ValidationError{Field: "staff_id", Reason: "not a valid UUID"}
		}
		booking.StaffID = &staffID
	}

	if req.Status != nil {
		target := entity.BookingStatus(*req.Status)
		if !target.Known() {
			return &entity.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %s", *req.Status)}
		}
		// Rejection carries a mandatory reason and this patch has no field
		// for one; that path belongs to the reject operation.
		if target == entity.StatusRejected {
			return &entity.ValidationError{Field: "status", Reason: "rejection requires a reason, use the reject operation"}
		}
		if target != booking.Status {
			if !entity.CanTransition(booking.Status, target) {
				return &entity.IllegalTransitionError{From: booking.Status, To: target}
			}
			booking.Status = target
			// Same side effect as the cancel operation: paid money on a
			// cancelled booking needs a refund request.
			if target == entity.StatusCancelled {
				if err := s.raiseRefunds(ctx, tx, booking); err != nil {
					return err
				}
			}
		}
	}

	if repriceNeeded {
		total, err := s.repriceBooking(ctx, tx, booking)
		if err != nil {
			return err
		}
		booking.TotalPrice = total
	}

	if err := tx.Booking.Update(ctx, booking); err != nil {
		return err
	}

	if repriceNeeded {
		// The new total may change what the already-paid sum amounts to.
		if _, _, err := applyLedger(ctx, tx, booking); err != nil {
			return err
		}
	}

	return nil
}

// repriceBooking recomputes the total from the booking's current references.
func (s *bookingService) repriceBooking(ctx context.Context, tx *repository.Repository, booking *entity.Booking) (float64, error) {
	pkg, err := tx.Package.FindByID(ctx, booking.PackageID)
	if err != nil {
		return 0, err
	}
	if pkg == nil {
		return 0, &entity.UnknownReferenceError{Kind: "package", ID: booking.PackageID.String()}
	}

	extras, err := tx.ExtraService.FindByIDs(ctx, booking.ExtraServiceIDs)
	if err != nil {
		return 0, err
	}

	total := ComputeTotal(pkg, extras, nil)

	if booking.HasCoupon() {
		coupon, err := tx.Coupon.FindByID(ctx, *booking.CouponID)
		if err != nil {
			return 0, err
		}
		// The booking already holds a consumed use, so the discount applies
		// even when the counter has since hit the cap.
		if coupon != nil && coupon.Active {
			total = utils.RoundMoney(total * (1 - coupon.DiscountPercent/100))
		}
	}

	return total, nil
}

func (s *bookingService) AcceptBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	return s.transition(ctx, bookingID, entity.StatusAccepted, nil)
}

func (s *bookingService) RejectBooking(ctx context.Context, bookingID string, req *request.RejectBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &entity.ValidationError{Field: "request", Reason: utils.FormatValidationErrors(errs)}
	}
	return s.transition(ctx, bookingID, entity.StatusRejected, &req.Reason)
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string, req *request.CancelBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &entity.ValidationError{Field: "request", Reason: utils.FormatValidationErrors(errs)}
	}
	var reason *string
	if req.Reason != "" {
		reason = &req.Reason
	}
	return s.transition(ctx, bookingID, entity.StatusCancelled, reason)
}

func (s *bookingService) ChangeStatus(ctx context.Context, bookingID string, req *request.UpdateStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &entity.ValidationError{Field: "request", Reason: utils.FormatValidationErrors(errs)}
	}

	target := entity.BookingStatus(req.Status)
	if !target.Known() {
		return nil, &entity.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %s", req.Status)}
	}

	return s.transition(ctx, bookingID, target, nil)
}

// transition performs one manual status change. Cancelling a booking with
// paid payments also raises refund requests, in the same transaction; the
// slot is freed by the status itself since only active bookings occupy it.
func (s *bookingService) transition(ctx context.Context, bookingID string, target entity.BookingStatus, reason *string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, &entity.ValidationError{Field: "booking_id", Reason: "not a valid UUID"}
	}

	var updated *entity.Booking
	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		booking, err := tx.Booking.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if booking == nil {
			return &entity.NotFoundError{Kind: "booking", ID: bookingID}
		}

		if booking.Status == target {
			updated = booking
			return nil
		}
		if !entity.CanTransition(booking.Status, target) {
			return &entity.IllegalTransitionError{From: booking.Status, To: target}
		}

		if err := tx.Booking.UpdateStatus(ctx, booking.ID, target, reason); err != nil {
			return err
		}
		booking.Status = target
		if reason != nil {
			booking.RejectionReason = reason
		}

		if target == entity.StatusCancelled {
			if err := s.raiseRefunds(ctx, tx, booking); err != nil {
				return err
			}
		}

		updated = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking status changed",
		zap.String("booking_id", updated.ID.String()),
		zap.String("status", string(updated.Status)),
	)

	return s.toResponse(ctx, updated)
}

// raiseRefunds files one refund request per paid payment that does not have
// one yet.
func (s *bookingService) raiseRefunds(ctx context.Context, tx *repository.Repository, booking *entity.Booking) error {
	payments, err := tx.Payment.FindPaidByBookingID(ctx, booking.ID)
	if err != nil {
		return err
	}

	for _, payment := range payments {
		exists, err := tx.Refund.ExistsForPayment(ctx, payment.ID)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		refund := &entity.RefundRequest{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
			PaymentID:  payment.ID,
			Reason:     fmt.Sprintf("booking %s cancelled", booking.Slug),
		}
		if err := tx.Refund.Create(ctx, refund); err != nil {
			return err
		}
	}

	return nil
}

func (s *bookingService) Checkout(ctx context.Context, bookingID string, req *request.CheckoutRequest) (*response.PaymentOrderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &entity.ValidationError{Field: "request", Reason: utils.FormatValidationErrors(errs)}
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, &entity.ValidationError{Field: "booking_id", Reason: "not a valid UUID"}
	}
	payerID, err := uuid.Parse(req.PayerID)
	if err != nil {
		return nil, &entity.ValidationError{Field: "payer_id", Reason: "not a valid UUID"}
	}

	var order *entity.PaymentOrder
	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		booking, err := tx.Booking.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if booking == nil {
			return &entity.NotFoundError{Kind: "booking", ID: bookingID}
		}
		if booking.Status.Terminal() {
			return &entity.ValidationError{Field: "status", Reason: fmt.Sprintf("booking is %s and cannot be paid", booking.Status)}
		}

		// One order per booking and payer; repeated checkouts reuse it with
		// a freshly derived amount due.
		existing, err := tx.PaymentOrder.FindByBookingAndPayer(ctx, booking.ID, payerID)
		if err != nil {
			return err
		}

		paidSum, err := tx.Payment.SumPaidByBookingID(ctx, booking.ID)
		if err != nil {
			return err
		}
		amountDue := utils.RoundMoney(booking.TotalPrice - paidSum)
		status := entity.OrderStatusPending
		if amountDue <= 0 {
			status = entity.OrderStatusSettled
		}

		if existing != nil {
			existing.AmountDue = amountDue
			existing.Status = status
			if err := tx.PaymentOrder.Update(ctx, existing); err != nil {
				return err
			}
			order = existing
			return nil
		}

		order = &entity.PaymentOrder{
			Base:      entity.NewBase(time.Now()),
			BookingID: booking.ID,
			PayerID:   payerID,
			Gateway:   req.Gateway,
			AmountDue: amountDue,
			Status:    status,
		}
		return tx.PaymentOrder.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *bookingService) DateAvailable(ctx context.Context, venueID, date string) (*response.DateAvailabilityResponse, error) {
	venueUUID, err := uuid.Parse(venueID)
	if err != nil {
		return nil, &entity.ValidationError{Field: "venue_id", Reason: "not a valid UUID"}
	}
	slot, err := utils.ParseDate(date)
	if err != nil {
		return nil, &entity.ValidationError{Field: "date", Reason: "expected YYYY-MM-DD"}
	}

	available, err := CheckAvailable(ctx, s.repo, venueUUID, slot)
	if err != nil {
		return nil, err
	}

	return &response.DateAvailabilityResponse{
		VenueID:   venueID,
		Date:      slot.Format("2006-01-02"),
		Available: available,
	}, nil
}

func (s *bookingService) BookedDates(ctx context.Context, venueID, from, to string) (*response.BookedDatesResponse, error) {
	venueUUID, err := uuid.Parse(venueID)
	if err != nil {
		return nil, &entity.ValidationError{Field: "venue_id", Reason: "not a valid UUID"}
	}

	now := time.Now().UTC()
	fromDate := entity.SlotDate(now)
	toDate := fromDate.AddDate(1, 0, 0)
	if from != "" {
		if fromDate, err = utils.ParseDate(from); err != nil {
			return nil, &entity.ValidationError{Field: "from", Reason: "expected YYYY-MM-DD"}
		}
	}
	if to != "" {
		if toDate, err = utils.ParseDate(to); err != nil {
			return nil, &entity.ValidationError{Field: "to", Reason: "expected YYYY-MM-DD"}
		}
	}
	if toDate.Before(fromDate) {
		return nil, &entity.ValidationError{Field: "to", Reason: "range end before start"}
	}

	dates, err := s.repo.Booking.BookedDates(ctx, venueUUID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	booked := make([]string, 0, len(dates))
	for _, date := range dates {
		booked = append(booked, date.Format("2006-01-02"))
	}

	return &response.BookedDatesResponse{
		VenueID: venueID,
		From:    fromDate.Format("2006-01-02"),
		To:      toDate.Format("2006-01-02"),
		Booked:  booked,
	}, nil
}

func (s *bookingService) StatusCounts(ctx context.Context) (response.StatusCountsResponse, error) {
	counts, err := s.repo.Booking.StatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	return response.StatusCountsResponse(counts), nil
}

// RepairDuplicateSlugs renames bookings that ended up sharing a slug. The
// earliest booking per slug keeps the name; later ones get a numeric suffix
// checked for uniqueness. A single transaction covers the whole pass.
func (s *bookingService) RepairDuplicateSlugs(ctx context.Context) (*response.SlugRepairResponse, error) {
	renamed := 0

	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		duplicates, err := tx.Booking.FindSlugDuplicates(ctx)
		if err != nil {
			return err
		}

		// Rows arrive ordered by slug then created_at, so the first row of
		// each group is the keeper.
		var currentSlug string
		for _, booking := range duplicates {
			if booking.Slug != currentSlug {
				currentSlug = booking.Slug
				continue
			}

			fresh, err := uniqueSuffixed(ctx, booking.Slug, tx.Booking.SlugExists)
			if err != nil {
				return err
			}
			if err := tx.Booking.UpdateSlug(ctx, booking.ID, fresh); err != nil {
				return err
			}
			renamed++
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if renamed > 0 {
		s.log.Info("Repaired duplicate slugs", zap.Int("renamed", renamed))
	}

	return &response.SlugRepairResponse{Renamed: renamed}, nil
}

// resolveRefs looks up every catalog row a new booking references and
// reports the first unknown one.
func (s *bookingService) resolveRefs(ctx context.Context, venueID, packageID string, extraIDs []string, couponCode string) (*bookingRefs, error) {
	refs := &bookingRefs{}

	if venueID == "" {
		venueID = s.config.DefaultVenueID
	}
	venueUUID, err := uuid.Parse(venueID)
	if err != nil {
		return nil, &entity.ValidationError{Field: "venue_id", Reason: "no venue given and no default configured"}
	}
	refs.venue, err = s.repo.Venue.FindByID(ctx, venueUUID)
	if err != nil {
		return nil, err
	}
	if refs.venue == nil || !refs.venue.Active {
		return nil, &entity.UnknownReferenceError{Kind: "venue", ID: venueID}
	}

	pkgUUID, err := uuid.Parse(packageID)
	if err != nil {
		return nil, &entity.ValidationError{Field: "package_id", Reason: "not a valid UUID"}
	}
	refs.pkg, err = s.repo.Package.FindByID(ctx, pkgUUID)
	if err != nil {
		return nil, err
	}
	if refs.pkg == nil {
		return nil, &entity.UnknownReferenceError{Kind: "package", ID: packageID}
	}

	refs.extras, err = s.resolveExtras(ctx, s.repo, extraIDs)
	if err != nil {
		return nil, err
	}

	if couponCode != "" {
		refs.coupon, err = s.repo.Coupon.FindByCode(ctx, couponCode)
		if err != nil {
			return nil, err
		}
		if refs.coupon == nil {
			return nil, &entity.UnknownReferenceError{Kind: "coupon", ID: couponCode}
		}
		if !refs.coupon.Valid() {
			return nil, &entity.ValidationError{Field: "coupon_code", Reason: "coupon is no longer valid"}
		}
	}

	return refs, nil
}

func (s *bookingService) resolveExtras(ctx context.Context, repo *repository.Repository, extraIDs []string) ([]*entity.ExtraService, error) {
	if len(extraIDs) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(extraIDs))
	for _, raw := range extraIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, &entity.ValidationError{Field: "extra_service_ids", Reason: fmt.Sprintf("%s is not a valid UUID", raw)}
		}
		ids = append(ids, id)
	}

	extras, err := repo.ExtraService.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	found := make(map[uuid.UUID]bool, len(extras))
	for _, extra := range extras {
		found[extra.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, &entity.UnknownReferenceError{Kind: "extra service", ID: id.String()}
		}
	}

	return extras, nil
}

func parseBookingWindow(startStr, endStr string) (time.Time, time.Time, error) {
	startAt, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, &entity.ValidationError{Field: "start_at", Reason: "expected RFC3339 timestamp"}
	}
	endAt, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, &entity.ValidationError{Field: "end_at", Reason: "expected RFC3339 timestamp"}
	}
	if !endAt.After(startAt) {
		return time.Time{}, time.Time{}, &entity.ValidationError{Field: "end_at", Reason: "end must be after start"}
	}
	return startAt, endAt, nil
}

func (s *bookingService) toResponse(ctx context.Context, booking *entity.Booking) (*response.BookingResponse, error) {
	resp := &response.BookingResponse{
		ID:              booking.ID.String(),
		Slug:            booking.Slug,
		VenueID:         booking.VenueID.String(),
		PackageID:       booking.PackageID.String(),
		RequesterID:     booking.RequesterID.String(),
		Description:     booking.Description,
		StartAt:         booking.StartAt,
		EndAt:           booking.EndAt,
		StartDate:       booking.StartDate.Format("2006-01-02"),
		TotalPrice:      booking.TotalPrice,
		AdvancePaid:     booking.AdvancePaid,
		AmountDue:       utils.RoundMoney(booking.TotalPrice - booking.AdvancePaid),
		Status:          booking.Status,
		RejectionReason: booking.RejectionReason,
		CreatedAt:       booking.CreatedAt,
	}
	if resp.AmountDue < 0 {
		resp.AmountDue = 0
	}
	if booking.StaffID != nil {
		staffID := booking.StaffID.String()
		resp.StaffID = &staffID
	}

	if venue, err := s.repo.Venue.FindByID(ctx, booking.VenueID); err == nil && venue != nil {
		resp.VenueName = venue.Name
	}
	if pkg, err := s.repo.Package.FindByID(ctx, booking.PackageID); err == nil && pkg != nil {
		resp.PackageTitle = pkg.Title
	}
	if booking.HasCoupon() {
		if coupon, err := s.repo.Coupon.FindByID(ctx, *booking.CouponID); err == nil && coupon != nil {
			resp.CouponCode = coupon.Code
		}
	}
	if len(booking.ExtraServiceIDs) > 0 {
		extras, err := s.repo.ExtraService.FindByIDs(ctx, booking.ExtraServiceIDs)
		if err == nil {
			for _, extra := range extras {
				resp.ExtraServices = append(resp.ExtraServices, response.ExtraServiceBrief{
					ID:    extra.ID.String(),
					Name:  extra.Name,
					Price: extra.Price,
				})
			}
		}
	}

	return resp, nil
}
