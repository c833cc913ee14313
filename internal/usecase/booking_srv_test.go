package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/dto/request"
	"venue-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type bookingFixture struct {
	repo    *repository.Repository
	store   *testStore
	service BookingService
	venue   *entity.Venue
	pkg     *entity.Package
	extras  []*entity.ExtraService
	coupon  *entity.Coupon
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	ctx := context.Background()
	repo, store := newTestRepo()

	venue := &entity.Venue{Base: entity.NewBase(time.Now()), Name: "Terrace One", Active: true, Slug: "terrace-one"}
	require.NoError(t, repo.Venue.Create(ctx, venue))

	pkg := &entity.Package{Base: entity.NewBase(time.Now()), Title: "Garden Premium", Capacity: 120, Price: 500.00, Slug: "garden-premium"}
	require.NoError(t, repo.Package.Create(ctx, pkg))

	extras := []*entity.ExtraService{
		{Base: entity.NewBase(time.Now()), Name: "DJ", Price: 50.00, Active: true, Slug: "dj"},
		{Base: entity.NewBase(time.Now()), Name: "Lighting", Price: 25.00, Active: true, Slug: "lighting"},
	}
	for _, extra := range extras {
		require.NoError(t, repo.ExtraService.Create(ctx, extra))
	}

	coupon := &entity.Coupon{Base: entity.NewBase(time.Now()), Code: "SUMMER10", DiscountPercent: 10, MaxUses: 2, Active: true}
	require.NoError(t, repo.Coupon.Create(ctx, coupon))

	config := utils.BookingConfig{DefaultVenueID: venue.ID.String(), SlugMaxAttempts: 5}

	return &bookingFixture{
		repo:    repo,
		store:   store,
		service: NewBookingService(repo, config, zap.NewNop()),
		venue:   venue,
		pkg:     pkg,
		extras:  extras,
		coupon:  coupon,
	}
}

func (f *bookingFixture) createRequest(day int) *request.CreateBookingRequest {
	start := time.Date(2026, 10, day, 18, 0, 0, 0, time.UTC)
	return &request.CreateBookingRequest{
		PackageID:       f.pkg.ID.String(),
		ExtraServiceIDs: []string{f.extras[0].ID.String(), f.extras[1].ID.String()},
		RequesterID:     uuid.NewString(),
		Description:     "birthday party",
		StartAt:         start.Format(time.RFC3339),
		EndAt:           start.Add(6 * time.Hour).Format(time.RFC3339),
	}
}

func TestCreateBooking(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	resp, err := f.service.CreateBooking(ctx, f.createRequest(10))
	require.NoError(t, err)

	assert.Equal(t, entity.StatusRequested, resp.Status)
	assert.Equal(t, 575.00, resp.TotalPrice)
	assert.Equal(t, 575.00, resp.AmountDue)
	assert.Equal(t, "2026-10-10", resp.StartDate)
	assert.Equal(t, f.venue.ID.String(), resp.VenueID)
	assert.NotEmpty(t, resp.Slug)
	assert.Len(t, resp.ExtraServices, 2)
}

func TestCreateBookingWithCoupon(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	req := f.createRequest(10)
	req.CouponCode = "SUMMER10"

	resp, err := f.service.CreateBooking(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 517.50, resp.TotalPrice)
	assert.Equal(t, "SUMMER10", resp.CouponCode)

	coupon, err := f.repo.Coupon.FindByID(ctx, f.coupon.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, coupon.CurrentUses)
}

func TestCreateBookingSpentCoupon(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	f.coupon.CurrentUses = f.coupon.MaxUses
	require.NoError(t, f.repo.Coupon.Create(ctx, f.coupon))

	req := f.createRequest(10)
	req.CouponCode = "SUMMER10"

	_, err := f.service.CreateBooking(ctx, req)
	var validationErr *entity.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestCreateBookingUnknownReferences(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	var refErr *entity.UnknownReferenceError

	req := f.createRequest(10)
	req.PackageID = uuid.NewString()
	_, err := f.service.CreateBooking(ctx, req)
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "package", refErr.Kind)

	req = f.createRequest(11)
	req.ExtraServiceIDs = append(req.ExtraServiceIDs, uuid.NewString())
	_, err = f.service.CreateBooking(ctx, req)
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "extra service", refErr.Kind)

	req = f.createRequest(12)
	req.CouponCode = "NOPE"
	_, err = f.service.CreateBooking(ctx, req)
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "coupon", refErr.Kind)
}

func TestCreateBookingEndBeforeStart(t *testing.T) {
	f := newBookingFixture(t)

	req := f.createRequest(10)
	req.EndAt = req.StartAt

	_, err := f.service.CreateBooking(context.Background(), req)
	var validationErr *entity.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "end_at", validationErr.Field)
}

func TestCreateBookingDateConflict(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	_, err := f.service.CreateBooking(ctx, f.createRequest(10))
	require.NoError(t, err)

	_, err = f.service.CreateBooking(ctx, f.createRequest(10))
	var dateErr *entity.DateUnavailableError
	require.ErrorAs(t, err, &dateErr)
	assert.Equal(t, f.venue.ID, dateErr.VenueID)

	// A different day is fine.
	_, err = f.service.CreateBooking(ctx, f.createRequest(11))
	require.NoError(t, err)
}

func TestCancelledBookingFreesSlot(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	first, err := f.service.CreateBooking(ctx, f.createRequest(10))
	require.NoError(t, err)

	_, err = f.service.CancelBooking(ctx, first.ID, &request.CancelBookingRequest{})
	require.NoError(t, err)

	_, err = f.service.CreateBooking(ctx, f.createRequest(10))
	require.NoError(t, err)
}

func TestConcurrentCreateSameSlot(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	const attempts = 8
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.service.CreateBooking(ctx, f.createRequest(20))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		var dateErr *entity.DateUnavailableError
		assert.ErrorAs(t, err, &dateErr)
	}
	assert.Equal(t, 1, winners, "exactly one booking may hold the slot")
}

func TestUpdateBookingReprices(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateBooking(ctx, f.createRequest(10))
	require.NoError(t, err)
	require.Equal(t, 575.00, created.TotalPrice)

	// Drop both extras.
	empty := []string{}
	updated, err := f.service.UpdateBooking(ctx, created.ID, &request.UpdateBookingRequest{
		ExtraServiceIDs: &empty,
	})
	require.NoError(t, err)
	assert.Equal(t, 500.00, updated.TotalPrice)
	assert.Empty(t, updated.ExtraServices)
}

func TestUpdateBookingCouponSwap(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	req := f.createRequest(10)
	req.CouponCode = "SUMMER10"
	created, err := f.service.CreateBooking(ctx, req)
	require.NoError(t, err)
	require.Equal(t, 517.50, created.TotalPrice)

	// Dropping the coupon hands the use back and reprices.
	none := ""
	updated, err := f.service.UpdateBooking(ctx, created.ID, &request.UpdateBookingRequest{
		CouponCode: &none,
	})
	require.NoError(t, err)
	assert.Equal(t, 575.00, updated.TotalPrice)

	coupon, err := f.repo.Coupon.FindByID(ctx, f.coupon.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, coupon.CurrentUses)
}

func TestUpdateBookingMoveToTakenDate(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	_, err := f.service.CreateBooking(ctx, f.createRequest(10))
	require.NoError(t, err)

	second, err := f.service.CreateBooking(ctx, f.createRequest(11))
	require.NoError(t, err)

	moved := time.Date(2026, 10, 10, 20, 0, 0, 0, time.UTC).Format(time.RFC3339)
	end := time.Date(2026, 10, 11, 2, 0, 0, 0, time.UTC).Format(time.RFC3339)
	_, err = f.service.UpdateBooking(ctx, second.ID, &request.UpdateBookingRequest{
		StartAt: &moved,
		EndAt:   &end,
	})

	var dateErr *entity.DateUnavailableError
	require.ErrorAs(t, err, &dateErr)
}

func TestLifecycleTransitions(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateBooking(ctx, f.createRequest(10))
	require.NoError(t, err)

	accepted, err := f.service.AcceptBooking(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAccepted, accepted.Status)

	// Rejection is still possible after acceptance.
	rejected, err := f.service.RejectBooking(ctx, created.ID, &request.RejectBookingRequest{Reason: "double booked offline"})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "double booked offline", *rejected.RejectionReason)

	// Terminal states have no outgoing edges.
	_, err = f.service.AcceptBooking(ctx, created.ID)
	var transitionErr *entity.IllegalTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, entity.StatusRejected, transitionErr.From)
}

func TestUpdateBookingRefusesRejected(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateBooking(ctx, f.createRequest(10))
	require.NoError(t, err)

	// A rejection needs a reason, so the generic patch refuses it.
	target := string(entity.StatusRejected)
	_, err = f.service.UpdateBooking(ctx, created.ID, &request.UpdateBookingRequest{
		Status: &target,
	})
	var validationErr *entity.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "status", validationErr.Field)

	fetched, err := f.service.GetBooking(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRequested, fetched.Status)
}

func TestChangeStatusUnknown(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateBooking(ctx, f.createRequest(10))
	require.NoError(t, err)

	_, err = f.service.ChangeStatus(ctx, created.ID, &request.UpdateStatusRequest{Status: "paused"})
	var validationErr *entity.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestCheckoutCreatesAndReusesOrder(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateBooking(ctx, f.createRequest(10))
	require.NoError(t, err)

	payerID := uuid.NewString()
	order, err := f.service.Checkout(ctx, created.ID, &request.CheckoutRequest{PayerID: payerID, Gateway: "transfer"})
	require.NoError(t, err)
	assert.Equal(t, 575.00, order.AmountDue)
	assert.Equal(t, entity.OrderStatusPending, order.Status)

	again, err := f.service.Checkout(ctx, created.ID, &request.CheckoutRequest{PayerID: payerID, Gateway: "transfer"})
	require.NoError(t, err)
	assert.Equal(t, order.ID, again.ID)
}

func TestStatusCountsCoverAllStatuses(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateBooking(ctx, f.createRequest(10))
	require.NoError(t, err)
	_, err = f.service.AcceptBooking(ctx, created.ID)
	require.NoError(t, err)

	counts, err := f.service.StatusCounts(ctx)
	require.NoError(t, err)

	assert.Len(t, counts, len(entity.AllStatuses))
	assert.Equal(t, int64(1), counts[entity.StatusAccepted])
	assert.Equal(t, int64(0), counts[entity.StatusRequested])
}

func TestBookedDates(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	_, err := f.service.CreateBooking(ctx, f.createRequest(10))
	require.NoError(t, err)
	cancelled, err := f.service.CreateBooking(ctx, f.createRequest(12))
	require.NoError(t, err)
	_, err = f.service.CancelBooking(ctx, cancelled.ID, &request.CancelBookingRequest{})
	require.NoError(t, err)

	resp, err := f.service.BookedDates(ctx, f.venue.ID.String(), "2026-10-01", "2026-10-31")
	require.NoError(t, err)

	// Cancelled bookings do not block their day.
	assert.Equal(t, []string{"2026-10-10"}, resp.Booked)
}

func TestDateAvailable(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	_, err := f.service.CreateBooking(ctx, f.createRequest(10))
	require.NoError(t, err)

	taken, err := f.service.DateAvailable(ctx, f.venue.ID.String(), "2026-10-10")
	require.NoError(t, err)
	assert.False(t, taken.Available)

	free, err := f.service.DateAvailable(ctx, f.venue.ID.String(), "2026-10-11")
	require.NoError(t, err)
	assert.True(t, free.Available)

	_, err = f.service.DateAvailable(ctx, f.venue.ID.String(), "not-a-date")
	var vErr *entity.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestRepairDuplicateSlugs(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mkBooking := func(slug string, createdAt time.Time, day int) *entity.Booking {
		return &entity.Booking{
			Base:        entity.Base{ID: uuid.New(), CreatedAt: createdAt, UpdatedAt: createdAt},
			Slug:        slug,
			VenueID:     f.venue.ID,
			PackageID:   f.pkg.ID,
			RequesterID: uuid.New(),
			StartAt:     time.Date(2026, 11, day, 18, 0, 0, 0, time.UTC),
			EndAt:       time.Date(2026, 11, day, 23, 0, 0, 0, time.UTC),
			StartDate:   time.Date(2026, 11, day, 0, 0, 0, 0, time.UTC),
			TotalPrice:  500.00,
			Status:      entity.StatusRequested,
		}
	}

	keeper := mkBooking("dup-slug", base, 1)
	second := mkBooking("dup-slug", base.Add(time.Hour), 2)
	third := mkBooking("dup-slug", base.Add(2*time.Hour), 3)
	clean := mkBooking("clean-slug", base, 4)

	// Seed directly; the repository's own Create would refuse duplicates.
	f.store.bookings[keeper.ID] = keeper
	f.store.bookings[second.ID] = second
	f.store.bookings[third.ID] = third
	f.store.bookings[clean.ID] = clean

	result, err := f.service.RepairDuplicateSlugs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Renamed)

	kept, err := f.repo.Booking.FindByID(ctx, keeper.ID)
	require.NoError(t, err)
	assert.Equal(t, "dup-slug", kept.Slug, "earliest booking keeps its slug")

	renamedSecond, err := f.repo.Booking.FindByID(ctx, second.ID)
	require.NoError(t, err)
	renamedThird, err := f.repo.Booking.FindByID(ctx, third.ID)
	require.NoError(t, err)

	assert.NotEqual(t, "dup-slug", renamedSecond.Slug)
	assert.NotEqual(t, "dup-slug", renamedThird.Slug)
	assert.NotEqual(t, renamedSecond.Slug, renamedThird.Slug)
	assert.Contains(t, renamedSecond.Slug, "dup-slug-")

	untouched, err := f.repo.Booking.FindByID(ctx, clean.ID)
	require.NoError(t, err)
	assert.Equal(t, "clean-slug", untouched.Slug)

	// Idempotent once clean.
	result, err = f.service.RepairDuplicateSlugs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Renamed)
}

func TestGetBookingByIDOrSlug(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateBooking(ctx, f.createRequest(10))
	require.NoError(t, err)

	byID, err := f.service.GetBooking(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Slug, byID.Slug)

	bySlug, err := f.service.GetBooking(ctx, created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	_, err = f.service.GetBooking(ctx, fmt.Sprintf("missing-%s", uuid.NewString()))
	var notFoundErr *entity.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}
