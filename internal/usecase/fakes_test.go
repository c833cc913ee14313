package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"

	"github.com/google/uuid"
)

// In-memory repository implementations backing the service tests. The
// Repository is assembled without a database, so WithTx serializes through
// its mutex and the fakes see the same isolation the advisory lock gives
// the real thing.

func newTestRepo() (*repository.Repository, *testStore) {
	store := &testStore{
		venues:   map[uuid.UUID]*entity.Venue{},
		packages: map[uuid.UUID]*entity.Package{},
		extras:   map[uuid.UUID]*entity.ExtraService{},
		coupons:  map[uuid.UUID]*entity.Coupon{},
		bookings: map[uuid.UUID]*entity.Booking{},
		orders:   map[uuid.UUID]*entity.PaymentOrder{},
		payments: map[uuid.UUID]*entity.Payment{},
		refunds:  map[uuid.UUID]*entity.RefundRequest{},
	}

	repo := &repository.Repository{
		Venue:        &fakeVenueRepo{store: store},
		Package:      &fakePackageRepo{store: store},
		ExtraService: &fakeExtraRepo{store: store},
		Coupon:       &fakeCouponRepo{store: store},
		Booking:      &fakeBookingRepo{store: store},
		PaymentOrder: &fakeOrderRepo{store: store},
		Payment:      &fakePaymentRepo{store: store},
		Refund:       &fakeRefundRepo{store: store},
	}
	return repo, store
}

type testStore struct {
	mu       sync.Mutex
	venues   map[uuid.UUID]*entity.Venue
	packages map[uuid.UUID]*entity.Package
	extras   map[uuid.UUID]*entity.ExtraService
	coupons  map[uuid.UUID]*entity.Coupon
	bookings map[uuid.UUID]*entity.Booking
	orders   map[uuid.UUID]*entity.PaymentOrder
	payments map[uuid.UUID]*entity.Payment
	refunds  map[uuid.UUID]*entity.RefundRequest
}

func copyBooking(b *entity.Booking) *entity.Booking {
	c := *b
	c.ExtraServiceIDs = append([]uuid.UUID(nil), b.ExtraServiceIDs...)
	return &c
}

// ---- venues ----

type fakeVenueRepo struct{ store *testStore }

func (r *fakeVenueRepo) Create(ctx context.Context, venue *entity.Venue) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *venue
	r.store.venues[venue.ID] = &c
	return nil
}

func (r *fakeVenueRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Venue, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	venue, ok := r.store.venues[id]
	if !ok {
		return nil, nil
	}
	c := *venue
	return &c, nil
}

func (r *fakeVenueRepo) FindAll(ctx context.Context) ([]*entity.Venue, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.Venue, 0, len(r.store.venues))
	for _, venue := range r.store.venues {
		c := *venue
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakeVenueRepo) Update(ctx context.Context, venue *entity.Venue) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *venue
	r.store.venues[venue.ID] = &c
	return nil
}

func (r *fakeVenueRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.venues, id)
	return nil
}

// ---- packages ----

type fakePackageRepo struct{ store *testStore }

func (r *fakePackageRepo) Create(ctx context.Context, pkg *entity.Package) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *pkg
	r.store.packages[pkg.ID] = &c
	return nil
}

func (r *fakePackageRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Package, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	pkg, ok := r.store.packages[id]
	if !ok {
		return nil, nil
	}
	c := *pkg
	return &c, nil
}

func (r *fakePackageRepo) FindAll(ctx context.Context) ([]*entity.Package, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.Package, 0, len(r.store.packages))
	for _, pkg := range r.store.packages {
		c := *pkg
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakePackageRepo) Update(ctx context.Context, pkg *entity.Package) error {
	return r.Create(ctx, pkg)
}

// ---- extra services ----

type fakeExtraRepo struct{ store *testStore }

func (r *fakeExtraRepo) Create(ctx context.Context, extra *entity.ExtraService) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *extra
	r.store.extras[extra.ID] = &c
	return nil
}

func (r *fakeExtraRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.ExtraService, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	extra, ok := r.store.extras[id]
	if !ok {
		return nil, nil
	}
	c := *extra
	return &c, nil
}

func (r *fakeExtraRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.ExtraService, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.ExtraService, 0, len(ids))
	for _, id := range ids {
		if extra, ok := r.store.extras[id]; ok {
			c := *extra
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeExtraRepo) FindAllActive(ctx context.Context) ([]*entity.ExtraService, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.ExtraService
	for _, extra := range r.store.extras {
		if extra.Active {
			c := *extra
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeExtraRepo) Update(ctx context.Context, extra *entity.ExtraService) error {
	return r.Create(ctx, extra)
}

// ---- coupons ----

type fakeCouponRepo struct{ store *testStore }

func (r *fakeCouponRepo) Create(ctx context.Context, coupon *entity.Coupon) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *coupon
	r.store.coupons[coupon.ID] = &c
	return nil
}

func (r *fakeCouponRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Coupon, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	coupon, ok := r.store.coupons[id]
	if !ok {
		return nil, nil
	}
	c := *coupon
	return &c, nil
}

func (r *fakeCouponRepo) FindByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, coupon := range r.store.coupons {
		if coupon.Code == code {
			c := *coupon
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeCouponRepo) FindAll(ctx context.Context) ([]*entity.Coupon, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.Coupon, 0, len(r.store.coupons))
	for _, coupon := range r.store.coupons {
		c := *coupon
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakeCouponRepo) Consume(ctx context.Context, id uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	coupon, ok := r.store.coupons[id]
	if !ok || !coupon.Active || coupon.CurrentUses >= coupon.MaxUses {
		return false, nil
	}
	coupon.CurrentUses++
	return true, nil
}

func (r *fakeCouponRepo) Release(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if coupon, ok := r.store.coupons[id]; ok && coupon.CurrentUses > 0 {
		coupon.CurrentUses--
	}
	return nil
}

// ---- bookings ----

type fakeBookingRepo struct{ store *testStore }

func (r *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.bookings {
		if existing.Slug == booking.Slug {
			return &entity.IntegrityError{Op: "create booking"}
		}
	}
	r.store.bookings[booking.ID] = copyBooking(booking)
	return nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	booking, ok := r.store.bookings[id]
	if !ok {
		return nil, nil
	}
	return copyBooking(booking), nil
}

func (r *fakeBookingRepo) FindBySlug(ctx context.Context, slug string) (*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, booking := range r.store.bookings {
		if booking.Slug == slug {
			return copyBooking(booking), nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) FindByRequester(ctx context.Context, requesterID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var all []*entity.Booking
	for _, booking := range r.store.bookings {
		if booking.RequesterID == requesterID {
			all = append(all, copyBooking(booking))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeBookingRepo) CountByRequester(ctx context.Context, requesterID uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for _, booking := range r.store.bookings {
		if booking.RequesterID == requesterID {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, booking *entity.Booking) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.bookings[booking.ID]; !ok {
		return &entity.NotFoundError{Kind: "booking", ID: booking.ID.String()}
	}
	stored := copyBooking(booking)
	stored.UpdatedAt = time.Now()
	r.store.bookings[booking.ID] = stored
	return nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus, reason *string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	booking, ok := r.store.bookings[bookingID]
	if !ok {
		return &entity.NotFoundError{Kind: "booking", ID: bookingID.String()}
	}
	booking.Status = status
	if reason != nil {
		value := *reason
		booking.RejectionReason = &value
	}
	return nil
}

func (r *fakeBookingRepo) UpdateFinancials(ctx context.Context, bookingID uuid.UUID, advancePaid float64, status entity.BookingStatus) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	booking, ok := r.store.bookings[bookingID]
	if !ok {
		return &entity.NotFoundError{Kind: "booking", ID: bookingID.String()}
	}
	booking.AdvancePaid = advancePaid
	booking.Status = status
	return nil
}

func (r *fakeBookingRepo) ReplaceExtras(ctx context.Context, bookingID uuid.UUID, extraIDs []uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if booking, ok := r.store.bookings[bookingID]; ok {
		booking.ExtraServiceIDs = append([]uuid.UUID(nil), extraIDs...)
	}
	return nil
}

func (r *fakeBookingRepo) LockSlot(ctx context.Context, venueID uuid.UUID, date time.Time) error {
	// WithTx already serializes the fakes.
	return nil
}

func (r *fakeBookingRepo) IsDateAvailable(ctx context.Context, venueID uuid.UUID, date time.Time, excludeID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, booking := range r.store.bookings {
		if booking.ID == excludeID {
			continue
		}
		if booking.VenueID == venueID && booking.StartDate.Equal(date) && booking.Status.Active() {
			return false, nil
		}
	}
	return true, nil
}

func (r *fakeBookingRepo) BookedDates(ctx context.Context, venueID uuid.UUID, from, to time.Time) ([]time.Time, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	seen := map[time.Time]bool{}
	for _, booking := range r.store.bookings {
		if booking.VenueID != venueID || !booking.Status.Active() {
			continue
		}
		d := booking.StartDate
		if d.Before(from) || d.After(to) {
			continue
		}
		seen[d] = true
	}
	var dates []time.Time
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

func (r *fakeBookingRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, booking := range r.store.bookings {
		if booking.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) FindSlugDuplicates(ctx context.Context) ([]*entity.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	counts := map[string]int{}
	for _, booking := range r.store.bookings {
		counts[booking.Slug]++
	}
	var out []*entity.Booking
	for _, booking := range r.store.bookings {
		if counts[booking.Slug] > 1 {
			out = append(out, copyBooking(booking))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Slug != out[j].Slug {
			return out[i].Slug < out[j].Slug
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeBookingRepo) UpdateSlug(ctx context.Context, bookingID uuid.UUID, slug string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	booking, ok := r.store.bookings[bookingID]
	if !ok {
		return &entity.NotFoundError{Kind: "booking", ID: bookingID.String()}
	}
	booking.Slug = slug
	return nil
}

func (r *fakeBookingRepo) StatusCounts(ctx context.Context) (map[entity.BookingStatus]int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	counts := make(map[entity.BookingStatus]int64, len(entity.AllStatuses))
	for _, status := range entity.AllStatuses {
		counts[status] = 0
	}
	for _, booking := range r.store.bookings {
		counts[booking.Status]++
	}
	return counts, nil
}

func (r *fakeBookingRepo) ExistsForVenue(ctx context.Context, venueID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, booking := range r.store.bookings {
		if booking.VenueID == venueID {
			return true, nil
		}
	}
	return false, nil
}

// ---- payment orders ----

type fakeOrderRepo struct{ store *testStore }

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.PaymentOrder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *order
	r.store.orders[order.ID] = &c
	return nil
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.PaymentOrder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	order, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	c := *order
	return &c, nil
}

func (r *fakeOrderRepo) FindByBookingAndPayer(ctx context.Context, bookingID, payerID uuid.UUID) (*entity.PaymentOrder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var match *entity.PaymentOrder
	for _, order := range r.store.orders {
		if order.BookingID == bookingID && order.PayerID == payerID {
			if match == nil || order.CreatedAt.Before(match.CreatedAt) {
				match = order
			}
		}
	}
	if match == nil {
		return nil, nil
	}
	c := *match
	return &c, nil
}

func (r *fakeOrderRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.PaymentOrder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.PaymentOrder
	for _, order := range r.store.orders {
		if order.BookingID == bookingID {
			c := *order
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, order *entity.PaymentOrder) error {
	return r.Create(ctx, order)
}

// ---- payments ----

type fakePaymentRepo struct{ store *testStore }

func (r *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if payment.TransactionID != nil && payment.Status == entity.PaymentStatusPaid {
		for _, existing := range r.store.payments {
			if existing.Status == entity.PaymentStatusPaid &&
				existing.TransactionID != nil && *existing.TransactionID == *payment.TransactionID {
				return &entity.IntegrityError{Op: "create payment"}
			}
		}
	}
	c := *payment
	r.store.payments[payment.ID] = &c
	return nil
}

func (r *fakePaymentRepo) FindPaidByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, payment := range r.store.payments {
		if payment.Status == entity.PaymentStatusPaid &&
			payment.TransactionID != nil && *payment.TransactionID == transactionID {
			c := *payment
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entity.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Payment
	for _, payment := range r.store.payments {
		if payment.OrderID == orderID {
			c := *payment
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakePaymentRepo) FindPaidByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Payment
	for _, payment := range r.store.payments {
		if payment.Status != entity.PaymentStatusPaid {
			continue
		}
		order, ok := r.store.orders[payment.OrderID]
		if !ok || order.BookingID != bookingID {
			continue
		}
		c := *payment
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakePaymentRepo) SumPaidByBookingID(ctx context.Context, bookingID uuid.UUID) (float64, error) {
	payments, err := r.FindPaidByBookingID(ctx, bookingID)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, payment := range payments {
		sum += payment.Amount
	}
	return sum, nil
}

// ---- refunds ----

type fakeRefundRepo struct{ store *testStore }

func (r *fakeRefundRepo) Create(ctx context.Context, refund *entity.RefundRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := *refund
	r.store.refunds[refund.ID] = &c
	return nil
}

func (r *fakeRefundRepo) ExistsForPayment(ctx context.Context, paymentID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, refund := range r.store.refunds {
		if refund.PaymentID == paymentID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRefundRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.RefundRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.RefundRequest
	for _, refund := range r.store.refunds {
		payment, ok := r.store.payments[refund.PaymentID]
		if !ok {
			continue
		}
		order, ok := r.store.orders[payment.OrderID]
		if !ok || order.BookingID != bookingID {
			continue
		}
		c := *refund
		out = append(out, &c)
	}
	return out, nil
}
