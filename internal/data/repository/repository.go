package repository

import (
	"context"
	"fmt"
	"sync"

	"venue-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Venue        VenueRepository
	Package      PackageRepository
	ExtraService ExtraServiceRepository
	Coupon       CouponRepository
	Booking      BookingRepository
	PaymentOrder PaymentOrderRepository
	Payment      PaymentRepository
	Refund       RefundRepository

	db  database.PgxIface
	log *zap.Logger
	mu  sync.Mutex
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	r := newWithQuerier(db, log)
	r.db = db
	return r
}

func newWithQuerier(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		Venue:        NewVenueRepository(q, log),
		Package:      NewPackageRepository(q, log),
		ExtraService: NewExtraServiceRepository(q, log),
		Coupon:       NewCouponRepository(q, log),
		Booking:      NewBookingRepository(q, log),
		PaymentOrder: NewPaymentOrderRepository(q, log),
		Payment:      NewPaymentRepository(q, log),
		Refund:       NewRefundRepository(q, log),
		log:          log,
	}
}

// WithTx runs fn against a Repository bound to a single transaction, so a
// multi-aggregate mutation commits atomically or not at all. A Repository
// assembled without a database (in-memory implementations in tests) runs fn
// directly, serialized through a mutex to honor the same isolation contract.
func (r *Repository) WithTx(ctx context.Context, fn func(*Repository) error) error {
	if r.db == nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		return fn(r)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txRepo := newWithQuerier(tx, r.log)

	if err := fn(txRepo); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			r.log.Error("Failed to rollback transaction", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
