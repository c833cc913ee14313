package repository

import (
	"context"
	"fmt"

	"venue-booking/internal/data/entity"
	"venue-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PaymentRepository interface {
	// Create appends a payment row; payments are never updated or deleted.
	Create(ctx context.Context, payment *entity.Payment) error
	FindPaidByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entity.Payment, error)
	FindPaidByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Payment, error)

	// SumPaidByBookingID aggregates the full paid set for a booking across
	// all of its orders. The ledger is always recomputed from here, never
	// kept as a running counter.
	SumPaidByBookingID(ctx context.Context, bookingID uuid.UUID) (float64, error)
}

type paymentRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewPaymentRepository(db database.Querier, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

const paymentColumns = `id, order_id, payer_id, method, amount, status, transaction_id, paid_at, created_at`

func (r *paymentRepository) scanPayment(row pgx.Row) (*entity.Payment, error) {
	var payment entity.Payment
	err := row.Scan(
		&payment.ID,
		&payment.OrderID,
		&payment.PayerID,
		&payment.Method,
		&payment.Amount,
		&payment.Status,
		&payment.TransactionID,
		&payment.PaidAt,
		&payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.OrderID,
		payment.PayerID,
		payment.Method,
		payment.Amount,
		payment.Status,
		payment.TransactionID,
		payment.PaidAt,
		payment.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return &entity.IntegrityError{Op: "create payment", Err: err}
		}
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("order_id", payment.OrderID.String()),
		)
		return fmt.Errorf("create payment for order %s: %w", payment.OrderID.String(), err)
	}

	return nil
}

func (r *paymentRepository) FindPaidByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE transaction_id = $1 AND status = 'paid'
		LIMIT 1
	`

	payment, err := r.scanPayment(r.db.QueryRow(ctx, query, transactionID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by transaction ID",
			zap.Error(err),
			zap.String("transaction_id", transactionID),
		)
		return nil, fmt.Errorf("find payment by transaction ID %s: %w", transactionID, err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entity.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE order_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		r.log.Error("Failed to list payments for order",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
		)
		return nil, fmt.Errorf("list payments for order %s: %w", orderID.String(), err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		payment, err := r.scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, nil
}

func (r *paymentRepository) FindPaidByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Payment, error) {
	query := `
		SELECT p.id, p.order_id, p.payer_id, p.method, p.amount, p.status, p.transaction_id, p.paid_at, p.created_at
		FROM payments p
		JOIN payment_orders o ON p.order_id = o.id
		WHERE o.booking_id = $1 AND p.status = 'paid'
		ORDER BY p.created_at
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to list paid payments for booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("list paid payments for booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		payment, err := r.scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, nil
}

func (r *paymentRepository) SumPaidByBookingID(ctx context.Context, bookingID uuid.UUID) (float64, error) {
	query := `
		SELECT COALESCE(SUM(p.amount), 0)
		FROM payments p
		JOIN payment_orders o ON p.order_id = o.id
		WHERE o.booking_id = $1 AND p.status = 'paid'
	`

	var total float64
	err := r.db.QueryRow(ctx, query, bookingID).Scan(&total)
	if err != nil {
		r.log.Error("Failed to sum paid payments for booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return 0, fmt.Errorf("sum paid payments for booking %s: %w", bookingID.String(), err)
	}

	return total, nil
}
