package repository

import (
	"context"
	"fmt"

	"venue-booking/internal/data/entity"
	"venue-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RefundRepository interface {
	Create(ctx context.Context, refund *entity.RefundRequest) error
	ExistsForPayment(ctx context.Context, paymentID uuid.UUID) (bool, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.RefundRequest, error)
}

type refundRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewRefundRepository(db database.Querier, log *zap.Logger) RefundRepository {
	return &refundRepository{
		db:  db,
		log: log.With(zap.String("repository", "refund")),
	}
}

func (r *refundRepository) Create(ctx context.Context, refund *entity.RefundRequest) error {
	query := `
		INSERT INTO refund_requests (id, payment_id, reason, approved, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		refund.ID,
		refund.PaymentID,
		refund.Reason,
		refund.Approved,
		refund.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return &entity.IntegrityError{Op: "create refund request", Err: err}
		}
		r.log.Error("Failed to create refund request",
			zap.Error(err),
			zap.String("payment_id", refund.PaymentID.String()),
		)
		return fmt.Errorf("create refund request for payment %s: %w", refund.PaymentID.String(), err)
	}

	return nil
}

func (r *refundRepository) ExistsForPayment(ctx context.Context, paymentID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM refund_requests WHERE payment_id = $1)`, paymentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check refund request for payment %s: %w", paymentID.String(), err)
	}
	return exists, nil
}

func (r *refundRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.RefundRequest, error) {
	query := `
		SELECT rr.id, rr.payment_id, rr.reason, rr.approved, rr.created_at
		FROM refund_requests rr
		JOIN payments p ON rr.payment_id = p.id
		JOIN payment_orders o ON p.order_id = o.id
		WHERE o.booking_id = $1
		ORDER BY rr.created_at
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to list refund requests for booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("list refund requests for booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var refunds []*entity.RefundRequest
	for rows.Next() {
		var refund entity.RefundRequest
		err := rows.Scan(
			&refund.ID,
			&refund.PaymentID,
			&refund.Reason,
			&refund.Approved,
			&refund.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan refund request row: %w", err)
		}
		refunds = append(refunds, &refund)
	}

	return refunds, nil
}
