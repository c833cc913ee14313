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

type PaymentOrderRepository interface {
	Create(ctx context.Context, order *entity.PaymentOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PaymentOrder, error)
	FindByBookingAndPayer(ctx context.Context, bookingID, payerID uuid.UUID) (*entity.PaymentOrder, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.PaymentOrder, error)
	Update(ctx context.Context, order *entity.PaymentOrder) error
}

type paymentOrderRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewPaymentOrderRepository(db database.Querier, log *zap.Logger) PaymentOrderRepository {
	return &paymentOrderRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment_order")),
	}
}

const orderColumns = `id, booking_id, payer_id, gateway, external_session_id, amount_due, status, created_at, updated_at`

func (r *paymentOrderRepository) scanOrder(row pgx.Row) (*entity.PaymentOrder, error) {
	var order entity.PaymentOrder
	err := row.Scan(
		&order.ID,
		&order.BookingID,
		&order.PayerID,
		&order.Gateway,
		&order.ExternalSessionID,
		&order.AmountDue,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *paymentOrderRepository) Create(ctx context.Context, order *entity.PaymentOrder) error {
	query := `
		INSERT INTO payment_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		order.ID,
		order.BookingID,
		order.PayerID,
		order.Gateway,
		order.ExternalSessionID,
		order.AmountDue,
		order.Status,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment order",
			zap.Error(err),
			zap.String("booking_id", order.BookingID.String()),
		)
		return fmt.Errorf("create payment order for booking %s: %w", order.BookingID.String(), err)
	}

	return nil
}

func (r *paymentOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PaymentOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM payment_orders WHERE id = $1`

	order, err := r.scanOrder(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment order by ID",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return nil, fmt.Errorf("find payment order by ID %s: %w", id.String(), err)
	}

	return order, nil
}

func (r *paymentOrderRepository) FindByBookingAndPayer(ctx context.Context, bookingID, payerID uuid.UUID) (*entity.PaymentOrder, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM payment_orders
		WHERE booking_id = $1 AND payer_id = $2
		ORDER BY created_at
		LIMIT 1
	`

	order, err := r.scanOrder(r.db.QueryRow(ctx, query, bookingID, payerID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment order by booking and payer",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find payment order for booking %s: %w", bookingID.String(), err)
	}

	return order, nil
}

func (r *paymentOrderRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.PaymentOrder, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM payment_orders
		WHERE booking_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to list payment orders for booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("list payment orders for booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var orders []*entity.PaymentOrder
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment order row: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func (r *paymentOrderRepository) Update(ctx context.Context, order *entity.PaymentOrder) error {
	query := `
		UPDATE payment_orders
		SET gateway = $2, external_session_id = $3, amount_due = $4, status = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		order.ID,
		order.Gateway,
		order.ExternalSessionID,
		order.AmountDue,
		order.Status,
		order.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update payment order",
			zap.Error(err),
			zap.String("order_id", order.ID.String()),
		)
		return fmt.Errorf("update payment order %s: %w", order.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return &entity.NotFoundError{Kind: "payment order", ID: order.ID.String()}
	}

	return nil
}
