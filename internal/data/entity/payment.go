package entity

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusSettled OrderStatus = "settled"
)

// PaymentOrder is one logical invoice for a booking and a payer. AmountDue
// is derived: booking total minus the sum of paid payments for the booking.
type PaymentOrder struct {
	Base
	BookingID         uuid.UUID   `db:"booking_id"`
	PayerID           uuid.UUID   `db:"payer_id"`
	Gateway           string      `db:"gateway"`
	ExternalSessionID *string     `db:"external_session_id"`
	AmountDue         float64     `db:"amount_due"`
	Status            OrderStatus `db:"status"`
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Payment is one settlement attempt under an order. Rows are append-only;
// TransactionID is the idempotency key for gateway confirmations.
type Payment struct {
	BaseSimple
	OrderID       uuid.UUID     `db:"order_id"`
	PayerID       uuid.UUID     `db:"payer_id"`
	Method        string        `db:"method"`
	Amount        float64       `db:"amount"`
	Status        PaymentStatus `db:"status"`
	TransactionID *string       `db:"transaction_id"`
	PaidAt        *time.Time    `db:"paid_at"`
}

// RefundRequest is raised by the ledger when a cancellation hits a booking
// that already has paid payments. Approval is a staff decision elsewhere.
type RefundRequest struct {
	BaseSimple
	PaymentID uuid.UUID `db:"payment_id"`
	Reason    string    `db:"reason"`
	Approved  *bool     `db:"approved"`
}
