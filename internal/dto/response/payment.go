package response

import (
	"time"

	"venue-booking/internal/data/entity"
)

type PaymentOrderResponse struct {
	ID        string             `json:"id"`
	BookingID string             `json:"booking_id"`
	PayerID   string             `json:"payer_id"`
	Gateway   string             `json:"gateway"`
	AmountDue float64            `json:"amount_due"`
	Status    entity.OrderStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
}

type PaymentResponse struct {
	ID            string               `json:"id"`
	OrderID       string               `json:"order_id"`
	Method        string               `json:"method"`
	Amount        float64              `json:"amount"`
	Status        entity.PaymentStatus `json:"status"`
	TransactionID *string              `json:"transaction_id,omitempty"`
	PaidAt        *time.Time           `json:"paid_at,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

// ReconcileResponse reports the ledger state after a confirmation event.
// Duplicate events are acknowledged with duplicate=true and no mutation.
type ReconcileResponse struct {
	Duplicate     bool                 `json:"duplicate"`
	AdvancePaid   float64              `json:"advance_paid"`
	AmountDue     float64              `json:"amount_due"`
	OrderStatus   entity.OrderStatus   `json:"order_status"`
	BookingStatus entity.BookingStatus `json:"booking_status"`
}

func OrderToResponse(order *entity.PaymentOrder) PaymentOrderResponse {
	return PaymentOrderResponse{
		ID:        order.ID.String(),
		BookingID: order.BookingID.String(),
		PayerID:   order.PayerID.String(),
		Gateway:   order.Gateway,
		AmountDue: order.AmountDue,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
	}
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            payment.ID.String(),
		OrderID:       payment.OrderID.String(),
		Method:        payment.Method,
		Amount:        payment.Amount,
		Status:        payment.Status,
		TransactionID: payment.TransactionID,
		PaidAt:        payment.PaidAt,
		CreatedAt:     payment.CreatedAt,
	}
}
