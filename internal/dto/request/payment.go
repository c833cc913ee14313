package request

// PaymentConfirmedRequest is the normalized payment-confirmed event as
// delivered by a gateway collaborator over the webhook. The same shape
// arrives over Kafka; see internal/events.
type PaymentConfirmedRequest struct {
	OrderID       string  `json:"order_id" validate:"required,uuid4"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Method        string  `json:"method" validate:"required,oneof=card paypal cash transfer"`
	TransactionID string  `json:"transaction_id" validate:"required,min=1,max=255"`
	Timestamp     string  `json:"timestamp" validate:"omitempty"`
}
