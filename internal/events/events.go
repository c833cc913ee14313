package events

// PaymentConfirmedEvent is the normalized confirmation a gateway
// collaborator publishes once money actually moved. The webhook accepts the
// same shape; transaction_id is the idempotency key either way.
type PaymentConfirmedEvent struct {
	OrderID       string  `json:"order_id"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	TransactionID string  `json:"transaction_id"`
	Timestamp     string  `json:"timestamp,omitempty"`
}
