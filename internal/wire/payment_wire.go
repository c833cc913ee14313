package wire

import (
	"venue-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePayment(r chi.Router, paymentHandler *adaptor.PaymentHandler) {
	// Gateway collaborators deliver normalized confirmation events here;
	// the Kafka consumer feeds the same service.
	r.Post("/api/payments/confirmed", paymentHandler.PaymentConfirmed)
}
