package adaptor

import (
	"encoding/json"
	"net/http"

	"venue-booking/internal/dto/request"
	"venue-booking/internal/usecase"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.ReconciliationService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.ReconciliationService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// PaymentConfirmed handles POST /api/payments/confirmed, the webhook
// counterpart of the Kafka consumer. Duplicate confirmations come back 200
// with duplicate=true so gateways stop retrying.
func (h *PaymentHandler) PaymentConfirmed(w http.ResponseWriter, r *http.Request) {
	var req request.PaymentConfirmedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.RecordPaymentConfirmed(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "record payment confirmation")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}
