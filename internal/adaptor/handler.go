package adaptor

import (
	"errors"
	"net/http"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/usecase"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Venue   *VenueHandler
	Catalog *CatalogHandler
	Booking *BookingHandler
	Payment *PaymentHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Venue:   NewVenueHandler(service.Venue, service.Booking, log),
		Catalog: NewCatalogHandler(service.Catalog, log),
		Booking: NewBookingHandler(service.Booking, log),
		Payment: NewPaymentHandler(service.Reconcile, log),
	}
}

// handleServiceError maps the domain error taxonomy onto HTTP codes. Every
// handler funnels service errors through here so the mapping stays in one
// place.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, op string) {
	var (
		validationErr *entity.ValidationError
		referenceErr  *entity.UnknownReferenceError
		notFoundErr   *entity.NotFoundError
		dateErr       *entity.DateUnavailableError
		transitionErr *entity.IllegalTransitionError
		integrityErr  *entity.IntegrityError
	)

	switch {
	case errors.As(err, &validationErr):
		utils.ResponseBadRequest(w, validationErr.Error(), nil)
	case errors.As(err, &referenceErr):
		utils.ResponseBadRequest(w, referenceErr.Error(), nil)
	case errors.As(err, &notFoundErr):
		utils.ResponseNotFound(w, notFoundErr.Error())
	case errors.As(err, &dateErr):
		utils.ResponseConflict(w, dateErr.Error())
	case errors.As(err, &transitionErr):
		utils.ResponseConflict(w, transitionErr.Error())
	case errors.As(err, &integrityErr):
		utils.ResponseConflict(w, integrityErr.Error())
	default:
		log.Error("Unhandled service error", zap.String("op", op), zap.Error(err))
		utils.ResponseInternalError(w, "internal server error")
	}
}
