package adaptor

import (
	"encoding/json"
	"net/http"

	"venue-booking/internal/dto/request"
	"venue-booking/internal/usecase"
	"venue-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type VenueHandler struct {
	service usecase.VenueService
	booking usecase.BookingService
	log     *zap.Logger
}

func NewVenueHandler(service usecase.VenueService, booking usecase.BookingService, log *zap.Logger) *VenueHandler {
	return &VenueHandler{
		service: service,
		booking: booking,
		log:     log.With(zap.String("handler", "venue")),
	}
}

// GetVenues handles GET /api/venues
func (h *VenueHandler) GetVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := h.service.GetVenues(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get venues")
		return
	}

	utils.ResponseSuccess(w, "success", venues)
}

// GetVenueByID handles GET /api/venues/{id}
func (h *VenueHandler) GetVenueByID(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "id")

	venue, err := h.service.GetVenueByID(r.Context(), venueID)
	if err != nil {
		handleServiceError(w, h.log, err, "get venue")
		return
	}

	utils.ResponseSuccess(w, "success", venue)
}

// BookedDates handles GET /api/venues/{id}/booked-dates?from=&to=
func (h *VenueHandler) BookedDates(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "id")
	query := r.URL.Query()

	dates, err := h.booking.BookedDates(r.Context(), venueID, query.Get("from"), query.Get("to"))
	if err != nil {
		handleServiceError(w, h.log, err, "get booked dates")
		return
	}

	utils.ResponseSuccess(w, "success", dates)
}

// Availability handles GET /api/venues/{id}/availability?date=
//
// The answer is advisory: nothing is locked, so a slot reported free can
// still be lost to a concurrent booking.
func (h *VenueHandler) Availability(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "id")

	result, err := h.booking.DateAvailable(r.Context(), venueID, r.URL.Query().Get("date"))
	if err != nil {
		handleServiceError(w, h.log, err, "check availability")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// CreateVenue handles POST /api/admin/venues
func (h *VenueHandler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var req request.CreateVenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	venue, err := h.service.CreateVenue(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create venue")
		return
	}

	utils.ResponseCreated(w, "success", venue)
}

// UpdateVenue handles PUT /api/admin/venues/{id}
func (h *VenueHandler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "id")

	var req request.UpdateVenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	venue, err := h.service.UpdateVenue(r.Context(), venueID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update venue")
		return
	}

	utils.ResponseSuccess(w, "success", venue)
}

// DeleteVenue handles DELETE /api/admin/venues/{id}
func (h *VenueHandler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "id")

	if err := h.service.DeleteVenue(r.Context(), venueID); err != nil {
		handleServiceError(w, h.log, err, "delete venue")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
