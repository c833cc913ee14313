package wire

import (
	"venue-booking/internal/adaptor"
	"venue-booking/pkg/middleware"
	"venue-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireVenue(
	r chi.Router,
	venueHandler *adaptor.VenueHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// Public catalog reads
	r.Get("/api/venues", venueHandler.GetVenues)
	r.Get("/api/venues/{id}", venueHandler.GetVenueByID)
	r.Get("/api/venues/{id}/booked-dates", venueHandler.BookedDates)
	r.Get("/api/venues/{id}/availability", venueHandler.Availability)

	// Staff management
	r.Route("/api/admin/venues", func(r chi.Router) {
		r.Use(middleware.StaffKey(config.Staff, log))

		r.Post("/", venueHandler.CreateVenue)
		r.Put("/{id}", venueHandler.UpdateVenue)
		r.Delete("/{id}", venueHandler.DeleteVenue)
	})
}
