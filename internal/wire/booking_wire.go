package wire

import (
	"venue-booking/internal/adaptor"
	"venue-booking/pkg/middleware"
	"venue-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// Requester-facing routes. Identity comes from the payload; authn is an
	// external collaborator in front of this service.
	r.Route("/api/bookings", func(r chi.Router) {
		r.Post("/", bookingHandler.CreateBooking)
		r.Get("/", bookingHandler.GetRequesterBookings)
		r.Get("/{id}", bookingHandler.GetBooking)
		r.Patch("/{id}", bookingHandler.UpdateBooking)
		r.Post("/{id}/checkout", bookingHandler.Checkout)
	})

	// Staff routes
	r.Route("/api/admin/bookings", func(r chi.Router) {
		r.Use(middleware.StaffKey(config.Staff, log))

		r.Post("/{id}/accept", bookingHandler.AcceptBooking)
		r.Post("/{id}/reject", bookingHandler.RejectBooking)
		r.Post("/{id}/cancel", bookingHandler.CancelBooking)
		r.Patch("/{id}/status", bookingHandler.UpdateStatus)
		r.Get("/status-counts", bookingHandler.StatusCounts)
	})

	r.Route("/api/admin/maintenance", func(r chi.Router) {
		r.Use(middleware.StaffKey(config.Staff, log))

		r.Post("/repair-slugs", bookingHandler.RepairSlugs)
	})
}
