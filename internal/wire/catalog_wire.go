package wire

import (
	"venue-booking/internal/adaptor"
	"venue-booking/pkg/middleware"
	"venue-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(
	r chi.Router,
	catalogHandler *adaptor.CatalogHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// Public catalog reads
	r.Get("/api/packages", catalogHandler.GetPackages)
	r.Get("/api/extra-services", catalogHandler.GetExtraServices)

	// Staff management
	r.Group(func(r chi.Router) {
		r.Use(middleware.StaffKey(config.Staff, log))

		r.Post("/api/admin/packages", catalogHandler.CreatePackage)
		r.Put("/api/admin/packages/{id}", catalogHandler.UpdatePackage)

		r.Post("/api/admin/extra-services", catalogHandler.CreateExtraService)
		r.Put("/api/admin/extra-services/{id}", catalogHandler.UpdateExtraService)

		r.Get("/api/admin/coupons", catalogHandler.GetCoupons)
		r.Post("/api/admin/coupons", catalogHandler.CreateCoupon)
	})
}
