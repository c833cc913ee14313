package usecase

import (
	"venue-booking/internal/data/repository"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Venue     VenueService
	Catalog   CatalogService
	Booking   BookingService
	Reconcile ReconciliationService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Venue:     NewVenueService(repo, log),
		Catalog:   NewCatalogService(repo, log),
		Booking:   NewBookingService(repo, config.Booking, log),
		Reconcile: NewReconciliationService(repo, log),
	}
}
