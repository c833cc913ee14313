package usecase

import (
	"context"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/dto/request"
	"venue-booking/internal/dto/response"
	"venue-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VenueService interface {
	GetVenues(ctx context.Context) ([]response.VenueResponse, error)
	GetVenueByID(ctx context.Context, venueID string) (*response.VenueResponse, error)
	CreateVenue(ctx context.Context, req *request.CreateVenueRequest) (*response.VenueResponse, error)
	UpdateVenue(ctx context.Context, venueID string, req *request.UpdateVenueRequest) (*response.VenueResponse, error)
	DeleteVenue(ctx context.Context, venueID string) error
}

type venueService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewVenueService(repo *repository.Repository, log *zap.Logger) VenueService {
	return &venueService{
		repo: repo,
		log:  log.With(zap.String("service", "venue")),
	}
}

func (s *venueService) GetVenues(ctx context.Context) ([]response.VenueResponse, error) {
	venues, err := s.repo.Venue.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]response.VenueResponse, 0, len(venues))
	for _, venue := range venues {
		items = append(items, response.VenueToResponse(venue))
	}
	return items, nil
}

func (s *venueService) GetVenueByID(ctx context.Context, venueID string) (*response.VenueResponse, error) {
	id, err := uuid.Parse(venueID)
	if err != nil {
		return nil, &entity.ValidationError{Field: "venue_id", Reason: "not a valid UUID"}
	}

	venue, err := s.repo.Venue.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if venue == nil {
		return nil, &entity.NotFoundError{Kind: "venue", ID: venueID}
	}

	resp := response.VenueToResponse(venue)
	return &resp, nil
}

func (s *venueService) CreateVenue(ctx context.Context, req *request.CreateVenueRequest) (*response.VenueResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &entity.ValidationError{Field: "request", Reason: utils.FormatValidationErrors(errs)}
	}

	venue := &entity.Venue{
		Base:    entity.NewBase(time.Now()),
		Name:    req.Name,
		Address: req.Address,
		Active:  true,
		Slug:    utils.Slugify(req.Name),
	}
	if req.Active != nil {
		venue.Active = *req.Active
	}
	if err := s.repo.Venue.Create(ctx, venue); err != nil {
		return nil, err
	}

	s.log.Info("Venue created", zap.String("venue_id", venue.ID.String()), zap.String("slug", venue.Slug))

	resp := response.VenueToResponse(venue)
	return &resp, nil
}

func (s *venueService) UpdateVenue(ctx context.Context, venueID string, req *request.UpdateVenueRequest) (*response.VenueResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &entity.ValidationError{Field: "request", Reason: utils.FormatValidationErrors(errs)}
	}

	id, err := uuid.Parse(venueID)
	if err != nil {
		return nil, &entity.ValidationError{Field: "venue_id", Reason: "not a valid UUID"}
	}

	venue, err := s.repo.Venue.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if venue == nil {
		return nil, &entity.NotFoundError{Kind: "venue", ID: venueID}
	}

	if req.Name != nil {
		venue.Name = *req.Name
	}
	if req.Address != nil {
		venue.Address = *req.Address
	}
	if req.Active != nil {
		venue.Active = *req.Active
	}

	if err := s.repo.Venue.Update(ctx, venue); err != nil {
		return nil, err
	}

	resp := response.VenueToResponse(venue)
	return &resp, nil
}

// DeleteVenue refuses while any booking still references the venue; history
// is kept, deactivation is the usual path.
func (s *venueService) DeleteVenue(ctx context.Context, venueID string) error {
	id, err := uuid.Parse(venueID)
	if err != nil {
		return &entity.ValidationError{Field: "venue_id", Reason: "not a valid UUID"}
	}

	venue, err := s.repo.Venue.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if venue == nil {
		return &entity.NotFoundError{Kind: "venue", ID: venueID}
	}

	referenced, err := s.repo.Booking.ExistsForVenue(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return &entity.IntegrityError{Op: "delete venue", Err: &entity.ValidationError{Field: "venue_id", Reason: "bookings still reference this venue"}}
	}

	if err := s.repo.Venue.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("Venue deleted", zap.String("venue_id", venueID))
	return nil
}
