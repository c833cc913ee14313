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

// CatalogService manages the priceable building blocks of a booking:
// packages, extra services and coupons.
type CatalogService interface {
	GetPackages(ctx context.Context) ([]response.PackageResponse, error)
	CreatePackage(ctx context.Context, req *request.CreatePackageRequest) (*response.PackageResponse, error)
	UpdatePackage(ctx context.Context, packageID string, req *request.UpdatePackageRequest) (*response.PackageResponse, error)

	GetExtraServices(ctx context.Context) ([]response.ExtraServiceResponse, error)
	CreateExtraService(ctx context.Context, req *request.CreateExtraServiceRequest) (*response.ExtraServiceResponse, error)
	UpdateExtraService(ctx context.Context, extraID string, req *request.UpdateExtraServiceRequest) (*response.ExtraServiceResponse, error)

	GetCoupons(ctx context.Context) ([]response.CouponResponse, error)
	CreateCoupon(ctx context.Context, req *request.CreateCouponRequest) (*response.CouponResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) GetPackages(ctx context.Context) ([]response.PackageResponse, error) {
	packages, err := s.repo.Package.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]response.PackageResponse, 0, len(packages))
	for _, pkg := range packages {
		items = append(items, response.PackageToResponse(pkg))
	}
	return items, nil
}

func (s *catalogService) CreatePackage(ctx context.Context, req *request.CreatePackageRequest) (*response.PackageResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &entity.ValidationError{Field: "request", Reason: utils.FormatValidationErrors(errs)}
	}

	pkg := &entity.Package{
		Base:        entity.NewBase(time.Now()),
		Title:       req.Title,
		Description: req.Description,
		Capacity:    req.Capacity,
		Price:       utils.RoundMoney(req.Price),
		Hours:       req.Hours,
		Slug:        utils.Slugify(req.Title),
	}
	if err := s.repo.Package.Create(ctx, pkg); err != nil {
		return nil, err
	}

	s.log.Info("Package created", zap.String("package_id", pkg.ID.String()), zap.String("slug", pkg.Slug))

	resp := response.PackageToResponse(pkg)
	return &resp, nil
}

func (s *catalogService) UpdatePackage(ctx context.Context, packageID string, req *request.UpdatePackageRequest) (*response.PackageResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &entity.ValidationError{Field: "request", Reason: utils.FormatValidationErrors(errs)}
	}

	id, err := uuid.Parse(packageID)
	if err != nil {
		return nil, &entity.ValidationError{Field: "package_id", Reason: "not a valid UUID"}
	}

	pkg, err := s.repo.Package.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, &entity.NotFoundError{Kind: "package", ID: packageID}
	}

	if req.Title != nil {
		pkg.Title = *req.Title
	}
	if req.Description != nil {
		pkg.Description = *req.Description
	}
	if req.Capacity != nil {
		pkg.Capacity = *req.Capacity
	}
	if req.Price != nil {
		// Existing bookings keep their computed totals; new pricing only
		// affects bookings created or repriced after this point.
		pkg.Price = utils.RoundMoney(*req.Price)
	}
	if req.Hours != nil {
		pkg.Hours = *req.Hours
	}

	if err := s.repo.Package.Update(ctx, pkg); err != nil {
		return nil, err
	}

	resp := response.PackageToResponse(pkg)
	return &resp, nil
}

func (s *catalogService) GetExtraServices(ctx context.Context) ([]response.ExtraServiceResponse, error) {
	extras, err := s.repo.ExtraService.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]response.ExtraServiceResponse, 0, len(extras))
	for _, extra := range extras {
		items = append(items, response.ExtraServiceToResponse(extra))
	}
	return items, nil
}

func (s *catalogService) CreateExtraService(ctx context.Context, req *request.CreateExtraServiceRequest) (*response.ExtraServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &entity.ValidationError{Field: "request", Reason: utils.FormatValidationErrors(errs)}
	}

	extra := &entity.ExtraService{
		Base:   entity.NewBase(time.Now()),
		Name:   req.Name,
		Price:  utils.RoundMoney(req.Price),
		Active: true,
		Slug:   utils.Slugify(req.Name),
	}
	if req.Active != nil {
		extra.Active = *req.Active
	}
	if err := s.repo.ExtraService.Create(ctx, extra); err != nil {
		return nil, err
	}

	s.log.Info("Extra service created", zap.String("extra_id", extra.ID.String()), zap.String("slug", extra.Slug))

	resp := response.ExtraServiceToResponse(extra)
	return &resp, nil
}

func (s *catalogService) UpdateExtraService(ctx context.Context, extraID string, req *request.UpdateExtraServiceRequest) (*response.ExtraServiceResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &entity.ValidationError{Field: "request", Reason: utils.FormatValidationErrors(errs)}
	}

	id, err := uuid.Parse(extraID)
	if err != nil {
		return nil, &entity.ValidationError{Field: "extra_id", Reason: "not a valid UUID"}
	}

	extra, err := s.repo.ExtraService.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if extra == nil {
		return nil, &entity.NotFoundError{Kind: "extra service", ID: extraID}
	}

	if req.Name != nil {
		extra.Name = *req.Name
	}
	if req.Price != nil {
		extra.Price = utils.RoundMoney(*req.Price)
	}
	if req.Active != nil {
		extra.Active = *req.Active
	}

	if err := s.repo.ExtraService.Update(ctx, extra); err != nil {
		return nil, err
	}

	resp := response.ExtraServiceToResponse(extra)
	return &resp, nil
}

func (s *catalogService) GetCoupons(ctx context.Context) ([]response.CouponResponse, error) {
	coupons, err := s.repo.Coupon.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]response.CouponResponse, 0, len(coupons))
	for _, coupon := range coupons {
		items = append(items, response.CouponToResponse(coupon))
	}
	return items, nil
}

func (s *catalogService) CreateCoupon(ctx context.Context, req *request.CreateCouponRequest) (*response.CouponResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &entity.ValidationError{Field: "request", Reason: utils.FormatValidationErrors(errs)}
	}

	coupon := &entity.Coupon{
		Base:            entity.NewBase(time.Now()),
		Code:            req.Code,
		DiscountPercent: req.DiscountPercent,
		MaxUses:         req.MaxUses,
		Active:          true,
	}
	if req.Active != nil {
		coupon.Active = *req.Active
	}
	if err := s.repo.Coupon.Create(ctx, coupon); err != nil {
		return nil, err
	}

	s.log.Info("Coupon created", zap.String("coupon_id", coupon.ID.String()), zap.String("code", coupon.Code))

	resp := response.CouponToResponse(coupon)
	return &resp, nil
}
