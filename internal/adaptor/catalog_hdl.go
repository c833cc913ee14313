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

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// GetPackages handles GET /api/packages
func (h *CatalogHandler) GetPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.service.GetPackages(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get packages")
		return
	}

	utils.ResponseSuccess(w, "success", packages)
}

// CreatePackage handles POST /api/admin/packages
func (h *CatalogHandler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	pkg, err := h.service.CreatePackage(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create package")
		return
	}

	utils.ResponseCreated(w, "success", pkg)
}

// UpdatePackage handles PUT /api/admin/packages/{id}
func (h *CatalogHandler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	packageID := chi.URLParam(r, "id")

	var req request.UpdatePackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	pkg, err := h.service.UpdatePackage(r.Context(), packageID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update package")
		return
	}

	utils.ResponseSuccess(w, "success", pkg)
}

// GetExtraServices handles GET /api/extra-services
func (h *CatalogHandler) GetExtraServices(w http.ResponseWriter, r *http.Request) {
	extras, err := h.service.GetExtraServices(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get extra services")
		return
	}

	utils.ResponseSuccess(w, "success", extras)
}

// CreateExtraService handles POST /api/admin/extra-services
func (h *CatalogHandler) CreateExtraService(w http.ResponseWriter, r *http.Request) {
	var req request.CreateExtraServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	extra, err := h.service.CreateExtraService(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create extra service")
		return
	}

	utils.ResponseCreated(w, "success", extra)
}

// UpdateExtraService handles PUT /api/admin/extra-services/{id}
func (h *CatalogHandler) UpdateExtraService(w http.ResponseWriter, r *http.Request) {
	extraID := chi.URLParam(r, "id")

	var req request.UpdateExtraServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	extra, err := h.service.UpdateExtraService(r.Context(), extraID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update extra service")
		return
	}

	utils.ResponseSuccess(w, "success", extra)
}

// GetCoupons handles GET /api/admin/coupons
func (h *CatalogHandler) GetCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.service.GetCoupons(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get coupons")
		return
	}

	utils.ResponseSuccess(w, "success", coupons)
}

// CreateCoupon handles POST /api/admin/coupons
func (h *CatalogHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	coupon, err := h.service.CreateCoupon(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create coupon")
		return
	}

	utils.ResponseCreated(w, "success", coupon)
}
