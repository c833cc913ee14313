package request

type CreateBookingRequest struct {
	VenueID         string   `json:"venue_id" validate:"omitempty,uuid4"`
	PackageID       string   `json:"package_id" validate:"required,uuid4"`
	ExtraServiceIDs []string `json:"extra_service_ids" validate:"omitempty,dive,uuid4"`
	CouponCode      string   `json:"coupon_code" validate:"omitempty,min=1,max=50"`
	RequesterID     string   `json:"requester_id" validate:"required,uuid4"`
	Description     string   `json:"description" validate:"max=2000"`
	StartAt         string   `json:"start_at" validate:"required"`
	EndAt           string   `json:"end_at" validate:"required"`
}

// UpdateBookingRequest is a partial patch; nil fields are left untouched.
type UpdateBookingRequest struct {
	PackageID       *string   `json:"package_id" validate:"omitempty,uuid4"`
	ExtraServiceIDs *[]string `json:"extra_service_ids" validate:"omitempty,dive,uuid4"`
	CouponCode      *string   `json:"coupon_code"`
	Description     *string   `json:"description" validate:"omitempty,max=2000"`
	StartAt         *string   `json:"start_at"`
	EndAt           *string   `json:"end_at"`
	Status          *string   `json:"status"`
	StaffID         *string   `json:"staff_id" validate:"omitempty,uuid4"`
}

type RejectBookingRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=1000"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"max=1000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type CheckoutRequest struct {
	PayerID string `json:"payer_id" validate:"required,uuid4"`
	Gateway string `json:"gateway" validate:"required,oneof=stripe mercadopago transfer cash"`
}
