package request

type CreateVenueRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=255"`
	Address string `json:"address" validate:"max=255"`
	Active  *bool  `json:"active"`
}

type UpdateVenueRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=255"`
	Address *string `json:"address" validate:"omitempty,max=255"`
	Active  *bool   `json:"active"`
}

type CreatePackageRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Description string  `json:"description" validate:"max=2000"`
	Capacity    int     `json:"capacity" validate:"required,min=1"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Hours       string  `json:"hours" validate:"max=255"`
}

type UpdatePackageRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Capacity    *int     `json:"capacity" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Hours       *string  `json:"hours" validate:"omitempty,max=255"`
}

type CreateExtraServiceRequest struct {
	Name   string  `json:"name" validate:"required,min=1,max=255"`
	Price  float64 `json:"price" validate:"required,gt=0"`
	Active *bool   `json:"active"`
}

type UpdateExtraServiceRequest struct {
	Name   *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Price  *float64 `json:"price" validate:"omitempty,gt=0"`
	Active *bool    `json:"active"`
}

type CreateCouponRequest struct {
	Code            string  `json:"code" validate:"required,min=1,max=50"`
	DiscountPercent float64 `json:"discount_percent" validate:"required,gt=0,max=100"`
	MaxUses         int     `json:"max_uses" validate:"required,min=1"`
	Active          *bool   `json:"active"`
}
