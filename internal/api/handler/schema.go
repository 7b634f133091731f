package handler

import (
	"github.com/shopspring/decimal"

	"github.com/cargorent/storefront/internal/core/domain"
	"github.com/cargorent/storefront/internal/core/shell"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Session ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	// Redirect is the location preserved by the route guard, if any.
	Redirect string `json:"redirect"`
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"required,oneof=CUSTOMER COMPANY MEMBER"`
}

type sessionResponse struct {
	Restored bool             `json:"restored"`
	Identity *domain.Identity `json:"identity"`
	Shell    shell.Shell      `json:"shell"`
}

type loginResponse struct {
	Identity *domain.Identity `json:"identity"`
	Redirect string           `json:"redirect"`
	Shell    shell.Shell      `json:"shell"`
}

type acceptedResponse struct {
	Status string `json:"status"`
}

// --- Cart ---

type vehicleRequest struct {
	ID          int64           `json:"id"          validate:"required,gt=0"`
	Brand       string          `json:"brand"       validate:"required"`
	Model       string          `json:"model"       validate:"required"`
	PricePerDay decimal.Decimal `json:"pricePerDay" validate:"gte=0"`
	CompanyID   int64           `json:"companyId"   validate:"gte=0"`
	CompanyName string          `json:"companyName"`
	OwnerID     int64           `json:"ownerId"     validate:"gte=0"`
	ImageURL    string          `json:"imageUrl"`
}

type addItemRequest struct {
	Vehicle   vehicleRequest `json:"vehicle"   validate:"required"`
	StartDate domain.Date    `json:"startDate" validate:"required"`
	EndDate   domain.Date    `json:"endDate"   validate:"required"`
}

func (r vehicleRequest) toDomain() domain.Vehicle {
	return domain.Vehicle{
		ID:          r.ID,
		Brand:       r.Brand,
		Model:       r.Model,
		PricePerDay: r.PricePerDay,
		CompanyID:   r.CompanyID,
		CompanyName: r.CompanyName,
		OwnerID:     r.OwnerID,
		ImageURL:    r.ImageURL,
	}
}

type cartLineResponse struct {
	domain.CartLineItem
	BilledDays int             `json:"billedDays"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

type cartResponse struct {
	Items []cartLineResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
	Count int                `json:"count"`
}

type checkoutResponse struct {
	Orders []domain.PlacedOrder `json:"orders"`
	Cart   cartResponse         `json:"cart"`
}

func toLineResponse(l domain.CartLineItem) cartLineResponse {
	return cartLineResponse{CartLineItem: l, BilledDays: l.BilledDays(), Subtotal: l.Subtotal()}
}

func toCartResponse(items domain.Cart) cartResponse {
	lines := make([]cartLineResponse, 0, len(items))
	for _, l := range items {
		lines = append(lines, toLineResponse(l))
	}
	return cartResponse{Items: lines, Total: items.Total(), Count: len(items)}
}

// --- Views ---

type viewResponse struct {
	View   string            `json:"view"`
	Params map[string]string `json:"params,omitempty"`
	Shell  shell.Shell       `json:"shell"`
}
