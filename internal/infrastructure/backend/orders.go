package backend

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/cargorent/storefront/internal/core/domain"
)

var orderKinds = statusKinds{
	http.StatusBadRequest:          domain.ErrOrderRejected,
	http.StatusConflict:            domain.ErrOrderRejected,
	http.StatusUnprocessableEntity: domain.ErrOrderRejected,
	http.StatusNotFound:            domain.ErrOrderRejected,
	http.StatusUnauthorized:        domain.ErrInvalidCredentials,
	http.StatusForbidden:           domain.ErrForbidden,
}

// orderResponse covers both the entity body of POST /orders ("id") and the
// DTO used elsewhere ("orderId").
type orderResponse struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"orderId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      string          `json:"status"`
}

// PlaceOrder calls POST /orders on behalf of token's owner.
func (c *Client) PlaceOrder(ctx context.Context, token string, req domain.OrderRequest) (*domain.PlacedOrder, error) {
	var out orderResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(req).
		SetResult(&out).
		Post("/orders")
	if err := c.classify("place order", resp, err, orderKinds); err != nil {
		return nil, err
	}

	id := out.ID
	if id == 0 {
		id = out.OrderID
	}
	return &domain.PlacedOrder{OrderID: id, TotalAmount: out.TotalAmount, Status: out.Status}, nil
}
