package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// OrderLine is one car booking inside an order request.
type OrderLine struct {
	CarID     int64 `json:"carId"`
	StartDate Date  `json:"startDate"`
	EndDate   Date  `json:"endDate"`
}

// MarshalJSON sends both dates as plain calendar days, even for lines that
// were added with a timestamp.
func (l OrderLine) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		CarID     int64  `json:"carId"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}{
		CarID:     l.CarID,
		StartDate: l.StartDate.CalendarString(),
		EndDate:   l.EndDate.CalendarString(),
	})
}

// OrderRequest is what the backend expects on POST /orders. Company cars
// carry CompanyID, member-owned cars carry OwnerID.
type OrderRequest struct {
	CompanyID int64       `json:"companyId,omitempty"`
	OwnerID   int64       `json:"ownerId,omitempty"`
	Items     []OrderLine `json:"items"`
}

// PlacedOrder is the subset of the backend's order response the storefront
// reports back.
type PlacedOrder struct {
	OrderID     int64           `json:"orderId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      string          `json:"status"`
}

// CheckoutGroup is one backend order built from cart lines that share a
// company (or member owner).
type CheckoutGroup struct {
	Request OrderRequest
	LineIDs []string
}

type groupKey struct {
	company int64
	owner   int64
}

// GroupForCheckout splits the cart into one order per company/owner, in the
// order each group first appears in the cart.
func GroupForCheckout(c Cart) []CheckoutGroup {
	var groups []CheckoutGroup
	index := make(map[groupKey]int)
	for _, l := range c {
		k := groupKey{company: l.CompanyID, owner: l.OwnerID}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, CheckoutGroup{
				Request: OrderRequest{CompanyID: l.CompanyID, OwnerID: l.OwnerID},
			})
		}
		groups[i].Request.Items = append(groups[i].Request.Items, OrderLine{
			CarID:     l.ID,
			StartDate: l.StartDate,
			EndDate:   l.EndDate,
		})
		groups[i].LineIDs = append(groups[i].LineIDs, l.CartLineID)
	}
	return groups
}
