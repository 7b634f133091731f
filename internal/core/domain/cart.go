package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Vehicle is the public snapshot of a rentable car taken when it is added to
// the cart. Prices are not re-read from the backend until checkout.
type Vehicle struct {
	ID          int64           `json:"id"`
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
	PricePerDay decimal.Decimal `json:"pricePerDay"`
	CompanyID   int64           `json:"companyId,omitempty"`
	CompanyName string          `json:"companyName,omitempty"`
	OwnerID     int64           `json:"ownerId,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

// CartLineItem is one pending rental selection.
type CartLineItem struct {
	Vehicle
	CartLineID string `json:"cartLineId"`
	StartDate  Date   `json:"startDate"`
	EndDate    Date   `json:"endDate"`
}

// BilledDays is the rental span in days, never less than one.
func (l CartLineItem) BilledDays() int {
	days := l.StartDate.DaysUntil(l.EndDate)
	if days < 1 {
		return 1
	}
	return days
}

func (l CartLineItem) Subtotal() decimal.Decimal {
	return l.PricePerDay.Mul(decimal.NewFromInt(int64(l.BilledDays())))
}

// Cart is the ordered list of line items; slice order is display order.
type Cart []CartLineItem

var errMalformedCart = errors.New("malformed cart")

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (c Cart) Contains(lineID string) bool {
	return c.indexOf(lineID) >= 0
}

func (c Cart) indexOf(lineID string) int {
	for i := range c {
		if c[i].CartLineID == lineID {
			return i
		}
	}
	return -1
}

// Validate checks a cart decoded from storage: every line needs an id, the
// ids must be unique and both dates set.
func (c Cart) Validate() error {
	seen := make(map[string]struct{}, len(c))
	for i, l := range c {
		if l.CartLineID == "" {
			return fmt.Errorf("%w: line %d has no id", errMalformedCart, i)
		}
		if _, dup := seen[l.CartLineID]; dup {
			return fmt.Errorf("%w: duplicate line id %s", errMalformedCart, l.CartLineID)
		}
		if l.StartDate.IsZero() || l.EndDate.IsZero() {
			return fmt.Errorf("%w: line %s is missing dates", errMalformedCart, l.CartLineID)
		}
		seen[l.CartLineID] = struct{}{}
	}
	return nil
}
