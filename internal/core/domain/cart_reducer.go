package domain

// CartAction is a mutation request handled by ReduceCart.
type CartAction interface {
	reduce(Cart) (Cart, bool)
}

// AddLine appends a line. A line whose id is already present is refused.
type AddLine struct{ Line CartLineItem }

// RemoveLine drops the first line with the given id.
type RemoveLine struct{ CartLineID string }

// RemoveLines drops every line whose id is listed.
type RemoveLines struct{ CartLineIDs []string }

// ClearCart empties the cart.
type ClearCart struct{}

// ReduceCart applies a to c and returns the next cart and whether anything
// changed. The input slice is never modified.
func ReduceCart(c Cart, a CartAction) (Cart, bool) {
	return a.reduce(c)
}

func (a AddLine) reduce(c Cart) (Cart, bool) {
	if a.Line.CartLineID == "" || c.Contains(a.Line.CartLineID) {
		return c, false
	}
	next := make(Cart, 0, len(c)+1)
	next = append(next, c...)
	return append(next, a.Line), true
}

func (a RemoveLine) reduce(c Cart) (Cart, bool) {
	i := c.indexOf(a.CartLineID)
	if i < 0 {
		return c, false
	}
	next := make(Cart, 0, len(c)-1)
	next = append(next, c[:i]...)
	return append(next, c[i+1:]...), true
}

func (a RemoveLines) reduce(c Cart) (Cart, bool) {
	drop := make(map[string]struct{}, len(a.CartLineIDs))
	for _, id := range a.CartLineIDs {
		drop[id] = struct{}{}
	}
	next := make(Cart, 0, len(c))
	for _, l := range c {
		if _, ok := drop[l.CartLineID]; !ok {
			next = append(next, l)
		}
	}
	return next, len(next) != len(c)
}

func (ClearCart) reduce(c Cart) (Cart, bool) {
	return Cart{}, len(c) > 0
}
