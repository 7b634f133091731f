package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cargorent/storefront/internal/api/metrics"
	"github.com/cargorent/storefront/internal/core/domain"
	"github.com/cargorent/storefront/internal/core/ports"
)

// CartKey is where the serialized cart lives in a client namespace.
const CartKey = "cartItems"

// CartManager keeps the pending rental selections of one client. Every
// accepted mutation is a pure domain.ReduceCart step followed by a full write
// of the cart to the store.
type CartManager struct {
	store  ports.KeyValueStore
	orders ports.OrderPlacer
	log    zerolog.Logger
	newID  func() string

	mu     sync.Mutex
	items  domain.Cart
	loaded bool
}

func NewCartManager(store ports.KeyValueStore, orders ports.OrderPlacer, log zerolog.Logger) *CartManager {
	return &CartManager{
		store:  store,
		orders: orders,
		log:    log,
		newID:  uuid.NewString,
		items:  domain.Cart{},
	}
}

// Initialize loads the persisted cart. Missing or malformed data yields an
// empty cart. A failed read leaves the cart unloaded: it shows as empty and
// the next use tries again, so a mutation never overwrites lines it could not
// read.
func (c *CartManager) Initialize(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ensureLoaded(ctx)
}

// ensureLoaded must be called with mu held.
func (c *CartManager) ensureLoaded(ctx context.Context) error {
	if c.loaded {
		return nil
	}
	items, err := c.load(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("persisted cart unreadable, will retry")
		return err
	}
	c.items = items
	c.loaded = true
	return nil
}

func (c *CartManager) load(ctx context.Context) (domain.Cart, error) {
	raw, err := c.store.Get(ctx, CartKey)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return domain.Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var items domain.Cart
	if err := json.Unmarshal(raw, &items); err != nil {
		c.log.Warn().Err(err).Msg("persisted cart malformed, starting empty")
		return domain.Cart{}, nil
	}
	if err := items.Validate(); err != nil {
		c.log.Warn().Err(err).Msg("persisted cart malformed, starting empty")
		return domain.Cart{}, nil
	}
	if items == nil {
		items = domain.Cart{}
	}
	return items, nil
}

// Items returns a copy of the cart in display order.
func (c *CartManager) Items() domain.Cart {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(domain.Cart, len(c.items))
	copy(out, c.items)
	return out
}

func (c *CartManager) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items.Total()
}

// AddItem appends a new line for v. The caller makes sure both dates are set.
func (c *CartManager) AddItem(ctx context.Context, v domain.Vehicle, start, end domain.Date) (domain.CartLineItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureLoaded(ctx); err != nil {
		return domain.CartLineItem{}, err
	}

	line := domain.CartLineItem{
		Vehicle:    v,
		CartLineID: c.freshID(),
		StartDate:  start,
		EndDate:    end,
	}
	next, _ := domain.ReduceCart(c.items, domain.AddLine{Line: line})
	return line, c.commit(ctx, next, "add")
}

// RemoveItem drops the line with the given id; an unknown id is a no-op.
func (c *CartManager) RemoveItem(ctx context.Context, cartLineID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureLoaded(ctx); err != nil {
		return err
	}

	next, changed := domain.ReduceCart(c.items, domain.RemoveLine{CartLineID: cartLineID})
	if !changed {
		return nil
	}
	return c.commit(ctx, next, "remove")
}

func (c *CartManager) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureLoaded(ctx); err != nil {
		return err
	}

	next, _ := domain.ReduceCart(c.items, domain.ClearCart{})
	return c.commit(ctx, next, "clear")
}

// Checkout places one backend order per company (or member owner) in the
// cart. Lines leave the cart as soon as their order is accepted, so a failure
// part way through never re-submits what already went through.
func (c *CartManager) Checkout(ctx context.Context, token string) ([]domain.PlacedOrder, error) {
	c.mu.Lock()
	err := c.ensureLoaded(ctx)
	snapshot := make(domain.Cart, len(c.items))
	copy(snapshot, c.items)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if len(snapshot) == 0 {
		return nil, domain.ErrEmptyCart
	}

	var placed []domain.PlacedOrder
	for _, g := range domain.GroupForCheckout(snapshot) {
		order, err := c.orders.PlaceOrder(ctx, token, g.Request)
		if err != nil {
			metrics.CheckoutsTotal.WithLabelValues("failure").Inc()
			return placed, fmt.Errorf("checkout: %w", err)
		}
		placed = append(placed, *order)

		c.mu.Lock()
		next, _ := domain.ReduceCart(c.items, domain.RemoveLines{CartLineIDs: g.LineIDs})
		err = c.commit(ctx, next, "checkout")
		c.mu.Unlock()
		if err != nil {
			metrics.CheckoutsTotal.WithLabelValues("failure").Inc()
			return placed, err
		}
	}

	metrics.CheckoutsTotal.WithLabelValues("success").Inc()
	c.log.Info().Int("orders", len(placed)).Msg("checkout completed")
	return placed, nil
}

// freshID must be called with mu held.
func (c *CartManager) freshID() string {
	for {
		id := c.newID()
		if !c.items.Contains(id) {
			return id
		}
	}
}

// commit adopts next and writes it through. Must be called with mu held.
func (c *CartManager) commit(ctx context.Context, next domain.Cart, op string) error {
	c.items = next
	metrics.CartMutationsTotal.WithLabelValues(op).Inc()

	raw, err := json.Marshal(c.items)
	if err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	if err := c.store.Set(ctx, CartKey, raw); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}
