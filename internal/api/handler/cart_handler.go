package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cargorent/storefront/internal/core/domain"
	"github.com/cargorent/storefront/internal/core/ports"
)

const opCheckout = "checkout"

// CartHandler exposes the cart manager of the calling client.
type CartHandler struct {
	lock ports.SubmitLock
}

func NewCartHandler(lock ports.SubmitLock) *CartHandler {
	return &CartHandler{lock: lock}
}

// List returns the cart in display order with its total.
//
// @Summary      Get cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  cartResponse
// @Router       /api/cart [get]
func (h *CartHandler) List(c echo.Context) error {
	ws, err := ctxWorkspace(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(ws.Cart().Items()))
}

// AddItem appends a rental selection.
//
// @Summary      Add a car to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      addItemRequest  true  "Vehicle snapshot and rental dates"
// @Success      201   {object}  cartLineResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	var req addItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ws, err := ctxWorkspace(c)
	if err != nil {
		return err
	}

	line, err := ws.Cart().AddItem(c.Request().Context(), req.Vehicle.toDomain(), req.StartDate, req.EndDate)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toLineResponse(line))
}

// RemoveItem drops one line. Unknown ids are not an error.
//
// @Summary      Remove a cart line
// @Tags         cart
// @Param        lineId  path  string  true  "Cart line id"
// @Success      204
// @Failure      500  {object}  errorResponse
// @Router       /api/cart/items/{lineId} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	ws, err := ctxWorkspace(c)
	if err != nil {
		return err
	}

	if err := ws.Cart().RemoveItem(c.Request().Context(), c.Param("lineId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Clear empties the cart.
//
// @Summary      Clear cart
// @Tags         cart
// @Success      204
// @Failure      500  {object}  errorResponse
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	ws, err := ctxWorkspace(c)
	if err != nil {
		return err
	}

	if err := ws.Cart().Clear(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Checkout places the cart's orders with the logged-in customer's token.
//
// @Summary      Checkout
// @Tags         cart
// @Produce      json
// @Success      201  {object}  checkoutResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /api/cart/checkout [post]
func (h *CartHandler) Checkout(c echo.Context) error {
	ws, err := ctxWorkspace(c)
	if err != nil {
		return err
	}

	id := ws.Session().Current().Identity
	if !id.Complete() {
		return domain.ErrUnauthenticated
	}

	release, err := h.lock.Acquire(c.Request().Context(), ws.ClientID(), opCheckout)
	if err != nil {
		return err
	}
	defer release()

	orders, err := ws.Cart().Checkout(c.Request().Context(), id.Token)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, checkoutResponse{
		Orders: orders,
		Cart:   toCartResponse(ws.Cart().Items()),
	})
}
