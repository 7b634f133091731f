package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cargorent/storefront/internal/api/middleware"
	"github.com/cargorent/storefront/internal/core/ports"
)

// ctxWorkspace returns the workspace injected by the Client middleware. Its
// absence means the route was wired without the middleware.
func ctxWorkspace(c echo.Context) (ports.Workspace, error) {
	ws, ok := middleware.WorkspaceFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "workspace not resolved")
	}
	return ws, nil
}

// bindAndValidate decodes the body into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
