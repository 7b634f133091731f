package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cargorent/storefront/internal/core/shell"
)

// Views names the pages the storefront renders, keyed by route path.
var Views = map[string]string{
	"/":                  "landing",
	"/companies":         "companies",
	"/cars/:companyId":   "cars",
	"/login":             "login",
	"/register":          "register",
	"/cart":              "cart",
	"/checkout":          "checkout",
	"/orders":            "orders",
	"/company-dashboard": "company-dashboard",
	"/admin-dashboard":   "admin-dashboard",
	"/member-dashboard":  "member-dashboard",
}

// ViewHandler renders view descriptors: the page name, its route params and
// the navigation shell for the current identity. Access control is the route
// guard's job.
type ViewHandler struct{}

func NewViewHandler() *ViewHandler {
	return &ViewHandler{}
}

// Render serves any registered view route.
//
// @Summary      Render a view descriptor
// @Tags         views
// @Produce      json
// @Success      200  {object}  viewResponse
// @Success      202  {object}  map[string]string
// @Success      303  {object}  map[string]string
// @Router       /companies [get]
func (h *ViewHandler) Render(c echo.Context) error {
	name, ok := Views[c.Path()]
	if !ok {
		return echo.ErrNotFound
	}

	var params map[string]string
	if names := c.ParamNames(); len(names) > 0 {
		params = make(map[string]string, len(names))
		for _, n := range names {
			params[n] = c.Param(n)
		}
	}

	resp := viewResponse{View: name, Params: params}
	if ws, err := ctxWorkspace(c); err == nil {
		resp.Shell = shell.Build(ws.Session().Current().Identity)
	} else {
		resp.Shell = shell.Build(nil)
	}
	return c.JSON(http.StatusOK, resp)
}
