package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cargorent/storefront/internal/api/metrics"
	"github.com/cargorent/storefront/internal/core/domain"
	"github.com/cargorent/storefront/internal/core/guard"
)

// retryAfterSeconds is what a waiting view tells the browser to back off.
const retryAfterSeconds = "1"

type guardResponse struct {
	Status   string `json:"status"`
	Location string `json:"location,omitempty"`
}

// RouteGuard admits a view only to the permitted roles. It never waits for
// session restoration: while it is pending the browser gets 202 and retries.
func RouteGuard(permitted ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ws, ok := WorkspaceFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusInternalServerError, "workspace not resolved")
			}

			snap := ws.Session().Current()
			d := guard.Decide(snap.Restored, snap.Identity, permitted, c.Request().URL.RequestURI())
			metrics.GuardDecisionsTotal.WithLabelValues(d.Outcome.String()).Inc()

			switch d.Outcome {
			case guard.Allow:
				return next(c)
			case guard.Wait:
				c.Response().Header().Set("Retry-After", retryAfterSeconds)
				return c.JSON(http.StatusAccepted, guardResponse{Status: d.Outcome.String()})
			default:
				c.Response().Header().Set(echo.HeaderLocation, d.Location)
				return c.JSON(http.StatusSeeOther, guardResponse{Status: d.Outcome.String(), Location: d.Location})
			}
		}
	}
}

// RequireSession is the API counterpart of RouteGuard: it waits for the
// session to be restored and answers with errors instead of redirects.
func RequireSession(permitted ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(permitted))
	for _, r := range permitted {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ws, ok := WorkspaceFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusInternalServerError, "workspace not resolved")
			}
			if err := ws.Session().AwaitRestored(c.Request().Context()); err != nil {
				return err
			}

			id := ws.Session().Current().Identity
			if !id.Complete() {
				return domain.ErrUnauthenticated
			}
			if len(allowed) > 0 {
				if _, ok := allowed[id.Role]; !ok {
					return domain.ErrForbidden
				}
			}
			return next(c)
		}
	}
}
