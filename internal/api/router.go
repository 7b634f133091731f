package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/cargorent/storefront/docs"
	"github.com/cargorent/storefront/internal/api/handler"
	"github.com/cargorent/storefront/internal/api/middleware"
	"github.com/cargorent/storefront/internal/core/domain"
	"github.com/cargorent/storefront/internal/core/ports"
	"github.com/cargorent/storefront/internal/infrastructure/http/handlers"
)

// Deps is everything the router needs from the composition root.
type Deps struct {
	Resolver      ports.WorkspaceResolver
	Lock          ports.SubmitLock
	Refresher     ports.RefreshScheduler
	Health        map[string]handlers.Pinger
	ClientSecret  string
	SecureCookies bool
	Log           zerolog.Logger

	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// default Prometheus registry, which also holds the service metrics.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "storefront",
		Registerer: registerer,
	}))

	// --- Ops (no client cookie) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Health)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	client := middleware.Client(middleware.ClientConfig{
		Secret:   d.ClientSecret,
		Secure:   d.SecureCookies,
		Resolver: d.Resolver,
		Log:      d.Log,
	})

	sessionHandler := handler.NewSessionHandler(d.Lock, d.Refresher)
	cartHandler := handler.NewCartHandler(d.Lock)
	viewHandler := handler.NewViewHandler()

	// --- Session API ---
	session := e.Group("/api/session", client)
	session.GET("", sessionHandler.Current)
	session.POST("/login", sessionHandler.Login)
	session.POST("/logout", sessionHandler.Logout)
	session.POST("/register", sessionHandler.Register)
	session.POST("/refresh", sessionHandler.Refresh)

	// --- Cart API ---
	cart := e.Group("/api/cart", client)
	cart.GET("", cartHandler.List)
	cart.POST("/items", cartHandler.AddItem)
	cart.DELETE("/items/:lineId", cartHandler.RemoveItem)
	cart.DELETE("", cartHandler.Clear)
	cart.POST("/checkout", cartHandler.Checkout, middleware.RequireSession(domain.RoleCustomer))

	// --- Views ---
	for _, path := range []string{"/", "/companies", "/cars/:companyId", "/login", "/register"} {
		e.GET(path, viewHandler.Render, client)
	}
	for _, path := range []string{"/cart", "/checkout", "/orders"} {
		e.GET(path, viewHandler.Render, client, middleware.RouteGuard(domain.RoleCustomer))
	}
	e.GET("/company-dashboard", viewHandler.Render, client, middleware.RouteGuard(domain.RoleCompany))
	e.GET("/admin-dashboard", viewHandler.Render, client, middleware.RouteGuard(domain.RoleAdmin))
	e.GET("/member-dashboard", viewHandler.Render, client, middleware.RouteGuard(domain.RoleMember))
	e.GET("/logout", sessionHandler.LogoutView, client)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
