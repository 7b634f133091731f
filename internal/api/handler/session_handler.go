package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cargorent/storefront/internal/core/domain"
	"github.com/cargorent/storefront/internal/core/guard"
	"github.com/cargorent/storefront/internal/core/ports"
	"github.com/cargorent/storefront/internal/core/shell"
)

const opLogin = "login"

// SessionHandler exposes the session manager of the calling client.
type SessionHandler struct {
	lock      ports.SubmitLock
	refresher ports.RefreshScheduler
}

func NewSessionHandler(lock ports.SubmitLock, refresher ports.RefreshScheduler) *SessionHandler {
	return &SessionHandler{lock: lock, refresher: refresher}
}

// Current returns the session snapshot without waiting for restoration.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /api/session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	ws, err := ctxWorkspace(c)
	if err != nil {
		return err
	}

	snap := ws.Session().Current()
	return c.JSON(http.StatusOK, sessionResponse{
		Restored: snap.Restored,
		Identity: snap.Identity,
		Shell:    shell.Build(snap.Identity),
	})
}

// Login authenticates the client and tells the browser where to go next.
//
// @Summary      Login
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /api/session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Redirect == "" {
		req.Redirect = c.QueryParam(guard.RedirectParam)
	}

	ws, err := ctxWorkspace(c)
	if err != nil {
		return err
	}

	release, err := h.lock.Acquire(c.Request().Context(), ws.ClientID(), opLogin)
	if err != nil {
		return err
	}
	defer release()

	id, err := ws.Session().Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Identity: id,
		Redirect: guard.AfterLogin(id, req.Redirect),
		Shell:    shell.Build(id),
	})
}

// Logout forgets the client's credential. It always succeeds.
//
// @Summary      Logout
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /api/session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	ws, err := ctxWorkspace(c)
	if err != nil {
		return err
	}

	ws.Session().Logout(c.Request().Context())
	return c.JSON(http.StatusOK, sessionResponse{Restored: true, Shell: shell.Build(nil)})
}

// LogoutView is the navigation link variant of Logout.
func (h *SessionHandler) LogoutView(c echo.Context) error {
	ws, err := ctxWorkspace(c)
	if err != nil {
		return err
	}

	ws.Session().Logout(c.Request().Context())
	return c.Redirect(http.StatusSeeOther, domain.PathHome)
}

// Register forwards a sign-up to the backend without logging in.
//
// @Summary      Register a new account
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /api/session/register [post]
func (h *SessionHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ws, err := ctxWorkspace(c)
	if err != nil {
		return err
	}

	role, _ := domain.ParseRole(req.Role)
	body, err := ws.Session().Register(c.Request().Context(), domain.RegistrationProfile{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		return err
	}

	return c.JSONBlob(http.StatusCreated, body)
}

// Refresh queues a company-status refresh, typically when the tab becomes
// visible again.
//
// @Summary      Refresh company status
// @Tags         session
// @Produce      json
// @Success      202  {object}  acceptedResponse
// @Router       /api/session/refresh [post]
func (h *SessionHandler) Refresh(c echo.Context) error {
	ws, err := ctxWorkspace(c)
	if err != nil {
		return err
	}

	h.refresher.Schedule(ws.ClientID())
	return c.JSON(http.StatusAccepted, acceptedResponse{Status: "queued"})
}
