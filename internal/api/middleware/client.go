package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cargorent/storefront/internal/core/ports"
)

const (
	// ClientCookie carries the signed client id; it plays the part of the
	// browser's local storage origin.
	ClientCookie = "storefront_client"

	workspaceKey = "workspace"
	clientIDKey  = "client_id"

	clientCookieMaxAge = 365 * 24 * time.Hour
)

// ClientConfig configures the Client middleware.
type ClientConfig struct {
	Secret   string
	Secure   bool
	Resolver ports.WorkspaceResolver
	Log      zerolog.Logger
}

type clientClaims struct {
	ClientID string `json:"cid"`
	jwt.RegisteredClaims
}

// Client identifies the browser by its signed cookie, issuing a fresh one
// when it is missing or has been tampered with, and puts the client's
// workspace into the context.
func Client(cfg ClientConfig) echo.MiddlewareFunc {
	secret := []byte(cfg.Secret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			clientID, err := readClientID(c, secret)
			if err != nil {
				if !errors.Is(err, http.ErrNoCookie) {
					cfg.Log.Debug().Err(err).Msg("client cookie rejected, issuing a new one")
				}
				clientID, err = issueClientID(c, secret, cfg.Secure)
				if err != nil {
					return err
				}
			}

			ws, err := cfg.Resolver.Resolve(c.Request().Context(), clientID)
			if err != nil {
				return err
			}

			c.Set(clientIDKey, clientID)
			SetWorkspace(c, ws)
			return next(c)
		}
	}
}

func readClientID(c echo.Context, secret []byte) (string, error) {
	cookie, err := c.Cookie(ClientCookie)
	if err != nil {
		return "", err
	}

	var claims clientClaims
	_, err = jwt.ParseWithClaims(cookie.Value, &claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if claims.ClientID == "" {
		return "", errors.New("client cookie without client id")
	}
	return claims.ClientID, nil
}

func issueClientID(c echo.Context, secret []byte, secure bool) (string, error) {
	clientID := uuid.NewString()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, clientClaims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}

	c.SetCookie(&http.Cookie{
		Name:     ClientCookie,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(clientCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return clientID, nil
}

// SetWorkspace attaches ws to the request context.
func SetWorkspace(c echo.Context, ws ports.Workspace) {
	c.Set(workspaceKey, ws)
}

// WorkspaceFrom returns the workspace the Client middleware resolved.
func WorkspaceFrom(c echo.Context) (ports.Workspace, bool) {
	ws, ok := c.Get(workspaceKey).(ports.Workspace)
	return ws, ok
}

// ClientIDFrom returns the client id the Client middleware resolved.
func ClientIDFrom(c echo.Context) string {
	id, _ := c.Get(clientIDKey).(string)
	return id
}
