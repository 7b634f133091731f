package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cargorent/storefront/internal/core/domain"
)

// wireID accepts the backend's numeric ids as well as string ids.
type wireID string

func (w *wireID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*w = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*w = wireID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*w = wireID(n.String())
	return nil
}

// identityResponse is the body of /auth/login and /auth/me. The backend has
// shipped the approval flag under two names.
type identityResponse struct {
	Token           string `json:"token"`
	Role            string `json:"role"`
	UserID          wireID `json:"userId"`
	CompanyID       wireID `json:"companyId"`
	IsCompanyActive *bool  `json:"isCompanyActive"`
	CompanyActive   *bool  `json:"companyActive"`
}

// toIdentity is the single normalisation step for backend identities:
//
//	isCompanyActive present          -> IsCompanyActive = isCompanyActive
//	only companyActive present       -> IsCompanyActive = companyActive
//	neither present                  -> IsCompanyActive = false
//
// CompanyID and IsCompanyActive are kept for COMPANY accounts only.
func toIdentity(r identityResponse, token string) (*domain.Identity, error) {
	role, ok := domain.ParseRole(r.Role)
	if !ok {
		return nil, fmt.Errorf("identity: unknown role %q: %w", r.Role, domain.ErrBackendUnavailable)
	}
	if token == "" {
		return nil, fmt.Errorf("identity: missing token: %w", domain.ErrBackendUnavailable)
	}

	id := &domain.Identity{Token: token, Role: role, ID: string(r.UserID)}
	if role == domain.RoleCompany {
		id.CompanyID = string(r.CompanyID)
		switch {
		case r.IsCompanyActive != nil:
			id.IsCompanyActive = *r.IsCompanyActive
		case r.CompanyActive != nil:
			id.IsCompanyActive = *r.CompanyActive
		}
	}
	return id, nil
}

var (
	// The backend answers a bad password or an unknown user with 400.
	authKinds = statusKinds{
		http.StatusBadRequest:   domain.ErrInvalidCredentials,
		http.StatusUnauthorized: domain.ErrInvalidCredentials,
		http.StatusForbidden:    domain.ErrInvalidCredentials,
		http.StatusNotFound:     domain.ErrInvalidCredentials,
	}
	registerKinds = statusKinds{
		http.StatusBadRequest:          domain.ErrRegistrationRejected,
		http.StatusConflict:            domain.ErrRegistrationRejected,
		http.StatusUnprocessableEntity: domain.ErrRegistrationRejected,
	}
)

// CurrentIdentity calls GET /auth/me with token.
func (c *Client) CurrentIdentity(ctx context.Context, token string) (*domain.Identity, error) {
	var out identityResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&out).
		Get("/auth/me")
	if err := c.classify("identity lookup", resp, err, authKinds); err != nil {
		return nil, err
	}
	return toIdentity(out, token)
}

// Authenticate calls POST /auth/login.
func (c *Client) Authenticate(ctx context.Context, email, password string) (*domain.Identity, error) {
	var out identityResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&out).
		Post("/auth/login")
	if err := c.classify("authenticate", resp, err, authKinds); err != nil {
		return nil, err
	}
	return toIdentity(out, out.Token)
}

// Register calls POST /users/register and returns the body untouched.
func (c *Client) Register(ctx context.Context, profile domain.RegistrationProfile) (json.RawMessage, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(profile).
		Post("/users/register")
	if err := c.classify("register", resp, err, registerKinds); err != nil {
		return nil, err
	}
	body := resp.Body()
	if len(bytes.TrimSpace(body)) == 0 || !json.Valid(body) {
		return json.RawMessage("null"), nil
	}
	return json.RawMessage(body), nil
}
