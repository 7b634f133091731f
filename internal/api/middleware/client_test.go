package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const testSecret = "secret"

func runClient(t *testing.T, resolver *stubResolver, cookie *http.Cookie) (*httptest.ResponseRecorder, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	mw := Client(ClientConfig{Secret: testSecret, Resolver: resolver, Log: zerolog.Nop()})
	handler := mw(func(c echo.Context) error {
		ws, ok := WorkspaceFrom(c)
		if !ok {
			t.Fatalf("workspace not set")
		}
		if ws.ClientID() != ClientIDFrom(c) {
			t.Fatalf("workspace %q does not match client id %q", ws.ClientID(), ClientIDFrom(c))
		}
		seen = ClientIDFrom(c)
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, seen
}

func issuedCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == ClientCookie {
			return ck
		}
	}
	return nil
}

func TestClient_IssuesCookieOnFirstVisit(t *testing.T) {
	resolver := &stubResolver{}
	rec, clientID := runClient(t, resolver, nil)

	if clientID == "" {
		t.Fatalf("expected a client id")
	}
	ck := issuedCookie(t, rec)
	if ck == nil {
		t.Fatalf("expected %s cookie to be issued", ClientCookie)
	}
	if !ck.HttpOnly || ck.Path != "/" {
		t.Fatalf("unexpected cookie attributes: %+v", ck)
	}
}

func TestClient_ReusesValidCookie(t *testing.T) {
	resolver := &stubResolver{}
	rec, first := runClient(t, resolver, nil)
	ck := issuedCookie(t, rec)

	rec2, second := runClient(t, resolver, &http.Cookie{Name: ClientCookie, Value: ck.Value})
	if second != first {
		t.Fatalf("expected same client id, got %q and %q", first, second)
	}
	if issuedCookie(t, rec2) != nil {
		t.Fatalf("valid cookie must not be re-issued")
	}
}

func TestClient_ReissuesTamperedCookie(t *testing.T) {
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, clientClaims{ClientID: "victim"})
	signed, err := forged.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tests := map[string]string{
		"wrong secret": signed,
		"garbage":      "not-a-token",
	}
	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			resolver := &stubResolver{}
			rec, clientID := runClient(t, resolver, &http.Cookie{Name: ClientCookie, Value: value})
			if clientID == "victim" || clientID == "" {
				t.Fatalf("tampered cookie accepted: %q", clientID)
			}
			if issuedCookie(t, rec) == nil {
				t.Fatalf("expected a fresh cookie")
			}
		})
	}
}

func TestClient_RejectsEmptyClientID(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, clientClaims{})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	rec, clientID := runClient(t, &stubResolver{}, &http.Cookie{Name: ClientCookie, Value: signed})
	if clientID == "" || issuedCookie(t, rec) == nil {
		t.Fatalf("expected a fresh client id and cookie")
	}
}
