package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/cargorent/storefront/internal/api/middleware"
	"github.com/cargorent/storefront/internal/core/domain"
	"github.com/cargorent/storefront/internal/core/ports"
)

type stubSession struct {
	snapshot   ports.SessionSnapshot
	loginFn    func(ctx context.Context, email, password string) (*domain.Identity, error)
	registerFn func(ctx context.Context, p domain.RegistrationProfile) (json.RawMessage, error)
	loggedOut  bool
}

func (s *stubSession) Restore(context.Context)                    {}
func (s *stubSession) AwaitRestored(context.Context) error        { return nil }
func (s *stubSession) Current() ports.SessionSnapshot             { return s.snapshot }
func (s *stubSession) RefreshCompanyStatus(context.Context) error { return nil }

func (s *stubSession) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubSession) Logout(context.Context) {
	s.loggedOut = true
	s.snapshot.Identity = nil
}

func (s *stubSession) Register(ctx context.Context, p domain.RegistrationProfile) (json.RawMessage, error) {
	return s.registerFn(ctx, p)
}

type stubCart struct {
	items      domain.Cart
	addErr     error
	removed    []string
	cleared    bool
	checkoutFn func(ctx context.Context, token string) ([]domain.PlacedOrder, error)
}

func (s *stubCart) Initialize(context.Context) {}
func (s *stubCart) Items() domain.Cart         { return append(domain.Cart(nil), s.items...) }
func (s *stubCart) Total() decimal.Decimal     { return s.items.Total() }

func (s *stubCart) AddItem(_ context.Context, v domain.Vehicle, start, end domain.Date) (domain.CartLineItem, error) {
	if s.addErr != nil {
		return domain.CartLineItem{}, s.addErr
	}
	line := domain.CartLineItem{Vehicle: v, CartLineID: "line-1", StartDate: start, EndDate: end}
	s.items = append(s.items, line)
	return line, nil
}

func (s *stubCart) RemoveItem(_ context.Context, id string) error {
	s.removed = append(s.removed, id)
	return nil
}

func (s *stubCart) Clear(context.Context) error {
	s.cleared = true
	s.items = nil
	return nil
}

func (s *stubCart) Checkout(ctx context.Context, token string) ([]domain.PlacedOrder, error) {
	return s.checkoutFn(ctx, token)
}

type stubWorkspace struct {
	session *stubSession
	cart    *stubCart
}

func (w *stubWorkspace) ClientID() string              { return "client-1" }
func (w *stubWorkspace) Session() ports.SessionService { return w.session }
func (w *stubWorkspace) Cart() ports.CartService       { return w.cart }

type stubLock struct {
	mu       sync.Mutex
	held     map[string]bool
	acquired []string
}

func (l *stubLock) Acquire(_ context.Context, clientID, op string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held == nil {
		l.held = map[string]bool{}
	}
	key := clientID + ":" + op
	if l.held[key] {
		return nil, domain.ErrSubmitInFlight
	}
	l.held[key] = true
	l.acquired = append(l.acquired, key)
	return func() {
		l.mu.Lock()
		delete(l.held, key)
		l.mu.Unlock()
	}, nil
}

type stubScheduler struct{ scheduled []string }

func (s *stubScheduler) Schedule(clientID string) { s.scheduled = append(s.scheduled, clientID) }

func newContext(method, target, body string, ws ports.Workspace) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if ws != nil {
		middleware.SetWorkspace(c, ws)
	}
	return c, rec
}

// httpCode extracts the status of an *echo.HTTPError, or 0.
func httpCode(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return 0
}
