// Package backend is the REST client for the CarGoRent backend service.
package backend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/cargorent/storefront/internal/api/metrics"
	"github.com/cargorent/storefront/internal/core/domain"
)

const defaultTimeout = 15 * time.Second

// Config captures the settings needed to reach the backend.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client implements ports.IdentityProvider and ports.OrderPlacer. It never
// retries: every failure goes back to the caller as is.
type Client struct {
	http *resty.Client
	log  zerolog.Logger
}

func New(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: httpClient, log: log}
}

// errorBody is the backend's error envelope; older endpoints use "error".
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// statusKinds maps HTTP statuses of one operation to domain errors. Anything
// not listed is treated as the backend being unavailable.
type statusKinds map[int]error

// classify turns a resty outcome into nil or a domain error.
func (c *Client) classify(op string, resp *resty.Response, err error, kinds statusKinds) error {
	observe(op, resp, err)
	if err != nil {
		c.log.Warn().Err(err).Str("op", op).Msg("backend call failed")
		return fmt.Errorf("%s: %w: %w", op, domain.ErrBackendUnavailable, err)
	}
	if resp.IsSuccess() {
		return nil
	}

	kind, ok := kinds[resp.StatusCode()]
	if !ok {
		kind = domain.ErrBackendUnavailable
		c.log.Warn().Str("op", op).Int("status", resp.StatusCode()).Msg("unexpected backend status")
	}
	return &domain.BackendError{Kind: kind, Status: resp.StatusCode(), Message: messageOf(resp)}
}

func observe(op string, resp *resty.Response, err error) {
	if resp == nil {
		return
	}
	result := "ok"
	if err != nil || !resp.IsSuccess() {
		result = "error"
	}
	metrics.BackendRequestDuration.WithLabelValues(op, result).Observe(resp.Time().Seconds())
}

func messageOf(resp *resty.Response) string {
	var body errorBody
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	if resp.StatusCode() >= http.StatusInternalServerError {
		return ""
	}
	return strings.TrimSpace(string(resp.Body()))
}
