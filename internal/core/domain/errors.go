package domain

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUnauthenticated      = errors.New("not authenticated")
	ErrForbidden            = errors.New("access forbidden")
	ErrRegistrationRejected = errors.New("registration rejected")
	ErrBackendUnavailable   = errors.New("backend unavailable")
	ErrSubmitInFlight       = errors.New("a submission is already in progress")
	ErrKeyNotFound          = errors.New("key not found")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrOrderRejected        = errors.New("order rejected")
)

// BackendError carries the message the backend attached to a rejection so
// it can be surfaced verbatim.
type BackendError struct {
	Kind    error
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Message
}

func (e *BackendError) Unwrap() error { return e.Kind }
