package gateway

import (
	"errors"
	"fmt"
	"net/http"

	"blogger-web/internal/model"
	"blogger-web/pkg/apierror"
)

// TransportError is any failed backend call: a non-2xx answer, a network
// failure or an unreadable response body. Status is 0 when no response
// arrived.
type TransportError struct {
	Method string
	Path   string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Method, e.Path, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is maps common statuses onto the model sentinels.
func (e *TransportError) Is(target error) bool {
	switch target {
	case model.ErrNotFound:
		return e.Status == http.StatusNotFound
	case model.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case model.ErrForbidden:
		return e.Status == http.StatusForbidden
	case model.ErrInvalidInput:
		return e.Status == http.StatusBadRequest
	}
	return false
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr.Status
	}
	return 0
}

// FieldErrors returns the backend's per-field messages carried by err.
func FieldErrors(err error) map[string]string {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		return apiErr.FieldErrors()
	}
	return nil
}
