package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError is bad client input. Details maps field name to the failed rule.
type ValidationError struct {
	Message string
	Details map[string]string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidation builds a ValidationError without field details.
func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError is an entity lookup miss.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// NotImplementedError marks an endpoint whose behavior is not defined yet.
type NotImplementedError struct {
	Message string
}

func (e *NotImplementedError) Error() string { return e.Message }

// UnavailableError marks a feature whose backing service is not configured.
type UnavailableError struct {
	Message string
}

func (e *UnavailableError) Error() string { return e.Message }

// UpstreamError wraps a failed call to an external API.
type UpstreamError struct {
	Service    string
	StatusCode int // upstream HTTP status, 0 for transport failures
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string { return e.Message }

func (e *UpstreamError) Unwrap() error { return e.Err }

// HTTPStatus maps an error to the response status code.
func HTTPStatus(err error) int {
	var ve *ValidationError
	var nf *NotFoundError
	var ni *NotImplementedError
	var ua *UnavailableError
	var ue *UpstreamError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &ni):
		return http.StatusNotImplemented
	case errors.As(err, &ua):
		return http.StatusServiceUnavailable
	case errors.As(err, &ue):
		if ue.StatusCode == http.StatusTooManyRequests {
			return http.StatusTooManyRequests
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
