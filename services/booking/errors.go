package booking

import (
	"errors"
	"net/http"
)

// ServiceError is the engine's caller-facing failure: an HTTP status, a
// short message, and an optional structured reason (e.g. the colliding time
// range) so the caller can correct the request without a second round-trip.
type ServiceError struct {
	Status  int
	Message string
	Reason  string
}

func (e *ServiceError) Error() string {
	if e.Reason != "" {
		return e.Message + ": " + e.Reason
	}
	return e.Message
}

func validationError(message string) *ServiceError {
	return &ServiceError{Status: http.StatusBadRequest, Message: message}
}

func notFoundError(message string) *ServiceError {
	return &ServiceError{Status: http.StatusNotFound, Message: message}
}

func conflictError(message, reason string) *ServiceError {
	return &ServiceError{Status: http.StatusConflict, Message: message, Reason: reason}
}

func forbiddenError(message string) *ServiceError {
	return &ServiceError{Status: http.StatusForbidden, Message: message}
}

func serverError(message string) *ServiceError {
	return &ServiceError{Status: http.StatusInternalServerError, Message: message}
}

// AsServiceError unwraps err into a *ServiceError if one is in its chain.
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
