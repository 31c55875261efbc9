package bigstock

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for errors.Is() checks.
var (
	// ErrMissingAccountID is returned by New when no account id is given.
	ErrMissingAccountID = errors.New("account id is required")

	// ErrMissingSecretKey is returned by New when no secret key is given.
	ErrMissingSecretKey = errors.New("secret key is required")

	// ErrUnauthorized matches API errors caused by a bad auth key.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound matches API errors for unknown resources.
	ErrNotFound = errors.New("resource not found")
)

// APIError is the Go error form of an ErrorRecord.
type APIError struct {
	ResponseCode int
	Message      string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("bigstock error %d: %s", e.ResponseCode, e.Message)
	}
	return fmt.Sprintf("bigstock error %d", e.ResponseCode)
}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.ResponseCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return target == ErrUnauthorized
	case http.StatusNotFound:
		return target == ErrNotFound
	}
	return false
}
