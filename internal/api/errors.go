package api

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the backend, carrying the server's
// message when it provided one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server: %s (%d)", e.Message, e.Status)
	}
	return fmt.Sprintf("server: %s", http.StatusText(e.Status))
}

// IsAuth reports whether err is a 401 from the backend. A 401 anywhere is
// fatal to the session: the caller clears credentials and forces re-login.
func IsAuth(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404, e.g. a mutation against a note
// deleted by a racing request. Callers treat this as already-satisfied.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Message extracts a user-presentable message from an error, preferring the
// server-provided one.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Please try again"
}
