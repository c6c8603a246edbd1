package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrEntryConflict = errors.New("an entry already exists for this date")
	ErrEntryNotFound = errors.New("entry not found")
)

// APIError is a non-2xx response from the cycles API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("status %d", e.StatusCode)
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrEntryConflict:
		return e.StatusCode == http.StatusConflict
	case ErrEntryNotFound:
		return e.StatusCode == http.StatusNotFound
	default:
		return false
	}
}
