package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrInvalidInput   = errors.New("invalid input")
	ErrRateLimited    = errors.New("too many attempts, try again later")
	ErrAmbiguousID    = errors.New("ambiguous record id")
	ErrEmptySelection = errors.New("nothing selected")
)

// ServerError is a non-2xx answer. It unwraps to one of the sentinels
// above when the status has a meaning for the caller.
type ServerError struct {
	Status int
	Detail string
}

func (e *ServerError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server: %d %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("server: status %d", e.Status)
}

func (e *ServerError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrInvalidInput
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return nil
	}
}
