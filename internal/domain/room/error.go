package room

import "errors"

var (
	ErrNotFound       = errors.New("room not found")
	ErrEmptyName      = errors.New("room name is required")
	ErrEmptySelection = errors.New("select at least one record")
	ErrUnauthorized   = errors.New("wrong room password")
)
