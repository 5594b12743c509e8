package record

import "errors"

var (
	ErrNotFound     = errors.New("record not found")
	ErrMissingTitle = errors.New("title is required")
	ErrInvalidType  = errors.New("invalid record type")
	ErrDuplicateID  = errors.New("record id already exists")
)
