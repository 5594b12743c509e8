package storage

import (
	"errors"
	"fmt"
)

var (
	ErrNotExist        = errors.New("document does not exist")
	ErrCorruptDocument = errors.New("corrupt document")
	ErrInvalidName     = errors.New("invalid document name")
)

// CorruptDocumentError reports a persisted document that could not be decoded.
type CorruptDocumentError struct {
	Name string
	Err  error
}

func (e *CorruptDocumentError) Error() string {
	return fmt.Sprintf("document %q: %v: %v", e.Name, ErrCorruptDocument, e.Err)
}

func (e *CorruptDocumentError) Is(target error) bool {
	return target == ErrCorruptDocument
}

func (e *CorruptDocumentError) Unwrap() error {
	return e.Err
}
