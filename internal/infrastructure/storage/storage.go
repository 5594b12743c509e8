// Package storage stores whole JSON documents by name.
//
// Every collection of the application lives in a single document that is read
// whole, mutated in memory and written whole. Backends only move bytes and
// serialize read-modify-write cycles per document name; decoding, corruption
// handling and metrics live here so every backend behaves the same.
package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/exp/slog"

	"reviewroom/internal/metrics"
)

// Policy decides what happens when a persisted document cannot be decoded.
type Policy string

const (
	// PolicyFail surfaces ErrCorruptDocument to the caller.
	PolicyFail Policy = "fail"
	// PolicyReset logs the damage and treats the document as absent.
	PolicyReset Policy = "reset"
)

const maxNameLen = 128

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]*$`)

// MutateFunc receives the current bytes of a document and returns the bytes to
// persist. Returning an error aborts the write.
type MutateFunc func(current []byte, exists bool) ([]byte, error)

// Backend is the byte-level storage of named documents.
type Backend interface {
	// Kind names the backend for logs and metrics.
	Kind() string
	// Read returns ErrNotExist when the document was never written.
	Read(ctx context.Context, name string) ([]byte, error)
	// Mutate runs fn while holding the lock of the named document.
	Mutate(ctx context.Context, name string, fn MutateFunc) error
	Close() error
}

type Store struct {
	backend Backend
	policy  Policy
	log     *slog.Logger
}

func New(backend Backend, policy Policy, log *slog.Logger) *Store {
	if policy == "" {
		policy = PolicyFail
	}
	return &Store{
		backend: backend,
		policy:  policy,
		log:     log.With(slog.String("component", "storage"), slog.String("backend", backend.Kind())),
	}
}

func (s *Store) Policy() Policy {
	return s.policy
}

func (s *Store) Kind() string {
	return s.backend.Kind()
}

func (s *Store) Close() error {
	return s.backend.Close()
}

// ValidateName reports whether name can be used as a document name.
func ValidateName(name string) error {
	if len(name) == 0 || len(name) > maxNameLen || !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Verify loads a document only to check that it decodes.
func (s *Store) Verify(ctx context.Context, name string) error {
	_, err := Load[any](ctx, s, name, nil)
	return err
}

// Load returns the persisted document or def when it does not exist yet.
func Load[T any](ctx context.Context, s *Store, name string, def T) (doc T, err error) {
	start := time.Now()
	defer func() { metrics.ObserveDocumentOp(s.backend.Kind(), "load", start, err) }()

	if err := ValidateName(name); err != nil {
		return def, err
	}

	data, err := s.backend.Read(ctx, name)
	if errors.Is(err, ErrNotExist) {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("read document %q: %w", name, err)
	}

	return decode(s, name, data, def)
}

// Update runs a locked read-modify-write cycle on a document. fn sees def when
// the document does not exist yet. Nothing is written when fn fails.
func Update[T any](ctx context.Context, s *Store, name string, def T, fn func(doc *T) error) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveDocumentOp(s.backend.Kind(), "update", start, err) }()

	if err := ValidateName(name); err != nil {
		return err
	}

	return s.backend.Mutate(ctx, name, func(current []byte, exists bool) ([]byte, error) {
		doc := def
		if exists {
			decoded, err := decode(s, name, current, def)
			if err != nil {
				return nil, err
			}
			doc = decoded
		}

		if err := fn(&doc); err != nil {
			return nil, err
		}

		return encode(name, doc)
	})
}

// Save overwrites a document with v.
func Save[T any](ctx context.Context, s *Store, name string, v T) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveDocumentOp(s.backend.Kind(), "save", start, err) }()

	if err := ValidateName(name); err != nil {
		return err
	}

	data, err := encode(name, v)
	if err != nil {
		return err
	}

	return s.backend.Mutate(ctx, name, func(_ []byte, _ bool) ([]byte, error) {
		return data, nil
	})
}

func decode[T any](s *Store, name string, data []byte, def T) (T, error) {
	var doc T
	if err := json.Unmarshal(data, &doc); err != nil {
		if s.policy == PolicyReset {
			s.log.Warn("corrupt document reset to default",
				slog.String("document", name),
				slog.String("error", err.Error()),
			)
			return def, nil
		}
		return def, &CorruptDocumentError{Name: name, Err: err}
	}
	return doc, nil
}

func encode(name string, v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document %q: %w", name, err)
	}
	return data, nil
}
