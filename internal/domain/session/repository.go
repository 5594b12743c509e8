package session

import (
	"context"
	"time"
)

type Repository interface {
	// Create stores a session and drops every session expired at now.
	Create(ctx context.Context, tokenHash string, s Session, now time.Time) error
	// Find returns ErrNotFound for unknown hashes.
	Find(ctx context.Context, tokenHash string) (Session, error)
	Delete(ctx context.Context, tokenHash string) error
}
