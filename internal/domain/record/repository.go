package record

import (
	"context"

	"github.com/google/uuid"
)

// Repository keeps one ordered ledger per owner.
type Repository interface {
	// Append adds r at the end of its owner's ledger. It fails with
	// ErrDuplicateID if the id is already present.
	Append(ctx context.Context, r Record) error
	// List returns the ledger in stored order, empty for unknown owners.
	List(ctx context.Context, owner string) ([]Record, error)
	Remove(ctx context.Context, owner string, id uuid.UUID) error
}
