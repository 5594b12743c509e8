package room

import (
	"context"

	"github.com/google/uuid"

	"reviewroom/internal/domain/record"
)

type Repository interface {
	Create(ctx context.Context, r Room) error
	// Get returns ErrNotFound for unknown ids.
	Get(ctx context.Context, id uuid.UUID) (Room, error)
	ListByCreator(ctx context.Context, creator string) ([]Room, error)
}

// RecordLister reads a creator's live ledger.
type RecordLister interface {
	List(ctx context.Context, owner string) ([]record.Record, error)
}
