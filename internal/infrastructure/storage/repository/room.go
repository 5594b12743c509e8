package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"reviewroom/internal/domain/room"
	"reviewroom/internal/infrastructure/storage"
)

// RoomRepository stores every room in one document keyed by room id.
type RoomRepository struct {
	store *storage.Store
	log   *slog.Logger
}

func NewRoomRepository(store *storage.Store, log *slog.Logger) *RoomRepository {
	return &RoomRepository{
		store: store,
		log:   log,
	}
}

func (r *RoomRepository) Create(ctx context.Context, rm room.Room) error {
	return storage.Update(ctx, r.store, roomsDocument, map[string]room.Room{}, func(doc *map[string]room.Room) error {
		if *doc == nil {
			*doc = map[string]room.Room{}
		}
		key := rm.ID.String()
		if _, ok := (*doc)[key]; ok {
			return fmt.Errorf("room %s already exists", key)
		}
		(*doc)[key] = rm
		return nil
	})
}

func (r *RoomRepository) Get(ctx context.Context, id uuid.UUID) (room.Room, error) {
	doc, err := storage.Load(ctx, r.store, roomsDocument, map[string]room.Room{})
	if err != nil {
		return room.Room{}, err
	}

	rm, ok := doc[id.String()]
	if !ok {
		return room.Room{}, room.ErrNotFound
	}
	return rm, nil
}

func (r *RoomRepository) ListByCreator(ctx context.Context, creator string) ([]room.Room, error) {
	doc, err := storage.Load(ctx, r.store, roomsDocument, map[string]room.Room{})
	if err != nil {
		return nil, err
	}

	out := make([]room.Room, 0)
	for _, rm := range doc {
		if rm.Creator == creator {
			out = append(out, rm)
		}
	}
	return out, nil
}
