package repository

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"reviewroom/internal/domain/record"
	"reviewroom/internal/infrastructure/storage"
)

// RecordRepository keeps one ledger document per owner.
type RecordRepository struct {
	store *storage.Store
	log   *slog.Logger
}

func NewRecordRepository(store *storage.Store, log *slog.Logger) *RecordRepository {
	return &RecordRepository{
		store: store,
		log:   log,
	}
}

func (r *RecordRepository) Append(ctx context.Context, rec record.Record) error {
	return storage.Update(ctx, r.store, recordsDocument(rec.Owner), []record.Record{}, func(doc *[]record.Record) error {
		for _, existing := range *doc {
			if existing.ID == rec.ID {
				return record.ErrDuplicateID
			}
		}
		*doc = append(*doc, rec)
		return nil
	})
}

func (r *RecordRepository) List(ctx context.Context, owner string) ([]record.Record, error) {
	doc, err := storage.Load(ctx, r.store, recordsDocument(owner), []record.Record{})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		doc = []record.Record{}
	}
	return doc, nil
}

func (r *RecordRepository) Remove(ctx context.Context, owner string, id uuid.UUID) error {
	return storage.Update(ctx, r.store, recordsDocument(owner), []record.Record{}, func(doc *[]record.Record) error {
		for i, existing := range *doc {
			if existing.ID == id {
				*doc = append((*doc)[:i], (*doc)[i+1:]...)
				return nil
			}
		}
		return record.ErrNotFound
	})
}
