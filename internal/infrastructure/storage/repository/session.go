package repository

import (
	"context"
	"time"

	"golang.org/x/exp/slog"

	"reviewroom/internal/domain/session"
	"reviewroom/internal/infrastructure/storage"
)

type SessionRepository struct {
	store *storage.Store
	log   *slog.Logger
}

func NewSessionRepository(store *storage.Store, log *slog.Logger) *SessionRepository {
	return &SessionRepository{
		store: store,
		log:   log,
	}
}

// Create stores s under tokenHash and drops sessions that expired by now.
func (r *SessionRepository) Create(ctx context.Context, tokenHash string, s session.Session, now time.Time) error {
	return storage.Update(ctx, r.store, sessionsDocument, map[string]session.Session{}, func(doc *map[string]session.Session) error {
		if *doc == nil {
			*doc = map[string]session.Session{}
		}
		pruned := 0
		for hash, existing := range *doc {
			if existing.Expired(now) {
				delete(*doc, hash)
				pruned++
			}
		}
		if pruned > 0 {
			r.log.Debug("expired sessions pruned", slog.Int("count", pruned))
		}
		(*doc)[tokenHash] = s
		return nil
	})
}

func (r *SessionRepository) Find(ctx context.Context, tokenHash string) (session.Session, error) {
	doc, err := storage.Load(ctx, r.store, sessionsDocument, map[string]session.Session{})
	if err != nil {
		return session.Session{}, err
	}

	s, ok := doc[tokenHash]
	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	return s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, tokenHash string) error {
	return storage.Update(ctx, r.store, sessionsDocument, map[string]session.Session{}, func(doc *map[string]session.Session) error {
		delete(*doc, tokenHash)
		return nil
	})
}
