package repository

import (
	"context"

	"golang.org/x/exp/slog"

	"reviewroom/internal/domain/user"
	"reviewroom/internal/infrastructure/storage"
)

type userEntry struct {
	Password string `json:"password"`
}

type UserRepository struct {
	store *storage.Store
	log   *slog.Logger
}

func NewUserRepository(store *storage.Store, log *slog.Logger) *UserRepository {
	return &UserRepository{
		store: store,
		log:   log,
	}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	return storage.Update(ctx, r.store, usersDocument, map[string]userEntry{}, func(doc *map[string]userEntry) error {
		if *doc == nil {
			*doc = map[string]userEntry{}
		}
		if _, ok := (*doc)[u.Username]; ok {
			return user.ErrUsernameTaken
		}
		(*doc)[u.Username] = userEntry{Password: u.Password}
		return nil
	})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (user.User, error) {
	doc, err := storage.Load(ctx, r.store, usersDocument, map[string]userEntry{})
	if err != nil {
		return user.User{}, err
	}

	entry, ok := doc[username]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return user.User{Username: username, Password: entry.Password}, nil
}
