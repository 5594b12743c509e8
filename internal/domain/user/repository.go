package user

import (
	"context"
)

type Repository interface {
	// Create fails with ErrUsernameTaken when the username is already registered.
	Create(ctx context.Context, u User) error
	FindByUsername(ctx context.Context, username string) (User, error)
}
