package user

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"reviewroom/internal/domain/session"
)

type Servicer interface {
	Register(ctx context.Context, username, password string) error
	Authenticate(ctx context.Context, username, password string) (bool, error)
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, token string) error
}

type Service struct {
	repo      Repository
	validator Validator
	sessions  session.Servicer
	log       *slog.Logger
}

func NewService(repo Repository, validator Validator, sessions session.Servicer, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		sessions:  sessions,
		log:       log.With(slog.String("component", "user")),
	}
}

func (s *Service) Register(ctx context.Context, username, password string) error {
	if err := s.validator.ValidateUsername(username); err != nil {
		s.log.Debug("validation failed", slog.String("username", username), slog.Any("error", err))
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.validator.ValidatePassword(password); err != nil {
		// a taken name wins over a bad password
		if _, findErr := s.repo.FindByUsername(ctx, username); findErr == nil {
			return ErrUsernameTaken
		} else if !errors.Is(findErr, ErrNotFound) {
			return fmt.Errorf("find user: %w", findErr)
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.Create(ctx, User{Username: username, Password: password}); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", slog.String("username", username))
	return nil
}

// Authenticate reports whether username exists with exactly this password.
// The error is reserved for storage failures.
func (s *Service) Authenticate(ctx context.Context, username, password string) (bool, error) {
	if err := s.validator.ValidateUsername(username); err != nil {
		return false, nil
	}

	u, err := s.repo.FindByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find user: %w", err)
	}

	return u.Password == password, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	ok, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	if !ok {
		s.log.Debug("login rejected", slog.String("username", username))
		return "", ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, session.KindUser, username)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	return token, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}
