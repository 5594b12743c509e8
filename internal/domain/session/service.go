package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

const DefaultTTL = 24 * time.Hour

type Servicer interface {
	Create(ctx context.Context, kind Kind, subject string) (string, error)
	Validate(ctx context.Context, kind Kind, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}

type Service struct {
	repo Repository
	ttl  time.Duration
	now  func() time.Time
	log  *slog.Logger
}

func NewService(repo Repository, ttl time.Duration, log *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		repo: repo,
		ttl:  ttl,
		now:  time.Now,
		log:  log.With(slog.String("component", "session")),
	}
}

// Create issues a new opaque token for subject. Only the token's hash is stored.
func (s *Service) Create(ctx context.Context, kind Kind, subject string) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	token := base64.URLEncoding.EncodeToString(tokenBytes)
	now := s.now()

	sess := Session{
		Kind:      kind,
		Subject:   subject,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.Create(ctx, hashToken(token), sess, now); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	s.log.Debug("session created", slog.String("kind", string(kind)), slog.String("subject", subject))
	return token, nil
}

// Validate returns the subject of a live token of the given kind.
func (s *Service) Validate(ctx context.Context, kind Kind, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidSession
	}

	sess, err := s.repo.Find(ctx, hashToken(token))
	if errors.Is(err, ErrNotFound) {
		return "", ErrInvalidSession
	}
	if err != nil {
		return "", fmt.Errorf("find session: %w", err)
	}

	if sess.Kind != kind || sess.Expired(s.now()) {
		return "", ErrInvalidSession
	}

	return sess.Subject, nil
}

func (s *Service) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.repo.Delete(ctx, hashToken(token))
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
