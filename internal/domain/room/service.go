package room

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"reviewroom/internal/domain/record"
	"reviewroom/internal/domain/session"
	"reviewroom/internal/metrics"
)

type Servicer interface {
	Create(ctx context.Context, creator, name, password string, ids []uuid.UUID) (uuid.UUID, error)
	Resolve(ctx context.Context, id uuid.UUID) (Room, error)
	Authorize(r Room, password string) bool
	View(ctx context.Context, r Room) ([]record.Record, error)
	Unlock(ctx context.Context, id uuid.UUID, password string) (string, error)
	Records(ctx context.Context, id uuid.UUID, token string) ([]record.Record, error)
	ListByCreator(ctx context.Context, creator string) ([]Room, error)
}

type Service struct {
	repo     Repository
	records  RecordLister
	sessions session.Servicer
	newID    func() uuid.UUID
	now      func() time.Time
	log      *slog.Logger
}

func NewService(repo Repository, records RecordLister, sessions session.Servicer, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		records:  records,
		sessions: sessions,
		newID:    uuid.New,
		now:      time.Now,
		log:      log.With(slog.String("component", "room")),
	}
}

// Create snapshots ids into a new room. The ids are not checked against the
// ledger; missing ones are skipped at view time.
func (s *Service) Create(ctx context.Context, creator, name, password string, ids []uuid.UUID) (uuid.UUID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return uuid.Nil, ErrEmptyName
	}

	snapshot := dedupe(ids)
	if len(snapshot) == 0 {
		return uuid.Nil, ErrEmptySelection
	}

	r := Room{
		ID:        s.newID(),
		Name:      name,
		Creator:   creator,
		Password:  password,
		RecordIDs: snapshot,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.Create(ctx, r); err != nil {
		s.log.Error("failed to create room", slog.String("creator", creator), slog.Any("error", err))
		return uuid.Nil, fmt.Errorf("create room: %w", err)
	}

	s.log.Info("room created",
		slog.String("id", r.ID.String()),
		slog.String("creator", creator),
		slog.Int("records", len(snapshot)),
		slog.Bool("protected", r.IsProtected()),
	)
	return r.ID, nil
}

func (s *Service) Resolve(ctx context.Context, id uuid.UUID) (Room, error) {
	r, err := s.repo.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Room{}, ErrNotFound
	}
	if err != nil {
		return Room{}, fmt.Errorf("get room: %w", err)
	}
	return r, nil
}

// Authorize is true for public rooms and for an exact password match.
func (s *Service) Authorize(r Room, password string) bool {
	return !r.IsProtected() || r.Password == password
}

// View returns the creator's live records that the room references, in
// ledger order.
func (s *Service) View(ctx context.Context, r Room) ([]record.Record, error) {
	ledger, err := s.records.List(ctx, r.Creator)
	if err != nil {
		return nil, fmt.Errorf("list creator records: %w", err)
	}

	wanted := make(map[uuid.UUID]struct{}, len(r.RecordIDs))
	for _, id := range r.RecordIDs {
		wanted[id] = struct{}{}
	}

	out := make([]record.Record, 0, len(r.RecordIDs))
	for _, rec := range ledger {
		if _, ok := wanted[rec.ID]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Unlock checks the room password once and returns a room token that
// grants access to the room's records until it expires.
func (s *Service) Unlock(ctx context.Context, id uuid.UUID, password string) (string, error) {
	r, err := s.Resolve(ctx, id)
	if err != nil {
		return "", err
	}

	if !s.Authorize(r, password) {
		metrics.RoomUnlocksTotal.WithLabelValues("denied").Inc()
		s.log.Debug("room unlock denied", slog.String("id", id.String()))
		return "", ErrUnauthorized
	}

	token, err := s.sessions.Create(ctx, session.KindRoom, r.ID.String())
	if err != nil {
		metrics.RoomUnlocksTotal.WithLabelValues(metrics.ResultError).Inc()
		return "", fmt.Errorf("create room session: %w", err)
	}

	metrics.RoomUnlocksTotal.WithLabelValues(metrics.ResultOK).Inc()
	return token, nil
}

// Records views a room on behalf of a viewer. Protected rooms need a room
// token issued by Unlock for this very room.
func (s *Service) Records(ctx context.Context, id uuid.UUID, token string) ([]record.Record, error) {
	r, err := s.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	if r.IsProtected() {
		subject, err := s.sessions.Validate(ctx, session.KindRoom, token)
		if errors.Is(err, session.ErrInvalidSession) {
			return nil, ErrUnauthorized
		}
		if err != nil {
			return nil, fmt.Errorf("validate room session: %w", err)
		}
		if subject != r.ID.String() {
			return nil, ErrUnauthorized
		}
	}

	return s.View(ctx, r)
}

// ListByCreator returns the creator's rooms, oldest first.
func (s *Service) ListByCreator(ctx context.Context, creator string) ([]Room, error) {
	rooms, err := s.repo.ListByCreator(ctx, creator)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	if rooms == nil {
		rooms = []Room{}
	}

	sort.SliceStable(rooms, func(i, j int) bool {
		return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
	})
	return rooms, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
