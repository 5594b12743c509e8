package record

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

const maxIDAttempts = 3

type Servicer interface {
	Append(ctx context.Context, owner string, d Draft) (uuid.UUID, error)
	List(ctx context.Context, owner string) ([]Record, error)
	Find(ctx context.Context, owner string, id uuid.UUID) (Record, error)
	Remove(ctx context.Context, owner string, id uuid.UUID) error
}

type Service struct {
	repo  Repository
	newID func() uuid.UUID
	now   func() time.Time
	log   *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		newID: uuid.New,
		now:   time.Now,
		log:   log.With(slog.String("component", "record")),
	}
}

// Append stamps the draft with a fresh id and the current time and adds it
// to the end of the owner's ledger.
func (s *Service) Append(ctx context.Context, owner string, d Draft) (uuid.UUID, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return uuid.Nil, ErrMissingTitle
	}
	if err := d.Type.Validate(); err != nil {
		return uuid.Nil, err
	}

	rec := Record{
		Owner:       owner,
		Type:        d.Type,
		Title:       title,
		CreatorName: d.CreatorName,
		ReleaseDate: d.ReleaseDate,
		Genre:       d.Genre,
		ImageURL:    d.ImageURL,
		Rating:      ClampRating(d.Rating),
		Review:      d.Review,
		RecordedAt:  s.now().UTC(),
	}

	for attempt := 1; ; attempt++ {
		rec.ID = s.newID()

		err := s.repo.Append(ctx, rec)
		if err == nil {
			break
		}
		if errors.Is(err, ErrDuplicateID) && attempt < maxIDAttempts {
			s.log.Warn("record id collision, retrying", slog.String("id", rec.ID.String()))
			continue
		}
		s.log.Error("failed to append record", slog.String("owner", owner), slog.Any("error", err))
		return uuid.Nil, fmt.Errorf("append record: %w", err)
	}

	s.log.Info("record appended",
		slog.String("owner", owner),
		slog.String("id", rec.ID.String()),
		slog.String("type", rec.Type.String()),
	)
	return rec.ID, nil
}

func (s *Service) List(ctx context.Context, owner string) ([]Record, error) {
	records, err := s.repo.List(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func (s *Service) Find(ctx context.Context, owner string, id uuid.UUID) (Record, error) {
	records, err := s.List(ctx, owner)
	if err != nil {
		return Record{}, err
	}
	for _, r := range records {
		if r.ID == id {
			return r, nil
		}
	}
	return Record{}, ErrNotFound
}

// Remove deletes a record from its owner's ledger. Rooms that reference it
// keep the id and simply stop showing it.
func (s *Service) Remove(ctx context.Context, owner string, id uuid.UUID) error {
	if err := s.repo.Remove(ctx, owner, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("remove record: %w", err)
	}

	s.log.Info("record removed", slog.String("owner", owner), slog.String("id", id.String()))
	return nil
}
