package search

import (
	"context"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/exp/slog"

	"reviewroom/internal/domain/record"
	"reviewroom/internal/metrics"
)

const (
	DefaultTimeout = 5 * time.Second

	breakerFailures = 5
	breakerCooldown = 30 * time.Second
)

type Servicer interface {
	Search(ctx context.Context, kind record.Type, query string) ([]record.Candidate, error)
}

type guardedProvider struct {
	provider Provider
	breaker  *gobreaker.CircuitBreaker[[]record.Candidate]
}

// Service fans a query out to the provider for its kind. Provider failures
// never reach the caller: they are logged and turned into no results.
type Service struct {
	providers map[record.Type]guardedProvider
	timeout   time.Duration
	log       *slog.Logger
}

func NewService(providers map[record.Type]Provider, timeout time.Duration, log *slog.Logger) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	log = log.With(slog.String("component", "search"))

	s := &Service{
		providers: make(map[record.Type]guardedProvider, len(providers)),
		timeout:   timeout,
		log:       log,
	}

	for kind, p := range providers {
		settings := gobreaker.Settings{
			Name:        p.Name(),
			MaxRequests: 1,
			Timeout:     breakerCooldown,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= breakerFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn("search breaker state changed",
					slog.String("provider", name),
					slog.String("from", from.String()),
					slog.String("to", to.String()),
				)
			},
		}
		s.providers[kind] = guardedProvider{
			provider: p,
			breaker:  gobreaker.NewCircuitBreaker[[]record.Candidate](settings),
		}
	}

	return s
}

// Search returns candidates for query. Only an unknown kind is an error;
// blank queries, timeouts, HTTP failures and an open breaker all yield an
// empty result.
func (s *Service) Search(ctx context.Context, kind record.Type, query string) ([]record.Candidate, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	gp, ok := s.providers[kind]
	if query == "" || !ok {
		return []record.Candidate{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	candidates, err := gp.breaker.Execute(func() ([]record.Candidate, error) {
		return gp.provider.Search(ctx, query)
	})
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(gp.provider.Name(), metrics.ResultError).Inc()
		s.log.Warn("search degraded to no results",
			slog.String("provider", gp.provider.Name()),
			slog.String("query", query),
			slog.Any("error", err),
		)
		return []record.Candidate{}, nil
	}

	metrics.SearchRequestsTotal.WithLabelValues(gp.provider.Name(), metrics.ResultOK).Inc()
	if candidates == nil {
		candidates = []record.Candidate{}
	}
	return candidates, nil
}
