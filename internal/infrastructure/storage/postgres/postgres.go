// Package postgres keeps documents as jsonb rows of a single table.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"reviewroom/internal/app/server/config"
	"reviewroom/internal/infrastructure/migration"
	"reviewroom/internal/infrastructure/storage"
)

type Storage struct {
	pool *pgxpool.Pool
}

// New connects to the database and applies the schema migrations. A nil
// open reads them from cfg.Store.Migrations.
func New(ctx context.Context, cfg *config.Config, open migration.Opener, log *slog.Logger) (*Storage, error) {
	pool, err := pgxpool.New(ctx, cfg.Store.DatabaseURI)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	runner := migration.NewRunner(cfg.Store.Migrations, cfg.Store.DatabaseURI, open, log)
	if _, err := runner.Apply(); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &Storage{pool: pool}, nil
}

func NewWithPool(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

func (s *Storage) Kind() string {
	return "postgres"
}

func (s *Storage) Read(ctx context.Context, name string) ([]byte, error) {
	var body []byte
	err := s.pool.QueryRow(ctx,
		`SELECT body FROM documents WHERE name = $1`, name).
		Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotExist
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}

// Mutate holds a transaction-scoped advisory lock keyed by the document name,
// which also covers documents that have no row yet.
func (s *Storage) Mutate(ctx context.Context, name string, fn storage.MutateFunc) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, name); err != nil {
		return fmt.Errorf("lock document %q: %w", name, err)
	}

	exists := true
	var current []byte
	err = tx.QueryRow(ctx, `SELECT body FROM documents WHERE name = $1`, name).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		exists = false
	} else if err != nil {
		return fmt.Errorf("read document %q: %w", name, err)
	}

	next, err := fn(current, exists)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO documents (name, body, updated_at) VALUES ($1, $2, NOW())
         ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`,
		name, string(next)); err != nil {
		return fmt.Errorf("write document %q: %w", name, err)
	}

	return tx.Commit(ctx)
}

func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

func (s *Storage) Pool() *pgxpool.Pool {
	return s.pool
}
