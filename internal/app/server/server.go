// Package server assembles the storage backend and the HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"reviewroom/internal/app/server/api"
	"reviewroom/internal/app/server/config"
	"reviewroom/internal/infrastructure/storage"
	"reviewroom/internal/infrastructure/storage/badgerstore"
	"reviewroom/internal/infrastructure/storage/filestore"
	"reviewroom/internal/infrastructure/storage/postgres"
	"reviewroom/internal/infrastructure/storage/repository"
)

// OpenStore opens the configured backend and verifies the fixed documents.
// With the fail policy a corrupt document stops startup.
func OpenStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (*storage.Store, error) {
	var (
		backend storage.Backend
		err     error
	)

	switch cfg.Store.Backend {
	case config.BackendFile:
		backend, err = filestore.New(cfg.Store.DataDir)
	case config.BackendBadger:
		backend, err = badgerstore.Open(cfg.Store.DataDir)
	case config.BackendPostgres:
		backend, err = postgres.New(ctx, cfg, nil, log)
	default:
		err = fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}

	store := storage.New(backend, storage.Policy(cfg.Store.CorruptPolicy), log)

	for _, name := range repository.Documents() {
		if err := store.Verify(ctx, name); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("verify %s: %w", name, err)
		}
	}

	log.Info("document store ready",
		slog.String("backend", store.Kind()),
		slog.String("corrupt_policy", string(store.Policy())),
	)
	return store, nil
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg *config.Config, store *storage.Store, log *slog.Logger) error {
	srv := &http.Server{
		Addr:              cfg.Server.RunAddress,
		Handler:           api.New(store, cfg, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", slog.String("address", cfg.Server.RunAddress))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
