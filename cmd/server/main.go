package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/exp/slog"

	"reviewroom/internal/app/server"
	"reviewroom/internal/app/server/config"
	"reviewroom/internal/utils/logger"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := server.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open store", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("failed to close store", slog.Any("error", err))
		}
	}()

	if err := server.Run(ctx, cfg, store, log); err != nil {
		log.Error("server stopped", slog.Any("error", err))
		return
	}
	log.Info("server stopped")
}
