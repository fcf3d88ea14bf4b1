package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/thereayou/drop/internal/config"
	pkglog "github.com/thereayou/drop/pkg/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	pkglog.Init(pkglog.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	logger := pkglog.L()

	srv, err := NewServer(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("server run error")
	}
}
