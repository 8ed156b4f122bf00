package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TriByteGenius/CareerCompass/internal/config"
	"github.com/TriByteGenius/CareerCompass/internal/logger"
	"github.com/TriByteGenius/CareerCompass/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		panic("failed to init logger: " + err.Error())
	}

	srv, err := web.NewServer(&web.Config{
		Port:       cfg.HTTPPort,
		StaticDir:  cfg.StaticDir,
		APIBaseURL: cfg.APIBaseURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create server")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("received shutdown signal")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Stop(ctx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Int("port", cfg.HTTPPort).Str("api", cfg.APIBaseURL).Msg("starting dev web server")
	if err := srv.Start(); err != nil {
		log.Info().Err(err).Msg("server stopped")
	}
}
