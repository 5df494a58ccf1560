package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	zlog "github.com/rs/zerolog/log"

	"stickr/internal/api"
	"stickr/internal/api/handlers"
	"stickr/internal/engine/stickers"
	"stickr/internal/pkg/logger"
	"stickr/internal/platform/config"
	"stickr/internal/platform/store"
	"stickr/internal/web"
)

func main() {
	configPath := os.Getenv("STICKR_CONFIG")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Logging)

	// Services
	service := stickers.NewService(cfg.Limits.MaxRows)
	batchStore := store.NewBatchStore(cfg.Stickers.BatchTTL)

	// Handlers
	stickerHandler := handlers.NewStickerHandler(service, batchStore, cfg.Stickers)
	healthHandler := handlers.NewHealthHandler(batchStore)
	webHandler, err := web.NewHandler(cfg.Stickers)
	if err != nil {
		log.Fatalf("Failed to load web assets: %v", err)
	}

	// Router
	deps := &api.Dependencies{
		StickerHandler: stickerHandler,
		HealthHandler:  healthHandler,
		WebHandler:     webHandler,
		MaxUploadBytes: cfg.Limits.MaxUploadBytes,
	}
	router := api.NewRouter(deps)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		zlog.Info().Str("addr", addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
	<-sigint

	zlog.Warn().Msg("shutdown signal received, closing server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zlog.Error().Err(err).Msg("server forced to shutdown")
	}
	zlog.Info().Msg("server stopped cleanly")
}
