package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"playlist-server/internal/dataset"
	"playlist-server/internal/middleware"
	"playlist-server/internal/playlist"
	"playlist-server/internal/server"
	serverHandlers "playlist-server/internal/server/handlers"
	"playlist-server/internal/shared/config"
	"playlist-server/internal/shared/database"
	"playlist-server/internal/shared/logger"
	"playlist-server/internal/shared/redis"
)

func main() {
	if err := config.Init(); err != nil {
		slog.Error("Failed to initialize configuration", "error", err)
		os.Exit(1)
	}
	logger.Init()

	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.GlobalConfig
	log := slog.With("component", "main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Starting playlist server",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"dataset_source", cfg.Dataset.Source,
	)

	var store dataset.Store
	var dbPinger serverHandlers.Pinger

	switch cfg.Dataset.Source {
	case config.DatasetSourcePostgres:
		db, err := database.Connect(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.RunMigrations(ctx, os.DirFS(cfg.Database.MigrationsPath)); err != nil {
			return err
		}
		store = dataset.NewRepository(db, slog.With("component", "dataset_repository"))
		dbPinger = db
	default:
		store = dataset.NewFileStore(cfg.Dataset.Path, slog.With("component", "dataset_file_store"))
	}

	datasetService := dataset.NewService(store, slog.Default())
	if err := datasetService.Reload(ctx); err != nil {
		return err
	}

	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	var playlistStore playlist.Store = playlist.NewMemoryStore(cfg.Playlist.TTL)
	var redisPing func(context.Context) error
	if redisClient != nil {
		playlistStore = playlist.NewRedisStore(redisClient.Client, cfg.Playlist.TTL, slog.With("component", "playlist_store"))
		redisPing = redisClient.Ping
	}

	var signer *playlist.ShareSigner
	if cfg.SharingEnabled() {
		signer = playlist.NewShareSigner(cfg.Share.Secret, cfg.Share.Expiration)
	} else {
		log.Warn("SHARE_SECRET not set, share links are disabled")
	}

	travel, err := playlist.LoadTravelConfig(cfg.Playlist.TravelConfigPath)
	if err != nil {
		return err
	}

	playlistService := playlist.NewService(datasetService, playlistStore, signer, travel, cfg.Playlist.MaxDuration, slog.Default())

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit)
	defer rateLimiter.Close()

	health := serverHandlers.NewHealthHandler(datasetService, cfg.Dataset.Source, dbPinger, redisPing)
	routes := server.NewRoutes(datasetService, playlistService, health, rateLimiter, cfg.Playlist.DefaultDuration, cfg.Frontend.URL)
	cors := middleware.NewCORS(cfg.Frontend)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      cors.Middleware(routes.Setup()),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server listening", "addr", srv.Addr, "url", cfg.Server.URL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
