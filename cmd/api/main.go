package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"

	"vetportal/internal/config"
	"vetportal/internal/database"
	"vetportal/internal/drafts"
	"vetportal/internal/log"
	"vetportal/internal/models"
	"vetportal/internal/server"
	"vetportal/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	ctx := context.Background()

	db, err := models.NewDB(cfg.Postgres.DSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect postgres")
	}

	migrator := models.NewMigrateAdapter(db.DB, cfg.MigrationsPath)
	if err := migrator.RunMigrations(); err != nil {
		logger.Fatal().Err(err).Msg("migrations failed")
	}

	if cfg.SeedDemoData {
		if err := models.Seed(db); err != nil {
			logger.Fatal().Err(err).Msg("seeding demo data failed")
		}
	}

	healthSvc, err := database.New(cfg.Postgres.DSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open health connection")
	}

	draftStore, err := drafts.NewRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect redis")
	}

	s3Service, err := storage.NewS3Service(cfg.Storage)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init object store")
	}

	srv := server.NewServer(cfg, logger, db, healthSvc, s3Service, draftStore)
	httpServer := srv.HTTPServer()

	go func() {
		logger.Info().Str("addr", httpServer.Addr).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, db, healthSvc, draftStore)
}

func waitForShutdown(logger zerolog.Logger, srv *http.Server, db *models.DB, healthSvc database.Service, draftStore *drafts.RedisStore) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	if err := draftStore.Close(); err != nil {
		logger.Error().Err(err).Msg("redis close error")
	}
	if err := healthSvc.Close(); err != nil {
		logger.Error().Err(err).Msg("health connection close error")
	}
	if err := db.Close(); err != nil {
		logger.Error().Err(err).Msg("database close error")
	}

	logger.Info().Msg("server exited cleanly")
}
