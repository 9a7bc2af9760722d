package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/inkwell/blog-api/internal/api"
	"github.com/inkwell/blog-api/internal/infrastructure/config"
	mongodb "github.com/inkwell/blog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/inkwell/blog-api/internal/infrastructure/db/redis"
	"github.com/inkwell/blog-api/internal/infrastructure/storage"
	"github.com/inkwell/blog-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.New("info", false)
		bootLog.Fatal().Err(err).Msg("configuration error")
	}

	log := logger.New(cfg.LogLevel, cfg.Env == "development")

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Bootstrap: indexes and role seed ---
	bootstrapCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := mongodb.NewUserRepository(db).EnsureIndexes(bootstrapCtx); err != nil {
		log.Fatal().Err(err).Msg("user index bootstrap failed")
	}
	if err := mongodb.NewCategoryRepository(db).EnsureIndexes(bootstrapCtx); err != nil {
		log.Fatal().Err(err).Msg("category index bootstrap failed")
	}
	if err := mongodb.NewRoleRepository(db).EnsureSeeded(bootstrapCtx); err != nil {
		log.Fatal().Err(err).Msg("role seed failed")
	}

	images, err := storage.NewLocalImageStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("image store setup failed")
	}

	e := api.NewRouter(cfg, db, rdb, images, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced shutdown")
	}
	log.Info().Msg("server stopped")
}
