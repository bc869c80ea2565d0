// cmd/api/main.go
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

	"animal-finder-api-server/config"
	"animal-finder-api-server/internal/animals"
	"animal-finder-api-server/internal/api/routes"
	"animal-finder-api-server/internal/database"
	"animal-finder-api-server/internal/database/firestore"
	"animal-finder-api-server/internal/database/mongodb"
	"animal-finder-api-server/internal/logging"
	"animal-finder-api-server/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log, os.Stdout)
	if err != nil {
		slog.Error("could not build logger", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Open the record store
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open record store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Error("failed to close record store", "error", err)
		}
	}()

	// 3. Seed demo records when asked to
	if cfg.Store.Seed {
		if err := database.SeedAnimals(ctx, store, logger); err != nil {
			logger.Error("seeding failed", "error", err)
		}
	}

	// 4. Object storage for uploaded pictures
	uploader, err := newUploader(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize object storage", "provider", cfg.Storage.Provider, "error", err)
		os.Exit(1)
	}

	filters := animals.FilterCompiler{
		DefaultLimit: cfg.Pagination.DefaultLimit,
		MaxLimit:     cfg.Pagination.MaxLimit,
	}
	service := animals.NewService(store, filters, logger)
	router := routes.SetupRouter(cfg, service, uploader, logger)

	// 5. Start server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting API server", "port", cfg.Server.Port, "driver", cfg.Store.Driver, "storage", cfg.Storage.Provider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (database.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		store, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.DBName, cfg.Store.Collection)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureIndexes(ctx); err != nil {
			logger.Warn("could not create listing indexes", "error", err)
		}
		logger.Info("connected to MongoDB", "db", cfg.Mongo.DBName, "collection", cfg.Store.Collection)
		return store, nil
	case config.DriverFirestore:
		store, err := firestore.Connect(ctx, firestore.Config{
			ProjectID:          cfg.Firebase.ProjectID,
			ServiceAccountJSON: cfg.Firebase.ServiceAccount,
			CredentialsFile:    cfg.Firebase.CredentialsFile,
			Collection:         cfg.Store.Collection,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("connected to Firestore", "project", cfg.Firebase.ProjectID, "collection", cfg.Store.Collection)
		return store, nil
	default:
		logger.Warn("using the in-memory store; records are lost on exit")
		return database.NewMemoryStore(), nil
	}
}

func newUploader(ctx context.Context, cfg config.Config) (storage.Uploader, error) {
	if cfg.Storage.Provider == config.ProviderAzure {
		return storage.NewAzureUploader(cfg.Azure)
	}
	return storage.NewS3Uploader(ctx, cfg.S3)
}
