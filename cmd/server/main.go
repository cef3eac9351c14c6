package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/vedanthcy46/Crisis-Management-System/internal/config"
	"github.com/vedanthcy46/Crisis-Management-System/internal/handlers"
	"github.com/vedanthcy46/Crisis-Management-System/internal/repositories/postgres"
	"github.com/vedanthcy46/Crisis-Management-System/internal/services"
	"github.com/vedanthcy46/Crisis-Management-System/pkg/cache"
	"github.com/vedanthcy46/Crisis-Management-System/pkg/database"
	"github.com/vedanthcy46/Crisis-Management-System/pkg/logger"
	"github.com/vedanthcy46/Crisis-Management-System/pkg/sms"
	"github.com/vedanthcy46/Crisis-Management-System/pkg/storage"
	"github.com/vedanthcy46/Crisis-Management-System/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(&logger.Config{
		Level:  cfg.App.LogLevel,
		Format: cfg.App.LogFormat,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("failed to connect to PostgreSQL: %v", err)
	}
	defer pool.Close()
	log.Info("connected to PostgreSQL")

	storageProvider, mongoDB, err := buildStorageProvider(cfg)
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}
	if mongoDB != nil {
		defer mongoDB.Close()
	}
	log.WithField("provider", cfg.Storage.Provider).Info("storage initialized")

	redisCache, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		// The dashboard works without the cache, just slower.
		log.WithError(err).Warn("redis unavailable, caching disabled")
		redisCache = nil
	} else {
		defer redisCache.Close()
		log.Info("connected to Redis")
	}

	var smsProvider sms.SMSProvider
	if cfg.SMS.Enabled {
		smsProvider = sms.NewTwilioProvider(cfg.SMS.AccountSID, cfg.SMS.AuthToken, cfg.SMS.FromNumber)
		log.Info("SMS dispatch enabled")
	}

	userRepo := postgres.NewUserRepository(pool)
	teamRepo := postgres.NewTeamRepository(pool)
	incidentRepo := postgres.NewIncidentRepository(pool)
	assignmentRepo := postgres.NewAssignmentRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)

	authService := services.NewAuthService(userRepo, cfg.Security, log)
	userService := services.NewUserService(userRepo, log)
	incidentService := services.NewIncidentService(pool, incidentRepo, teamRepo, assignmentRepo,
		notificationRepo, storageProvider, smsProvider, log)
	teamService := services.NewTeamService(teamRepo, incidentRepo, assignmentRepo, notificationRepo, log)
	adminService := services.NewAdminService(pool, userRepo, teamRepo, incidentRepo, assignmentRepo,
		notificationRepo, redisCache, smsProvider, log)
	notificationService := services.NewNotificationService(notificationRepo)

	router := routes.Setup(cfg, &routes.Handlers{
		Auth:         handlers.NewAuthHandler(authService, log),
		User:         handlers.NewUserHandler(userService),
		Incident:     handlers.NewIncidentHandler(incidentService, log),
		Team:         handlers.NewTeamHandler(teamService),
		Admin:        handlers.NewAdminHandler(adminService),
		Notification: handlers.NewNotificationHandler(notificationService),
	})

	if cfg.Storage.Provider == "local" {
		router.Static("/uploads", cfg.Storage.Local.BasePath)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("forced shutdown: %v", err)
	}
	log.Info("server stopped")
}

func runMigrations(cfg *config.Config, log *logger.Logger) error {
	migrationURL := cfg.Postgres.URL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(cfg.Postgres.MigrationsPath, migrationURL)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	log.Info("database migrations applied")
	return nil
}

func buildStorageProvider(cfg *config.Config) (storage.StorageProvider, *database.MongoDB, error) {
	switch cfg.Storage.Provider {
	case "s3":
		provider, err := storage.NewAWSS3Storage(cfg.Storage.AWS.Region, cfg.Storage.AWS.Bucket, cfg.Storage.AWS.CDNDomain)
		return provider, nil, err
	case "mongo":
		mongoDB, err := database.NewMongoDB(cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		provider, err := storage.NewMongoStorage(mongoDB.Database, "incident_images", cfg.App.BaseURL)
		if err != nil {
			mongoDB.Close()
			return nil, nil, err
		}
		return provider, mongoDB, nil
	case "local":
		provider, err := storage.NewLocalStorage(cfg.Storage.Local.BasePath, cfg.Storage.Local.BaseURL)
		return provider, nil, err
	default:
		return nil, nil, fmt.Errorf("unknown storage provider %q", cfg.Storage.Provider)
	}
}
