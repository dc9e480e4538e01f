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

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/garudaops/rescue_orchestration_system/internal/config"
	v1 "github.com/garudaops/rescue_orchestration_system/internal/handler/http/v1"
	"github.com/garudaops/rescue_orchestration_system/internal/matcher"
	"github.com/garudaops/rescue_orchestration_system/internal/notification"
	"github.com/garudaops/rescue_orchestration_system/internal/registry"
	"github.com/garudaops/rescue_orchestration_system/internal/repository"
	"github.com/garudaops/rescue_orchestration_system/internal/service"
	"github.com/garudaops/rescue_orchestration_system/internal/triage"
	"github.com/garudaops/rescue_orchestration_system/pkg/logger"
	"github.com/garudaops/rescue_orchestration_system/pkg/postgres"
	redisclient "github.com/garudaops/rescue_orchestration_system/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/garudaops/rescue_orchestration_system/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Rescue Orchestration System API
// @version 1.0
// @description Accident intake, severity triage, resource dispatch and notification API.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.New(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	caseRepo := repository.NewCaseRepository(dbpool, redisClient)
	resourceRepo := repository.NewResourceRepository(dbpool)
	notificationRepo := repository.NewNotificationRepository(dbpool)

	reg := registry.New()

	var router matcher.Router
	if cfg.RoutingURL != "" {
		router = matcher.NewHTTPRouter(cfg.RoutingURL, cfg.RoutingTimeout)
		log.Info("Using external routing collaborator for ETA estimates")
	}
	dispatchMatcher := matcher.New(reg, router, cfg, log)

	var classifier triage.Classifier
	if cfg.TriageURL != "" {
		classifier = triage.NewHTTPClassifier(cfg.TriageURL, cfg.TriageTimeout, log)
		log.Info("Using external triage collaborator for severity classification")
	} else {
		classifier = triage.NewKeywordClassifier()
		log.Info("Using built-in keyword classifier for severity classification")
	}

	publisher := notification.NewRedisPublisher(redisClient)
	dispatcher := notification.NewDispatcher(notificationRepo, publisher, log)

	rescueService := service.NewRescueService(
		caseRepo,
		resourceRepo,
		notificationRepo,
		reg,
		dispatchMatcher,
		classifier,
		dispatcher,
		log,
		cfg,
	)

	if err := rescueService.WarmRegistry(ctx); err != nil {
		log.Fatalf("Failed to load resource registry: %v", err)
	}
	rescueService.StartWorkers(ctx)

	deliveryWorker := notification.NewDeliveryWorker(redisClient, notificationRepo, log, cfg)
	deliveryWorker.Start(ctx)

	handler := v1.NewHandler(rescueService, log, cfg)

	ginRouter := gin.Default()
	api := ginRouter.Group("/api/v1")
	handler.RegisterRoutes(api)

	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: ginRouter,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
