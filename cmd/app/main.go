package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/linkup-app/linkup-engine/internal/achievement"
	"github.com/linkup-app/linkup-engine/internal/catalog"
	"github.com/linkup-app/linkup-engine/internal/config"
	"github.com/linkup-app/linkup-engine/internal/database"
	"github.com/linkup-app/linkup-engine/internal/database/postgres"
	"github.com/linkup-app/linkup-engine/internal/event"
	"github.com/linkup-app/linkup-engine/internal/eventlog"
	"github.com/linkup-app/linkup-engine/internal/lootcase"
	"github.com/linkup-app/linkup-engine/internal/metrics"
	"github.com/linkup-app/linkup-engine/internal/progression"
	"github.com/linkup-app/linkup-engine/internal/repository"
	"github.com/linkup-app/linkup-engine/internal/server"
	"github.com/linkup-app/linkup-engine/internal/streak"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	initLogger(cfg)
	slog.Info("Configuration loaded", "environment", cfg.Environment, "version", cfg.Version)

	ctx := context.Background()

	if err := database.RunMigrations(ctx, cfg.GetDBConnString(), cfg.MigrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	dbPool, err := database.NewPool(
		cfg.GetDBConnString(),
		config.DefaultDBMaxConns,
		config.DefaultDBMaxIdleMinutes*time.Minute,
		config.DefaultDBMaxLifeMinutes*time.Minute,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	cases, err := catalog.NewCaseCatalog(cfg.CasesPath)
	if err != nil {
		log.Fatalf("Failed to load case catalog: %v", err)
	}

	// Event plumbing: in-memory bus, publish/error counters, and a
	// resilient publisher so a subscriber failure never loses an event
	// silently.
	bus := metrics.NewInstrumentedBus(event.NewMemoryBus())
	publisher := event.NewResilientPublisher(bus, event.ResilientConfig{
		DeadLetterPath: cfg.DeadLetterPath,
	})

	metricsCollector := metrics.NewEventMetricsCollector()
	metricsCollector.RegisterHandlers(bus)

	// Every store round trip carries its own deadline so a wedged
	// connection surfaces as ErrConnectionTimeout instead of hanging the
	// request.
	progressionRepo := repository.NewProgressionWithTimeout(postgres.NewProgressionRepository(dbPool), cfg.StoreTimeout)
	eventLogRepo := repository.NewEventLogWithTimeout(postgres.NewEventLogRepository(dbPool), cfg.StoreTimeout)

	eventlogService := eventlog.NewService(eventLogRepo)
	if err := eventlogService.Subscribe(bus); err != nil {
		log.Fatalf("Failed to subscribe event log: %v", err)
	}

	progressionService := progression.NewService(progressionRepo, publisher, cfg.CASMaxRetries)
	streakService := streak.NewService(progressionRepo, publisher, cfg.CASMaxRetries)
	lootcaseService := lootcase.NewService(progressionRepo, cases, publisher, cfg.CASMaxRetries)
	achievementService := achievement.NewService(progressionRepo, publisher, cfg.CASMaxRetries)

	jobCtx, cancelJobs := context.WithCancel(ctx)
	defer cancelJobs()

	cleanupJob := eventlog.NewCleanupJob(eventlogService, eventlog.DefaultCleanupInterval, cfg.EventRetentionDays)
	go cleanupJob.Run(jobCtx)

	srv := server.NewServer(
		cfg.Port,
		cfg.APIKey,
		cfg.TrustedProxies,
		dbPool,
		progressionService,
		streakService,
		lootcaseService,
		achievementService,
		eventlogService,
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server failed: %v", err)
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	cancelJobs()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Server forced shutdown", "error", err)
	}

	slog.Info("Server stopped")
}
