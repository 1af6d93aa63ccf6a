// Package main runs the reporting API.
package main

import (
	"context"
	"errors"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"posreport/internal/config"
	"posreport/internal/handlers"
	"posreport/internal/logger"
	"posreport/internal/metrics"
	"posreport/internal/middleware"
	"posreport/internal/repositories"
	"posreport/internal/repositories/cache"
	"posreport/internal/routes"
	"posreport/internal/services/dashboard"
	"posreport/internal/services/dataset"
	"posreport/internal/services/generator"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	config.LoadEnv()
	cfg := config.Load()

	log, err := logger.NewForEnvironment(cfg.Env, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		stdlog.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}

	profile := generator.DefaultConfig()
	if cfg.GeneratorProfile != "" {
		loaded, err := generator.LoadProfile(cfg.GeneratorProfile)
		if err != nil {
			return err
		}
		profile = loaded
		log.Info("generator profile loaded", zap.String("path", cfg.GeneratorProfile))
	}

	collector := metrics.NewPrometheusCollector()
	opts := []dataset.Option{
		dataset.WithMetrics(collector),
		dataset.WithMaxDays(cfg.MaxGeneratedDays),
	}
	checks := map[string]handlers.Checker{"database": nil, "redis": nil}

	if cfg.Database.Host != "" {
		db, err := repositories.InitDB(cfg.Database, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := repositories.Close(db); err != nil {
				log.Warn("failed to close database connection", zap.Error(err))
			}
		}()
		opts = append(opts, dataset.WithRepository(repositories.NewTransactionRepository(db, log)))
		checks["database"] = func(ctx context.Context) error { return repositories.Ping(ctx, db) }
	} else {
		log.Info("DB_HOST not set, dataset import disabled")
	}

	var reportCache dashboard.Cache
	if cfg.Redis.Host != "" {
		cacheService := cache.NewCacheService(cache.NewRedisClient(cfg.Redis), cfg.ReportCacheTTL)
		defer func() {
			if err := cacheService.Close(); err != nil {
				log.Warn("failed to close redis connection", zap.Error(err))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := cacheService.HealthCheck(ctx); err != nil {
			log.Warn("redis unreachable at startup, reports will be recomputed", zap.Error(err))
		}
		cancel()

		reportCache = cacheService
		checks["redis"] = cacheService.HealthCheck
	}

	registry := dataset.NewRegistry(log, opts...)
	reports := dashboard.NewService(registry, reportCache, collector, log)

	if cfg.SeedDatasetOnBoot {
		ds, err := registry.Generate(context.Background(), dataset.GenerateParams{
			Now:    time.Now(),
			Seed:   cfg.DefaultSeed,
			Config: profile,
		})
		if err != nil {
			return err
		}
		log.Info("boot dataset ready", zap.String("dataset_id", ds.Info().ID))
	}

	app := fiber.New(fiber.Config{
		AppName:               "posreport " + version,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		DisableStartupMessage: cfg.IsProduction(),
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,DELETE",
		AllowCredentials: true,
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.SetupRoutes(app, routes.Handlers{
		Auth:      middleware.NewAuthMiddleware(cfg.JWTSecret, log),
		Datasets:  handlers.NewDatasetHandler(registry, reports, profile, cfg.DefaultSeed, time.Now, log),
		Dashboard: handlers.NewDashboardHandler(reports, time.Now, log),
		Health:    handlers.NewHealthHandler(version, checks),
		Metrics:   collector,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("port", cfg.Port))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	return app.ShutdownWithTimeout(10 * time.Second)
}
