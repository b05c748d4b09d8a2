package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/juggajay/risksure-backend/internal/api/rest"
	"github.com/juggajay/risksure-backend/internal/infrastructure/cache"
	"github.com/juggajay/risksure-backend/internal/infrastructure/config"
	"github.com/juggajay/risksure-backend/internal/infrastructure/database"
	"github.com/juggajay/risksure-backend/internal/infrastructure/repository"
	"github.com/juggajay/risksure-backend/internal/infrastructure/telemetry"
	"github.com/juggajay/risksure-backend/internal/service/verdict"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := telemetry.SetupLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	telemetryCfg := telemetry.DefaultConfig()
	telemetryCfg.ServiceVersion = cfg.Version
	telemetryCfg.Environment = cfg.Environment
	if cfg.Telemetry.OTLPEndpoint != "" {
		telemetryCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	} else {
		telemetryCfg.Enabled = false
	}
	if cfg.Telemetry.SampleRate > 0 {
		telemetryCfg.SamplingRate = cfg.Telemetry.SampleRate
	}

	provider, err := telemetry.Initialize(ctx, telemetryCfg)
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			logger.Error("telemetry shutdown failed", "error", err)
		}
	}()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build cache logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	redisClient, err := cache.NewRedisClient(cfg.Redis, zapLogger)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer func() { _ = redisClient.Close() }()

	requirementRepo := repository.NewRequirementRepository(pool)
	requirements := cache.NewRequirementCache(requirementRepo, redisClient, cfg.Redis.RequirementTTL, zapLogger)
	submissions := repository.NewSubmissionRepository(pool, cfg.Verification.MaxHistoryEntries)
	verdicts := repository.NewVerdictRepository(pool)

	pipeline := verdict.NewService(requirements, submissions, verdicts, logger)

	handler := rest.NewHandler(pipeline, verdicts, logger)
	router := rest.NewRouter(handler, cfg.Security, logger)
	server := rest.NewServer(cfg.Server, router, logger)

	if err := server.Start(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
