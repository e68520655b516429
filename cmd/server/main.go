package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/route66/trip-service/config"
	_ "github.com/route66/trip-service/docs"
	"github.com/route66/trip-service/internal/app"
	"github.com/route66/trip-service/internal/handlers"
	"github.com/route66/trip-service/internal/middleware"
	"github.com/route66/trip-service/internal/sweepers"
	"github.com/route66/trip-service/internal/telemetry"
)

// @title                       Route 66 Trip Service API
// @version                     1.0
// @description                 Plans Route 66 road trips with balanced daily drive times.
// @BasePath                    /
// @securityDefinitions.apikey  InternalAPIKey
// @in                          header
// @name                        X-Internal-API-Key
func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := app.NewLogger(cfg.Logging, "trip-service")
	log.Logger = logger

	logger.Info().Msg("Starting trip service")

	ctx := context.Background()
	shutdownTelemetry, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize telemetry")
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize planner")
	}
	defer a.Close()

	// Load the first snapshot before serving.
	if n, err := a.Directory.Refresh(ctx); err != nil {
		logger.Warn().Err(err).Msg("Initial stop load failed")
	} else {
		logger.Info().Int("stops", n).Str("source", cfg.Directory.Source).Msg("Stop directory loaded")
	}

	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if err := router.SetTrustedProxies(cfg.RateLimit.TrustedProxies); err != nil {
		logger.Fatal().Err(err).Msg("Invalid trusted proxies")
	}
	router.Use(middleware.RequestID(), middleware.RequestLogger(logger))

	router.GET("/health", handlers.HealthCheck(a.Directory))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if cfg.Server.EnableSwagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	limiter := middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.Burst,
	})
	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()
	go limiter.RunCleanup(cleanupCtx, 5*time.Minute)

	if cfg.Storage.Retention > 0 {
		store, err := a.Storage()
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to open artifact storage")
		}
		sweeperLogger := logger.With().Str("component", "archive_sweeper").Logger()
		sweeper := sweepers.NewArchiveSweeper(store, &sweeperLogger, cfg.Storage.Retention, cfg.Storage.SweepInterval)
		go sweeper.Start(cleanupCtx)
	}

	api := router.Group("/api")
	api.Use(middleware.RateLimit(limiter))

	internal := router.Group("/internal")
	internal.Use(middleware.InternalAuth(cfg.Server.InternalAPIKey))

	trips := handlers.NewTripHandler(a.Builder, a.Directory, a.Directory, cfg.Server.WriteTimeout)
	trips.Register(api, internal)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Telemetry shutdown failed")
	}

	logger.Info().Msg("Server exited")
}
