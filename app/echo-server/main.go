package main

import (
	"context"
	"fmt"
	"log"
	"makanApa/app/echo-server/router"
	"makanApa/business/decision"
	"makanApa/business/gold"
	"makanApa/business/master"
	"makanApa/business/pipeline"
	"makanApa/business/silver"
	"makanApa/internal/middleware"
	lakeRepo "makanApa/internal/repository/lake"
	psqlRepo "makanApa/internal/repository/postgres"
	redisRepo "makanApa/internal/repository/redis"
	"makanApa/internal/rest"
	"makanApa/pkg/config"
	"makanApa/pkg/database"
	redisdb "makanApa/pkg/database/redis"
	"makanApa/pkg/logger"
	"makanApa/pkg/metrics"
	"makanApa/pkg/objectstore"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Makan Apa API", "version", cfg.App.Version)

	metrics.Init()

	minioClient, err := objectstore.NewMinioClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to object store", "error", err)
	}
	lake := lakeRepo.NewLakeRepository(minioClient, cfg.Lake.Bucket)

	logger.Info("Object store connected", "bucket", cfg.Lake.Bucket)

	// Venue cache and event log are optional: the engine serves without
	// them, just slower and without the audit trail.
	var venueCache decision.VenueCache
	if redisClient, err := redisdb.NewRedisClient(cfg); err != nil {
		logger.Warn("Redis unavailable, serving without venue cache", "error", err)
	} else {
		venueCache = redisRepo.NewVenueCache(redisClient, 10*time.Minute)
		defer redisdb.CloseRedisClient(redisClient)
	}

	var eventRepo decision.EventRepository
	if db, err := database.InitPostgres(cfg); err != nil {
		logger.Warn("Database unavailable, recommendation events will not be logged", "error", err)
	} else {
		eventRepo = psqlRepo.NewRecommendationEventRepository(db)
	}

	// Init service
	decisionService := decision.NewDecisionService(lake, venueCache, eventRepo)
	pipelineRunner := pipeline.NewRunner(
		silver.NewTransactionCleaner(lake),
		silver.NewWeatherCleaner(lake),
		silver.NewPromoCleaner(lake),
		master.NewCleaner(lake),
		gold.NewBinderService(lake),
	)

	// Init handler
	recommendHandler := rest.NewRecommendHandler(decisionService)
	venueHandler := rest.NewVenueHandler(decisionService)
	pipelineHandler := rest.NewPipelineHandler(pipelineRunner)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddleware(cfg.JWT.SecretKey)

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupRecommendationRoutes(api, recommendHandler)
	router.SetupVenueRoutes(api, venueHandler)
	router.SetupPipelineRoutes(api, pipelineHandler, authRequired)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
