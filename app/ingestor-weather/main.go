package main

import (
	"context"
	"log"
	"makanApa/business/ingest"
	lakeRepo "makanApa/internal/repository/lake"
	"makanApa/pkg/config"
	"makanApa/pkg/logger"
	"makanApa/pkg/objectstore"
	"time"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)

	if cfg.Weather.APIKey == "" {
		logger.Fatal("Missing weather API key")
	}

	minioClient, err := objectstore.NewMinioClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to object store", "error", err)
	}
	lake := lakeRepo.NewLakeRepository(minioClient, cfg.Lake.Bucket)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ingestor := ingest.NewWeatherIngestor(lake, cfg.Weather.APIKey, cfg.Weather.City)
	key, err := ingestor.Run(ctx)
	if err != nil {
		logger.Fatal("Weather ingest failed", "error", err)
	}

	logger.Info("Weather ingest finished", "key", key)
}
