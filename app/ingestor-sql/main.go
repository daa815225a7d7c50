package main

import (
	"context"
	"log"
	"makanApa/business/ingest"
	lakeRepo "makanApa/internal/repository/lake"
	psqlRepo "makanApa/internal/repository/postgres"
	"makanApa/pkg/config"
	"makanApa/pkg/database"
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

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	minioClient, err := objectstore.NewMinioClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to object store", "error", err)
	}
	lake := lakeRepo.NewLakeRepository(minioClient, cfg.Lake.Bucket)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	exporter := ingest.NewSQLExporter(lake, psqlRepo.NewMealHistoryRepository(db))
	key, err := exporter.Run(ctx)
	if err != nil {
		logger.Fatal("History export failed", "error", err)
	}

	logger.Info("History export finished", "key", key)
}
