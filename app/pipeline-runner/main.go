package main

import (
	"context"
	"log"
	"makanApa/business/gold"
	"makanApa/business/master"
	"makanApa/business/pipeline"
	"makanApa/business/silver"
	lakeRepo "makanApa/internal/repository/lake"
	"makanApa/pkg/config"
	"makanApa/pkg/logger"
	"makanApa/pkg/metrics"
	"makanApa/pkg/objectstore"
	"time"
)

// One-shot batch run of the full silver and gold pipeline, meant for cron.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	metrics.Init()

	minioClient, err := objectstore.NewMinioClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to object store", "error", err)
	}
	lake := lakeRepo.NewLakeRepository(minioClient, cfg.Lake.Bucket)

	runner := pipeline.NewRunner(
		silver.NewTransactionCleaner(lake),
		silver.NewWeatherCleaner(lake),
		silver.NewPromoCleaner(lake),
		master.NewCleaner(lake),
		gold.NewBinderService(lake),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	report, err := runner.Run(ctx)
	for _, stage := range report.Stages {
		logger.Info("stage result", "stage", stage.Stage, "status", stage.Status, "detail", stage.Detail)
	}
	if err != nil {
		logger.Fatal("Pipeline run failed", "error", err)
	}

	logger.Info("Pipeline run finished", "gold_key", report.GoldKey, "rows", report.GoldRows)
}
