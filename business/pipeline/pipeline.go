package pipeline

import (
	"context"
	"fmt"

	"makanApa/business/gold"
	"makanApa/domain"
	"makanApa/pkg/logger"
	"makanApa/pkg/metrics"
)

// The silver and master stages the runner drives. Each stage reads its own
// bronze input and writes its own silver artifact.
type (
	TransactionStage interface {
		Run(ctx context.Context) (domain.TransactionSnapshot, error)
	}

	WeatherStage interface {
		Run(ctx context.Context) (domain.WeatherSnapshot, error)
	}

	PromoStage interface {
		Run(ctx context.Context) (domain.PromoSnapshot, error)
	}

	MasterStage interface {
		Run(ctx context.Context) ([]domain.VenueRecord, error)
	}

	GoldStage interface {
		Run(ctx context.Context) (gold.RunResult, error)
	}
)

// StageReport is the outcome of one stage in a run.
type StageReport struct {
	Stage  string `json:"stage"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Report summarizes one end-to-end batch run.
type Report struct {
	Stages   []StageReport `json:"stages"`
	GoldKey  string        `json:"gold_key,omitempty"`
	GoldRows int           `json:"gold_rows,omitempty"`
}

// Runner executes the silver cleaners, the master cleaner and the gold binder
// in order. Weather, promo and master failures degrade the run but do not
// stop it; the binder decides whether it can proceed without them.
type Runner struct {
	transactions TransactionStage
	weather      WeatherStage
	promos       PromoStage
	master       MasterStage
	binder       GoldStage
}

func NewRunner(transactions TransactionStage, weather WeatherStage, promos PromoStage, master MasterStage, binder GoldStage) *Runner {
	return &Runner{
		transactions: transactions,
		weather:      weather,
		promos:       promos,
		master:       master,
		binder:       binder,
	}
}

func (r *Runner) Run(ctx context.Context) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, fmt.Errorf("context error: %w", err)
	}

	var report Report

	if _, err := r.transactions.Run(ctx); err != nil {
		report.record("silver_sql", err)
	} else {
		report.record("silver_sql", nil)
	}

	if _, err := r.weather.Run(ctx); err != nil {
		report.record("silver_weather", err)
	} else {
		report.record("silver_weather", nil)
	}

	if _, err := r.promos.Run(ctx); err != nil {
		report.record("silver_promo", err)
	} else {
		report.record("silver_promo", nil)
	}

	if _, err := r.master.Run(ctx); err != nil {
		report.record("silver_master", err)
	} else {
		report.record("silver_master", nil)
	}

	result, err := r.binder.Run(ctx)
	report.record("gold_bind", err)
	if err != nil {
		return report, fmt.Errorf("gold binding: %w", err)
	}

	report.GoldKey = result.GoldKey
	report.GoldRows = result.Rows

	return report, nil
}

func (r *Report) record(stage string, err error) {
	status := "ok"
	detail := ""
	if err != nil {
		status = "failed"
		detail = err.Error()
		logger.Warn("pipeline stage failed", "stage", stage, "error", err)
	} else {
		logger.Info("pipeline stage finished", "stage", stage)
	}

	metrics.PipelineRunsTotal.WithLabelValues(stage, status).Inc()
	r.Stages = append(r.Stages, StageReport{Stage: stage, Status: status, Detail: detail})
}
