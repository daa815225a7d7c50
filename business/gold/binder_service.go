package gold

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"makanApa/business/satisfaction"
	"makanApa/business/silver"
	"makanApa/domain"
	"makanApa/pkg/logger"
	"makanApa/pkg/metrics"
)

const (
	GoldPrefix = "gold/decision_binding/"

	keyTimeFormat = "20060102_1504"
)

// Fallback weather when no silver reading exists.
const (
	defaultCondition   = "Unknown"
	defaultTemperature = 30.0
	defaultHumidity    = 70
)

const (
	binderMaxDepth = 4
	binderSeed     = 42
	testFraction   = 0.2
	minEvalRows    = 5
)

// LakeGateway is the slice of the object store the binder needs.
type LakeGateway interface {
	Latest(ctx context.Context, prefix string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// BinderService joins the freshest silver snapshots into the gold training
// table, trains the satisfaction tree for diagnostics and appends a new gold
// snapshot. The store put is the last action: a failed run writes nothing.
type BinderService struct {
	lake LakeGateway
	now  func() time.Time
}

func NewBinderService(lake LakeGateway) *BinderService {
	return &BinderService{
		lake: lake,
		now:  time.Now,
	}
}

// RunResult summarizes one binder run. Accuracy is nil when the table was
// too small for a held-out split.
type RunResult struct {
	GoldKey  string
	Rows     int
	Accuracy *float64
}

func (s *BinderService) Run(ctx context.Context) (RunResult, error) {
	if err := ctx.Err(); err != nil {
		return RunResult{}, fmt.Errorf("context error: %w", err)
	}

	transactions, err := s.loadTransactions(ctx)
	if err != nil {
		return RunResult{}, err
	}

	weather := s.loadWeather(ctx)
	promoCounts := s.loadPromoCounts(ctx)

	rows := Bind(transactions, weather, promoCounts)
	if len(rows) == 0 {
		return RunResult{}, fmt.Errorf("%w: all rows dropped during binding", domain.ErrMissingTransactionData)
	}

	samples := make([]satisfaction.Sample, 0, len(rows))
	for _, row := range rows {
		samples = append(samples, satisfaction.Sample{
			Features: []float64{
				float64(row.Price),
				float64(row.IsRain),
				row.Temperature,
				float64(row.HasPromo),
				float64(row.IsLunchTime),
			},
			Label: row.Satisfaction,
		})
	}

	cfg := satisfaction.Config{MaxDepth: binderMaxDepth, Seed: binderSeed}

	var accuracy *float64
	if len(samples) < minEvalRows {
		if _, err := satisfaction.Fit(samples, cfg); err != nil {
			return RunResult{}, fmt.Errorf("train satisfaction model: %w", err)
		}
		logger.Info("model trained on full set, no held-out evaluation", "rows", len(samples))
	} else {
		train, test := satisfaction.SplitTrainTest(samples, testFraction, binderSeed)
		model, err := satisfaction.Fit(train, cfg)
		if err != nil {
			return RunResult{}, fmt.Errorf("train satisfaction model: %w", err)
		}
		acc := satisfaction.Accuracy(model, test)
		accuracy = &acc
		logger.Info("model evaluated", "train_rows", len(train), "test_rows", len(test), "accuracy", acc)
	}

	body, err := MarshalCSV(rows)
	if err != nil {
		return RunResult{}, err
	}

	goldKey := fmt.Sprintf("%sdata_bound_%s.csv", GoldPrefix, s.now().Format(keyTimeFormat))
	if err := s.lake.Put(ctx, goldKey, body, "text/csv"); err != nil {
		return RunResult{}, fmt.Errorf("write %s: %w", goldKey, err)
	}

	metrics.PipelineRunsTotal.WithLabelValues("gold", "ok").Inc()
	logger.Info("gold snapshot saved", "key", goldKey, "rows", len(rows))

	return RunResult{GoldKey: goldKey, Rows: len(rows), Accuracy: accuracy}, nil
}

// Bind applies the two joins and derives the model features. Weather is a
// broadcast: every transaction gets the one latest reading. Promo counts are
// joined per transaction date; the two policies are intentionally different.
func Bind(transactions []domain.CleanedTransaction, weather domain.CleanedWeather, promoCounts map[string]int) []domain.BoundFeatureRow {
	rows := make([]domain.BoundFeatureRow, 0, len(transactions))
	for _, txn := range transactions {
		promoCount := promoCounts[txn.Date]

		rows = append(rows, domain.BoundFeatureRow{
			Date:         txn.Date,
			Time:         txn.Time,
			Venue:        txn.Venue,
			Menu:         txn.Menu,
			Category:     txn.Category,
			Method:       txn.Method,
			Price:        txn.Price,
			Satisfaction: txn.Satisfaction,
			Condition:    weather.Condition,
			Temperature:  weather.Temperature,
			Humidity:     weather.Humidity,
			PromoCount:   promoCount,
			IsRain:       boolToFlag(IsRainCondition(weather.Condition)),
			HasPromo:     boolToFlag(promoCount > 0),
			IsLunchTime:  boolToFlag(IsLunchTime(txn.Time)),
		})
	}

	return rows
}

func (s *BinderService) loadTransactions(ctx context.Context) ([]domain.CleanedTransaction, error) {
	key, err := s.lake.Latest(ctx, silver.SilverSQLPrefix)
	if err != nil {
		if errors.Is(err, domain.ErrNoData) {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingTransactionData, silver.SilverSQLPrefix)
		}
		return nil, fmt.Errorf("resolve latest silver sql: %w", err)
	}

	raw, err := s.lake.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}

	var snapshot domain.TransactionSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("parse %s: %w", key, err)
	}
	if len(snapshot.Data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", domain.ErrMissingTransactionData, key)
	}

	return snapshot.Data, nil
}

// loadWeather degrades to documented defaults when no reading exists.
func (s *BinderService) loadWeather(ctx context.Context) domain.CleanedWeather {
	fallback := domain.CleanedWeather{
		Condition:   defaultCondition,
		Temperature: defaultTemperature,
		Humidity:    defaultHumidity,
	}

	key, err := s.lake.Latest(ctx, silver.SilverWeatherPrefix)
	if err != nil {
		logger.Warn("no silver weather, using defaults", "error", err)
		return fallback
	}

	raw, err := s.lake.Get(ctx, key)
	if err != nil {
		logger.Warn("failed to load silver weather, using defaults", "key", key, "error", err)
		return fallback
	}

	var snapshot domain.WeatherSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		logger.Warn("failed to parse silver weather, using defaults", "key", key, "error", err)
		return fallback
	}

	logger.Info("binding with latest weather",
		"timestamp", snapshot.Data.Timestamp,
		"condition", snapshot.Data.Condition,
		"temperature", snapshot.Data.Temperature,
	)

	return snapshot.Data
}

// loadPromoCounts groups the latest promo snapshot into per-day counts.
// Absence means zero promos everywhere.
func (s *BinderService) loadPromoCounts(ctx context.Context) map[string]int {
	counts := map[string]int{}

	key, err := s.lake.Latest(ctx, silver.SilverPromoPrefix)
	if err != nil {
		logger.Warn("no silver promo, promo counts default to zero", "error", err)
		return counts
	}

	raw, err := s.lake.Get(ctx, key)
	if err != nil {
		logger.Warn("failed to load silver promo", "key", key, "error", err)
		return counts
	}

	var snapshot domain.PromoSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		logger.Warn("failed to parse silver promo", "key", key, "error", err)
		return counts
	}

	for _, promo := range snapshot.Data {
		counts[promo.ScrapeDate]++
	}

	return counts
}
