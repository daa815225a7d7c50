package silver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"makanApa/domain"
	"makanApa/pkg/logger"
	"makanApa/pkg/metrics"
)

// WeatherCleaner flattens the freshest raw weather reading into one silver
// record. Exactly one reading per run; this is a point-in-time snapshot, not
// a series.
type WeatherCleaner struct {
	lake LakeGateway
	now  func() time.Time
}

func NewWeatherCleaner(lake LakeGateway) *WeatherCleaner {
	return &WeatherCleaner{
		lake: lake,
		now:  time.Now,
	}
}

func (c *WeatherCleaner) Run(ctx context.Context) (domain.WeatherSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.WeatherSnapshot{}, fmt.Errorf("context error: %w", err)
	}

	sourceKey, err := c.lake.Latest(ctx, BronzeWeatherPrefix)
	if err != nil {
		return domain.WeatherSnapshot{}, fmt.Errorf("resolve latest bronze weather: %w", err)
	}

	raw, err := c.lake.Get(ctx, sourceKey)
	if err != nil {
		return domain.WeatherSnapshot{}, fmt.Errorf("load %s: %w", sourceKey, err)
	}

	var reading domain.RawWeather
	if err := json.Unmarshal(raw, &reading); err != nil {
		return domain.WeatherSnapshot{}, fmt.Errorf("parse bronze weather %s: %w", sourceKey, err)
	}
	if len(reading.Weather) == 0 {
		return domain.WeatherSnapshot{}, fmt.Errorf("bronze weather %s has no conditions block", sourceKey)
	}

	snapshot := domain.WeatherSnapshot{
		SourceBronze: sourceKey,
		Data: domain.CleanedWeather{
			City:        reading.Name,
			Condition:   reading.Weather[0].Main,
			Description: reading.Weather[0].Description,
			Temperature: reading.Main.Temp,
			Humidity:    reading.Main.Humidity,
			Timestamp:   c.now(),
		},
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return domain.WeatherSnapshot{}, fmt.Errorf("marshal silver snapshot: %w", err)
	}

	outKey := fmt.Sprintf("%sweather_cleaned_%s.json", SilverWeatherPrefix, c.now().Format(keyTimeFormat))
	if err := c.lake.Put(ctx, outKey, payload, "application/json"); err != nil {
		return domain.WeatherSnapshot{}, fmt.Errorf("write %s: %w", outKey, err)
	}

	metrics.PipelineRowsCleaned.WithLabelValues("weather").Inc()
	logger.Info("weather silver cleaned saved",
		"key", outKey,
		"source", sourceKey,
		"condition", snapshot.Data.Condition,
		"temperature", snapshot.Data.Temperature,
	)

	return snapshot, nil
}
