package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"makanApa/pkg/logger"
)

const openWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// WeatherIngestor fetches one current-conditions reading and appends the raw
// payload to the bronze weather prefix. No parsing happens here; bronze is
// the untouched source of record.
type WeatherIngestor struct {
	lake   LakeGateway
	client *http.Client
	apiKey string
	city   string
	now    func() time.Time
}

func NewWeatherIngestor(lake LakeGateway, apiKey, city string) *WeatherIngestor {
	return &WeatherIngestor{
		lake:   lake,
		client: &http.Client{Timeout: 10 * time.Second},
		apiKey: apiKey,
		city:   city,
		now:    time.Now,
	}
}

func (i *WeatherIngestor) Run(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context error: %w", err)
	}

	endpoint := fmt.Sprintf("%s?q=%s&units=metric&appid=%s", openWeatherURL, url.QueryEscape(i.city), i.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build weather request: %w", err)
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("weather api returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read weather response: %w", err)
	}

	key := fmt.Sprintf("bronze/weather/weather_%s.json", i.now().Format(keyTimeFormat))
	if err := i.lake.Put(ctx, key, body, "application/json"); err != nil {
		return "", fmt.Errorf("write %s: %w", key, err)
	}

	logger.Info("weather bronze saved", "key", key, "city", i.city)

	return key, nil
}
