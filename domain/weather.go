package domain

import "time"

// RawWeather mirrors the parts of the OpenWeather current-conditions payload
// the pipeline actually reads.
type RawWeather struct {
	Name    string `json:"name"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
}

// CleanedWeather is one flattened reading. Each silver run produces exactly
// one of these, stamped with a fresh local timestamp.
type CleanedWeather struct {
	City        string    `json:"city"`
	Condition   string    `json:"condition"`
	Description string    `json:"description"`
	Temperature float64   `json:"temperature"`
	Humidity    int       `json:"humidity"`
	Timestamp   time.Time `json:"timestamp"`
}

// WeatherSnapshot wraps the reading with its bronze provenance.
type WeatherSnapshot struct {
	SourceBronze string         `json:"source_bronze"`
	Data         CleanedWeather `json:"data"`
}
