package domain

import "time"

// RawPromoItem is one scraped text block exactly as the promo ingestor saw it.
type RawPromoItem struct {
	Platform   string `json:"platform"`
	RawText    string `json:"raw_text"`
	ScrapeDate string `json:"scrape_date"`
	ScrapeTime string `json:"scrape_time"`
	SourceURL  string `json:"source_url"`
}

// PromoBronzeSnapshot is the bronze artifact written by the promo ingestor.
type PromoBronzeSnapshot struct {
	IngestTime time.Time      `json:"ingest_time"`
	Source     string         `json:"source"`
	Data       []RawPromoItem `json:"data"`
}

// CleanedPromo is one promo entry that survived platform, keyword and length
// filtering. Keywords records which of the fixed match set fired.
type CleanedPromo struct {
	Platform   string    `json:"platform"`
	Title      string    `json:"title"`
	Keywords   []string  `json:"keywords"`
	ScrapeDate string    `json:"scrape_date"`
	ScrapeTime string    `json:"scrape_time"`
	SourceURL  string    `json:"source_url"`
	Timestamp  time.Time `json:"timestamp"`
}

// PromoSnapshot is the silver artifact of one promo cleaner run.
type PromoSnapshot struct {
	SourceBronze string         `json:"source_bronze"`
	TotalRaw     int            `json:"total_raw"`
	TotalCleaned int            `json:"total_cleaned"`
	Data         []CleanedPromo `json:"data"`
}
