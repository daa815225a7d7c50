package master

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"makanApa/domain"
	"makanApa/pkg/logger"
	"makanApa/pkg/metrics"
)

const (
	BronzeMasterKey = "bronze/master/master_warung.csv"
	SilverMasterKey = "silver/master/warung_cleaned.json"
)

const (
	defaultTasteRating = 3.0
)

// LakeGateway is the slice of the object store the master cleaner needs.
// The master is a single current catalog, so there is no latest-resolution.
type LakeGateway interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// Cleaner normalizes the raw venue catalog into typed records and overwrites
// the single silver master snapshot.
type Cleaner struct {
	lake LakeGateway
}

func NewCleaner(lake LakeGateway) *Cleaner {
	return &Cleaner{
		lake: lake,
	}
}

func (c *Cleaner) Run(ctx context.Context) ([]domain.VenueRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	raw, err := c.lake.Get(ctx, BronzeMasterKey)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", BronzeMasterKey, err)
	}

	records, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse master csv: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("master csv has no header")
	}

	header := records[0]
	nameIdx := columnIndex(header, "name", "nama_warung")
	indoorIdx := columnIndex(header, "indoor")
	spicyIdx := columnIndex(header, "spicy", "pedas")
	travelIdx := columnIndex(header, "travel_minutes", "jarak_menit")
	priceIdx := columnIndex(header, "avg_price", "harga_rata2")
	serveIdx := columnIndex(header, "serve_minutes", "waktu_saji")
	tasteIdx := columnIndex(header, "taste_rating", "rating_rasa")
	portionIdx := columnIndex(header, "portion", "porsi")

	venues := make([]domain.VenueRecord, 0, len(records)-1)
	for _, rec := range records[1:] {
		venues = append(venues, domain.VenueRecord{
			Name:          strings.TrimSpace(field(rec, nameIdx)),
			Indoor:        parseBool(field(rec, indoorIdx)),
			Spicy:         parseBool(field(rec, spicyIdx)),
			TravelMinutes: parseNonNegativeInt(field(rec, travelIdx)),
			AvgPrice:      parseNonNegativeInt(field(rec, priceIdx)),
			ServeMinutes:  parseNonNegativeInt(field(rec, serveIdx)),
			TasteRating:   parseTasteRating(field(rec, tasteIdx)),
			Portion:       parsePortion(field(rec, portionIdx)),
		})
	}

	payload, err := json.Marshal(venues)
	if err != nil {
		return nil, fmt.Errorf("marshal venue master: %w", err)
	}

	if err := c.lake.Put(ctx, SilverMasterKey, payload, "application/json"); err != nil {
		return nil, fmt.Errorf("write %s: %w", SilverMasterKey, err)
	}

	metrics.PipelineRowsCleaned.WithLabelValues("master").Add(float64(len(venues)))
	logger.Info("venue master cleaned saved", "key", SilverMasterKey, "rows", len(venues))

	return venues, nil
}

func columnIndex(header []string, names ...string) int {
	for _, name := range names {
		for i, col := range header {
			if strings.EqualFold(strings.TrimSpace(col), name) {
				return i
			}
		}
	}
	return -1
}

func field(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return rec[idx]
}

func parseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "TRUE")
}

// parseNonNegativeInt coerces to int; unparsable or negative becomes 0.
func parseNonNegativeInt(s string) int {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0
		}
		n = int(f)
	}
	if n < 0 {
		return 0
	}
	return n
}

func parseTasteRating(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return defaultTasteRating
	}
	if f < 0 {
		return 0
	}
	if f > 5 {
		return 5
	}
	return f
}

func parsePortion(s string) domain.Portion {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.PortionSedang
	}
	return domain.Portion(s)
}
