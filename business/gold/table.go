package gold

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"makanApa/domain"
)

// goldColumns fixes the gold CSV layout. The decision engine reads these
// snapshots back, so order matters.
var goldColumns = []string{
	"date", "time", "venue", "menu", "category", "price", "method", "satisfaction",
	"condition", "temperature", "humidity", "promo_count",
	"is_rain", "has_promo", "is_lunch_time",
}

// MarshalCSV encodes a bound feature table as a gold snapshot body.
func MarshalCSV(rows []domain.BoundFeatureRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(goldColumns); err != nil {
		return nil, fmt.Errorf("write gold header: %w", err)
	}

	for _, row := range rows {
		rec := []string{
			row.Date,
			row.Time,
			row.Venue,
			row.Menu,
			row.Category,
			strconv.Itoa(row.Price),
			row.Method,
			strconv.Itoa(row.Satisfaction),
			row.Condition,
			strconv.FormatFloat(row.Temperature, 'f', -1, 64),
			strconv.Itoa(row.Humidity),
			strconv.Itoa(row.PromoCount),
			strconv.Itoa(row.IsRain),
			strconv.Itoa(row.HasPromo),
			strconv.Itoa(row.IsLunchTime),
		}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("write gold row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush gold csv: %w", err)
	}

	return buf.Bytes(), nil
}

// ParseCSV decodes a gold snapshot body back into a bound feature table.
func ParseCSV(data []byte) ([]domain.BoundFeatureRow, error) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse gold csv: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("gold csv has no header")
	}

	idx := map[string]int{}
	for i, col := range records[0] {
		idx[col] = i
	}

	rows := make([]domain.BoundFeatureRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return rec[i]
		}

		price, err := strconv.Atoi(get("price"))
		if err != nil {
			continue
		}
		satisfaction, err := strconv.Atoi(get("satisfaction"))
		if err != nil {
			continue
		}
		temperature, err := strconv.ParseFloat(get("temperature"), 64)
		if err != nil {
			continue
		}

		humidity, _ := strconv.Atoi(get("humidity"))
		promoCount, _ := strconv.Atoi(get("promo_count"))
		isRain, _ := strconv.Atoi(get("is_rain"))
		hasPromo, _ := strconv.Atoi(get("has_promo"))
		isLunch, _ := strconv.Atoi(get("is_lunch_time"))

		rows = append(rows, domain.BoundFeatureRow{
			Date:         get("date"),
			Time:         get("time"),
			Venue:        get("venue"),
			Menu:         get("menu"),
			Category:     get("category"),
			Method:       get("method"),
			Price:        price,
			Satisfaction: satisfaction,
			Condition:    get("condition"),
			Temperature:  temperature,
			Humidity:     humidity,
			PromoCount:   promoCount,
			IsRain:       isRain,
			HasPromo:     hasPromo,
			IsLunchTime:  isLunch,
		})
	}

	return rows, nil
}
