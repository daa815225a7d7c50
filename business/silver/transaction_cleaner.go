package silver

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"makanApa/domain"
	"makanApa/pkg/logger"
	"makanApa/pkg/metrics"

	"github.com/go-playground/validator/v10"
)

var timeOfDayPattern = regexp.MustCompile(`(\d{2}:\d{2}:\d{2})`)

// TransactionCleaner turns the freshest bronze SQL export into a typed,
// validated silver snapshot. Rows that fail coercion on date, time, price or
// satisfaction are dropped, never the whole batch.
type TransactionCleaner struct {
	lake     LakeGateway
	validate *validator.Validate
	now      func() time.Time
}

func NewTransactionCleaner(lake LakeGateway) *TransactionCleaner {
	return &TransactionCleaner{
		lake:     lake,
		validate: validator.New(),
		now:      time.Now,
	}
}

func (c *TransactionCleaner) Run(ctx context.Context) (domain.TransactionSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.TransactionSnapshot{}, fmt.Errorf("context error: %w", err)
	}

	sourceKey, err := c.lake.Latest(ctx, BronzeSQLPrefix)
	if err != nil {
		return domain.TransactionSnapshot{}, fmt.Errorf("resolve latest bronze sql: %w", err)
	}

	raw, err := c.lake.Get(ctx, sourceKey)
	if err != nil {
		return domain.TransactionSnapshot{}, fmt.Errorf("load %s: %w", sourceKey, err)
	}

	records, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	if err != nil {
		return domain.TransactionSnapshot{}, fmt.Errorf("parse bronze csv %s: %w", sourceKey, err)
	}
	if len(records) < 1 {
		return domain.TransactionSnapshot{}, fmt.Errorf("bronze csv %s has no header", sourceKey)
	}

	header := records[0]
	rows := records[1:]

	// Column aliases cover both this repo's exporter and the legacy export.
	dateIdx := columnIndex(header, "date", "tanggal")
	timeIdx := columnIndex(header, "time", "waktu")
	venueIdx := columnIndex(header, "venue", "nama_warung")
	menuIdx := columnIndex(header, "menu")
	categoryIdx := columnIndex(header, "category", "kategori")
	priceIdx := columnIndex(header, "price", "harga")
	methodIdx := columnIndex(header, "method", "metode")
	satisfactionIdx := columnIndex(header, "satisfaction", "kepuasan")

	cleaned := make([]domain.CleanedTransaction, 0, len(rows))
	for i, rec := range rows {
		row, ok := c.cleanRow(rec, dateIdx, timeIdx, venueIdx, menuIdx, categoryIdx, priceIdx, methodIdx, satisfactionIdx)
		if !ok {
			logger.Debug("transaction row dropped", "source", sourceKey, "row", i+1)
			metrics.PipelineRowsDropped.WithLabelValues("sql").Inc()
			continue
		}
		if err := c.validate.Struct(&row); err != nil {
			logger.Debug("transaction row failed validation", "source", sourceKey, "row", i+1, "error", err)
			metrics.PipelineRowsDropped.WithLabelValues("sql").Inc()
			continue
		}
		cleaned = append(cleaned, row)
	}

	metrics.PipelineRowsCleaned.WithLabelValues("sql").Add(float64(len(cleaned)))

	snapshot := domain.TransactionSnapshot{
		SourceBronze: sourceKey,
		TotalRaw:     len(rows),
		TotalCleaned: len(cleaned),
		Data:         cleaned,
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return domain.TransactionSnapshot{}, fmt.Errorf("marshal silver snapshot: %w", err)
	}

	outKey := fmt.Sprintf("%ssql_cleaned_%s.json", SilverSQLPrefix, c.now().Format(keyTimeFormat))
	if err := c.lake.Put(ctx, outKey, payload, "application/json"); err != nil {
		return domain.TransactionSnapshot{}, fmt.Errorf("write %s: %w", outKey, err)
	}

	logger.Info("sql silver cleaned saved",
		"key", outKey,
		"source", sourceKey,
		"total_raw", snapshot.TotalRaw,
		"total_cleaned", snapshot.TotalCleaned,
	)

	return snapshot, nil
}

func (c *TransactionCleaner) cleanRow(rec []string, dateIdx, timeIdx, venueIdx, menuIdx, categoryIdx, priceIdx, methodIdx, satisfactionIdx int) (domain.CleanedTransaction, bool) {
	date := strings.TrimSpace(field(rec, dateIdx))
	if date == "" {
		return domain.CleanedTransaction{}, false
	}

	timeOfDay := timeOfDayPattern.FindString(field(rec, timeIdx))
	if timeOfDay == "" {
		return domain.CleanedTransaction{}, false
	}

	price, ok := parseIntLoose(field(rec, priceIdx))
	if !ok || price < 0 {
		return domain.CleanedTransaction{}, false
	}

	satisfaction, ok := parseIntLoose(field(rec, satisfactionIdx))
	if !ok || (satisfaction != 0 && satisfaction != 1) {
		return domain.CleanedTransaction{}, false
	}

	return domain.CleanedTransaction{
		Date:         date,
		Time:         timeOfDay,
		Venue:        titleCase(strings.TrimSpace(field(rec, venueIdx))),
		Menu:         strings.TrimSpace(field(rec, menuIdx)),
		Category:     titleCase(strings.TrimSpace(field(rec, categoryIdx))),
		Price:        price,
		Method:       normalizeMethod(field(rec, methodIdx)),
		Satisfaction: satisfaction,
	}, true
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

// parseIntLoose coerces "12000", "12000.0" and padded variants to int.
func parseIntLoose(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), true
	}
	return 0, false
}

// normalizeMethod collapses case and hyphen variants of dine-in.
func normalizeMethod(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "dine in" || s == "dine-in" {
		return "dine-in"
	}
	return s
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
