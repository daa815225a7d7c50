package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"makanApa/domain"
	"makanApa/pkg/logger"
)

// MealHistoryRepository is the operational-database side of the export.
type MealHistoryRepository interface {
	FindAll(ctx context.Context) ([]domain.MealHistory, error)
}

// SQLExporter dumps the meal history table as a bronze CSV snapshot, as-is.
type SQLExporter struct {
	lake    LakeGateway
	history MealHistoryRepository
	now     func() time.Time
}

func NewSQLExporter(lake LakeGateway, history MealHistoryRepository) *SQLExporter {
	return &SQLExporter{
		lake:    lake,
		history: history,
		now:     time.Now,
	}
}

func (e *SQLExporter) Run(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context error: %w", err)
	}

	rows, err := e.history.FindAll(ctx)
	if err != nil {
		return "", fmt.Errorf("load meal history: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"date", "time", "venue", "menu", "category", "price", "method", "satisfaction"}); err != nil {
		return "", fmt.Errorf("write export header: %w", err)
	}
	for _, row := range rows {
		rec := []string{row.Date, row.Time, row.Venue, row.Menu, row.Category, row.Price, row.Method, row.Satisfaction}
		if err := w.Write(rec); err != nil {
			return "", fmt.Errorf("write export row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush export csv: %w", err)
	}

	key := fmt.Sprintf("bronze/sql/sql_%s.csv", e.now().Format(keyTimeFormat))
	if err := e.lake.Put(ctx, key, buf.Bytes(), "text/csv"); err != nil {
		return "", fmt.Errorf("write %s: %w", key, err)
	}

	logger.Info("sql bronze saved", "key", key, "rows", len(rows))

	return key, nil
}
