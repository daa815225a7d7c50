package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"makanApa/domain"
	"makanApa/internal/repository/lake"
)

type stubHistory struct {
	rows []domain.MealHistory
	err  error
}

func (s stubHistory) FindAll(context.Context) ([]domain.MealHistory, error) {
	return s.rows, s.err
}

func TestSQLExporterWritesBronzeCSV(t *testing.T) {
	mem := lake.NewMemory()
	exporter := NewSQLExporter(mem, stubHistory{rows: []domain.MealHistory{
		{Date: "2025-01-10", Time: "12:30:00", Venue: "warung bu siti", Menu: "nasi goreng",
			Category: "makanan berat", Price: "12000", Method: "dine in", Satisfaction: "1"},
		{Date: "2025-01-11", Time: "19:00:00", Venue: "warung pojok", Menu: "soto",
			Category: "makanan berat", Price: "not-a-price", Method: "takeaway", Satisfaction: "5"},
	}})

	ctx := context.Background()
	key, err := exporter.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.HasPrefix(key, "bronze/sql/sql_") || !strings.HasSuffix(key, ".csv") {
		t.Errorf("key = %q, want bronze/sql/sql_<ts>.csv", key)
	}

	raw, err := mem.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get %s: %v", key, err)
	}

	records, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	if err != nil {
		t.Fatalf("parse export: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header plus 2 rows", len(records))
	}
	if records[0][0] != "date" || records[0][7] != "satisfaction" {
		t.Errorf("header = %v", records[0])
	}

	// the export is verbatim; cleaning is the silver layer's job
	if records[2][5] != "not-a-price" || records[2][7] != "5" {
		t.Errorf("dirty row was altered in bronze: %v", records[2])
	}
}

func TestSQLExporterPropagatesDBError(t *testing.T) {
	mem := lake.NewMemory()
	dbErr := errors.New("connection refused")
	exporter := NewSQLExporter(mem, stubHistory{err: dbErr})

	if _, err := exporter.Run(context.Background()); !errors.Is(err, dbErr) {
		t.Errorf("Run = %v, want wrapped db error", err)
	}
}
