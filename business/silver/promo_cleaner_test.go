package silver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"makanApa/domain"
	"makanApa/internal/repository/lake"
)

func TestCleanPromoText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "boilerplate stripped",
			in:   "Diskon 50% GoFood! Lihat Penawaran Syarat & Ketentuan",
			want: "Diskon 50% GoFood",
		},
		{
			name: "percent survives symbol strip",
			in:   "Cashback 20%, min. belanja 50rb!!!",
			want: "Cashback 20% min belanja 50rb",
		},
		{
			name: "bare rp uppercased",
			in:   "Hemat rp 25 ribu gratis ongkir",
			want: "Hemat RP 25 ribu gratis ongkir",
		},
		{
			name: "rp inside word untouched",
			in:   "harga terpangkas banyak",
			want: "harga terpangkas banyak",
		},
		{
			name: "whitespace collapsed",
			in:   "GoFood   diskon \t spesial\n akhir pekan",
			want: "GoFood diskon spesial akhir pekan",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanPromoText(tc.in); got != tc.want {
				t.Errorf("CleanPromoText(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestPromoCleanerFilters(t *testing.T) {
	bronze := domain.PromoBronzeSnapshot{
		IngestTime: time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC),
		Source:     "Cuponation",
		Data: []domain.RawPromoItem{
			{Platform: "GoJek", RawText: "Diskon 50% untuk semua menu GoFood minimal pembelian 50rb"},
			{Platform: "Tokopedia", RawText: "Diskon 50% untuk semua menu GoFood minimal pembelian 50rb"},
			{Platform: "Grab", RawText: "Diskon 50% semua barang elektronik pilihan minggu ini"},
			{Platform: "Grab", RawText: "GrabFood menu baru telah hadir di kotamu sekarang juga"},
			{Platform: "Shopee", RawText: "GoFood diskon"},
			{Platform: "Shopee", RawText: "ShopeeFood gratis ongkir " + strings.Repeat("sangat hemat sekali ", 40)},
		},
	}

	payload, err := json.Marshal(bronze)
	if err != nil {
		t.Fatalf("marshal bronze: %v", err)
	}

	mem := lake.NewMemory()
	mem.PutAt("bronze/promo/promo_20250110_0900.json", payload, "application/json",
		time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC))

	cleaner := NewPromoCleaner(mem)
	snapshot, err := cleaner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if snapshot.TotalRaw != 6 {
		t.Errorf("TotalRaw = %d, want 6", snapshot.TotalRaw)
	}
	if snapshot.TotalCleaned != 1 {
		t.Fatalf("TotalCleaned = %d, want 1: kept %+v", snapshot.TotalCleaned, snapshot.Data)
	}

	promo := snapshot.Data[0]
	if promo.Platform != "GoJek" {
		t.Errorf("Platform = %q, want GoJek", promo.Platform)
	}
	if len(promo.Keywords) != 1 || promo.Keywords[0] != "diskon" {
		t.Errorf("Keywords = %v, want [diskon]", promo.Keywords)
	}
}
