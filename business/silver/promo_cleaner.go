package silver

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"makanApa/domain"
	"makanApa/pkg/logger"
	"makanApa/pkg/metrics"
)

var validPlatforms = map[string]bool{
	"GoJek":  true,
	"Grab":   true,
	"Shopee": true,
}

// promoKeywords is the literal match set for the Indonesian promo corpus.
var promoKeywords = []string{"diskon", "voucher", "cashback", "gratis", "ongkir", "promo", "off"}

// noisePatterns are applied in order before the structural strip.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)lihat penawaran`),
	regexp.MustCompile(`(?i)lihat kode promo`),
	regexp.MustCompile(`(?i)lihat detail`),
	regexp.MustCompile(`(?i)gunakan voucher`),
	regexp.MustCompile(`(?i)syarat`),
	regexp.MustCompile(`(?i)ketentuan`),
	regexp.MustCompile(`(?i)arrow[- ]?forwardios`),
	regexp.MustCompile(`(?i)arrow[- ]?forward`),
	regexp.MustCompile(`(?i)diverifikasi`),
	regexp.MustCompile(`(?i)offer verified`),
	regexp.MustCompile(`(?i)los`),
}

var (
	nonWordPattern    = regexp.MustCompile(`[^\w\s%]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	rupiahPattern     = regexp.MustCompile(`(?i)\brp\b`)
)

const (
	promoMinLength = 20
	promoMaxLength = 600
)

// PromoCleaner filters the freshest raw promo scrape down to food promos
// from the supported platforms.
type PromoCleaner struct {
	lake LakeGateway
	now  func() time.Time
}

func NewPromoCleaner(lake LakeGateway) *PromoCleaner {
	return &PromoCleaner{
		lake: lake,
		now:  time.Now,
	}
}

func (c *PromoCleaner) Run(ctx context.Context) (domain.PromoSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.PromoSnapshot{}, fmt.Errorf("context error: %w", err)
	}

	sourceKey, err := c.lake.Latest(ctx, BronzePromoPrefix)
	if err != nil {
		return domain.PromoSnapshot{}, fmt.Errorf("resolve latest bronze promo: %w", err)
	}

	raw, err := c.lake.Get(ctx, sourceKey)
	if err != nil {
		return domain.PromoSnapshot{}, fmt.Errorf("load %s: %w", sourceKey, err)
	}

	var bronze domain.PromoBronzeSnapshot
	if err := json.Unmarshal(raw, &bronze); err != nil {
		return domain.PromoSnapshot{}, fmt.Errorf("parse bronze promo %s: %w", sourceKey, err)
	}

	cleaned := make([]domain.CleanedPromo, 0, len(bronze.Data))
	for _, item := range bronze.Data {
		promo, ok := c.cleanItem(item)
		if !ok {
			metrics.PipelineRowsDropped.WithLabelValues("promo").Inc()
			continue
		}
		cleaned = append(cleaned, promo)
	}

	metrics.PipelineRowsCleaned.WithLabelValues("promo").Add(float64(len(cleaned)))

	snapshot := domain.PromoSnapshot{
		SourceBronze: sourceKey,
		TotalRaw:     len(bronze.Data),
		TotalCleaned: len(cleaned),
		Data:         cleaned,
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return domain.PromoSnapshot{}, fmt.Errorf("marshal silver snapshot: %w", err)
	}

	outKey := fmt.Sprintf("%spromo_cleaned_%s.json", SilverPromoPrefix, c.now().Format(keyTimeFormat))
	if err := c.lake.Put(ctx, outKey, payload, "application/json"); err != nil {
		return domain.PromoSnapshot{}, fmt.Errorf("write %s: %w", outKey, err)
	}

	logger.Info("promo silver cleaned saved",
		"key", outKey,
		"source", sourceKey,
		"total_raw", snapshot.TotalRaw,
		"total_cleaned", snapshot.TotalCleaned,
	)

	return snapshot, nil
}

func (c *PromoCleaner) cleanItem(item domain.RawPromoItem) (domain.CleanedPromo, bool) {
	if !validPlatforms[item.Platform] {
		return domain.CleanedPromo{}, false
	}

	text := CleanPromoText(item.RawText)
	lower := strings.ToLower(text)

	if !strings.Contains(lower, "food") {
		return domain.CleanedPromo{}, false
	}

	matched := make([]string, 0, len(promoKeywords))
	for _, kw := range promoKeywords {
		if strings.Contains(lower, kw) {
			matched = append(matched, kw)
		}
	}
	if len(matched) == 0 {
		return domain.CleanedPromo{}, false
	}

	if n := len([]rune(text)); n < promoMinLength || n > promoMaxLength {
		return domain.CleanedPromo{}, false
	}

	return domain.CleanedPromo{
		Platform:   item.Platform,
		Title:      text,
		Keywords:   matched,
		ScrapeDate: item.ScrapeDate,
		ScrapeTime: item.ScrapeTime,
		SourceURL:  item.SourceURL,
		Timestamp:  c.now(),
	}, true
}

// CleanPromoText strips boilerplate in order, drops non-alphanumerics except
// the percent sign, collapses whitespace and uppercases bare "rp". Case of
// the remaining text is preserved.
func CleanPromoText(text string) string {
	cleaned := text
	for _, pattern := range noisePatterns {
		cleaned = pattern.ReplaceAllString(cleaned, "")
	}

	cleaned = nonWordPattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(whitespacePattern.ReplaceAllString(cleaned, " "))
	cleaned = rupiahPattern.ReplaceAllString(cleaned, "RP")

	return cleaned
}
