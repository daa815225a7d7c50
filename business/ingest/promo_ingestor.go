package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"makanApa/domain"
	"makanApa/pkg/logger"

	"golang.org/x/net/html"
)

// PromoRoute is one promo listing page to scrape.
type PromoRoute struct {
	Platform string
	URL      string
}

// DefaultPromoRoutes are the coupon aggregator pages for the supported
// platforms.
var DefaultPromoRoutes = []PromoRoute{
	{Platform: "GoJek", URL: "https://www.cuponation.co.id/gojek-voucher"},
	{Platform: "Grab", URL: "https://www.cuponation.co.id/grabfood"},
	{Platform: "Shopee", URL: "https://www.cuponation.co.id/shopee-kode-promo"},
}

const promoUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"

// PromoIngestor scrapes the raw text blocks of each route and appends one
// bronze snapshot. Filtering and cleaning belong to the silver layer.
type PromoIngestor struct {
	lake   LakeGateway
	client *http.Client
	routes []PromoRoute
	now    func() time.Time
}

func NewPromoIngestor(lake LakeGateway, routes []PromoRoute) *PromoIngestor {
	if len(routes) == 0 {
		routes = DefaultPromoRoutes
	}
	return &PromoIngestor{
		lake:   lake,
		client: &http.Client{Timeout: 15 * time.Second},
		routes: routes,
		now:    time.Now,
	}
}

func (i *PromoIngestor) Run(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context error: %w", err)
	}

	var all []domain.RawPromoItem
	for _, route := range i.routes {
		items, err := i.scrapeRoute(ctx, route)
		if err != nil {
			logger.Warn("promo route failed", "platform", route.Platform, "error", err)
			continue
		}
		all = append(all, items...)
	}

	snapshot := domain.PromoBronzeSnapshot{
		IngestTime: i.now(),
		Source:     "Cuponation",
		Data:       all,
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("marshal promo snapshot: %w", err)
	}

	key := fmt.Sprintf("bronze/promo/promo_%s.json", i.now().Format(keyTimeFormat))
	if err := i.lake.Put(ctx, key, payload, "application/json"); err != nil {
		return "", fmt.Errorf("write %s: %w", key, err)
	}

	logger.Info("promo bronze saved", "key", key, "items", len(all))

	return key, nil
}

func (i *PromoIngestor) scrapeRoute(ctx context.Context, route PromoRoute) ([]domain.RawPromoItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, route.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", promoUserAgent)

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", route.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned %s", route.URL, resp.Status)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", route.URL, err)
	}

	now := i.now()
	var items []domain.RawPromoItem
	walkElements(doc, func(n *html.Node) {
		if n.Data != "article" && n.Data != "div" && n.Data != "a" {
			return
		}
		text := elementText(n)
		if text == "" {
			return
		}
		items = append(items, domain.RawPromoItem{
			Platform:   route.Platform,
			RawText:    text,
			ScrapeDate: now.Format("2006-01-02"),
			ScrapeTime: now.Format("15:04:05"),
			SourceURL:  route.URL,
		})
	})

	return items, nil
}

func walkElements(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkElements(c, visit)
	}
}

// elementText joins the text nodes under an element with single spaces,
// trimming each fragment.
func elementText(n *html.Node) string {
	var parts []string
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)

	return strings.Join(parts, " ")
}
