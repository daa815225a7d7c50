package decision

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"makanApa/business/gold"
	"makanApa/business/master"
	"makanApa/business/satisfaction"
	"makanApa/business/silver"
	"makanApa/domain"
	"makanApa/pkg/logger"
	"makanApa/pkg/metrics"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	engineMaxDepth = 5
	engineSeed     = 42

	lunchStartHour = 11
	lunchEndHour   = 14
)

const (
	AdviceTakeaway = "takeaway"
	AdviceDineIn   = "dine-in"
)

// LakeGateway is the slice of the object store the engine reads from.
type LakeGateway interface {
	Latest(ctx context.Context, prefix string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
}

// VenueCache is an optional read-through cache for the cleaned master.
type VenueCache interface {
	GetVenues(ctx context.Context) ([]domain.VenueRecord, error)
	SetVenues(ctx context.Context, venues []domain.VenueRecord) error
}

// EventRepository persists served recommendations for offline analysis.
type EventRepository interface {
	SaveEvent(ctx context.Context, event domain.RecommendationEvent) error
}

// DecisionService retrains its own satisfaction model from the freshest gold
// table on every request and applies the scenario policy. Model state is
// never shared across processes.
type DecisionService struct {
	lake       LakeGateway
	venueCache VenueCache
	eventRepo  EventRepository
}

func NewDecisionService(lake LakeGateway, venueCache VenueCache, eventRepo EventRepository) *DecisionService {
	return &DecisionService{
		lake:       lake,
		venueCache: venueCache,
		eventRepo:  eventRepo,
	}
}

// Recommend runs the full decision pipeline for one scenario context.
// An empty result after filtering is reported via Recommendation.NoMatch,
// not as an error.
func (s *DecisionService) Recommend(ctx context.Context, scenario domain.ScenarioContext) (domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return domain.Recommendation{}, fmt.Errorf("context error: %w", err)
	}

	start := time.Now()
	defer func() {
		metrics.RecommendLatency.Observe(time.Since(start).Seconds())
	}()

	model, err := s.trainModel(ctx)
	if err != nil {
		return domain.Recommendation{}, err
	}

	venues, err := s.loadVenues(ctx)
	if err != nil {
		return domain.Recommendation{}, err
	}

	if scenario.ActivePromoPlatforms == nil {
		scenario.ActivePromoPlatforms = s.ActivePromoPlatforms(ctx)
	}

	promoAvail := 0.0
	if len(scenario.ActivePromoPlatforms) > 0 {
		promoAvail = 1.0
	}

	rainFlag := 0.0
	if scenario.IsRaining {
		rainFlag = 1.0
	}

	lunchFlag := 0.0
	if scenario.CurrentHour >= lunchStartHour && scenario.CurrentHour <= lunchEndHour {
		lunchFlag = 1.0
	}

	results := make([]domain.RankedResult, 0, len(venues))
	for _, venue := range venues {
		if !passesHardFilters(scenario, venue) {
			continue
		}

		proba, err := model.PredictProba(featureRow(venue.AvgPrice, rainFlag, scenario.Temperature, promoAvail, lunchFlag, 0))
		if err != nil {
			return domain.Recommendation{}, fmt.Errorf("predict for %s: %w", venue.Name, err)
		}

		score, tags := scoreScenario(scenario.Mode, proba, venue)

		results = append(results, domain.RankedResult{
			Name:         venue.Name,
			Price:        venue.AvgPrice,
			Score:        score,
			Taste:        venue.TasteRating,
			Portion:      venue.Portion,
			ServeMinutes: venue.ServeMinutes,
			Tags:         tags,
			Venue:        venue,
		})
	}

	metrics.RecommendRequestsTotal.WithLabelValues(string(scenario.Mode)).Inc()

	if len(results) == 0 {
		rec := domain.Recommendation{Results: []domain.RankedResult{}, NoMatch: true}
		s.logEvent(ctx, scenario, rec)
		return rec, nil
	}

	// ties keep the original master iteration order
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	advice, err := s.takeawayAdvice(model, scenario, results[0].Venue, rainFlag, promoAvail, lunchFlag)
	if err != nil {
		return domain.Recommendation{}, err
	}
	results[0].TakeawayRecommendation = advice
	results[0].PromoPlatforms = scenario.ActivePromoPlatforms

	rec := domain.Recommendation{Results: results}
	s.logEvent(ctx, scenario, rec)

	return rec, nil
}

// takeawayAdvice re-queries the model for the top venue with the takeaway
// flag toggled. Takeaway wins on a strictly higher probability, or always in
// rushed mode.
func (s *DecisionService) takeawayAdvice(model *satisfaction.Model, scenario domain.ScenarioContext, venue domain.VenueRecord, rainFlag, promoAvail, lunchFlag float64) (string, error) {
	pTakeaway, err := model.PredictProba(featureRow(venue.AvgPrice, rainFlag, scenario.Temperature, promoAvail, lunchFlag, 1))
	if err != nil {
		return "", fmt.Errorf("predict takeaway: %w", err)
	}

	pDineIn, err := model.PredictProba(featureRow(venue.AvgPrice, rainFlag, scenario.Temperature, promoAvail, lunchFlag, 0))
	if err != nil {
		return "", fmt.Errorf("predict dine-in: %w", err)
	}

	if pTakeaway > pDineIn || scenario.Mode == domain.ModeRushed {
		return AdviceTakeaway, nil
	}

	return AdviceDineIn, nil
}

// trainModel fits a fresh tree from the freshest gold snapshot, with the
// takeaway method flag as the sixth feature.
func (s *DecisionService) trainModel(ctx context.Context) (*satisfaction.Model, error) {
	goldKey, err := s.lake.Latest(ctx, gold.GoldPrefix)
	if err != nil {
		return nil, fmt.Errorf("resolve latest gold: %w", err)
	}

	raw, err := s.lake.Get(ctx, goldKey)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", goldKey, err)
	}

	rows, err := gold.ParseCSV(raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", goldKey, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", domain.ErrNoData, goldKey)
	}

	samples := make([]satisfaction.Sample, 0, len(rows))
	for _, row := range rows {
		takeaway := 0.0
		if row.Method == "takeaway" {
			takeaway = 1.0
		}
		samples = append(samples, satisfaction.Sample{
			Features: featureRow(row.Price, float64(row.IsRain), row.Temperature, float64(row.HasPromo), float64(row.IsLunchTime), takeaway),
			Label:    row.Satisfaction,
		})
	}

	model, err := satisfaction.Fit(samples, satisfaction.Config{MaxDepth: engineMaxDepth, Seed: engineSeed})
	if err != nil {
		return nil, fmt.Errorf("train decision model: %w", err)
	}

	return model, nil
}

func featureRow(price int, rain, temperature, promo, lunch, takeaway float64) []float64 {
	return []float64{float64(price), rain, temperature, promo, lunch, takeaway}
}

func (s *DecisionService) loadVenues(ctx context.Context) ([]domain.VenueRecord, error) {
	if s.venueCache != nil {
		if venues, err := s.venueCache.GetVenues(ctx); err == nil && venues != nil {
			return venues, nil
		}
	}

	raw, err := s.lake.Get(ctx, master.SilverMasterKey)
	if err != nil {
		return nil, fmt.Errorf("load venue master: %w", err)
	}

	var venues []domain.VenueRecord
	if err := json.Unmarshal(raw, &venues); err != nil {
		return nil, fmt.Errorf("parse venue master: %w", err)
	}

	if s.venueCache != nil {
		if err := s.venueCache.SetVenues(ctx, venues); err != nil {
			logger.Warn("failed to cache venue master", "error", err)
		}
	}

	return venues, nil
}

// Venues exposes the cleaned master through the same read-through cache the
// engine itself uses.
func (s *DecisionService) Venues(ctx context.Context) ([]domain.VenueRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.loadVenues(ctx)
}

// ActivePromoPlatforms lists the distinct platforms in the freshest promo
// snapshot. No promos is a normal state, not an error.
func (s *DecisionService) ActivePromoPlatforms(ctx context.Context) []string {
	key, err := s.lake.Latest(ctx, silver.SilverPromoPrefix)
	if err != nil {
		return nil
	}

	raw, err := s.lake.Get(ctx, key)
	if err != nil {
		logger.Warn("failed to load promo snapshot", "key", key, "error", err)
		return nil
	}

	var snapshot domain.PromoSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		logger.Warn("failed to parse promo snapshot", "key", key, "error", err)
		return nil
	}

	seen := map[string]bool{}
	platforms := make([]string, 0, 3)
	for _, promo := range snapshot.Data {
		if !seen[promo.Platform] {
			seen[promo.Platform] = true
			platforms = append(platforms, promo.Platform)
		}
	}

	return platforms
}

// CurrentConditions resolves rain and temperature context from the freshest
// silver weather reading, falling back to calm defaults.
func (s *DecisionService) CurrentConditions(ctx context.Context) (bool, float64) {
	key, err := s.lake.Latest(ctx, silver.SilverWeatherPrefix)
	if err != nil {
		return false, 30.0
	}

	raw, err := s.lake.Get(ctx, key)
	if err != nil {
		return false, 30.0
	}

	var snapshot domain.WeatherSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return false, 30.0
	}

	return gold.IsRainCondition(snapshot.Data.Condition), snapshot.Data.Temperature
}

// logEvent persists the served recommendation best-effort; serving never
// fails because the audit write did.
func (s *DecisionService) logEvent(ctx context.Context, scenario domain.ScenarioContext, rec domain.Recommendation) {
	if s.eventRepo == nil {
		return
	}

	event := domain.RecommendationEvent{
		RequestID: uuid.NewString(),
		Mode:      string(scenario.Mode),
		NoMatch:   rec.NoMatch,
		Context: datatypes.JSONMap{
			"is_raining":         scenario.IsRaining,
			"temperature":        scenario.Temperature,
			"current_hour":       scenario.CurrentHour,
			"max_budget":         scenario.MaxBudget,
			"max_travel_minutes": scenario.MaxTravelMinutes,
			"promo_platforms":    scenario.ActivePromoPlatforms,
		},
	}
	if len(rec.Results) > 0 {
		event.VenueName = rec.Results[0].Name
		event.Score = rec.Results[0].Score
	}

	if err := s.eventRepo.SaveEvent(ctx, event); err != nil {
		logger.Warn("failed to save recommendation event", "error", err)
	}
}
