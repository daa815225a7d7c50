package domain

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// ScenarioMode names the user intent that selects the scoring policy.
// The set is closed; decision scoring dispatches on it exhaustively.
type ScenarioMode string

const (
	ModeBalanced  ScenarioMode = "balanced"
	ModeIndulgent ScenarioMode = "indulgent"
	ModeBudget    ScenarioMode = "budget"
	ModeRushed    ScenarioMode = "rushed"
)

func ParseScenarioMode(s string) (ScenarioMode, error) {
	switch ScenarioMode(s) {
	case ModeBalanced, ModeIndulgent, ModeBudget, ModeRushed:
		return ScenarioMode(s), nil
	}
	return "", fmt.Errorf("unknown scenario mode: %q", s)
}

// ScenarioContext is the per-request input bundle for the decision engine.
type ScenarioContext struct {
	Mode                 ScenarioMode
	IsRaining            bool
	Temperature          float64
	CurrentHour          int
	MaxBudget            int
	MaxTravelMinutes     int
	PortionFilter        []Portion
	ActivePromoPlatforms []string
}

// RankedResult is one venue that survived the hard filters, with its
// scenario score and tags. TakeawayRecommendation is filled for the
// top-ranked venue only.
type RankedResult struct {
	Name                   string   `json:"name"`
	Price                  int      `json:"price"`
	Score                  float64  `json:"score"`
	Taste                  float64  `json:"taste"`
	Portion                Portion  `json:"portion"`
	ServeMinutes           int      `json:"serve_minutes"`
	Tags                   []string `json:"tags"`
	TakeawayRecommendation string   `json:"takeaway_recommendation,omitempty"`
	PromoPlatforms         []string `json:"promo_platforms,omitempty"`

	Venue VenueRecord `json:"-"`
}

// Recommendation is the engine's consumer-facing output. NoMatch is the
// explicit empty-result signal: no venue survived filtering and the caller
// should prompt filter relaxation.
type Recommendation struct {
	Results []RankedResult `json:"results"`
	NoMatch bool           `json:"no_match"`
}

// RecommendationEvent is the best-effort audit row persisted after a
// recommendation is served.
type RecommendationEvent struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	RequestID string            `gorm:"column:request_id;not null" json:"request_id"`
	Mode      string            `gorm:"column:mode;not null" json:"mode"`
	VenueName string            `gorm:"column:venue_name" json:"venue_name"`
	Score     float64           `gorm:"column:score" json:"score"`
	NoMatch   bool              `gorm:"column:no_match" json:"no_match"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Context   datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context"`
}

func (RecommendationEvent) TableName() string {
	return "recommendation_events"
}
