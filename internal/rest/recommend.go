package rest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"makanApa/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendHandler struct {
		validate        *validator.Validate
		decisionService DecisionService
	}

	DecisionService interface {
		Recommend(ctx context.Context, scenario domain.ScenarioContext) (domain.Recommendation, error)
		CurrentConditions(ctx context.Context) (bool, float64)
	}

	RecommendQuery struct {
		Mode      string `query:"mode" validate:"required,oneof=balanced indulgent budget rushed"`
		Budget    int    `query:"budget" validate:"gte=0"`
		MaxTravel int    `query:"max_travel" validate:"gte=0"`
		Portions  string `query:"portions"`
		Hour      int    `query:"hour" validate:"gte=0,lte=23"`
	}

	ResponseError struct {
		Message string `json:"message"`
	}
)

func NewRecommendHandler(svc DecisionService) *RecommendHandler {
	return &RecommendHandler{
		validate:        validator.New(),
		decisionService: svc,
	}
}

// GET /api/v1/recommendations?mode=budget&max_budget=20000
func (h *RecommendHandler) Recommend(c echo.Context) error {
	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	mode, err := domain.ParseScenarioMode(q.Mode)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	portions, err := parsePortions(q.Portions)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx := c.Request().Context()
	raining, temperature := h.decisionService.CurrentConditions(ctx)

	// hour is an optional override for what-if queries
	hour := time.Now().Hour()
	if c.QueryParam("hour") != "" {
		hour = q.Hour
	}

	scenario := domain.ScenarioContext{
		Mode:             mode,
		IsRaining:        raining,
		Temperature:      temperature,
		CurrentHour:      hour,
		MaxBudget:        q.Budget,
		MaxTravelMinutes: q.MaxTravel,
		PortionFilter:    portions,
	}

	rec, err := h.decisionService.Recommend(ctx, scenario)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rec))
}

func parsePortions(raw string) ([]domain.Portion, error) {
	if raw == "" {
		return nil, nil
	}

	var portions []domain.Portion
	for _, part := range strings.Split(raw, ",") {
		portion, err := domain.ParsePortion(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		portions = append(portions, portion)
	}

	return portions, nil
}
