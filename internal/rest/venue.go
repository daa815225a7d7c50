package rest

import (
	"context"
	"net/http"

	"makanApa/domain"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type (
	VenueHandler struct {
		venueService VenueService
	}

	VenueService interface {
		Venues(ctx context.Context) ([]domain.VenueRecord, error)
	}
)

func NewVenueHandler(svc VenueService) *VenueHandler {
	return &VenueHandler{venueService: svc}
}

// GET /api/v1/venues
func (h *VenueHandler) GetAllVenues(c echo.Context) error {
	venues, err := h.venueService.Venues(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(venues))
}
