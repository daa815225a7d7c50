package router

import (
	"makanApa/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendHandler) {
	reco := api.Group("/recommendations")
	reco.GET("", handler.Recommend)
}

func SetupVenueRoutes(api *echo.Group, handler *rest.VenueHandler) {
	venues := api.Group("/venues")
	venues.GET("", handler.GetAllVenues)
}

func SetupPipelineRoutes(api *echo.Group, handler *rest.PipelineHandler, authRequired echo.MiddlewareFunc) {
	admin := api.Group("/admin/pipeline", authRequired)
	admin.POST("/run", handler.RunPipeline)
}
