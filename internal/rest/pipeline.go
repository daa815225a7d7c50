package rest

import (
	"context"
	"net/http"

	"makanApa/business/pipeline"
	"makanApa/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type (
	PipelineHandler struct {
		runner PipelineRunner
	}

	PipelineRunner interface {
		Run(ctx context.Context) (pipeline.Report, error)
	}
)

func NewPipelineHandler(runner PipelineRunner) *PipelineHandler {
	return &PipelineHandler{runner: runner}
}

// POST /api/v1/admin/pipeline/run
func (h *PipelineHandler) RunPipeline(c echo.Context) error {
	report, err := h.runner.Run(c.Request().Context())
	if err != nil {
		logger.Error("pipeline run failed", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(report))
}
