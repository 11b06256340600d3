package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-adp-api/internal/dto"
	"github.com/noah-isme/sma-adp-api/internal/service"
	"github.com/noah-isme/sma-adp-api/pkg/response"
)

type scheduleGenerator interface {
	Generate(ctx context.Context) (*dto.TimetableResponse, error)
}

// ScheduleGeneratorHandler exposes the whole-institution timetable solve.
type ScheduleGeneratorHandler struct {
	service scheduleGenerator
}

// NewScheduleGeneratorHandler constructs the handler.
func NewScheduleGeneratorHandler(svc *service.ScheduleGeneratorService) *ScheduleGeneratorHandler {
	return &ScheduleGeneratorHandler{service: svc}
}

// Generate godoc
// @Summary Generate a whole-institution weekly timetable
// @Tags Scheduler
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedule/generate [post]
func (h *ScheduleGeneratorHandler) Generate(c *gin.Context) {
	result, err := h.service.Generate(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
