package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/sma-adp-api/pkg/errors"
	"github.com/noah-isme/sma-adp-api/pkg/response"
)

type askRequest struct {
	Question string `json:"question" binding:"required"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

type assistantAsker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// AssistantHandler exposes the AI assistant passthrough endpoint.
type AssistantHandler struct {
	service assistantAsker
}

// NewAssistantHandler constructs the handler.
func NewAssistantHandler(svc assistantAsker) *AssistantHandler {
	return &AssistantHandler{service: svc}
}

// Ask godoc
// @Summary Ask the AI assistant a free-text question
// @Tags Assistant
// @Accept json
// @Produce json
// @Param payload body askRequest true "Question payload"
// @Success 200 {object} response.Envelope
// @Router /ai/ask [post]
func (h *AssistantHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid ask payload"))
		return
	}
	answer, err := h.service.Ask(c.Request.Context(), req.Question)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, askResponse{Answer: answer}, nil)
}
