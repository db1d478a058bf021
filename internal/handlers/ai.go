package handlers

import (
	"errors"
	"net/http"

	"github.com/SomuSingh11/timely/internal/dto"
	"github.com/SomuSingh11/timely/internal/logger"
	"github.com/SomuSingh11/timely/internal/service"

	"github.com/gin-gonic/gin"
)

// AIHandler handles ad-hoc title/description generation.
type AIHandler struct {
	svc *service.InsightService
}

func NewAIHandler(svc *service.InsightService) *AIHandler {
	return &AIHandler{svc: svc}
}

// Generate godoc
// @Summary      Generate a task title or description from a prompt
// @Tags         ai
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.GenerateRequest  true  "Prompt and mode"
// @Success      200   {object}  dto.GenerateResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Failure      504   {object}  map[string]string
// @Router       /ai/generate [post]
func (h *AIHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required"})
		return
	}

	content, err := h.svc.Generate(c.Request.Context(), req.Prompt, service.GenerateMode(req.Mode))
	if err != nil {
		if errors.Is(err, service.ErrGenerationTimeout) {
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Failed to generate content"})
			return
		}
		logger.Error("ai generate failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate content"})
		return
	}
	c.JSON(http.StatusOK, dto.GenerateResponse{Content: content})
}
