package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/SomuSingh11/timely/internal/auth"
	dom "github.com/SomuSingh11/timely/internal/domain"
	"github.com/SomuSingh11/timely/internal/dto"
	"github.com/SomuSingh11/timely/internal/logger"
	"github.com/SomuSingh11/timely/internal/service"

	"github.com/gin-gonic/gin"
)

// SummaryHandler handles daily aggregation and AI-generated insights.
type SummaryHandler struct {
	summarySvc *service.SummaryService
	insightSvc *service.InsightService
}

func NewSummaryHandler(summarySvc *service.SummaryService, insightSvc *service.InsightService) *SummaryHandler {
	return &SummaryHandler{summarySvc: summarySvc, insightSvc: insightSvc}
}

// Daily godoc
// @Summary      Daily time-tracking summary
// @Tags         summary
// @Produce      json
// @Security     CookieAuth
// @Param        date  query     string  false  "Day (YYYY-MM-DD, UTC). Defaults to today."
// @Success      200   {object}  dto.DailySummaryResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /summary/daily [get]
func (h *SummaryHandler) Daily(c *gin.Context) {
	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	userID := auth.UserIDFromContext(c)
	sum, err := h.summarySvc.Daily(c.Request.Context(), userID, date)
	if err != nil {
		logger.Error("daily summary failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch daily summary"})
		return
	}
	c.JSON(http.StatusOK, summaryToResponse(sum))
}

// Insights godoc
// @Summary      AI-generated narrative insights for a day
// @Tags         summary
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.InsightsRequest  true  "Day to analyze"
// @Success      200   {object}  dto.InsightsResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Failure      504   {object}  map[string]string
// @Router       /summary/insights [post]
func (h *SummaryHandler) Insights(c *gin.Context) {
	var req dto.InsightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := auth.UserIDFromContext(c)
	res, err := h.insightSvc.Daily(c.Request.Context(), userID, req.Date.Or(time.Now().UTC()))
	if err != nil {
		if errors.Is(err, service.ErrGenerationTimeout) {
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Failed to generate insights"})
			return
		}
		logger.Error("insights failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate insights"})
		return
	}
	c.JSON(http.StatusOK, dto.InsightsResponse{
		Insights:      res.Insights,
		Date:          res.Date.Format(time.RFC3339),
		TasksAnalyzed: res.TasksAnalyzed,
		TotalSessions: res.TotalSessions,
	})
}

func summaryToResponse(sum dom.DailySummary) dto.DailySummaryResponse {
	resp := dto.DailySummaryResponse{
		Date:    sum.Date.Format(time.RFC3339),
		Summary: sum.Totals,
		Tasks:   sum.Tasks,
	}
	if resp.Tasks == nil {
		resp.Tasks = []dom.TaskSummary{}
	}
	resp.TimeLogs = make([]dto.SummaryLog, len(sum.Logs))
	for i, l := range sum.Logs {
		resp.TimeLogs[i] = dto.SummaryLog{
			ID:        l.ID,
			TaskID:    l.TaskID,
			TaskTitle: l.TaskTitle,
			StartTime: l.StartTime,
			EndTime:   l.EndTime,
			Duration:  l.Duration,
		}
	}
	return resp
}
