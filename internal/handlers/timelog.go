package handlers

import (
	"errors"
	"net/http"

	"github.com/SomuSingh11/timely/internal/auth"
	"github.com/SomuSingh11/timely/internal/dto"
	"github.com/SomuSingh11/timely/internal/logger"
	"github.com/SomuSingh11/timely/internal/service"

	"github.com/gin-gonic/gin"
)

// TimeLogHandler handles the stopwatch: start, stop, active, list.
type TimeLogHandler struct {
	svc *service.TimerService
}

func NewTimeLogHandler(svc *service.TimerService) *TimeLogHandler {
	return &TimeLogHandler{svc: svc}
}

// Start godoc
// @Summary      Start a timer on a task
// @Tags         timelogs
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.StartTimeLogRequest  true  "Task to track"
// @Success      201   {object}  dto.TimeLogResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /timelogs [post]
func (h *TimeLogHandler) Start(c *gin.Context) {
	var req dto.StartTimeLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task ID is required"})
		return
	}

	userID := auth.UserIDFromContext(c)
	log, err := h.svc.Start(c.Request.Context(), userID, req.TaskID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		case errors.Is(err, service.ErrTimerActive):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please stop the current timer before starting a new one"})
		default:
			logger.Error("start timer failed", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start time tracking"})
		}
		return
	}
	c.JSON(http.StatusCreated, timeLogToResponse(log))
}

// Stop godoc
// @Summary      Stop a running timer
// @Tags         timelogs
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Time log ID"
// @Success      200  {object}  dto.TimeLogResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /timelogs/{id}/stop [patch]
func (h *TimeLogHandler) Stop(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	log, err := h.svc.Stop(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Time log not found"})
		case errors.Is(err, service.ErrAlreadyStopped):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Time log already stopped"})
		default:
			logger.Error("stop timer failed", "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to stop time tracking"})
		}
		return
	}
	c.JSON(http.StatusOK, timeLogToResponse(log))
}

// Active godoc
// @Summary      Get the currently running timer, or null
// @Tags         timelogs
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.TimeLogResponse
// @Failure      500  {object}  map[string]string
// @Router       /timelogs/active [get]
func (h *TimeLogHandler) Active(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	log, err := h.svc.Active(c.Request.Context(), userID)
	if err != nil {
		logger.Error("fetch active timer failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch active time log"})
		return
	}
	if log == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, timeLogToResponse(*log))
}

// List godoc
// @Summary      List time logs, optionally filtered by task
// @Tags         timelogs
// @Produce      json
// @Security     CookieAuth
// @Param        taskId  query     string  false  "Task ID filter"
// @Success      200     {array}   dto.TimeLogResponse
// @Failure      500     {object}  map[string]string
// @Router       /timelogs [get]
func (h *TimeLogHandler) List(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	logs, err := h.svc.List(c.Request.Context(), userID, c.Query("taskId"))
	if err != nil {
		logger.Error("list time logs failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch time logs"})
		return
	}
	out := make([]dto.TimeLogResponse, len(logs))
	for i, l := range logs {
		out[i] = timeLogToResponse(l)
	}
	c.JSON(http.StatusOK, out)
}
