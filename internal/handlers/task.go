package handlers

import (
	"errors"
	"net/http"

	"github.com/SomuSingh11/timely/internal/auth"
	dom "github.com/SomuSingh11/timely/internal/domain"
	"github.com/SomuSingh11/timely/internal/dto"
	"github.com/SomuSingh11/timely/internal/logger"
	"github.com/SomuSingh11/timely/internal/service"

	"github.com/gin-gonic/gin"
)

// TaskHandler handles task CRUD.
type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// Create godoc
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateTaskRequest  true  "Task body"
// @Success      201   {object}  dto.TaskResponse
// @Failure      400   {object}  map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	userID := auth.UserIDFromContext(c)
	t, err := h.svc.Create(c.Request.Context(), userID, req.Title, req.Description, dom.Status(req.Status))
	if err != nil {
		if errors.Is(err, service.ErrEmptyTitle) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
			return
		}
		logger.Error("create task failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, taskToResponse(t))
}

// List godoc
// @Summary      List all tasks with total tracked time
// @Tags         tasks
// @Produce      json
// @Security     CookieAuth
// @Success      200  {array}   dto.TaskResponse
// @Failure      500  {object}  map[string]string
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	list, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		logger.Error("list tasks failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	out := make([]dto.TaskResponse, len(list))
	for i, t := range list {
		out[i] = taskToResponse(t.Task)
		total := t.TotalTime
		out[i].TotalTime = &total
	}
	c.JSON(http.StatusOK, out)
}

// GetByID godoc
// @Summary      Get a task with its time logs
// @Tags         tasks
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  dto.TaskWithLogsResponse
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	t, logs, err := h.svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		logger.Error("get task failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	resp := dto.TaskWithLogsResponse{TaskResponse: taskToResponse(t)}
	resp.TimeLogs = make([]dto.TimeLogResponse, len(logs))
	for i, l := range logs {
		resp.TimeLogs[i] = timeLogToResponse(l)
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      string  true  "Task ID"
// @Param        body  body      dto.UpdateTaskRequest  true  "Partial update"
// @Success      200   {object}  dto.UpdateTaskResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /tasks/{id} [patch]
func (h *TaskHandler) Update(c *gin.Context) {
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var status *dom.Status
	if req.Status != nil {
		s := dom.Status(*req.Status)
		status = &s
	}

	userID := auth.UserIDFromContext(c)
	t, err := h.svc.Update(c.Request.Context(), userID, c.Param("id"), req.Title, req.Description, status)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		if errors.Is(err, service.ErrEmptyPatch) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No fields provided for update"})
			return
		}
		if errors.Is(err, service.ErrEmptyTitle) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
			return
		}
		logger.Error("update task failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}
	c.JSON(http.StatusOK, dto.UpdateTaskResponse{
		Message: "Task updated successfully",
		Task:    taskToResponse(t),
	})
}

// Delete godoc
// @Summary      Delete a task and all its time logs
// @Tags         tasks
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	userID := auth.UserIDFromContext(c)
	err := h.svc.Delete(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		logger.Error("delete task failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func taskToResponse(t dom.Task) dto.TaskResponse {
	resp := dto.TaskResponse{
		ID:        t.ID,
		Title:     t.Title,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if t.Description != "" {
		desc := t.Description
		resp.Description = &desc
	}
	return resp
}

func timeLogToResponse(l dom.TimeLog) dto.TimeLogResponse {
	return dto.TimeLogResponse{
		ID:        l.ID,
		TaskID:    l.TaskID,
		StartTime: l.StartTime,
		EndTime:   l.EndTime,
		Duration:  l.Duration,
		Task:      dto.TaskRef{ID: l.TaskID, Title: l.TaskTitle},
	}
}
