package dto

import "time"

// CreateTaskRequest is the JSON body for POST /tasks.
type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"max=2000"`
	Status      string `json:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
}

// UpdateTaskRequest is the JSON body for PATCH /tasks/{id}.
// Every field is independently optional; at least one must be present.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Status      *string `json:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
}

// TaskResponse is one task as returned by the API.
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	TotalTime   *int64    `json:"totalTime,omitempty"`
}

// TaskWithLogsResponse is returned by GET /tasks/{id}.
type TaskWithLogsResponse struct {
	TaskResponse
	TimeLogs []TimeLogResponse `json:"timeLogs"`
}

// UpdateTaskResponse is returned by PATCH /tasks/{id}.
type UpdateTaskResponse struct {
	Message string       `json:"message"`
	Task    TaskResponse `json:"task"`
}
