package dto

import "time"

// StartTimeLogRequest is the JSON body for POST /timelogs.
type StartTimeLogRequest struct {
	TaskID string `json:"taskId" binding:"required"`
}

// TaskRef is the joined task id/title carried by time log responses.
type TaskRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// TimeLogResponse is one time log as returned by the API. EndTime and
// Duration are null while the timer runs.
type TimeLogResponse struct {
	ID        string     `json:"id"`
	TaskID    string     `json:"taskId"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Duration  *int64     `json:"duration"`
	Task      TaskRef    `json:"task"`
}
