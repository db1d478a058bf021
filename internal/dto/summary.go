package dto

import (
	"time"

	dom "github.com/SomuSingh11/timely/internal/domain"
)

// SummaryLog is a flattened time log inside a daily summary.
type SummaryLog struct {
	ID        string     `json:"id"`
	TaskID    string     `json:"taskId"`
	TaskTitle string     `json:"taskTitle"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Duration  *int64     `json:"duration"`
}

// DailySummaryResponse is returned by GET /summary/daily.
type DailySummaryResponse struct {
	Date     string            `json:"date"`
	Summary  dom.SummaryTotals `json:"summary"`
	Tasks    []dom.TaskSummary `json:"tasks"`
	TimeLogs []SummaryLog      `json:"timeLogs"`
}

// InsightsRequest is the JSON body for POST /summary/insights.
type InsightsRequest struct {
	Date Date `json:"date"` // optional: "2026-02-19" or RFC3339; defaults to today
}

// InsightsResponse is returned by POST /summary/insights.
type InsightsResponse struct {
	Insights      string `json:"insights"`
	Date          string `json:"date"`
	TasksAnalyzed int    `json:"tasksAnalyzed"`
	TotalSessions int    `json:"totalSessions"`
}
