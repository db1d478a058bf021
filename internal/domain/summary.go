package domain

import "time"

// SummaryTotals are the headline numbers for one day.
type SummaryTotals struct {
	TotalTimeTracked int64 `json:"totalTimeTracked"`
	TasksWorkedOn    int   `json:"tasksWorkedOn"`
	CompletedTasks   int   `json:"completedTasks"`
	InProgressTasks  int   `json:"inProgressTasks"`
	PendingTasks     int   `json:"pendingTasks"`
}

// TaskSummary is the per-task slice of a day: time and session count
// restricted to logs whose start falls inside the day window.
type TaskSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Status    Status `json:"status"`
	TotalTime int64  `json:"totalTime"`
	Sessions  int    `json:"sessions"`
}

// DailySummary is the aggregation result for one user and one day window.
// It is a pure read: computing it never mutates the store.
//
// An open log whose start falls in the window is included with a zero
// duration. A session still running across midnight is therefore
// undercounted until it is stopped.
type DailySummary struct {
	Date   time.Time
	Totals SummaryTotals
	Tasks  []TaskSummary
	Logs   []TimeLog // start time descending
}
