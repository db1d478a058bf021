package service

import (
	"context"
	"time"

	"github.com/SomuSingh11/timely/internal/cache"
	dom "github.com/SomuSingh11/timely/internal/domain"
	"github.com/SomuSingh11/timely/internal/repo"

	"golang.org/x/sync/singleflight"
)

// DayWindow returns the inclusive UTC range covering one calendar day:
// [00:00:00.000, 23:59:59.999]. Day boundaries are UTC, not server-local.
func DayWindow(date time.Time) (time.Time, time.Time) {
	date = date.UTC()
	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	to := from.Add(24*time.Hour - time.Millisecond)
	return from, to
}

// SummaryService computes per-day, per-task statistics over time logs.
type SummaryService struct {
	logs  repo.TimeLogRepo
	tasks repo.TaskRepo
	cache *cache.TrackCache
	sf    singleflight.Group
}

// NewSummaryService creates a SummaryService. If c is nil, caching is disabled.
func NewSummaryService(logs repo.TimeLogRepo, tasks repo.TaskRepo, c *cache.TrackCache) *SummaryService {
	return &SummaryService{logs: logs, tasks: tasks, cache: c}
}

// Daily aggregates the user's day: total seconds tracked, distinct tasks
// touched with a status breakdown, and a per-task total/session count
// restricted to logs whose start falls in the day window. Pure read.
func (s *SummaryService) Daily(ctx context.Context, userID string, date time.Time) (dom.DailySummary, error) {
	from, _ := DayWindow(date)
	day := from.Format("2006-01-02")

	if s.cache != nil {
		v, err, _ := s.sf.Do("summary:"+userID+":"+day, func() (interface{}, error) {
			if cached, err := s.cache.GetDailySummary(ctx, userID, day); err == nil && cached != nil {
				return *cached, nil
			}
			sum, err := s.compute(ctx, userID, date)
			if err != nil {
				return dom.DailySummary{}, err
			}
			_ = s.cache.SetDailySummary(ctx, userID, day, sum)
			return sum, nil
		})
		if err != nil {
			return dom.DailySummary{}, err
		}
		return v.(dom.DailySummary), nil
	}
	return s.compute(ctx, userID, date)
}

func (s *SummaryService) compute(ctx context.Context, userID string, date time.Time) (dom.DailySummary, error) {
	from, to := DayWindow(date)

	logs, err := s.logs.ListInWindow(ctx, userID, from, to)
	if err != nil {
		return dom.DailySummary{}, err
	}

	// Distinct tasks touched, in order of first session.
	var taskIDs []string
	seen := make(map[string]bool)
	for _, l := range logs {
		if !seen[l.TaskID] {
			seen[l.TaskID] = true
			taskIDs = append(taskIDs, l.TaskID)
		}
	}

	tasks, err := s.tasks.GetByIDs(ctx, userID, taskIDs)
	if err != nil {
		return dom.DailySummary{}, err
	}
	byID := make(map[string]dom.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	sum := dom.DailySummary{Date: from}
	sum.Totals.TasksWorkedOn = len(tasks)

	perTask := make(map[string]*dom.TaskSummary, len(taskIDs))
	for _, id := range taskIDs {
		t, ok := byID[id]
		if !ok {
			continue
		}
		switch t.Status {
		case dom.StatusCompleted:
			sum.Totals.CompletedTasks++
		case dom.StatusInProgress:
			sum.Totals.InProgressTasks++
		case dom.StatusPending:
			sum.Totals.PendingTasks++
		}
		perTask[id] = &dom.TaskSummary{ID: t.ID, Title: t.Title, Status: t.Status}
	}

	for _, l := range logs {
		sum.Totals.TotalTimeTracked += l.DurationSeconds()
		if ts, ok := perTask[l.TaskID]; ok {
			ts.TotalTime += l.DurationSeconds()
			ts.Sessions++
		}
	}

	for _, id := range taskIDs {
		if ts, ok := perTask[id]; ok {
			sum.Tasks = append(sum.Tasks, *ts)
		}
	}

	// Endpoint contract: logs newest first.
	sum.Logs = make([]dom.TimeLog, 0, len(logs))
	for i := len(logs) - 1; i >= 0; i-- {
		sum.Logs = append(sum.Logs, logs[i])
	}

	return sum, nil
}
