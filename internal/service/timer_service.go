package service

import (
	"context"
	"errors"
	"time"

	"github.com/SomuSingh11/timely/internal/cache"
	dom "github.com/SomuSingh11/timely/internal/domain"
	"github.com/SomuSingh11/timely/internal/logger"
	"github.com/SomuSingh11/timely/internal/repo"
	"github.com/SomuSingh11/timely/internal/utils"

	"github.com/jackc/pgx/v5"
)

var (
	ErrTimerActive    = errors.New("please stop the current timer before starting a new one")
	ErrAlreadyStopped = errors.New("time log already stopped")
)

// TimerService enforces the at-most-one-open-timer-per-user invariant.
//
// The invariant is not guarded by an in-process lock: the partial unique
// index on time_logs(user_id) WHERE end_time IS NULL makes the insert in
// Start atomic, so two concurrent starts cannot both succeed.
type TimerService struct {
	logs  repo.TimeLogRepo
	tasks repo.TaskRepo
	cache *cache.TrackCache
	now   func() time.Time
}

// NewTimerService creates a TimerService. If c is nil, caching is disabled.
func NewTimerService(logs repo.TimeLogRepo, tasks repo.TaskRepo, c *cache.TrackCache) *TimerService {
	return &TimerService{logs: logs, tasks: tasks, cache: c, now: time.Now}
}

// Start opens a new time log against the task and moves the task to
// IN_PROGRESS. Fails with ErrNotFound if the task is not owned by the
// user and with ErrTimerActive if a timer is already running.
func (s *TimerService) Start(ctx context.Context, userID, taskID string) (dom.TimeLog, error) {
	if _, err := s.tasks.GetByID(ctx, userID, taskID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.TimeLog{}, ErrNotFound
		}
		return dom.TimeLog{}, err
	}

	log, err := s.logs.CreateOpen(ctx, userID, taskID, s.now().UTC())
	if err != nil {
		if utils.IsUniqueViolation(err, "time_logs_one_open_per_user") {
			return dom.TimeLog{}, ErrTimerActive
		}
		return dom.TimeLog{}, err
	}

	if err := s.tasks.SetStatus(ctx, userID, taskID, dom.StatusInProgress); err != nil {
		// Don't leave a running timer behind a failed start.
		end := s.now().UTC()
		if _, stopErr := s.logs.Stop(ctx, userID, log.ID, end, int64(end.Sub(log.StartTime)/time.Second)); stopErr != nil {
			logger.Error("close time log after failed status update", "err", stopErr, "log_id", log.ID)
		}
		return dom.TimeLog{}, err
	}
	s.invalidateCache(ctx, userID)
	return log, nil
}

// Stop closes an open time log, recording end = now and
// duration = floor(end - start) in whole seconds. A second stop on the
// same log fails with ErrAlreadyStopped, never re-charges duration.
func (s *TimerService) Stop(ctx context.Context, userID, logID string) (dom.TimeLog, error) {
	existing, err := s.logs.GetByID(ctx, userID, logID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.TimeLog{}, ErrNotFound
		}
		return dom.TimeLog{}, err
	}
	if !existing.Open() {
		return dom.TimeLog{}, ErrAlreadyStopped
	}

	end := s.now().UTC()
	duration := int64(end.Sub(existing.StartTime) / time.Second) // floored

	log, err := s.logs.Stop(ctx, userID, logID, end, duration)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Lost a race with a concurrent stop.
			return dom.TimeLog{}, ErrAlreadyStopped
		}
		return dom.TimeLog{}, err
	}
	s.invalidateCache(ctx, userID)
	return log, nil
}

// Active returns the user's open time log, or nil if no timer runs.
// Should more than one open log ever exist, the most recently started
// one wins.
func (s *TimerService) Active(ctx context.Context, userID string) (*dom.TimeLog, error) {
	log, err := s.logs.Active(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

// List returns the user's time logs, optionally filtered by task.
func (s *TimerService) List(ctx context.Context, userID, taskID string) ([]dom.TimeLog, error) {
	return s.logs.List(ctx, userID, taskID)
}

func (s *TimerService) invalidateCache(ctx context.Context, userID string) {
	if s.cache != nil {
		_ = s.cache.InvalidateUser(ctx, userID)
	}
}
