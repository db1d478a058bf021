package service

import (
	"context"
	"errors"
	"strings"

	"github.com/SomuSingh11/timely/internal/cache"
	dom "github.com/SomuSingh11/timely/internal/domain"
	"github.com/SomuSingh11/timely/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmptyTitle = errors.New("title is required")
	ErrEmptyPatch = errors.New("no fields provided for update")
)

// TaskService owns task CRUD. All operations are scoped to the calling
// user id passed in explicitly.
type TaskService struct {
	tasks repo.TaskRepo
	logs  repo.TimeLogRepo
	cache *cache.TrackCache
	sf    singleflight.Group
}

// NewTaskService creates a TaskService. If c is nil, caching is disabled.
func NewTaskService(tasks repo.TaskRepo, logs repo.TimeLogRepo, c *cache.TrackCache) *TaskService {
	return &TaskService{tasks: tasks, logs: logs, cache: c}
}

// Create stores a new task with a trimmed title. Whitespace-only titles
// are rejected; an empty description normalizes to absent.
func (s *TaskService) Create(ctx context.Context, userID, title, description string, status dom.Status) (dom.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return dom.Task{}, ErrEmptyTitle
	}
	if status == "" {
		status = dom.StatusPending
	}

	t, err := s.tasks.Create(ctx, dom.Task{
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Status:      status,
	})
	if err != nil {
		return dom.Task{}, err
	}
	s.invalidateCache(ctx, userID)
	return t, nil
}

// List returns all tasks of the user, newest first, with total tracked time.
func (s *TaskService) List(ctx context.Context, userID string) ([]dom.TaskWithTotal, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("tasks:"+userID, func() (interface{}, error) {
			if list, err := s.cache.GetTaskList(ctx, userID); err == nil && list != nil {
				return list, nil
			}
			list, err := s.tasks.List(ctx, userID)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetTaskList(ctx, userID, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.TaskWithTotal), nil
	}
	return s.tasks.List(ctx, userID)
}

// Get returns one task with all its time logs.
func (s *TaskService) Get(ctx context.Context, userID, id string) (dom.Task, []dom.TimeLog, error) {
	t, err := s.tasks.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, nil, ErrNotFound
		}
		return dom.Task{}, nil, err
	}
	logs, err := s.logs.List(ctx, userID, id)
	if err != nil {
		return dom.Task{}, nil, err
	}
	return t, logs, nil
}

// Update applies the provided fields only. At least one field must be
// present; a provided title is re-trimmed and rejected if it trims empty.
func (s *TaskService) Update(ctx context.Context, userID, id string, title, description *string, status *dom.Status) (dom.Task, error) {
	if title == nil && description == nil && status == nil {
		return dom.Task{}, ErrEmptyPatch
	}
	existing, err := s.tasks.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	patch := existing
	if title != nil {
		patch.Title = strings.TrimSpace(*title)
		if patch.Title == "" {
			return dom.Task{}, ErrEmptyTitle
		}
	}
	if description != nil {
		patch.Description = strings.TrimSpace(*description)
	}
	if status != nil {
		patch.Status = *status
	}
	t, err := s.tasks.Update(ctx, userID, id, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Task{}, ErrNotFound
		}
		return dom.Task{}, err
	}
	s.invalidateCache(ctx, userID)
	return t, nil
}

// Delete removes the task and all of its time logs (store-level cascade).
func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	_, err := s.tasks.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if err := s.tasks.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.invalidateCache(ctx, userID)
	return nil
}

func (s *TaskService) invalidateCache(ctx context.Context, userID string) {
	if s.cache != nil {
		_ = s.cache.InvalidateUser(ctx, userID)
	}
}
