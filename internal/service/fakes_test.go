package service

import (
	"context"
	"sort"
	"sync"
	"time"

	dom "github.com/SomuSingh11/timely/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// memStore is an in-memory stand-in for Postgres shared by the fake
// repos, so joins and cascade deletes behave like the real schema.
type memStore struct {
	mu    sync.Mutex
	tasks map[string]dom.Task
	logs  map[string]dom.TimeLog
	seq   int

	// failSetStatus, when set, makes every SetStatus call fail with it.
	failSetStatus error
}

func newMemStore() *memStore {
	return &memStore{
		tasks: make(map[string]dom.Task),
		logs:  make(map[string]dom.TimeLog),
	}
}

// nextTime hands out strictly increasing timestamps so ordering by
// created_at is deterministic.
func (s *memStore) nextTime() time.Time {
	s.seq++
	return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC).Add(time.Duration(s.seq) * time.Second)
}

type memTaskRepo struct{ s *memStore }

func (r *memTaskRepo) Create(_ context.Context, t dom.Task) (dom.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.ID = uuid.NewString()
	t.CreatedAt = r.s.nextTime()
	t.UpdatedAt = t.CreatedAt
	r.s.tasks[t.ID] = t
	return t, nil
}

func (r *memTaskRepo) GetByID(_ context.Context, userID, id string) (dom.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok || t.UserID != userID {
		return dom.Task{}, pgx.ErrNoRows
	}
	return t, nil
}

func (r *memTaskRepo) GetByIDs(_ context.Context, userID string, ids []string) ([]dom.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []dom.Task
	for _, id := range ids {
		if t, ok := r.s.tasks[id]; ok && t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTaskRepo) List(_ context.Context, userID string) ([]dom.TaskWithTotal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []dom.TaskWithTotal
	for _, t := range r.s.tasks {
		if t.UserID != userID {
			continue
		}
		var total int64
		for _, l := range r.s.logs {
			if l.TaskID == t.ID {
				total += l.DurationSeconds()
			}
		}
		out = append(out, dom.TaskWithTotal{Task: t, TotalTime: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memTaskRepo) Update(_ context.Context, userID, id string, patch dom.Task) (dom.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok || t.UserID != userID {
		return dom.Task{}, pgx.ErrNoRows
	}
	t.Title = patch.Title
	t.Description = patch.Description
	t.Status = patch.Status
	t.UpdatedAt = r.s.nextTime()
	r.s.tasks[id] = t
	return t, nil
}

func (r *memTaskRepo) SetStatus(_ context.Context, userID, id string, status dom.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failSetStatus != nil {
		return r.s.failSetStatus
	}
	t, ok := r.s.tasks[id]
	if !ok || t.UserID != userID {
		return nil
	}
	t.Status = status
	r.s.tasks[id] = t
	return nil
}

func (r *memTaskRepo) Delete(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok || t.UserID != userID {
		return nil
	}
	delete(r.s.tasks, id)
	// ON DELETE CASCADE
	for lid, l := range r.s.logs {
		if l.TaskID == id {
			delete(r.s.logs, lid)
		}
	}
	return nil
}

type memTimeLogRepo struct{ s *memStore }

func openTimerViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "time_logs_one_open_per_user"}
}

func (r *memTimeLogRepo) CreateOpen(_ context.Context, userID, taskID string, start time.Time) (dom.TimeLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.logs {
		if l.UserID == userID && l.EndTime == nil {
			return dom.TimeLog{}, openTimerViolation()
		}
	}
	l := dom.TimeLog{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		UserID:    userID,
		StartTime: start,
		TaskTitle: r.s.tasks[taskID].Title,
	}
	r.s.logs[l.ID] = l
	return l, nil
}

func (r *memTimeLogRepo) GetByID(_ context.Context, userID, id string) (dom.TimeLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.logs[id]
	if !ok || l.UserID != userID {
		return dom.TimeLog{}, pgx.ErrNoRows
	}
	l.TaskTitle = r.s.tasks[l.TaskID].Title
	return l, nil
}

func (r *memTimeLogRepo) List(_ context.Context, userID, taskID string) ([]dom.TimeLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []dom.TimeLog
	for _, l := range r.s.logs {
		if l.UserID != userID {
			continue
		}
		if taskID != "" && l.TaskID != taskID {
			continue
		}
		l.TaskTitle = r.s.tasks[l.TaskID].Title
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

func (r *memTimeLogRepo) Active(_ context.Context, userID string) (dom.TimeLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var best *dom.TimeLog
	for _, l := range r.s.logs {
		if l.UserID != userID || l.EndTime != nil {
			continue
		}
		l := l
		if best == nil || l.StartTime.After(best.StartTime) {
			best = &l
		}
	}
	if best == nil {
		return dom.TimeLog{}, pgx.ErrNoRows
	}
	best.TaskTitle = r.s.tasks[best.TaskID].Title
	return *best, nil
}

func (r *memTimeLogRepo) Stop(_ context.Context, userID, id string, end time.Time, duration int64) (dom.TimeLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.logs[id]
	if !ok || l.UserID != userID || l.EndTime != nil {
		return dom.TimeLog{}, pgx.ErrNoRows
	}
	l.EndTime = &end
	l.Duration = &duration
	r.s.logs[id] = l
	l.TaskTitle = r.s.tasks[l.TaskID].Title
	return l, nil
}

func (r *memTimeLogRepo) ListInWindow(_ context.Context, userID string, from, to time.Time) ([]dom.TimeLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []dom.TimeLog
	for _, l := range r.s.logs {
		if l.UserID != userID {
			continue
		}
		if l.StartTime.Before(from) || l.StartTime.After(to) {
			continue
		}
		l.TaskTitle = r.s.tasks[l.TaskID].Title
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

// addLog seeds a log directly, bypassing the open-timer guard, for
// tests that need historical or pathological data.
func (s *memStore) addLog(userID, taskID string, start time.Time, durationSec int64, open bool) dom.TimeLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := dom.TimeLog{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		UserID:    userID,
		StartTime: start,
	}
	if !open {
		end := start.Add(time.Duration(durationSec) * time.Second)
		l.EndTime = &end
		l.Duration = &durationSec
	}
	s.logs[l.ID] = l
	return l
}
