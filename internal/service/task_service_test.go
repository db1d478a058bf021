package service

import (
	"context"
	"errors"
	"testing"
	"time"

	dom "github.com/SomuSingh11/timely/internal/domain"
)

func strPtr(s string) *string            { return &s }
func statusPtr(s dom.Status) *dom.Status { return &s }

func TestCreateTaskTrimsTitle(t *testing.T) {
	_, taskSvc, _ := newTimerFixture(t)

	task, err := taskSvc.Create(context.Background(), "u1", "  Buy milk  ", "", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Title != "Buy milk" {
		t.Errorf("title = %q, want %q", task.Title, "Buy milk")
	}
	if task.Status != dom.StatusPending {
		t.Errorf("status = %s, want PENDING", task.Status)
	}
}

func TestCreateTaskEmptyTitle(t *testing.T) {
	_, taskSvc, _ := newTimerFixture(t)

	for _, title := range []string{"", "   ", "\t\n"} {
		if _, err := taskSvc.Create(context.Background(), "u1", title, "", ""); !errors.Is(err, ErrEmptyTitle) {
			t.Errorf("create(%q) err = %v, want ErrEmptyTitle", title, err)
		}
	}
}

func TestCreateTaskNormalizesDescription(t *testing.T) {
	_, taskSvc, _ := newTimerFixture(t)

	task, err := taskSvc.Create(context.Background(), "u1", "With desc", "  do the thing  ", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Description != "do the thing" {
		t.Errorf("description = %q", task.Description)
	}

	blank, err := taskSvc.Create(context.Background(), "u1", "No desc", "   ", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if blank.Description != "" {
		t.Errorf("blank description should normalize to absent, got %q", blank.Description)
	}
}

func TestUpdateTaskEmptyPatch(t *testing.T) {
	_, taskSvc, _ := newTimerFixture(t)
	task := mustCreateTask(t, taskSvc, "u1", "Patch me")

	if _, err := taskSvc.Update(context.Background(), "u1", task.ID, nil, nil, nil); !errors.Is(err, ErrEmptyPatch) {
		t.Fatalf("err = %v, want ErrEmptyPatch", err)
	}
}

func TestUpdateTaskAppliesOnlyProvidedFields(t *testing.T) {
	_, taskSvc, _ := newTimerFixture(t)
	task, err := taskSvc.Create(context.Background(), "u1", "Original", "keep me", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := taskSvc.Update(context.Background(), "u1", task.ID, nil, nil, statusPtr(dom.StatusCompleted))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != dom.StatusCompleted {
		t.Errorf("status = %s, want COMPLETED", updated.Status)
	}
	if updated.Title != "Original" || updated.Description != "keep me" {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestUpdateTaskRejectsWhitespaceTitle(t *testing.T) {
	_, taskSvc, _ := newTimerFixture(t)
	task := mustCreateTask(t, taskSvc, "u1", "Keep title")

	if _, err := taskSvc.Update(context.Background(), "u1", task.ID, strPtr("   "), nil, nil); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("err = %v, want ErrEmptyTitle", err)
	}

	got, _, err := taskSvc.Get(context.Background(), "u1", task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Keep title" {
		t.Errorf("title mutated by rejected update: %q", got.Title)
	}
}

func TestUpdateUnknownTask(t *testing.T) {
	_, taskSvc, _ := newTimerFixture(t)
	if _, err := taskSvc.Update(context.Background(), "u1", "nope", strPtr("x"), nil, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListTasksTotalsAndOrder(t *testing.T) {
	s, taskSvc, _ := newTimerFixture(t)
	older := mustCreateTask(t, taskSvc, "u1", "Older")
	newer := mustCreateTask(t, taskSvc, "u1", "Newer")
	mustCreateTask(t, taskSvc, "u2", "Not mine")

	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	s.addLog("u1", older.ID, base, 120, false)
	s.addLog("u1", older.ID, base.Add(time.Hour), 30, false)
	s.addLog("u1", older.ID, base.Add(2*time.Hour), 0, true) // open: counts as zero

	list, err := taskSvc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].ID != newer.ID || list[1].ID != older.ID {
		t.Errorf("order = [%s, %s], want newest first", list[0].Title, list[1].Title)
	}
	if list[1].TotalTime != 150 {
		t.Errorf("totalTime = %d, want 150", list[1].TotalTime)
	}
	if list[0].TotalTime != 0 {
		t.Errorf("untracked totalTime = %d, want 0", list[0].TotalTime)
	}
}

func TestGetTaskScopedToOwner(t *testing.T) {
	_, taskSvc, _ := newTimerFixture(t)
	task := mustCreateTask(t, taskSvc, "u1", "Mine")

	if _, _, err := taskSvc.Get(context.Background(), "u2", task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-user get err = %v, want ErrNotFound", err)
	}
}

func TestDeleteTaskCascadesToTimeLogs(t *testing.T) {
	s, taskSvc, timerSvc := newTimerFixture(t)
	task := mustCreateTask(t, taskSvc, "u1", "Doomed")

	base := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		s.addLog("u1", task.ID, base.Add(time.Duration(i)*time.Hour), 60, false)
	}

	if err := taskSvc.Delete(context.Background(), "u1", task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, _, err := taskSvc.Get(context.Background(), "u1", task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("task still present after delete")
	}
	logs, err := timerSvc.List(context.Background(), "u1", task.ID)
	if err != nil {
		t.Fatalf("list logs: %v", err)
	}
	if len(logs) != 0 {
		t.Fatalf("logs after cascade delete = %d, want 0", len(logs))
	}
}

func TestDeleteUnknownTask(t *testing.T) {
	_, taskSvc, _ := newTimerFixture(t)
	if err := taskSvc.Delete(context.Background(), "u1", "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
