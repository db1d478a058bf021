package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	dom "github.com/SomuSingh11/timely/internal/domain"
)

// stubGenerator records the last prompt and returns a canned reply.
type stubGenerator struct {
	reply  string
	err    error
	prompt string
	waits  bool
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompt = prompt
	if g.waits {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return g.reply, g.err
}

func newInsightFixture(t *testing.T, gen *stubGenerator) (*memStore, *TaskService, *InsightService) {
	t.Helper()
	s := newMemStore()
	tasks := &memTaskRepo{s: s}
	logs := &memTimeLogRepo{s: s}
	summary := NewSummaryService(logs, tasks, nil)
	return s, NewTaskService(tasks, logs, nil), NewInsightService(summary, tasks, gen, time.Second)
}

func TestDailyInsightsResult(t *testing.T) {
	gen := &stubGenerator{reply: "## Productivity Score\n87/100"}
	s, taskSvc, svc := newInsightFixture(t, gen)

	write := mustCreateTask(t, taskSvc, "u1", "Write report")
	review := mustCreateTask(t, taskSvc, "u1", "Review PRs")

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	s.addLog("u1", write.ID, day.Add(9*time.Hour), 1800, false)
	s.addLog("u1", write.ID, day.Add(13*time.Hour), 900, false)
	s.addLog("u1", review.ID, day.Add(15*time.Hour), 600, false)

	res, err := svc.Daily(context.Background(), "u1", day)
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if res.Insights != gen.reply {
		t.Errorf("insights = %q, want generator output verbatim", res.Insights)
	}
	if res.TasksAnalyzed != 2 || res.TotalSessions != 3 {
		t.Errorf("tasksAnalyzed = %d, totalSessions = %d, want 2 and 3", res.TasksAnalyzed, res.TotalSessions)
	}
	if !res.Date.Equal(day) {
		t.Errorf("date = %v, want %v", res.Date, day)
	}
	if !strings.Contains(gen.prompt, "Write report") || !strings.Contains(gen.prompt, "Review PRs") {
		t.Errorf("prompt missing task titles:\n%s", gen.prompt)
	}
}

func TestDailyInsightsGeneratorFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("upstream 500")}
	s, taskSvc, svc := newInsightFixture(t, gen)

	task := mustCreateTask(t, taskSvc, "u1", "Anything")
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	s.addLog("u1", task.ID, day.Add(9*time.Hour), 60, false)

	if _, err := svc.Daily(context.Background(), "u1", day); !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("err = %v, want ErrGenerationFailed", err)
	}
}

func TestDailyInsightsTimeout(t *testing.T) {
	gen := &stubGenerator{waits: true}
	s := newMemStore()
	tasks := &memTaskRepo{s: s}
	logs := &memTimeLogRepo{s: s}
	svc := NewInsightService(NewSummaryService(logs, tasks, nil), tasks, gen, 10*time.Millisecond)

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	if _, err := svc.Daily(context.Background(), "u1", day); !errors.Is(err, ErrGenerationTimeout) {
		t.Fatalf("err = %v, want ErrGenerationTimeout", err)
	}
}

func TestGenerateTitleTrimsQuotes(t *testing.T) {
	gen := &stubGenerator{reply: "\"Fix the login redirect loop\"\n"}
	_, _, svc := newInsightFixture(t, gen)

	got, err := svc.Generate(context.Background(), "login bug", ModeTitle)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "Fix the login redirect loop" {
		t.Errorf("got %q", got)
	}
	if !strings.Contains(gen.prompt, "Title: login bug") {
		t.Errorf("prompt = %q", gen.prompt)
	}
}

func TestGenerateTrimsAtMostOneQuotePair(t *testing.T) {
	gen := &stubGenerator{reply: "''double-quoted''"}
	_, _, svc := newInsightFixture(t, gen)

	got, err := svc.Generate(context.Background(), "x", ModeDescription)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "'double-quoted'" {
		t.Errorf("got %q, want one quote pair stripped", got)
	}
}

func TestGenerateDescriptionPrompt(t *testing.T) {
	gen := &stubGenerator{reply: "Do the thing."}
	_, _, svc := newInsightFixture(t, gen)

	if _, err := svc.Generate(context.Background(), "refactor config", ModeDescription); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(gen.prompt, "Task description: \"refactor config\"") {
		t.Errorf("prompt = %q", gen.prompt)
	}
}

func TestBuildInsightPromptDeterministicContent(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	start := day.Add(9*time.Hour + 15*time.Minute)
	end := start.Add(30 * time.Minute)
	dur := int64(1800)

	sum := dom.DailySummary{Date: day}
	sum.Totals.TotalTimeTracked = 5400
	sum.Totals.TasksWorkedOn = 1
	sum.Totals.InProgressTasks = 1
	sum.Tasks = []dom.TaskSummary{{
		ID: "t1", Title: "Write report", Status: dom.StatusInProgress,
		TotalTime: 5400, Sessions: 2,
	}}
	afternoon := day.Add(14 * time.Hour)
	afternoonEnd := afternoon.Add(time.Hour)
	afternoonDur := int64(3600)
	sum.Logs = []dom.TimeLog{
		{ID: "l2", TaskID: "t1", StartTime: afternoon, EndTime: &afternoonEnd, Duration: &afternoonDur},
		{ID: "l1", TaskID: "t1", StartTime: start, EndTime: &end, Duration: &dur},
	}

	prompt := BuildInsightPrompt(sum, map[string]string{"t1": "quarterly numbers"})

	for _, want := range []string{
		"**Date:** Sat Mar 14 2026",
		"- **Total Time Tracked:** 1h 30m",
		"- **Morning Sessions:** 1 | **Afternoon/Evening:** 0",
		"### 1. Write report [IN_PROGRESS]",
		"**Description:** quarterly numbers",
		"- **Sessions:** 2 session(s)",
		"- **Average Session Duration:** 45min",
		"1. 09:15 AM - 09:45 AM (30min)",
		"2. 02:00 PM - 03:00 PM (60min)",
		"### 1. Productivity Score (0-100)",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	if again := BuildInsightPrompt(sum, map[string]string{"t1": "quarterly numbers"}); again != prompt {
		t.Error("prompt not deterministic for identical input")
	}
}

func TestBuildInsightPromptOpenSession(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	sum := dom.DailySummary{Date: day}
	sum.Tasks = []dom.TaskSummary{{ID: "t1", Title: "Running", Status: dom.StatusInProgress, Sessions: 1}}
	sum.Logs = []dom.TimeLog{{ID: "l1", TaskID: "t1", StartTime: day.Add(10 * time.Hour)}}

	prompt := BuildInsightPrompt(sum, nil)
	if !strings.Contains(prompt, "10:00 AM - In Progress (0min)") {
		t.Errorf("open session not rendered as In Progress:\n%s", prompt)
	}
}
