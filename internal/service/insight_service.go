package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/SomuSingh11/timely/internal/ai"
	"github.com/SomuSingh11/timely/internal/logger"
	"github.com/SomuSingh11/timely/internal/repo"
)

var (
	ErrGenerationFailed  = errors.New("generation failed")
	ErrGenerationTimeout = errors.New("generation timed out")
)

// GenerateMode selects the instruction block wrapped around an ad-hoc
// generation prompt.
type GenerateMode string

const (
	ModeTitle       GenerateMode = "title"
	ModeDescription GenerateMode = "description"
)

// InsightResult is the outcome of one insights generation.
type InsightResult struct {
	Insights      string
	Date          time.Time
	TasksAnalyzed int
	TotalSessions int
}

// InsightService renders a day's statistics into a prompt and forwards it
// to the text-generation client. Generated text is returned verbatim; an
// upstream failure surfaces as a single generic error with no fallback
// content.
type InsightService struct {
	summary *SummaryService
	tasks   repo.TaskRepo
	gen     ai.Generator
	timeout time.Duration
}

// NewInsightService returns a new InsightService. timeout bounds every
// call to the generator.
func NewInsightService(summary *SummaryService, tasks repo.TaskRepo, gen ai.Generator, timeout time.Duration) *InsightService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &InsightService{summary: summary, tasks: tasks, gen: gen, timeout: timeout}
}

// Daily builds the day's insight prompt and returns the generated text.
func (s *InsightService) Daily(ctx context.Context, userID string, date time.Time) (InsightResult, error) {
	sum, err := s.summary.Daily(ctx, userID, date)
	if err != nil {
		return InsightResult{}, err
	}

	var taskIDs []string
	for _, t := range sum.Tasks {
		taskIDs = append(taskIDs, t.ID)
	}
	tasks, err := s.tasks.GetByIDs(ctx, userID, taskIDs)
	if err != nil {
		return InsightResult{}, err
	}
	descriptions := make(map[string]string, len(tasks))
	for _, t := range tasks {
		descriptions[t.ID] = t.Description
	}

	prompt := BuildInsightPrompt(sum, descriptions)

	text, err := s.generate(ctx, prompt)
	if err != nil {
		return InsightResult{}, err
	}

	return InsightResult{
		Insights:      text,
		Date:          sum.Date,
		TasksAnalyzed: len(sum.Tasks),
		TotalSessions: len(sum.Logs),
	}, nil
}

// Generate wraps an ad-hoc prompt in the mode-specific instruction block
// and returns the generated text with a single surrounding quote pair
// stripped.
func (s *InsightService) Generate(ctx context.Context, prompt string, mode GenerateMode) (string, error) {
	var sb strings.Builder
	switch mode {
	case ModeTitle:
		sb.WriteString("Generate a short, clear task title (5-8 words maximum).\n")
		sb.WriteString("Make it action-oriented and specific.\n")
		sb.WriteString("Do NOT use quotes, colons, or formatting.\n")
		sb.WriteString("Do NOT be overly formal or verbose.\n")
		sb.WriteString("Just return the plain title text.\n\n")
		sb.WriteString("Title: " + prompt)
	default:
		sb.WriteString("Write a simple, practical task description.\n")
		sb.WriteString("Be direct and actionable. Focus on what needs to be done.\n")
		sb.WriteString("Do NOT be overly formal or verbose.\n")
		sb.WriteString("Just return the plain description text without quotes or formatting.\n\n")
		sb.WriteString("Task description: \"" + prompt + "\"")
	}

	text, err := s.generate(ctx, sb.String())
	if err != nil {
		return "", err
	}
	return trimSurroundingQuotes(strings.TrimSpace(text)), nil
}

func (s *InsightService) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		logger.Error("ai generation failed", "err", err)
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrGenerationTimeout
		}
		return "", ErrGenerationFailed
	}
	return text, nil
}

// trimSurroundingQuotes removes at most one leading and one trailing
// quote character (" or ').
func trimSurroundingQuotes(s string) string {
	if len(s) > 0 && (s[0] == '"' || s[0] == '\'') {
		s = s[1:]
	}
	if len(s) > 0 && (s[len(s)-1] == '"' || s[len(s)-1] == '\'') {
		s = s[:len(s)-1]
	}
	return s
}
