package service

import (
	"fmt"
	"strings"
	"time"

	dom "github.com/SomuSingh11/timely/internal/domain"
)

// BuildInsightPrompt renders the day's statistics into the markdown
// prompt sent to the text-generation model. The output is deterministic
// for a given summary: same data, same prompt.
func BuildInsightPrompt(sum dom.DailySummary, descriptions map[string]string) string {
	// Sessions per task, oldest first.
	sessions := make(map[string][]dom.TimeLog, len(sum.Tasks))
	for i := len(sum.Logs) - 1; i >= 0; i-- {
		l := sum.Logs[i]
		sessions[l.TaskID] = append(sessions[l.TaskID], l)
	}

	morning, afternoon := 0, 0
	for _, t := range sum.Tasks {
		logs := sessions[t.ID]
		if len(logs) == 0 {
			continue
		}
		if logs[0].StartTime.UTC().Hour() < 12 {
			morning++
		} else {
			afternoon++
		}
	}

	var b strings.Builder
	b.WriteString("You are an expert productivity analyst and career coach. Analyze this day's work data deeply and provide actionable, personalized insights in markdown format.\n\n")
	fmt.Fprintf(&b, "**Date:** %s\n\n", sum.Date.Format("Mon Jan 02 2006"))

	b.WriteString("## Overall Summary\n")
	fmt.Fprintf(&b, "- **Total Time Tracked:** %s\n", formatHoursMinutes(sum.Totals.TotalTimeTracked))
	fmt.Fprintf(&b, "- **Tasks Worked On:** %d\n", sum.Totals.TasksWorkedOn)
	fmt.Fprintf(&b, "- **Completed:** %d | **In Progress:** %d | **Pending:** %d\n",
		sum.Totals.CompletedTasks, sum.Totals.InProgressTasks, sum.Totals.PendingTasks)
	fmt.Fprintf(&b, "- **Morning Sessions:** %d | **Afternoon/Evening:** %d\n\n", morning, afternoon)

	b.WriteString("## Detailed Task Analysis\n\n")
	for i, t := range sum.Tasks {
		fmt.Fprintf(&b, "### %d. %s [%s]\n", i+1, t.Title, t.Status)
		if desc := descriptions[t.ID]; desc != "" {
			fmt.Fprintf(&b, "**Description:** %s\n", desc)
		}
		fmt.Fprintf(&b, "- **Total Time:** %s\n", formatHoursMinutes(t.TotalTime))
		fmt.Fprintf(&b, "- **Sessions:** %d session(s)\n", t.Sessions)
		avg := int64(0)
		if t.Sessions > 0 {
			avg = t.TotalTime / int64(t.Sessions)
		}
		fmt.Fprintf(&b, "- **Average Session Duration:** %dmin\n", avg/60)
		b.WriteString("- **Time Breakdown:**\n")
		for j, l := range sessions[t.ID] {
			fmt.Fprintf(&b, "  %d. %s - %s (%dmin)\n",
				j+1, clockTime(l.StartTime), endClockTime(l), l.DurationSeconds()/60)
		}
		b.WriteString("\n")
	}

	b.WriteString(`## Required Insights

Based on the above detailed task information, provide:

### 1. Productivity Score (0-100)
Give a numerical score with specific reasoning based on time utilization
efficiency, task completion rate, focus session lengths and work
distribution throughout the day.

### 2. Task-Specific Highlights
For each significant task: what went well, optimal working patterns
observed, time efficiency.

### 3. Task-Specific Recommendations
Time allocation suggestions, session length optimization, best time of
day to work on similar tasks. If any task took unusually long or short,
suggest why.

### 4. Focus & Context Switching Analysis
Number of task switches, impact on productivity, suggestions for better
task batching, ideal session lengths identified.

### 5. Tomorrow's Strategic Plan
Recommend specific time blocks for pending tasks, a task priority order
and realistic time allocations based on today's patterns.

Keep the tone professional yet encouraging. Use data-driven insights with
specific numbers from the tasks.`)

	return b.String()
}

func formatHoursMinutes(seconds int64) string {
	return fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
}

func clockTime(t time.Time) string {
	return t.UTC().Format("03:04 PM")
}

func endClockTime(l dom.TimeLog) string {
	if l.EndTime == nil {
		return "In Progress"
	}
	return clockTime(*l.EndTime)
}
