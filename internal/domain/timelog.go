package domain

import "time"

// TimeLog is one stopwatch run against a task. An open log has a nil
// EndTime and nil Duration; both are set together exactly once on stop.
type TimeLog struct {
	ID        string
	TaskID    string
	UserID    string
	StartTime time.Time
	EndTime   *time.Time
	Duration  *int64 // whole seconds, floored

	// TaskTitle is filled by joined reads for display. Not a column of
	// the time_logs table.
	TaskTitle string
}

// Open reports whether the log is still running.
func (l TimeLog) Open() bool {
	return l.EndTime == nil
}

// DurationSeconds returns the recorded duration, treating open logs as zero.
func (l TimeLog) DurationSeconds() int64 {
	if l.Duration == nil {
		return 0
	}
	return *l.Duration
}
