package domain

import "time"

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// Valid reports whether s is one of the known task statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task is the domain entity for a tracked task.
// Does not depend on Gin, Postgres or Redis.
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string // empty means absent
	Status      Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskWithTotal is a task annotated with the summed duration of all its
// time logs (open logs count as zero).
type TaskWithTotal struct {
	Task
	TotalTime int64
}
