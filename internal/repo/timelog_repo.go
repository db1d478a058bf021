package repo

import (
	"context"
	"time"

	dom "github.com/SomuSingh11/timely/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TimeLogRepo provides time log persistence. Joined reads fill
// dom.TimeLog.TaskTitle.
type TimeLogRepo interface {
	// CreateOpen inserts a new open log (end_time and duration NULL).
	// The partial unique index time_logs_one_open_per_user makes two
	// concurrent inserts for the same user impossible: the loser gets a
	// unique violation instead of a second open log.
	CreateOpen(ctx context.Context, userID, taskID string, start time.Time) (dom.TimeLog, error)
	GetByID(ctx context.Context, userID, id string) (dom.TimeLog, error)
	// List returns the user's logs, newest start first. Empty taskID
	// means no task filter.
	List(ctx context.Context, userID, taskID string) ([]dom.TimeLog, error)
	// Active returns the open log, most recently started first.
	// pgx.ErrNoRows if there is none.
	Active(ctx context.Context, userID string) (dom.TimeLog, error)
	// Stop closes an open log. The WHERE clause requires end_time IS
	// NULL, so a concurrent double stop loses with pgx.ErrNoRows.
	Stop(ctx context.Context, userID, id string, end time.Time, duration int64) (dom.TimeLog, error)
	// ListInWindow returns logs whose start falls in [from, to], start ascending.
	ListInWindow(ctx context.Context, userID string, from, to time.Time) ([]dom.TimeLog, error)
}

// PGTimeLogRepo implements TimeLogRepo with Postgres.
type PGTimeLogRepo struct {
	db *pgxpool.Pool
}

func NewPGTimeLogRepo(db *pgxpool.Pool) *PGTimeLogRepo {
	return &PGTimeLogRepo{db: db}
}

const timeLogJoinedCols = `l.id, l.task_id, l.user_id, l.start_time, l.end_time, l.duration, t.title`

func scanTimeLog(row interface{ Scan(...any) error }) (dom.TimeLog, error) {
	var l dom.TimeLog
	err := row.Scan(&l.ID, &l.TaskID, &l.UserID, &l.StartTime, &l.EndTime, &l.Duration, &l.TaskTitle)
	return l, err
}

func (r *PGTimeLogRepo) CreateOpen(ctx context.Context, userID, taskID string, start time.Time) (dom.TimeLog, error) {
	query := `
		WITH inserted AS (
			INSERT INTO time_logs (id, task_id, user_id, start_time)
			VALUES ($1, $2, $3, $4)
			RETURNING id, task_id, user_id, start_time, end_time, duration
		)
		SELECT l.id, l.task_id, l.user_id, l.start_time, l.end_time, l.duration, t.title
		FROM inserted l JOIN tasks t ON t.id = l.task_id`
	return scanTimeLog(r.db.QueryRow(ctx, query, uuid.NewString(), taskID, userID, start))
}

func (r *PGTimeLogRepo) GetByID(ctx context.Context, userID, id string) (dom.TimeLog, error) {
	query := `
		SELECT ` + timeLogJoinedCols + `
		FROM time_logs l JOIN tasks t ON t.id = l.task_id
		WHERE l.id = $1 AND l.user_id = $2`
	return scanTimeLog(r.db.QueryRow(ctx, query, id, userID))
}

func (r *PGTimeLogRepo) List(ctx context.Context, userID, taskID string) ([]dom.TimeLog, error) {
	query := `
		SELECT ` + timeLogJoinedCols + `
		FROM time_logs l JOIN tasks t ON t.id = l.task_id
		WHERE l.user_id = $1 AND ($2 = '' OR l.task_id = $2)
		ORDER BY l.start_time DESC`
	rows, err := r.db.Query(ctx, query, userID, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.TimeLog
	for rows.Next() {
		l, err := scanTimeLog(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func (r *PGTimeLogRepo) Active(ctx context.Context, userID string) (dom.TimeLog, error) {
	query := `
		SELECT ` + timeLogJoinedCols + `
		FROM time_logs l JOIN tasks t ON t.id = l.task_id
		WHERE l.user_id = $1 AND l.end_time IS NULL
		ORDER BY l.start_time DESC
		LIMIT 1`
	return scanTimeLog(r.db.QueryRow(ctx, query, userID))
}

func (r *PGTimeLogRepo) Stop(ctx context.Context, userID, id string, end time.Time, duration int64) (dom.TimeLog, error) {
	query := `
		WITH stopped AS (
			UPDATE time_logs SET end_time = $3, duration = $4
			WHERE id = $1 AND user_id = $2 AND end_time IS NULL
			RETURNING id, task_id, user_id, start_time, end_time, duration
		)
		SELECT l.id, l.task_id, l.user_id, l.start_time, l.end_time, l.duration, t.title
		FROM stopped l JOIN tasks t ON t.id = l.task_id`
	return scanTimeLog(r.db.QueryRow(ctx, query, id, userID, end, duration))
}

func (r *PGTimeLogRepo) ListInWindow(ctx context.Context, userID string, from, to time.Time) ([]dom.TimeLog, error) {
	query := `
		SELECT ` + timeLogJoinedCols + `
		FROM time_logs l JOIN tasks t ON t.id = l.task_id
		WHERE l.user_id = $1 AND l.start_time >= $2 AND l.start_time <= $3
		ORDER BY l.start_time ASC`
	rows, err := r.db.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.TimeLog
	for rows.Next() {
		l, err := scanTimeLog(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
