package repo

import (
	"context"

	dom "github.com/SomuSingh11/timely/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TaskRepo provides task persistence. All reads and writes are scoped to
// the owning user id.
type TaskRepo interface {
	Create(ctx context.Context, t dom.Task) (dom.Task, error)
	GetByID(ctx context.Context, userID, id string) (dom.Task, error)
	GetByIDs(ctx context.Context, userID string, ids []string) ([]dom.Task, error)
	List(ctx context.Context, userID string) ([]dom.TaskWithTotal, error)
	Update(ctx context.Context, userID, id string, patch dom.Task) (dom.Task, error)
	SetStatus(ctx context.Context, userID, id string, status dom.Status) error
	// Delete removes the task and, by contract, every time log that
	// references it (ON DELETE CASCADE on time_logs.task_id).
	Delete(ctx context.Context, userID, id string) error
}

// PGTaskRepo implements TaskRepo with Postgres.
type PGTaskRepo struct {
	db *pgxpool.Pool
}

func NewPGTaskRepo(db *pgxpool.Pool) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

func (r *PGTaskRepo) Create(ctx context.Context, t dom.Task) (dom.Task, error) {
	query := `
		INSERT INTO tasks (id, user_id, title, description, status)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)
		RETURNING id, user_id, title, COALESCE(description, ''), status, created_at, updated_at`
	var out dom.Task
	err := r.db.QueryRow(ctx, query, uuid.NewString(), t.UserID, t.Title, t.Description, t.Status).Scan(
		&out.ID, &out.UserID, &out.Title, &out.Description, &out.Status,
		&out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGTaskRepo) GetByID(ctx context.Context, userID, id string) (dom.Task, error) {
	query := `
		SELECT id, user_id, title, COALESCE(description, ''), status, created_at, updated_at
		FROM tasks WHERE id = $1 AND user_id = $2`
	var t dom.Task
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status,
		&t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *PGTaskRepo) GetByIDs(ctx context.Context, userID string, ids []string) ([]dom.Task, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, user_id, title, COALESCE(description, ''), status, created_at, updated_at
		FROM tasks WHERE user_id = $1 AND id = ANY($2)`
	rows, err := r.db.Query(ctx, query, userID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Task
	for rows.Next() {
		var t dom.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// List returns all tasks of the user, newest first, each with the summed
// duration of its time logs (open logs count as zero).
func (r *PGTaskRepo) List(ctx context.Context, userID string) ([]dom.TaskWithTotal, error) {
	query := `
		SELECT t.id, t.user_id, t.title, COALESCE(t.description, ''), t.status,
		       t.created_at, t.updated_at,
		       COALESCE(SUM(l.duration), 0)
		FROM tasks t
		LEFT JOIN time_logs l ON l.task_id = t.id
		WHERE t.user_id = $1
		GROUP BY t.id
		ORDER BY t.created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.TaskWithTotal
	for rows.Next() {
		var t dom.TaskWithTotal
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status,
			&t.CreatedAt, &t.UpdatedAt, &t.TotalTime); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *PGTaskRepo) Update(ctx context.Context, userID, id string, patch dom.Task) (dom.Task, error) {
	query := `
		UPDATE tasks SET title = $3, description = NULLIF($4, ''), status = $5, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, title, COALESCE(description, ''), status, created_at, updated_at`
	var t dom.Task
	err := r.db.QueryRow(ctx, query, id, userID, patch.Title, patch.Description, patch.Status).Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status,
		&t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *PGTaskRepo) SetStatus(ctx context.Context, userID, id string, status dom.Status) error {
	_, err := r.db.Exec(ctx,
		`UPDATE tasks SET status = $3, updated_at = NOW() WHERE id = $1 AND user_id = $2`,
		id, userID, status)
	return err
}

func (r *PGTaskRepo) Delete(ctx context.Context, userID, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}
