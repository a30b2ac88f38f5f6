package repo

import (
	"context"

	dom "taskboard/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TaskRepo is the persistence contract for tasks. Implementations may be
// backed by Postgres or anything else that can hold a TaskRecord.
type TaskRepo interface {
	GetAll(ctx context.Context) ([]*dom.Task, error)
	GetByID(ctx context.Context, id string) (*dom.Task, error)
	Create(ctx context.Context, t *dom.Task) (*dom.Task, error)
	Update(ctx context.Context, t *dom.Task) (*dom.Task, error)
	Delete(ctx context.Context, id string) error
}

type PGTaskRepo struct {
	db *pgxpool.Pool
}

func NewPGTaskRepo(db *pgxpool.Pool) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

const taskColumns = `id, title, description, status, priority, progress, due_date, created_at, sprint_id, comments`

func (r *PGTaskRepo) GetAll(ctx context.Context) ([]*dom.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*dom.Task
	for rows.Next() {
		var rec dom.TaskRecord
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Description, &rec.Status, &rec.Priority,
			&rec.Progress, &rec.DueDate, &rec.CreatedAt, &rec.SprintID, &rec.Comments); err != nil {
			return nil, err
		}
		list = append(list, dom.ReconstituteTask(rec))
	}
	return list, rows.Err()
}

func (r *PGTaskRepo) GetByID(ctx context.Context, id string) (*dom.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	var rec dom.TaskRecord
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.Title, &rec.Description, &rec.Status, &rec.Priority,
		&rec.Progress, &rec.DueDate, &rec.CreatedAt, &rec.SprintID, &rec.Comments,
	)
	if err != nil {
		return nil, err
	}
	return dom.ReconstituteTask(rec), nil
}

func (r *PGTaskRepo) Create(ctx context.Context, t *dom.Task) (*dom.Task, error) {
	rec := t.Record()
	query := `
		INSERT INTO tasks (id, title, description, status, priority, progress, due_date, created_at, sprint_id, comments)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + taskColumns
	var out dom.TaskRecord
	err := r.db.QueryRow(ctx, query,
		rec.ID, rec.Title, rec.Description, rec.Status, rec.Priority,
		rec.Progress, rec.DueDate, rec.CreatedAt, rec.SprintID, rec.Comments,
	).Scan(
		&out.ID, &out.Title, &out.Description, &out.Status, &out.Priority,
		&out.Progress, &out.DueDate, &out.CreatedAt, &out.SprintID, &out.Comments,
	)
	if err != nil {
		return nil, err
	}
	return dom.ReconstituteTask(out), nil
}

func (r *PGTaskRepo) Update(ctx context.Context, t *dom.Task) (*dom.Task, error) {
	rec := t.Record()
	query := `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, priority = $5, progress = $6,
		    due_date = $7, sprint_id = $8, comments = $9
		WHERE id = $1
		RETURNING ` + taskColumns
	var out dom.TaskRecord
	err := r.db.QueryRow(ctx, query,
		rec.ID, rec.Title, rec.Description, rec.Status, rec.Priority,
		rec.Progress, rec.DueDate, rec.SprintID, rec.Comments,
	).Scan(
		&out.ID, &out.Title, &out.Description, &out.Status, &out.Priority,
		&out.Progress, &out.DueDate, &out.CreatedAt, &out.SprintID, &out.Comments,
	)
	if err != nil {
		return nil, err
	}
	return dom.ReconstituteTask(out), nil
}

func (r *PGTaskRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}
