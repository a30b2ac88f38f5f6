package repo

import (
	"context"

	dom "taskboard/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SprintRepo is the persistence contract for sprints.
type SprintRepo interface {
	GetAll(ctx context.Context) ([]*dom.Sprint, error)
	GetByID(ctx context.Context, id string) (*dom.Sprint, error)
	Create(ctx context.Context, s *dom.Sprint) (*dom.Sprint, error)
	Update(ctx context.Context, s *dom.Sprint) (*dom.Sprint, error)
	Delete(ctx context.Context, id string) error
}

type PGSprintRepo struct {
	db *pgxpool.Pool
}

func NewPGSprintRepo(db *pgxpool.Pool) *PGSprintRepo {
	return &PGSprintRepo{db: db}
}

func (r *PGSprintRepo) GetAll(ctx context.Context) ([]*dom.Sprint, error) {
	query := `SELECT id, name, start_date, end_date, status FROM sprints ORDER BY start_date ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*dom.Sprint
	for rows.Next() {
		var rec dom.SprintRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.StartDate, &rec.EndDate, &rec.Status); err != nil {
			return nil, err
		}
		list = append(list, dom.ReconstituteSprint(rec))
	}
	return list, rows.Err()
}

func (r *PGSprintRepo) GetByID(ctx context.Context, id string) (*dom.Sprint, error) {
	var rec dom.SprintRecord
	err := r.db.QueryRow(ctx,
		`SELECT id, name, start_date, end_date, status FROM sprints WHERE id = $1`, id,
	).Scan(&rec.ID, &rec.Name, &rec.StartDate, &rec.EndDate, &rec.Status)
	if err != nil {
		return nil, err
	}
	return dom.ReconstituteSprint(rec), nil
}

func (r *PGSprintRepo) Create(ctx context.Context, s *dom.Sprint) (*dom.Sprint, error) {
	rec := s.Record()
	query := `
		INSERT INTO sprints (id, name, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, start_date, end_date, status`
	var out dom.SprintRecord
	err := r.db.QueryRow(ctx, query, rec.ID, rec.Name, rec.StartDate, rec.EndDate, rec.Status).Scan(
		&out.ID, &out.Name, &out.StartDate, &out.EndDate, &out.Status,
	)
	if err != nil {
		return nil, err
	}
	return dom.ReconstituteSprint(out), nil
}

func (r *PGSprintRepo) Update(ctx context.Context, s *dom.Sprint) (*dom.Sprint, error) {
	rec := s.Record()
	query := `
		UPDATE sprints SET name = $2, start_date = $3, end_date = $4, status = $5
		WHERE id = $1
		RETURNING id, name, start_date, end_date, status`
	var out dom.SprintRecord
	err := r.db.QueryRow(ctx, query, rec.ID, rec.Name, rec.StartDate, rec.EndDate, rec.Status).Scan(
		&out.ID, &out.Name, &out.StartDate, &out.EndDate, &out.Status,
	)
	if err != nil {
		return nil, err
	}
	return dom.ReconstituteSprint(out), nil
}

func (r *PGSprintRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sprints WHERE id = $1`, id)
	return err
}
