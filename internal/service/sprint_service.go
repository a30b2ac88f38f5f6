package service

import (
	"context"
	"errors"
	"strings"
	"time"

	dom "taskboard/internal/domain"
	"taskboard/internal/repo"

	"github.com/jackc/pgx/v5"
)

// SprintService is a thin pass-through to the sprint repository with the
// entity factory on create.
type SprintService struct {
	repo repo.SprintRepo
}

func NewSprintService(r repo.SprintRepo) *SprintService {
	return &SprintService{repo: r}
}

// Create makes a new sprint in PLANNING and persists it.
func (s *SprintService) Create(ctx context.Context, name string, startDate, endDate time.Time) (*dom.Sprint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &dom.ValidationError{Reason: "sprint name is required"}
	}
	return s.repo.Create(ctx, dom.NewSprint(name, startDate, endDate))
}

// List returns all sprints.
func (s *SprintService) List(ctx context.Context) ([]*dom.Sprint, error) {
	return s.repo.GetAll(ctx)
}

// GetByID returns a single sprint.
func (s *SprintService) GetByID(ctx context.Context, id string) (*dom.Sprint, error) {
	sp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dom.ErrNotFound
		}
		return nil, err
	}
	return sp, nil
}

// Start moves a sprint to ACTIVE.
func (s *SprintService) Start(ctx context.Context, id string) (*dom.Sprint, error) {
	return s.transition(ctx, id, (*dom.Sprint).Start)
}

// Complete moves a sprint to COMPLETED.
func (s *SprintService) Complete(ctx context.Context, id string) (*dom.Sprint, error) {
	return s.transition(ctx, id, (*dom.Sprint).Complete)
}

// Delete removes a sprint. Tasks keep their sprint reference; the board's
// backlog view is driven by the task side only. Admin only.
func (s *SprintService) Delete(ctx context.Context, id string, actor dom.Actor) error {
	if !actor.IsAdmin() {
		return dom.ErrPermissionDenied
	}
	return s.repo.Delete(ctx, id)
}

func (s *SprintService) transition(ctx context.Context, id string, apply func(*dom.Sprint)) (*dom.Sprint, error) {
	sp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dom.ErrNotFound
		}
		return nil, err
	}
	apply(sp)
	return s.repo.Update(ctx, sp)
}
