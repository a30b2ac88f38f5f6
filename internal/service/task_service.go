package service

import (
	"context"
	"errors"
	"strings"
	"time"

	dom "taskboard/internal/domain"
	"taskboard/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"

	"taskboard/internal/cache"
)

// CreateTaskInput is the input for TaskService.Create.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    dom.TaskPriority
	DueDate     *time.Time
}

// SprintChange expresses the tri-state sprint update: leaving the field out
// of UpdateTaskInput changes nothing, Clear sends the task to the backlog,
// otherwise SprintID is assigned.
type SprintChange struct {
	SprintID string
	Clear    bool
}

// UpdateTaskInput is a partial update; nil fields are left untouched.
type UpdateTaskInput struct {
	ID          string
	Title       *string
	Description *string
	Priority    *dom.TaskPriority
	Status      *dom.TaskStatus
	Progress    *int
	Sprint      *SprintChange
}

// TaskService orchestrates task use cases over the repository, with a Redis
// read cache. If c is nil, caching is disabled.
type TaskService struct {
	repo  repo.TaskRepo
	cache *cache.TaskCache
	sf    singleflight.Group
}

// NewTaskService creates a TaskService. If c is nil, caching is disabled.
func NewTaskService(r repo.TaskRepo, c *cache.TaskCache) *TaskService {
	return &TaskService{repo: r, cache: c}
}

// Create builds a new task through the entity factory and persists it.
func (s *TaskService) Create(ctx context.Context, in CreateTaskInput) (*dom.Task, error) {
	t, err := dom.NewTask(in.Title, in.Description, in.Priority, in.DueDate)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return created, nil
}

// Update fetches the task and applies the present fields in a fixed order:
// details, then status, then progress, then sprint assignment.
func (s *TaskService) Update(ctx context.Context, in UpdateTaskInput) (*dom.Task, error) {
	t, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dom.ErrNotFound
		}
		return nil, err
	}

	if in.Title != nil || in.Description != nil || in.Priority != nil {
		title := t.Title()
		desc := t.Description()
		prio := t.Priority()
		if in.Title != nil {
			title = *in.Title
		}
		if in.Description != nil {
			desc = *in.Description
		}
		if in.Priority != nil {
			prio = *in.Priority
		}
		if err := t.UpdateDetails(title, desc, prio); err != nil {
			return nil, err
		}
	}
	if in.Status != nil {
		t.ChangeStatus(*in.Status)
	}
	if in.Progress != nil {
		if err := t.SetProgress(*in.Progress); err != nil {
			return nil, err
		}
	}
	if in.Sprint != nil {
		if in.Sprint.Clear {
			t.RemoveFromSprint()
		} else {
			t.AssignToSprint(in.Sprint.SprintID)
		}
	}

	updated, err := s.repo.Update(ctx, t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dom.ErrNotFound
		}
		return nil, err
	}
	s.invalidateCache(ctx)
	return updated, nil
}

// Delete removes a task. Only an authenticated admin may delete.
func (s *TaskService) Delete(ctx context.Context, id string, actor dom.Actor) error {
	if !actor.IsAdmin() {
		return dom.ErrPermissionDenied
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// GetByID returns a single task.
func (s *TaskService) GetByID(ctx context.Context, id string) (*dom.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dom.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// List returns all tasks, newest first.
func (s *TaskService) List(ctx context.Context) ([]*dom.Task, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("list", func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.GetAll(ctx)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]*dom.Task), nil
	}
	return s.repo.GetAll(ctx)
}

// Search returns tasks whose title or description contains q,
// case-insensitive.
func (s *TaskService) Search(ctx context.Context, q string) ([]*dom.Task, error) {
	q = strings.TrimSpace(q)
	if s.cache != nil {
		key := "search:" + strings.ToLower(q)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetSearch(ctx, q); err == nil && list != nil {
				return list, nil
			}
			list, err := s.searchAll(ctx, q)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetSearch(ctx, q, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]*dom.Task), nil
	}
	return s.searchAll(ctx, q)
}

func (s *TaskService) searchAll(ctx context.Context, q string) ([]*dom.Task, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(q)
	var out []*dom.Task
	for _, t := range all {
		if strings.Contains(strings.ToLower(t.Title()), needle) ||
			strings.Contains(strings.ToLower(t.Description()), needle) {
			out = append(out, t)
		}
	}
	return out, nil
}

// AddComment fetches the task, appends a new comment and persists the
// result.
func (s *TaskService) AddComment(ctx context.Context, taskID, content, author string) (*dom.Task, error) {
	t, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dom.ErrNotFound
		}
		return nil, err
	}
	t.AddComment(dom.NewComment(content, author))
	updated, err := s.repo.Update(ctx, t)
	if err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return updated, nil
}

func (s *TaskService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateAll(ctx)
	}
}
