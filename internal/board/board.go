package board

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	dom "taskboard/internal/domain"
	"taskboard/internal/service"
)

// PersistenceError marks a failure from the repository boundary observed
// while confirming an optimistic mutation. The board has already reverted
// by the time the caller sees it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("board: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Board owns the in-memory task collection behind the kanban view and runs
// every mutation through the same optimistic-then-confirm protocol:
// snapshot, publish the intended end state immediately, invoke the use
// case, then let the confirmed entity overwrite the optimistic one — or
// revert to the snapshot and report the failure.
//
// The mutex guards the slice against concurrent HTTP goroutines; it does
// not serialize mutation protocols. Two in-flight mutations on the same
// task id race, last response wins.
type Board struct {
	tasks  *service.TaskService
	logger *log.Logger

	mu    sync.Mutex
	arena []*dom.Task // insertion order, newest first
}

// New creates a Board over the task use cases. If logger is nil, the
// default logger is used for failure reports.
func New(tasks *service.TaskService, logger *log.Logger) *Board {
	if logger == nil {
		logger = log.Default()
	}
	return &Board{tasks: tasks, logger: logger}
}

// Load replaces the arena with the authoritative collection from
// persistence.
func (b *Board) Load(ctx context.Context) error {
	list, err := b.tasks.List(ctx)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.arena = list
	b.mu.Unlock()
	return nil
}

// Snapshot returns value copies of the collection in order. Consumers never
// see the arena itself.
func (b *Board) Snapshot() []*dom.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*dom.Task, len(b.arena))
	for i, t := range b.arena {
		out[i] = t.Clone()
	}
	return out
}

// Get returns a copy of one task, or nil if it is not on the board.
func (b *Board) Get(id string) *dom.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, t := b.findLocked(id); t != nil {
		return t.Clone()
	}
	return nil
}

// CreateTask builds the entity optimistically, shows it at the front of the
// collection, then persists through the use case. The persisted entity
// (with any server-assigned fields) replaces the optimistic one; on failure
// the optimistic entry is removed.
func (b *Board) CreateTask(ctx context.Context, in service.CreateTaskInput) (*dom.Task, error) {
	optimistic, err := dom.NewTask(in.Title, in.Description, in.Priority, in.DueDate)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.arena = append([]*dom.Task{optimistic}, b.arena...)
	b.mu.Unlock()

	confirmed, err := b.tasks.Create(ctx, in)
	if err != nil {
		b.mu.Lock()
		b.removeLocked(optimistic.ID())
		b.mu.Unlock()
		return nil, b.fail("create task", err)
	}

	b.mu.Lock()
	if i, _ := b.findLocked(optimistic.ID()); i >= 0 {
		b.arena[i] = confirmed
	} else {
		b.arena = append([]*dom.Task{confirmed}, b.arena...)
	}
	b.mu.Unlock()
	return confirmed, nil
}

// MoveTask is the drag-and-drop path: target status plus the canonical
// progress for that status. Moving a task onto its current column is a
// no-op.
func (b *Board) MoveTask(ctx context.Context, id string, target dom.TaskStatus) (*dom.Task, error) {
	b.mu.Lock()
	i, current := b.findLocked(id)
	if current == nil {
		b.mu.Unlock()
		return nil, dom.ErrNotFound
	}
	if current.Status() == target {
		clone := current.Clone()
		b.mu.Unlock()
		return clone, nil
	}
	snapshot := current.Clone()
	progress := service.CalculateProgress(target)

	optimistic := current.Clone()
	optimistic.ChangeStatus(target)
	_ = optimistic.SetProgress(progress)
	b.arena[i] = optimistic
	b.mu.Unlock()

	status := target
	confirmed, err := b.tasks.Update(ctx, service.UpdateTaskInput{
		ID:       id,
		Status:   &status,
		Progress: &progress,
	})
	return b.reconcile("move task", id, snapshot, confirmed, err)
}

// SetProgress is the direct slider edit. The raw value is clamped to
// [0,100]; the status is derived with its own precedence: 100 means DONE,
// 0 means TODO, anything else pulls a TODO or DONE task into IN_PROGRESS
// and leaves other statuses alone.
func (b *Board) SetProgress(ctx context.Context, id string, raw int) (*dom.Task, error) {
	clamped := raw
	if clamped < 0 {
		clamped = 0
	}
	if clamped > 100 {
		clamped = 100
	}

	b.mu.Lock()
	i, current := b.findLocked(id)
	if current == nil {
		b.mu.Unlock()
		return nil, dom.ErrNotFound
	}
	snapshot := current.Clone()

	status := current.Status()
	switch {
	case clamped == 100:
		status = dom.StatusDone
	case clamped == 0:
		status = dom.StatusTodo
	case current.Status() == dom.StatusTodo || current.Status() == dom.StatusDone:
		status = dom.StatusInProgress
	}

	optimistic := current.Clone()
	_ = optimistic.SetProgress(clamped)
	optimistic.ChangeStatus(status)
	b.arena[i] = optimistic
	b.mu.Unlock()

	confirmed, err := b.tasks.Update(ctx, service.UpdateTaskInput{
		ID:       id,
		Status:   &status,
		Progress: &clamped,
	})
	return b.reconcile("set progress", id, snapshot, confirmed, err)
}

// UpdateTask applies a partial update optimistically. Validation failures
// abort before anything is published.
func (b *Board) UpdateTask(ctx context.Context, in service.UpdateTaskInput) (*dom.Task, error) {
	b.mu.Lock()
	i, current := b.findLocked(in.ID)
	if current == nil {
		b.mu.Unlock()
		return nil, dom.ErrNotFound
	}
	snapshot := current.Clone()

	optimistic := current.Clone()
	if err := applyLocal(optimistic, in); err != nil {
		b.mu.Unlock()
		return nil, err
	}
	b.arena[i] = optimistic
	b.mu.Unlock()

	confirmed, err := b.tasks.Update(ctx, in)
	return b.reconcile("update task", in.ID, snapshot, confirmed, err)
}

// AssignSprint drags a task into a sprint lane.
func (b *Board) AssignSprint(ctx context.Context, id, sprintID string) (*dom.Task, error) {
	return b.UpdateTask(ctx, service.UpdateTaskInput{
		ID:     id,
		Sprint: &service.SprintChange{SprintID: sprintID},
	})
}

// ClearSprint drags a task back to the backlog lane.
func (b *Board) ClearSprint(ctx context.Context, id string) (*dom.Task, error) {
	return b.UpdateTask(ctx, service.UpdateTaskInput{
		ID:     id,
		Sprint: &service.SprintChange{Clear: true},
	})
}

// DeleteTask removes the task optimistically and restores the collection if
// the use case refuses or persistence fails.
func (b *Board) DeleteTask(ctx context.Context, id string, actor dom.Actor) error {
	b.mu.Lock()
	i, current := b.findLocked(id)
	if current == nil {
		b.mu.Unlock()
		return dom.ErrNotFound
	}
	previous := make([]*dom.Task, len(b.arena))
	copy(previous, b.arena)
	b.arena = append(b.arena[:i], b.arena[i+1:]...)
	b.mu.Unlock()

	if err := b.tasks.Delete(ctx, id, actor); err != nil {
		b.mu.Lock()
		b.arena = previous
		b.mu.Unlock()
		err = b.fail("delete task", err)
		b.logger.Printf("board: delete task %s failed, reverted: %v", id, err)
		return err
	}
	return nil
}

// Put overwrites (or inserts) a task with an authoritative entity obtained
// outside the optimistic protocol, e.g. after adding a comment.
func (b *Board) Put(t *dom.Task) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i, _ := b.findLocked(t.ID()); i >= 0 {
		b.arena[i] = t
		return
	}
	b.arena = append([]*dom.Task{t}, b.arena...)
}

// reconcile finishes the optimistic protocol: the confirmed entity wins, any
// error reverts the arena entry to the snapshot and is reported.
func (b *Board) reconcile(op, id string, snapshot, confirmed *dom.Task, errIn error) (*dom.Task, error) {
	if errIn != nil {
		b.mu.Lock()
		if i, _ := b.findLocked(id); i >= 0 {
			b.arena[i] = snapshot
		}
		b.mu.Unlock()
		b.logger.Printf("board: %s %s failed, reverted: %v", op, id, errIn)
		return nil, b.fail(op, errIn)
	}
	b.mu.Lock()
	if i, _ := b.findLocked(id); i >= 0 {
		b.arena[i] = confirmed
	}
	b.mu.Unlock()
	return confirmed, nil
}

func (b *Board) findLocked(id string) (int, *dom.Task) {
	for i, t := range b.arena {
		if t.ID() == id {
			return i, t
		}
	}
	return -1, nil
}

func (b *Board) removeLocked(id string) {
	if i, _ := b.findLocked(id); i >= 0 {
		b.arena = append(b.arena[:i], b.arena[i+1:]...)
	}
}

// fail classifies an error from below: domain errors pass through
// unchanged, anything from the repository boundary is wrapped as a
// PersistenceError.
func (b *Board) fail(op string, err error) error {
	if dom.IsValidation(err) || errors.Is(err, dom.ErrNotFound) || errors.Is(err, dom.ErrPermissionDenied) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// applyLocal mirrors the use case's fixed field order on the optimistic
// clone so the published state matches what persistence will confirm.
func applyLocal(t *dom.Task, in service.UpdateTaskInput) error {
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
			return err
		}
	}
	if in.Status != nil {
		t.ChangeStatus(*in.Status)
	}
	if in.Progress != nil {
		if err := t.SetProgress(*in.Progress); err != nil {
			return err
		}
	}
	if in.Sprint != nil {
		if in.Sprint.Clear {
			t.RemoveFromSprint()
		} else {
			t.AssignToSprint(in.Sprint.SprintID)
		}
	}
	return nil
}
