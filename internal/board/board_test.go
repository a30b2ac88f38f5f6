package board

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	dom "taskboard/internal/domain"
	"taskboard/internal/service"

	"github.com/jackc/pgx/v5"
)

// fakeRepo is an in-memory TaskRepo. gate, when set, blocks Update until the
// test releases it, so the optimistic state can be observed in flight.
type fakeRepo struct {
	tasks map[string]*dom.Task
	order []string

	failCreate error
	failUpdate error
	failDelete error
	gate       chan struct{}
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{tasks: map[string]*dom.Task{}}
}

func (r *fakeRepo) GetAll(ctx context.Context) ([]*dom.Task, error) {
	out := make([]*dom.Task, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tasks[id].Clone())
	}
	return out, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*dom.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return t.Clone(), nil
}

func (r *fakeRepo) Create(ctx context.Context, t *dom.Task) (*dom.Task, error) {
	if r.failCreate != nil {
		return nil, r.failCreate
	}
	r.tasks[t.ID()] = t.Clone()
	r.order = append([]string{t.ID()}, r.order...)
	return t.Clone(), nil
}

func (r *fakeRepo) Update(ctx context.Context, t *dom.Task) (*dom.Task, error) {
	if r.gate != nil {
		<-r.gate
	}
	if r.failUpdate != nil {
		return nil, r.failUpdate
	}
	if _, ok := r.tasks[t.ID()]; !ok {
		return nil, pgx.ErrNoRows
	}
	r.tasks[t.ID()] = t.Clone()
	return t.Clone(), nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	if r.failDelete != nil {
		return r.failDelete
	}
	delete(r.tasks, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func newTestBoard(t *testing.T, repo *fakeRepo) *Board {
	t.Helper()
	svc := service.NewTaskService(repo, nil)
	b := New(svc, log.New(io.Discard, "", 0))
	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return b
}

func mustCreate(t *testing.T, b *Board, title string, prio dom.TaskPriority) *dom.Task {
	t.Helper()
	task, err := b.CreateTask(context.Background(), service.CreateTaskInput{Title: title, Priority: prio})
	if err != nil {
		t.Fatalf("CreateTask(%s): %v", title, err)
	}
	return task
}

func TestDragAndSliderScenario(t *testing.T) {
	b := newTestBoard(t, newFakeRepo())
	ctx := context.Background()

	task := mustCreate(t, b, "Fix bug", dom.PriorityMedium)
	if task.Status() != dom.StatusTodo || task.Progress() != 0 {
		t.Fatalf("created: got %s/%d", task.Status(), task.Progress())
	}

	task, err := b.MoveTask(ctx, task.ID(), dom.StatusReview)
	if err != nil {
		t.Fatalf("MoveTask(REVIEW): %v", err)
	}
	if task.Status() != dom.StatusReview || task.Progress() != 80 {
		t.Fatalf("after REVIEW: got %s/%d, want REVIEW/80", task.Status(), task.Progress())
	}

	task, err = b.MoveTask(ctx, task.ID(), dom.StatusDone)
	if err != nil {
		t.Fatalf("MoveTask(DONE): %v", err)
	}
	if task.Status() != dom.StatusDone || task.Progress() != 100 {
		t.Fatalf("after DONE: got %s/%d, want DONE/100", task.Status(), task.Progress())
	}

	// Direct slider edit from DONE pulls the task back to IN_PROGRESS.
	task, err = b.SetProgress(ctx, task.ID(), 50)
	if err != nil {
		t.Fatalf("SetProgress(50): %v", err)
	}
	if task.Status() != dom.StatusInProgress || task.Progress() != 50 {
		t.Fatalf("after 50: got %s/%d, want IN_PROGRESS/50", task.Status(), task.Progress())
	}

	task, err = b.SetProgress(ctx, task.ID(), 0)
	if err != nil {
		t.Fatalf("SetProgress(0): %v", err)
	}
	if task.Status() != dom.StatusTodo || task.Progress() != 0 {
		t.Fatalf("after 0: got %s/%d, want TODO/0", task.Status(), task.Progress())
	}
}

func TestSetProgressClampAndPrecedence(t *testing.T) {
	b := newTestBoard(t, newFakeRepo())
	ctx := context.Background()
	task := mustCreate(t, b, "Fix bug", dom.PriorityLow)

	got, err := b.SetProgress(ctx, task.ID(), 250)
	if err != nil {
		t.Fatalf("SetProgress(250): %v", err)
	}
	if got.Progress() != 100 || got.Status() != dom.StatusDone {
		t.Errorf("clamp high: got %s/%d, want DONE/100", got.Status(), got.Progress())
	}

	got, err = b.SetProgress(ctx, task.ID(), -30)
	if err != nil {
		t.Fatalf("SetProgress(-30): %v", err)
	}
	if got.Progress() != 0 || got.Status() != dom.StatusTodo {
		t.Errorf("clamp low: got %s/%d, want TODO/0", got.Status(), got.Progress())
	}

	// Mid-range value from REVIEW leaves the status alone.
	if _, err := b.MoveTask(ctx, task.ID(), dom.StatusReview); err != nil {
		t.Fatalf("MoveTask: %v", err)
	}
	got, err = b.SetProgress(ctx, task.ID(), 40)
	if err != nil {
		t.Fatalf("SetProgress(40): %v", err)
	}
	if got.Status() != dom.StatusReview || got.Progress() != 40 {
		t.Errorf("from REVIEW: got %s/%d, want REVIEW/40", got.Status(), got.Progress())
	}
}

func TestMoveTaskSameStatusNoop(t *testing.T) {
	repo := newFakeRepo()
	b := newTestBoard(t, repo)
	task := mustCreate(t, b, "Fix bug", dom.PriorityMedium)

	repo.failUpdate = errors.New("update must not be called")
	got, err := b.MoveTask(context.Background(), task.ID(), dom.StatusTodo)
	if err != nil {
		t.Fatalf("no-op move errored: %v", err)
	}
	if got.Status() != dom.StatusTodo {
		t.Errorf("no-op move changed status to %s", got.Status())
	}
}

func TestOptimisticStateVisibleThenRolledBack(t *testing.T) {
	repo := newFakeRepo()
	b := newTestBoard(t, repo)
	task := mustCreate(t, b, "Fix bug", dom.PriorityMedium)

	repo.gate = make(chan struct{})
	repo.failUpdate = errors.New("storage down")

	done := make(chan error, 1)
	go func() {
		_, err := b.MoveTask(context.Background(), task.ID(), dom.StatusReview)
		done <- err
	}()

	// The optimistic state must be published before persistence resolves.
	deadline := time.After(2 * time.Second)
	for {
		if got := b.Get(task.ID()); got != nil && got.Status() == dom.StatusReview && got.Progress() == 80 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("optimistic state never became visible")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	close(repo.gate)
	err := <-done
	if err == nil {
		t.Fatal("expected persistence failure")
	}
	var pe *PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PersistenceError, got %T: %v", err, err)
	}

	// Full revert: T0, not T1 and not a partial merge.
	got := b.Get(task.ID())
	if got == nil {
		t.Fatal("task vanished after rollback")
	}
	if got.Status() != dom.StatusTodo || got.Progress() != 0 {
		t.Errorf("rollback incomplete: got %s/%d, want TODO/0", got.Status(), got.Progress())
	}
}

func TestCreateRollbackRemovesOptimisticEntry(t *testing.T) {
	repo := newFakeRepo()
	b := newTestBoard(t, repo)
	repo.failCreate = errors.New("storage down")

	_, err := b.CreateTask(context.Background(), service.CreateTaskInput{Title: "Doomed task"})
	if err == nil {
		t.Fatal("expected failure")
	}
	if n := len(b.Snapshot()); n != 0 {
		t.Errorf("optimistic entry survived the rollback, %d tasks on board", n)
	}
}

func TestDeleteRollbackAndPermissions(t *testing.T) {
	repo := newFakeRepo()
	b := newTestBoard(t, repo)
	task := mustCreate(t, b, "Fix bug", dom.PriorityMedium)

	// Anonymous actor: use case refuses, collection restored.
	err := b.DeleteTask(context.Background(), task.ID(), dom.Anonymous())
	if !errors.Is(err, dom.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if b.Get(task.ID()) == nil {
		t.Fatal("task must remain on the board after a denied delete")
	}
	if _, err := repo.GetByID(context.Background(), task.ID()); err != nil {
		t.Fatal("task must remain retrievable after a denied delete")
	}

	// Storage failure: same revert.
	repo.failDelete = errors.New("storage down")
	err = b.DeleteTask(context.Background(), task.ID(), dom.Authenticated(dom.RoleAdmin))
	var pe *PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if b.Get(task.ID()) == nil {
		t.Fatal("task must be restored after a failed delete")
	}

	// Admin with working storage.
	repo.failDelete = nil
	if err := b.DeleteTask(context.Background(), task.ID(), dom.Authenticated(dom.RoleAdmin)); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if b.Get(task.ID()) != nil {
		t.Fatal("task still on the board after delete")
	}
}

func TestFilteredAndColumns(t *testing.T) {
	b := newTestBoard(t, newFakeRepo())
	ctx := context.Background()

	login := mustCreate(t, b, "Fix login bug", dom.PriorityHigh)
	docs := mustCreate(t, b, "Write docs", dom.PriorityLow)
	cache := mustCreate(t, b, "Refactor cache", dom.PriorityHigh)
	if _, err := b.MoveTask(ctx, cache.ID(), dom.StatusReview); err != nil {
		t.Fatalf("MoveTask: %v", err)
	}

	if got := b.Filtered(Filters{Priority: string(dom.PriorityHigh)}); len(got) != 2 {
		t.Errorf("priority filter: got %d, want 2", len(got))
	}
	if got := b.Filtered(Filters{Status: FilterAll, Priority: FilterAll}); len(got) != 3 {
		t.Errorf("all/all: got %d, want 3", len(got))
	}
	if got := b.Filtered(Filters{Search: "LOGIN"}); len(got) != 1 || got[0].ID() != login.ID() {
		t.Errorf("search must be case-insensitive over title+description")
	}
	// All filters AND together.
	if got := b.Filtered(Filters{Priority: string(dom.PriorityHigh), Search: "cache", Status: string(dom.StatusReview)}); len(got) != 1 {
		t.Errorf("AND semantics: got %d, want 1", len(got))
	}
	if got := b.Filtered(Filters{Priority: string(dom.PriorityLow), Search: "cache"}); len(got) != 0 {
		t.Errorf("AND semantics: got %d, want 0", len(got))
	}

	cols := b.Columns(Filters{})
	for _, s := range dom.TaskStatuses() {
		if _, ok := cols[s]; !ok {
			t.Errorf("column %s missing", s)
		}
	}
	if len(cols[dom.StatusTodo]) != 2 || len(cols[dom.StatusReview]) != 1 {
		t.Errorf("grouping wrong: todo=%d review=%d", len(cols[dom.StatusTodo]), len(cols[dom.StatusReview]))
	}
	// Relative order within a bucket follows the collection (newest first).
	if cols[dom.StatusTodo][0].ID() != docs.ID() || cols[dom.StatusTodo][1].ID() != login.ID() {
		t.Error("column bucket order does not preserve collection order")
	}
}

func TestSprintLanes(t *testing.T) {
	b := newTestBoard(t, newFakeRepo())
	ctx := context.Background()

	a := mustCreate(t, b, "task a", dom.PriorityMedium)
	bb := mustCreate(t, b, "task b", dom.PriorityMedium)

	if _, err := b.AssignSprint(ctx, a.ID(), "sprint-1"); err != nil {
		t.Fatalf("AssignSprint: %v", err)
	}
	if got := b.InSprint("sprint-1"); len(got) != 1 || got[0].ID() != a.ID() {
		t.Errorf("sprint lane wrong: %d tasks", len(got))
	}
	if got := b.Backlog(); len(got) != 1 || got[0].ID() != bb.ID() {
		t.Errorf("backlog lane wrong: %d tasks", len(got))
	}

	if _, err := b.ClearSprint(ctx, a.ID()); err != nil {
		t.Fatalf("ClearSprint: %v", err)
	}
	if got := b.Backlog(); len(got) != 2 {
		t.Errorf("after clear: backlog has %d tasks, want 2", len(got))
	}
}

func TestUpdateTaskValidationDoesNotPublish(t *testing.T) {
	b := newTestBoard(t, newFakeRepo())
	task := mustCreate(t, b, "Fix bug", dom.PriorityMedium)

	title := "x"
	_, err := b.UpdateTask(context.Background(), service.UpdateTaskInput{ID: task.ID(), Title: &title})
	if !dom.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if got := b.Get(task.ID()); got.Title() != "Fix bug" {
		t.Error("invalid update leaked into the visible collection")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	b := newTestBoard(t, newFakeRepo())
	task := mustCreate(t, b, "Fix bug", dom.PriorityMedium)

	snap := b.Snapshot()
	snap[0].ChangeStatus(dom.StatusDone)

	if got := b.Get(task.ID()); got.Status() != dom.StatusTodo {
		t.Error("mutating a snapshot must not touch the board")
	}
}
