package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusReview     TaskStatus = "REVIEW"
	StatusDone       TaskStatus = "DONE"
)

// TaskStatuses lists every status in board column order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{StatusTodo, StatusInProgress, StatusReview, StatusDone}
}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

// TaskPriorities lists every priority from lowest to highest.
func TaskPriorities() []TaskPriority {
	return []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}
}

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is the board's central entity. State is unexported; every mutation
// goes through a behavior method that validates before committing, so a Task
// in a program is always in a valid state.
type Task struct {
	id          string
	title       string
	description string
	status      TaskStatus
	priority    TaskPriority
	progress    int
	dueDate     *time.Time
	createdAt   time.Time
	sprintID    string // empty = backlog
	comments    []Comment
}

// NewTask creates a task with generated id, createdAt=now, status TODO and
// progress 0. Empty priority defaults to MEDIUM.
func NewTask(title, description string, priority TaskPriority, dueDate *time.Time) (*Task, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if priority == "" {
		priority = PriorityMedium
	}
	return &Task{
		id:          uuid.NewString(),
		title:       title,
		description: description,
		status:      StatusTodo,
		priority:    priority,
		progress:    0,
		dueDate:     dueDate,
		createdAt:   time.Now().UTC(),
	}, nil
}

// ChangeStatus moves the task to newStatus. Any status is reachable from any
// other; drag-and-drop relies on the transition being unrestricted.
func (t *Task) ChangeStatus(newStatus TaskStatus) {
	t.status = newStatus
}

// UpdateDetails replaces title, description and priority. All-or-nothing:
// the title is validated before any field is touched.
func (t *Task) UpdateDetails(title, description string, priority TaskPriority) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	t.title = title
	t.description = description
	t.priority = priority
	return nil
}

// SetProgress sets progress, rejecting values outside [0,100].
func (t *Task) SetProgress(p int) error {
	if p < 0 || p > 100 {
		return &ValidationError{Reason: "progress must be between 0 and 100"}
	}
	t.progress = p
	return nil
}

// AddComment appends c. Comments keep insertion order and are never
// reordered or removed by the entity.
func (t *Task) AddComment(c Comment) {
	t.comments = append(t.comments, c)
}

// AssignToSprint sets the weak sprint reference. The entity does not check
// that the sprint exists.
func (t *Task) AssignToSprint(sprintID string) {
	t.sprintID = sprintID
}

// RemoveFromSprint sends the task back to the backlog.
func (t *Task) RemoveFromSprint() {
	t.sprintID = ""
}

func (t *Task) ID() string             { return t.id }
func (t *Task) Title() string          { return t.title }
func (t *Task) Description() string    { return t.description }
func (t *Task) Status() TaskStatus     { return t.status }
func (t *Task) Priority() TaskPriority { return t.priority }
func (t *Task) Progress() int          { return t.progress }
func (t *Task) DueDate() *time.Time    { return t.dueDate }
func (t *Task) CreatedAt() time.Time   { return t.createdAt }

// SprintID returns the referenced sprint id, "" when the task is backlog.
func (t *Task) SprintID() string { return t.sprintID }

// InBacklog reports whether the task has no sprint assignment.
func (t *Task) InBacklog() bool { return t.sprintID == "" }

// Comments returns a copy of the comment list in insertion order.
func (t *Task) Comments() []Comment {
	out := make([]Comment, len(t.comments))
	copy(out, t.comments)
	return out
}

// Clone returns an independent value copy, used by the board engine for
// pre-mutation snapshots.
func (t *Task) Clone() *Task {
	c := *t
	c.comments = make([]Comment, len(t.comments))
	copy(c.comments, t.comments)
	return &c
}

// TaskRecord is the persisted form of a Task: dates as time.Time (RFC3339
// over JSON), comments embedded in order. No schema versioning; the repos
// assume the shape matches exactly.
type TaskRecord struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      TaskStatus      `json:"status"`
	Priority    TaskPriority    `json:"priority"`
	Progress    int             `json:"progress"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	SprintID    *string         `json:"sprint_id,omitempty"`
	Comments    []CommentRecord `json:"comments"`
}

// Record emits the persisted form.
func (t *Task) Record() TaskRecord {
	rec := TaskRecord{
		ID:          t.id,
		Title:       t.title,
		Description: t.description,
		Status:      t.status,
		Priority:    t.priority,
		Progress:    t.progress,
		DueDate:     t.dueDate,
		CreatedAt:   t.createdAt,
		Comments:    make([]CommentRecord, len(t.comments)),
	}
	if t.sprintID != "" {
		id := t.sprintID
		rec.SprintID = &id
	}
	for i, c := range t.comments {
		rec.Comments[i] = c.Record()
	}
	return rec
}

// ReconstituteTask rebuilds a task from its persisted record without
// re-applying creation defaults.
func ReconstituteTask(rec TaskRecord) *Task {
	t := &Task{
		id:          rec.ID,
		title:       rec.Title,
		description: rec.Description,
		status:      rec.Status,
		priority:    rec.Priority,
		progress:    rec.Progress,
		dueDate:     rec.DueDate,
		createdAt:   rec.CreatedAt,
		comments:    make([]Comment, len(rec.Comments)),
	}
	if rec.SprintID != nil {
		t.sprintID = *rec.SprintID
	}
	for i, cr := range rec.Comments {
		t.comments[i] = ReconstituteComment(cr)
	}
	return t
}

func validateTitle(title string) error {
	if len(strings.TrimSpace(title)) < 3 {
		return &ValidationError{Reason: "task title must be at least 3 characters long"}
	}
	return nil
}
