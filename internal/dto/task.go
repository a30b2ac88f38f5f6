package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateTime parses a date field from JSON as either date-only ("2006-01-02")
// or RFC3339. Date-only is stored as start of that day in UTC.
type DateTime struct{ t *time.Time }

func (d *DateTime) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		d.t = nil
		return nil
	}
	s := strings.TrimSpace(*raw)
	layouts := []string{
		"2006-01-02", // date only
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			if layout == "2006-01-02" {
				parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			}
			d.t = &parsed
			return nil
		}
	}
	return fmt.Errorf("use date (YYYY-MM-DD) or RFC3339 datetime")
}

// Ptr returns *time.Time for use in service/domain.
func (d DateTime) Ptr() *time.Time { return d.t }

// SprintRef distinguishes "field absent" (leave the assignment unchanged)
// from explicit null (move to backlog) from a value (assign to that
// sprint). UnmarshalJSON only runs when the field is present, which is what
// marks the ref as set.
type SprintRef struct {
	set  bool
	null bool
	id   string
}

func (r *SprintRef) UnmarshalJSON(data []byte) error {
	r.set = true
	if string(data) == "null" {
		r.null = true
		return nil
	}
	return json.Unmarshal(data, &r.id)
}

// Set reports whether the field was present in the request body.
func (r SprintRef) Set() bool { return r.set }

// Null reports whether the field was an explicit null.
func (r SprintRef) Null() bool { return r.null }

func (r SprintRef) ID() string { return r.id }

type CreateTaskRequest struct {
	Title       string   `json:"title" binding:"required,max=120"`
	Description string   `json:"description" binding:"max=2000"`
	Priority    string   `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     DateTime `json:"due_date"` // optional: "2026-02-19" or RFC3339
}

type UpdateTaskRequest struct {
	Title       *string   `json:"title" binding:"omitempty,max=120"`
	Description *string   `json:"description" binding:"omitempty,max=2000"`
	Priority    *string   `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	Status      *string   `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS REVIEW DONE"`
	Progress    *int      `json:"progress" binding:"omitempty,gte=0,lte=100"`
	SprintID    SprintRef `json:"sprint_id"` // absent = keep, null = backlog, value = assign
}

type MoveTaskRequest struct {
	Status string `json:"status" binding:"required,oneof=TODO IN_PROGRESS REVIEW DONE"`
}

type SetProgressRequest struct {
	Progress *int `json:"progress" binding:"required"` // raw slider value, clamped server-side
}

type AddCommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
	Author  string `json:"author" binding:"omitempty,max=120"`
}

type CommentResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

type TaskResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      string            `json:"status"`
	Priority    string            `json:"priority"`
	Progress    int               `json:"progress"`
	DueDate     *time.Time        `json:"due_date,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	SprintID    *string           `json:"sprint_id,omitempty"`
	Comments    []CommentResponse `json:"comments"`
}

type ListTasksResponse struct {
	Items []TaskResponse `json:"items"`
}

// BoardResponse is the grouped kanban view, one column per status.
type BoardResponse struct {
	Columns map[string][]TaskResponse `json:"columns"`
}
