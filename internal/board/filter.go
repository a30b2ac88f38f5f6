package board

import (
	"strings"

	dom "taskboard/internal/domain"
)

// FilterAll matches every value of a status or priority filter.
const FilterAll = "all"

// Filters is the derived-view selection: status and priority are exact
// matches (or "all"), search is a case-insensitive substring over title and
// description. All three must pass.
type Filters struct {
	Status   string
	Priority string
	Search   string
}

func (f Filters) match(t *dom.Task) bool {
	if f.Status != "" && f.Status != FilterAll && string(t.Status()) != f.Status {
		return false
	}
	if f.Priority != "" && f.Priority != FilterAll && string(t.Priority()) != f.Priority {
		return false
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		needle := strings.ToLower(q)
		if !strings.Contains(strings.ToLower(t.Title()), needle) &&
			!strings.Contains(strings.ToLower(t.Description()), needle) {
			return false
		}
	}
	return true
}

// Filtered returns copies of the tasks passing f, preserving collection
// order.
func (b *Board) Filtered(f Filters) []*dom.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []*dom.Task
	for _, t := range b.arena {
		if f.match(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Columns groups the filtered view into one bucket per status, every status
// present even when empty, relative order preserved within each bucket.
func (b *Board) Columns(f Filters) map[dom.TaskStatus][]*dom.Task {
	cols := make(map[dom.TaskStatus][]*dom.Task, len(dom.TaskStatuses()))
	for _, s := range dom.TaskStatuses() {
		cols[s] = []*dom.Task{}
	}
	for _, t := range b.Filtered(f) {
		cols[t.Status()] = append(cols[t.Status()], t)
	}
	return cols
}

// Backlog returns copies of the tasks with no sprint assignment, in order.
func (b *Board) Backlog() []*dom.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []*dom.Task
	for _, t := range b.arena {
		if t.InBacklog() {
			out = append(out, t.Clone())
		}
	}
	return out
}

// InSprint returns copies of the tasks assigned to the given sprint.
func (b *Board) InSprint(sprintID string) []*dom.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []*dom.Task
	for _, t := range b.arena {
		if t.SprintID() == sprintID {
			out = append(out, t.Clone())
		}
	}
	return out
}
