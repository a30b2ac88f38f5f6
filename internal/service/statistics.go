package service

import (
	"context"

	dom "taskboard/internal/domain"
)

// TaskStatistics is the dashboard aggregate. Both maps carry every enum
// value, zero or not.
type TaskStatistics struct {
	TotalTasks      int                      `json:"total_tasks"`
	CompletedTasks  int                      `json:"completed_tasks"`
	PendingTasks    int                      `json:"pending_tasks"`
	CompletionRate  float64                  `json:"completion_rate"`
	TasksByStatus   map[dom.TaskStatus]int   `json:"tasks_by_status"`
	TasksByPriority map[dom.TaskPriority]int `json:"tasks_by_priority"`
}

// Statistics aggregates counts over the full task set.
func (s *TaskService) Statistics(ctx context.Context) (TaskStatistics, error) {
	tasks, err := s.List(ctx)
	if err != nil {
		return TaskStatistics{}, err
	}

	stats := TaskStatistics{
		TotalTasks:      len(tasks),
		TasksByStatus:   make(map[dom.TaskStatus]int, len(dom.TaskStatuses())),
		TasksByPriority: make(map[dom.TaskPriority]int, len(dom.TaskPriorities())),
	}
	for _, st := range dom.TaskStatuses() {
		stats.TasksByStatus[st] = 0
	}
	for _, p := range dom.TaskPriorities() {
		stats.TasksByPriority[p] = 0
	}
	for _, t := range tasks {
		stats.TasksByStatus[t.Status()]++
		stats.TasksByPriority[t.Priority()]++
		if t.Status() == dom.StatusDone {
			stats.CompletedTasks++
		}
	}
	stats.PendingTasks = stats.TotalTasks - stats.CompletedTasks
	if stats.TotalTasks > 0 {
		stats.CompletionRate = float64(stats.CompletedTasks) / float64(stats.TotalTasks) * 100
	}
	return stats, nil
}
