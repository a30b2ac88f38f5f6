package service

import dom "taskboard/internal/domain"

// CalculateProgress maps a status to its canonical progress value. This is
// the coupling applied when a card is dragged between board columns; direct
// progress edits go through the board's own auto-status rule instead.
func CalculateProgress(status dom.TaskStatus) int {
	switch status {
	case dom.StatusTodo:
		return 0
	case dom.StatusInProgress:
		return 25
	case dom.StatusReview:
		return 80
	case dom.StatusDone:
		return 100
	default:
		return 0
	}
}
