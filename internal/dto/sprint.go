package dto

import "time"

type CreateSprintRequest struct {
	Name      string   `json:"name" binding:"required,max=120"`
	StartDate DateTime `json:"start_date" binding:"required"`
	EndDate   DateTime `json:"end_date" binding:"required"`
}

type SprintResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Status    string    `json:"status"`
}

type ListSprintsResponse struct {
	Items []SprintResponse `json:"items"`
}

// SprintPlanResponse is the planning view: the selected sprint's tasks plus
// the backlog lane.
type SprintPlanResponse struct {
	Sprint  SprintResponse `json:"sprint"`
	Tasks   []TaskResponse `json:"tasks"`
	Backlog []TaskResponse `json:"backlog"`
}
