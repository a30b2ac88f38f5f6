package domain

import (
	"time"

	"github.com/google/uuid"
)

type SprintStatus string

const (
	SprintPlanning  SprintStatus = "PLANNING"
	SprintActive    SprintStatus = "ACTIVE"
	SprintCompleted SprintStatus = "COMPLETED"
)

// Sprint is a time-boxed iteration. Tasks point at it through a weak
// sprintID reference; the sprint keeps no back-references.
type Sprint struct {
	id        string
	name      string
	startDate time.Time
	endDate   time.Time
	status    SprintStatus
}

// NewSprint creates a sprint in PLANNING. Date ordering is deliberately not
// checked.
func NewSprint(name string, startDate, endDate time.Time) *Sprint {
	return &Sprint{
		id:        uuid.NewString(),
		name:      name,
		startDate: startDate,
		endDate:   endDate,
		status:    SprintPlanning,
	}
}

// Start activates the sprint.
func (s *Sprint) Start() { s.status = SprintActive }

// Complete finishes the sprint. There is no way back to ACTIVE or PLANNING.
func (s *Sprint) Complete() { s.status = SprintCompleted }

func (s *Sprint) ID() string           { return s.id }
func (s *Sprint) Name() string         { return s.name }
func (s *Sprint) StartDate() time.Time { return s.startDate }
func (s *Sprint) EndDate() time.Time   { return s.endDate }
func (s *Sprint) Status() SprintStatus { return s.status }

// SprintRecord is the persisted form of a Sprint.
type SprintRecord struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	StartDate time.Time    `json:"start_date"`
	EndDate   time.Time    `json:"end_date"`
	Status    SprintStatus `json:"status"`
}

func (s *Sprint) Record() SprintRecord {
	return SprintRecord{ID: s.id, Name: s.name, StartDate: s.startDate, EndDate: s.endDate, Status: s.status}
}

func ReconstituteSprint(rec SprintRecord) *Sprint {
	return &Sprint{id: rec.ID, name: rec.Name, startDate: rec.StartDate, endDate: rec.EndDate, status: rec.Status}
}
