package tasks

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// Closed reports whether the task no longer blocks its dependents.
func (s Status) Closed() bool {
	return s == StatusDone || s == StatusCancelled
}

// Priority: 0=urgent, 1=high, 2=medium, 3=low.
type Priority int

const (
	PriorityUrgent Priority = 0
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

type EnergyLevel string

const (
	EnergyLow    EnergyLevel = "low"
	EnergyMedium EnergyLevel = "medium"
	EnergyHigh   EnergyLevel = "high"
)

const DefaultEstimateMinutes = 30

type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`

	// Metadata fields, validated once at this boundary instead of
	// re-checked inside every scoring function.
	EstimatedMinutes int         `json:"estimated_time_minutes"`
	Energy           EnergyLevel `json:"energy_level"`
	BlockedBy        []uuid.UUID `json:"blocked_by,omitempty"`
}

// Normalize fills the metadata defaults: 30-minute estimate, medium energy.
func (t Task) Normalize() Task {
	if t.EstimatedMinutes <= 0 {
		t.EstimatedMinutes = DefaultEstimateMinutes
	}
	switch t.Energy {
	case EnergyLow, EnergyMedium, EnergyHigh:
	default:
		t.Energy = EnergyMedium
	}
	return t
}

func NormalizeAll(ts []Task) []Task {
	out := make([]Task, len(ts))
	for i, t := range ts {
		out[i] = t.Normalize()
	}
	return out
}
