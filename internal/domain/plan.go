package domain

import (
	"sort"
	"time"
)

// Plan is the scheduled decomposition of a project. Plans are immutable
// values: the replanning engine builds a new Plan and swaps it whole, it
// never edits tasks of a stored plan in place.
type Plan struct {
	ID             string
	ProjectID      string
	Status         PlanStatus
	ShortfallHours float64 // > 0 only when Status is PlanInfeasible
	GeneratedAt    time.Time
	Phases         []Phase
}

// Phase is a contiguous dated stage of work. Phases are laid out in order
// and never overlap: Phases[i].EndDate <= Phases[i+1].StartDate.
type Phase struct {
	ID             string
	PlanID         string
	Name           string
	Description    string
	Deliverable    string
	StartDate      time.Time
	EndDate        time.Time
	EstimatedHours float64
	OrderIndex     int
	Tasks          []Task
}

type Task struct {
	ID             string
	PhaseID        string
	Title          string
	Description    string
	EstimatedHours float64
	Priority       int
	DueDate        time.Time
	DependsOn      []string // task IDs scheduled earlier or in the same phase
	Deliverable    string
	AssignedDates  []time.Time // distinct days, sorted ascending; may be non-contiguous
	Sessions       int         // focus sessions the task was split into
	Status         TaskStatus
	CompletedAt    *time.Time
}

// LastAssignedDate returns the final working day of the task, or the zero
// time if the task was never assigned.
func (t *Task) LastAssignedDate() time.Time {
	if len(t.AssignedDates) == 0 {
		return time.Time{}
	}
	return t.AssignedDates[len(t.AssignedDates)-1]
}

// TasksOn computes the daily assignment view for a date: every task whose
// assigned-date set includes that date, ordered by priority then title.
// It is derived on demand and never stored.
func (p *Plan) TasksOn(date time.Time) []Task {
	day := date.Truncate(24 * time.Hour)
	var out []Task
	for _, ph := range p.Phases {
		for _, t := range ph.Tasks {
			for _, d := range t.AssignedDates {
				if d.Equal(day) {
					out = append(out, t)
					break
				}
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Title < out[j].Title
	})
	return out
}

// TaskByID looks a task up across all phases.
func (p *Plan) TaskByID(id string) *Task {
	for pi := range p.Phases {
		for ti := range p.Phases[pi].Tasks {
			if p.Phases[pi].Tasks[ti].ID == id {
				return &p.Phases[pi].Tasks[ti]
			}
		}
	}
	return nil
}

// TotalEstimatedHours sums the phase hour budgets.
func (p *Plan) TotalEstimatedHours() float64 {
	var sum float64
	for _, ph := range p.Phases {
		sum += ph.EstimatedHours
	}
	return sum
}
