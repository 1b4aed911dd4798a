package domain

import "time"

// ProgressRecord is one day's reported progress. Records are append-only:
// after the day closes they change only through explicit correction.
type ProgressRecord struct {
	ID             string
	ProjectID      string
	Date           time.Time // UTC midnight
	TasksPlanned   int
	TasksCompleted int
	HoursWorked    float64
	CreatedAt      time.Time
}

// CompletionRate is completed/planned, defined as 0 when nothing was
// planned (a rest day is not an error).
func (r *ProgressRecord) CompletionRate() float64 {
	if r.TasksPlanned == 0 {
		return 0
	}
	return float64(r.TasksCompleted) / float64(r.TasksPlanned)
}
