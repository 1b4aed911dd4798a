package domain

import "time"

// ReplanEvent is the append-only audit record of one replanning run.
type ReplanEvent struct {
	ID             string
	ProjectID      string
	Trigger        ReplanTrigger
	DaysBehind     int
	CompletionRate float64
	NewPlanID      string
	CreatedAt      time.Time
}
