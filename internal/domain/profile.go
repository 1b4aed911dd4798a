package domain

import "time"

// Profile captures the availability questionnaire for one planning run.
// It is read-only to the scheduler; changing it means recomputing capacity.
type Profile struct {
	ID                 string
	ProjectID          string
	Deadline           time.Time
	// Timezone is the IANA name collected at intake. It is recorded for
	// display only: every day boundary in the planner (capacity days,
	// record dates, the streak's end-of-day cutoff) is a UTC midnight.
	Timezone string
	DailyHours         float64
	WorkDaysPerWeek    int
	PreferredWorkStart string // "HH:MM", informational only
	FocusSessionMin    int
	Procrastination    ProcrastinationLevel
	WritingStyle       string
	CreatedAt          time.Time
}
