// Package config holds the tunable planning policy. Thresholds and buffer
// fractions live here rather than inside the scheduling logic.
package config

import (
	"time"

	"github.com/averhoef/thesisflow/internal/domain"
)

// Policy is the planning policy table. Every numeric threshold the
// capacity model, progress tracker and replanning engine consult comes
// from this table.
type Policy struct {
	// BufferFractions maps procrastination level to the fraction of raw
	// capacity held back to absorb estimation error.
	BufferFractions map[domain.ProcrastinationLevel]float64

	// BehindThreshold is the completion rate under which a day counts as
	// a behind day.
	BehindThreshold float64

	// GoodThreshold is the completion rate at or above which a day
	// extends the streak.
	GoodThreshold float64

	// LookbackDays bounds how far back days-behind counting goes.
	LookbackDays int

	// DaysBehindTrigger is how many behind days fire an automatic replan.
	DaysBehindTrigger int

	// LowRateSustainedDays is how many consecutive low-completion days
	// fire the completion-rate replan trigger.
	LowRateSustainedDays int

	// WorkDays is the weekday pattern of designated work days. When a
	// profile asks for fewer days per week than the pattern holds, the
	// earliest weekdays in the pattern win.
	WorkDays []time.Weekday
}

// DefaultPolicy returns the stock policy table.
func DefaultPolicy() Policy {
	return Policy{
		BufferFractions: map[domain.ProcrastinationLevel]float64{
			domain.ProcrastinationLow:    0.10,
			domain.ProcrastinationMedium: 0.15,
			domain.ProcrastinationHigh:   0.25,
		},
		BehindThreshold:      0.5,
		GoodThreshold:        0.8,
		LookbackDays:         7,
		DaysBehindTrigger:    3,
		LowRateSustainedDays: 3,
		WorkDays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday, time.Sunday,
		},
	}
}

// BufferFraction resolves the buffer for a procrastination level, falling
// back to the medium entry for unknown levels.
func (p Policy) BufferFraction(level domain.ProcrastinationLevel) float64 {
	if f, ok := p.BufferFractions[level]; ok {
		return f
	}
	return p.BufferFractions[domain.ProcrastinationMedium]
}

// WorkDaySet returns the first n weekdays of the configured pattern as a
// lookup set.
func (p Policy) WorkDaySet(n int) map[time.Weekday]bool {
	if n > len(p.WorkDays) {
		n = len(p.WorkDays)
	}
	set := make(map[time.Weekday]bool, n)
	for _, d := range p.WorkDays[:n] {
		set[d] = true
	}
	return set
}
