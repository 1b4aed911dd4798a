// Package capacity converts an availability profile into a calendar of
// work minutes per day. It owns all calendar arithmetic: no other
// component computes work days independently.
package capacity

import (
	"fmt"
	"math"
	"time"

	"github.com/averhoef/thesisflow/internal/clock"
	"github.com/averhoef/thesisflow/internal/config"
	"github.com/averhoef/thesisflow/internal/domain"
)

const maxDailyHours = 16

// Day is one calendar day's effective capacity.
type Day struct {
	Date         time.Time // UTC midnight
	AvailableMin int
}

// Calendar is the ordered per-day capacity between two dates, buffer
// already applied. It is a derived value owned by the run that computed
// it and is never persisted.
type Calendar struct {
	Days []Day
}

// TotalMinutes sums effective capacity across the range.
func (c *Calendar) TotalMinutes() int {
	var sum int
	for _, d := range c.Days {
		sum += d.AvailableMin
	}
	return sum
}

// TotalHours is TotalMinutes in hours.
func (c *Calendar) TotalHours() float64 {
	return float64(c.TotalMinutes()) / 60.0
}

// From returns the sub-calendar starting at date (inclusive).
func (c *Calendar) From(date time.Time) *Calendar {
	day := clock.Midnight(date)
	for i, d := range c.Days {
		if !d.Date.Before(day) {
			return &Calendar{Days: c.Days[i:]}
		}
	}
	return &Calendar{}
}

// Compute derives the capacity calendar for a profile between startDate
// and endDate inclusive. Work days are the first workDaysPerWeek weekdays
// of the policy pattern; each carries dailyHours*60 minutes reduced by the
// procrastination buffer. Pure function of its inputs.
func Compute(profile *domain.Profile, startDate, endDate time.Time, policy config.Policy) (*Calendar, error) {
	start := clock.Midnight(startDate)
	end := clock.Midnight(endDate)
	if start.After(end) {
		return nil, fmt.Errorf("%w: start %s after end %s",
			ErrInvalidRange, start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	if profile.DailyHours <= 0 || profile.DailyHours > maxDailyHours {
		return nil, fmt.Errorf("%w: daily hours %.1f outside (0, %d]",
			ErrInvalidProfile, profile.DailyHours, maxDailyHours)
	}
	if profile.WorkDaysPerWeek < 1 || profile.WorkDaysPerWeek > 7 {
		return nil, fmt.Errorf("%w: work days per week %d outside [1, 7]",
			ErrInvalidProfile, profile.WorkDaysPerWeek)
	}
	if profile.FocusSessionMin <= 0 {
		return nil, fmt.Errorf("%w: focus session length must be positive", ErrInvalidProfile)
	}

	buffer := policy.BufferFraction(profile.Procrastination)
	workDays := policy.WorkDaySet(profile.WorkDaysPerWeek)
	effectiveMin := int(math.Round(profile.DailyHours * 60 * (1 - buffer)))

	days := make([]Day, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		avail := 0
		if workDays[d.Weekday()] {
			avail = effectiveMin
		}
		days = append(days, Day{Date: d, AvailableMin: avail})
	}

	return &Calendar{Days: days}, nil
}

// AverageDailyThroughput is the mean effective minutes per calendar day,
// used to convert task deficits into calendar days.
func (c *Calendar) AverageDailyThroughput() float64 {
	if len(c.Days) == 0 {
		return 0
	}
	return float64(c.TotalMinutes()) / float64(len(c.Days))
}
