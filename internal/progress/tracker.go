// Package progress ingests daily completion records and derives rolling
// state: completion rate, days behind schedule, and streak. State is
// always recomputed from the full history so backfilled or corrected
// records cannot cause drift.
package progress

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/averhoef/thesisflow/internal/clock"
	"github.com/averhoef/thesisflow/internal/config"
	"github.com/averhoef/thesisflow/internal/domain"
)

// ErrInvalidRecord is returned for progress input that cannot describe a
// real day: negative counts, or more tasks completed than planned.
var ErrInvalidRecord = errors.New("invalid progress record")

// State is the tracker's rolling view over a project's history.
type State struct {
	CompletionRate float64 // mean rate over the lookback window
	DaysBehind     int
	Streak         int
}

// NewRecord validates raw completion input and builds an append-only
// record for the given day. The date is normalized to UTC midnight; one
// record per day — the repository layer upserts so a later record for
// the same day acts as a correction.
func NewRecord(projectID string, date time.Time, tasksPlanned, tasksCompleted int, hoursWorked float64, now time.Time) (*domain.ProgressRecord, error) {
	if tasksPlanned < 0 || tasksCompleted < 0 {
		return nil, fmt.Errorf("%w: task counts must be non-negative", ErrInvalidRecord)
	}
	if tasksCompleted > tasksPlanned {
		return nil, fmt.Errorf("%w: %d completed exceeds %d planned",
			ErrInvalidRecord, tasksCompleted, tasksPlanned)
	}
	if hoursWorked < 0 {
		return nil, fmt.Errorf("%w: hours worked must be non-negative", ErrInvalidRecord)
	}
	return &domain.ProgressRecord{
		ID:             uuid.NewString(),
		ProjectID:      projectID,
		Date:           clock.Midnight(date),
		TasksPlanned:   tasksPlanned,
		TasksCompleted: tasksCompleted,
		HoursWorked:    hoursWorked,
		CreatedAt:      now,
	}, nil
}

// ComputeState derives the rolling state from the full history as of
// today. Rules:
//
//   - CompletionRate is the mean daily rate over the most recent
//     lookback-window records.
//   - DaysBehind counts consecutive most-recent recorded days under the
//     behind threshold, capped at the lookback window. Days without a
//     record are skipped, not reset: only an actual catch-up day clears
//     the count.
//   - Streak counts consecutive days at or above the good threshold. A
//     past day with no record breaks the streak; today without a record
//     does not, since the day has not closed yet.
//
// Days are UTC midnights throughout; the profile's timezone is not
// consulted, so "today has not closed" means the UTC day.
func ComputeState(history []domain.ProgressRecord, policy config.Policy, today time.Time) State {
	if len(history) == 0 {
		return State{}
	}

	byDate := collapse(history)

	var st State
	window := byDate
	if len(window) > policy.LookbackDays {
		window = window[len(window)-policy.LookbackDays:]
	}
	var sum float64
	for _, r := range window {
		sum += r.CompletionRate()
	}
	st.CompletionRate = sum / float64(len(window))

	for i := len(window) - 1; i >= 0; i-- {
		if window[i].CompletionRate() >= policy.BehindThreshold {
			break
		}
		st.DaysBehind++
	}

	st.Streak = streak(byDate, policy.GoodThreshold, clock.Midnight(today))
	return st
}

// SustainedLowRate reports whether the most recent n recorded days all
// fell under the behind threshold. Used by the completion-rate replan
// trigger.
func SustainedLowRate(history []domain.ProgressRecord, policy config.Policy) bool {
	byDate := collapse(history)
	n := policy.LowRateSustainedDays
	if len(byDate) < n {
		return false
	}
	for i := len(byDate) - n; i < len(byDate); i++ {
		if byDate[i].CompletionRate() >= policy.BehindThreshold {
			return false
		}
	}
	return true
}

// collapse sorts the history by date and keeps only the latest record
// per day, so corrections supersede the original entry.
func collapse(history []domain.ProgressRecord) []domain.ProgressRecord {
	sorted := make([]domain.ProgressRecord, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	out := sorted[:0]
	for _, r := range sorted {
		if len(out) > 0 && out[len(out)-1].Date.Equal(r.Date) {
			out[len(out)-1] = r
			continue
		}
		out = append(out, r)
	}
	return out
}

func streak(byDate []domain.ProgressRecord, goodThreshold float64, today time.Time) int {
	recorded := make(map[time.Time]float64, len(byDate))
	for _, r := range byDate {
		recorded[r.Date] = r.CompletionRate()
	}

	count := 0
	for d := today; ; d = d.AddDate(0, 0, -1) {
		rate, ok := recorded[d]
		if !ok {
			if d.Equal(today) {
				// Today has not closed; an unreported today does not
				// break the streak.
				continue
			}
			break
		}
		if rate < goodThreshold {
			break
		}
		count++
	}
	return count
}
