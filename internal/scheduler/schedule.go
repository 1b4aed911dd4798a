// Package scheduler turns a validated plan proposal and a capacity
// calendar into a dated, feasible plan. Scheduling is a pure
// transformation: given identical inputs it produces identical output,
// with stable tie-breaks throughout.
package scheduler

import (
	"math"
	"time"

	"github.com/averhoef/thesisflow/internal/capacity"
	"github.com/averhoef/thesisflow/internal/domain"
)

// Schedule lays the proposal's phases out sequentially over the
// calendar, orders tasks topologically inside each phase and assigns
// them greedily to the earliest days with remaining capacity, splitting
// across focus sessions as needed.
//
// When the proposal's required hours exceed the calendar's capacity the
// returned plan is flagged infeasible with the shortfall in hours; it is
// never silently truncated. The only error condition is a dependency
// cycle.
func Schedule(proposal *domain.PlanProposal, cal *capacity.Calendar, opts Options) (*domain.Plan, error) {
	workCal := cal
	if !opts.NotBefore.IsZero() {
		workCal = cal.From(opts.NotBefore)
	}
	days := workCal.Days

	plan := &domain.Plan{
		ID:          opts.PlanID,
		ProjectID:   opts.ProjectID,
		Status:      domain.PlanFeasible,
		GeneratedAt: opts.GeneratedAt,
	}
	for _, ph := range opts.FixedPast {
		frozen := ph
		frozen.PlanID = opts.PlanID
		plan.Phases = append(plan.Phases, frozen)
	}

	availableMin := workCal.TotalMinutes()
	requiredMin := 0
	for _, ph := range proposal.Phases {
		for _, t := range ph.Tasks {
			requiredMin += int(math.Ceil(t.EstimatedHours * 60))
		}
	}
	if requiredMin > availableMin {
		plan.Status = domain.PlanInfeasible
		plan.ShortfallHours = float64(requiredMin-availableMin) / 60.0
		return plan, nil
	}

	// remaining is the mutable per-day capacity the assignment loop
	// draws down.
	remaining := make([]int, len(days))
	for i, d := range days {
		remaining[i] = d.AvailableMin
	}

	totalHours := float64(availableMin) / 60.0
	phaseOrder := len(opts.FixedPast)
	cursor := 0 // day index; the next phase may share its predecessor's boundary day
	seq := 0
	depLastDay := make(map[string]int) // task title -> day index of its last session

	for _, ph := range proposal.Phases {
		ordered, err := topoOrder(ph.Name, ph.Tasks)
		if err != nil {
			return nil, err
		}

		budgetMin := int(math.Round(totalHours * ph.Weight * 60))
		nominalEnd := walkBudget(remaining, cursor, budgetMin)

		phase := domain.Phase{
			ID:             phaseID(opts.PlanID, phaseOrder+1),
			PlanID:         opts.PlanID,
			Name:           ph.Name,
			Description:    ph.Description,
			Deliverable:    ph.Deliverable,
			EstimatedHours: totalHours * ph.Weight,
			OrderIndex:     phaseOrder,
		}

		firstDay, lastDay := -1, nominalEnd
		for _, ot := range ordered {
			seq++
			task := domain.Task{
				ID:             taskID(opts.PlanID, seq),
				PhaseID:        phase.ID,
				Title:          ot.task.Title,
				Description:    ot.task.Description,
				EstimatedHours: ot.task.EstimatedHours,
				Deliverable:    ot.task.Deliverable,
				Priority:       seq + ot.depth,
				Status:         domain.TaskNotStarted,
			}

			earliest := cursor
			for _, dep := range ot.task.DependsOn {
				if d, ok := depLastDay[dep]; ok && d > earliest {
					earliest = d
				}
			}

			needMin := int(math.Ceil(ot.task.EstimatedHours * 60))
			task.Sessions = sessionCount(needMin, opts.FocusSessionMin)

			var assigned []time.Time
			last := -1
			for i := earliest; i < len(days) && needMin > 0; {
				if remaining[i] <= 0 {
					i++
					continue
				}
				chunk := opts.FocusSessionMin
				if remaining[i] < chunk {
					chunk = remaining[i]
				}
				if needMin < chunk {
					chunk = needMin
				}
				remaining[i] -= chunk
				needMin -= chunk
				if last != i {
					assigned = append(assigned, days[i].Date)
					last = i
				}
			}
			if needMin > 0 {
				// Dependency ordering pushed work past the deadline even
				// though raw capacity was sufficient.
				plan.Status = domain.PlanInfeasible
				plan.ShortfallHours = float64(needMin) / 60.0
				plan.Phases = plan.Phases[:len(opts.FixedPast)]
				return plan, nil
			}

			task.AssignedDates = assigned
			depLastDay[task.Title] = last
			if firstDay == -1 || indexOf(days, assigned[0]) < firstDay {
				firstDay = indexOf(days, assigned[0])
			}
			if last > lastDay {
				lastDay = last
			}
			phase.Tasks = append(phase.Tasks, task)
		}

		if firstDay == -1 {
			firstDay = cursor
		}
		phase.StartDate = days[firstDay].Date
		phase.EndDate = days[lastDay].Date

		// Due dates round forward to the phase end; slack inside the
		// phase is breathing room, never an earlier obligation.
		for i := range phase.Tasks {
			phase.Tasks[i].DueDate = phase.EndDate
		}

		plan.Phases = append(plan.Phases, phase)
		phaseOrder++

		cursor = lastDay
		if remaining[cursor] <= 0 {
			cursor++
		}
		if cursor >= len(days) {
			cursor = len(days) - 1
		}
	}

	return plan, nil
}

// walkBudget finds the day index at which cumulative remaining capacity
// from start first covers budgetMin. Clamped to the last day.
func walkBudget(remaining []int, start, budgetMin int) int {
	acc := 0
	for i := start; i < len(remaining); i++ {
		acc += remaining[i]
		if acc >= budgetMin {
			return i
		}
	}
	return len(remaining) - 1
}

// sessionCount is ceil(minutes / focusSessionMin).
func sessionCount(needMin, focusMin int) int {
	if focusMin <= 0 {
		return 1
	}
	return (needMin + focusMin - 1) / focusMin
}

func indexOf(days []capacity.Day, date time.Time) int {
	for i, d := range days {
		if d.Date.Equal(date) {
			return i
		}
	}
	return -1
}
