// Package replan re-derives the not-yet-completed portion of a plan when
// the user falls behind or asks for it. Completed and past-due work is
// frozen; the engine builds a whole new plan value and hands it back, it
// never edits the stored plan in place.
package replan

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/averhoef/thesisflow/internal/capacity"
	"github.com/averhoef/thesisflow/internal/clock"
	"github.com/averhoef/thesisflow/internal/config"
	"github.com/averhoef/thesisflow/internal/domain"
	"github.com/averhoef/thesisflow/internal/progress"
	"github.com/averhoef/thesisflow/internal/proposer"
	"github.com/averhoef/thesisflow/internal/scheduler"
)

// ErrInFlight is returned when a replan for the same project is already
// running. The second trigger is coalesced: the caller re-reads state
// after the first run completes.
var ErrInFlight = errors.New("replan already in flight for project")

// Input is everything one replanning run needs. The engine reads it and
// returns a Result; persistence of the new plan and event is the
// caller's job.
type Input struct {
	Project *domain.Project
	Profile *domain.Profile
	Current *domain.Plan
	History []domain.ProgressRecord
	Trigger domain.ReplanTrigger

	// NewPlanID identifies the plan a successful run produces. Reusing
	// an ID reproduces the identical plan for identical inputs.
	NewPlanID string
}

// Delta describes how the future changed relative to the previous plan.
// Frozen tasks keep their identity and never appear here.
type Delta struct {
	Added   []string // new task IDs with no counterpart in the old future
	Removed []string // old future task IDs that no longer exist
	Moved   []string // new task IDs whose counterpart shifted dates
}

// Result is the outcome of one replanning run.
type Result struct {
	State          domain.ReplanState
	Plan           *domain.Plan // nil unless the run produced a feasible plan
	Delta          Delta
	Event          *domain.ReplanEvent
	Infeasible     bool
	ShortfallHours float64
	Reused         bool // same-day idempotent return, proposer not called
}

type fingerprint struct {
	day         time.Time
	recordCount int
	planID      string
}

// Engine serializes replanning per project and caches the latest
// successful run so repeated same-day triggers with no new progress do
// not re-call the proposer.
type Engine struct {
	proposer proposer.Proposer
	policy   config.Policy
	clk      clock.Clock

	mu     sync.Mutex
	active map[string]bool
	recent map[string]fingerprint
	cached map[string]*Result
}

func NewEngine(p proposer.Proposer, policy config.Policy, clk clock.Clock) *Engine {
	return &Engine{
		proposer: p,
		policy:   policy,
		clk:      clk,
		active:   make(map[string]bool),
		recent:   make(map[string]fingerprint),
		cached:   make(map[string]*Result),
	}
}

// Evaluate decides whether the tracker state warrants an automatic
// replan. Days-behind wins when both conditions hold; the two triggers
// are independent policies, not a combined formula.
func Evaluate(state progress.State, history []domain.ProgressRecord, policy config.Policy) (domain.ReplanTrigger, bool) {
	if state.DaysBehind >= policy.DaysBehindTrigger {
		return domain.TriggerDaysBehind, true
	}
	if progress.SustainedLowRate(history, policy) {
		return domain.TriggerCompletionRate, true
	}
	return "", false
}

// Replan runs one replanning pass. On proposer failure the returned
// result carries the failed state and the old plan stays authoritative;
// on an infeasible fit the result carries the shortfall instead of a
// plan. Only one run per project executes at a time.
func (e *Engine) Replan(ctx context.Context, in Input) (*Result, error) {
	projectID := in.Project.ID
	today := clock.Midnight(e.clk.Today())

	fp := fingerprint{day: today, recordCount: len(in.History), planID: in.Current.ID}

	e.mu.Lock()
	if e.active[projectID] {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrInFlight, projectID)
	}
	if prev, ok := e.recent[projectID]; ok && prev == fp {
		res := e.cached[projectID]
		e.mu.Unlock()
		return copyResult(res, true), nil
	}
	e.active[projectID] = true
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		delete(e.active, projectID)
		e.mu.Unlock()
	}()

	state := progress.ComputeState(in.History, e.policy, today)
	frozen := freezePast(in.Current, today)

	// New work may not start before the frozen boundary. An in-flight
	// phase with completed tasks freezes whole, so its end date can lie
	// after today and its remaining assigned days stay booked.
	notBefore := today
	for _, ph := range frozen {
		if ph.EndDate.After(notBefore) {
			notBefore = ph.EndDate
		}
	}

	cal, err := capacity.Compute(in.Profile, today, in.Profile.Deadline, e.policy)
	if err != nil {
		return nil, err
	}
	cal = cal.From(notBefore)

	prop, err := e.proposer.Propose(ctx, proposer.Request{
		GoalDescription: in.Project.GoalDescription,
		Field:           in.Project.Field,
		TotalHours:      cal.TotalHours(),
		FocusSessionMin: in.Profile.FocusSessionMin,
		RemainingScope:  remainingScope(in.Project, frozen),
	})
	if err != nil {
		// Old plan retained untouched; the caller surfaces a retry hint.
		return &Result{State: domain.ReplanFailedState}, err
	}

	newPlan, err := scheduler.Schedule(prop, cal, scheduler.Options{
		PlanID:          in.NewPlanID,
		ProjectID:       projectID,
		FocusSessionMin: in.Profile.FocusSessionMin,
		GeneratedAt:     e.clk.Now(),
		FixedPast:       frozen,
		NotBefore:       notBefore,
	})
	if err != nil {
		return nil, err
	}

	if newPlan.Status == domain.PlanInfeasible {
		return &Result{
			State:          domain.ReplanStable,
			Infeasible:     true,
			ShortfallHours: newPlan.ShortfallHours,
		}, nil
	}

	res := &Result{
		State: domain.ReplanStable,
		Plan:  newPlan,
		Delta: diff(in.Current, newPlan, frozen),
		Event: &domain.ReplanEvent{
			ID:             uuid.NewString(),
			ProjectID:      projectID,
			Trigger:        in.Trigger,
			DaysBehind:     state.DaysBehind,
			CompletionRate: state.CompletionRate,
			NewPlanID:      newPlan.ID,
			CreatedAt:      e.clk.Now(),
		},
	}

	// The cache keeps its own copy: the returned plan is the caller's to
	// mutate without corrupting the idempotent-reuse snapshot.
	e.mu.Lock()
	e.recent[projectID] = fingerprint{day: today, recordCount: len(in.History), planID: newPlan.ID}
	e.cached[projectID] = copyResult(res, false)
	e.mu.Unlock()

	return res, nil
}

// copyResult clones a result so the cache and callers never share plan
// or event storage.
func copyResult(res *Result, reused bool) *Result {
	out := *res
	out.Reused = reused
	out.Plan = clonePlan(res.Plan)
	if res.Event != nil {
		ev := *res.Event
		out.Event = &ev
	}
	return &out
}

// clonePlan deep-copies a plan, including per-task slices.
func clonePlan(p *domain.Plan) *domain.Plan {
	if p == nil {
		return nil
	}
	out := *p
	out.Phases = make([]domain.Phase, len(p.Phases))
	for i, ph := range p.Phases {
		cp := ph
		cp.Tasks = make([]domain.Task, len(ph.Tasks))
		for j, t := range ph.Tasks {
			ct := t
			ct.DependsOn = append([]string(nil), t.DependsOn...)
			ct.AssignedDates = append([]time.Time(nil), t.AssignedDates...)
			if t.CompletedAt != nil {
				at := *t.CompletedAt
				ct.CompletedAt = &at
			}
			cp.Tasks[j] = ct
		}
		out.Phases[i] = cp
	}
	return &out
}

// freezePast selects the phases that must not be reshaped: any phase
// with a completed task, or whose end date is not after today.
func freezePast(plan *domain.Plan, today time.Time) []domain.Phase {
	var frozen []domain.Phase
	for _, ph := range plan.Phases {
		if !ph.EndDate.After(today) {
			frozen = append(frozen, ph)
			continue
		}
		for _, t := range ph.Tasks {
			if t.Status == domain.TaskComplete {
				frozen = append(frozen, ph)
				break
			}
		}
	}
	return frozen
}

// remainingScope builds the textual description handed to the proposer:
// the original goal minus what the frozen phases already deliver.
func remainingScope(project *domain.Project, frozen []domain.Phase) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Original goal: %s\n", project.GoalDescription)
	if len(frozen) == 0 {
		b.WriteString("No work is locked in yet; replan the full scope.\n")
		return b.String()
	}
	b.WriteString("Already covered by completed or past phases (do not repeat):\n")
	for _, ph := range frozen {
		if ph.Deliverable != "" {
			fmt.Fprintf(&b, "- %s: %s\n", ph.Name, ph.Deliverable)
		} else {
			fmt.Fprintf(&b, "- %s\n", ph.Name)
		}
		for _, t := range ph.Tasks {
			if t.Status != domain.TaskComplete {
				fmt.Fprintf(&b, "  (unfinished, carry over: %s)\n", t.Title)
			}
		}
	}
	return b.String()
}

// diff compares the old plan's future tasks against the new plan's,
// matching by title. Frozen tasks are excluded on both sides.
func diff(old, next *domain.Plan, frozen []domain.Phase) Delta {
	frozenPhase := make(map[string]bool, len(frozen))
	for _, ph := range frozen {
		frozenPhase[ph.ID] = true
	}

	oldFuture := make(map[string]domain.Task)
	for _, ph := range old.Phases {
		if frozenPhase[ph.ID] {
			continue
		}
		for _, t := range ph.Tasks {
			oldFuture[t.Title] = t
		}
	}

	var d Delta
	seen := make(map[string]bool, len(oldFuture))
	for _, ph := range next.Phases {
		if frozenPhase[ph.ID] {
			continue
		}
		for _, t := range ph.Tasks {
			prev, ok := oldFuture[t.Title]
			if !ok {
				d.Added = append(d.Added, t.ID)
				continue
			}
			seen[t.Title] = true
			if !prev.DueDate.Equal(t.DueDate) || !prev.LastAssignedDate().Equal(t.LastAssignedDate()) {
				d.Moved = append(d.Moved, t.ID)
			}
		}
	}
	for title, t := range oldFuture {
		if !seen[title] {
			d.Removed = append(d.Removed, t.ID)
		}
	}
	sort.Strings(d.Removed)
	return d
}
