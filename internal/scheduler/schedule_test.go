package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averhoef/thesisflow/internal/capacity"
	"github.com/averhoef/thesisflow/internal/config"
	"github.com/averhoef/thesisflow/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// testCalendar builds the 12-week reference window: 4h/day, 5 work days,
// medium procrastination buffer, Monday 2025-03-03 through 2025-05-25.
// That yields 60 work days at 204 effective minutes each, 204 hours total.
func testCalendar(t *testing.T, days int) *capacity.Calendar {
	t.Helper()
	profile := &domain.Profile{
		DailyHours:      4,
		WorkDaysPerWeek: 5,
		FocusSessionMin: 45,
		Procrastination: domain.ProcrastinationMedium,
	}
	start := date(2025, time.March, 3)
	end := start.AddDate(0, 0, days-1)
	cal, err := capacity.Compute(profile, start, end, config.DefaultPolicy())
	require.NoError(t, err)
	return cal
}

// threePhaseProposal spreads totalHours over three phases weighted
// 0.3/0.4/0.3, two tasks per phase with a linear dependency.
func threePhaseProposal(totalHours float64) *domain.PlanProposal {
	weights := []float64{0.3, 0.4, 0.3}
	names := []string{"Literature Review", "Research & Writing", "Revision"}
	p := &domain.PlanProposal{}
	for i, w := range weights {
		half := totalHours * w / 2
		p.Phases = append(p.Phases, domain.PhaseProposal{
			Name:   names[i],
			Weight: w,
			Tasks: []domain.TaskProposal{
				{Title: names[i] + " (part 1 of 2)", EstimatedHours: half},
				{Title: names[i] + " (part 2 of 2)", EstimatedHours: half,
					DependsOn: []string{names[i] + " (part 1 of 2)"}},
			},
		})
	}
	return p
}

func testOpts() Options {
	return Options{
		PlanID:          "plan-1",
		ProjectID:       "proj-1",
		FocusSessionMin: 45,
		GeneratedAt:     date(2025, time.March, 3),
	}
}

func TestSchedule_FeasibleWindow(t *testing.T) {
	cal := testCalendar(t, 84)
	require.InDelta(t, 204.0, cal.TotalHours(), 0.01)

	plan, err := Schedule(threePhaseProposal(200), cal, testOpts())
	require.NoError(t, err)

	assert.Equal(t, domain.PlanFeasible, plan.Status)
	assert.Zero(t, plan.ShortfallHours)
	require.Len(t, plan.Phases, 3)

	// Phases cover the window in order without overlap.
	for i, ph := range plan.Phases {
		assert.Equal(t, i, ph.OrderIndex)
		assert.False(t, ph.EndDate.Before(ph.StartDate), "phase %s", ph.Name)
		if i > 0 {
			prev := plan.Phases[i-1]
			assert.False(t, ph.StartDate.Before(prev.EndDate),
				"phase %s starts before %s ends", ph.Name, prev.Name)
		}
	}
	assert.False(t, plan.Phases[0].StartDate.Before(cal.Days[0].Date))
	last := plan.Phases[len(plan.Phases)-1]
	assert.False(t, last.EndDate.After(cal.Days[len(cal.Days)-1].Date))
}

func TestSchedule_InfeasibleShortWindow(t *testing.T) {
	cal := testCalendar(t, 14) // 10 work days, 34 hours
	require.InDelta(t, 34.0, cal.TotalHours(), 0.01)

	plan, err := Schedule(threePhaseProposal(200), cal, testOpts())
	require.NoError(t, err)

	assert.Equal(t, domain.PlanInfeasible, plan.Status)
	assert.InDelta(t, 166.0, plan.ShortfallHours, 0.01)
	assert.Empty(t, plan.Phases, "infeasible plans carry no new phases")
}

func TestSchedule_Deterministic(t *testing.T) {
	cal := testCalendar(t, 84)
	opts := testOpts()

	a, err := Schedule(threePhaseProposal(200), cal, opts)
	require.NoError(t, err)
	b, err := Schedule(threePhaseProposal(200), cal, opts)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSchedule_IDsDerivedFromPlanID(t *testing.T) {
	cal := testCalendar(t, 84)
	plan, err := Schedule(threePhaseProposal(200), cal, testOpts())
	require.NoError(t, err)

	assert.Equal(t, "plan-1:ph1", plan.Phases[0].ID)
	assert.Equal(t, "plan-1:t1", plan.Phases[0].Tasks[0].ID)
	assert.Equal(t, "plan-1:t2", plan.Phases[0].Tasks[1].ID)
	for _, ph := range plan.Phases {
		for _, task := range ph.Tasks {
			assert.Equal(t, ph.ID, task.PhaseID)
		}
	}
}

func TestSchedule_NoDayOvercommitted(t *testing.T) {
	cal := testCalendar(t, 84)
	plan, err := Schedule(threePhaseProposal(200), cal, testOpts())
	require.NoError(t, err)

	// Work only lands on days with capacity, and assigned dates stay
	// inside the calendar window.
	capByDate := make(map[time.Time]int)
	for _, d := range cal.Days {
		capByDate[d.Date] = d.AvailableMin
	}
	for _, ph := range plan.Phases {
		for _, task := range ph.Tasks {
			for _, d := range task.AssignedDates {
				avail, inWindow := capByDate[d]
				require.True(t, inWindow, "task %q assigned outside the window", task.Title)
				assert.Positive(t, avail, "work assigned to zero-capacity day %s", d.Format("2006-01-02"))
			}
		}
	}
}

func TestSchedule_DependencyOrderRespected(t *testing.T) {
	cal := testCalendar(t, 84)
	plan, err := Schedule(threePhaseProposal(200), cal, testOpts())
	require.NoError(t, err)

	for _, ph := range plan.Phases {
		byTitle := make(map[string]domain.Task)
		for _, task := range ph.Tasks {
			byTitle[task.Title] = task
		}
		for _, task := range ph.Tasks {
			for _, depTitle := range []string{ph.Name + " (part 1 of 2)"} {
				dep, ok := byTitle[depTitle]
				if !ok || dep.Title == task.Title {
					continue
				}
				if len(task.AssignedDates) == 0 || len(dep.AssignedDates) == 0 {
					continue
				}
				assert.False(t, task.LastAssignedDate().Before(dep.LastAssignedDate()),
					"task %q finishes before its dependency %q", task.Title, dep.Title)
			}
		}
	}
}

func TestSchedule_DueDatesAtPhaseEnd(t *testing.T) {
	cal := testCalendar(t, 84)
	plan, err := Schedule(threePhaseProposal(200), cal, testOpts())
	require.NoError(t, err)

	for _, ph := range plan.Phases {
		for _, task := range ph.Tasks {
			assert.True(t, task.DueDate.Equal(ph.EndDate), "task %q", task.Title)
			assert.False(t, task.DueDate.Before(task.LastAssignedDate()),
				"task %q due before its last session", task.Title)
		}
	}
}

func TestSchedule_SessionsFromFocusLength(t *testing.T) {
	cal := testCalendar(t, 84)
	proposal := &domain.PlanProposal{
		Phases: []domain.PhaseProposal{{
			Name:   "Writing",
			Weight: 1.0,
			Tasks: []domain.TaskProposal{
				{Title: "Draft chapter", EstimatedHours: 3}, // 180 min / 45 = 4 sessions
			},
		}},
	}
	plan, err := Schedule(proposal, cal, testOpts())
	require.NoError(t, err)
	assert.Equal(t, 4, plan.Phases[0].Tasks[0].Sessions)
}

func TestSchedule_CycleRejected(t *testing.T) {
	cal := testCalendar(t, 84)
	proposal := &domain.PlanProposal{
		Phases: []domain.PhaseProposal{{
			Name:   "Analysis",
			Weight: 1.0,
			Tasks: []domain.TaskProposal{
				{Title: "a", EstimatedHours: 2, DependsOn: []string{"b"}},
				{Title: "b", EstimatedHours: 2, DependsOn: []string{"a"}},
			},
		}},
	}

	_, err := Schedule(proposal, cal, testOpts())
	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, "Analysis", cycleErr.Phase)
	assert.ElementsMatch(t, []string{"a", "b"}, cycleErr.Tasks)
}

func TestSchedule_FixedPastPrepended(t *testing.T) {
	cal := testCalendar(t, 84)
	frozen := domain.Phase{
		ID:         "plan-0:ph1",
		PlanID:     "plan-0",
		Name:       "Literature Review",
		StartDate:  date(2025, time.February, 3),
		EndDate:    date(2025, time.February, 28),
		OrderIndex: 0,
		Tasks: []domain.Task{
			{ID: "plan-0:t1", Title: "Survey prior work", Status: domain.TaskComplete},
		},
	}

	opts := testOpts()
	opts.PlanID = "plan-2"
	opts.FixedPast = []domain.Phase{frozen}
	opts.NotBefore = date(2025, time.March, 10)

	proposal := &domain.PlanProposal{
		Phases: []domain.PhaseProposal{{
			Name:   "Revision",
			Weight: 1.0,
			Tasks:  []domain.TaskProposal{{Title: "Revise draft", EstimatedHours: 10}},
		}},
	}
	plan, err := Schedule(proposal, cal, opts)
	require.NoError(t, err)

	require.Len(t, plan.Phases, 2)
	assert.Equal(t, "plan-0:ph1", plan.Phases[0].ID, "frozen phase keeps its identity")
	assert.Equal(t, "plan-2", plan.Phases[0].PlanID)
	assert.Equal(t, "plan-0:t1", plan.Phases[0].Tasks[0].ID)
	assert.Equal(t, 1, plan.Phases[1].OrderIndex)
	assert.False(t, plan.Phases[1].StartDate.Before(opts.NotBefore),
		"new work scheduled before the replan date")
}

func TestSchedule_ZeroCapacityCalendar(t *testing.T) {
	cal := &capacity.Calendar{Days: []capacity.Day{
		{Date: date(2025, time.March, 1)},
		{Date: date(2025, time.March, 2)},
	}}
	plan, err := Schedule(threePhaseProposal(10), cal, testOpts())
	require.NoError(t, err)
	assert.Equal(t, domain.PlanInfeasible, plan.Status)
	assert.InDelta(t, 10.0, plan.ShortfallHours, 0.01)
}

func TestTopoOrder_StableAndDepthAware(t *testing.T) {
	tasks := []domain.TaskProposal{
		{Title: "c", DependsOn: []string{"a", "b"}},
		{Title: "a"},
		{Title: "b", DependsOn: []string{"a"}},
	}
	out, err := topoOrder("Setup", tasks)
	require.NoError(t, err)

	titles := make([]string, len(out))
	for i, ot := range out {
		titles[i] = ot.task.Title
	}
	assert.Equal(t, []string{"a", "b", "c"}, titles)
	assert.Equal(t, 0, out[0].depth)
	assert.Equal(t, 1, out[1].depth)
	assert.Equal(t, 2, out[2].depth)
}

func TestTopoOrder_CrossPhaseDepsIgnored(t *testing.T) {
	tasks := []domain.TaskProposal{
		{Title: "x", DependsOn: []string{"from an earlier phase"}},
	}
	out, err := topoOrder("Writing", tasks)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 0, out[0].depth)
}

func TestCycleError_Message(t *testing.T) {
	err := &CycleError{Phase: "Analysis", Tasks: []string{"a", "b"}}
	assert.Contains(t, err.Error(), "Analysis")
	assert.Contains(t, err.Error(), "a -> b")
}
