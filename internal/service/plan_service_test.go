package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averhoef/thesisflow/internal/config"
	"github.com/averhoef/thesisflow/internal/domain"
	"github.com/averhoef/thesisflow/internal/proposer"
	"github.com/averhoef/thesisflow/internal/repository"
	"github.com/averhoef/thesisflow/internal/testutil"
)

func intake(deadline time.Time) IntakeInput {
	return IntakeInput{
		Name:            "Thesis",
		Field:           "computer-science",
		GoalDescription: "Write a master's thesis on distributed consensus protocols",
		Deadline:        deadline,
		Timezone:        "UTC",
		DailyHours:      4,
		WorkDaysPerWeek: 5,
		FocusSessionMin: 45,
		Procrastination: domain.ProcrastinationMedium,
	}
}

func TestPlanService_GeneratePlan(t *testing.T) {
	database := testutil.NewTestDB(t)
	clk := newTestClock(testutil.Date(2025, time.March, 3))
	svc := NewPlanService(database, proposer.NewTemplateProposer(), config.DefaultPolicy(), clk)
	ctx := context.Background()

	res, err := svc.GeneratePlan(ctx, intake(testutil.Date(2025, time.May, 25)))
	require.NoError(t, err)

	assert.Equal(t, domain.PlanFeasible, res.Plan.Status)
	assert.NotEmpty(t, res.Plan.Phases)

	// The plan is stored as current and survives a reload.
	stored, err := svc.GetCurrentPlan(ctx, res.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Plan.ID, stored.ID)
	assert.Len(t, stored.Phases, len(res.Plan.Phases))

	// Phases come back sequential and non-overlapping.
	for i := 1; i < len(stored.Phases); i++ {
		assert.False(t, stored.Phases[i].StartDate.Before(stored.Phases[i-1].EndDate))
	}
}

// fixedScopeProposer always proposes the same 200-hour decomposition,
// regardless of available capacity.
type fixedScopeProposer struct{}

func (fixedScopeProposer) Propose(_ context.Context, _ proposer.Request) (*domain.PlanProposal, error) {
	return &domain.PlanProposal{
		Phases: []domain.PhaseProposal{
			{Name: "Literature Review", Weight: 0.3, Tasks: []domain.TaskProposal{
				{Title: "Survey prior work", EstimatedHours: 60},
			}},
			{Name: "Research & Writing", Weight: 0.4, Tasks: []domain.TaskProposal{
				{Title: "Run experiments", EstimatedHours: 80},
			}},
			{Name: "Revision", Weight: 0.3, Tasks: []domain.TaskProposal{
				{Title: "Revise draft", EstimatedHours: 60},
			}},
		},
	}, nil
}

func TestPlanService_GeneratePlanInfeasible(t *testing.T) {
	database := testutil.NewTestDB(t)
	clk := newTestClock(testutil.Date(2025, time.March, 3))
	svc := NewPlanService(database, fixedScopeProposer{}, config.DefaultPolicy(), clk)
	ctx := context.Background()

	// Two weeks of runway cannot fit 200 hours of work.
	res, err := svc.GeneratePlan(ctx, intake(testutil.Date(2025, time.March, 16)))
	require.NoError(t, err)

	assert.Equal(t, domain.PlanInfeasible, res.Plan.Status)
	assert.Positive(t, res.Plan.ShortfallHours)

	// Infeasible plans are never stored as current.
	_, err = svc.GetCurrentPlan(ctx, res.Project.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPlanService_GetDailyAssignment(t *testing.T) {
	database := testutil.NewTestDB(t)
	clk := newTestClock(testutil.Date(2025, time.March, 3))
	svc := NewPlanService(database, proposer.NewTemplateProposer(), config.DefaultPolicy(), clk)
	ctx := context.Background()

	res, err := svc.GeneratePlan(ctx, intake(testutil.Date(2025, time.May, 25)))
	require.NoError(t, err)

	// 2025-03-03 is a Monday work day; something must be assigned.
	tasks, err := svc.GetDailyAssignment(ctx, res.Project.ID, testutil.Date(2025, time.March, 3))
	require.NoError(t, err)
	require.NotEmpty(t, tasks)
	for i := 1; i < len(tasks); i++ {
		assert.LessOrEqual(t, tasks[i-1].Priority, tasks[i].Priority, "ordered by priority")
	}

	// Saturday carries no capacity for a 5-day week.
	weekend, err := svc.GetDailyAssignment(ctx, res.Project.ID, testutil.Date(2025, time.March, 8))
	require.NoError(t, err)
	assert.Empty(t, weekend)
}

func TestPlanService_CompleteTask(t *testing.T) {
	database := testutil.NewTestDB(t)
	clk := newTestClock(testutil.Date(2025, time.March, 3))
	svc := NewPlanService(database, proposer.NewTemplateProposer(), config.DefaultPolicy(), clk)
	ctx := context.Background()

	res, err := svc.GeneratePlan(ctx, intake(testutil.Date(2025, time.May, 25)))
	require.NoError(t, err)
	taskID := res.Plan.Phases[0].Tasks[0].ID

	require.NoError(t, svc.CompleteTask(ctx, res.Project.ID, taskID))

	stored, err := svc.GetCurrentPlan(ctx, res.Project.ID)
	require.NoError(t, err)
	task := stored.TaskByID(taskID)
	require.NotNil(t, task)
	assert.Equal(t, domain.TaskComplete, task.Status)
	assert.NotNil(t, task.CompletedAt)
}

func TestPlanService_CompleteTaskMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	clk := newTestClock(testutil.Date(2025, time.March, 3))
	svc := NewPlanService(database, proposer.NewTemplateProposer(), config.DefaultPolicy(), clk)
	ctx := context.Background()

	res, err := svc.GeneratePlan(ctx, intake(testutil.Date(2025, time.May, 25)))
	require.NoError(t, err)

	err = svc.CompleteTask(ctx, res.Project.ID, "no-such-task")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPlanService_FindProject(t *testing.T) {
	database := testutil.NewTestDB(t)
	clk := newTestClock(testutil.Date(2025, time.March, 3))
	svc := NewPlanService(database, proposer.NewTemplateProposer(), config.DefaultPolicy(), clk)
	ctx := context.Background()

	res, err := svc.GeneratePlan(ctx, intake(testutil.Date(2025, time.May, 25)))
	require.NoError(t, err)

	byID, err := svc.FindProject(ctx, res.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Project.ID, byID.ID)

	byName, err := svc.FindProject(ctx, "Thesis")
	require.NoError(t, err)
	assert.Equal(t, res.Project.ID, byName.ID)

	_, err = svc.FindProject(ctx, "Dissertation")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	projects, err := svc.ListProjects(ctx, false)
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}
