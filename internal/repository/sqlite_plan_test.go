package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averhoef/thesisflow/internal/db"
	"github.com/averhoef/thesisflow/internal/domain"
	"github.com/averhoef/thesisflow/internal/testutil"
)

func seedProject(t *testing.T, repo *SQLiteProjectRepo) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), testutil.Project("p1")))
}

func TestPlanRepo_SaveAndGetCurrent(t *testing.T) {
	database := testutil.NewTestDB(t)
	seedProject(t, NewSQLiteProjectRepo(database))
	plans := NewSQLitePlanRepo(database)
	ctx := context.Background()

	plan := testutil.Plan("plan-1", "p1")
	require.NoError(t, plans.SaveCurrent(ctx, plan))

	got, err := plans.GetCurrent(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "plan-1", got.ID)
	assert.Equal(t, domain.PlanFeasible, got.Status)
	require.Len(t, got.Phases, 2)

	ph := got.Phases[0]
	assert.Equal(t, "plan-1:ph1", ph.ID)
	assert.Equal(t, "Literature Review", ph.Name)
	require.Len(t, ph.Tasks, 2)

	task := ph.Tasks[0]
	assert.Equal(t, "plan-1:t1", task.ID)
	assert.Equal(t, "Survey prior work", task.Title)
	assert.Len(t, task.AssignedDates, 2)
	assert.Equal(t, 27, task.Sessions)

	assert.Equal(t, []string{"Survey prior work"}, ph.Tasks[1].DependsOn)
}

func TestPlanRepo_SaveCurrentSwapsAtomically(t *testing.T) {
	database := testutil.NewTestDB(t)
	seedProject(t, NewSQLiteProjectRepo(database))
	uow := testutil.NewTestUOW(database)
	ctx := context.Background()

	plans := NewSQLitePlanRepo(database)
	require.NoError(t, plans.SaveCurrent(ctx, testutil.Plan("plan-1", "p1")))

	// Replace the current plan inside a unit of work.
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLitePlanRepo(tx).SaveCurrent(ctx, testutil.Plan("plan-2", "p1"))
	})
	require.NoError(t, err)

	got, err := plans.GetCurrent(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "plan-2", got.ID)

	// The superseded plan is retained for audit, just no longer current.
	old, err := plans.GetByID(ctx, "plan-1")
	require.NoError(t, err)
	assert.Equal(t, "plan-1", old.ID)
}

func TestPlanRepo_FrozenPhaseSharedAcrossPlans(t *testing.T) {
	database := testutil.NewTestDB(t)
	seedProject(t, NewSQLiteProjectRepo(database))
	plans := NewSQLitePlanRepo(database)
	ctx := context.Background()

	first := testutil.Plan("plan-1", "p1")
	require.NoError(t, plans.SaveCurrent(ctx, first))

	// A replan carries phase plan-1:ph1 forward unchanged into plan-2.
	second := testutil.Plan("plan-2", "p1")
	second.Phases[0] = first.Phases[0]
	second.Phases[0].PlanID = "plan-2"
	require.NoError(t, plans.SaveCurrent(ctx, second))

	got, err := plans.GetCurrent(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "plan-1:ph1", got.Phases[0].ID, "frozen phase keeps its identity")
	assert.Equal(t, "plan-1:t1", got.Phases[0].Tasks[0].ID)
}

func TestPlanRepo_UpdateTaskStatus(t *testing.T) {
	database := testutil.NewTestDB(t)
	seedProject(t, NewSQLiteProjectRepo(database))
	plans := NewSQLitePlanRepo(database)
	ctx := context.Background()

	require.NoError(t, plans.SaveCurrent(ctx, testutil.Plan("plan-1", "p1")))

	done := time.Date(2025, time.March, 5, 18, 0, 0, 0, time.UTC)
	require.NoError(t, plans.UpdateTaskStatus(ctx, "plan-1", "plan-1:t1", domain.TaskComplete, &done))

	got, err := plans.GetCurrent(ctx, "p1")
	require.NoError(t, err)
	task := got.TaskByID("plan-1:t1")
	require.NotNil(t, task)
	assert.Equal(t, domain.TaskComplete, task.Status)
	require.NotNil(t, task.CompletedAt)
	assert.True(t, task.CompletedAt.Equal(done))
}

func TestPlanRepo_UpdateTaskStatusMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	seedProject(t, NewSQLiteProjectRepo(database))
	plans := NewSQLitePlanRepo(database)

	err := plans.UpdateTaskStatus(context.Background(), "plan-1", "nope", domain.TaskComplete, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlanRepo_GetCurrentMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	plans := NewSQLitePlanRepo(database)

	_, err := plans.GetCurrent(context.Background(), "p1")
	assert.ErrorIs(t, err, ErrNotFound)
}
