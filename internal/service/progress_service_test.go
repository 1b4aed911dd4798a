package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averhoef/thesisflow/internal/config"
	"github.com/averhoef/thesisflow/internal/domain"
	"github.com/averhoef/thesisflow/internal/progress"
	"github.com/averhoef/thesisflow/internal/repository"
	"github.com/averhoef/thesisflow/internal/testutil"
)

func TestProgressService_RecordAndState(t *testing.T) {
	database := testutil.NewTestDB(t)
	require.NoError(t,
		repository.NewSQLiteProjectRepo(database).Create(context.Background(), testutil.Project("p1")))

	clk := newTestClock(testutil.Date(2025, time.March, 18))
	svc := NewProgressService(database, config.DefaultPolicy(), clk)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.RecordProgress(ctx, "p1", testutil.Date(2025, time.March, 15+i), 5, 1, 2)
		require.NoError(t, err)
	}

	state, err := svc.GetProgressState(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 3, state.DaysBehind)
	assert.InDelta(t, 0.2, state.CompletionRate, 0.001)
	assert.Zero(t, state.Streak)
}

func TestProgressService_RejectsInvalidRecord(t *testing.T) {
	database := testutil.NewTestDB(t)
	require.NoError(t,
		repository.NewSQLiteProjectRepo(database).Create(context.Background(), testutil.Project("p1")))

	clk := newTestClock(testutil.Date(2025, time.March, 18))
	svc := NewProgressService(database, config.DefaultPolicy(), clk)

	_, err := svc.RecordProgress(context.Background(), "p1", testutil.Date(2025, time.March, 15), 3, 5, 1)
	assert.ErrorIs(t, err, progress.ErrInvalidRecord)

	// Nothing was persisted.
	state, err := svc.GetProgressState(context.Background(), "p1")
	require.NoError(t, err)
	assert.Zero(t, state)
}

func TestProgressService_RecordForUnknownProject(t *testing.T) {
	database := testutil.NewTestDB(t)
	clk := newTestClock(testutil.Date(2025, time.March, 18))
	svc := NewProgressService(database, config.DefaultPolicy(), clk)

	_, err := svc.RecordProgress(context.Background(), "ghost", testutil.Date(2025, time.March, 15), 5, 2, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProgressService_CheckTriggers(t *testing.T) {
	database := testutil.NewTestDB(t)
	require.NoError(t,
		repository.NewSQLiteProjectRepo(database).Create(context.Background(), testutil.Project("p1")))

	clk := newTestClock(testutil.Date(2025, time.March, 18))
	svc := NewProgressService(database, config.DefaultPolicy(), clk)
	ctx := context.Background()

	t.Run("healthy history does not fire", func(t *testing.T) {
		_, fired, err := svc.CheckTriggers(ctx, "p1")
		require.NoError(t, err)
		assert.False(t, fired)
	})

	t.Run("three behind days fire the days-behind trigger", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			_, err := svc.RecordProgress(ctx, "p1", testutil.Date(2025, time.March, 15+i), 5, 1, 2)
			require.NoError(t, err)
		}
		trigger, fired, err := svc.CheckTriggers(ctx, "p1")
		require.NoError(t, err)
		require.True(t, fired)
		assert.Equal(t, domain.TriggerDaysBehind, trigger)
	})
}

func TestProgressService_CorrectionReplacesDay(t *testing.T) {
	database := testutil.NewTestDB(t)
	require.NoError(t,
		repository.NewSQLiteProjectRepo(database).Create(context.Background(), testutil.Project("p1")))

	clk := newTestClock(testutil.Date(2025, time.March, 15))
	svc := NewProgressService(database, config.DefaultPolicy(), clk)
	ctx := context.Background()

	_, err := svc.RecordProgress(ctx, "p1", testutil.Date(2025, time.March, 15), 5, 0, 1)
	require.NoError(t, err)
	_, err = svc.RecordProgress(ctx, "p1", testutil.Date(2025, time.March, 15), 5, 5, 4)
	require.NoError(t, err)

	state, err := svc.GetProgressState(ctx, "p1")
	require.NoError(t, err)
	assert.Zero(t, state.DaysBehind)
	assert.InDelta(t, 1.0, state.CompletionRate, 0.001)
}
