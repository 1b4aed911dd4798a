package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averhoef/thesisflow/internal/domain"
	"github.com/averhoef/thesisflow/internal/testutil"
)

func TestProjectRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	p := testutil.Project("p1")
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, p.Field, got.Field)
	assert.Equal(t, p.GoalDescription, got.GoalDescription)
	assert.True(t, got.StartDate.Equal(p.StartDate))
	assert.True(t, got.Deadline.Equal(p.Deadline))
	assert.Equal(t, domain.ProjectActive, got.Status)
}

func TestProjectRepo_GetMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(database)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectRepo_GetByName(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.Project("p1")))

	got, err := repo.GetByName(ctx, "Thesis")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)
}

func TestProjectRepo_ListExcludesArchived(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	active := testutil.Project("p1")
	require.NoError(t, repo.Create(ctx, active))

	archived := testutil.Project("p2")
	archived.Name = "Old thesis"
	archived.Status = domain.ProjectArchived
	require.NoError(t, repo.Create(ctx, archived))

	visible, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "p1", visible[0].ID)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProjectRepo_Update(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	p := testutil.Project("p1")
	require.NoError(t, repo.Create(ctx, p))

	p.Status = domain.ProjectDone
	p.GoalDescription = "Finished"
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectDone, got.Status)
	assert.Equal(t, "Finished", got.GoalDescription)
}

func TestProjectRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.Project("p1")))
	require.NoError(t, repo.Delete(ctx, "p1"))

	_, err := repo.GetByID(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotFound)
}
