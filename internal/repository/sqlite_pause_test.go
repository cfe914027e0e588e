package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rvalverdem/takt/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPauseRepo_CreateAndOpen(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	woRepo := NewSQLiteWorkOrderRepo(database)
	repo := NewSQLitePauseRepo(database)

	wo := seedWorkOrder(t, woRepo)
	p := testutil.NewTestPause(wo.ID, "material shortage", time.Now().UTC(), nil)
	require.NoError(t, repo.Create(ctx, p))

	open, err := repo.Open(ctx, wo.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, open.ID)
	assert.True(t, open.Ongoing())
	assert.Equal(t, "material shortage", open.Reason)
}

func TestPauseRepo_Open_NoneReturnsNotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	woRepo := NewSQLiteWorkOrderRepo(database)
	repo := NewSQLitePauseRepo(database)

	wo := seedWorkOrder(t, woRepo)
	_, err := repo.Open(context.Background(), wo.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPauseRepo_CloseStampsEnd(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	woRepo := NewSQLiteWorkOrderRepo(database)
	repo := NewSQLitePauseRepo(database)

	wo := seedWorkOrder(t, woRepo)
	start := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	p := testutil.NewTestPause(wo.ID, "changeover", start, nil)
	require.NoError(t, repo.Create(ctx, p))

	end := start.Add(15 * time.Minute)
	require.NoError(t, repo.Close(ctx, p.ID, end))

	pauses, err := repo.ListByWorkOrder(ctx, wo.ID)
	require.NoError(t, err)
	require.Len(t, pauses, 1)
	require.NotNil(t, pauses[0].EndAt)
	assert.True(t, pauses[0].EndAt.Equal(end))

	// No ongoing pause remains.
	_, err = repo.Open(ctx, wo.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPauseRepo_CloseTwiceFails(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	woRepo := NewSQLiteWorkOrderRepo(database)
	repo := NewSQLitePauseRepo(database)

	wo := seedWorkOrder(t, woRepo)
	p := testutil.NewTestPause(wo.ID, "jam", time.Now().UTC(), nil)
	require.NoError(t, repo.Create(ctx, p))
	require.NoError(t, repo.Close(ctx, p.ID, time.Now().UTC()))

	err := repo.Close(ctx, p.ID, time.Now().UTC())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPauseRepo_ListOrderedByStart(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	woRepo := NewSQLiteWorkOrderRepo(database)
	repo := NewSQLitePauseRepo(database)

	wo := seedWorkOrder(t, woRepo)
	base := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	end1 := base.Add(10 * time.Minute)
	second := testutil.NewTestPause(wo.ID, "second", base.Add(time.Hour), nil)
	first := testutil.NewTestPause(wo.ID, "first", base, &end1)
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))

	pauses, err := repo.ListByWorkOrder(ctx, wo.ID)
	require.NoError(t, err)
	require.Len(t, pauses, 2)
	assert.Equal(t, "first", pauses[0].Reason)
	assert.Equal(t, "second", pauses[1].Reason)
}
