package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rvalverdem/takt/internal/domain"
	"github.com/rvalverdem/takt/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedWorkOrder(t *testing.T, repo *SQLiteWorkOrderRepo) *domain.WorkOrder {
	t.Helper()
	wo := testutil.NewTestWorkOrder()
	require.NoError(t, repo.Create(context.Background(), wo))
	return wo
}

func TestScanEventRepo_AppendAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	woRepo := NewSQLiteWorkOrderRepo(database)
	repo := NewSQLiteScanEventRepo(database)

	wo := seedWorkOrder(t, woRepo)
	ev := testutil.NewTestScanEvent(wo.ID, "SN001", domain.ScanIn, testutil.WithEmployee("emp-1"))
	require.NoError(t, repo.Append(ctx, ev))

	got, err := repo.GetByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, ev.Serial, got.Serial)
	assert.Equal(t, domain.ScanIn, got.Kind)
	assert.Equal(t, "emp-1", got.EmployeeID)
	assert.True(t, got.OccurredAt.Equal(ev.OccurredAt))
}

func TestScanEventRepo_GetByID_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteScanEventRepo(database)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScanEventRepo_NullEmployeeRoundTrips(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	woRepo := NewSQLiteWorkOrderRepo(database)
	repo := NewSQLiteScanEventRepo(database)

	wo := seedWorkOrder(t, woRepo)
	ev := testutil.NewTestScanEvent(wo.ID, "SN001", domain.ScanIn)
	require.NoError(t, repo.Append(ctx, ev))

	got, err := repo.GetByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Empty(t, got.EmployeeID)
}

func TestScanEventRepo_ListByWorkOrder_OrderedByTime(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	woRepo := NewSQLiteWorkOrderRepo(database)
	repo := NewSQLiteScanEventRepo(database)

	wo := seedWorkOrder(t, woRepo)
	base := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)

	// Insert out of chronological order.
	later := testutil.NewTestScanEvent(wo.ID, "SN001", domain.ScanOut, testutil.WithOccurredAt(base.Add(30*time.Minute)))
	earlier := testutil.NewTestScanEvent(wo.ID, "SN001", domain.ScanIn, testutil.WithOccurredAt(base))
	require.NoError(t, repo.Append(ctx, later))
	require.NoError(t, repo.Append(ctx, earlier))

	events, err := repo.ListByWorkOrder(ctx, wo.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.ScanIn, events[0].Kind)
	assert.Equal(t, domain.ScanOut, events[1].Kind)
}

func TestScanEventRepo_SubSecondInstantsSortCorrectly(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	woRepo := NewSQLiteWorkOrderRepo(database)
	repo := NewSQLiteScanEventRepo(database)

	wo := seedWorkOrder(t, woRepo)
	base := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

	// A trimmed-zero format would store "…00.5Z" and "…00Z", which sort
	// backwards lexicographically. Insert the later instant first.
	half := testutil.NewTestScanEvent(wo.ID, "SN001", domain.ScanOut,
		testutil.WithOccurredAt(base.Add(500*time.Millisecond)))
	whole := testutil.NewTestScanEvent(wo.ID, "SN001", domain.ScanIn,
		testutil.WithOccurredAt(base))
	require.NoError(t, repo.Append(ctx, half))
	require.NoError(t, repo.Append(ctx, whole))

	events, err := repo.ListByWorkOrder(ctx, wo.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.ScanIn, events[0].Kind)
	assert.Equal(t, domain.ScanOut, events[1].Kind)
	assert.True(t, events[1].OccurredAt.Equal(base.Add(500*time.Millisecond)))
}

func TestScanEventRepo_ListBySerial_FiltersOtherSerials(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	woRepo := NewSQLiteWorkOrderRepo(database)
	repo := NewSQLiteScanEventRepo(database)

	wo := seedWorkOrder(t, woRepo)
	require.NoError(t, repo.Append(ctx, testutil.NewTestScanEvent(wo.ID, "SN001", domain.ScanIn)))
	require.NoError(t, repo.Append(ctx, testutil.NewTestScanEvent(wo.ID, "SN002", domain.ScanIn)))

	events, err := repo.ListBySerial(ctx, wo.ID, "SN001")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "SN001", events[0].Serial)
}

func TestScanEventRepo_DeleteByIDs_RemovesPair(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	woRepo := NewSQLiteWorkOrderRepo(database)
	repo := NewSQLiteScanEventRepo(database)

	wo := seedWorkOrder(t, woRepo)
	in := testutil.NewTestScanEvent(wo.ID, "SN001", domain.ScanIn)
	out := testutil.NewTestScanEvent(wo.ID, "SN001", domain.ScanOut)
	keep := testutil.NewTestScanEvent(wo.ID, "SN002", domain.ScanIn)
	require.NoError(t, repo.Append(ctx, in))
	require.NoError(t, repo.Append(ctx, out))
	require.NoError(t, repo.Append(ctx, keep))

	n, err := repo.DeleteByIDs(ctx, []string{in.ID, out.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	count, err := repo.CountByWorkOrder(ctx, wo.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestScanEventRepo_DeleteByIDs_EmptyIsNoop(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteScanEventRepo(database)

	n, err := repo.DeleteByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
