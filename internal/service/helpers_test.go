package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/rvalverdem/takt/internal/domain"
	"github.com/rvalverdem/takt/internal/repository"
	"github.com/rvalverdem/takt/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db         *sql.DB
	workOrders *repository.SQLiteWorkOrderRepo
	events     *repository.SQLiteScanEventRepo
	pauses     *repository.SQLitePauseRepo
	employees  *repository.SQLiteEmployeeRepo
	scans      ScanService
	orders     WorkOrderService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return buildEnv(database)
}

// setupFileEnv backs the environment with a file DB so concurrent
// connections share state.
func setupFileEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewFileTestDB(t)
	return buildEnv(database)
}

func buildEnv(database *sql.DB) *testEnv {
	workOrders := repository.NewSQLiteWorkOrderRepo(database)
	events := repository.NewSQLiteScanEventRepo(database)
	pauses := repository.NewSQLitePauseRepo(database)
	employees := repository.NewSQLiteEmployeeRepo(database)
	uow := testutil.NewTestUoW(database)

	return &testEnv{
		db:         database,
		workOrders: workOrders,
		events:     events,
		pauses:     pauses,
		employees:  employees,
		scans:      NewScanService(workOrders, events, pauses, employees, uow),
		orders:     NewWorkOrderService(workOrders, pauses, uow),
	}
}

func (e *testEnv) seedWorkOrder(t *testing.T, opts ...testutil.WorkOrderOption) *domain.WorkOrder {
	t.Helper()
	wo := testutil.NewTestWorkOrder(opts...)
	require.NoError(t, e.workOrders.Create(context.Background(), wo))
	return wo
}
