package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rvalverdem/takt/internal/db"
	"github.com/rvalverdem/takt/internal/domain"
)

// workOrderColumns is the canonical SELECT column list for work_orders.
const workOrderColumns = `id, order_no, line_id, product_id, status, qty_planned,
		break_start, break_end, timezone, roster_count, created_at, updated_at`

// SQLiteWorkOrderRepo implements WorkOrderRepo using a SQLite database.
type SQLiteWorkOrderRepo struct {
	db db.DBTX
}

// NewSQLiteWorkOrderRepo creates a new SQLiteWorkOrderRepo.
func NewSQLiteWorkOrderRepo(conn db.DBTX) *SQLiteWorkOrderRepo {
	return &SQLiteWorkOrderRepo{db: conn}
}

func (r *SQLiteWorkOrderRepo) Create(ctx context.Context, w *domain.WorkOrder) error {
	query := `INSERT INTO work_orders (id, order_no, line_id, product_id, status, qty_planned,
		break_start, break_end, timezone, roster_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.OrderNo,
		w.LineID,
		w.ProductID,
		string(w.Status),
		w.QtyPlanned,
		w.BreakStart,
		w.BreakEnd,
		w.Timezone,
		w.RosterCount,
		w.CreatedAt.UTC().Format(timeLayout),
		w.UpdatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting work order: %w", err)
	}
	return nil
}

func (r *SQLiteWorkOrderRepo) GetByID(ctx context.Context, id string) (*domain.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE id = ?`
	return r.getOne(ctx, query, id)
}

func (r *SQLiteWorkOrderRepo) GetByOrderNo(ctx context.Context, orderNo string) (*domain.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE order_no = ?`
	return r.getOne(ctx, query, orderNo)
}

func (r *SQLiteWorkOrderRepo) List(ctx context.Context, includeTerminal bool) ([]*domain.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders`
	if !includeTerminal {
		query += ` WHERE status NOT IN ('completed', 'cancelled')`
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing work orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.WorkOrder
	for rows.Next() {
		w, err := r.scanWorkOrder(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning work order row: %w", err)
		}
		orders = append(orders, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work orders: %w", err)
	}
	return orders, nil
}

func (r *SQLiteWorkOrderRepo) Update(ctx context.Context, w *domain.WorkOrder) error {
	query := `UPDATE work_orders SET order_no = ?, line_id = ?, product_id = ?, status = ?,
		qty_planned = ?, break_start = ?, break_end = ?, timezone = ?, roster_count = ?,
		updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		w.OrderNo,
		w.LineID,
		w.ProductID,
		string(w.Status),
		w.QtyPlanned,
		w.BreakStart,
		w.BreakEnd,
		w.Timezone,
		w.RosterCount,
		nowUTC(),
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating work order: %w", err)
	}
	return nil
}

func (r *SQLiteWorkOrderRepo) UpdateStatus(ctx context.Context, id string, status domain.WorkOrderStatus) error {
	query := `UPDATE work_orders SET status = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, string(status), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating work order status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking work order status update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("work order: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteWorkOrderRepo) getOne(ctx context.Context, query string, arg any) (*domain.WorkOrder, error) {
	row := r.db.QueryRowContext(ctx, query, arg)
	w, err := r.scanWorkOrder(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("work order: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work order: %w", err)
	}
	return w, nil
}

func (r *SQLiteWorkOrderRepo) scanWorkOrder(scan func(dest ...any) error) (*domain.WorkOrder, error) {
	var w domain.WorkOrder
	var status string
	var createdAtStr, updatedAtStr string

	err := scan(
		&w.ID, &w.OrderNo, &w.LineID, &w.ProductID, &status, &w.QtyPlanned,
		&w.BreakStart, &w.BreakEnd, &w.Timezone, &w.RosterCount, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	w.Status = domain.WorkOrderStatus(status)
	w.CreatedAt, err = time.Parse(timeLayout, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	w.UpdatedAt, err = time.Parse(timeLayout, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &w, nil
}
