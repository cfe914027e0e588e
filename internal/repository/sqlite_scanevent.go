package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rvalverdem/takt/internal/db"
	"github.com/rvalverdem/takt/internal/domain"
)

// scanEventColumns is the canonical SELECT column list for scan_events.
const scanEventColumns = `id, work_order_id, line_id, product_id, serial, kind,
		employee_id, occurred_at, created_at`

// SQLiteScanEventRepo implements ScanEventRepo using a SQLite database.
// The table is append-only; there is deliberately no Update method.
type SQLiteScanEventRepo struct {
	db db.DBTX
}

// NewSQLiteScanEventRepo creates a new SQLiteScanEventRepo. Pass a *sql.Tx
// (via db.DBTX) to scope the repository to a transaction.
func NewSQLiteScanEventRepo(conn db.DBTX) *SQLiteScanEventRepo {
	return &SQLiteScanEventRepo{db: conn}
}

func (r *SQLiteScanEventRepo) Append(ctx context.Context, e *domain.ScanEvent) error {
	query := `INSERT INTO scan_events (id, work_order_id, line_id, product_id, serial, kind,
		employee_id, occurred_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.WorkOrderID,
		e.LineID,
		e.ProductID,
		e.Serial,
		string(e.Kind),
		nullableString(e.EmployeeID),
		e.OccurredAt.UTC().Format(timeLayout),
		e.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("appending scan event: %w", err)
	}
	return nil
}

func (r *SQLiteScanEventRepo) GetByID(ctx context.Context, id string) (*domain.ScanEvent, error) {
	query := `SELECT ` + scanEventColumns + ` FROM scan_events WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	e, err := r.scanEvent(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("scan event: %w", ErrNotFound)
		}
		return nil, err
	}
	return e, nil
}

func (r *SQLiteScanEventRepo) ListByWorkOrder(ctx context.Context, workOrderID string) ([]domain.ScanEvent, error) {
	query := `SELECT ` + scanEventColumns + ` FROM scan_events
		WHERE work_order_id = ? ORDER BY occurred_at, id`
	rows, err := r.db.QueryContext(ctx, query, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("listing scan events: %w", err)
	}
	defer rows.Close()
	return r.scanEvents(rows)
}

func (r *SQLiteScanEventRepo) ListBySerial(ctx context.Context, workOrderID, serial string) ([]domain.ScanEvent, error) {
	query := `SELECT ` + scanEventColumns + ` FROM scan_events
		WHERE work_order_id = ? AND serial = ? ORDER BY occurred_at, id`
	rows, err := r.db.QueryContext(ctx, query, workOrderID, serial)
	if err != nil {
		return nil, fmt.Errorf("listing scan events by serial: %w", err)
	}
	defer rows.Close()
	return r.scanEvents(rows)
}

// DeleteByIDs removes the given events in one statement and returns the
// number of rows removed. Session correction calls this inside a
// transaction so an IN/OUT pair never half-disappears.
func (r *SQLiteScanEventRepo) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM scan_events WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting scan events: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted scan events: %w", err)
	}
	return n, nil
}

func (r *SQLiteScanEventRepo) CountByWorkOrder(ctx context.Context, workOrderID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM scan_events WHERE work_order_id = ?`, workOrderID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting scan events: %w", err)
	}
	return count, nil
}

// scanEvent scans one event via the given row Scan func.
func (r *SQLiteScanEventRepo) scanEvent(scan func(dest ...any) error) (*domain.ScanEvent, error) {
	var e domain.ScanEvent
	var kind string
	var employeeID sql.NullString
	var occurredAtStr, createdAtStr string

	err := scan(
		&e.ID, &e.WorkOrderID, &e.LineID, &e.ProductID, &e.Serial, &kind,
		&employeeID, &occurredAtStr, &createdAtStr,
	)
	if err != nil {
		return nil, err
	}

	e.Kind = domain.ScanKind(kind)
	if employeeID.Valid {
		e.EmployeeID = employeeID.String
	}

	e.OccurredAt, err = time.Parse(timeLayout, occurredAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing occurred_at: %w", err)
	}
	e.CreatedAt, err = time.Parse(timeLayout, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &e, nil
}

// scanEvents scans multiple events from *sql.Rows.
func (r *SQLiteScanEventRepo) scanEvents(rows *sql.Rows) ([]domain.ScanEvent, error) {
	var events []domain.ScanEvent
	for rows.Next() {
		e, err := r.scanEvent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning scan event row: %w", err)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scan events: %w", err)
	}
	return events, nil
}
