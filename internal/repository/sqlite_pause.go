package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rvalverdem/takt/internal/db"
	"github.com/rvalverdem/takt/internal/domain"
)

const pauseColumns = `id, work_order_id, reason, start_at, end_at, created_at`

// SQLitePauseRepo implements PauseRepo using a SQLite database.
type SQLitePauseRepo struct {
	db db.DBTX
}

// NewSQLitePauseRepo creates a new SQLitePauseRepo.
func NewSQLitePauseRepo(conn db.DBTX) *SQLitePauseRepo {
	return &SQLitePauseRepo{db: conn}
}

func (r *SQLitePauseRepo) Create(ctx context.Context, p *domain.PauseWindow) error {
	query := `INSERT INTO pause_windows (id, work_order_id, reason, start_at, end_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.WorkOrderID,
		p.Reason,
		p.StartAt.UTC().Format(timeLayout),
		nullableTimeToString(p.EndAt),
		p.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting pause window: %w", err)
	}
	return nil
}

// Close stamps the pause's end. A pause that already ended keeps its
// original end; no synthetic end times are ever written for ongoing pauses
// except through this explicit call.
func (r *SQLitePauseRepo) Close(ctx context.Context, id string, endAt time.Time) error {
	query := `UPDATE pause_windows SET end_at = ? WHERE id = ? AND end_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, endAt.UTC().Format(timeLayout), id)
	if err != nil {
		return fmt.Errorf("closing pause window: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking pause window close: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("open pause window: %w", ErrNotFound)
	}
	return nil
}

// Open returns the work order's ongoing pause window, if any.
func (r *SQLitePauseRepo) Open(ctx context.Context, workOrderID string) (*domain.PauseWindow, error) {
	query := `SELECT ` + pauseColumns + ` FROM pause_windows
		WHERE work_order_id = ? AND end_at IS NULL ORDER BY start_at DESC LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, workOrderID)

	p, err := r.scanPause(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("open pause window: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning pause window: %w", err)
	}
	return p, nil
}

func (r *SQLitePauseRepo) ListByWorkOrder(ctx context.Context, workOrderID string) ([]domain.PauseWindow, error) {
	query := `SELECT ` + pauseColumns + ` FROM pause_windows
		WHERE work_order_id = ? ORDER BY start_at`
	rows, err := r.db.QueryContext(ctx, query, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("listing pause windows: %w", err)
	}
	defer rows.Close()

	var pauses []domain.PauseWindow
	for rows.Next() {
		p, err := r.scanPause(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning pause window row: %w", err)
		}
		pauses = append(pauses, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pause windows: %w", err)
	}
	return pauses, nil
}

func (r *SQLitePauseRepo) scanPause(scan func(dest ...any) error) (*domain.PauseWindow, error) {
	var p domain.PauseWindow
	var startAtStr, createdAtStr string
	var endAt sql.NullString

	err := scan(&p.ID, &p.WorkOrderID, &p.Reason, &startAtStr, &endAt, &createdAtStr)
	if err != nil {
		return nil, err
	}

	p.StartAt, err = time.Parse(timeLayout, startAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing start_at: %w", err)
	}
	p.EndAt = parseNullableTime(endAt)
	p.CreatedAt, err = time.Parse(timeLayout, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &p, nil
}
