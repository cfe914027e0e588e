package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rvalverdem/takt/internal/db"
	"github.com/rvalverdem/takt/internal/domain"
)

// SQLiteEmployeeRepo implements EmployeeRepo using a SQLite database.
type SQLiteEmployeeRepo struct {
	db db.DBTX
}

// NewSQLiteEmployeeRepo creates a new SQLiteEmployeeRepo.
func NewSQLiteEmployeeRepo(conn db.DBTX) *SQLiteEmployeeRepo {
	return &SQLiteEmployeeRepo{db: conn}
}

func (r *SQLiteEmployeeRepo) Create(ctx context.Context, e *domain.Employee) error {
	query := `INSERT INTO employees (id, name, badge, active, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Name,
		e.Badge,
		boolToInt(e.Active),
		e.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting employee: %w", err)
	}
	return nil
}

func (r *SQLiteEmployeeRepo) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	query := `SELECT id, name, badge, active, created_at FROM employees WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	e, err := r.scanEmployee(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("employee: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning employee: %w", err)
	}
	return e, nil
}

func (r *SQLiteEmployeeRepo) List(ctx context.Context, activeOnly bool) ([]*domain.Employee, error) {
	query := `SELECT id, name, badge, active, created_at FROM employees`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	var employees []*domain.Employee
	for rows.Next() {
		e, err := r.scanEmployee(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning employee row: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employees: %w", err)
	}
	return employees, nil
}

func (r *SQLiteEmployeeRepo) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees WHERE active = 1`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting active employees: %w", err)
	}
	return count, nil
}

func (r *SQLiteEmployeeRepo) scanEmployee(scan func(dest ...any) error) (*domain.Employee, error) {
	var e domain.Employee
	var active int
	var createdAtStr string

	err := scan(&e.ID, &e.Name, &e.Badge, &active, &createdAtStr)
	if err != nil {
		return nil, err
	}

	e.Active = intToBool(active)
	e.CreatedAt, err = time.Parse(timeLayout, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &e, nil
}
