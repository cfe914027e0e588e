package repository

import (
	"context"
	"time"

	"github.com/rvalverdem/takt/internal/domain"
)

type WorkOrderRepo interface {
	Create(ctx context.Context, w *domain.WorkOrder) error
	GetByID(ctx context.Context, id string) (*domain.WorkOrder, error)
	GetByOrderNo(ctx context.Context, orderNo string) (*domain.WorkOrder, error)
	List(ctx context.Context, includeTerminal bool) ([]*domain.WorkOrder, error)
	Update(ctx context.Context, w *domain.WorkOrder) error
	UpdateStatus(ctx context.Context, id string, status domain.WorkOrderStatus) error
}

type ScanEventRepo interface {
	Append(ctx context.Context, e *domain.ScanEvent) error
	GetByID(ctx context.Context, id string) (*domain.ScanEvent, error)
	ListByWorkOrder(ctx context.Context, workOrderID string) ([]domain.ScanEvent, error)
	ListBySerial(ctx context.Context, workOrderID, serial string) ([]domain.ScanEvent, error)
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
	CountByWorkOrder(ctx context.Context, workOrderID string) (int, error)
}

type PauseRepo interface {
	Create(ctx context.Context, p *domain.PauseWindow) error
	Close(ctx context.Context, id string, endAt time.Time) error
	Open(ctx context.Context, workOrderID string) (*domain.PauseWindow, error)
	ListByWorkOrder(ctx context.Context, workOrderID string) ([]domain.PauseWindow, error)
}

type EmployeeRepo interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Employee, error)
	CountActive(ctx context.Context) (int, error)
}
