package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rvalverdem/takt/internal/db"
	"github.com/rvalverdem/takt/internal/domain"
	"github.com/rvalverdem/takt/internal/repository"
)

type workOrderService struct {
	workOrders repository.WorkOrderRepo
	pauses     repository.PauseRepo
	uow        db.UnitOfWork
}

func NewWorkOrderService(workOrders repository.WorkOrderRepo, pauses repository.PauseRepo, uow db.UnitOfWork) WorkOrderService {
	return &workOrderService{workOrders: workOrders, pauses: pauses, uow: uow}
}

func (s *workOrderService) Create(ctx context.Context, w *domain.WorkOrder) error {
	if w.OrderNo == "" {
		return fmt.Errorf("order number is required")
	}
	if (w.BreakStart == "") != (w.BreakEnd == "") {
		return fmt.Errorf("break start and end must be set together")
	}
	if w.BreakStart != "" {
		if err := domain.ValidateClock(w.BreakStart); err != nil {
			return err
		}
		if err := domain.ValidateClock(w.BreakEnd); err != nil {
			return err
		}
	}
	if w.Timezone != "" {
		if err := domain.ValidateTimezone(w.Timezone); err != nil {
			return err
		}
	}

	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	if w.Status == "" {
		w.Status = domain.WorkOrderActive
	}
	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now
	return s.workOrders.Create(ctx, w)
}

func (s *workOrderService) GetByID(ctx context.Context, id string) (*domain.WorkOrder, error) {
	return s.workOrders.GetByID(ctx, id)
}

// Resolve accepts either a work order ID or an order number, trying the ID
// first. Operators usually type the order number printed on the traveler.
func (s *workOrderService) Resolve(ctx context.Context, ref string) (*domain.WorkOrder, error) {
	wo, err := s.workOrders.GetByID(ctx, ref)
	if err == nil {
		return wo, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return s.workOrders.GetByOrderNo(ctx, ref)
}

func (s *workOrderService) List(ctx context.Context, includeTerminal bool) ([]*domain.WorkOrder, error) {
	return s.workOrders.List(ctx, includeTerminal)
}

func (s *workOrderService) Complete(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, domain.WorkOrderCompleted)
}

func (s *workOrderService) Cancel(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, domain.WorkOrderCancelled)
}

func (s *workOrderService) Reopen(ctx context.Context, id string) error {
	return s.workOrders.UpdateStatus(ctx, id, domain.WorkOrderActive)
}

func (s *workOrderService) setStatus(ctx context.Context, id string, status domain.WorkOrderStatus) error {
	wo, err := s.workOrders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if wo.Status.Terminal() {
		return fmt.Errorf("%w: %s is %s", ErrTerminalWorkOrder, wo.OrderNo, wo.Status)
	}
	return s.workOrders.UpdateStatus(ctx, id, status)
}

// DeclarePause opens an ad-hoc downtime window and flips the work order to
// paused, in one transaction. At most one pause may be ongoing per order.
func (s *workOrderService) DeclarePause(ctx context.Context, id, reason string) (*domain.PauseWindow, error) {
	var pause *domain.PauseWindow

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txOrders := repository.NewSQLiteWorkOrderRepo(tx)
		txPauses := repository.NewSQLitePauseRepo(tx)

		wo, err := txOrders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if wo.Status.Terminal() {
			return fmt.Errorf("%w: %s is %s", ErrTerminalWorkOrder, wo.OrderNo, wo.Status)
		}

		if _, err := txPauses.Open(ctx, wo.ID); err == nil {
			return fmt.Errorf("%w: work order %s", ErrOpenPauseExists, wo.OrderNo)
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		now := time.Now().UTC()
		pause = &domain.PauseWindow{
			ID:          uuid.New().String(),
			WorkOrderID: wo.ID,
			Reason:      reason,
			StartAt:     now,
			CreatedAt:   now,
		}
		if err := txPauses.Create(ctx, pause); err != nil {
			return err
		}
		return txOrders.UpdateStatus(ctx, wo.ID, domain.WorkOrderPaused)
	})
	if err != nil {
		return nil, err
	}
	return pause, nil
}

// EndPause closes the ongoing pause window and reactivates the work order.
func (s *workOrderService) EndPause(ctx context.Context, id string) (*domain.PauseWindow, error) {
	var closed *domain.PauseWindow

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txOrders := repository.NewSQLiteWorkOrderRepo(tx)
		txPauses := repository.NewSQLitePauseRepo(tx)

		wo, err := txOrders.GetByID(ctx, id)
		if err != nil {
			return err
		}

		open, err := txPauses.Open(ctx, wo.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: work order %s", ErrNoOpenPause, wo.OrderNo)
			}
			return err
		}

		endAt := time.Now().UTC()
		if err := txPauses.Close(ctx, open.ID, endAt); err != nil {
			return err
		}
		open.EndAt = &endAt
		closed = open

		if wo.Status == domain.WorkOrderPaused {
			return txOrders.UpdateStatus(ctx, wo.ID, domain.WorkOrderActive)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return closed, nil
}

func (s *workOrderService) ListPauses(ctx context.Context, id string) ([]domain.PauseWindow, error) {
	return s.pauses.ListByWorkOrder(ctx, id)
}
