package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rvalverdem/takt/internal/db"
	"github.com/rvalverdem/takt/internal/domain"
	"github.com/rvalverdem/takt/internal/engine"
	"github.com/rvalverdem/takt/internal/repository"
	"github.com/rvalverdem/takt/internal/timecalc"
)

// maxToggleAttempts bounds the read-decide-write retry loop. A toggle that
// keeps losing to concurrent writers surfaces ErrConflict instead of
// looping forever.
const maxToggleAttempts = 3

type scanService struct {
	workOrders repository.WorkOrderRepo
	events     repository.ScanEventRepo
	pauses     repository.PauseRepo
	employees  repository.EmployeeRepo
	uow        db.UnitOfWork

	// serialLocks serializes toggles per (workOrderID, serial) within this
	// process; the transaction still guards against other processes.
	serialLocks sync.Map // string -> *sync.Mutex
}

func NewScanService(
	workOrders repository.WorkOrderRepo,
	events repository.ScanEventRepo,
	pauses repository.PauseRepo,
	employees repository.EmployeeRepo,
	uow db.UnitOfWork,
) ScanService {
	return &scanService{
		workOrders: workOrders,
		events:     events,
		pauses:     pauses,
		employees:  employees,
		uow:        uow,
	}
}

func (s *scanService) Toggle(ctx context.Context, workOrderID, serial, employeeID string) (*ToggleResult, error) {
	return s.scan(ctx, workOrderID, serial, "", employeeID)
}

func (s *scanService) RecordScan(ctx context.Context, workOrderID, serial string, kind domain.ScanKind, employeeID string) (*ToggleResult, error) {
	if kind != domain.ScanIn && kind != domain.ScanOut {
		return nil, fmt.Errorf("unknown scan kind %q", kind)
	}
	return s.scan(ctx, workOrderID, serial, kind, employeeID)
}

// scan runs the read-decide-write cycle. forced is empty for a toggle, or a
// required direction for dedicated-station scans.
func (s *scanService) scan(ctx context.Context, workOrderID, serial string, forced domain.ScanKind, employeeID string) (*ToggleResult, error) {
	if serial == "" {
		return nil, fmt.Errorf("serial barcode is required")
	}

	mu := s.lockFor(workOrderID, serial)
	mu.Lock()
	defer mu.Unlock()

	var lastErr error
	for attempt := 0; attempt < maxToggleAttempts; attempt++ {
		result, err := s.scanOnce(ctx, workOrderID, serial, forced, employeeID)
		if err == nil {
			return result, nil
		}
		if !isBusy(err) {
			return nil, err
		}
		lastErr = err
		time.Sleep(time.Duration(attempt+1) * 10 * time.Millisecond)
	}
	return nil, fmt.Errorf("%w: %v", ErrConflict, lastErr)
}

// scanOnce performs one transactional read-decide-write attempt. The read
// ("is there an open session?") and the append commit or roll back together,
// so an abandoned call leaves no partially-applied state.
func (s *scanService) scanOnce(ctx context.Context, workOrderID, serial string, forced domain.ScanKind, employeeID string) (*ToggleResult, error) {
	var result *ToggleResult

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txOrders := repository.NewSQLiteWorkOrderRepo(tx)
		txEvents := repository.NewSQLiteScanEventRepo(tx)
		txPauses := repository.NewSQLitePauseRepo(tx)

		wo, err := txOrders.GetByID(ctx, workOrderID)
		if err != nil {
			return err
		}
		if wo.Status.Terminal() {
			return fmt.Errorf("%w: %s is %s", ErrTerminalWorkOrder, wo.OrderNo, wo.Status)
		}

		pauses, err := txPauses.ListByWorkOrder(ctx, wo.ID)
		if err != nil {
			return err
		}
		cfg := wo.TimingConfig(pauses)

		events, err := txEvents.ListBySerial(ctx, wo.ID, serial)
		if err != nil {
			return err
		}
		sessions, _ := engine.Reconstruct(events, cfg)
		open := engine.OpenSession(sessions, serial)

		action := domain.ScanIn
		if open != nil {
			action = domain.ScanOut
		}
		if forced != "" && forced != action {
			return fmt.Errorf("%w: serial %s expects %s", ErrInvalidTransition, serial, action)
		}

		now := time.Now().UTC()
		ev := &domain.ScanEvent{
			ID:          uuid.New().String(),
			WorkOrderID: wo.ID,
			LineID:      wo.LineID,
			ProductID:   wo.ProductID,
			Serial:      serial,
			Kind:        action,
			EmployeeID:  employeeID,
			OccurredAt:  now,
			CreatedAt:   now,
		}
		if err := txEvents.Append(ctx, ev); err != nil {
			return err
		}

		result = &ToggleResult{
			Action:  action,
			EventID: ev.ID,
			Serial:  serial,
		}
		if action == domain.ScanIn {
			result.SessionID = domain.SessionID(wo.ID, serial, now)
			return nil
		}

		result.SessionID = open.ID
		cycle := timecalc.EffectiveSeconds(open.InAt, now, cfg, 0)
		result.CycleSeconds = &cycle
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *scanService) BuildSummary(ctx context.Context, workOrderID string) (*SummaryResult, error) {
	wo, err := s.workOrders.GetByID(ctx, workOrderID)
	if err != nil {
		return nil, err
	}

	pauses, err := s.pauses.ListByWorkOrder(ctx, wo.ID)
	if err != nil {
		return nil, err
	}
	cfg := wo.TimingConfig(pauses)

	events, err := s.events.ListByWorkOrder(ctx, wo.ID)
	if err != nil {
		return nil, err
	}
	sessions, anomalies := engine.Reconstruct(events, cfg)

	roster := wo.RosterCount
	if roster == 0 {
		if count, err := s.employees.CountActive(ctx); err == nil {
			roster = count
		}
	}

	return &SummaryResult{
		WorkOrder: wo,
		Summary:   engine.Summarize(sessions, roster),
		Sessions:  sessions,
		Anomalies: anomalies,
		Timing:    cfg,
	}, nil
}

func (s *scanService) DeleteSession(ctx context.Context, workOrderID, sessionID string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txOrders := repository.NewSQLiteWorkOrderRepo(tx)
		txEvents := repository.NewSQLiteScanEventRepo(tx)

		wo, err := txOrders.GetByID(ctx, workOrderID)
		if err != nil {
			return err
		}

		events, err := txEvents.ListByWorkOrder(ctx, wo.ID)
		if err != nil {
			return err
		}
		// Cycle values are irrelevant here; reconstruction only needs the
		// pairing to locate the session's constituent events.
		sessions, _ := engine.Reconstruct(events, domain.TimingConfig{})

		target := engine.FindSession(sessions, sessionID)
		if target == nil {
			// The desired end state (session absent) already holds.
			return nil
		}

		ids := []string{target.InEventID}
		if target.OutEventID != "" {
			ids = append(ids, target.OutEventID)
		}

		n, err := txEvents.DeleteByIDs(ctx, ids)
		if err != nil {
			return err
		}
		if n != int64(len(ids)) {
			return fmt.Errorf("session %s: expected to delete %d events, deleted %d", sessionID, len(ids), n)
		}
		return nil
	})
}

func (s *scanService) lockFor(workOrderID, serial string) *sync.Mutex {
	key := workOrderID + "|" + serial
	actual, _ := s.serialLocks.LoadOrStore(key, &sync.Mutex{})
	return actual.(*sync.Mutex)
}

// isBusy reports whether the error is a SQLite writer contention signal
// worth retrying, as opposed to a domain rejection.
func isBusy(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTerminalWorkOrder) || errors.Is(err, ErrInvalidTransition) {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}
