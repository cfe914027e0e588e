package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rvalverdem/takt/internal/domain"
)

var testOrderNoCounter atomic.Int64

// WorkOrder options
type WorkOrderOption func(*domain.WorkOrder)

func WithStatus(s domain.WorkOrderStatus) WorkOrderOption {
	return func(w *domain.WorkOrder) {
		w.Status = s
	}
}

func WithBreak(start, end string) WorkOrderOption {
	return func(w *domain.WorkOrder) {
		w.BreakStart = start
		w.BreakEnd = end
	}
}

func WithTimezone(tz string) WorkOrderOption {
	return func(w *domain.WorkOrder) {
		w.Timezone = tz
	}
}

func WithRosterCount(n int) WorkOrderOption {
	return func(w *domain.WorkOrder) {
		w.RosterCount = n
	}
}

func WithQtyPlanned(n int) WorkOrderOption {
	return func(w *domain.WorkOrder) {
		w.QtyPlanned = n
	}
}

func NewTestWorkOrder(opts ...WorkOrderOption) *domain.WorkOrder {
	now := time.Now().UTC()
	w := &domain.WorkOrder{
		ID:         uuid.New().String(),
		OrderNo:    fmt.Sprintf("WO-%04d", testOrderNoCounter.Add(1)),
		LineID:     "line-1",
		ProductID:  "prod-1",
		Status:     domain.WorkOrderActive,
		QtyPlanned: 100,
		Timezone:   "UTC", // pinned so break anchoring does not depend on the test machine
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// ScanEvent options
type ScanEventOption func(*domain.ScanEvent)

func WithEmployee(id string) ScanEventOption {
	return func(e *domain.ScanEvent) {
		e.EmployeeID = id
	}
}

func WithOccurredAt(at time.Time) ScanEventOption {
	return func(e *domain.ScanEvent) {
		e.OccurredAt = at
	}
}

func NewTestScanEvent(workOrderID, serial string, kind domain.ScanKind, opts ...ScanEventOption) *domain.ScanEvent {
	now := time.Now().UTC()
	e := &domain.ScanEvent{
		ID:          uuid.New().String(),
		WorkOrderID: workOrderID,
		LineID:      "line-1",
		ProductID:   "prod-1",
		Serial:      serial,
		Kind:        kind,
		OccurredAt:  now,
		CreatedAt:   now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func NewTestPause(workOrderID, reason string, startAt time.Time, endAt *time.Time) *domain.PauseWindow {
	return &domain.PauseWindow{
		ID:          uuid.New().String(),
		WorkOrderID: workOrderID,
		Reason:      reason,
		StartAt:     startAt,
		EndAt:       endAt,
		CreatedAt:   time.Now().UTC(),
	}
}

func NewTestEmployee(name string) *domain.Employee {
	return &domain.Employee{
		ID:        uuid.New().String(),
		Name:      name,
		Badge:     fmt.Sprintf("B-%s", uuid.New().String()[:8]),
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
}
