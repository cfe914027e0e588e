package service

import (
	"context"

	"github.com/rvalverdem/takt/internal/domain"
)

// ToggleResult reports what a scan did: the action taken, the session it
// opened or closed, and the committed cycle seconds when the action was OUT.
type ToggleResult struct {
	Action       domain.ScanKind
	SessionID    string
	EventID      string
	Serial       string
	CycleSeconds *int // set only when Action is OUT
}

// SummaryResult is a full rebuild of a work order's derived state from its
// event log.
type SummaryResult struct {
	WorkOrder *domain.WorkOrder
	Summary   domain.WorkOrderSummary
	Sessions  []domain.Session
	Anomalies []domain.Anomaly
	Timing    domain.TimingConfig
}

type ScanService interface {
	// Toggle appends an IN event when the serial has no open session, or an
	// OUT event closing the open one. Concurrent toggles on the same serial
	// are serialized; losers retry a bounded number of times.
	Toggle(ctx context.Context, workOrderID, serial, employeeID string) (*ToggleResult, error)

	// RecordScan is the explicit-direction variant used by dedicated IN/OUT
	// stations; a direction that does not match the serial's state is
	// rejected with ErrInvalidTransition and appends nothing.
	RecordScan(ctx context.Context, workOrderID, serial string, kind domain.ScanKind, employeeID string) (*ToggleResult, error)

	// BuildSummary recomputes sessions, anomalies, and counters from the
	// event log. The result is a memoization, never authoritative state.
	BuildSummary(ctx context.Context, workOrderID string) (*SummaryResult, error)

	// DeleteSession removes the session's IN (and OUT) events as one atomic
	// pair. A session ID that resolves to nothing is a no-op success.
	DeleteSession(ctx context.Context, workOrderID, sessionID string) error
}

type WorkOrderService interface {
	Create(ctx context.Context, w *domain.WorkOrder) error
	GetByID(ctx context.Context, id string) (*domain.WorkOrder, error)
	// Resolve accepts either a work order ID or an order number.
	Resolve(ctx context.Context, ref string) (*domain.WorkOrder, error)
	List(ctx context.Context, includeTerminal bool) ([]*domain.WorkOrder, error)
	Complete(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	Reopen(ctx context.Context, id string) error

	// DeclarePause opens an ad-hoc downtime window; EndPause closes it.
	DeclarePause(ctx context.Context, id, reason string) (*domain.PauseWindow, error)
	EndPause(ctx context.Context, id string) (*domain.PauseWindow, error)
	ListPauses(ctx context.Context, id string) ([]domain.PauseWindow, error)
}

type EmployeeService interface {
	Create(ctx context.Context, e *domain.Employee) error
	List(ctx context.Context, activeOnly bool) ([]*domain.Employee, error)
}
