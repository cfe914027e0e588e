package domain

import "time"

// ScanEvent is a single IN or OUT barcode read. Events are append-only:
// they are never updated, only appended by a toggle or deleted as a pair
// when a session is corrected.
type ScanEvent struct {
	ID          string
	WorkOrderID string
	LineID      string
	ProductID   string
	Serial      string
	Kind        ScanKind
	EmployeeID  string // empty when the station has no badge reader
	OccurredAt  time.Time
	CreatedAt   time.Time
}
