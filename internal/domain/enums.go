package domain

type ScanKind string

const (
	ScanIn  ScanKind = "IN"
	ScanOut ScanKind = "OUT"
)

// ValidScanKinds is the canonical set of accepted scan kind strings.
var ValidScanKinds = map[string]bool{
	"IN": true, "OUT": true,
}

type SessionStatus string

const (
	SessionOpen   SessionStatus = "open"
	SessionClosed SessionStatus = "closed"
)

type WorkOrderStatus string

const (
	WorkOrderActive    WorkOrderStatus = "active"
	WorkOrderPaused    WorkOrderStatus = "paused"
	WorkOrderCompleted WorkOrderStatus = "completed"
	WorkOrderCancelled WorkOrderStatus = "cancelled"
)

// Terminal reports whether the status admits no further scans.
func (s WorkOrderStatus) Terminal() bool {
	return s == WorkOrderCompleted || s == WorkOrderCancelled
}

type AnomalyKind string

const (
	AnomalyDuplicateIn AnomalyKind = "duplicate_in"
	AnomalyOrphanOut   AnomalyKind = "orphan_out"
)
