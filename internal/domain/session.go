package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session is one unit's IN→OUT lifecycle inside a work order. Sessions are
// derived from the scan event log and are never authoritative state: any
// cached session list is a memoization of Reconstruct over the log.
type Session struct {
	ID           string
	WorkOrderID  string
	Serial       string
	EmployeeID   string
	InAt         time.Time
	OutAt        *time.Time
	Status       SessionStatus
	CycleSeconds *int // set exactly once, at close; nil while open
	InEventID    string
	OutEventID   string
}

// Open reports whether the session has no OUT scan yet.
func (s *Session) Open() bool {
	return s.Status == SessionOpen
}

// SessionID derives the deterministic session identifier from the opening
// scan's coordinates, so reconstruction always yields the same IDs for the
// same log.
func SessionID(workOrderID, serial string, inAt time.Time) string {
	name := fmt.Sprintf("%s|%s|%s", workOrderID, serial, inAt.UTC().Format(time.RFC3339Nano))
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

// Anomaly records a scan event that could not be paired into a session:
// an IN while a session was already open, or an OUT with no open session.
type Anomaly struct {
	Kind       AnomalyKind
	Serial     string
	EventID    string
	OccurredAt time.Time
}
