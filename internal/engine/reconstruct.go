// Package engine derives sessions and work-order summaries from the raw
// scan event log. The log is the sole source of truth: nothing here has
// side effects, and running a function twice on the same input yields
// identical output.
package engine

import (
	"sort"

	"github.com/rvalverdem/takt/internal/domain"
	"github.com/rvalverdem/takt/internal/timecalc"
)

// Reconstruct pairs the work order's scan events into sessions. Events are
// sorted defensively by occurred-at (ties broken by event ID) because
// stations do not share a clock and insertion order proves nothing.
//
// An IN while a session is already open for that serial, or an OUT with no
// open session, is reported as an anomaly and produces no session change.
// Closed sessions carry CycleSeconds computed against cfg, with any ongoing
// pause bounded by the session's own OUT instant; open sessions leave it nil.
func Reconstruct(events []domain.ScanEvent, cfg domain.TimingConfig) ([]domain.Session, []domain.Anomaly) {
	ordered := make([]domain.ScanEvent, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].OccurredAt.Equal(ordered[j].OccurredAt) {
			return ordered[i].OccurredAt.Before(ordered[j].OccurredAt)
		}
		return ordered[i].ID < ordered[j].ID
	})

	var sessions []domain.Session
	var anomalies []domain.Anomaly
	open := make(map[string]int) // serial -> index into sessions

	for _, ev := range ordered {
		switch ev.Kind {
		case domain.ScanIn:
			if _, exists := open[ev.Serial]; exists {
				anomalies = append(anomalies, domain.Anomaly{
					Kind:       domain.AnomalyDuplicateIn,
					Serial:     ev.Serial,
					EventID:    ev.ID,
					OccurredAt: ev.OccurredAt,
				})
				continue
			}
			sessions = append(sessions, domain.Session{
				ID:          domain.SessionID(ev.WorkOrderID, ev.Serial, ev.OccurredAt),
				WorkOrderID: ev.WorkOrderID,
				Serial:      ev.Serial,
				EmployeeID:  ev.EmployeeID,
				InAt:        ev.OccurredAt,
				Status:      domain.SessionOpen,
				InEventID:   ev.ID,
			})
			open[ev.Serial] = len(sessions) - 1

		case domain.ScanOut:
			idx, exists := open[ev.Serial]
			if !exists {
				anomalies = append(anomalies, domain.Anomaly{
					Kind:       domain.AnomalyOrphanOut,
					Serial:     ev.Serial,
					EventID:    ev.ID,
					OccurredAt: ev.OccurredAt,
				})
				continue
			}
			s := &sessions[idx]
			outAt := ev.OccurredAt
			s.OutAt = &outAt
			s.OutEventID = ev.ID
			s.Status = domain.SessionClosed
			cycle := timecalc.EffectiveSeconds(s.InAt, outAt, cfg, 0)
			s.CycleSeconds = &cycle
			if s.EmployeeID == "" {
				s.EmployeeID = ev.EmployeeID
			}
			delete(open, ev.Serial)
		}
	}

	return sessions, anomalies
}

// FindSession returns the reconstructed session with the given ID, or nil.
func FindSession(sessions []domain.Session, sessionID string) *domain.Session {
	for i := range sessions {
		if sessions[i].ID == sessionID {
			return &sessions[i]
		}
	}
	return nil
}

// OpenSession returns the open session for the given serial, or nil.
func OpenSession(sessions []domain.Session, serial string) *domain.Session {
	for i := range sessions {
		if sessions[i].Serial == serial && sessions[i].Open() {
			return &sessions[i]
		}
	}
	return nil
}
