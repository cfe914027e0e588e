package engine

import (
	"time"

	"github.com/rvalverdem/takt/internal/domain"
	"github.com/rvalverdem/takt/internal/timecalc"
)

// Summarize reduces a session list into the dashboard counters. When no open
// session carries an employee ID, ActiveWorkers falls back to rosterFallback
// (zero when there are no open sessions at all).
func Summarize(sessions []domain.Session, rosterFallback int) domain.WorkOrderSummary {
	var sum domain.WorkOrderSummary
	var cycleTotal int

	workers := make(map[string]bool)
	for _, s := range sessions {
		if s.Open() {
			sum.InProgressUnits++
			if s.EmployeeID != "" {
				workers[s.EmployeeID] = true
			}
			continue
		}
		sum.CompletedUnits++
		if s.CycleSeconds != nil {
			cycleTotal += *s.CycleSeconds
		}
	}

	sum.ActiveWorkers = len(workers)
	if sum.ActiveWorkers == 0 && sum.InProgressUnits > 0 {
		sum.ActiveWorkers = rosterFallback
	}
	if sum.CompletedUnits > 0 {
		sum.AvgCycleSeconds = cycleTotal / sum.CompletedUnits
	}
	return sum
}

// LiveElapsed previews an open session's effective elapsed seconds as of
// now. It never touches the session's persisted fields; a closed session
// just returns its committed cycle seconds.
func LiveElapsed(s domain.Session, cfg domain.TimingConfig, now time.Time) int {
	if !s.Open() {
		if s.CycleSeconds != nil {
			return *s.CycleSeconds
		}
		return 0
	}
	return timecalc.EffectiveSeconds(s.InAt, now, cfg, 0)
}
