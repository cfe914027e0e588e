package domain

import "time"

// WorkOrder is a unit of production demand tracked through scanning.
// BreakStart/BreakEnd are clock-of-day bounds ("15:04") for the daily
// scheduled break; empty strings mean no scheduled break. Timezone is the
// IANA zone those bounds are read in, empty for the station's local zone.
type WorkOrder struct {
	ID          string
	OrderNo     string
	LineID      string
	ProductID   string
	Status      WorkOrderStatus
	QtyPlanned  int
	BreakStart  string
	BreakEnd    string
	Timezone    string
	RosterCount int // fallback worker count when scans carry no employee ID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TimingConfig returns the work order's downtime configuration with the
// given pause windows attached.
func (w *WorkOrder) TimingConfig(pauses []PauseWindow) TimingConfig {
	return TimingConfig{
		BreakStart: w.BreakStart,
		BreakEnd:   w.BreakEnd,
		Timezone:   w.Timezone,
		Pauses:     pauses,
	}
}

// WorkOrderSummary is the derived dashboard view of a work order's log.
type WorkOrderSummary struct {
	CompletedUnits  int
	InProgressUnits int
	ActiveWorkers   int
	AvgCycleSeconds int
}
