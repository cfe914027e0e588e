package domain

import (
	"fmt"
	"time"
)

// clockLayout is the clock-of-day format for break bounds.
const clockLayout = "15:04"

// TimingConfig describes the downtime a session's cycle time must exclude:
// the daily scheduled break plus any ad-hoc pause windows. Timezone names
// the IANA zone the break bounds are read in; scans are stored in UTC, so
// without it a non-UTC factory's lunch break would anchor to the wrong
// clock and never overlap a session.
type TimingConfig struct {
	BreakStart string // "15:04" clock-of-day, empty = no break
	BreakEnd   string
	Timezone   string // IANA name, empty = the station's local zone
	Pauses     []PauseWindow
}

// HasBreak reports whether both break bounds are configured.
func (c TimingConfig) HasBreak() bool {
	return c.BreakStart != "" && c.BreakEnd != ""
}

// BreakOn anchors the clock-of-day break bounds to the calendar day of the
// given instant, read in the configured zone. Returns ok=false when no
// break is configured or the bounds or zone fail to parse.
func (c TimingConfig) BreakOn(day time.Time) (start, end time.Time, ok bool) {
	if !c.HasBreak() {
		return time.Time{}, time.Time{}, false
	}
	bs, err := time.Parse(clockLayout, c.BreakStart)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	be, err := time.Parse(clockLayout, c.BreakEnd)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	loc, err := c.location()
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	local := day.In(loc)
	y, m, d := local.Date()
	start = time.Date(y, m, d, bs.Hour(), bs.Minute(), 0, 0, loc)
	end = time.Date(y, m, d, be.Hour(), be.Minute(), 0, 0, loc)
	return start, end, true
}

func (c TimingConfig) location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// ValidateTimezone checks an IANA timezone name such as "America/Chicago".
func ValidateTimezone(s string) error {
	if _, err := time.LoadLocation(s); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", s, err)
	}
	return nil
}

// ValidateClock checks a clock-of-day string such as "12:30".
func ValidateClock(s string) error {
	if _, err := time.Parse(clockLayout, s); err != nil {
		return fmt.Errorf("invalid clock time %q (want HH:MM): %w", s, err)
	}
	return nil
}

// PauseWindow is an ad-hoc downtime interval declared against a work order.
// A nil EndAt means the pause is still ongoing.
type PauseWindow struct {
	ID          string
	WorkOrderID string
	Reason      string
	StartAt     time.Time
	EndAt       *time.Time
	CreatedAt   time.Time
}

// Ongoing reports whether the pause has no declared end yet.
func (p *PauseWindow) Ongoing() bool {
	return p.EndAt == nil
}
