package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakOn_AnchorsToCalendarDay(t *testing.T) {
	cfg := TimingConfig{BreakStart: "12:00", BreakEnd: "12:30", Timezone: "UTC"}
	day := time.Date(2026, 3, 9, 8, 45, 0, 0, time.UTC)

	start, end, ok := cfg.BreakOn(day)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 9, 12, 30, 0, 0, time.UTC), end)
}

func TestBreakOn_AnchorsInConfiguredZone(t *testing.T) {
	// 15:50 UTC on 2026-06-10 is 11:50 in New York; the 12:00–12:30 lunch
	// there runs 16:00–16:30 UTC.
	cfg := TimingConfig{BreakStart: "12:00", BreakEnd: "12:30", Timezone: "America/New_York"}
	day := time.Date(2026, 6, 10, 15, 50, 0, 0, time.UTC)

	start, end, ok := cfg.BreakOn(day)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 6, 10, 16, 0, 0, 0, time.UTC), start.UTC())
	assert.Equal(t, time.Date(2026, 6, 10, 16, 30, 0, 0, time.UTC), end.UTC())
}

func TestBreakOn_UnknownZoneIgnored(t *testing.T) {
	cfg := TimingConfig{BreakStart: "12:00", BreakEnd: "12:30", Timezone: "Mars/Olympus_Mons"}
	_, _, ok := cfg.BreakOn(time.Now())
	assert.False(t, ok)
}

func TestValidateTimezone(t *testing.T) {
	assert.NoError(t, ValidateTimezone("UTC"))
	assert.NoError(t, ValidateTimezone("America/Chicago"))
	assert.Error(t, ValidateTimezone("Factory/Floor"))
}

func TestBreakOn_NoBreakConfigured(t *testing.T) {
	_, _, ok := TimingConfig{}.BreakOn(time.Now())
	assert.False(t, ok)
}

func TestBreakOn_MalformedBoundsIgnored(t *testing.T) {
	cfg := TimingConfig{BreakStart: "noon", BreakEnd: "12:30", Timezone: "UTC"}
	_, _, ok := cfg.BreakOn(time.Now())
	assert.False(t, ok)
}

func TestValidateClock(t *testing.T) {
	assert.NoError(t, ValidateClock("00:00"))
	assert.NoError(t, ValidateClock("23:59"))
	assert.Error(t, ValidateClock("24:00"))
	assert.Error(t, ValidateClock("12:60"))
	assert.Error(t, ValidateClock("lunch"))
}

func TestSessionID_Deterministic(t *testing.T) {
	inAt := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)

	a := SessionID("wo-1", "SN001", inAt)
	b := SessionID("wo-1", "SN001", inAt)
	assert.Equal(t, a, b)

	assert.NotEqual(t, a, SessionID("wo-2", "SN001", inAt))
	assert.NotEqual(t, a, SessionID("wo-1", "SN002", inAt))
	assert.NotEqual(t, a, SessionID("wo-1", "SN001", inAt.Add(time.Second)))
}

func TestWorkOrderStatus_Terminal(t *testing.T) {
	assert.False(t, WorkOrderActive.Terminal())
	assert.False(t, WorkOrderPaused.Terminal())
	assert.True(t, WorkOrderCompleted.Terminal())
	assert.True(t, WorkOrderCancelled.Terminal())
}
