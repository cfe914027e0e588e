// Package timecalc computes effective cycle time for a session, net of
// scheduled break and ad-hoc pause overlap. All functions are pure; malformed
// windows are clamped, never rejected.
package timecalc

import (
	"sort"
	"time"

	"github.com/rvalverdem/takt/internal/domain"
)

// window is a half-open downtime interval in epoch milliseconds.
type window struct {
	startMS int64
	endMS   int64
}

// EffectiveSeconds returns the whole seconds elapsed between inAt and
// outAtOrNow, minus any overlap with the work order's downtime windows.
// For an open session being previewed live, outAtOrNow is the current
// instant, not a committed value. The result is floored to whole seconds
// and never less than minSeconds (or zero).
func EffectiveSeconds(inAt, outAtOrNow time.Time, cfg domain.TimingConfig, minSeconds int) int {
	if minSeconds < 0 {
		minSeconds = 0
	}

	spanStart := inAt.UnixMilli()
	spanEnd := outAtOrNow.UnixMilli()
	if spanEnd <= spanStart {
		return minSeconds
	}

	rawMS := spanEnd - spanStart
	downMS := downtimeOverlapMS(spanStart, spanEnd, inAt, outAtOrNow, cfg)

	effective := int((rawMS - downMS) / 1000)
	if effective < minSeconds {
		return minSeconds
	}
	return effective
}

// downtimeOverlapMS measures how much of [spanStart, spanEnd] falls inside
// the merged downtime set. Windows are coalesced first so a pause declared
// during the scheduled break is not subtracted twice.
func downtimeOverlapMS(spanStart, spanEnd int64, inAt, outAtOrNow time.Time, cfg domain.TimingConfig) int64 {
	windows := collectWindows(inAt, outAtOrNow, cfg)
	if len(windows) == 0 {
		return 0
	}

	var total int64
	for _, w := range mergeWindows(windows) {
		total += overlapMS(w, spanStart, spanEnd)
	}
	return total
}

// collectWindows gathers the break window (anchored to the calendar day of
// inAt) and every pause window. An ongoing pause's end defaults to
// outAtOrNow for this computation only; no synthetic end is ever persisted.
func collectWindows(inAt, outAtOrNow time.Time, cfg domain.TimingConfig) []window {
	var windows []window

	if bs, be, ok := cfg.BreakOn(inAt); ok {
		w := window{startMS: bs.UnixMilli(), endMS: be.UnixMilli()}
		if w.endMS > w.startMS {
			windows = append(windows, w)
		}
	}

	for _, p := range cfg.Pauses {
		end := outAtOrNow
		if p.EndAt != nil {
			end = *p.EndAt
		}
		w := window{startMS: p.StartAt.UnixMilli(), endMS: end.UnixMilli()}
		if w.endMS > w.startMS {
			windows = append(windows, w)
		}
	}

	return windows
}

// mergeWindows coalesces overlapping or touching windows into a sorted,
// non-overlapping set.
func mergeWindows(windows []window) []window {
	if len(windows) <= 1 {
		return windows
	}

	sorted := make([]window, len(windows))
	copy(sorted, windows)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].startMS != sorted[j].startMS {
			return sorted[i].startMS < sorted[j].startMS
		}
		return sorted[i].endMS < sorted[j].endMS
	})

	merged := sorted[:1]
	for _, w := range sorted[1:] {
		last := &merged[len(merged)-1]
		if w.startMS <= last.endMS {
			if w.endMS > last.endMS {
				last.endMS = w.endMS
			}
			continue
		}
		merged = append(merged, w)
	}
	return merged
}

// overlapMS returns the length of the intersection of w with [spanStart, spanEnd].
func overlapMS(w window, spanStart, spanEnd int64) int64 {
	start := w.startMS
	if spanStart > start {
		start = spanStart
	}
	end := w.endMS
	if spanEnd < end {
		end = spanEnd
	}
	if end <= start {
		return 0
	}
	return end - start
}
