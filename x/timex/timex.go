package timex

import "time"

// SinceMs returns whole milliseconds elapsed since t0.
// time.Since carries the monotonic reading, so the result never jumps
// backwards under wall-clock adjustment.
func SinceMs(t0 time.Time) int64 { return time.Since(t0).Milliseconds() }

// TicksFor converts a millisecond duration to whole ticks of tickMs.
// Sub-tick durations truncate to 0; tickMs==0 is coerced to 1.
func TicksFor(ms, tickMs int) int {
	if tickMs <= 0 {
		tickMs = 1
	}
	return ms / tickMs
}
