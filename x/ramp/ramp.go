package ramp

// At returns the linearly interpolated level after done of duration steps
// from cur to to. Integer-only so it behaves identically on MCU targets.
// done at or past duration holds to; duration 0 snaps to 'to' immediately.
func At(cur, to, done, duration int) int {
	if done >= duration {
		return to
	}
	if done <= 0 {
		return cur
	}
	return cur + (to-cur)*done/duration
}
