package hw

import (
	"time"

	"hexlight-go/x/timex"
)

// SystemClock implements Clock over the Go runtime clock. NowMs is relative
// to the moment the clock was created, so readings stay small and monotonic.
type SystemClock struct {
	start time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) NowMs() int64          { return timex.SinceMs(c.start) }
func (c *SystemClock) Sleep(d time.Duration) { time.Sleep(d) }
