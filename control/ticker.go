package control

import (
	"time"

	"hexlight-go/hw"
)

// ticker blocks until the fixed period has elapsed since the previous tick.
// If the previous tick's work overran the period it returns immediately and
// the overrun is absorbed: missed ticks are never replayed.
type ticker struct {
	periodMs int64
	last     int64
	clock    hw.Clock
}

func (t *ticker) reset() {
	t.last = t.clock.NowMs()
}

func (t *ticker) wait() {
	now := t.clock.NowMs()
	for now-t.last < t.periodMs {
		t.clock.Sleep(time.Duration(t.periodMs-(now-t.last)) * time.Millisecond)
		now = t.clock.NowMs()
	}
	t.last = now
}
