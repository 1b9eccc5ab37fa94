package control

import "testing"

func TestLEDChannelLifecycle(t *testing.T) {
	r := newRig(Config{TickMs: 10, Indicators: true})

	// 3 ticks lit, 2 ticks wait.
	r.c.SetLED(Green, 30, 20, 200)

	states := []LEDState{}
	for i := 0; i < 7; i++ {
		states = append(states, r.c.LEDState(Green))
		r.ticks(1)
	}

	want := []LEDState{LEDOn, LEDOn, LEDOn, LEDOn, LEDWait, LEDWait, LEDOff}
	for i := range want {
		if states[i] != want[i] {
			t.Fatalf("tick %d: want state %d, got %d (all: %v)", i, want[i], states[i], states)
		}
	}
}

func TestLEDOffWriteHappensOnce(t *testing.T) {
	r := newRig(Config{TickMs: 10, Indicators: true})
	r.green.writes = nil // discard the duty-0 write Init issues
	r.c.SetLED(Green, 30, 20, 200)

	r.ticks(10)

	// Writes: 3x on at duty 200, one off at duty 0, then silence.
	var ons, offs int
	for _, d := range r.green.writes {
		if d == 200 {
			ons++
		} else if d == 0 {
			offs++
		}
	}
	if ons != 3 {
		t.Fatalf("on writes: want 3, got %d (%v)", ons, r.green.writes)
	}
	if offs != 1 {
		t.Fatalf("off write must happen exactly once, got %d (%v)", offs, r.green.writes)
	}
}

func TestLEDChannelsAreIndependent(t *testing.T) {
	r := newRig(Config{TickMs: 10, Indicators: true})

	r.c.SetLED(Green, 50, 20, 255)
	r.c.SetLED(Red, 10, 20, 255)

	r.ticks(2)
	if r.c.LEDState(Red) == LEDOn {
		t.Fatalf("red should have expired")
	}
	if r.c.LEDState(Green) != LEDOn {
		t.Fatalf("green should still be lit")
	}
}

func TestRedLEDSharesButtonLine(t *testing.T) {
	r := newRig(Config{TickMs: 10, Indicators: true})
	r.c.SetLED(Red, 30, 20, 128)
	r.ticks(1)

	// The lit red LED took the line...
	if r.red.duty != 128 {
		t.Fatalf("red duty: want 128, got %d", r.red.duty)
	}
	// ...and the button is still sampled every tick: the line is released
	// (input) at the top of each Update before the red write.
	if r.red.inCfgs < 2 {
		t.Fatalf("red line not released for button sampling")
	}
}

func TestFlipColor(t *testing.T) {
	if FlipColor(Red) != Green || FlipColor(Green) != Red {
		t.Fatalf("FlipColor must alternate the two channels")
	}
}
