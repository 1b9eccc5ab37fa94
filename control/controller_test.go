package control

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type scriptedAccel struct {
	samples [][3]float64
	i       int
	err     error
}

func (s *scriptedAccel) ReadVector() ([3]float64, error) {
	if s.err != nil {
		return [3]float64{}, s.err
	}
	v := s.samples[s.i%len(s.samples)]
	s.i++
	return v, nil
}

func TestUpdateRunsAllComponentsOnce(t *testing.T) {
	r := newRig(Config{TickMs: 10, Indicators: true, Printer: true})

	before := r.temp.reads
	r.ticks(1)
	if r.temp.reads != before+1 {
		t.Fatalf("temperature must be read exactly once per tick, got %d reads",
			r.temp.reads-before)
	}
	if r.clock.now != 10 {
		t.Fatalf("one tick should advance the clock one period, got %d", r.clock.now)
	}
}

func TestAccelerometerFeedsFusion(t *testing.T) {
	cfg := Config{TickMs: 10, Accelerometer: true}
	r := newRig(cfg)
	src := &scriptedAccel{samples: [][3]float64{{0, -1, 0}}}
	r.c.AttachAccelerometer(src)

	r.ticks(3)
	e := r.c.Motion()
	if e == nil {
		t.Fatalf("motion engine missing with accelerometer enabled")
	}
	if !e.Stationary(0.1) {
		t.Fatalf("steady -1g feed should read stationary")
	}
	if got := e.Down(); got[1] >= 0 {
		t.Fatalf("down should point along -Y, got %v", got)
	}
}

func TestAccelerometerBusErrorSkipsFusion(t *testing.T) {
	r := newRig(Config{TickMs: 10, Accelerometer: true})
	src := &scriptedAccel{samples: [][3]float64{{0, -1, 0}}}
	r.c.AttachAccelerometer(src)
	r.ticks(2)
	down := r.c.Motion().Down()

	src.err = errors.New("bus stuck")
	r.ticks(5) // must not panic, must not corrupt state
	if got := r.c.Motion().Down(); got != down {
		t.Fatalf("fusion state changed across failed reads: %v -> %v", down, got)
	}
}

func TestAccelerometerForcesMinimumTick(t *testing.T) {
	r := newRig(Config{TickMs: 5, Accelerometer: true})
	if got := r.c.TickMs(); got != 9 {
		t.Fatalf("tick with accelerometer: want floor of 9ms, got %d", got)
	}
}

func TestDisabledCapabilitiesStayInert(t *testing.T) {
	r := newRig(Config{TickMs: 10}) // no indicators, no printer, no accel

	r.c.SetLED(Green, 100, 100, 255)
	r.c.PrintNumber(42)
	r.ticks(5)

	if len(r.green.writes) != 1 {
		// Init writes duty 0 once; the disabled automata must add nothing.
		t.Fatalf("green writes with indicators disabled: %v", r.green.writes)
	}
	if r.c.Motion() != nil {
		t.Fatalf("motion engine should be nil when disabled")
	}
}

func TestShutdownDropsDrive(t *testing.T) {
	r := newRig(Config{TickMs: 10})
	r.c.SetLight(1000, 1000, 0)
	r.ticks(1)

	r.c.Shutdown()
	if r.power.level {
		t.Fatalf("power latch must be released")
	}
	if r.drive.duty != 0 {
		t.Fatalf("drive duty after shutdown: %d", r.drive.duty)
	}
	if r.mode.level {
		t.Fatalf("drive mode must be reset low")
	}
}

func TestDiagIsDecorative(t *testing.T) {
	var buf bytes.Buffer
	r := newRig(Config{TickMs: 10, Diag: &buf})
	r.c.SetLight(0, 1000, 0)
	r.temp.value = uint16(DefaultOverheatTemp + 200)
	r.ticks(2)

	if !strings.Contains(buf.String(), "safe light level") {
		t.Fatalf("expected clamp trace in diagnostics, got %q", buf.String())
	}
}

func TestButtonDrivenRamp(t *testing.T) {
	// The classic embedding: hold to brighten, release to latch.
	r := newRig(Config{TickMs: 10, Indicators: true})

	r.red.pressed = true
	r.ticks(30)
	r.red.pressed = false
	r.ticks(1)

	if !r.c.ButtonReleased() {
		t.Fatalf("release window missed")
	}
	held := r.c.ButtonHeldMs()
	r.c.SetLight(0, held, 100)
	r.ticks(10)
	if got := r.c.LightLevel(); got != held {
		t.Fatalf("ramp to held duration: want %d, got %d", held, got)
	}
}
