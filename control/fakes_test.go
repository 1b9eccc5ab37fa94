package control

import (
	"time"

	"hexlight-go/hw"
)

// ---- fakes ----

type fakePin struct {
	mode    string // "input" or "output"
	pull    hw.Pull
	level   bool
	inCfgs  int
	outCfgs int
}

func (p *fakePin) ConfigureInput(pull hw.Pull) error {
	p.mode, p.pull = "input", pull
	p.inCfgs++
	return nil
}
func (p *fakePin) ConfigureOutput(initial bool) error {
	p.mode, p.level = "output", initial
	p.outCfgs++
	return nil
}
func (p *fakePin) Set(level bool) { p.level = level }
func (p *fakePin) Get() bool      { return p.level }

type fakePWM struct {
	duty   uint8
	writes []uint8
}

func (p *fakePWM) SetDuty(d uint8) {
	p.duty = d
	p.writes = append(p.writes, d)
}

// fakeLEDSwitch is the shared red-LED/button line: SetDuty takes the line,
// ConfigureInput releases it; pressed is what the button contributes when
// the line is sampled.
type fakeLEDSwitch struct {
	fakePin
	fakePWM
	pressed bool
}

func (p *fakeLEDSwitch) Get() bool { return p.pressed }

type fakeADC struct {
	value uint16
	queue []uint16
	reads int
}

func (a *fakeADC) Get() uint16 {
	a.reads++
	if len(a.queue) > 0 {
		a.value = a.queue[0]
		a.queue = a.queue[1:]
	}
	return a.value
}

// fakeClock advances instantly on Sleep, so ticks cost no wall time.
type fakeClock struct {
	now    int64
	sleeps int
}

func (c *fakeClock) NowMs() int64 { return c.now }
func (c *fakeClock) Sleep(d time.Duration) {
	c.now += d.Milliseconds()
	c.sleeps++
}

// ---- harness ----

type rig struct {
	c     *Controller
	clock *fakeClock

	power  *fakePin
	mode   *fakePin
	drive  *fakePWM
	red    *fakeLEDSwitch
	green  *fakePWM
	temp   *fakeADC
	charge *fakeADC
}

func newRig(cfg Config) *rig {
	r := &rig{
		clock:  &fakeClock{},
		power:  &fakePin{},
		mode:   &fakePin{},
		drive:  &fakePWM{},
		red:    &fakeLEDSwitch{},
		green:  &fakePWM{},
		temp:   &fakeADC{value: uint16(DefaultOverheatTemp)},
		charge: &fakeADC{value: 512},
	}
	cfg.Clock = r.clock
	r.c = New(cfg, Pins{
		Power:       r.power,
		DriveMode:   r.mode,
		DriveEnable: r.drive,
		RedLED:      r.red,
		GreenLED:    r.green,
		Temp:        r.temp,
		Charge:      r.charge,
	})
	if err := r.c.Init(); err != nil {
		panic(err)
	}
	return r
}

func (r *rig) ticks(n int) {
	for i := 0; i < n; i++ {
		r.c.Update()
	}
}
