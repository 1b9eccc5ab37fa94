// Package control implements the tick-driven core of the light: the
// brightness ramp and its thermal governor, the button tracker, the indicator
// LED automata with the digit blink encoder, the charge-state debouncer and
// the glue that runs them all once per tick.
//
// Everything is owned by a single Controller; there are no package-level
// variables and no goroutines. The embedding application calls Update once
// per tick and reads whatever state it needs in between. Timing is expressed
// in ticks so that execution jitter inside a tick never changes behaviour.
package control

import (
	"io"

	"hexlight-go/hw"
	"hexlight-go/motion"
	"hexlight-go/x/conv"
	"hexlight-go/x/timex"
)

// Key points on the light scale.
const (
	MaxLevel    = 1000
	MaxLowLevel = 500

	// CurrentLevel as a ramp start means "wherever the clamped output is
	// right now", so a new target composes without a visible jump.
	CurrentLevel = -1
)

// AccelSource delivers one 3-axis sample in g units per call. The mma7660
// driver satisfies it; tests substitute a scripted source.
type AccelSource interface {
	ReadVector() ([3]float64, error)
}

// Pins collects the collaborator lines the core drives. All of them are
// required except Charge, which is only touched by the charge-state queries.
type Pins struct {
	Power       hw.DigitalPin   // latches the regulator; held high while lit
	DriveMode   hw.DigitalPin   // selects the low/high drive range
	DriveEnable hw.PWMPin       // actuator duty
	RedLED      hw.LEDSwitchPin // shared red indicator / button line
	GreenLED    hw.PWMPin
	Temp        hw.AnalogPin
	Charge      hw.AnalogPin
}

// Config is fixed at construction; there is no runtime renegotiation.
type Config struct {
	// TickMs is the control period, 5..30 ms. Forced to at least 9 ms when
	// the accelerometer is enabled (its fastest sample rate is 120 Hz).
	TickMs int

	// OverheatTemp is the thermal target in raw sensor units (0..1023).
	OverheatTemp int

	// Capability flags. A disabled capability costs nothing per tick.
	Indicators    bool
	Printer       bool
	Accelerometer bool

	// Indicator defaults, applied by FlashLED.
	LEDWaitMs     int
	LEDBrightness uint8

	Motion motion.Config

	Clock hw.Clock

	// Diag receives line-oriented trace output. Nil means silent. The sink
	// is decorative and never feeds back into control decisions.
	Diag io.Writer
}

func (c *Config) setDefaults() {
	if c.TickMs <= 0 {
		c.TickMs = 10
	}
	if c.Accelerometer && c.TickMs < 9 {
		c.TickMs = 9
	}
	if c.OverheatTemp == 0 {
		c.OverheatTemp = DefaultOverheatTemp
	}
	if c.LEDWaitMs == 0 {
		c.LEDWaitMs = 100
	}
	if c.LEDBrightness == 0 {
		c.LEDBrightness = 255
	}
	if c.Clock == nil {
		c.Clock = hw.NewSystemClock()
	}
}

// Controller owns all per-tick state. Pass it by pointer; it must not be
// copied once in use.
type Controller struct {
	cfg  Config
	pins Pins

	tick     ticker
	ramp     rampState
	governor governor
	button   buttonState
	leds     ledBank
	printer  printer

	accel  AccelSource
	fusion *motion.Engine

	rawTemp uint16
}

// New builds a controller. Call Init before the first Update.
func New(cfg Config, pins Pins) *Controller {
	cfg.setDefaults()
	c := &Controller{
		cfg:      cfg,
		pins:     pins,
		tick:     ticker{periodMs: int64(cfg.TickMs), clock: cfg.Clock},
		governor: governor{ceiling: MaxLevel},
	}
	c.leds.reset()
	if cfg.Accelerometer {
		c.fusion = motion.New(cfg.Motion)
	}
	return c
}

// AttachAccelerometer wires the motion sensor. Required when the
// Accelerometer capability is enabled.
func (c *Controller) AttachAccelerometer(src AccelSource) {
	c.accel = src
}

// Init puts every line in its resting state: button line released for
// sampling, drive off but ready, regulator not yet latched.
func (c *Controller) Init() error {
	if err := c.pins.Power.ConfigureInput(hw.PullNone); err != nil {
		return err
	}
	if err := c.pins.RedLED.ConfigureInput(hw.PullNone); err != nil {
		return err
	}
	if err := c.pins.DriveMode.ConfigureOutput(false); err != nil {
		return err
	}
	c.pins.DriveEnable.SetDuty(0)
	c.pins.GreenLED.SetDuty(0)
	c.tick.reset()
	return nil
}

// Update runs one tick: wait out the period, then advance every enabled
// component exactly once, in a fixed order. The order matters: the red LED
// must be dark while the button is sampled, and the governor must see the
// fresh temperature before the ramp writes the actuator.
func (c *Controller) Update() {
	c.tick.wait()

	// Regardless of desired LED state, darken the shared line so the button
	// level can be read.
	c.ledOff(Red)
	c.button.update(c.pins.RedLED.Get())
	if c.button.released && c.button.heldTicks > 0 {
		c.diagInt("button held ms: ", c.ButtonHeldMs())
	}
	if c.cfg.Indicators {
		c.leds.advance(c)
		if c.cfg.Printer {
			c.printer.advance(c)
		}
	}

	c.rawTemp = c.pins.Temp.Get()

	if c.cfg.Accelerometer && c.accel != nil {
		if v, err := c.accel.ReadVector(); err == nil {
			c.fusion.Ingest(motion.Vec(v))
		}
		// A failed bus read skips fusion for this tick; the engine keeps
		// its previous state.
	}

	c.protectOverheat()
	c.advanceLight()
}

// Shutdown drops the drive and releases the regulator latch. On battery power
// the device browns out shortly after; when externally powered the loop keeps
// running.
func (c *Controller) Shutdown() {
	c.pins.Power.ConfigureOutput(false)
	c.pins.DriveMode.Set(false)
	c.pins.DriveEnable.SetDuty(0)
}

// Motion returns the fusion engine, or nil when the capability is disabled.
func (c *Controller) Motion() *motion.Engine { return c.fusion }

// TickMs returns the configured tick length.
func (c *Controller) TickMs() int { return c.cfg.TickMs }

// ticksFor converts a millisecond duration to ticks, truncating.
func (c *Controller) ticksFor(ms int) int {
	if ms < 0 {
		ms = 0
	}
	return timex.TicksFor(ms, c.cfg.TickMs)
}

// --- diagnostics sink ---

func (c *Controller) diag(msg string) {
	if c.cfg.Diag == nil {
		return
	}
	io.WriteString(c.cfg.Diag, msg)
	io.WriteString(c.cfg.Diag, "\n")
}

func (c *Controller) diagInt(msg string, v int) {
	if c.cfg.Diag == nil {
		return
	}
	var buf [20]byte
	io.WriteString(c.cfg.Diag, msg)
	c.cfg.Diag.Write(conv.Itoa(buf[:], int64(v)))
	io.WriteString(c.cfg.Diag, "\n")
}
