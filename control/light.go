package control

import (
	"hexlight-go/x/mathx"
	"hexlight-go/x/ramp"
)

// The drive hardware has two ranges selected by the mode pin; within each
// range an 8-bit duty sets the current. Brightness levels 0..1000 map onto
// the two ranges through cubic fits chosen so the perceived output is close
// to linear in level (Stevens' power law, roughly cube-root compensated).
// Low range covers levels 1..500, high range 501..1000.
const (
	lowCubic, lowSquare, lowLinear, lowOffset     = 0.000000633, 0.000632, 0.0285, 3.98
	highCubic, highSquare, highLinear, highOffset = 0.00000052, 0.000365, 0.108, 44.8
)

// rampState is a timed linear interpolation between two levels, counted in
// ticks. Once done reaches duration the ramp holds end indefinitely.
type rampState struct {
	start    int
	end      int
	duration int
	done     int
}

// SetLight starts a ramp from startLevel to endLevel over durationMs.
// startLevel may be CurrentLevel, which reads the ceiling-clamped output at
// call time so consecutive ramps compose without a discontinuity. Levels are
// clamped to [0, MaxLevel]; a duration shorter than one tick snaps to the end
// level on the next tick.
func (c *Controller) SetLight(startLevel, endLevel, durationMs int) {
	endLevel = mathx.Clamp(endLevel, 0, MaxLevel)
	if startLevel == CurrentLevel {
		startLevel = c.SafeLightLevel()
	} else {
		startLevel = mathx.Clamp(startLevel, 0, MaxLevel)
	}
	c.ramp = rampState{
		start:    startLevel,
		end:      endLevel,
		duration: c.ticksFor(durationMs),
	}
}

// LightLevel returns the requested level this tick, before the thermal clamp.
func (c *Controller) LightLevel() int {
	return ramp.At(c.ramp.start, c.ramp.end, c.ramp.done, c.ramp.duration)
}

// SafeLightLevel returns the requested level after the thermal clamp.
func (c *Controller) SafeLightLevel() int {
	return mathx.Min(c.LightLevel(), c.governor.ceiling)
}

// advanceLight writes the actuator once per tick until the ramp settles.
// The <= keeps one final write after done reaches duration, so the end level
// (or a late ceiling drop) always lands on the hardware.
func (c *Controller) advanceLight() {
	if c.ramp.done <= c.ramp.duration {
		c.setLevel(c.SafeLightLevel())
		c.ramp.done++
	}
}

// setLevel converts a 0..1000 level to the drive pins. Level 0 keeps the
// regulator latched with zero duty: the circuit stays enabled, because
// re-enabling from a full power-down is a much slower path than adjusting a
// running drive.
func (c *Controller) setLevel(level int) {
	c.pins.Power.ConfigureOutput(true)
	switch {
	case level <= 0:
		c.pins.DriveMode.Set(false)
		c.pins.DriveEnable.SetDuty(0)
	case level <= MaxLowLevel:
		c.pins.DriveMode.Set(false)
		c.pins.DriveEnable.SetDuty(lowDrive(level))
	default:
		c.pins.DriveMode.Set(true)
		c.pins.DriveEnable.SetDuty(highDrive(level - MaxLowLevel))
	}
}

func lowDrive(level int) uint8 {
	l := float64(level)
	return clampDuty(lowCubic*l*l*l + lowSquare*l*l + lowLinear*l + lowOffset)
}

func highDrive(level int) uint8 {
	l := float64(level)
	return clampDuty(highCubic*l*l*l + highSquare*l*l + highLinear*l + highOffset)
}

func clampDuty(f float64) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 255 {
		return 255
	}
	return uint8(f)
}
