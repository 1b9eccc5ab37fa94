package control

import "hexlight-go/x/mathx"

// DefaultOverheatTemp is the thermal target in raw sensor units:
// roughly 55°C / 130°F with the stock calibration.
const DefaultOverheatTemp = 320

// governor holds the safe ceiling, an integral controller over the
// temperature error. Persistent overheat pulls the ceiling down a little
// every tick; once the sensor recovers the same integration raises it back
// toward MaxLevel. Clamping keeps it in the level range no matter how
// extreme the readings are.
type governor struct {
	ceiling int
}

func (g *governor) update(target, temperature int) int {
	g.ceiling = mathx.Clamp(g.ceiling+target-temperature, 0, MaxLevel)
	return g.ceiling
}

// protectOverheat integrates the fresh temperature reading into the ceiling.
// While clamping is active the ramp is treated as settled, so the reduced
// level lands on the actuator this very tick instead of waiting for the ramp
// to run out.
func (c *Controller) protectOverheat() {
	ceiling := c.governor.update(c.cfg.OverheatTemp, int(c.rawTemp))
	if ceiling < MaxLevel {
		c.ramp.done = mathx.Min(c.ramp.done, c.ramp.duration)
		c.diagInt("safe light level: ", ceiling)
	}
}

// Ceiling returns the current thermal ceiling (0..MaxLevel).
func (c *Controller) Ceiling() int { return c.governor.ceiling }

// RawTemp returns the last raw thermal reading (0..1023).
func (c *Controller) RawTemp() int { return int(c.rawTemp) }

// Celsius converts the last raw reading using the bath calibration
// (153 at 0°C, 275 at 40°C).
func (c *Controller) Celsius() int {
	return int(float64(c.rawTemp)*(40.05/(275-153)) - 50)
}

// Fahrenheit is the same calibration in Fahrenheit.
func (c *Controller) Fahrenheit() int {
	return int(0.590902*float64(c.rawTemp) - 58)
}
