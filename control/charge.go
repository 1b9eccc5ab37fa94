package control

// ChargeState classifies the charge line. The values are chosen so that a
// bitwise AND of two readings resolves disagreement toward the non-ambiguous
// state: Charging&Battery==Charging, Charged&Battery==Charged,
// Charging&Charged==Charging. Battery survives the AND only when both reads
// agree on it. Do not renumber.
type ChargeState uint8

const (
	Charging ChargeState = 1
	Charged  ChargeState = 3
	Battery  ChargeState = 7
)

func (s ChargeState) String() string {
	switch s {
	case Charging:
		return "charging"
	case Charged:
		return "charged"
	case Battery:
		return "battery"
	}
	return "unknown"
}

// The charge line idles mid-range on battery and is pulled to an extreme
// while the charger drives it.
func classifyCharge(raw uint16) ChargeState {
	if raw < 128 {
		return Charging
	}
	if raw > 768 {
		return Charged
	}
	return Battery
}

// ChargeState reads the charge line once, without debouncing. While the
// charger switches between charging and topped-off the line sweeps through
// the middle range, so this can transiently misreport Battery.
func (c *Controller) ChargeState() ChargeState {
	return classifyCharge(c.pins.Charge.Get())
}

// DefiniteChargeState reads the line twice with an intervening thermal-sensor
// read as a settle delay and ANDs the classifications, so Battery is reported
// only when both reads agree on it. Use this when acting on the state (for
// example turning on when charging stops).
func (c *Controller) DefiniteChargeState() ChargeState {
	first := c.ChargeState()
	c.rawTemp = c.pins.Temp.Get() // unrelated read, doubles as the delay
	second := c.ChargeState()
	return first & second
}
