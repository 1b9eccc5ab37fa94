package control

// buttonState debounces the shared button line into hold-duration and release
// signals. heldTicks survives for one tick after release is sampled so a
// caller polling once per tick always gets a window where both
// ButtonReleased() and the final hold duration are observable; the reset
// happens on the following tick.
type buttonState struct {
	heldTicks int
	released  bool
}

func (b *buttonState) update(pressed bool) {
	switch {
	case pressed:
		b.heldTicks++
		b.released = false
	case b.released && b.heldTicks > 0:
		// The release has been visible for a full tick; now clear the hold.
		b.heldTicks = 0
	default:
		b.released = true
	}
}

// ButtonHeldMs returns how long the button has been held, in milliseconds.
// After release the value persists for exactly one tick before resetting,
// enabling `if ButtonReleased() && ButtonHeldMs() > 500 { ... }`.
func (c *Controller) ButtonHeldMs() int {
	return c.button.heldTicks * c.cfg.TickMs
}

// ButtonReleased reports that a press has ended and its duration is still
// readable this tick.
func (c *Controller) ButtonReleased() bool {
	return c.button.heldTicks > 0 && c.button.released
}

// ButtonPressed reports whether the button is currently sampled as held.
func (c *Controller) ButtonPressed() bool {
	return c.button.heldTicks > 0 && !c.button.released
}
