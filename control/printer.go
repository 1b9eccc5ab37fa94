package control

// printer encodes an integer as a sequence of colored indicator blinks, one
// digit per color, read back right to left. The pending digits live in
// a single integer seeded with 1: printing 100 stores 1001, so the trailing
// zeros keep their position instead of collapsing (001 == 1 would lose them).
//
// Timing (milliseconds): 120 short blink, 400 zero blink, 300 gap between
// blinks, 600 gap between digits, 2500 terminal pause. A negative number is
// prefixed with a 500 ms blink in the flipped color and a 600 ms pause.
const (
	printBlinkMs    = 120
	printZeroMs     = 400
	printGapMs      = 300
	printDigitGapMs = 600
	printDoneMs     = 2500
	printMinusMs    = 500
)

type printer struct {
	number    int64
	color     LED
	waitTicks int
}

// PrintNumber starts blinking out number on the indicator LEDs. The largest
// printable magnitude is 999,999,999 (the leading position is reserved for
// the sentinel digit). A new call overwrites any print in progress.
func (c *Controller) PrintNumber(number int64) {
	p := &c.printer
	negative := number < 0
	if negative {
		number = -number
	}
	// Reverse the digits into the sentinel-seeded accumulator so emission
	// walks them left to right.
	p.color = Green
	p.number = 1
	for number > 0 {
		p.number = p.number*10 + number%10
		number /= 10
		p.color = FlipColor(p.color)
	}
	if negative {
		c.FlashLED(FlipColor(p.color), printMinusMs)
		p.waitTicks = c.ticksFor(printDigitGapMs)
	}
}

// Printing reports whether digits or a trailing pause are still pending.
func (c *Controller) Printing() bool {
	return c.printer.number != 0 || c.printer.waitTicks != 0
}

// advance emits at most one blink per tick, spacing them with wait counts so
// the LED automata finish each flash before the next one is armed.
func (p *printer) advance(c *Controller) {
	if p.number > 0 && p.waitTicks == 0 {
		if p.number == 1 {
			// Only the sentinel is left: hold a long pause between
			// repeated prints, then go idle.
			p.waitTicks = c.ticksFor(printDoneMs)
			p.number = 0
			return
		}
		p.waitTicks = c.ticksFor(printGapMs)

		if p.number%10 == 0 {
			// A zero digit is one long blink; it is consumed below by the
			// digit shift rather than decremented.
			c.FlashLED(p.color, printZeroMs)
		} else {
			c.FlashLED(p.color, printBlinkMs)
			p.number--
		}
		if p.number != 0 && p.number%10 == 0 {
			// Digit exhausted: shift to the next one, swap color, insert
			// the inter-digit pause.
			p.waitTicks = c.ticksFor(printDigitGapMs)
			p.color = FlipColor(p.color)
			p.number /= 10
		}
	}

	if p.waitTicks > 0 {
		p.waitTicks--
	}
}
